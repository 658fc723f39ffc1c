package publish_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkade/usbscout/internal/model"
	"github.com/mkade/usbscout/internal/publish"
)

var hexID = regexp.MustCompile(`^[0-9a-f]{4}$`)

func u16(v uint16) *uint16 { return &v }
func str(s string) *string { return &s }

func TestPublishFormatsIdentifiers(t *testing.T) {
	tests := []struct {
		name    string
		vendor  *uint16
		product *uint16
		wantVID string
		wantPID string
	}{
		{name: "both present", vendor: u16(0x1234), product: u16(0x5678), wantVID: "1234", wantPID: "5678"},
		{name: "zero padded", vendor: u16(0x004a), product: u16(0xabcd), wantVID: "004a", wantPID: "abcd"},
		{name: "both absent", wantVID: "0000", wantPID: "0000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := make(chan model.UsbDeviceInfo, 1)
			pub := publish.New(ch)
			info := pub.Publish("dev", tt.vendor, tt.product, nil, model.DeviceHandle{})
			assert.Equal(t, tt.wantVID, info.VendorID)
			assert.Equal(t, tt.wantPID, info.ProductID)
			assert.Regexp(t, hexID, info.VendorID)
			assert.Regexp(t, hexID, info.ProductID)
		})
	}
}

func TestPublishSendsOnChannel(t *testing.T) {
	ch := make(chan model.UsbDeviceInfo, 1)
	pub := publish.New(ch)

	before := time.Now().UTC()
	info := pub.Publish("Widget", u16(0x1234), u16(0x5678), str("ABC123"), model.DeviceHandle{Platform: "linux", DeviceID: "1-1"})

	require.Len(t, ch, 1)
	got := <-ch
	assert.Equal(t, info, got)
	assert.Equal(t, model.Connected, got.EventType)
	assert.Equal(t, "Widget", got.DeviceName)
	require.NotNil(t, got.SerialNumber)
	assert.Equal(t, "ABC123", *got.SerialNumber)
	assert.Equal(t, "1-1", got.Handle.DeviceID)
	assert.False(t, got.Timestamp.Before(before), "timestamp sampled at publish time")
	assert.Equal(t, time.UTC, got.Timestamp.Location())
	assert.Zero(t, pub.Dropped())
}

func TestPublishDropsWhenChannelFull(t *testing.T) {
	ch := make(chan model.UsbDeviceInfo, 1)
	pub := publish.New(ch)

	pub.Publish("first", nil, nil, nil, model.DeviceHandle{})
	pub.Publish("second", nil, nil, nil, model.DeviceHandle{})

	assert.Equal(t, uint64(1), pub.Dropped())
	got := <-ch
	assert.Equal(t, "first", got.DeviceName)
}

func TestPublishDropsWithoutReceiver(t *testing.T) {
	// Unbuffered channel, nobody draining: the send must not block.
	ch := make(chan model.UsbDeviceInfo)
	pub := publish.New(ch)

	done := make(chan struct{})
	go func() {
		pub.Publish("orphan", nil, nil, nil, model.DeviceHandle{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a receiverless channel")
	}
	assert.Equal(t, uint64(1), pub.Dropped())
}
