// Package publish composes device events and delivers them to the outbound
// channel without ever blocking the enumeration pass.
package publish

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/mkade/usbscout/internal/model"
)

// Publisher owns the sending half of the event channel. Sends are
// best-effort: when the channel is full or nobody is draining it, the event
// is dropped and only the drop counter records that it existed. Dropping is
// the backpressure policy, not an error.
type Publisher struct {
	tx      chan<- model.UsbDeviceInfo
	dropped atomic.Uint64
}

func New(tx chan<- model.UsbDeviceInfo) *Publisher {
	return &Publisher{tx: tx}
}

// Publish builds a Connected event from the extracted properties and
// attempts to send it. Nil vendor or product IDs render as "0000"; the
// timestamp is sampled now, not at enumeration start.
func (p *Publisher) Publish(name string, vendorID, productID *uint16, serial *string, handle model.DeviceHandle) model.UsbDeviceInfo {
	info := model.UsbDeviceInfo{
		DeviceName:   name,
		VendorID:     formatID(vendorID),
		ProductID:    formatID(productID),
		SerialNumber: serial,
		Timestamp:    time.Now().UTC(),
		EventType:    model.Connected,
		Handle:       handle,
	}
	select {
	case p.tx <- info:
	default:
		p.dropped.Add(1)
	}
	return info
}

// Dropped reports how many events were discarded because the channel could
// not accept them.
func (p *Publisher) Dropped() uint64 {
	return p.dropped.Load()
}

func formatID(id *uint16) string {
	if id == nil {
		return "0000"
	}
	return fmt.Sprintf("%04x", *id)
}
