package watcher

import (
	"context"
	"fmt"
	"runtime"

	"github.com/mkade/usbscout/internal/model"
	"github.com/mkade/usbscout/internal/props"
	"github.com/mkade/usbscout/internal/publish"
	"github.com/mkade/usbscout/internal/registry"
)

// Property keys and the display-name fallback used for every record.
const (
	keyVendorID  = "idVendor"
	keyProductID = "idProduct"
	keySerial    = "USB Serial Number"

	placeholderName = "Unknown USB Device"
)

type watchState int

const (
	stateIdle watchState = iota
	stateMonitoring
	stateDone
)

// snapshotWatcher enumerates the registry once per StartMonitoring call.
// It holds no native state between passes, so each call is self-contained.
type snapshotWatcher struct {
	pub   *publish.Publisher
	reg   registry.Registry
	class string

	state watchState
	err   error // fatal error of the last pass, kept with stateDone
}

func (w *snapshotWatcher) StartMonitoring(ctx context.Context) error {
	w.state = stateMonitoring
	err := w.enumerate(ctx)
	w.state = stateDone
	w.err = err
	return err
}

func (w *snapshotWatcher) enumerate(ctx context.Context) error {
	filter, err := w.reg.Match(w.class)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInitialization, err)
	}
	iter, status := w.reg.Services(filter)
	if status != 0 {
		return &EnumerationError{Status: status}
	}
	defer iter.Release()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec := iter.Next()
		if rec == nil {
			return nil
		}
		w.visit(rec)
	}
}

// visit publishes one event for the record. The record is released on every
// path out of here; property references are released by the extractor.
func (w *snapshotWatcher) visit(rec registry.Record) {
	defer rec.Release()

	name, err := rec.Name()
	if err != nil || name == "" {
		name = placeholderName
	}

	var vendorID, productID *uint16
	if v, ok := props.ReadU16(rec, keyVendorID); ok {
		vendorID = &v
	}
	if v, ok := props.ReadU16(rec, keyProductID); ok {
		productID = &v
	}
	var serial *string
	if s, ok := props.ReadString(rec, keySerial); ok {
		serial = &s
	}

	w.pub.Publish(name, vendorID, productID, serial, model.DeviceHandle{
		Platform: runtime.GOOS,
		DeviceID: rec.ID(),
	})
}
