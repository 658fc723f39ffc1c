// Package watcher drives one-shot enumeration passes over the host device
// registry and publishes one Connected event per matching record.
package watcher

import (
	"context"

	"github.com/mkade/usbscout/internal/publish"
	"github.com/mkade/usbscout/internal/registry"
)

// DeviceWatcher is the façade every platform adapter implements. Consumers
// depend on this interface, never on a concrete adapter.
type DeviceWatcher interface {
	// StartMonitoring runs one independent enumeration pass. It returns
	// nil when the registry iterator was exhausted, or the fatal error
	// that aborted the pass. Per-record failures never surface here.
	StartMonitoring(ctx context.Context) error
}

// New builds the watcher for the host platform's device registry.
func New(pub *publish.Publisher, class string) (DeviceWatcher, error) {
	reg, err := registry.Open()
	if err != nil {
		return nil, err
	}
	return NewWithRegistry(pub, reg, class), nil
}

// NewWithRegistry builds a watcher over an explicit registry. Used directly
// in tests and by callers that manage registry selection themselves.
func NewWithRegistry(pub *publish.Publisher, reg registry.Registry, class string) DeviceWatcher {
	return &snapshotWatcher{pub: pub, reg: reg, class: class, state: stateIdle}
}
