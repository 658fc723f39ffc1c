package model

import "time"

// EventKind classifies a device event.
type EventKind int

const (
	Connected EventKind = iota
	// Disconnected exists for consumers that merge in a live notification
	// stream. A snapshot pass never produces it.
	Disconnected
)

func (k EventKind) String() string {
	switch k {
	case Connected:
		return "connected"
	case Disconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// DeviceHandle is a textual rendering of a native record's identity, kept for
// traceability only. The native resource behind it is already released by the
// time a consumer sees the event, so the handle must never be used to reach
// back into the registry.
type DeviceHandle struct {
	Platform string
	DeviceID string
}

// UsbDeviceInfo describes one enumerated USB device. Fields are fixed at
// construction; ownership transfers to the channel on send.
type UsbDeviceInfo struct {
	DeviceName   string
	VendorID     string // exactly 4 lowercase hex digits, "0000" when unknown
	ProductID    string // same format and default as VendorID
	SerialNumber *string
	Timestamp    time.Time
	EventType    EventKind
	Handle       DeviceHandle
}
