// Package props reads typed property values off opaque registry records.
// Every failure mode collapses to "no value": a missing property, a type
// mismatch and an out-of-range number are indistinguishable to the caller,
// which applies its own default. Property references are released on every
// exit path.
package props

import (
	"math"

	"github.com/mkade/usbscout/internal/registry"
)

// ReadU16 reads a 16-bit unsigned property from the record.
func ReadU16(rec registry.Record, key string) (uint16, bool) {
	ref, ok := rec.Property(key)
	if !ok {
		return 0, false
	}
	defer ref.Release()
	v, ok := ref.Int64()
	if !ok || v < 0 || v > math.MaxUint16 {
		return 0, false
	}
	return uint16(v), true
}

// ReadString reads a text property from the record. An empty value is
// reported as absent, not as an empty string.
func ReadString(rec registry.Record, key string) (string, bool) {
	ref, ok := rec.Property(key)
	if !ok {
		return "", false
	}
	defer ref.Release()
	s, ok := ref.Text()
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
