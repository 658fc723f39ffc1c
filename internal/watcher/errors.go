package watcher

import (
	"errors"
	"fmt"
)

// ErrInitialization means the device-class matching filter could not be
// constructed. Nothing was enumerated and nothing was acquired.
var ErrInitialization = errors.New("device class filter construction failed")

// EnumerationError means the registry lookup call itself failed. The status
// code is the registry's verbatim value, kept for diagnostics.
type EnumerationError struct {
	Status int32
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("registry service lookup failed: status %d", e.Status)
}
