//go:build !linux

package registry

import (
	"fmt"
	"runtime"
)

// Open reports that no device registry implementation exists for this
// platform.
func Open() (Registry, error) {
	return nil, fmt.Errorf("device registry not supported on %s", runtime.GOOS)
}
