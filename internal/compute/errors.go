package compute

import (
	"errors"
	"fmt"
)

// ErrUnavailable indicates that no compatible WebGPU device exists. Once
// Acquire fails, every later call observes this same condition.
var ErrUnavailable = errors.New("compute: no compatible WebGPU device")

// DeviceError reports a buffer, pipeline or readback failure surfaced by the
// backend. The in-flight invocation is aborted and its resources released;
// retry policy belongs to the caller.
type DeviceError struct {
	Op  string
	Err error
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("compute: %s failed: %v", e.Op, e.Err)
}

func (e *DeviceError) Unwrap() error {
	return e.Err
}
