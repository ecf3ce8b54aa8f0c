package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks a capability that failed permanently.
	// Wrap it to make an error fatal to the engine loop.
	ErrUnavailable = errors.New("capability unavailable")

	// ErrStopped is returned by Platform.SleepUntil to request a clean stop.
	ErrStopped = errors.New("stopped")
)

// CapabilityError reports a failed display, input or platform operation.
type CapabilityError struct {
	Capability string // "display", "input", "platform"
	Op         string // Operation name, e.g. "flush"
	Err        error
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Capability, e.Op, e.Err)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// Fatal reports whether the failure is permanent.
func (e *CapabilityError) Fatal() bool {
	return errors.Is(e.Err, ErrUnavailable)
}

// IsFatal reports whether err marks a permanently unavailable capability.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// ConfigError reports an invalid setting detected before the loop starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
