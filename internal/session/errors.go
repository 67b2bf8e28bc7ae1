package session

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidDimension = errors.New("dimension must be positive")
	ErrKernelTooLarge   = errors.New("kernel larger than (padded) input")
	ErrShapeMismatch    = errors.New("tensor shape does not match configuration")
	ErrOutOfRange       = errors.New("coordinate out of range")
)

// ConfigError reports which parameter was rejected.
type ConfigError struct {
	Field string // Parameter name (e.g. "kernel_size")
	Value any    // Rejected value
	Err   error  // Underlying sentinel
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s=%v: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Notice describes a parameter that was corrected rather than rejected.
type Notice struct {
	Field string
	From  int
	To    int
	Cause string
}

// String implements fmt.Stringer.
func (n Notice) String() string {
	return fmt.Sprintf("%s adjusted from %d to %d: %s", n.Field, n.From, n.To, n.Cause)
}
