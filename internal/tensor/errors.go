package tensor

import "errors"

// Common errors.
var (
	ErrInvalidShape   = errors.New("invalid shape")
	ErrShapeMismatch  = errors.New("data length does not match shape")
	ErrRaggedRows     = errors.New("rows have unequal length")
	ErrOutOfRange     = errors.New("coordinate out of range")
	ErrUnknownPadding = errors.New("unknown padding mode")
)
