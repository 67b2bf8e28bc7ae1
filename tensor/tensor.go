// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/born-ml/convlens/internal/tensor"
)

// Type aliases for public API

// Shape represents the dimensions of a tensor.
// Example: Shape{3, 5, 5} is a 3-channel 5x5 input.
type Shape = tensor.Shape

// Tensor is a dense 3D integer tensor laid out as {channels, height, width}.
type Tensor = tensor.Tensor

// Kernel is a dense 4D weight bank laid out as {out, in, kh, kw}.
type Kernel = tensor.Kernel

// Range is an inclusive interval of integer values.
type Range = tensor.Range

// PaddingMode selects how border cells are synthesized.
type PaddingMode = tensor.PaddingMode

// Padding modes.
const (
	PadValid     PaddingMode = tensor.PadValid
	PadReflect   PaddingMode = tensor.PadReflect
	PadReplicate PaddingMode = tensor.PadReplicate
	PadCircular  PaddingMode = tensor.PadCircular
)

// Padding is a mode plus a border size.
type Padding = tensor.Padding

// Value ranges used by CreateTensor and CreateKernel.
var (
	InputRange  = tensor.InputRange
	KernelRange = tensor.KernelRange
)

// Errors returned by tensor constructors and parsers.
var (
	ErrInvalidShape   = tensor.ErrInvalidShape
	ErrShapeMismatch  = tensor.ErrShapeMismatch
	ErrRaggedRows     = tensor.ErrRaggedRows
	ErrOutOfRange     = tensor.ErrOutOfRange
	ErrUnknownPadding = tensor.ErrUnknownPadding
)

// Zeros creates a zero-filled {channels, height, width} tensor.
func Zeros(shape Shape) *Tensor {
	return tensor.Zeros(shape)
}

// FromSlice creates a tensor over data, which must hold shape.NumElements()
// values in row-major order.
func FromSlice(data []int, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// FromRows creates a tensor from nested [channel][row][col] slices.
func FromRows(rows [][][]int) (*Tensor, error) {
	return tensor.FromRows(rows)
}

// NewKernel creates a zero-filled {out, in, kh, kw} kernel.
func NewKernel(shape Shape) *Kernel {
	return tensor.NewKernel(shape)
}

// KernelFromSlice creates a kernel over data in row-major order.
func KernelFromSlice(data []int, shape Shape) (*Kernel, error) {
	return tensor.KernelFromSlice(data, shape)
}

// CreateTensor returns a {channels, height, width} tensor with values drawn
// from InputRange. A nil rng uses the global source.
func CreateTensor(height, width, channels int, rng *rand.Rand) *Tensor {
	return tensor.CreateTensor(height, width, channels, rng)
}

// CreateKernel returns an {out, in, kh, kw} kernel with weights drawn from
// KernelRange.
func CreateKernel(outChannels, inChannels, kh, kw int, rng *rand.Rand) *Kernel {
	return tensor.CreateKernel(outChannels, inChannels, kh, kw, rng)
}

// ParsePaddingMode parses "valid", "reflect", "replicate" or "circular".
func ParsePaddingMode(s string) (PaddingMode, error) {
	return tensor.ParsePaddingMode(s)
}
