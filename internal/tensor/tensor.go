// Package tensor provides the integer tensor and kernel types used by the
// convolution core, plus their random constructors.
package tensor

import (
	"fmt"
	"strings"
)

// Tensor is a 3D integer array indexed [channel][row][col].
//
// Data is stored row-major in a single slice. Every channel has the same
// height and width. The only in-place mutation is Set; everything that
// changes the extent (padding) returns a new Tensor.
type Tensor struct {
	shape   Shape
	strides []int
	data    []int
}

// Zeros creates a tensor of the given {channels, height, width} shape.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 5, 5})
func Zeros(shape Shape) *Tensor {
	if len(shape) != 3 {
		panic(fmt.Sprintf("zeros: tensor must be 3D [C,H,W], got %dD", len(shape)))
	}
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("zeros: %v", err))
	}
	return &Tensor{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		data:    make([]int, shape.NumElements()),
	}
}

// FromSlice creates a tensor from flat row-major data.
// The slice is copied.
func FromSlice(data []int, shape Shape) (*Tensor, error) {
	if len(shape) != 3 {
		return nil, fmt.Errorf("%w: tensor must be 3D [C,H,W], got %dD", ErrInvalidShape, len(shape))
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("%w: got %d values for shape %v", ErrShapeMismatch, len(data), shape)
	}
	t := Zeros(shape)
	copy(t.data, data)
	return t, nil
}

// FromRows creates a tensor from nested [channel][row][col] slices.
func FromRows(rows [][][]int) (*Tensor, error) {
	if len(rows) == 0 || len(rows[0]) == 0 || len(rows[0][0]) == 0 {
		return nil, fmt.Errorf("%w: empty rows", ErrInvalidShape)
	}
	shape := Shape{len(rows), len(rows[0]), len(rows[0][0])}
	data := make([]int, 0, shape.NumElements())
	for c, channel := range rows {
		if len(channel) != shape[1] {
			return nil, fmt.Errorf("%w: channel %d has %d rows, want %d", ErrRaggedRows, c, len(channel), shape[1])
		}
		for h, row := range channel {
			if len(row) != shape[2] {
				return nil, fmt.Errorf("%w: channel %d row %d has %d values, want %d", ErrRaggedRows, c, h, len(row), shape[2])
			}
			data = append(data, row...)
		}
	}
	return FromSlice(data, shape)
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() Shape { return t.shape.Clone() }

// Channels returns the channel count.
func (t *Tensor) Channels() int { return t.shape[0] }

// Height returns the number of rows per channel.
func (t *Tensor) Height() int { return t.shape[1] }

// Width returns the number of columns per row.
func (t *Tensor) Width() int { return t.shape[2] }

// Data returns the underlying row-major storage.
func (t *Tensor) Data() []int { return t.data }

// InBounds reports whether (c, h, w) addresses a stored element.
func (t *Tensor) InBounds(c, h, w int) bool {
	return c >= 0 && c < t.shape[0] && h >= 0 && h < t.shape[1] && w >= 0 && w < t.shape[2]
}

// At returns the element at (c, h, w). It panics when out of bounds.
func (t *Tensor) At(c, h, w int) int {
	return t.data[t.offset(c, h, w)]
}

// Set overwrites the element at (c, h, w). It panics when out of bounds.
func (t *Tensor) Set(c, h, w, value int) {
	t.data[t.offset(c, h, w)] = value
}

func (t *Tensor) offset(c, h, w int) int {
	if !t.InBounds(c, h, w) {
		panic(fmt.Sprintf("tensor: index [%d,%d,%d] out of range for shape %v", c, h, w, t.shape))
	}
	return c*t.strides[0] + h*t.strides[1] + w
}

// Clone returns a deep copy.
func (t *Tensor) Clone() *Tensor {
	out := Zeros(t.shape)
	copy(out.data, t.data)
	return out
}

// Equal reports structural equality: same shape and same values.
func (t *Tensor) Equal(other *Tensor) bool {
	if t == other {
		return true
	}
	if t == nil || other == nil || !t.shape.Equal(other.shape) {
		return false
	}
	for i, v := range t.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// Channel returns a copy of one channel as [row][col].
func (t *Tensor) Channel(c int) [][]int {
	h, w := t.shape[1], t.shape[2]
	out := make([][]int, h)
	for i := range out {
		start := t.offset(c, i, 0)
		out[i] = append([]int(nil), t.data[start:start+w]...)
	}
	return out
}

// Rows returns a copy of the whole tensor as [channel][row][col].
func (t *Tensor) Rows() [][][]int {
	out := make([][][]int, t.shape[0])
	for c := range out {
		out[c] = t.Channel(c)
	}
	return out
}

// String renders each channel as a grid of right-aligned values.
func (t *Tensor) String() string {
	var sb strings.Builder
	for c := 0; c < t.shape[0]; c++ {
		fmt.Fprintf(&sb, "channel %d:\n", c)
		for h := 0; h < t.shape[1]; h++ {
			for w := 0; w < t.shape[2]; w++ {
				fmt.Fprintf(&sb, "%4d", t.At(c, h, w))
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
