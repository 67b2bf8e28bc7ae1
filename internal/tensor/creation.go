package tensor

import "math/rand"

// Range is an inclusive integer interval used for random fills.
type Range struct {
	Min int
	Max int
}

// Value ranges for generated data.
var (
	InputRange  = Range{Min: -9, Max: 9}
	KernelRange = Range{Min: -2, Max: 2}
)

// Contains reports whether v lies in [Min, Max].
func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Draw returns a uniform value in [Min, Max]. A nil rng uses the
// package-level source.
func (r Range) Draw(rng *rand.Rand) int {
	span := r.Max - r.Min + 1
	if rng == nil {
		return rand.Intn(span) + r.Min //nolint:gosec // G404: synthetic visualisation data
	}
	return rng.Intn(span) + r.Min
}

// CreateTensor creates a {channels, height, width} tensor with every value
// drawn independently from InputRange.
//
// Example:
//
//	rng := rand.New(rand.NewSource(42))
//	x := tensor.CreateTensor(5, 5, 3, rng)
func CreateTensor(height, width, channels int, rng *rand.Rand) *Tensor {
	t := Zeros(Shape{channels, height, width})
	for i := range t.data {
		t.data[i] = InputRange.Draw(rng)
	}
	return t
}

// CreateKernel creates an {out, in, kh, kw} kernel with weights drawn from
// KernelRange.
func CreateKernel(outChannels, inChannels, kh, kw int, rng *rand.Rand) *Kernel {
	k := NewKernel(Shape{outChannels, inChannels, kh, kw})
	for i := range k.data {
		k.data[i] = KernelRange.Draw(rng)
	}
	return k
}

// Full creates a tensor filled with a specific value.
//
// Example:
//
//	t := tensor.Full(tensor.Shape{1, 3, 3}, 1)
func Full(shape Shape, value int) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = value
	}
	return t
}

// Arange creates a tensor whose elements are 0, 1, 2, ... in row-major order.
// Handy for tests where every cell must be distinguishable.
func Arange(shape Shape) *Tensor {
	t := Zeros(shape)
	for i := range t.data {
		t.data[i] = i
	}
	return t
}
