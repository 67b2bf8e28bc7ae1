package tensor

import "math/rand"

// Conv2DParams describes one convolution stage.
type Conv2DParams struct {
	KernelSize  int
	Stride      int
	OutChannels int
	Padding     Padding
}

// LayerResult is the output of a whole-layer convolution together with the
// kernel that produced it.
type LayerResult struct {
	Output *Tensor
	Kernel *Kernel
}

// Backend defines the interface that compute backends must implement.
//
// Implementations:
//   - CPU: pure Go, im2col convolution (internal/backend/cpu)
type Backend interface {
	// Name returns a human-readable backend name.
	Name() string

	// Pad returns a padded copy of t. Valid mode or size 0 returns t itself.
	Pad(t *Tensor, p Padding) *Tensor

	// OutputSize returns the spatial output extent along one axis.
	OutputSize(inputSize, kernelSize, stride int, p Padding) int

	// Conv2D computes a single output channel as [row][col].
	Conv2D(input *Tensor, kernel *Kernel, stride int, p Padding, outChannel int) [][]int

	// Conv2DLayer computes every output channel. A nil kernel is generated
	// from rng first.
	Conv2DLayer(input *Tensor, kernel *Kernel, params Conv2DParams, rng *rand.Rand) LayerResult
}
