package cpu

import "github.com/born-ml/convlens/internal/tensor"

// OutputSize returns the output extent along one spatial axis:
//
//	valid or size 0: floor((in - k) / stride) + 1
//	otherwise:       floor((in + 2*size - k) / stride) + 1
//
// The result is not guarded; kernel-versus-input validation happens when a
// configuration is built.
func (cpu *CPUBackend) OutputSize(inputSize, kernelSize, stride int, p tensor.Padding) int {
	return OutputSize(inputSize, kernelSize, stride, p)
}

// OutputSize is the backend-independent form of CPUBackend.OutputSize.
func OutputSize(inputSize, kernelSize, stride int, p tensor.Padding) int {
	if stride <= 0 {
		panic("output size: stride must be positive")
	}
	return floorDiv(inputSize+2*p.Effective()-kernelSize, stride) + 1
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
