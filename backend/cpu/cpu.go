// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package cpu

import (
	internalcpu "github.com/born-ml/convlens/internal/backend/cpu"
	"github.com/born-ml/convlens/internal/parallel"
	"github.com/born-ml/convlens/tensor"
)

// Backend represents the CPU backend implementation.
//
// CPU backend provides pure Go padding and im2col convolution, with output
// channels of a layer computed in parallel.
type Backend = internalcpu.CPUBackend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	import (
//	    "github.com/born-ml/convlens/backend/cpu"
//	    "github.com/born-ml/convlens/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//	    h := backend.OutputSize(5, 3, 1, tensor.Padding{})
//	}
func New() *Backend {
	return internalcpu.New()
}

// NewSequential creates a CPU backend that computes output channels one at
// a time on the calling goroutine.
func NewSequential() *Backend {
	return internalcpu.NewWithConfig(parallel.Sequential())
}

// SourceIndex maps a padded-space index onto the unpadded axis of length
// dim under mode. Indices already inside [0, dim) are returned unchanged.
func SourceIndex(mode tensor.PaddingMode, idx, dim int) int {
	return internalcpu.SourceIndex(mode, idx, dim)
}

// OutputSize returns floor((in + 2*pad - k) / stride) + 1 for padding p.
func OutputSize(in, k, stride int, p tensor.Padding) int {
	return internalcpu.OutputSize(in, k, stride, p)
}
