// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public data types of a convolution stage.
//
// # Overview
//
// Everything in ConvLens is an integer:
//   - Tensor: a dense {channels, height, width} grid
//   - Kernel: a dense {out, in, kh, kw} weight bank
//   - Padding: a border mode (valid, reflect, replicate, circular) and size
//   - Backend: the interface that pads, sizes and convolves
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/convlens/backend/cpu"
//	    "github.com/born-ml/convlens/tensor"
//	)
//
//	func main() {
//	    backend := cpu.New()
//
//	    x := tensor.CreateTensor(5, 5, 3, nil)
//	    k := tensor.CreateKernel(2, 3, 3, 3, nil)
//
//	    pad := tensor.Padding{Mode: tensor.PadReflect, Size: 1}
//	    plane := backend.Conv2D(x, k, 1, pad, 0)
//	}
//
// # Value Ranges
//
// Generated inputs are drawn uniformly from InputRange ([-9, 9]) and
// generated weights from KernelRange ([-2, 2]). Pass a seeded *rand.Rand for
// reproducible tensors, or nil to use the global source.
package tensor
