// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides a pure Go CPU backend for convolution stages.
//
// # Overview
//
// This package implements:
//   - Border padding in valid, reflect, replicate and circular modes
//   - Output-size arithmetic with floor division
//   - Im2col convolution over integer tensors
//   - Per-output-channel parallelism for whole layers
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
//	    res := backend.Conv2DLayer(x, nil, tensor.Conv2DParams{
//	        KernelSize:  3,
//	        Stride:      1,
//	        OutChannels: 2,
//	        Padding:     tensor.Padding{Mode: tensor.PadReplicate, Size: 1},
//	    }, nil)
//	    _ = res.Output // 2x5x5
//	}
//
// # Padding Semantics
//
// Reflect mirrors without repeating the edge cell, replicate copies the
// nearest edge cell and circular wraps around the opposite side. Padding
// sizes larger than the axis keep folding (reflect) or wrapping (circular).
package cpu
