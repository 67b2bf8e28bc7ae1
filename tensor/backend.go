// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "github.com/born-ml/convlens/internal/tensor"

// Backend defines the interface that compute backends implement.
// A backend pads inputs, computes output sizes and runs convolutions.
//
// Implementations:
//   - backend/cpu: Pure Go im2col with per-channel parallelism
//
// Example:
//
//	import (
//	    "github.com/born-ml/convlens/tensor"
//	    "github.com/born-ml/convlens/backend/cpu"
//	)
//
//	var backend tensor.Backend = cpu.New()
//	h := backend.OutputSize(5, 3, 1, tensor.Padding{Mode: tensor.PadReflect, Size: 1})
type Backend = tensor.Backend

// Conv2DParams describes one convolution stage.
type Conv2DParams = tensor.Conv2DParams

// LayerResult is the output of Backend.Conv2DLayer.
type LayerResult = tensor.LayerResult
