package cpu

import (
	"fmt"
	"math/rand"

	"github.com/born-ml/convlens/internal/parallel"
	"github.com/born-ml/convlens/internal/tensor"
)

// Conv2D computes one output channel of a strided 2D convolution using the
// im2col algorithm.
//
// Input shape:  [C_in, H, W]
// Kernel shape: [C_out, C_in, K_h, K_w]
// Output:       [H_out][W_out] for kernel row outChannel
//
// Algorithm:
//  1. Pad the input according to p.
//  2. Size the output from the *unpadded* input extent (OutputSize adds the
//     padding itself, so it is not counted twice).
//  3. Im2col: gather every window of the padded input into one row.
//  4. Dot each row with the flattened kernel row for outChannel.
//
// Window reads are checked against the padded extent. A read past it
// contributes nothing; with a consistent output size it never happens.
func (cpu *CPUBackend) Conv2D(input *tensor.Tensor, kernel *tensor.Kernel, stride int, p tensor.Padding, outChannel int) [][]int {
	if kernel.InChannels() != input.Channels() {
		panic(fmt.Sprintf("conv2d: input channels %d != kernel channels %d", input.Channels(), kernel.InChannels()))
	}
	if outChannel < 0 || outChannel >= kernel.OutChannels() {
		panic(fmt.Sprintf("conv2d: output channel %d out of range [0,%d)", outChannel, kernel.OutChannels()))
	}
	if stride <= 0 {
		panic(fmt.Sprintf("conv2d: stride must be positive, got %d", stride))
	}

	padded := cpu.Pad(input, p)

	KH, KW := kernel.Height(), kernel.Width()
	HOut := max(OutputSize(input.Height(), KH, stride, p), 0)
	WOut := max(OutputSize(input.Width(), KW, stride, p), 0)

	colWidth := input.Channels() * KH * KW
	colBuf := make([]int, HOut*WOut*colWidth)
	im2col(colBuf, padded, KH, KW, HOut, WOut, stride)

	weights := kernel.Row(outChannel)
	output := make([][]int, HOut)
	for h := 0; h < HOut; h++ {
		output[h] = make([]int, WOut)
		for w := 0; w < WOut; w++ {
			row := colBuf[(h*WOut+w)*colWidth : (h*WOut+w+1)*colWidth]
			sum := 0
			for k, v := range row {
				sum += v * weights[k]
			}
			output[h][w] = sum
		}
	}
	return output
}

// im2col transforms the padded input into a column matrix.
//
// Output: colBuf [H_out * W_out, C * K_h * K_w]
//
// Each row of colBuf is one output position; each column lines up with one
// entry of a flattened kernel row. Positions beyond the padded extent keep
// their zero value.
func im2col(colBuf []int, padded *tensor.Tensor, KH, KW, HOut, WOut, stride int) {
	C, H, W := padded.Channels(), padded.Height(), padded.Width()
	colWidth := C * KH * KW
	colIdx := 0

	for outH := 0; outH < HOut; outH++ {
		for outW := 0; outW < WOut; outW++ {
			hStart := outH * stride
			wStart := outW * stride
			bufIdx := colIdx * colWidth

			for c := 0; c < C; c++ {
				for kh := 0; kh < KH; kh++ {
					for kw := 0; kw < KW; kw++ {
						h := hStart + kh
						w := wStart + kw
						if h < H && w < W {
							colBuf[bufIdx] = padded.At(c, h, w)
						}
						bufIdx++
					}
				}
			}
			colIdx++
		}
	}
}

// Conv2DLayer runs Conv2D for every output channel and stacks the planes
// into a [C_out, H_out, W_out] tensor.
//
// When kernel is nil a fresh one of shape
// [OutChannels, C_in, KernelSize, KernelSize] is drawn from rng, so the
// caller always gets back the exact weights that produced the output.
func (cpu *CPUBackend) Conv2DLayer(input *tensor.Tensor, kernel *tensor.Kernel, params tensor.Conv2DParams, rng *rand.Rand) tensor.LayerResult {
	if kernel == nil {
		kernel = tensor.CreateKernel(params.OutChannels, input.Channels(), params.KernelSize, params.KernelSize, rng)
	}

	planes := parallel.Map(kernel.OutChannels(), func(oc int) [][]int {
		return cpu.Conv2D(input, kernel, params.Stride, params.Padding, oc)
	}, cpu.parallel)

	return tensor.LayerResult{
		Output: stackPlanes(planes),
		Kernel: kernel,
	}
}

// stackPlanes joins equally sized [row][col] planes into one tensor.
// Degenerate layers with an empty plane yield a nil tensor.
func stackPlanes(planes [][][]int) *tensor.Tensor {
	if len(planes) == 0 || len(planes[0]) == 0 || len(planes[0][0]) == 0 {
		return nil
	}
	out, err := tensor.FromRows(planes)
	if err != nil {
		panic(fmt.Sprintf("conv2d layer: %v", err))
	}
	return out
}
