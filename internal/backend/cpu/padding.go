package cpu

import (
	"fmt"

	"github.com/born-ml/convlens/internal/tensor"
)

// Pad returns a copy of t surrounded by p.Size cells on every side.
//
// Valid mode, or an effective size of 0, returns t itself. Otherwise each
// channel becomes (H+2s)x(W+2s): interior cells are copied, border cells are
// resolved per axis by SourceIndex. The input is never modified.
func (cpu *CPUBackend) Pad(t *tensor.Tensor, p tensor.Padding) *tensor.Tensor {
	size := p.Effective()
	if size == 0 {
		return t
	}
	switch p.Mode {
	case tensor.PadReflect, tensor.PadReplicate, tensor.PadCircular:
	default:
		panic(fmt.Sprintf("pad: unsupported mode %v", p.Mode))
	}

	C, H, W := t.Channels(), t.Height(), t.Width()
	HPad, WPad := H+2*size, W+2*size
	out := tensor.Zeros(tensor.Shape{C, HPad, WPad})

	// Row and column lookups are shared by every channel.
	rowSrc := make([]int, HPad)
	for h := range rowSrc {
		rowSrc[h] = SourceIndex(p.Mode, h-size, H)
	}
	colSrc := make([]int, WPad)
	for w := range colSrc {
		colSrc[w] = SourceIndex(p.Mode, w-size, W)
	}

	for c := 0; c < C; c++ {
		for h := 0; h < HPad; h++ {
			for w := 0; w < WPad; w++ {
				out.Set(c, h, w, t.At(c, rowSrc[h], colSrc[w]))
			}
		}
	}
	return out
}

// SourceIndex maps a coordinate of the unpadded axis, possibly outside
// [0, dim), to the index whose value fills it under mode.
//
// In-range indices map to themselves for every mode. Valid mode has no
// border and returns idx unchanged.
func SourceIndex(mode tensor.PaddingMode, idx, dim int) int {
	if idx >= 0 && idx < dim {
		return idx
	}
	switch mode {
	case tensor.PadReplicate:
		return clamp(idx, 0, dim-1)
	case tensor.PadCircular:
		return ((idx % dim) + dim) % dim
	case tensor.PadReflect:
		return reflectIndex(idx, dim)
	default:
		return idx
	}
}

// reflectIndex mirrors idx about the edges without repeating the edge
// sample: -1 -> 1, -2 -> 2, dim -> dim-2. Offsets beyond one full mirror
// fold back periodically with cycle 2*(dim-1).
func reflectIndex(idx, dim int) int {
	if dim == 1 {
		return 0
	}
	cycle := 2 * (dim - 1)
	m := idx
	switch {
	case m < 0:
		m = -m
		if m >= dim {
			m %= cycle
			if m >= dim {
				m = cycle - m
			}
		}
	case m >= dim:
		m = cycle - m
		if m < 0 {
			m = -m % cycle
			if m >= dim {
				m = cycle - m
			}
		}
	}
	return clamp(m, 0, dim-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
