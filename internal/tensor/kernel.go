package tensor

import (
	"fmt"
	"strings"
)

// Kernel is a 4D integer weight array indexed [out][in][kh][kw].
type Kernel struct {
	shape   Shape
	strides []int
	data    []int
}

// NewKernel creates a zero kernel of shape {out, in, kh, kw}.
func NewKernel(shape Shape) *Kernel {
	if len(shape) != 4 {
		panic(fmt.Sprintf("kernel: must be 4D [C_out,C_in,K_h,K_w], got %dD", len(shape)))
	}
	if err := shape.Validate(); err != nil {
		panic(fmt.Sprintf("kernel: %v", err))
	}
	return &Kernel{
		shape:   shape.Clone(),
		strides: shape.ComputeStrides(),
		data:    make([]int, shape.NumElements()),
	}
}

// KernelFromSlice creates a kernel from flat row-major data.
func KernelFromSlice(data []int, shape Shape) (*Kernel, error) {
	if len(shape) != 4 {
		return nil, fmt.Errorf("%w: kernel must be 4D [C_out,C_in,K_h,K_w], got %dD", ErrInvalidShape, len(shape))
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	if len(data) != shape.NumElements() {
		return nil, fmt.Errorf("%w: got %d weights for shape %v", ErrShapeMismatch, len(data), shape)
	}
	k := NewKernel(shape)
	copy(k.data, data)
	return k, nil
}

// FullKernel creates a kernel with every weight set to value.
func FullKernel(shape Shape, value int) *Kernel {
	k := NewKernel(shape)
	for i := range k.data {
		k.data[i] = value
	}
	return k
}

// Shape returns a copy of the kernel's shape.
func (k *Kernel) Shape() Shape { return k.shape.Clone() }

// OutChannels returns the number of output channels.
func (k *Kernel) OutChannels() int { return k.shape[0] }

// InChannels returns the number of input channels.
func (k *Kernel) InChannels() int { return k.shape[1] }

// Height returns the kernel's spatial height.
func (k *Kernel) Height() int { return k.shape[2] }

// Width returns the kernel's spatial width.
func (k *Kernel) Width() int { return k.shape[3] }

// Data returns the underlying row-major storage.
func (k *Kernel) Data() []int { return k.data }

// At returns weight [oc][ic][kh][kw].
func (k *Kernel) At(oc, ic, kh, kw int) int {
	return k.data[k.offset(oc, ic, kh, kw)]
}

// Set overwrites weight [oc][ic][kh][kw].
func (k *Kernel) Set(oc, ic, kh, kw, value int) {
	k.data[k.offset(oc, ic, kh, kw)] = value
}

func (k *Kernel) offset(oc, ic, kh, kw int) int {
	if oc < 0 || oc >= k.shape[0] || ic < 0 || ic >= k.shape[1] ||
		kh < 0 || kh >= k.shape[2] || kw < 0 || kw >= k.shape[3] {
		panic(fmt.Sprintf("kernel: index [%d,%d,%d,%d] out of range for shape %v", oc, ic, kh, kw, k.shape))
	}
	return oc*k.strides[0] + ic*k.strides[1] + kh*k.strides[2] + kw
}

// Row returns the weights of one output channel flattened as [in*kh*kw].
// The slice aliases the kernel's storage.
func (k *Kernel) Row(oc int) []int {
	start := k.offset(oc, 0, 0, 0)
	return k.data[start : start+k.strides[0]]
}

// Clone returns a deep copy.
func (k *Kernel) Clone() *Kernel {
	out := NewKernel(k.shape)
	copy(out.data, k.data)
	return out
}

// Equal reports structural equality.
func (k *Kernel) Equal(other *Kernel) bool {
	if k == other {
		return true
	}
	if k == nil || other == nil || !k.shape.Equal(other.shape) {
		return false
	}
	for i, v := range k.data {
		if other.data[i] != v {
			return false
		}
	}
	return true
}

// Slice returns the [kh][kw] weights connecting input channel ic to output channel oc.
func (k *Kernel) Slice(oc, ic int) [][]int {
	out := make([][]int, k.shape[2])
	for h := range out {
		start := k.offset(oc, ic, h, 0)
		out[h] = append([]int(nil), k.data[start:start+k.shape[3]]...)
	}
	return out
}

// String renders every [out][in] slice.
func (k *Kernel) String() string {
	var sb strings.Builder
	for oc := 0; oc < k.shape[0]; oc++ {
		for ic := 0; ic < k.shape[1]; ic++ {
			fmt.Fprintf(&sb, "kernel[%d][%d]:\n", oc, ic)
			for _, row := range k.Slice(oc, ic) {
				for _, v := range row {
					fmt.Fprintf(&sb, "%4d", v)
				}
				sb.WriteByte('\n')
			}
		}
	}
	return sb.String()
}
