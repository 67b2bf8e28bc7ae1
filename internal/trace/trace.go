// Package trace reconstructs the sum behind one convolution output cell,
// term by term.
package trace

import (
	"errors"
	"fmt"

	"github.com/born-ml/convlens/internal/tensor"
)

// Common errors.
var (
	ErrChannelMismatch = errors.New("kernel input channels do not match input tensor")
	ErrOutChannel      = errors.New("output channel out of range")
	ErrOutOfRange      = errors.New("output coordinate out of range")
	ErrInvalidStride   = errors.New("stride must be positive")
)

// Term is one product input x weight of the sum.
type Term struct {
	InChannel int
	KH        int
	KW        int
	// PaddedRow and PaddedCol address the padded input.
	PaddedRow int
	PaddedCol int
	// Row and Col address the unpadded input; they fall outside it when
	// IsPadding is set.
	Row       int
	Col       int
	IsPadding bool
	Value     int
	Weight    int
	Product   int
}

// ChannelTrace groups the terms read from one input channel.
type ChannelTrace struct {
	Channel int
	Terms   []Term
	Sum     int
}

// Trace is the full breakdown of output[OutChannel][Row][Col].
type Trace struct {
	OutChannel int
	Row        int
	Col        int
	// Channels holds only input channels that contributed at least one term.
	Channels []ChannelTrace
	Total    int
	// Participating counts the terms actually summed; Possible is
	// C_in*K_h*K_w. They differ when the window is truncated at the edge.
	Participating int
	Possible      int
}

// Channel returns the breakdown for input channel c, if it contributed.
func (t *Trace) Channel(c int) (ChannelTrace, bool) {
	for _, ch := range t.Channels {
		if ch.Channel == c {
			return ch, true
		}
	}
	return ChannelTrace{}, false
}

// PaddingTerms counts terms whose value came from the padding border.
func (t *Trace) PaddingTerms() int {
	n := 0
	for _, ch := range t.Channels {
		for _, term := range ch.Terms {
			if term.IsPadding {
				n++
			}
		}
	}
	return n
}

// Request identifies the output cell to explain and the tensors behind it.
type Request struct {
	Input      *tensor.Tensor
	Kernel     *tensor.Kernel
	Stride     int
	Padding    tensor.Padding
	OutChannel int
	Row        int
	Col        int
}

// Build recomputes output[OutChannel][Row][Col] term by term.
//
// The input is padded through b exactly as the forward pass pads it. For
// every (channel, kh, kw) the padded coordinate is formed; positions
// outside the padded tensor are left out entirely rather than counted as
// zero. The resulting Total always equals the forward-pass value.
func Build(b tensor.Backend, req Request) (*Trace, error) {
	in, k := req.Input, req.Kernel
	if k.InChannels() != in.Channels() {
		return nil, fmt.Errorf("%w: kernel %d, input %d", ErrChannelMismatch, k.InChannels(), in.Channels())
	}
	if req.Stride <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStride, req.Stride)
	}
	if req.OutChannel < 0 || req.OutChannel >= k.OutChannels() {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrOutChannel, req.OutChannel, k.OutChannels())
	}
	outH := b.OutputSize(in.Height(), k.Height(), req.Stride, req.Padding)
	outW := b.OutputSize(in.Width(), k.Width(), req.Stride, req.Padding)
	if req.Row < 0 || req.Row >= outH || req.Col < 0 || req.Col >= outW {
		return nil, fmt.Errorf("%w: (%d,%d) not in %dx%d", ErrOutOfRange, req.Row, req.Col, outH, outW)
	}

	padded := b.Pad(in, req.Padding)
	pad := req.Padding.Effective()

	tr := &Trace{
		OutChannel: req.OutChannel,
		Row:        req.Row,
		Col:        req.Col,
		Possible:   in.Channels() * k.Height() * k.Width(),
	}

	for ic := 0; ic < in.Channels(); ic++ {
		ch := ChannelTrace{Channel: ic}
		for kh := 0; kh < k.Height(); kh++ {
			for kw := 0; kw < k.Width(); kw++ {
				ph := req.Row*req.Stride + kh
				pw := req.Col*req.Stride + kw
				if ph >= padded.Height() || pw >= padded.Width() {
					continue
				}

				value := padded.At(ic, ph, pw)
				weight := k.At(req.OutChannel, ic, kh, kw)
				term := Term{
					InChannel: ic,
					KH:        kh,
					KW:        kw,
					PaddedRow: ph,
					PaddedCol: pw,
					Row:       ph - pad,
					Col:       pw - pad,
					Value:     value,
					Weight:    weight,
					Product:   value * weight,
				}
				term.IsPadding = !in.InBounds(ic, term.Row, term.Col)

				ch.Terms = append(ch.Terms, term)
				ch.Sum += term.Product
			}
		}
		if len(ch.Terms) == 0 {
			continue
		}
		tr.Channels = append(tr.Channels, ch)
		tr.Total += ch.Sum
		tr.Participating += len(ch.Terms)
	}
	return tr, nil
}
