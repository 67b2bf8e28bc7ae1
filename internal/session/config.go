package session

import (
	"fmt"

	"github.com/born-ml/convlens/internal/backend/cpu"
	"github.com/born-ml/convlens/internal/field"
	"github.com/born-ml/convlens/internal/tensor"
)

// Params holds raw, user-supplied settings for one convolution stage.
type Params struct {
	InputHeight    int                `yaml:"input_height"`
	InputWidth     int                `yaml:"input_width"`
	InputChannels  int                `yaml:"input_channels"`
	KernelSize     int                `yaml:"kernel_size"`
	OutputChannels int                `yaml:"output_channels"`
	Stride         int                `yaml:"stride"`
	PaddingMode    tensor.PaddingMode `yaml:"padding_mode"`
	PaddingSize    int                `yaml:"padding_size"`
}

// DefaultParams returns a 5x5x3 input, a 3x3 kernel, three output channels,
// stride 1 and no padding.
func DefaultParams() Params {
	return Params{
		InputHeight:    5,
		InputWidth:     5,
		InputChannels:  3,
		KernelSize:     3,
		OutputChannels: 3,
		Stride:         1,
		PaddingMode:    tensor.PadValid,
		PaddingSize:    0,
	}
}

// Configuration is a validated, normalized Params. It is immutable: build a
// new one with Configure for every parameter change.
type Configuration struct {
	params Params
}

// Configure validates p and returns the normalized configuration.
//
// Valid padding forces the size to 0. For other modes a size outside
// [0, kernel_size) is clamped and reported as a Notice instead of failing.
// The kernel must fit the (padded) input. On error the caller should keep
// its previous configuration.
func Configure(p Params) (Configuration, []Notice, error) {
	var notices []Notice

	positive := []struct {
		name  string
		value int
	}{
		{"input_height", p.InputHeight},
		{"input_width", p.InputWidth},
		{"input_channels", p.InputChannels},
		{"kernel_size", p.KernelSize},
		{"output_channels", p.OutputChannels},
		{"stride", p.Stride},
	}
	for _, f := range positive {
		if f.value <= 0 {
			return Configuration{}, nil, &ConfigError{Field: f.name, Value: f.value, Err: ErrInvalidDimension}
		}
	}

	switch p.PaddingMode {
	case tensor.PadValid:
		p.PaddingSize = 0
	case tensor.PadReflect, tensor.PadReplicate, tensor.PadCircular:
		if p.PaddingSize < 0 {
			notices = append(notices, Notice{
				Field: "padding_size", From: p.PaddingSize, To: 0,
				Cause: "padding size cannot be negative",
			})
			p.PaddingSize = 0
		}
		if maxSize := p.KernelSize - 1; p.PaddingSize > maxSize {
			notices = append(notices, Notice{
				Field: "padding_size", From: p.PaddingSize, To: maxSize,
				Cause: fmt.Sprintf("must be smaller than kernel size %d", p.KernelSize),
			})
			p.PaddingSize = maxSize
		}
	default:
		return Configuration{}, nil, &ConfigError{Field: "padding_mode", Value: int(p.PaddingMode), Err: tensor.ErrUnknownPadding}
	}

	paddedH := p.InputHeight + 2*p.PaddingSize
	paddedW := p.InputWidth + 2*p.PaddingSize
	if p.KernelSize > paddedH || p.KernelSize > paddedW {
		return Configuration{}, nil, &ConfigError{
			Field: "kernel_size",
			Value: p.KernelSize,
			Err:   fmt.Errorf("%w: %dx%d", ErrKernelTooLarge, paddedH, paddedW),
		}
	}

	return Configuration{params: p}, notices, nil
}

// MustConfigure is like Configure but panics on error. Intended for tests
// and fixed defaults.
func MustConfigure(p Params) Configuration {
	cfg, _, err := Configure(p)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Params returns the normalized parameters.
func (c Configuration) Params() Params { return c.params }

// Padding returns the normalized padding.
func (c Configuration) Padding() tensor.Padding {
	return tensor.Padding{Mode: c.params.PaddingMode, Size: c.params.PaddingSize}
}

// InputShape returns {channels, height, width} of the input tensor.
func (c Configuration) InputShape() tensor.Shape {
	return tensor.Shape{c.params.InputChannels, c.params.InputHeight, c.params.InputWidth}
}

// KernelShape returns {out, in, k, k}.
func (c Configuration) KernelShape() tensor.Shape {
	k := c.params.KernelSize
	return tensor.Shape{c.params.OutputChannels, c.params.InputChannels, k, k}
}

// OutputShape returns {out_channels, out_h, out_w}.
func (c Configuration) OutputShape() tensor.Shape {
	p := c.params
	return tensor.Shape{
		p.OutputChannels,
		cpu.OutputSize(p.InputHeight, p.KernelSize, p.Stride, c.Padding()),
		cpu.OutputSize(p.InputWidth, p.KernelSize, p.Stride, c.Padding()),
	}
}

// Conv2DParams returns the stage description consumed by a backend.
func (c Configuration) Conv2DParams() tensor.Conv2DParams {
	return tensor.Conv2DParams{
		KernelSize:  c.params.KernelSize,
		Stride:      c.params.Stride,
		OutChannels: c.params.OutputChannels,
		Padding:     c.Padding(),
	}
}

// Stages returns the receptive-field stages: a single convolution after
// the input.
func (c Configuration) Stages() []field.Stage {
	return []field.Stage{{
		Stride:     c.params.Stride,
		KernelSize: c.params.KernelSize,
		Padding:    c.Padding(),
		InShape:    c.InputShape(),
	}}
}
