package session

import (
	"testing"

	"github.com/born-ml/convlens/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigure_Defaults(t *testing.T) {
	cfg, notices, err := Configure(DefaultParams())
	require.NoError(t, err)
	assert.Empty(t, notices)

	assert.True(t, tensor.Shape{3, 5, 5}.Equal(cfg.InputShape()))
	assert.True(t, tensor.Shape{3, 3, 3, 3}.Equal(cfg.KernelShape()))
	assert.True(t, tensor.Shape{3, 3, 3}.Equal(cfg.OutputShape()))
	assert.Equal(t, tensor.Padding{Mode: tensor.PadValid}, cfg.Padding())
}

func TestConfigure_ValidForcesZeroPadding(t *testing.T) {
	p := DefaultParams()
	p.PaddingSize = 2

	cfg, notices, err := Configure(p)
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, 0, cfg.Params().PaddingSize)
	assert.True(t, tensor.Shape{3, 3, 3}.Equal(cfg.OutputShape()))
}

func TestConfigure_ClampsPaddingSize(t *testing.T) {
	p := DefaultParams()
	p.PaddingMode = tensor.PadReflect
	p.PaddingSize = 3

	cfg, notices, err := Configure(p)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "padding_size", notices[0].Field)
	assert.Equal(t, 3, notices[0].From)
	assert.Equal(t, 2, notices[0].To)
	assert.Contains(t, notices[0].String(), "adjusted from 3 to 2")

	assert.Equal(t, 2, cfg.Params().PaddingSize)
	assert.True(t, tensor.Shape{3, 7, 7}.Equal(cfg.OutputShape()))
}

func TestConfigure_NegativePaddingSize(t *testing.T) {
	p := DefaultParams()
	p.PaddingMode = tensor.PadCircular
	p.PaddingSize = -1

	cfg, notices, err := Configure(p)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, 0, cfg.Params().PaddingSize)
}

func TestConfigure_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
		field  string
		want   error
	}{
		{"zero height", func(p *Params) { p.InputHeight = 0 }, "input_height", ErrInvalidDimension},
		{"negative stride", func(p *Params) { p.Stride = -1 }, "stride", ErrInvalidDimension},
		{"zero out channels", func(p *Params) { p.OutputChannels = 0 }, "output_channels", ErrInvalidDimension},
		{"unknown padding", func(p *Params) { p.PaddingMode = tensor.PaddingMode(9) }, "padding_mode", tensor.ErrUnknownPadding},
		{"kernel too large valid", func(p *Params) { p.KernelSize = 6 }, "kernel_size", ErrKernelTooLarge},
		{"kernel too large padded", func(p *Params) {
			p.InputWidth = 2
			p.KernelSize = 5
			p.PaddingMode = tensor.PadReplicate
			p.PaddingSize = 1
		}, "kernel_size", ErrKernelTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.mutate(&p)

			_, _, err := Configure(p)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestConfigure_PaddingRescuesKernel(t *testing.T) {
	// A 4x4 kernel does not fit a 3x3 input, but fits once padded by 1.
	p := DefaultParams()
	p.InputHeight, p.InputWidth = 3, 3
	p.KernelSize = 4
	p.PaddingMode = tensor.PadReplicate
	p.PaddingSize = 1

	cfg, _, err := Configure(p)
	require.NoError(t, err)
	assert.True(t, tensor.Shape{3, 2, 2}.Equal(cfg.OutputShape()))
}

func TestConfiguration_Stages(t *testing.T) {
	p := DefaultParams()
	p.Stride = 2
	p.PaddingMode = tensor.PadCircular
	p.PaddingSize = 1
	cfg := MustConfigure(p)

	stages := cfg.Stages()
	require.Len(t, stages, 1)
	assert.Equal(t, 2, stages[0].Stride)
	assert.Equal(t, 3, stages[0].KernelSize)
	assert.Equal(t, cfg.Padding(), stages[0].Padding)
	assert.True(t, cfg.InputShape().Equal(stages[0].InShape))

	conv := cfg.Conv2DParams()
	assert.Equal(t, 3, conv.OutChannels)
	assert.Equal(t, 2, conv.Stride)
}

func TestMustConfigure_Panics(t *testing.T) {
	p := DefaultParams()
	p.KernelSize = 0
	assert.Panics(t, func() { MustConfigure(p) })
}
