package session

import (
	"bytes"
	"log"
	"testing"

	"github.com/google/uuid"

	"github.com/born-ml/convlens/internal/backend/cpu"
	"github.com/born-ml/convlens/internal/field"
	"github.com/born-ml/convlens/internal/parallel"
	"github.com/born-ml/convlens/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// onesSession builds a valid-mode 5x5x3 session over an Arange input and an
// all-ones kernel, so every input cell contributes with weight 1.
func onesSession(t *testing.T) *Session {
	t.Helper()
	cfg := MustConfigure(DefaultParams())
	s, err := New(cfg,
		WithInput(tensor.Arange(cfg.InputShape())),
		WithKernel(tensor.FullKernel(cfg.KernelShape(), 1)),
	)
	require.NoError(t, err)
	return s
}

func TestNew_GeneratesState(t *testing.T) {
	s, err := New(MustConfigure(DefaultParams()), WithSeed(7))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.True(t, tensor.Shape{3, 5, 5}.Equal(s.Input().Shape()))
	assert.True(t, tensor.Shape{3, 3, 3, 3}.Equal(s.Kernel().Shape()))
	assert.True(t, tensor.Shape{3, 3, 3}.Equal(s.Output().Shape()))
	assert.Equal(t, "CPU", s.Backend().Name())

	for _, v := range s.Input().Data() {
		assert.True(t, tensor.InputRange.Contains(v), "input value %d", v)
	}
	for _, v := range s.Kernel().Data() {
		assert.True(t, tensor.KernelRange.Contains(v), "kernel value %d", v)
	}
}

func TestNew_SeedIsReproducible(t *testing.T) {
	cfg := MustConfigure(DefaultParams())
	a, err := New(cfg, WithSeed(42))
	require.NoError(t, err)
	b, err := New(cfg, WithSeed(42))
	require.NoError(t, err)

	assert.True(t, a.Input().Equal(b.Input()))
	assert.True(t, a.Kernel().Equal(b.Kernel()))
	assert.True(t, a.Output().Equal(b.Output()))
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNew_Errors(t *testing.T) {
	cfg := MustConfigure(DefaultParams())

	_, err := New(Configuration{})
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, ErrInvalidDimension)

	_, err = New(cfg, WithInput(tensor.Zeros(tensor.Shape{1, 5, 5})))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	_, err = New(cfg, WithKernel(tensor.NewKernel(tensor.Shape{3, 3, 2, 2})))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestSession_OnesKernelOutput(t *testing.T) {
	s := onesSession(t)

	// Output[0][0][0] sums the 3x3 window over three Arange channels.
	want := 0
	for c := 0; c < 3; c++ {
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				want += c*25 + i*5 + j
			}
		}
	}
	assert.Equal(t, want, s.Output().At(0, 0, 0))
	assert.Equal(t, s.Output().At(0, 1, 2), s.Output().At(2, 1, 2))
}

func TestSession_SetInputCellPropagation(t *testing.T) {
	cells := []field.Cell{
		{Channel: 0, Row: 0, Col: 0},
		{Channel: 1, Row: 2, Col: 3},
		{Channel: 2, Row: 4, Col: 4},
		{Channel: 2, Row: 1, Col: 2},
	}
	for _, cell := range cells {
		s := onesSession(t)
		kernel := s.Kernel().Clone()
		before := s.Output().Clone()

		stored, err := s.SetInputCell(cell.Channel, cell.Row, cell.Col, "100")
		require.NoError(t, err)
		assert.Equal(t, 100, stored)
		assert.Equal(t, 100, s.Input().At(cell.Channel, cell.Row, cell.Col))
		assert.True(t, kernel.Equal(s.Kernel()), "kernel must not change")

		source := field.Coordinate{Layer: 0, Channel: cell.Channel, Row: cell.Row, Col: cell.Col}
		after := s.Output()
		for oc := 0; oc < after.Channels(); oc++ {
			for r := 0; r < after.Height(); r++ {
				for c := 0; c < after.Width(); c++ {
					target := field.Coordinate{Layer: 1, Channel: oc, Row: r, Col: c}
					changed := before.At(oc, r, c) != after.At(oc, r, c)
					influenced := s.AllInfluencing(target).Contains(source)
					assert.Equal(t, influenced, changed, "cell %v target %v", source, target)
				}
			}
		}
	}
}

func TestSession_SetInputCellCoercion(t *testing.T) {
	var buf bytes.Buffer
	cfg := MustConfigure(DefaultParams())
	s, err := New(cfg, WithSeed(1), WithLogger(log.New(&buf, "", 0)))
	require.NoError(t, err)

	v, err := s.SetInputCell(0, 1, 1, "4.7")
	require.NoError(t, err)
	assert.Equal(t, 4, v)
	assert.Equal(t, 4, s.Input().At(0, 1, 1))

	v, err = s.SetInputCell(0, 1, 1, "abc")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
	assert.Contains(t, buf.String(), `coerced "abc" to 0`)

	_, err = s.SetInputCell(3, 0, 0, "1")
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = s.SetInputCell(0, 5, 0, "1")
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestSession_ReceptiveField(t *testing.T) {
	s := onesSession(t)

	rf := s.ReceptiveField(field.Coordinate{Layer: 1, Channel: 0, Row: 1, Col: 1})
	assert.Len(t, rf, 27)
	for _, c := range rf {
		assert.Equal(t, 0, c.Layer)
	}

	target := field.Coordinate{Layer: 1, Channel: 2, Row: 0, Col: 0}
	assert.True(t, s.Influences(target, field.Coordinate{Layer: 0, Channel: 1, Row: 2, Col: 2}))
	assert.False(t, s.Influences(target, field.Coordinate{Layer: 0, Channel: 1, Row: 3, Col: 0}))
	assert.True(t, s.PaddingInfluences(target, 2, 2))
	assert.False(t, s.PaddingInfluences(target, 3, 0))
}

func TestSession_ReconfigureClearsCache(t *testing.T) {
	s := onesSession(t)
	_ = s.ReceptiveField(field.Coordinate{Layer: 1, Channel: 0, Row: 0, Col: 0})
	require.Positive(t, s.Resolver().Len())
	oldInput := s.Input()

	p := DefaultParams()
	p.InputHeight, p.InputWidth = 6, 6
	p.Stride = 2
	p.PaddingMode = tensor.PadReflect
	p.PaddingSize = 1
	res := s.Reconfigure(MustConfigure(p))

	assert.Equal(t, 0, s.Resolver().Len())
	assert.NotSame(t, oldInput, res.Input)
	assert.True(t, tensor.Shape{3, 6, 6}.Equal(res.Input.Shape()))
	// (6 + 2 - 3) / 2 + 1 = 3
	assert.True(t, tensor.Shape{3, 3, 3}.Equal(res.Output.Shape()))
	assert.Same(t, res.Output, s.Output())

	rf := s.ReceptiveField(field.Coordinate{Layer: 1, Channel: 0, Row: 0, Col: 0})
	// The top-left window covers padded rows/cols -1..1; only 0..1 are real.
	assert.Len(t, rf, 3*2*2)
}

func TestSession_TraceMatchesOutput(t *testing.T) {
	for _, mode := range []tensor.PaddingMode{tensor.PadValid, tensor.PadReflect, tensor.PadReplicate, tensor.PadCircular} {
		t.Run(mode.String(), func(t *testing.T) {
			p := DefaultParams()
			p.PaddingMode = mode
			p.PaddingSize = 2
			s, err := New(MustConfigure(p), WithSeed(3))
			require.NoError(t, err)

			out := s.Output()
			for oc := 0; oc < out.Channels(); oc++ {
				for r := 0; r < out.Height(); r++ {
					for c := 0; c < out.Width(); c++ {
						tr, err := s.Trace(oc, r, c)
						require.NoError(t, err)
						assert.Equal(t, out.At(oc, r, c), tr.Total)
					}
				}
			}

			_, err = s.Trace(0, out.Height(), 0)
			assert.Error(t, err)
		})
	}
}

func TestSession_SequentialBackend(t *testing.T) {
	cfg := MustConfigure(DefaultParams())
	a, err := New(cfg, WithSeed(9))
	require.NoError(t, err)
	b, err := New(cfg, WithSeed(9), WithBackend(cpu.NewWithConfig(parallel.Sequential())))
	require.NoError(t, err)

	assert.True(t, a.Output().Equal(b.Output()))

	res := b.Recompute()
	assert.True(t, a.Output().Equal(res.Output))
}
