// Package session owns one interactive convolution session: the current
// configuration, the input tensor and kernel it generated, the forward-pass
// output, and the receptive-field cache that goes with them.
package session

import (
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/google/uuid"

	"github.com/born-ml/convlens/internal/backend/cpu"
	"github.com/born-ml/convlens/internal/field"
	"github.com/born-ml/convlens/internal/tensor"
	"github.com/born-ml/convlens/internal/trace"
)

// Result is the state after a forward pass.
type Result struct {
	Input  *tensor.Tensor
	Kernel *tensor.Kernel
	Output *tensor.Tensor
}

// Option configures a Session.
type Option func(*Session)

// WithSeed makes tensor and kernel generation reproducible.
func WithSeed(seed int64) Option {
	return func(s *Session) {
		s.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // G404: synthetic visualisation data
	}
}

// WithBackend replaces the default CPU backend.
func WithBackend(b tensor.Backend) Option {
	return func(s *Session) { s.backend = b }
}

// WithLogger sets the session logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithInput supplies the input tensor instead of generating one. The
// session takes ownership: SetInputCell writes into it.
func WithInput(t *tensor.Tensor) Option {
	return func(s *Session) { s.input = t }
}

// WithKernel supplies the kernel instead of generating one.
func WithKernel(k *tensor.Kernel) Option {
	return func(s *Session) { s.kernel = k }
}

// Session is the caller-owned mutable state around an immutable
// Configuration. It is meant for use from a single goroutine.
type Session struct {
	ID uuid.UUID

	cfg      Configuration
	backend  tensor.Backend
	rng      *rand.Rand
	logger   *log.Logger
	resolver *field.Resolver

	input  *tensor.Tensor
	kernel *tensor.Kernel
	output *tensor.Tensor
}

// New creates a session for cfg and runs the first forward pass.
func New(cfg Configuration, opts ...Option) (*Session, error) {
	if cfg.params.InputChannels <= 0 {
		return nil, &ConfigError{Field: "configuration", Value: "zero", Err: ErrInvalidDimension}
	}
	s := &Session{
		ID:      uuid.New(),
		cfg:     cfg,
		backend: cpu.New(),
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.input != nil && !s.input.Shape().Equal(cfg.InputShape()) {
		return nil, fmt.Errorf("%w: input %v, want %v", ErrShapeMismatch, s.input.Shape(), cfg.InputShape())
	}
	if s.kernel != nil && !s.kernel.Shape().Equal(cfg.KernelShape()) {
		return nil, fmt.Errorf("%w: kernel %v, want %v", ErrShapeMismatch, s.kernel.Shape(), cfg.KernelShape())
	}
	s.resolver = field.NewResolver(cfg.Stages()...)
	s.Recompute()
	return s, nil
}

// Config returns the active configuration.
func (s *Session) Config() Configuration { return s.cfg }

// Backend returns the compute backend.
func (s *Session) Backend() tensor.Backend { return s.backend }

// Input returns the current input tensor.
func (s *Session) Input() *tensor.Tensor { return s.input }

// Kernel returns the current kernel.
func (s *Session) Kernel() *tensor.Kernel { return s.kernel }

// Output returns the latest forward-pass output.
func (s *Session) Output() *tensor.Tensor { return s.output }

// Recompute runs the full forward pass: the input tensor is generated if
// missing, the kernel is generated if missing, and the output is rebuilt.
// Nothing is incremental.
func (s *Session) Recompute() Result {
	p := s.cfg.params
	if s.input == nil {
		s.input = tensor.CreateTensor(p.InputHeight, p.InputWidth, p.InputChannels, s.rng)
	}
	res := s.backend.Conv2DLayer(s.input, s.kernel, s.cfg.Conv2DParams(), s.rng)
	s.kernel = res.Kernel
	s.output = res.Output

	s.logger.Printf("session %s: recomputed %v -> %v (%s)", s.ID, s.input.Shape(), s.cfg.OutputShape(), s.cfg.Padding())
	return Result{Input: s.input, Kernel: s.kernel, Output: s.output}
}

// Reconfigure switches to cfg, regenerating input and kernel. The
// receptive-field cache is cleared because every entry depends on the
// old configuration.
func (s *Session) Reconfigure(cfg Configuration) Result {
	s.cfg = cfg
	s.input = nil
	s.kernel = nil
	s.resolver.Reset(cfg.Stages()...)
	s.logger.Printf("session %s: reconfigured %+v", s.ID, cfg.params)
	return s.Recompute()
}

// SetInputCell overwrites one input value and recomputes everything
// downstream. Malformed text is coerced to 0 (see ParseCellValue). The
// kernel is left untouched. It returns the value stored.
func (s *Session) SetInputCell(channel, row, col int, raw string) (int, error) {
	if !s.input.InBounds(channel, row, col) {
		return 0, fmt.Errorf("%w: input [%d,%d,%d] not in %v", ErrOutOfRange, channel, row, col, s.input.Shape())
	}
	value, ok := ParseCellValue(raw)
	if !ok {
		s.logger.Printf("session %s: coerced %q to %d", s.ID, raw, value)
	}
	s.input.Set(channel, row, col, value)
	s.Recompute()
	return value, nil
}

// ReceptiveField returns the single-hop receptive field of c.
func (s *Session) ReceptiveField(c field.Coordinate) []field.Coordinate {
	return s.resolver.Resolve(c)
}

// AllInfluencing returns the closure of c across every layer.
func (s *Session) AllInfluencing(c field.Coordinate) field.Influence {
	return s.resolver.AllInfluencing(c)
}

// Influences reports whether source feeds target.
func (s *Session) Influences(target, source field.Coordinate) bool {
	return s.resolver.Influences(target, source)
}

// PaddingInfluences reports whether a padded-space input position lies
// under target's kernel footprint.
func (s *Session) PaddingInfluences(target field.Coordinate, paddedRow, paddedCol int) bool {
	return s.resolver.PaddingInfluences(target, paddedRow, paddedCol)
}

// Resolver exposes the receptive-field resolver, mainly for diagnostics.
func (s *Session) Resolver() *field.Resolver { return s.resolver }

// Trace explains output[outChannel][row][col] over the current tensors.
func (s *Session) Trace(outChannel, row, col int) (*trace.Trace, error) {
	return trace.Build(s.backend, trace.Request{
		Input:      s.input,
		Kernel:     s.kernel,
		Stride:     s.cfg.params.Stride,
		Padding:    s.cfg.Padding(),
		OutChannel: outChannel,
		Row:        row,
		Col:        col,
	})
}
