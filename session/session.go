// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package session

import (
	"io"
	"log"

	"github.com/born-ml/convlens/internal/field"
	"github.com/born-ml/convlens/internal/session"
	"github.com/born-ml/convlens/internal/trace"
	"github.com/born-ml/convlens/tensor"
)

// Type aliases for public API

// Params holds raw, user-supplied settings.
type Params = session.Params

// Configuration is a validated, normalized Params.
type Configuration = session.Configuration

// Notice describes a parameter that was corrected rather than rejected.
type Notice = session.Notice

// ConfigError reports which parameter was rejected.
type ConfigError = session.ConfigError

// Session is the mutable state of one convolution layer.
type Session = session.Session

// Option configures a Session.
type Option = session.Option

// Result is the state after a forward pass.
type Result = session.Result

// Coordinate identifies one scalar in one layer. Layer 0 is the input.
type Coordinate = field.Coordinate

// Cell is a position inside one layer.
type Cell = field.Cell

// Influence maps a layer to the set of its cells in a closure.
type Influence = field.Influence

// Trace explains one output value term by term.
type Trace = trace.Trace

// Term is one input-times-weight product of a Trace.
type Term = trace.Term

// ChannelTrace groups the terms of one input channel.
type ChannelTrace = trace.ChannelTrace

// Errors.
var (
	ErrInvalidDimension = session.ErrInvalidDimension
	ErrKernelTooLarge   = session.ErrKernelTooLarge
	ErrShapeMismatch    = session.ErrShapeMismatch
	ErrOutOfRange       = session.ErrOutOfRange
)

// DefaultParams returns a 5x5x3 input, a 3x3 kernel, three output channels,
// stride 1 and no padding.
func DefaultParams() Params {
	return session.DefaultParams()
}

// Configure validates p and returns the normalized configuration plus any
// corrections that were applied.
func Configure(p Params) (Configuration, []Notice, error) {
	return session.Configure(p)
}

// MustConfigure is like Configure but panics on error.
func MustConfigure(p Params) Configuration {
	return session.MustConfigure(p)
}

// New creates a session for cfg and runs the first forward pass.
func New(cfg Configuration, opts ...Option) (*Session, error) {
	return session.New(cfg, opts...)
}

// WithSeed makes tensor and kernel generation reproducible.
func WithSeed(seed int64) Option { return session.WithSeed(seed) }

// WithBackend replaces the default CPU backend.
func WithBackend(b tensor.Backend) Option { return session.WithBackend(b) }

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option { return session.WithLogger(l) }

// WithInput supplies the input tensor instead of generating one.
func WithInput(t *tensor.Tensor) Option { return session.WithInput(t) }

// WithKernel supplies the kernel instead of generating one.
func WithKernel(k *tensor.Kernel) Option { return session.WithKernel(k) }

// LoadParams decodes YAML parameters on top of DefaultParams.
func LoadParams(r io.Reader) (Params, error) {
	return session.LoadParams(r)
}

// LoadParamsFile reads parameters from a YAML file.
func LoadParamsFile(path string) (Params, error) {
	return session.LoadParamsFile(path)
}

// MarshalParams encodes p as YAML.
func MarshalParams(p Params) ([]byte, error) {
	return session.MarshalParams(p)
}

// ParseCellValue converts user-entered text into a cell value. ok is false
// when the text had to be coerced.
func ParseCellValue(raw string) (value int, ok bool) {
	return session.ParseCellValue(raw)
}
