// Package cpu implements the pure Go convolution backend: padding, output
// sizing and im2col convolution over integer tensors.
package cpu

import (
	"github.com/born-ml/convlens/internal/parallel"
	"github.com/born-ml/convlens/internal/tensor"
)

// CPUBackend implements tensor.Backend on the CPU.
type CPUBackend struct {
	parallel parallel.Config
}

// Compile-time check that CPUBackend implements tensor.Backend.
var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend with default parallelism.
func New() *CPUBackend {
	return &CPUBackend{
		parallel: parallel.DefaultConfig(),
	}
}

// NewWithConfig creates a CPU backend with an explicit parallel config.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{parallel: cfg}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Parallel returns the backend's parallel execution config.
func (cpu *CPUBackend) Parallel() parallel.Config {
	return cpu.parallel
}
