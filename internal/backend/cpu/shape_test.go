package cpu

import (
	"testing"

	"github.com/born-ml/convlens/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func TestOutputSize(t *testing.T) {
	tests := []struct {
		name    string
		in      int
		k       int
		stride  int
		padding tensor.Padding
		want    int
	}{
		{"valid", 5, 3, 1, tensor.Padding{}, 3},
		{"reflect 1", 5, 3, 1, tensor.Padding{Mode: tensor.PadReflect, Size: 1}, 5},
		{"valid ignores size", 5, 3, 1, tensor.Padding{Mode: tensor.PadValid, Size: 2}, 3},
		{"stride 2", 5, 3, 2, tensor.Padding{}, 2},
		{"stride floors", 6, 3, 2, tensor.Padding{}, 2},
		{"circular 2 stride 2", 7, 3, 2, tensor.Padding{Mode: tensor.PadCircular, Size: 2}, 5},
		{"replicate size 0", 4, 2, 1, tensor.Padding{Mode: tensor.PadReplicate}, 3},
		{"kernel too large", 2, 3, 1, tensor.Padding{}, 0},
		{"negative floors down", 2, 5, 2, tensor.Padding{}, -1},
	}

	backend := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, backend.OutputSize(tt.in, tt.k, tt.stride, tt.padding))
		})
	}
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 2, floorDiv(5, 2))
	assert.Equal(t, -2, floorDiv(-3, 2))
	assert.Equal(t, -1, floorDiv(-2, 2))
	assert.Equal(t, 0, floorDiv(0, 3))
}
