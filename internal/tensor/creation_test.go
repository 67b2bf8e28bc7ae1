package tensor

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTensor(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	x := CreateTensor(4, 6, 3, rng)

	assert.True(t, Shape{3, 4, 6}.Equal(x.Shape()))
	for _, v := range x.Data() {
		assert.True(t, InputRange.Contains(v), "value %d outside %v", v, InputRange)
	}
}

func TestCreateTensor_CoversRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	x := CreateTensor(20, 20, 3, rng)

	seen := make(map[int]bool)
	for _, v := range x.Data() {
		seen[v] = true
	}
	assert.True(t, seen[InputRange.Min], "min bound never drawn")
	assert.True(t, seen[InputRange.Max], "max bound never drawn")
}

func TestCreateTensor_SeedIsReproducible(t *testing.T) {
	a := CreateTensor(5, 5, 2, rand.New(rand.NewSource(99)))
	b := CreateTensor(5, 5, 2, rand.New(rand.NewSource(99)))
	assert.True(t, a.Equal(b))
}

func TestCreateTensor_NilRNG(t *testing.T) {
	x := CreateTensor(2, 2, 1, nil)
	for _, v := range x.Data() {
		assert.True(t, InputRange.Contains(v))
	}
}

func TestCreateKernel(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	k := CreateKernel(2, 3, 3, 3, rng)

	assert.Equal(t, 2, k.OutChannels())
	assert.Equal(t, 3, k.InChannels())
	assert.Equal(t, 3, k.Height())
	assert.Equal(t, 3, k.Width())
	require.Len(t, k.Data(), 54)
	for _, v := range k.Data() {
		assert.True(t, KernelRange.Contains(v), "weight %d outside %v", v, KernelRange)
	}
}

func TestFullAndArange(t *testing.T) {
	f := Full(Shape{1, 2, 2}, 7)
	assert.Equal(t, []int{7, 7, 7, 7}, f.Data())

	a := Arange(Shape{2, 2, 3})
	assert.Equal(t, 0, a.At(0, 0, 0))
	assert.Equal(t, 5, a.At(0, 1, 2))
	assert.Equal(t, 6, a.At(1, 0, 0))
	assert.Equal(t, 11, a.At(1, 1, 2))
}
