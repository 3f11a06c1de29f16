package ilu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(t *testing.T) {
	m, err := NewMatrix(3, []int{0, 2, 3, 5}, []int{1, 0, 1, 2, 0}, []float64{-1, 4, 4, 4, -1})
	require.NoError(t, err)
	assert.Equal(t, 5, m.Nnz())
	assert.Equal(t, 4.0, m.At(0, 0))
	assert.Equal(t, -1.0, m.At(0, 1))
	assert.Equal(t, 0.0, m.At(0, 2))
	assert.InDelta(t, 500.0/9.0, m.Density(), 1e-12)

	cols, vals := m.Row(2)
	assert.Equal(t, []int{2, 0}, cols)
	assert.Equal(t, []float64{4, -1}, vals)
}

func TestNewMatrixInvalid(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		rowStart []int
		colIndex []int
		value    []float64
		want     error
	}{
		{"zero size", 0, []int{0}, nil, nil, ErrInvalidSize},
		{"short row pointer", 2, []int{0, 1}, []int{0}, []float64{1}, ErrDimensionMismatch},
		{"value count", 1, []int{0, 1}, []int{0}, []float64{1, 2}, ErrDimensionMismatch},
		{"nonzero base", 1, []int{1, 1}, []int{0}, []float64{1}, ErrDimensionMismatch},
		{"pointer past end", 2, []int{0, 2, 1}, []int{0}, []float64{1}, ErrOutOfRange},
		{"empty row", 2, []int{0, 1, 1}, []int{0}, []float64{1}, ErrEmptyRow},
		{"column too large", 1, []int{0, 1}, []int{1}, []float64{1}, ErrOutOfRange},
		{"negative column", 1, []int{0, 1}, []int{-1}, []float64{1}, ErrOutOfRange},
		{"duplicate column", 1, []int{0, 2}, []int{0, 0}, []float64{1, 2}, ErrDuplicateEntry},
		{"NaN", 1, []int{0, 1}, []int{0}, []float64{math.NaN()}, ErrNaNInf},
		{"Inf", 1, []int{0, 1}, []int{0}, []float64{math.Inf(-1)}, ErrNaNInf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMatrix(tt.size, tt.rowStart, tt.colIndex, tt.value)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuilderSumsDuplicates(t *testing.T) {
	b, err := NewBuilder(2)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Size())

	require.NoError(t, b.Add(1, 1, -1))
	require.NoError(t, b.Add(0, 0, 1))
	require.NoError(t, b.Add(1, 0, 3))
	require.NoError(t, b.Add(0, 0, 2))
	require.NoError(t, b.Add(1, 1, 1))

	m, err := b.Matrix()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 3}, m.RowStart)
	assert.Equal(t, []int{0, 0, 1}, m.ColIndex)
	// A position that sums to zero stays in the pattern.
	assert.Equal(t, []float64{3, 3, 0}, m.Value)

	// The builder can keep stamping after Matrix.
	require.NoError(t, b.Add(0, 1, 5))
	m2, err := b.Matrix()
	require.NoError(t, err)
	assert.Equal(t, 4, m2.Nnz())
	assert.Equal(t, 3, m.Nnz())
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder(0)
	assert.ErrorIs(t, err, ErrInvalidSize)

	b, err := NewBuilder(2)
	require.NoError(t, err)
	assert.ErrorIs(t, b.Add(2, 0, 1), ErrOutOfRange)
	assert.ErrorIs(t, b.Add(0, -1, 1), ErrOutOfRange)
	assert.ErrorIs(t, b.Add(0, 0, math.NaN()), ErrNaNInf)

	require.NoError(t, b.Add(0, 0, 1))
	_, err = b.Matrix()
	assert.ErrorIs(t, err, ErrEmptyRow)
}

func TestNewMatrixFromDense(t *testing.T) {
	m, err := NewMatrixFromDense([][]float64{
		{2, 0, 1},
		{0, 3, 0},
		{1, 0, 4},
	})
	require.NoError(t, err)
	assert.Equal(t, 5, m.Nnz())
	assert.Equal(t, 1.0, m.At(2, 0))
	assert.False(t, stored(m, 0, 1))

	_, err = NewMatrixFromDense([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewMatrixFromDense(nil)
	assert.ErrorIs(t, err, ErrInvalidSize)
}
