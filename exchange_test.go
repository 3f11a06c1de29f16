package ilu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestTranspose(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	a := randomMMatrix(t, rng, 15, 0.2)

	at := a.Transpose()
	require.NoError(t, at.Validate())
	assert.True(t, mat.Equal(toDense(a).T(), toDense(at)))

	for i := 0; i < at.Size; i++ {
		cols, _ := at.Row(i)
		for k := 1; k < len(cols); k++ {
			assert.Less(t, cols[k-1], cols[k])
		}
	}
	assert.True(t, mat.Equal(toDense(a), toDense(at.Transpose())))
}

func TestNewMatrixFromCSC(t *testing.T) {
	// [ 4 -1  0 ]
	// [ 0  4  2 ]
	// [-1  0  4 ]
	colStart := []int{0, 2, 4, 6}
	rowIndex := []int{0, 2, 0, 1, 1, 2}
	value := []float64{4, -1, -1, 4, 2, 4}

	m, err := NewMatrixFromCSC(3, colStart, rowIndex, value)
	require.NoError(t, err)
	assert.Equal(t, -1.0, m.At(0, 1))
	assert.Equal(t, 2.0, m.At(1, 2))
	assert.Equal(t, -1.0, m.At(2, 0))
	assert.Equal(t, 0.0, m.At(0, 2))
	assert.Equal(t, []int{0, 2, 4, 6}, colStart)

	// Columns may be empty as long as no row is.
	m, err = NewMatrixFromCSC(2, []int{0, 2, 2}, []int{0, 1}, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Nnz())

	_, err = NewMatrixFromCSC(2, []int{0, 1, 2}, []int{0, 0}, []float64{1, 1})
	assert.ErrorIs(t, err, ErrEmptyRow)

	_, err = NewMatrixFromCSC(2, []int{0, 1, 2}, []int{0, 2}, []float64{1, 1})
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestTransposedFactorSolve(t *testing.T) {
	// Factoring the CSR reading of a CSC matrix factors A^T, whose
	// transposed solve is a solve with A.
	rng := rand.New(rand.NewSource(11))
	a := randomMMatrix(t, rng, 12, 0.3)
	at := a.Transpose()

	config := DefaultConfiguration()
	config.LevelOfFill = at.Size
	f, err := Factorize(at, config)
	require.NoError(t, err)

	rhs := make([]float64, a.Size)
	rhs[0], rhs[a.Size-1] = 1, -2
	x := make([]float64, a.Size)
	require.NoError(t, f.SolveTransposed(x, rhs))

	got := make([]float64, a.Size)
	require.NoError(t, a.MulVec(got, x))
	assert.InDeltaSlice(t, rhs, got, 1e-10)
}
