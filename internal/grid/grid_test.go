package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ilu"
)

func TestContainerInvalid(t *testing.T) {
	_, err := Container(4, 0.5)
	assert.Error(t, err)
	_, err = Container(16, 0)
	assert.Error(t, err)
	_, err = Container(16, 1)
	assert.Error(t, err)
}

func TestContainer(t *testing.T) {
	g, err := Container(32, 0.5)
	require.NoError(t, err)

	liquid, air := 0, 0
	for k, c := range g.Cells {
		switch c {
		case Liquid:
			assert.Equal(t, liquid, g.Index[k])
			liquid++
		case Air:
			air++
			assert.Equal(t, -1, g.Index[k])
		default:
			assert.Equal(t, -1, g.Index[k])
		}
	}
	assert.Equal(t, g.Count, liquid)
	assert.Positive(t, air)

	// The corners are outside the disc.
	assert.Equal(t, Solid, g.Cells[0])
	assert.Equal(t, Solid, g.Cells[len(g.Cells)-1])
}

func TestPressure(t *testing.T) {
	g, err := Container(24, 0.6)
	require.NoError(t, err)
	a, err := g.Pressure()
	require.NoError(t, err)
	assert.Equal(t, g.Count, a.Size)

	surface := 0
	for i := 0; i < a.Size; i++ {
		cols, vals := a.Row(i)
		for k, col := range cols {
			assert.Equal(t, vals[k], a.At(col, i), "symmetry at (%d,%d)", i, col)
			if col != i {
				assert.Equal(t, -1.0, vals[k])
			}
		}
		sum := a.RowSum(i)
		assert.GreaterOrEqual(t, sum, 0.0)
		if sum > 0 {
			surface++
		}
	}
	assert.Positive(t, surface)

	f, err := ilu.Factorize(a, nil)
	require.NoError(t, err)
	assert.Positive(t, f.Statistics().SmallestPivot)
}

func TestLaplacian(t *testing.T) {
	a, err := Laplacian(3)
	require.NoError(t, err)
	assert.Equal(t, 9, a.Size)
	assert.Equal(t, 33, a.Nnz())
	assert.Equal(t, 4.0, a.At(4, 4))
	assert.Equal(t, -1.0, a.At(4, 1))
	assert.Equal(t, -1.0, a.At(4, 7))
	assert.Equal(t, 0.0, a.At(2, 3))
	for i := 0; i < a.Size; i++ {
		cols, vals := a.Row(i)
		for k, col := range cols {
			assert.Equal(t, vals[k], a.At(col, i))
		}
	}

	a, err = Laplacian(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{4}, a.Value)

	_, err = Laplacian(0)
	assert.ErrorIs(t, err, ilu.ErrInvalidSize)
}
