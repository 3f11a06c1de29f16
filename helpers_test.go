package ilu

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// tridiagonal returns the n x n matrix with 4 on the diagonal and -1 beside it.
func tridiagonal(t *testing.T, n int) *Matrix {
	t.Helper()
	b, err := NewBuilder(n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, b.Add(i, i, 4))
		if i > 0 {
			require.NoError(t, b.Add(i, i-1, -1))
		}
		if i < n-1 {
			require.NoError(t, b.Add(i, i+1, -1))
		}
	}
	m, err := b.Matrix()
	require.NoError(t, err)
	return m
}

// arrow returns a matrix with a full first row and column and a diagonal.
func arrow(t *testing.T, n int) *Matrix {
	t.Helper()
	b, err := NewBuilder(n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, b.Add(i, i, float64(n)))
		if i > 0 {
			require.NoError(t, b.Add(0, i, -1))
			require.NoError(t, b.Add(i, 0, -1))
		}
	}
	m, err := b.Matrix()
	require.NoError(t, err)
	return m
}

// laplacian returns the 5-point Laplacian on an n x n grid.
func laplacian(t *testing.T, n int) *Matrix {
	t.Helper()
	b, err := NewBuilder(n * n)
	require.NoError(t, err)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			row := j*n + i
			require.NoError(t, b.Add(row, row, 4))
			if i > 0 {
				require.NoError(t, b.Add(row, row-1, -1))
			}
			if i < n-1 {
				require.NoError(t, b.Add(row, row+1, -1))
			}
			if j > 0 {
				require.NoError(t, b.Add(row, row-n, -1))
			}
			if j < n-1 {
				require.NoError(t, b.Add(row, row+n, -1))
			}
		}
	}
	m, err := b.Matrix()
	require.NoError(t, err)
	return m
}

// randomMMatrix returns a strictly diagonally dominant matrix with negative
// off-diagonal entries and an unsymmetric random pattern. Rows are stored in
// random column order.
func randomMMatrix(t *testing.T, rng *rand.Rand, n int, density float64) *Matrix {
	t.Helper()
	b, err := NewBuilder(n)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		offsum := 0.0
		for _, j := range rng.Perm(n) {
			if j == i || rng.Float64() >= density {
				continue
			}
			v := -(0.1 + rng.Float64())
			offsum -= v
			require.NoError(t, b.Add(i, j, v))
		}
		require.NoError(t, b.Add(i, i, offsum+1+rng.Float64()))
	}
	m, err := b.Matrix()
	require.NoError(t, err)

	// Shuffle every row so the symbolic phase sees unsorted input.
	for i := 0; i < n; i++ {
		start, end := m.RowStart[i], m.RowStart[i+1]
		rng.Shuffle(end-start, func(x, y int) {
			m.ColIndex[start+x], m.ColIndex[start+y] = m.ColIndex[start+y], m.ColIndex[start+x]
			m.Value[start+x], m.Value[start+y] = m.Value[start+y], m.Value[start+x]
		})
	}
	require.NoError(t, m.Validate())
	return m
}

func toDense(m *Matrix) *mat.Dense {
	d := mat.NewDense(m.Size, m.Size, nil)
	for i := 0; i < m.Size; i++ {
		cols, vals := m.Row(i)
		for k, col := range cols {
			d.Set(i, col, vals[k])
		}
	}
	return d
}

// stored reports whether (i,j) is an entry of m, zero valued or not.
func stored(m *Matrix, i, j int) bool {
	cols, _ := m.Row(i)
	for _, col := range cols {
		if col == j {
			return true
		}
	}
	return false
}

// denseLevels computes ILU(level) fill levels the textbook way on a dense
// level matrix; -1 marks dropped positions.
func denseLevels(m *Matrix, level int) [][]int {
	const inf = 1 << 30
	n := m.Size
	lev := make([][]int, n)
	for i := range lev {
		lev[i] = make([]int, n)
		for j := range lev[i] {
			lev[i][j] = inf
			if stored(m, i, j) {
				lev[i][j] = 0
			}
		}
	}
	for i := 0; i < n; i++ {
		for k := 0; k < i; k++ {
			if lev[i][k] > level {
				continue
			}
			for j := k + 1; j < n; j++ {
				if lev[k][j] > level {
					continue
				}
				lev[i][j] = min(lev[i][j], lev[i][k]+lev[k][j]+1)
			}
		}
		for j := range lev[i] {
			if lev[i][j] > level {
				lev[i][j] = inf
			}
		}
	}
	for i := range lev {
		for j := range lev[i] {
			if lev[i][j] == inf {
				lev[i][j] = -1
			}
		}
	}
	return lev
}
