package ilu

import (
	"fmt"
	"math"
)

// MulVec sets dst = m x.
func (m *Matrix) MulVec(dst, x []float64) error {
	if len(dst) != m.Size || len(x) != m.Size {
		return fmt.Errorf("vector lengths (%d,%d) for a %dx%d matrix: %w", len(dst), len(x), m.Size, m.Size, ErrDimensionMismatch)
	}
	for i := 0; i < m.Size; i++ {
		sum := 0.0
		for k := m.RowStart[i]; k < m.RowStart[i+1]; k++ {
			sum += m.Value[k] * x[m.ColIndex[k]]
		}
		dst[i] = sum
	}
	return nil
}

func (m *Matrix) RowSum(i int) float64 {
	sum := 0.0
	for k := m.RowStart[i]; k < m.RowStart[i+1]; k++ {
		sum += m.Value[k]
	}
	return sum
}

// LargestElement returns the largest magnitude stored in m.
func (m *Matrix) LargestElement() float64 {
	largest := 0.0
	for _, v := range m.Value {
		largest = math.Max(largest, math.Abs(v))
	}
	return largest
}

// Product returns L*U, with L's unit diagonal, as a matrix with rows sorted
// by column. It is the preconditioner M the factor approximates A with.
func (f *Factor) Product() *Matrix {
	size := f.Size
	row := make([]float64, size)
	marker := make([]bool, size)
	cols := make([]int, 0, size)

	rowStart := make([]int, size+1)
	var colIndex []int
	var value []float64

	add := func(col int, v float64) {
		if !marker[col] {
			marker[col] = true
			cols = append(cols, col)
		}
		row[col] += v
	}

	for i := 0; i < size; i++ {
		cols = cols[:0]
		for k := f.URowStart[i]; k < f.URowStart[i+1]; k++ {
			add(f.UCol[k], f.U[k])
		}
		for k := f.LRowStart[i]; k < f.LRowStart[i+1]; k++ {
			mult, id := f.L[k], f.LCol[k]
			for kk := f.URowStart[id]; kk < f.URowStart[id+1]; kk++ {
				add(f.UCol[kk], mult*f.U[kk])
			}
		}

		ShellSort(cols)
		for _, col := range cols {
			colIndex = append(colIndex, col)
			value = append(value, row[col])
			row[col] = 0.0
			marker[col] = false
		}
		rowStart[i+1] = len(colIndex)
	}

	return &Matrix{
		Size:     size,
		RowStart: rowStart,
		ColIndex: colIndex,
		Value:    value,
	}
}

// Determinant returns the determinant of L*U as mantissa * 10^exponent with
// 1 <= |mantissa| < 10, which survives products that overflow a float64.
func (f *Factor) Determinant() (float64, int) {
	mantissa, exponent := 1.0, 0
	for i := 0; i < f.Size; i++ {
		mantissa *= f.U[f.URowStart[i]]
		if mantissa == 0.0 {
			return 0.0, 0
		}
		for math.Abs(mantissa) >= 10.0 {
			mantissa *= 0.1
			exponent++
		}
		for math.Abs(mantissa) < 1.0 {
			mantissa *= 10.0
			exponent--
		}
	}
	return mantissa, exponent
}

func (f *Factor) Pivot(i int) float64 {
	return f.U[f.URowStart[i]]
}

// Statistics summarises the pivots and the storage of f.
func (f *Factor) Statistics() Stats {
	stats := Stats{
		SmallestPivot: math.MaxFloat64,
		LNnz:          f.LNnz(),
		UNnz:          f.UNnz(),
		Fillins:       f.Fillins(),
	}
	for i := 0; i < f.Size; i++ {
		magnitude := math.Abs(f.Pivot(i))
		stats.LargestPivot = math.Max(stats.LargestPivot, magnitude)
		stats.SmallestPivot = math.Min(stats.SmallestPivot, magnitude)
	}
	if f.Size == 0 {
		stats.SmallestPivot = 0.0
	}
	stats.Density = float64(stats.LNnz+stats.UNnz) * 100.0 / (float64(f.Size) * float64(f.Size))
	return stats
}
