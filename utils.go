package ilu

import (
	"math"

	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

func (m *Matrix) Nnz() int {
	return len(m.ColIndex)
}

// Density is the percentage of Size*Size positions stored.
func (m *Matrix) Density() float64 {
	return float64(m.Nnz()) * 100.0 / (float64(m.Size) * float64(m.Size))
}

func (p *Pattern) LNnz() int {
	return len(p.LCol)
}

func (p *Pattern) UNnz() int {
	return len(p.UCol)
}

// Fillins counts retained entries that were zero in the original matrix.
func (p *Pattern) Fillins() int {
	count := 0
	for _, lev := range p.LLevel {
		if lev > 0 {
			count++
		}
	}
	for _, lev := range p.ULevel {
		if lev > 0 {
			count++
		}
	}
	return count
}

func minOf[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func absOf[T constraints.Signed | constraints.Float](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// binarySearch looks for col in an ascending row of column indices.
func binarySearch(row []int, col int) (int, bool) {
	return slices.BinarySearch(row, col)
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
