package ilu

import "fmt"

// Transpose returns the CSR form of the transpose of m. Each row of the result
// lists its columns in ascending order.
func (m *Matrix) Transpose() *Matrix {
	size := m.Size
	rowStart := make([]int, size+1)
	for _, col := range m.ColIndex {
		rowStart[col+1]++
	}
	for i := 0; i < size; i++ {
		rowStart[i+1] += rowStart[i]
	}

	colIndex := make([]int, len(m.ColIndex))
	value := make([]float64, len(m.Value))
	fill := make([]int, size)
	copy(fill, rowStart[:size])
	for row := 0; row < size; row++ {
		for k := m.RowStart[row]; k < m.RowStart[row+1]; k++ {
			dest := fill[m.ColIndex[k]]
			colIndex[dest] = row
			value[dest] = m.Value[k]
			fill[m.ColIndex[k]]++
		}
	}

	return &Matrix{
		Size:     size,
		RowStart: rowStart,
		ColIndex: colIndex,
		Value:    value,
	}
}

// NewMatrixFromCSC converts a column-major (CSC) host matrix into the CSR
// view the factorization reads. Column pointers, row indices and values are
// copied; the host arrays are left untouched.
func NewMatrixFromCSC(size int, colStart, rowIndex []int, value []float64) (*Matrix, error) {
	// A CSC matrix read with rows and columns swapped is the CSR of its
	// transpose, so validate it as such and transpose back.
	transposed := &Matrix{
		Size:     size,
		RowStart: colStart,
		ColIndex: rowIndex,
		Value:    value,
	}
	if err := transposed.validateLayout(); err != nil {
		return nil, fmt.Errorf("csc input: %w", err)
	}
	m := transposed.Transpose()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
