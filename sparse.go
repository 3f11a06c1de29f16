package ilu // import "ilu"

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// NewMatrix wraps caller-owned CSR arrays after checking them. The slices are
// not copied; the caller must not modify them while a factorization runs.
func NewMatrix(size int, rowStart, colIndex []int, value []float64) (*Matrix, error) {
	m := &Matrix{
		Size:     size,
		RowStart: rowStart,
		ColIndex: colIndex,
		Value:    value,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks the CSR invariants the factorization relies on: a usable
// row pointer, in-range columns, finite values, at least one entry per row
// and no column repeated within a row.
func (m *Matrix) Validate() error {
	return m.validate(true)
}

// validateLayout is Validate without the empty row check.
func (m *Matrix) validateLayout() error {
	return m.validate(false)
}

func (m *Matrix) validate(requireEntries bool) error {
	if m == nil || m.Size <= 0 {
		return ErrInvalidSize
	}
	size := m.Size
	if len(m.RowStart) != size+1 {
		return fmt.Errorf("row pointer length %d, want %d: %w", len(m.RowStart), size+1, ErrDimensionMismatch)
	}
	if len(m.ColIndex) != len(m.Value) {
		return fmt.Errorf("%d column indices for %d values: %w", len(m.ColIndex), len(m.Value), ErrDimensionMismatch)
	}
	if m.RowStart[0] != 0 || m.RowStart[size] != len(m.ColIndex) {
		return fmt.Errorf("row pointer spans [%d,%d) over %d entries: %w",
			m.RowStart[0], m.RowStart[size], len(m.ColIndex), ErrDimensionMismatch)
	}

	seen := make([]int, size) // row+1 that last used the column
	for i := 0; i < size; i++ {
		start, end := m.RowStart[i], m.RowStart[i+1]
		if end < start || end > len(m.ColIndex) {
			return fmt.Errorf("row pointer out of order at row %d: %w", i, ErrOutOfRange)
		}
		if requireEntries && end == start {
			return fmt.Errorf("row %d: %w", i, ErrEmptyRow)
		}
		for k := start; k < end; k++ {
			col := m.ColIndex[k]
			if col < 0 || col >= size {
				return fmt.Errorf("column %d in row %d: %w", col, i, ErrOutOfRange)
			}
			if seen[col] == i+1 {
				return fmt.Errorf("column %d in row %d: %w", col, i, ErrDuplicateEntry)
			}
			seen[col] = i + 1
			if isNonFinite(m.Value[k]) {
				return fmt.Errorf("entry (%d,%d): %w", i, col, ErrNaNInf)
			}
		}
	}
	return nil
}

// Row returns the stored columns and values of row i, aliasing the matrix.
func (m *Matrix) Row(i int) ([]int, []float64) {
	start, end := m.RowStart[i], m.RowStart[i+1]
	return m.ColIndex[start:end], m.Value[start:end]
}

// At returns the value at (i,j), zero when not stored.
func (m *Matrix) At(i, j int) float64 {
	cols, vals := m.Row(i)
	for k, col := range cols {
		if col == j {
			return vals[k]
		}
	}
	return 0.0
}

// NewMatrixFromDense keeps the non-zero entries of a square dense matrix.
func NewMatrixFromDense(dense [][]float64) (*Matrix, error) {
	b, err := NewBuilder(len(dense))
	if err != nil {
		return nil, err
	}
	for i, row := range dense {
		if len(row) != len(dense) {
			return nil, fmt.Errorf("row %d has %d columns, want %d: %w", i, len(row), len(dense), ErrDimensionMismatch)
		}
		for j, v := range row {
			if v != 0 {
				if err := b.Add(i, j, v); err != nil {
					return nil, err
				}
			}
		}
	}
	return b.Matrix()
}

type triplet struct {
	row, col int
	value    float64
}

// Builder stamps entries one at a time; entries added twice at the same
// position are summed.
type Builder struct {
	size int
	data []triplet
}

func NewBuilder(size int) (*Builder, error) {
	if size <= 0 {
		return nil, fmt.Errorf("invalid size %d: %w", size, ErrInvalidSize)
	}
	return &Builder{size: size}, nil
}

func (b *Builder) Size() int {
	return b.size
}

// Add accumulates value into (row, col).
func (b *Builder) Add(row, col int, value float64) error {
	if row < 0 || row >= b.size || col < 0 || col >= b.size {
		return fmt.Errorf("entry (%d,%d) in %dx%d: %w", row, col, b.size, b.size, ErrOutOfRange)
	}
	if isNonFinite(value) {
		return fmt.Errorf("entry (%d,%d): %w", row, col, ErrNaNInf)
	}
	b.data = append(b.data, triplet{row: row, col: col, value: value})
	return nil
}

// Matrix compresses the stamped entries into a validated CSR matrix with
// every row sorted by column. Positions that sum to zero are kept, since an
// explicit zero still belongs to the sparsity pattern.
func (b *Builder) Matrix() (*Matrix, error) {
	data := slices.Clone(b.data)
	slices.SortStableFunc(data, func(x, y triplet) int {
		if x.row != y.row {
			return x.row - y.row
		}
		return x.col - y.col
	})

	rowStart := make([]int, b.size+1)
	colIndex := make([]int, 0, len(data))
	value := make([]float64, 0, len(data))
	for k, t := range data {
		if k > 0 && data[k-1].row == t.row && data[k-1].col == t.col {
			value[len(value)-1] += t.value
			continue
		}
		colIndex = append(colIndex, t.col)
		value = append(value, t.value)
		rowStart[t.row+1] = len(colIndex)
	}
	// rows without entries inherit the previous offset
	for i := 1; i <= b.size; i++ {
		if rowStart[i] < rowStart[i-1] {
			rowStart[i] = rowStart[i-1]
		}
	}
	return NewMatrix(b.size, rowStart, colIndex, value)
}
