package ilu

import (
	"fmt"
	"io"
)

// WriteStatus writes the pattern of row i as produced by the symbolic phase,
// with the fill level of every retained entry.
func (p *Pattern) WriteStatus(w io.Writer, i int) {
	fmt.Fprintf(w, "Row = %d   ", i)
	fmt.Fprintf(w, "L = ")
	for k := p.LRowStart[i]; k < p.LRowStart[i+1]; k++ {
		fmt.Fprintf(w, "%d(%d) ", p.LCol[k], p.LLevel[k])
	}
	fmt.Fprintf(w, "  U = ")
	for k := p.URowStart[i]; k < p.URowStart[i+1]; k++ {
		fmt.Fprintf(w, "%d(%d) ", p.UCol[k], p.ULevel[k])
	}
	fmt.Fprintln(w)
}

// Print writes m as a grid, "x" per stored entry when data is false or the
// values when it is true, in column blocks that fit width characters.
func (m *Matrix) Print(w io.Writer, data bool, header bool, width int) {
	if m == nil {
		return
	}
	if header {
		fmt.Fprintf(w, "MATRIX SUMMARY\n\n")
		fmt.Fprintf(w, "Size of matrix = %d x %d.\n\n", m.Size, m.Size)
	}

	values := make([]float64, m.Size)
	stored := make([]bool, m.Size)
	printGrid(w, m.Size, data, header, width, func(i int) {
		cols, vals := m.Row(i)
		for k, col := range cols {
			values[col] = vals[k]
			stored[col] = true
		}
	}, valueCell(values, stored, data), func(i int) {
		cols, _ := m.Row(i)
		for _, col := range cols {
			values[col] = 0.0
			stored[col] = false
		}
	})

	if header {
		fmt.Fprintf(w, "Largest element in matrix = %-1.4g.\n", m.LargestElement())
		fmt.Fprintf(w, "Density = %.2f%%.\n\n", m.Density())
	}
}

// Print writes the retained pattern of L+U, "x" for original entries and the
// fill level digit for fill-ins.
func (p *Pattern) Print(w io.Writer, header bool, width int) {
	if p == nil {
		return
	}
	if header {
		fmt.Fprintf(w, "PATTERN SUMMARY\n\n")
		fmt.Fprintf(w, "Size of matrix = %d x %d, level of fill = %d.\n\n", p.Size, p.Size, p.Level)
	}

	row := 0
	printGrid(w, p.Size, false, header, width, func(i int) { row = i }, func(j int) string {
		switch lev := p.EntryLevel(row, j); {
		case lev < 0:
			return "."
		case lev == 0:
			return "x"
		case lev < 10:
			return fmt.Sprint(lev)
		default:
			return "+"
		}
	}, nil)

	if header {
		fmt.Fprintf(w, "nnz(L) = %d, nnz(U) = %d.\n", p.LNnz(), p.UNnz())
		fmt.Fprintf(w, "Number of fill-ins = %d.\n\n", p.Fillins())
	}
}

// Print writes the values of L (below the diagonal) and U (on and above it)
// in one grid, followed by the pivot statistics.
func (f *Factor) Print(w io.Writer, data bool, header bool, width int) {
	if f == nil {
		return
	}
	if header {
		fmt.Fprintf(w, "MATRIX SUMMARY\n\n")
		fmt.Fprintf(w, "Size of matrix = %d x %d.\n\n", f.Size, f.Size)
		fmt.Fprintf(w, "Matrix after factorization:\n")
	}

	values := make([]float64, f.Size)
	stored := make([]bool, f.Size)
	printGrid(w, f.Size, data, header, width, func(i int) {
		for k := f.LRowStart[i]; k < f.LRowStart[i+1]; k++ {
			values[f.LCol[k]] = f.L[k]
			stored[f.LCol[k]] = true
		}
		for k := f.URowStart[i]; k < f.URowStart[i+1]; k++ {
			values[f.UCol[k]] = f.U[k]
			stored[f.UCol[k]] = true
		}
	}, valueCell(values, stored, data), func(i int) {
		for _, col := range f.LRow(i) {
			values[col] = 0.0
			stored[col] = false
		}
		for _, col := range f.URow(i) {
			values[col] = 0.0
			stored[col] = false
		}
	})

	if header {
		stats := f.Statistics()
		fmt.Fprintf(w, "\nLargest diagonal element = %-1.4g.\n", stats.LargestPivot)
		fmt.Fprintf(w, "Smallest diagonal element = %-1.4g.\n", stats.SmallestPivot)
		fmt.Fprintf(w, "\nDensity = %.2f%%.\n", stats.Density)
		fmt.Fprintf(w, "Number of fill-ins = %d.\n\n", stats.Fillins)
	}
}

// valueCell formats a stored value, or "x" when data is false, and marks
// missing entries.
func valueCell(values []float64, stored []bool, data bool) func(j int) string {
	return func(j int) string {
		switch {
		case stored[j] && data:
			return fmt.Sprintf(" %9.3g", values[j])
		case stored[j]:
			return "x"
		case data:
			return "       ..."
		default:
			return "."
		}
	}
}

// printGrid prints size rows in column blocks that fit width characters.
// begin and end bracket every row, either may be nil; cell formats column j
// of the current row.
func printGrid(w io.Writer, size int, data bool, header bool, width int,
	begin func(i int), cell func(j int) string, end func(i int)) {
	if width <= 0 {
		width = DEFAULT_PRINTER_WIDTH
	}
	columns := width
	if header {
		columns -= 5
	}
	if data {
		columns = (columns + 1) / 10
	}
	columns = max(columns, 1)

	for startCol := 0; startCol < size; startCol += columns {
		stopCol := minOf(startCol+columns, size)

		if header {
			if data {
				fmt.Fprintf(w, "    ")
				for col := startCol; col < stopCol; col++ {
					fmt.Fprintf(w, " %9d", col)
				}
				fmt.Fprintf(w, "\n\n")
			} else {
				fmt.Fprintf(w, "Columns %d to %d.\n", startCol, stopCol-1)
			}
		}

		for i := 0; i < size; i++ {
			if header {
				fmt.Fprintf(w, "%4d", i)
				if !data {
					fmt.Fprintf(w, " ")
				}
			}

			if begin != nil {
				begin(i)
			}
			for col := startCol; col < stopCol; col++ {
				fmt.Fprint(w, cell(col))
			}
			if end != nil {
				end(i)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w)
	}
}
