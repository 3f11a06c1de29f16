package ilu

import (
	"fmt"
)

// numericWork is the dense scratch of one numeric factorization. Both slices
// are cleared entry by entry at the end of every row.
type numericWork struct {
	row    []float64
	marker []bool
}

func newNumericWork(size int) *numericWork {
	return &numericWork{
		row:    make([]float64, size),
		marker: make([]bool, size),
	}
}

// Numeric computes the values of L and U on pattern p by row-wise Gaussian
// elimination. Contributions falling outside the pattern are summed and
// relaxation times that sum is added to the pivot: 0 gives plain ILU, 1 the
// row-sum preserving MILU.
func Numeric(a *Matrix, p *Pattern, relaxation float64) (*Factor, error) {
	return numeric(a, p, relaxation, 0.0, nil)
}

func numeric(a *Matrix, p *Pattern, relaxation, pivotTolerance float64, config *Configuration) (*Factor, error) {
	if err := checkNumericInput(a, p, relaxation); err != nil {
		return nil, err
	}

	f := &Factor{
		Pattern:        p,
		L:              make([]float64, p.LNnz()),
		U:              make([]float64, p.UNnz()),
		Relaxation:     relaxation,
		PivotTolerance: pivotTolerance,
	}
	if err := f.eliminate(a, config); err != nil {
		annotateFailure(config, "numeric", err)
		return nil, err
	}
	return f, nil
}

func checkNumericInput(a *Matrix, p *Pattern, relaxation float64) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if p == nil || p.Size != a.Size {
		return fmt.Errorf("pattern does not match a %dx%d matrix: %w", a.Size, a.Size, ErrDimensionMismatch)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if isNonFinite(relaxation) || relaxation < 0.0 || relaxation > 1.0 {
		return fmt.Errorf("relaxation %g: %w", relaxation, ErrInvalidRelaxation)
	}
	return nil
}

// eliminate fills f.L and f.U from a. Pivots of rows already done were
// checked, so every division below is by a usable pivot.
func (f *Factor) eliminate(a *Matrix, config *Configuration) error {
	p := f.Pattern
	w := newNumericWork(p.Size)
	row, marker := w.row, w.marker

	for i := 0; i < p.Size; i++ {
		lStart, lEnd := p.LRowStart[i], p.LRowStart[i+1]
		uStart, uEnd := p.URowStart[i], p.URowStart[i+1]

		// Mark the retained pattern, then scatter row i of A into it.
		for k := lStart; k < lEnd; k++ {
			marker[p.LCol[k]] = true
		}
		for k := uStart; k < uEnd; k++ {
			marker[p.UCol[k]] = true
		}

		modif := 0.0
		for k := a.RowStart[i]; k < a.RowStart[i+1]; k++ {
			col := a.ColIndex[k]
			if marker[col] {
				row[col] = a.Value[k]
			} else {
				modif += a.Value[k]
			}
		}

		// Eliminate with the L columns in ascending order.
		for k := lStart; k < lEnd; k++ {
			id := p.LCol[k]
			mult := row[id] / f.U[p.URowStart[id]]
			row[id] = mult

			for kk := p.URowStart[id] + 1; kk < p.URowStart[id+1]; kk++ {
				idd := p.UCol[kk]
				if marker[idd] {
					row[idd] -= mult * f.U[kk]
				} else {
					modif -= mult * f.U[kk]
				}
			}
		}

		// Gather into L and U and reset the scratch.
		for k := lStart; k < lEnd; k++ {
			col := p.LCol[k]
			f.L[k] = row[col]
			row[col] = 0.0
			marker[col] = false
		}
		for k := uStart; k < uEnd; k++ {
			col := p.UCol[k]
			f.U[k] = row[col]
			row[col] = 0.0
			marker[col] = false
		}

		if f.Relaxation != 0.0 {
			f.U[uStart] += f.Relaxation * modif
		}

		pivot := f.U[uStart]
		if isNonFinite(pivot) || absOf(pivot) <= f.PivotTolerance {
			return &PivotError{Row: i, Pivot: pivot}
		}

		if config != nil && config.Annotate >= AnnotateFull {
			fmt.Fprintf(config.output(), "row %d: pivot = %-1.4g, dropped = %-1.4g\n", i, pivot, modif)
		}
	}

	if config != nil && config.Annotate >= AnnotateSummary {
		stats := f.Statistics()
		fmt.Fprintf(config.output(), "numeric: omega %g, largest pivot = %-1.4g, smallest pivot = %-1.4g\n",
			f.Relaxation, stats.LargestPivot, stats.SmallestPivot)
	}
	return nil
}
