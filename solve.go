package ilu

import (
	"fmt"
)

// SolveL overwrites x with the solution of L y = x, L unit lower triangular.
func (f *Factor) SolveL(x []float64) error {
	if len(x) != f.Size {
		return fmt.Errorf("vector length %d for a %dx%d factor: %w", len(x), f.Size, f.Size, ErrDimensionMismatch)
	}

	// Forward elimination - Solves Lc = b
	for i := 0; i < f.Size; i++ {
		temp := x[i]
		for k := f.LRowStart[i]; k < f.LRowStart[i+1]; k++ {
			temp -= f.L[k] * x[f.LCol[k]]
		}
		x[i] = temp
	}
	return nil
}

// SolveU overwrites x with the solution of U y = x.
func (f *Factor) SolveU(x []float64) error {
	if len(x) != f.Size {
		return fmt.Errorf("vector length %d for a %dx%d factor: %w", len(x), f.Size, f.Size, ErrDimensionMismatch)
	}

	// Backward Substitution - Solves Ux = c
	for i := f.Size - 1; i >= 0; i-- {
		diag := f.URowStart[i]
		temp := x[i]
		for k := diag + 1; k < f.URowStart[i+1]; k++ {
			temp -= f.U[k] * x[f.UCol[k]]
		}
		x[i] = temp / f.U[diag]
	}
	return nil
}

// Solve writes into solution the result of applying (LU)^-1 to rhs. The two
// slices may be the same.
func (f *Factor) Solve(solution, rhs []float64) error {
	if len(rhs) != f.Size || len(solution) != f.Size {
		return fmt.Errorf("rhs or solution size (%d,%d) differs from matrix size (%d): %w",
			len(rhs), len(solution), f.Size, ErrDimensionMismatch)
	}
	copy(solution, rhs)
	if err := f.SolveL(solution); err != nil {
		return err
	}
	return f.SolveU(solution)
}

// SolveTransposed writes into solution the result of applying (LU)^-T to rhs:
// first U^T, then L^T, both walked by rows as column sweeps.
func (f *Factor) SolveTransposed(solution, rhs []float64) error {
	if len(rhs) != f.Size || len(solution) != f.Size {
		return fmt.Errorf("rhs or solution size (%d,%d) differs from matrix size (%d): %w",
			len(rhs), len(solution), f.Size, ErrDimensionMismatch)
	}
	x := solution
	copy(x, rhs)

	// Forward elimination with U^T
	for i := 0; i < f.Size; i++ {
		diag := f.URowStart[i]
		x[i] /= f.U[diag]
		temp := x[i]
		if temp != 0.0 {
			for k := diag + 1; k < f.URowStart[i+1]; k++ {
				x[f.UCol[k]] -= temp * f.U[k]
			}
		}
	}

	// Backward substitution with L^T
	for i := f.Size - 1; i >= 0; i-- {
		temp := x[i]
		if temp != 0.0 {
			for k := f.LRowStart[i]; k < f.LRowStart[i+1]; k++ {
				x[f.LCol[k]] -= temp * f.L[k]
			}
		}
	}
	return nil
}

// Precondition applies the factor as a preconditioner, z = (LU)^-1 r. It has
// the func(z, r []float64) shape Krylov solvers take and panics on a length
// mismatch, which is a programming error at that point.
func (f *Factor) Precondition(z, r []float64) {
	if err := f.Solve(z, r); err != nil {
		panic(err)
	}
}
