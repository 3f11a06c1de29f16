// Package krylov holds the iterative solver the commands use to exercise an
// ILU factor as a preconditioner.
package krylov

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

var ErrNotConverged = errors.New("krylov: not converged")

// Operator is a square linear operator.
type Operator interface {
	MulVec(dst, x []float64) error
}

// Preconditioner applies an approximation of A^-1 to r and stores it in z.
type Preconditioner func(z, r []float64)

// Identity is the preconditioner that does nothing.
func Identity(z, r []float64) { copy(z, r) }

// CG is a preconditioned conjugate gradient solver for symmetric positive
// definite systems.
type CG struct {
	MaxIter int
	Tol     float64 // relative residual ||r||/||b|| to stop at
	// Preconditioner is applied every iteration; Identity when nil.
	Preconditioner Preconditioner

	niter    int
	residual float64
	ndof     int
}

func (cg *CG) Iterations() int { return cg.niter }

func (cg *CG) Residual() float64 { return cg.residual }

func (cg *CG) Status() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "CG Solver Stats:\n")
	fmt.Fprintf(&buf, "    %v dof\n", cg.ndof)
	fmt.Fprintf(&buf, "    %v iterations, relative residual %.3g", cg.niter, cg.residual)
	return buf.String()
}

// Solve returns x with A x = b, starting from zero. It returns the last
// iterate together with ErrNotConverged when MaxIter runs out.
func (cg *CG) Solve(A Operator, b []float64) ([]float64, error) {
	precondition := cg.Preconditioner
	if precondition == nil {
		precondition = Identity
	}

	size := len(b)
	cg.ndof = size
	cg.niter = 0

	x := make([]float64, size)
	r := make([]float64, size)
	z := make([]float64, size)
	p := make([]float64, size)
	ap := make([]float64, size)

	copy(r, b)
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		cg.residual = 0
		return x, nil
	}
	cg.residual = 1

	precondition(z, r)
	copy(p, z)
	rz := floats.Dot(r, z)

	for cg.niter = 1; cg.niter <= cg.MaxIter; cg.niter++ {
		if err := A.MulVec(ap, p); err != nil {
			return nil, err
		}
		pap := floats.Dot(p, ap)
		if pap == 0 || math.IsNaN(pap) {
			return x, fmt.Errorf("breakdown at iteration %d: %w", cg.niter, ErrNotConverged)
		}
		alpha := rz / pap
		floats.AddScaled(x, alpha, p)   // x = x + alpha*p
		floats.AddScaled(r, -alpha, ap) // r = r - alpha*A*p

		cg.residual = floats.Norm(r, 2) / bnorm
		if cg.residual < cg.Tol {
			return x, nil
		}

		precondition(z, r)
		rzNext := floats.Dot(r, z)
		beta := rzNext / rz
		rz = rzNext
		floats.AddScaledTo(p, z, beta, p) // p = z + beta*p
	}
	cg.niter = cg.MaxIter
	return x, ErrNotConverged
}
