// Package ilu computes level-of-fill incomplete LU factorizations, ILU(k),
// of sparse matrices in compressed sparse row form, with an optional
// relaxation that folds dropped fill into the pivots (MILU when the
// relaxation is 1). The factors are meant to precondition an iterative
// solver; the package itself never iterates.
//
// Symbolic computes the L and U patterns from the sparsity alone, Numeric
// fills in their values, and Factorize runs both from a Configuration.
package ilu
