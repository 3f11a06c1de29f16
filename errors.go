package ilu

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageExhausted is matched by *StorageError.
	ErrStorageExhausted = errors.New("ilu: storage exhausted")

	// ErrStructurallySingular is matched by *SingularError.
	ErrStructurallySingular = errors.New("ilu: structurally singular")

	// ErrZeroPivot is matched by *PivotError for zero or tiny pivots.
	ErrZeroPivot = errors.New("ilu: zero pivot")

	ErrInvalidSize        = errors.New("ilu: matrix size must be > 0")
	ErrOutOfRange         = errors.New("ilu: index out of range")
	ErrEmptyRow           = errors.New("ilu: row has no entries")
	ErrDuplicateEntry     = errors.New("ilu: duplicate entry in row")
	ErrNaNInf             = errors.New("ilu: NaN or Inf encountered")
	ErrDimensionMismatch  = errors.New("ilu: dimension mismatch")
	ErrInvalidLevel       = errors.New("ilu: level of fill must be >= 0")
	ErrInvalidCapacity    = errors.New("ilu: capacity must be >= 0")
	ErrInvalidRelaxation  = errors.New("ilu: relaxation must be in [0,1]")
	ErrInvalidTolerance   = errors.New("ilu: pivot tolerance must be finite and >= 0")
	ErrComplexUnsupported = errors.New("ilu: complex matrices not supported")
	ErrSyntax             = errors.New("ilu: syntax error")
)

// StorageError reports that L or U did not fit its capacity. Required is the
// total entry count the factor needs at the requested level, or 0 when it
// could not be determined.
type StorageError struct {
	Factor   string // "L" or "U"
	Row      int    // row being gathered when the capacity ran out
	Capacity int
	Required int
}

func (e *StorageError) Error() string {
	if e.Required > 0 {
		return fmt.Sprintf("ilu: storage for %s exhausted at row %d: capacity %d, required %d",
			e.Factor, e.Row, e.Capacity, e.Required)
	}
	return fmt.Sprintf("ilu: storage for %s exhausted at row %d: capacity %d", e.Factor, e.Row, e.Capacity)
}

func (e *StorageError) Is(target error) bool { return target == ErrStorageExhausted }

// SingularError reports a row left without a diagonal entry after the merge.
type SingularError struct {
	Row int
}

func (e *SingularError) Error() string {
	return fmt.Sprintf("ilu: structurally singular at row %d", e.Row)
}

func (e *SingularError) Is(target error) bool { return target == ErrStructurallySingular }

// PivotError reports an unusable pivot.
type PivotError struct {
	Row   int
	Pivot float64
}

func (e *PivotError) Error() string {
	return fmt.Sprintf("ilu: zero pivot at row %d (%g)", e.Row, e.Pivot)
}

func (e *PivotError) Is(target error) bool {
	if target == ErrNaNInf {
		return isNonFinite(e.Pivot)
	}
	return target == ErrZeroPivot
}
