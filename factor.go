package ilu

import (
	"fmt"
	"io"
	"os"
)

func DefaultConfiguration() *Configuration {
	return &Configuration{
		LevelOfFill:    0,
		Relaxation:     0.0,
		LCapacity:      Unbounded,
		UCapacity:      Unbounded,
		PivotTolerance: 0.0,
		PrinterWidth:   DEFAULT_PRINTER_WIDTH,
		Annotate:       AnnotateNone,
	}
}

func (c *Configuration) output() io.Writer {
	if c.Output == nil {
		return os.Stdout
	}
	return c.Output
}

// Factorize runs the symbolic and numeric phases on a. A nil config selects
// DefaultConfiguration. On failure no factor is returned.
func Factorize(a *Matrix, config *Configuration) (*Factor, error) {
	if config == nil {
		config = DefaultConfiguration()
	}
	if isNonFinite(config.PivotTolerance) || config.PivotTolerance < 0.0 {
		return nil, fmt.Errorf("pivot tolerance %g: %w", config.PivotTolerance, ErrInvalidTolerance)
	}

	p, err := symbolic(a, config.LevelOfFill, config.LCapacity, config.UCapacity, config)
	if err != nil {
		return nil, fmt.Errorf("symbolic factorization failed: %w", err)
	}

	f, err := numeric(a, p, config.Relaxation, config.PivotTolerance, config)
	if err != nil {
		return nil, fmt.Errorf("numeric factorization failed: %w", err)
	}
	return f, nil
}

// Refactor recomputes the values of f for a matrix whose sparsity matches the
// one f was built from, reusing f's pattern and value storage. On failure the
// values of f are undefined.
func (f *Factor) Refactor(a *Matrix) error {
	if err := checkNumericInput(a, f.Pattern, f.Relaxation); err != nil {
		return err
	}
	for i := 0; i < a.Size; i++ {
		cols, _ := a.Row(i)
		for _, col := range cols {
			if !f.Contains(i, col) {
				return fmt.Errorf("entry (%d,%d) outside the factor pattern: %w", i, col, ErrDimensionMismatch)
			}
		}
	}
	if len(f.L) != f.LNnz() || len(f.U) != f.UNnz() {
		f.L = make([]float64, f.LNnz())
		f.U = make([]float64, f.UNnz())
	}
	return f.eliminate(a, nil)
}

func annotateFailure(config *Configuration, phase string, err error) {
	if config == nil || config.Annotate < AnnotateSummary {
		return
	}
	fmt.Fprintf(config.output(), "%s: %v\n", phase, err)
}
