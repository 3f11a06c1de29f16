package ilu

import (
	"fmt"
)

// symbolicWork is the scratch of one symbolic factorization. next threads an
// ordered singly linked list of the active columns of the current row through
// a column-indexed arena; the list ends at the sentinel Size.
type symbolicWork struct {
	next   []int // successor of each active column
	curlev []int // fill level of each active column
	cols   []int // sorted copy of the current row's columns
}

func newSymbolicWork(size int) *symbolicWork {
	return &symbolicWork{
		next:   make([]int, size),
		curlev: make([]int, size),
		cols:   make([]int, size),
	}
}

// Symbolic computes the ILU(level) patterns of L and U from the sparsity of a.
// A positive lCapacity or uCapacity bounds the number of entries of that
// factor and turns overflow into a *StorageError; Unbounded lets it grow.
func Symbolic(a *Matrix, level, lCapacity, uCapacity int) (*Pattern, error) {
	return symbolic(a, level, lCapacity, uCapacity, nil)
}

func symbolic(a *Matrix, level, lCapacity, uCapacity int, config *Configuration) (*Pattern, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if level < 0 {
		return nil, fmt.Errorf("level %d: %w", level, ErrInvalidLevel)
	}
	if lCapacity < 0 || uCapacity < 0 {
		return nil, fmt.Errorf("capacities %d/%d: %w", lCapacity, uCapacity, ErrInvalidCapacity)
	}

	p, err := factorPattern(a, level, lCapacity, uCapacity, config)
	if err == nil {
		return p, nil
	}

	if se, ok := err.(*StorageError); ok {
		// The call has failed already; a private unbounded pass tells the
		// caller how much storage to retry with.
		if full, ferr := factorPattern(a, level, Unbounded, Unbounded, nil); ferr == nil {
			if se.Factor == "L" {
				se.Required = full.LNnz()
			} else {
				se.Required = full.UNnz()
			}
		}
	}
	annotateFailure(config, "symbolic", err)
	return nil, err
}

func factorPattern(a *Matrix, level, lCapacity, uCapacity int, config *Configuration) (*Pattern, error) {
	size := a.Size
	w := newSymbolicWork(size)
	next, curlev := w.next, w.curlev

	p := &Pattern{
		Size:      size,
		Level:     level,
		LRowStart: make([]int, size+1),
		URowStart: make([]int, size+1),
	}
	// Start from the entries of A and grow, never past a strict capacity.
	lInitial, uInitial := a.Nnz(), a.Nnz()
	if lCapacity > 0 {
		lInitial = minOf(lInitial, lCapacity)
	}
	if uCapacity > 0 {
		uInitial = minOf(uInitial, uCapacity)
	}
	p.LCol = make([]int, 0, lInitial)
	p.LLevel = make([]int, 0, lInitial)
	p.UCol = make([]int, 0, uInitial)
	p.ULevel = make([]int, 0, uInitial)

	for i := 0; i < size; i++ {
		// Sorted copy of the row becomes the initial active list.
		start, end := a.RowStart[i], a.RowStart[i+1]
		cols := w.cols[:end-start]
		copy(cols, a.ColIndex[start:end])
		ShellSort(cols)

		first := cols[0]
		for j := 0; j < len(cols)-1; j++ {
			next[cols[j]] = cols[j+1]
			curlev[cols[j]] = 0
		}
		next[cols[len(cols)-1]] = size
		curlev[cols[len(cols)-1]] = 0

		// Merge with the U rows of every active column left of the diagonal,
		// including columns filled in by earlier merges of this row.
		for row := first; row < i; row = next[row] {
			prev, succ := row, next[row]
			for k := p.URowStart[row] + 1; k < p.URowStart[row+1]; {
				col := p.UCol[k]
				switch {
				case col < succ:
					newlev := curlev[row] + p.ULevel[k] + 1
					if newlev <= level {
						next[prev] = col
						next[col] = succ
						prev = col
						curlev[col] = newlev
					}
					k++
				case col == succ:
					prev, succ = succ, next[succ]
					curlev[col] = minOf(curlev[col], curlev[row]+p.ULevel[k]+1)
					k++
				default:
					prev, succ = succ, next[succ]
				}
			}
		}

		// Split the active list at the diagonal.
		col := first
		for ; col < i; col = next[col] {
			if lCapacity > 0 && len(p.LCol) >= lCapacity {
				return nil, &StorageError{Factor: "L", Row: i, Capacity: lCapacity}
			}
			p.LCol = append(p.LCol, col)
			p.LLevel = append(p.LLevel, curlev[col])
		}
		p.LRowStart[i+1] = len(p.LCol)

		if col != i {
			return nil, &SingularError{Row: i}
		}

		for ; col < size; col = next[col] {
			if uCapacity > 0 && len(p.UCol) >= uCapacity {
				return nil, &StorageError{Factor: "U", Row: i, Capacity: uCapacity}
			}
			p.UCol = append(p.UCol, col)
			p.ULevel = append(p.ULevel, curlev[col])
		}
		p.URowStart[i+1] = len(p.UCol)

		if config != nil && config.Annotate >= AnnotateFull {
			p.WriteStatus(config.output(), i)
		}
	}

	if config != nil && config.Annotate >= AnnotateSummary {
		fmt.Fprintf(config.output(), "symbolic: level %d, nnz(L) = %d, nnz(U) = %d, fill-ins = %d\n",
			level, p.LNnz(), p.UNnz(), p.Fillins())
	}
	return p, nil
}

// LRow returns the columns of row i of L, aliasing the pattern.
func (p *Pattern) LRow(i int) []int {
	return p.LCol[p.LRowStart[i]:p.LRowStart[i+1]]
}

// URow returns the columns of row i of U, diagonal first.
func (p *Pattern) URow(i int) []int {
	return p.UCol[p.URowStart[i]:p.URowStart[i+1]]
}

// Contains reports whether (i,j) is retained in L or U.
func (p *Pattern) Contains(i, j int) bool {
	if j < i {
		_, found := binarySearch(p.LRow(i), j)
		return found
	}
	row := p.URow(i)
	if len(row) == 0 {
		return false
	}
	if j == i {
		return row[0] == i
	}
	_, found := binarySearch(row[1:], j)
	return found
}

// EntryLevel returns the fill level of (i,j), or -1 when it is not retained.
func (p *Pattern) EntryLevel(i, j int) int {
	if j < i {
		if k, found := binarySearch(p.LRow(i), j); found {
			return p.LLevel[p.LRowStart[i]+k]
		}
		return -1
	}
	row := p.URow(i)
	if j == i {
		if len(row) > 0 && row[0] == i {
			return p.ULevel[p.URowStart[i]]
		}
		return -1
	}
	if len(row) == 0 {
		return -1
	}
	if k, found := binarySearch(row[1:], j); found {
		return p.ULevel[p.URowStart[i]+1+k]
	}
	return -1
}

// Validate checks the layout Numeric relies on: row pointers spanning the
// column arrays, L rows strictly lower and ascending, and U rows starting at
// their diagonal followed by ascending upper columns.
func (p *Pattern) Validate() error {
	if p == nil || p.Size <= 0 {
		return ErrInvalidSize
	}
	if len(p.LRowStart) != p.Size+1 || len(p.URowStart) != p.Size+1 {
		return fmt.Errorf("pattern row pointers: %w", ErrDimensionMismatch)
	}
	if p.LRowStart[0] != 0 || p.LRowStart[p.Size] != len(p.LCol) ||
		p.URowStart[0] != 0 || p.URowStart[p.Size] != len(p.UCol) {
		return fmt.Errorf("pattern row pointers do not span the columns: %w", ErrDimensionMismatch)
	}
	for i := 0; i < p.Size; i++ {
		if p.LRowStart[i+1] < p.LRowStart[i] || p.URowStart[i+1] < p.URowStart[i] ||
			p.LRowStart[i+1] > len(p.LCol) || p.URowStart[i+1] > len(p.UCol) {
			return fmt.Errorf("pattern row pointer decreases at row %d: %w", i, ErrOutOfRange)
		}
		prev := -1
		for _, col := range p.LRow(i) {
			if col <= prev || col >= i {
				return fmt.Errorf("L column %d in row %d: %w", col, i, ErrOutOfRange)
			}
			prev = col
		}
		row := p.URow(i)
		if len(row) == 0 || row[0] != i {
			return &SingularError{Row: i}
		}
		prev = i
		for _, col := range row[1:] {
			if col <= prev || col >= p.Size {
				return fmt.Errorf("U column %d in row %d: %w", col, i, ErrOutOfRange)
			}
			prev = col
		}
	}
	return nil
}
