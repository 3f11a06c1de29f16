package ilu

import "io"

const (
	// Unbounded as a capacity lets the factor storage grow on demand.
	Unbounded int = 0

	DEFAULT_PRINTER_WIDTH int = 80

	AnnotateNone    int = 0 // silent
	AnnotateSummary int = 1 // one line per phase
	AnnotateFull    int = 2 // one line per row
)

// Configuration controls a factorization. A nil *Configuration passed to
// Factorize selects DefaultConfiguration.
type Configuration struct {
	LevelOfFill int     // fill entries with a level above this are dropped
	Relaxation  float64 // omega in [0,1]; 0 = ILU, 1 = MILU

	LCapacity int // maximum entries of L, Unbounded to grow
	UCapacity int // maximum entries of U (diagonals included), Unbounded to grow

	PivotTolerance float64 // |pivot| <= PivotTolerance is a zero pivot

	PrinterWidth int       // Default: 80
	Annotate     int       // AnnotateNone, AnnotateSummary or AnnotateFull
	Output       io.Writer // annotation sink, os.Stdout when nil
}

// Matrix is a read-only compressed sparse row view, 0-based.
type Matrix struct {
	Size     int       // Matrix order
	RowStart []int     // Offsets into ColIndex/Value [0...Size]
	ColIndex []int     // Column of every stored entry, rows need not be sorted
	Value    []float64 // Value of every stored entry
}

// Pattern is the symbolic result: where L and U hold entries.
type Pattern struct {
	Size  int // Matrix order
	Level int // Level of fill bound used to build the pattern

	LRowStart []int // Offsets into LCol [0...Size]
	LCol      []int // Strictly lower columns per row, ascending
	LLevel    []int // Fill level of every L entry

	URowStart []int // Offsets into UCol [0...Size]
	UCol      []int // Diagonal first, then upper columns ascending
	ULevel    []int // Fill level of every U entry
}

// Factor holds the numeric L and U values on top of a Pattern. L has an
// implicit unit diagonal; U[URowStart[i]] is the pivot of row i.
type Factor struct {
	*Pattern

	L []float64 // Multipliers, parallel to LCol
	U []float64 // Upper values, parallel to UCol

	Relaxation     float64 // omega used for the values
	PivotTolerance float64
}

// Stats summarises a factor.
type Stats struct {
	LargestPivot  float64
	SmallestPivot float64
	LNnz          int
	UNnz          int
	Fillins       int
	Density       float64 // percent of Size*Size held by L+U
}

// Problem is a matrix file: description, matrix and right-hand side.
type Problem struct {
	Description string
	Matrix      *Matrix
	RHS         []float64
}
