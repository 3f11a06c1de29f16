package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"ilu"
	"ilu/internal/krylov"
	"ilu/internal/spy"
)

type App struct {
	problem      *ilu.Problem
	factor       *ilu.Factor
	config       *ilu.Configuration
	filename     string
	solutionOnly bool
	printLimit   int
	iterations   int
	columnAsRHS  int
	tolerance    float64
	maxIter      int
	plotFile     string
	solution     []float64

	cgIterations int
	cgResidual   float64

	readTime   float64
	factorTime float64
	solveTime  float64
	startTime  time.Time
}

func InitApp() *App {
	return &App{
		config:    ilu.DefaultConfiguration(),
		startTime: time.Now(),
	}
}

func (a *App) readMatrixFromFile() error {
	file, err := os.Open(a.filename)
	if err != nil {
		return fmt.Errorf("error opening file: %v", err)
	}
	defer file.Close()

	start := time.Now()
	a.problem, err = ilu.ReadProblem(file)
	if err != nil {
		return fmt.Errorf("%s: %w", a.filename, err)
	}
	a.readTime = time.Since(start).Seconds()

	if a.columnAsRHS > 0 {
		m := a.problem.Matrix
		col := min(m.Size, a.columnAsRHS) - 1
		for i := 0; i < m.Size; i++ {
			a.problem.RHS[i] = m.At(i, col)
		}
	}

	if !a.solutionOnly {
		fmt.Printf("\n%s\n\n", a.problem.Description)
		fmt.Printf("Matrix is %d x %d and real, %d entries.\n", a.problem.Matrix.Size, a.problem.Matrix.Size, a.problem.Matrix.Nnz())
	}
	return nil
}

func (a *App) factorize() error {
	m := a.problem.Matrix

	var err error
	for i := 0; i < a.iterations; i++ {
		start := time.Now()
		if a.factor == nil {
			a.factor, err = ilu.Factorize(m, a.config)
		} else {
			err = a.factor.Refactor(m)
		}
		a.factorTime += time.Since(start).Seconds()
		if err != nil {
			var storageErr *ilu.StorageError
			if errors.As(err, &storageErr) && storageErr.Required > 0 {
				return fmt.Errorf("%w (rerun with -c %d)", err, storageErr.Required)
			}
			return err
		}
	}
	return nil
}

func (a *App) solve() error {
	cg := &krylov.CG{
		MaxIter:        a.maxIter,
		Tol:            a.tolerance,
		Preconditioner: a.factor.Precondition,
	}

	start := time.Now()
	x, err := cg.Solve(a.problem.Matrix, a.problem.RHS)
	a.solveTime = time.Since(start).Seconds()
	a.cgIterations, a.cgResidual = cg.Iterations(), cg.Residual()
	if err != nil && !errors.Is(err, krylov.ErrNotConverged) {
		return err
	}
	if err != nil {
		log.Println(err)
	}
	a.solution = x

	limit := len(x)
	if !a.solutionOnly && a.printLimit > 0 && a.printLimit < limit {
		limit = a.printLimit
	}
	if !a.solutionOnly {
		fmt.Println("Solution:")
	}
	for i := 0; i < limit; i++ {
		fmt.Printf("%-16.9g\n", x[i])
	}
	if !a.solutionOnly && limit < len(x) && limit != 0 {
		fmt.Printf("Solution list truncated.\n")
	}
	fmt.Println()
	return nil
}

func (a *App) printStatistics() {
	m := a.problem.Matrix
	stats := a.factor.Statistics()
	det, exponent := a.factor.Determinant()

	residual := make([]float64, m.Size)
	_ = m.MulVec(residual, a.solution)
	maxResidual, maxRHS := 0.0, 0.0
	for i := range residual {
		maxResidual = max(maxResidual, abs(residual[i]-a.problem.RHS[i]))
		maxRHS = max(maxRHS, abs(a.problem.RHS[i]))
	}

	fmt.Printf("Statistics:\n")
	fmt.Printf("Read time = %.3f.\n", a.readTime)
	if a.iterations > 0 {
		fmt.Printf("Factor time = %.3f.\n", a.factorTime/float64(a.iterations))
	}
	fmt.Printf("Solve time = %.3f.\n", a.solveTime)
	fmt.Printf("\nLevel of fill = %d, relaxation = %g.\n", a.config.LevelOfFill, a.config.Relaxation)
	fmt.Printf("Entries in L = %d, in U = %d.\n", stats.LNnz, stats.UNnz)
	fmt.Printf("Total number of fill-ins = %d\n", stats.Fillins)
	fmt.Printf("Largest pivot = %-1.4g, smallest pivot = %-1.4g.\n", stats.LargestPivot, stats.SmallestPivot)
	if exponent != 0 {
		fmt.Printf("Determinant of LU = %.3ge%d\n", det, exponent)
	} else {
		fmt.Printf("Determinant of LU = %.3g\n", det)
	}
	fmt.Printf("CG iterations = %d, relative residual = %.2g\n", a.cgIterations, a.cgResidual)
	if maxRHS != 0.0 {
		fmt.Printf("Normalized residual = %.2g\n", maxResidual/maxRHS)
	}
}

func (a *App) printResourceUsage() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	fmt.Printf("\nAggregate resource usage:\n")
	fmt.Printf("    Time required = %.4f seconds.\n", time.Since(a.startTime).Seconds())
	fmt.Printf("    Heap memory used = %d kBytes\n", m.HeapAlloc/1024)
	fmt.Printf("    Total memory from OS = %d kBytes\n\n", m.Sys/1024)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func main() {
	level := flag.Int("l", 0, "Level of fill")
	omega := flag.Float64("w", 0.0, "Relaxation in [0,1] (1 = MILU)")
	capacity := flag.Int("c", 0, "Storage for each of L and U, 0 grows on demand")
	pivotTolerance := flag.Float64("t", 0.0, "Treat pivots with magnitude <= t as zero")
	annotate := flag.Int("v", 0, "Annotation level (0 none, 1 summary, 2 per row)")
	solutionOnly := flag.Bool("s", false, "Print solution rather than run statistics")
	printLimit := flag.Int("n", 9, "Print first n terms of solution vector")
	iterations := flag.Int("i", 1, "Repeat factor n times")
	columnAsRHS := flag.Int("b", -1, "Use n'th column of matrix as b in Ax=b")
	tolerance := flag.Float64("tol", 1e-10, "Relative residual to stop CG at")
	maxIter := flag.Int("maxiter", 1000, "Maximum CG iterations")
	plotFile := flag.String("plot", "", "Write the L+U sparsity plot to this file")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Error: Please provide a matrix file")
		os.Exit(1)
	}

	a := InitApp()
	a.filename = args[0]
	a.solutionOnly = *solutionOnly
	a.printLimit = *printLimit
	a.iterations = max(*iterations, 1)
	a.columnAsRHS = *columnAsRHS
	a.tolerance = *tolerance
	a.maxIter = *maxIter
	a.plotFile = *plotFile

	a.config.LevelOfFill = *level
	a.config.Relaxation = *omega
	a.config.LCapacity = *capacity
	a.config.UCapacity = *capacity
	a.config.PivotTolerance = *pivotTolerance
	a.config.Annotate = *annotate

	if !a.solutionOnly {
		fmt.Printf("ILU Go\n\n")
	}

	name := filepath.Base(os.Args[0])
	if err := a.readMatrixFromFile(); err != nil {
		log.Fatalf("%s: %v", name, err)
	}
	if err := a.factorize(); err != nil {
		log.Fatalf("%s: %v", name, err)
	}
	if err := a.solve(); err != nil {
		log.Fatalf("%s: %v", name, err)
	}

	if a.plotFile != "" {
		title := fmt.Sprintf("%s, ILU(%d)", filepath.Base(a.filename), a.config.LevelOfFill)
		if err := spy.Save(a.factor.Pattern, title, a.plotFile); err != nil {
			log.Fatalf("%s: %v", name, err)
		}
	}

	if !a.solutionOnly {
		a.printStatistics()
		a.printResourceUsage()
	}
}
