package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"ilu"
	"ilu/internal/grid"
	"ilu/internal/krylov"
	"ilu/internal/spy"
)

type run struct {
	name       string
	level      int
	omega      float64
	fillins    int
	iterations int
	residual   float64
	factorTime time.Duration
	solveTime  time.Duration
}

func main() {
	n := flag.Int("n", 64, "Grid resolution")
	fill := flag.Float64("f", 0.6, "Liquid fill fraction of the container")
	maxLevel := flag.Int("l", 3, "Largest level of fill to compare")
	tol := flag.Float64("tol", 1e-8, "Relative residual to stop CG at")
	maxIter := flag.Int("maxiter", 2000, "Maximum CG iterations")
	plotFile := flag.String("plot", "", "Write the pattern of the largest level to this file")
	flag.Parse()

	g, err := grid.Container(*n, *fill)
	if err != nil {
		log.Fatal(err)
	}
	A, err := g.Pressure()
	if err != nil {
		log.Fatal(err)
	}

	// Divergence of a unit upward velocity on the liquid cells.
	b := make([]float64, A.Size)
	for i := range b {
		b[i] = 1
	}

	fmt.Printf("Pressure matrix: %d x %d, %d entries, density %.3g%%\n\n", A.Size, A.Size, A.Nnz(), A.Density())

	runs := []run{{name: "CG"}}
	for level := 0; level <= *maxLevel; level++ {
		for _, omega := range []float64{0, 0.97, 1} {
			runs = append(runs, run{
				name:  fmt.Sprintf("ILU(%d)", level),
				level: level,
				omega: omega,
			})
		}
	}

	var last *ilu.Factor
	for i := range runs {
		r := &runs[i]
		cg := &krylov.CG{MaxIter: *maxIter, Tol: *tol}
		if i > 0 {
			config := ilu.DefaultConfiguration()
			config.LevelOfFill = r.level
			config.Relaxation = r.omega

			start := time.Now()
			f, err := ilu.Factorize(A, config)
			r.factorTime = time.Since(start)
			if err != nil {
				log.Printf("%s omega=%g: %v", r.name, r.omega, err)
				continue
			}
			r.fillins = f.Fillins()
			cg.Preconditioner = f.Precondition
			last = f
		}

		start := time.Now()
		_, err := cg.Solve(A, b)
		r.solveTime = time.Since(start)
		if err != nil && !errors.Is(err, krylov.ErrNotConverged) {
			log.Fatal(err)
		}
		r.iterations, r.residual = cg.Iterations(), cg.Residual()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "preconditioner\tomega\tfill-ins\titerations\tresidual\tfactor\tsolve")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%g\t%d\t%d\t%.2g\t%v\t%v\n",
			r.name, r.omega, r.fillins, r.iterations, r.residual,
			r.factorTime.Round(time.Microsecond), r.solveTime.Round(time.Microsecond))
	}
	w.Flush()

	if *plotFile != "" && last != nil {
		title := fmt.Sprintf("pressure %dx%d, ILU(%d)", *n, *n, last.Level)
		if err := spy.Save(last.Pattern, title, *plotFile); err != nil {
			log.Fatal(err)
		}
	}
}
