package main

import (
	"log"
	"os"

	"ilu"
)

func main() {
	config := ilu.DefaultConfiguration()
	config.LevelOfFill = 1
	config.Relaxation = 1
	config.PrinterWidth = 140
	config.Annotate = ilu.AnnotateFull

	b, err := ilu.NewBuilder(5)
	if err != nil {
		log.Fatal(err)
	}

	for _, e := range []struct {
		row, col int
		value    float64
	}{
		{0, 0, 10}, {0, 3, 4},
		{1, 1, 20}, {1, 2, 5},
		{2, 1, 2}, {2, 2, 30},
		{3, 0, 4}, {3, 3, 40}, {3, 4, 6},
		{4, 3, 6}, {4, 4, 50},
	} {
		if err := b.Add(e.row, e.col, e.value); err != nil {
			log.Fatal(err)
		}
	}

	A, err := b.Matrix()
	if err != nil {
		log.Fatal(err)
	}

	A.Print(os.Stdout, true, true, config.PrinterWidth)

	f, err := ilu.Factorize(A, config)
	if err != nil {
		log.Fatal(err)
	}

	f.Pattern.Print(os.Stdout, true, config.PrinterWidth)
	f.Print(os.Stdout, true, true, config.PrinterWidth)
}
