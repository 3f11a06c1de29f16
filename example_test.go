package ilu_test

import (
	"errors"
	"fmt"

	"ilu"
)

func tridiagonal(n int) *ilu.Matrix {
	b, err := ilu.NewBuilder(n)
	if err != nil {
		panic(err)
	}
	for i := 0; i < n; i++ {
		if err := b.Add(i, i, 4); err != nil {
			panic(err)
		}
		if i > 0 {
			if err := b.Add(i, i-1, -1); err != nil {
				panic(err)
			}
			if err := b.Add(i-1, i, -1); err != nil {
				panic(err)
			}
		}
	}
	a, err := b.Matrix()
	if err != nil {
		panic(err)
	}
	return a
}

func ExampleFactorize() {
	a := tridiagonal(3)

	f, err := ilu.Factorize(a, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	for i := 0; i < a.Size; i++ {
		fmt.Printf("%.4f\n", f.Pivot(i))
	}

	x := make([]float64, a.Size)
	if err := f.Solve(x, []float64{3, 2, 3}); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%.4f\n", x)
	// Output:
	// 4.0000
	// 3.7500
	// 3.7333
	// [1.0000 1.0000 1.0000]
}

func ExampleSymbolic_storageExhausted() {
	_, err := ilu.Symbolic(tridiagonal(3), 0, ilu.Unbounded, 4)

	var se *ilu.StorageError
	if errors.As(err, &se) {
		fmt.Println(se.Factor, se.Capacity, se.Required)
	}
	// Output: U 4 5
}
