package ilu

import "golang.org/x/exp/constraints"

// ShellSort sorts x in place, ascending, halving the gap each pass. Matrix
// rows usually arrive nearly sorted, which makes every pass close to linear.
func ShellSort[T constraints.Ordered](x []T) {
	n := len(x)
	for gap := n / 2; gap > 0; gap /= 2 {
		for j := 0; j < n-gap; j++ {
			for k := j; k >= 0 && x[k+gap] < x[k]; k -= gap {
				x[k], x[k+gap] = x[k+gap], x[k]
			}
		}
	}
}
