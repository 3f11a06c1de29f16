package ilu

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slices"
)

func TestShellSort(t *testing.T) {
	tests := []struct {
		name string
		in   []int
		want []int
	}{
		{"empty", []int{}, []int{}},
		{"single", []int{3}, []int{3}},
		{"sorted", []int{0, 1, 2, 5}, []int{0, 1, 2, 5}},
		{"reversed", []int{9, 7, 4, 2, 1}, []int{1, 2, 4, 7, 9}},
		{"nearly sorted", []int{0, 2, 1, 3, 5, 4}, []int{0, 1, 2, 3, 4, 5}},
		{"repeats", []int{3, 1, 3, 1}, []int{1, 1, 3, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ShellSort(tt.in)
			assert.Equal(t, tt.want, tt.in)
		})
	}
}

func TestShellSortRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 0; n < 200; n += 13 {
		x := rng.Perm(n)
		want := slices.Clone(x)
		sort.Ints(want)
		ShellSort(x)
		assert.Equal(t, want, x)
	}

	f := []float64{2.5, -1, 0, 3.25, -7}
	ShellSort(f)
	assert.Equal(t, []float64{-7, -1, 0, 2.5, 3.25}, f)
}
