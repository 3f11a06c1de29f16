// Package grid builds the pressure Poisson matrices of a 2-D liquid in a
// round container, the system a grid fluid solver projects velocities with.
package grid

import (
	"fmt"
	"math"

	"ilu"
)

type Cell byte

// neighbours are the 5-point stencil offsets around a cell.
var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

const (
	Solid Cell = iota
	Liquid
	Air
)

// Grid is an N x N cell grid; Index numbers the liquid cells row by row and
// is -1 elsewhere.
type Grid struct {
	N     int
	Cells []Cell
	Index []int
	Count int
}

// Container returns a grid whose inside is a disc of radius 0.45 (in units
// of the grid width) centred in the square, filled with liquid up to the
// given fraction of its height. The rest of the disc is air, outside is solid.
func Container(n int, fill float64) (*Grid, error) {
	if n < 8 {
		return nil, fmt.Errorf("grid: resolution %d too small", n)
	}
	// A full container has no free surface and a singular pressure matrix.
	if !(fill > 0 && fill < 1) {
		return nil, fmt.Errorf("grid: fill %g outside (0,1)", fill)
	}
	g := &Grid{
		N:     n,
		Cells: make([]Cell, n*n),
		Index: make([]int, n*n),
	}
	h := 1.0 / float64(n)
	const radius = 0.45
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			x, y := (float64(i)+0.5)*h, (float64(j)+0.5)*h
			k := j*n + i
			g.Index[k] = -1
			switch {
			case math.Hypot(x-0.5, y-0.5) > radius:
				g.Cells[k] = Solid
			case y < 0.5-radius+2*radius*fill:
				g.Cells[k] = Liquid
				g.Index[k] = g.Count
				g.Count++
			default:
				g.Cells[k] = Air
			}
		}
	}
	if g.Count == 0 {
		return nil, fmt.Errorf("grid: fill %g leaves no liquid", fill)
	}
	return g, nil
}

// Pressure returns the 5-point pressure matrix over the liquid cells: every
// non-solid neighbour adds one to the diagonal, liquid neighbours couple with
// -1, air neighbours are p = 0 and solid walls have no flux.
func (g *Grid) Pressure() (*ilu.Matrix, error) {
	b, err := ilu.NewBuilder(g.Count)
	if err != nil {
		return nil, err
	}
	n := g.N
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			row := g.Index[j*n+i]
			if row < 0 {
				continue
			}
			diag := 0.0
			for _, d := range neighbours {
				ni, nj := i+d[0], j+d[1]
				if ni < 0 || ni >= n || nj < 0 || nj >= n {
					continue
				}
				k := nj*n + ni
				switch g.Cells[k] {
				case Liquid:
					diag++
					if err := b.Add(row, g.Index[k], -1); err != nil {
						return nil, err
					}
				case Air:
					diag++
				}
			}
			if err := b.Add(row, row, diag); err != nil {
				return nil, err
			}
		}
	}
	return b.Matrix()
}

// Laplacian returns the n*n x n*n 5-point Laplacian of a square with
// Dirichlet boundaries: 4 on the diagonal, -1 for each grid neighbour.
func Laplacian(n int) (*ilu.Matrix, error) {
	b, err := ilu.NewBuilder(n * n)
	if err != nil {
		return nil, err
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			row := j*n + i
			if err := b.Add(row, row, 4); err != nil {
				return nil, err
			}
			for _, d := range neighbours {
				ni, nj := i+d[0], j+d[1]
				if ni < 0 || ni >= n || nj < 0 || nj >= n {
					continue
				}
				if err := b.Add(row, nj*n+ni, -1); err != nil {
					return nil, err
				}
			}
		}
	}
	return b.Matrix()
}
