/*
 * index.go, part of gorefine.
 *
 * Copyright 2024 The goRefine Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package spatial

import (
	"math"

	v3 "github.com/rmera/gorefine/v3"
)

// stencil holds the 13 "forward" neighbor cells. Together with the cell itself,
// they visit every unordered pair of neighboring cells exactly once.
var stencil = func() [][3]int {
	ret := make([][3]int, 0, 13)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dz > 0 || (dz == 0 && dy > 0) || (dz == 0 && dy == 0 && dx > 0) {
					ret = append(ret, [3]int{dx, dy, dz})
				}
			}
		}
	}
	return ret
}()

// Index is a uniform grid over a set of coordinates, with cells at least as large
// as the cutoff. It is rebuilt from scratch by each call to Build, and reuses its storage.
type Index struct {
	coords  *v3.Matrix
	cutoff  float64
	cell    float64
	origin  v3.Vec
	dims    [3]int
	start   []int //atoms of cell c are sorted[start[c]:start[c+1]]
	sorted  []int
	cellOf  []int
	counter []int
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return new(Index)
}

// Build buckets the atoms in coords into cells of size cutoff (or larger, for
// very sparse systems) using a counting sort.
func (I *Index) Build(coords *v3.Matrix, cutoff float64) {
	if cutoff <= 0 {
		panic("spatial: cutoff must be positive")
	}
	n := coords.NVecs()
	I.coords = coords
	I.cutoff = cutoff
	lo, hi := coords.Bounds()
	I.origin = lo
	I.cell = cutoff
	//keep the number of cells proportional to the number of atoms
	maxCells := 27 + 4*n
	for {
		total := 1
		for k := 0; k < 3; k++ {
			I.dims[k] = int(math.Floor((hi[k]-lo[k])/I.cell)) + 1
			total *= I.dims[k]
		}
		if total <= maxCells {
			break
		}
		I.cell *= 1.5
	}
	ncells := I.dims[0] * I.dims[1] * I.dims[2]
	I.start = resize(I.start, ncells+1)
	I.counter = resize(I.counter, ncells)
	I.sorted = resize(I.sorted, n)
	I.cellOf = resize(I.cellOf, n)
	for i := range I.start {
		I.start[i] = 0
	}
	for i := 0; i < n; i++ {
		c := I.cellIndex(I.cellCoords(coords.Vec(i)))
		I.cellOf[i] = c
		I.start[c+1]++
	}
	for c := 0; c < ncells; c++ {
		I.start[c+1] += I.start[c]
		I.counter[c] = I.start[c]
	}
	//stable, so atoms in a cell are sorted by index.
	for i := 0; i < n; i++ {
		c := I.cellOf[i]
		I.sorted[I.counter[c]] = i
		I.counter[c]++
	}
}

func resize(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}
	return s[:n]
}

func (I *Index) cellCoords(p v3.Vec) [3]int {
	var c [3]int
	for k := 0; k < 3; k++ {
		c[k] = int((p[k] - I.origin[k]) / I.cell)
		if c[k] >= I.dims[k] {
			c[k] = I.dims[k] - 1
		}
		if c[k] < 0 {
			c[k] = 0
		}
	}
	return c
}

func (I *Index) cellIndex(c [3]int) int {
	return (c[2]*I.dims[1]+c[1])*I.dims[0] + c[0]
}

// NCells returns the number of cells in the grid
func (I *Index) NCells() int {
	return I.dims[0] * I.dims[1] * I.dims[2]
}

// Pairs calls fn once for each pair of atoms i<j with a squared distance smaller
// than the squared cutoff.
func (I *Index) Pairs(fn func(i, j int, d2 float64)) {
	if I.coords == nil {
		return
	}
	cut2 := I.cutoff * I.cutoff
	for z := 0; z < I.dims[2]; z++ {
		for y := 0; y < I.dims[1]; y++ {
			for x := 0; x < I.dims[0]; x++ {
				c := I.cellIndex([3]int{x, y, z})
				own := I.sorted[I.start[c]:I.start[c+1]]
				if len(own) == 0 {
					continue
				}
				for k, i := range own {
					xi := I.coords.Vec(i)
					for _, j := range own[k+1:] {
						if d2 := xi.Dist2(I.coords.Vec(j)); d2 < cut2 {
							fn(i, j, d2)
						}
					}
				}
				for _, off := range stencil {
					nx, ny, nz := x+off[0], y+off[1], z+off[2]
					if nx < 0 || ny < 0 || nz < 0 || nx >= I.dims[0] || ny >= I.dims[1] || nz >= I.dims[2] {
						continue
					}
					nc := I.cellIndex([3]int{nx, ny, nz})
					other := I.sorted[I.start[nc]:I.start[nc+1]]
					for _, i := range own {
						xi := I.coords.Vec(i)
						for _, j := range other {
							if d2 := xi.Dist2(I.coords.Vec(j)); d2 < cut2 {
								if i < j {
									fn(i, j, d2)
								} else {
									fn(j, i, d2)
								}
							}
						}
					}
				}
			}
		}
	}
}

// BruteForce calls fn for every pair i<j closer than cutoff, checking all pairs.
// It is the reference for Index.Pairs.
func BruteForce(coords *v3.Matrix, cutoff float64, fn func(i, j int, d2 float64)) {
	cut2 := cutoff * cutoff
	n := coords.NVecs()
	for i := 0; i < n; i++ {
		xi := coords.Vec(i)
		for j := i + 1; j < n; j++ {
			if d2 := xi.Dist2(coords.Vec(j)); d2 < cut2 {
				fn(i, j, d2)
			}
		}
	}
}
