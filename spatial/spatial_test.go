/*
 * spatial_test.go, part of gorefine.
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
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	refine "github.com/rmera/gorefine"
	"github.com/rmera/gorefine/kintree"
	v3 "github.com/rmera/gorefine/v3"
)

func collect(f func(fn func(i, j int, d2 float64))) map[[2]int]float64 {
	ret := make(map[[2]int]float64)
	f(func(i, j int, d2 float64) {
		if i >= j {
			panic("unordered pair")
		}
		if _, ok := ret[[2]int{i, j}]; ok {
			panic("pair visited twice")
		}
		ret[[2]int{i, j}] = d2
	})
	return ret
}

func randomCoords(r *rand.Rand, n int, box float64, shift v3.Vec) []float64 {
	data := make([]float64, 0, 3*n)
	for i := 0; i < n; i++ {
		for k := 0; k < 3; k++ {
			data = append(data, r.Float64()*box+shift[k])
		}
	}
	return data
}

func TestGridMatchesBruteForce(Te *testing.T) {
	r := rand.New(rand.NewSource(7))
	data := randomCoords(r, 300, 20, v3.Vec{-3, 5, 1})
	//a far away cluster, to force large cells
	data = append(data, randomCoords(r, 40, 5, v3.Vec{400, -300, 250})...)
	coords, err := v3.NewMatrix(data)
	require.NoError(Te, err)
	I := NewIndex()
	for _, cutoff := range []float64{1.5, 4, 7.5} {
		I.Build(coords, cutoff)
		grid := collect(I.Pairs)
		brute := collect(func(fn func(i, j int, d2 float64)) { BruteForce(coords, cutoff, fn) })
		assert.Equal(Te, len(brute), len(grid), "cutoff %.1f", cutoff)
		for k, d2 := range brute {
			g, ok := grid[k]
			if assert.True(Te, ok, "missing pair %v", k) {
				assert.InDelta(Te, d2, g, 1e-12)
			}
		}
		assert.LessOrEqual(Te, I.NCells(), 27+4*coords.NVecs())
	}
}

func TestStencil(Te *testing.T) {
	assert.Len(Te, stencil, 13)
	seen := make(map[[3]int]bool)
	for _, s := range stencil {
		neg := [3]int{-s[0], -s[1], -s[2]}
		assert.False(Te, seen[neg], "offset %v and its opposite", s)
		seen[s] = true
	}
}

func TestContact(Te *testing.T) {
	o := &refine.AtomType{Name: "O", HardRadius: 1.3, HBond: refine.Acceptor}
	h := &refine.AtomType{Name: "HO", HardRadius: 0.9, HBond: refine.Donor}
	c := &refine.AtomType{Name: "C", HardRadius: 1.4}
	ghost := &refine.AtomType{Name: "X", HardRadius: 0}
	assert.InDelta(Te, 2.7, Contact(o, c, 0, DefaultHBondDiscount), 1e-12)
	assert.InDelta(Te, 2.2-2*DefaultHBondDiscount, Contact(o, h, 0, DefaultHBondDiscount), 1e-12)
	assert.InDelta(Te, 2.5, Contact(o, c, 0.1, DefaultHBondDiscount), 1e-12)
	assert.Zero(Te, Contact(ghost, c, 0, DefaultHBondDiscount))
}

type recorder struct {
	pairs map[[2]int]float64
}

func (r *recorder) Reset() { r.pairs = make(map[[2]int]float64) }

func (r *recorder) AddRepulsion(i, j int, radius, weight float64) int {
	r.pairs[[2]int{i, j}] = radius
	return len(r.pairs) - 1
}

func chain(Te *testing.T) (*refine.Topology, *v3.Matrix, *kintree.Tree) {
	top := refine.NewTopology(5)
	for i := 0; i < 5; i++ {
		top.AddAtom(refine.NewAtom("C"+string(rune('1'+i)), "C"))
	}
	for i, order := range []float64{1, 1, 2, 1} {
		_, err := top.AddBond(i, i+1, order)
		require.NoError(Te, err)
	}
	coords, err := v3.NewMatrix([]float64{
		0, 0, 0,
		1.25, 0.85, 0,
		2.5, 0, 0,
		3.75, 0.85, 0,
		5.0, 0.4, 0.9,
	})
	require.NoError(Te, err)
	T, err := kintree.Build(top, coords, -1, -1)
	require.NoError(Te, err)
	return top, coords, T
}

func TestGenerator(Te *testing.T) {
	top, coords, T := chain(Te)
	types, err := refine.DefaultAtomTypes().Resolve(top)
	require.NoError(Te, err)
	opts := DefaultOptions()
	opts.Cutoff = 6
	G := NewGenerator(top, types, T.FixedPairs(top), opts)
	sink := &recorder{}
	n := G.Generate(coords, sink)
	assert.Equal(Te, 2, n)
	assert.Contains(Te, sink.pairs, [2]int{0, 3})
	assert.Contains(Te, sink.pairs, [2]int{0, 4})
	assert.InDelta(Te, 2*1.7*refine.DefaultHardScale, sink.pairs[[2]int{0, 3}], 1e-12)

	G.Restrain(4, 0)
	assert.Equal(Te, 1, G.Generate(coords, sink))
	assert.NotContains(Te, sink.pairs, [2]int{0, 4})

	top.Atom(0).MolID = 5
	G.ResidueWindow = 2
	assert.Equal(Te, 0, G.Generate(coords, sink))
}

func TestClose(Te *testing.T) {
	top, _, _ := chain(Te)
	G := NewGenerator(top, make([]*refine.AtomType, 5), nil, DefaultOptions())
	assert.True(Te, G.Close(1, 3))
	assert.True(Te, G.Close(2, 4))
	assert.False(Te, G.Close(0, 3))
	assert.False(Te, G.Close(0, 4))
}
