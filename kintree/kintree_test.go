/*
 * kintree_test.go, part of gorefine.
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

package kintree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	refine "github.com/rmera/gorefine"
	v3 "github.com/rmera/gorefine/v3"
)

func molecule(Te *testing.T, symbols []string, bonds [][3]int, xyz []float64) (*refine.Topology, *v3.Matrix) {
	top := refine.NewTopology(len(symbols))
	for i, s := range symbols {
		at := refine.NewAtom(s+string(rune('A'+i)), s)
		top.AddAtom(at)
	}
	for _, b := range bonds {
		_, err := top.AddBond(b[0], b[1], float64(b[2]))
		require.NoError(Te, err)
	}
	coords, err := v3.NewMatrix(xyz)
	require.NoError(Te, err)
	return top, coords
}

func chain(Te *testing.T) (*refine.Topology, *v3.Matrix) {
	return molecule(Te, []string{"C", "C", "C", "C", "C"},
		[][3]int{{0, 1, 1}, {1, 2, 1}, {2, 3, 2}, {3, 4, 1}},
		[]float64{
			0, 0, 0,
			1.25, 0.85, 0,
			2.5, 0, 0,
			3.75, 0.85, 0,
			5.0, 0.4, 0.9,
		})
}

func branched(Te *testing.T) (*refine.Topology, *v3.Matrix) {
	return molecule(Te, []string{"C", "C", "C", "C", "C", "O"},
		[][3]int{{0, 1, 1}, {1, 2, 1}, {2, 3, 1}, {3, 4, 1}, {3, 5, 1}},
		[]float64{
			0, 0, 0,
			1.5, 0, 0,
			2, 1.4, 0,
			3.5, 1.5, 0.2,
			4, 2.9, 0.3,
			4.1, 0.6, 1.1,
		})
}

// a ring of 6 carbons (1-6) with a tail atom, 0, bonded to 1.
func ring(Te *testing.T) (*refine.Topology, *v3.Matrix) {
	return molecule(Te, []string{"O", "C", "C", "C", "C", "C", "C"},
		[][3]int{{0, 1, 1}, {1, 2, 1}, {2, 3, 1}, {3, 4, 1}, {4, 5, 1}, {5, 6, 1}, {6, 1, 1}},
		[]float64{
			-1.4, 0, 0,
			0, 0, 0,
			0.7, 1.2, 0.2,
			2.1, 1.2, -0.2,
			2.8, 0, 0.2,
			2.1, -1.2, -0.2,
			0.7, -1.2, 0.2,
		})
}

func TestBuildChain(Te *testing.T) {
	top, coords := chain(Te)
	T, err := Build(top, coords, -1, -1)
	require.NoError(Te, err)
	assert.Equal(Te, 0, T.Start)
	assert.Empty(Te, T.Closures)
	assert.ElementsMatch(Te, []int{0, 1, 2, 3, 4}, T.Order)
	assert.Equal(Te, []int{-1, 0, 1, 2, 3}, T.Parent)
	assert.Len(Te, T.Branches, 4)
	for i := 1; i < top.Len(); i++ {
		assert.Equal(Te, T.Parent[i], top.Atom(i).Parent)
	}
	//2=3 is a double bond, so only the torsion about 1-2 is free.
	assert.Equal(Te, []int{3}, T.Rotatable(top))
	assert.True(Te, T.Anchor(2))
	assert.False(Te, T.Anchor(3))
	g, p := T.Axis(3)
	assert.Equal(Te, 1, g)
	assert.Equal(Te, 2, p)
	assert.InDelta(Te, refine.DihedralAt(coords, 0, 1, 2, 3), top.Atom(3).Dihedral, 1e-9)
}

func TestRotatability(Te *testing.T) {
	top, coords := branched(Te)
	T, err := Build(top, coords, 0, -1)
	require.NoError(Te, err)
	//atoms 1 and 2 lack a complete context, and 5 only stores an offset to 4.
	assert.Equal(Te, []int{3, 4}, T.Rotatable(top))

	assert.True(Te, rotatable(top, 2, 3))
	top.Atom(2).Flags |= refine.Ring
	assert.True(Te, rotatable(top, 2, 3), "one constrained end is not enough")
	top.Atom(3).Resonance = 5
	assert.False(Te, rotatable(top, 2, 3))
	top.Atom(2).Flags = 0
	top.Atom(3).Resonance = -1

	top.Atom(3).Symbol = "H"
	assert.False(Te, rotatable(top, 2, 3))
	top.Atom(3).Symbol = "C"
	top.Bond(2, 3).Order = 2
	assert.False(Te, rotatable(top, 2, 3))
	top.Bond(2, 3).Order = 0
	assert.True(Te, rotatable(top, 2, 3), "undetermined order counts as single")
	assert.False(Te, rotatable(top, 0, 2), "no bond")
}

func TestBuildEnd(Te *testing.T) {
	top, coords := branched(Te)
	//Without an end atom the lighter carbon goes first, with end=4 it goes last.
	T, err := Build(top, coords, 0, -1)
	require.NoError(Te, err)
	assert.Equal(Te, []int{4, 5}, T.Children(3))
	T, err = Build(top, coords, 0, 4)
	require.NoError(Te, err)
	assert.Equal(Te, []int{5, 4}, T.Children(3))
	assert.Equal(Te, 5, top.Atom(4).Group)
	assert.Equal(Te, 5, T.PrevSibling(4))
}

func TestBuildRing(Te *testing.T) {
	top, coords := ring(Te)
	T, err := Build(top, coords, -1, -1)
	require.NoError(Te, err)
	require.Len(Te, T.Closures, 1)
	c := T.Closures[0]
	assert.True(Te, top.BondAt(c.Bond).RingClosure)
	assert.InDelta(Te, refine.Distance(coords.Vec(c.I), coords.Vec(c.J)), c.Dist, 1e-12)
	flagged := 0
	for _, b := range top.Bonds {
		if b.RingClosure {
			flagged++
		}
	}
	assert.Equal(Te, 1, flagged)
	//depths are shells: bonded atoms are never more than one shell apart
	for _, b := range top.Bonds {
		d := T.Depth[b.At1] - T.Depth[b.At2]
		assert.True(Te, d >= -1 && d <= 1, "bond %d-%d", b.At1, b.At2)
	}
	for i := 1; i < 7; i++ {
		assert.True(Te, top.Atom(i).Flags.Has(refine.Ring), "atom %d", i)
	}
	assert.False(Te, top.Atom(0).Flags.Has(refine.Ring))
	assert.Empty(Te, T.Rotatable(top))
	assert.Len(Te, T.Order, 7)
}

func TestBuildErrors(Te *testing.T) {
	top, coords := chain(Te)
	_, err := Build(top, coords, 9, -1)
	assert.ErrorIs(Te, err, ErrUnreachable)
	_, err = Build(top, coords, 2, -1)
	assert.ErrorIs(Te, err, ErrNoStartAtom)

	top, coords = molecule(Te, []string{"C", "C", "C"}, [][3]int{{0, 1, 1}, {1, 2, 1}, {2, 0, 1}},
		[]float64{0, 0, 0, 1.5, 0, 0, 0.7, 1.2, 0})
	_, err = Build(top, coords, -1, -1)
	assert.ErrorIs(Te, err, ErrNoStartAtom)

	top, coords = molecule(Te, []string{"C", "C", "C", "C"}, [][3]int{{0, 1, 1}, {2, 3, 1}},
		[]float64{0, 0, 0, 1.5, 0, 0, 5, 0, 0, 6.5, 0, 0})
	_, err = Build(top, coords, -1, -1)
	assert.ErrorIs(Te, err, ErrDisconnected)
}

func TestPlaceReproduces(Te *testing.T) {
	for _, f := range []func(*testing.T) (*refine.Topology, *v3.Matrix){chain, branched, ring} {
		top, coords := f(Te)
		T, err := Build(top, coords, -1, -1)
		require.NoError(Te, err)
		placed := coords.Clone()
		T.Place(top, placed)
		for i := 0; i < top.Len(); i++ {
			for k := 0; k < 3; k++ {
				assert.InDelta(Te, coords.At(i, k), placed.At(i, k), 1e-9)
			}
		}
	}
}

func TestPlaceRotates(Te *testing.T) {
	top, coords := branched(Te)
	T, err := Build(top, coords, -1, -1)
	require.NoError(Te, err)
	first := T.Children(3)[0]
	second := T.Children(3)[1]
	before := refine.DihedralAt(coords, 1, 2, 3, second)
	top.Atom(first).Dihedral += 0.5
	T.Place(top, coords)
	assert.InDelta(Te, refine.ReduceAngle(before+0.5), refine.DihedralAt(coords, 1, 2, 3, second), 1e-9)
	assert.InDelta(Te, T.AbsDihedral(top, second), refine.DihedralAt(coords, 1, 2, 3, second), 1e-9)
}

// energy used to check the torsion gradient: |x5-x0|^2 + |x4-x1|^2
func testEnergy(c *v3.Matrix, grad *v3.Matrix) float64 {
	d1 := c.Vec(5).Sub(c.Vec(0))
	d2 := c.Vec(4).Sub(c.Vec(1))
	if grad != nil {
		grad.Zero()
		grad.SetVec(5, d1.Scale(2))
		grad.SetVec(0, d1.Scale(-2))
		grad.SetVec(4, d2.Scale(2))
		grad.SetVec(1, d2.Scale(-2))
	}
	return d1.Dot(d1) + d2.Dot(d2)
}

func TestTorsionGradient(Te *testing.T) {
	top, coords := branched(Te)
	T, err := Build(top, coords, -1, -1)
	require.NoError(Te, err)
	grad := v3.Zeros(top.Len())
	testEnergy(coords, grad)
	dphi := T.TorsionGradient(top, coords, grad, nil)
	const h = 1e-6
	for _, a := range []int{3, 4, 5} {
		at := top.Atom(a)
		orig := at.Dihedral
		at.Dihedral = orig + h
		T.Place(top, coords)
		plus := testEnergy(coords, nil)
		at.Dihedral = orig - h
		T.Place(top, coords)
		minus := testEnergy(coords, nil)
		at.Dihedral = orig
		T.Place(top, coords)
		assert.InDelta(Te, (plus-minus)/(2*h), dphi[a], 1e-5, "atom %d", a)
	}
	assert.Zero(Te, dphi[0])
	assert.Zero(Te, dphi[2])
}

func TestFixedPairs(Te *testing.T) {
	top, coords := chain(Te)
	T, err := Build(top, coords, -1, -1)
	require.NoError(Te, err)
	fixed := T.FixedPairs(top)
	assert.True(Te, fixed.Has(0, 1))
	assert.True(Te, fixed.Has(2, 0))
	assert.True(Te, fixed.Has(1, 4), "1-4 across a double bond")
	assert.False(Te, fixed.Has(0, 3), "1-4 across a free torsion")
	assert.False(Te, fixed.Has(0, 4))
}
