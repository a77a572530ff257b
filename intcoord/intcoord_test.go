/*
 * intcoord_test.go, part of gorefine.
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

package intcoord

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	refine "github.com/rmera/gorefine"
)

// model returns a model over 9 atoms: atoms 1,2,3 own free torsions (2 is backbone), atoms 4-8
// form a pseudorotation site.
func model(Te *testing.T) (*refine.Topology, *Model) {
	top := refine.NewTopology(9)
	for i := 0; i < 9; i++ {
		at := refine.NewAtom("C"+string(rune('1'+i)), "C")
		at.MolID = 1
		at.Dihedral = refine.Deg2Rad(float64(40*i - 170))
		top.AddAtom(at)
	}
	top.Atom(2).Flags |= refine.Backbone
	site := PseudoSite{Name: "sugar1", Atoms: [5]int{4, 5, 6, 7, 8}}
	nu := Pseudo2Torsions(refine.Deg2Rad(18), refine.Deg2Rad(38))
	for k, a := range site.Atoms {
		top.Atom(a).Dihedral = nu[k]
	}
	M, err := New(top, []int{1, 2, 3, 5}, []PseudoSite{site})
	require.NoError(Te, err)
	return top, M
}

func TestPseudorotationRoundTrip(Te *testing.T) {
	for _, P := range []float64{-170, -90, -10, 0, 18, 90, 162, 180} {
		for _, A := range []float64{5, 38, 55} {
			nu := Pseudo2Torsions(refine.Deg2Rad(P), refine.Deg2Rad(A))
			p2, a2 := Torsions2Pseudo(nu[2], nu[3])
			assert.InDelta(Te, refine.Deg2Rad(A), a2, 1e-9)
			assert.InDelta(Te, 0, refine.ReduceAngle(p2-refine.Deg2Rad(P)), 1e-9, "phase %f", P)
		}
	}
	p, a := Torsions2Pseudo(0, 0)
	assert.Zero(Te, p)
	assert.Zero(Te, a)
}

func TestModelLayout(Te *testing.T) {
	top, M := model(Te)
	//atom 5 is part of the site, so it is not a torsion of its own.
	assert.Equal(Te, 5, M.Len())
	assert.Equal(Te, -1, M.AtomIndex(5))
	assert.Equal(Te, 0, M.AtomIndex(1))
	assert.Equal(Te, 3, M.Index("sugar1:phase"))
	assert.Equal(Te, 4, M.Index("sugar1:amplitude"))
	assert.Equal(Te, 0, M.Index(top.FullName(1)))
	v := M.Values()
	assert.InDelta(Te, refine.Deg2Rad(18), v[3], 1e-9)
	assert.InDelta(Te, refine.Deg2Rad(38), v[4], 1e-9)

	_, err := New(top, nil, []PseudoSite{{Name: "bad", Atoms: [5]int{1, 1, 2, 3, 4}}})
	assert.Error(Te, err)
}

func TestReadWrite(Te *testing.T) {
	top, M := model(Te)
	v := M.Values()
	v[0] = 2.5
	v[3] = -1.0
	v[4] = 0.5
	M.SetValues(v)
	M.Write()
	assert.InDelta(Te, 2.5, top.Atom(1).Dihedral, 1e-12)
	nu := Pseudo2Torsions(-1.0, 0.5)
	for k, a := range []int{4, 5, 6, 7, 8} {
		assert.InDelta(Te, nu[k], top.Atom(a).Dihedral, 1e-12)
	}
	M.SetValues(make([]float64, M.Len()))
	M.Read()
	got := M.Values()
	for i := range v {
		assert.InDelta(Te, 0, refine.ReduceAngle(got[i]-v[i]), 1e-9, "dof %d", i)
	}
}

func TestTorsionGradient(Te *testing.T) {
	top, M := model(Te)
	//a periodic function of every dihedral field, so wrapped ring torsions don't matter.
	torsionEnergy := func() float64 {
		var e float64
		for a := 0; a < top.Len(); a++ {
			e += 0.3 * float64(a+1) * math.Cos(top.Atom(a).Dihedral+0.2*float64(a))
		}
		return e
	}
	atomGrad := func() []float64 {
		g := make([]float64, top.Len())
		for a := range g {
			g[a] = -0.3 * float64(a+1) * math.Sin(top.Atom(a).Dihedral+0.2*float64(a))
		}
		return g
	}
	for _, v := range [][]float64{
		M.Values(),
		{0.4, -2.9, 1.1, refine.Deg2Rad(-150), refine.Deg2Rad(52)},
		{-1, 0.2, 3, refine.Deg2Rad(95), refine.Deg2Rad(7)},
	} {
		M.SetValues(v)
		M.Write()
		ana := make([]float64, M.Len())
		M.TorsionGradient(ana, atomGrad())
		num := fd.Gradient(nil, func(x []float64) float64 {
			M.SetValues(x)
			M.Write()
			return torsionEnergy()
		}, v, &fd.Settings{Formula: fd.Central, Step: 1e-6})
		assert.InDeltaSlice(Te, num, ana, 1e-6)
		assert.NotZero(Te, ana[3], "phase")
		assert.NotZero(Te, ana[4], "amplitude")
	}
	assert.Panics(Te, func() { M.TorsionGradient(make([]float64, 2), make([]float64, top.Len())) })
}

func TestNormalizeRoundTrip(Te *testing.T) {
	for _, mode := range []Mode{SinCos, Boundary} {
		_, M := model(Te)
		M.SetMode(mode)
		if mode == Boundary {
			M.Center(math.Pi / 2)
		}
		orig := M.Values()
		x := M.Normalize(nil)
		require.Len(Te, x, M.NormLen())
		M.SetValues(make([]float64, M.Len()))
		M.Denormalize(x)
		got := M.Values()
		for i := range orig {
			assert.InDelta(Te, 0, refine.ReduceAngle(got[i]-orig[i]), 1e-9, "%s dof %d", mode, i)
		}
	}
	_, M := model(Te)
	M.SetMode(Boundary)
	x := M.Normalize(nil)
	for _, v := range x {
		assert.GreaterOrEqual(Te, v, 0.0)
		assert.Less(Te, v, 100.0)
	}
}

func TestNormGradient(Te *testing.T) {
	coef := []float64{1, -2, 0.5, 3, 1.5}
	f := func(theta []float64) (float64, []float64) {
		var e float64
		d := make([]float64, len(theta))
		for i, t := range theta {
			e += coef[i] * math.Sin(t)
			d[i] = coef[i] * math.Cos(t)
		}
		return e, d
	}
	for _, mode := range []Mode{SinCos, Boundary} {
		_, M := model(Te)
		M.SetMode(mode)
		x := M.Normalize(nil)
		M.Denormalize(x)
		_, dtheta := f(M.Values())
		grad := make([]float64, M.NormLen())
		M.NormGradient(grad, x, dtheta)
		const h = 1e-5
		for i := range x {
			orig := x[i]
			x[i] = orig + h
			M.Denormalize(x)
			plus, _ := f(M.Values())
			x[i] = orig - h
			M.Denormalize(x)
			minus, _ := f(M.Values())
			x[i] = orig
			assert.InDelta(Te, (plus-minus)/(2*h), grad[i], 1e-6, "%s coordinate %d", mode, i)
		}
	}
}

func TestBoundaries(Te *testing.T) {
	_, M := model(Te)
	err := M.SetBoundary(0, 1, -1)
	assert.ErrorIs(Te, err, ErrInvalidBounds)
	err = M.SetBoundary(12, -1, 1)
	assert.ErrorIs(Te, err, ErrUnknownAngle)
	require.NoError(Te, M.SetBoundary(0, -1, 1))
	assert.Equal(Te, -1.0, M.DOF(0).Lower)
	M.Center(math.Pi / 2)
	v := M.Values()
	assert.InDelta(Te, v[1]-math.Pi/2, M.DOF(1).Lower, 1e-12)
	assert.InDelta(Te, 0.0, M.DOF(4).Lower, 1e-12, "amplitudes are not centered")
	M.SetFullCircle()
	assert.InDelta(Te, math.Pi, M.DOF(0).Upper, 1e-12)
}

func TestSigma(Te *testing.T) {
	_, M := model(Te)
	M.SetSigma(0.4, DefaultBackboneFactor)
	assert.InDelta(Te, 0.4, M.DOF(0).Sigma, 1e-12)
	assert.InDelta(Te, 0.1, M.DOF(1).Sigma, 1e-12)
	M.SetMode(Boundary)
	s := M.NormSigma()
	assert.Len(Te, s, M.NormLen())
	assert.InDelta(Te, 100*0.4/(2*math.Pi), s[0], 1e-9)
}

func TestAngleRestraint(Te *testing.T) {
	top, M := model(Te)
	name := top.FullName(1)
	assert.ErrorIs(Te, M.AddAngleRestraint("nope", 0, 1, 1), ErrUnknownAngle)
	assert.ErrorIs(Te, M.AddAngleRestraint(name, 1, 0, 1), ErrInvalidBounds)
	require.NoError(Te, M.AddAngleRestraint(name, -0.5, 0.5, 2))
	v := M.Values()
	v[0] = 0.2
	M.SetValues(v)
	grad := make([]float64, M.Len())
	assert.Zero(Te, M.RestraintEnergy(grad))
	assert.Zero(Te, grad[0])
	v[0] = 0.7
	M.SetValues(v)
	e := M.RestraintEnergy(grad)
	assert.InDelta(Te, 2*0.2*0.2, e, 1e-12)
	assert.InDelta(Te, 2*2*0.2, grad[0], 1e-12)
	//close to the lower bound from across the -pi/pi seam
	v[0] = -0.9
	M.SetValues(v)
	grad[0] = 0
	e = M.RestraintEnergy(grad)
	assert.InDelta(Te, 2*0.4*0.4, e, 1e-12)
	assert.Less(Te, grad[0], 0.0)
}

func TestDump(Te *testing.T) {
	top, M := model(Te)
	var buf bytes.Buffer
	require.NoError(Te, M.Dump(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(Te, lines, M.Len())
	assert.True(Te, strings.HasPrefix(lines[0], top.FullName(1)+" "))
	orig := M.Values()
	M.SetValues(make([]float64, M.Len()))
	require.NoError(Te, M.ReadDump(&buf))
	got := M.Values()
	for i := range orig {
		assert.InDelta(Te, orig[i], got[i], 1e-12)
	}
	err := M.ReadDump(strings.NewReader("1.CX 10\n"))
	assert.ErrorIs(Te, err, ErrUnknownAngle)

	//a bad line leaves every angle untouched, including those read before it.
	in := M.DOF(0).Name + " 10\n1.CX 20\n"
	assert.ErrorIs(Te, M.ReadDump(strings.NewReader(in)), ErrUnknownAngle)
	assert.Equal(Te, got, M.Values())
	assert.Error(Te, M.ReadDump(strings.NewReader(M.DOF(0).Name+" 10\n"+M.DOF(1).Name+" ten\n")))
	assert.Equal(Te, got, M.Values())
}
