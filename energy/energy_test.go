/*
 * energy_test.go, part of gorefine.
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

package energy

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"

	v3 "github.com/rmera/gorefine/v3"
)

func pair(d float64) *v3.Matrix {
	c, _ := v3.NewMatrix([]float64{0, 0, 0, d, 0, 0})
	return c
}

func TestTableGrow(Te *testing.T) {
	T := NewTerm(Repulsion)
	for i := 0; i < 100; i++ {
		T.AddRepulsion(i, i+1, 3, 1)
	}
	assert.Equal(Te, 100, T.Len())
	c := cap(T.I)
	assert.GreaterOrEqual(Te, c, 100)
	assert.Equal(Te, c, cap(T.Deriv))
	assert.Equal(Te, c, cap(T.Lo))
	T.Reset()
	assert.Zero(Te, T.Len())
	assert.Equal(Te, c, cap(T.I))
	assert.Panics(Te, func() { T.AddStacking(0, 1, 1) })
}

func TestRepulsionShape(Te *testing.T) {
	T := NewTerm(Repulsion)
	T.AddRepulsion(0, 1, 3, 1)
	assert.Zero(Te, T.CalcEnergy(pair(3.0), true, 1))
	assert.Zero(Te, T.CalcEnergy(pair(4.5), true, 1))
	prev := 0.0
	for d := 2.9; d > 0.5; d -= 0.2 {
		e := T.CalcEnergy(pair(d), true, 1)
		assert.Greater(Te, e, prev, "d=%.2f", d)
		prev = e
	}
	//overlapping atoms still give a finite energy and gradient
	e := T.CalcEnergy(pair(0), true, 1)
	assert.False(Te, math.IsNaN(e) || math.IsInf(e, 0))
	grad := v3.Zeros(2)
	T.Forces(pair(0), grad)
	for k := 0; k < 3; k++ {
		assert.False(Te, math.IsNaN(grad.At(0, k)))
	}
}

func TestRestraintShape(Te *testing.T) {
	T := NewTerm(Restraint)
	_, err := T.AddRestraint(0, 1, 3, 2, 1, 2.5, -1)
	assert.ErrorIs(Te, err, ErrInvalidBounds)
	_, err = T.AddRestraint(0, 1, 2, 3, 1, 2.5, -1)
	require.NoError(Te, err)
	for _, d := range []float64{2, 2.5, 3} {
		assert.InDelta(Te, 0, T.CalcEnergy(pair(d), false, 1), 1e-7)
	}
	prev := 0.0
	for d := 3.1; d < 8; d += 0.3 {
		e := T.CalcEnergy(pair(d), false, 1)
		assert.Greater(Te, e, prev)
		prev = e
	}
	prev = 0
	for d := 1.9; d > 0.3; d -= 0.3 {
		e := T.CalcEnergy(pair(d), false, 1)
		assert.Greater(Te, e, prev)
		prev = e
	}
	assert.InDelta(Te, 2*4.0, T.CalcEnergy(pair(5), false, 2), 1e-6)
}

func TestStackingShape(Te *testing.T) {
	T := NewTerm(Stacking)
	T.AddStacking(0, 1, 2)
	assert.Zero(Te, T.CalcEnergy(pair(3.9), false, 1))
	assert.Zero(Te, T.CalcEnergy(pair(6.1), false, 1))
	assert.InDelta(Te, -2, T.CalcEnergy(pair(5), false, 1), 1e-6)
	assert.Less(Te, T.CalcEnergy(pair(5), false, 1), T.CalcEnergy(pair(4.5), false, 1))
}

func TestForceFieldSwitch(Te *testing.T) {
	T := NewTerm(ForceField)
	T.AddForceField(0, 1, 3.5, 0.2, 0.5, 1)
	raw := func(d float64) float64 {
		s6 := math.Pow(3.5/d, 6)
		return 0.2*(s6*s6-2*s6) + Coulomb*0.5/(DefaultDielectric*d)
	}
	assert.InDelta(Te, raw(3.5), T.CalcEnergy(pair(3.5), false, 1), 1e-6)
	assert.InDelta(Te, raw(7), T.CalcEnergy(pair(7), false, 1), 1e-6)
	assert.InDelta(Te, raw(DefaultSwitchOn), T.CalcEnergy(pair(DefaultSwitchOn), false, 1), 1e-6)
	assert.InDelta(Te, 0, T.CalcEnergy(pair(DefaultFFCutoff-1e-4), false, 1), 1e-6)
	assert.Zero(Te, T.CalcEnergy(pair(12), false, 1))
}

// a small system with every kind of term, used to check the analytic gradients.
var testCoords = []float64{
	0, 0, 0,
	1.2, 2.9, 0.3,
	3.1, 0.4, -1.0,
	4.4, 3.3, 1.7,
	-1.5, 2.2, 4.0,
}

func testTerms(Te *testing.T) []*Term {
	rep := NewTerm(Repulsion)
	rep.AddRepulsion(0, 1, 3.5, 1)
	rep.AddRepulsion(1, 2, 3.6, 2)
	res := NewTerm(Restraint)
	_, err := res.AddRestraint(0, 3, 2, 3, 1, 2.5, -1)
	require.NoError(Te, err)
	_, err = res.AddRestraint(2, 4, 6.5, 9, 1, 7, -1)
	require.NoError(Te, err)
	_, err = res.AddRestraint(0, 2, 1.8, 2.5, 3, 2, 7)
	require.NoError(Te, err)
	_, err = res.AddRestraint(1, 4, 1.8, 2.5, 3, 2, 7)
	require.NoError(Te, err)
	ff := NewTerm(ForceField)
	ff.AddForceField(0, 4, 3.8, 0.15, -0.3, 1)
	ff.AddForceField(3, 4, 3.8, 0.15, 0.2, 1)
	ff.FF.SwitchOn = 4
	ff.FF.Cutoff = 7
	st := NewTerm(Stacking)
	st.AddStacking(0, 3, 1)
	return []*Term{rep, res, ff, st}
}

func TestForcesFiniteDifference(Te *testing.T) {
	for _, T := range testTerms(Te) {
		x := append([]float64(nil), testCoords...)
		coords, err := v3.NewMatrix(x)
		require.NoError(Te, err)
		T.CalcEnergy(coords, true, 1.5)
		grad := v3.Zeros(coords.NVecs())
		T.Forces(coords, grad)
		f := func(y []float64) float64 {
			c, _ := v3.NewMatrix(append([]float64(nil), y...))
			return T.CalcEnergy(c, false, 1.5)
		}
		num := fd.Gradient(nil, f, testCoords, &fd.Settings{Formula: fd.Central, Step: 1e-6})
		for i, g := range num {
			assert.InDelta(Te, g, grad.At(i/3, i%3), 1e-4, "%s coordinate %d", T.Kind, i)
		}
	}
}

func TestGroupedRestraint(Te *testing.T) {
	T := NewTerm(Restraint)
	_, err := T.AddRestraint(0, 1, 2, 3, 1, 2.5, 1)
	require.NoError(Te, err)
	_, err = T.AddRestraint(0, 2, 2, 3, 1, 2.5, 1)
	require.NoError(Te, err)
	//one of the pairs satisfies the restraint, so the group is (almost) satisfied.
	c, _ := v3.NewMatrix([]float64{0, 0, 0, 2.5, 0, 0, 0, 8, 0})
	e := T.CalcEnergy(c, true, 1)
	assert.InDelta(Te, 0, e, 1e-9)
	c, _ = v3.NewMatrix([]float64{0, 0, 0, 5, 0, 0, 0, 5, 0})
	e = T.CalcEnergy(c, true, 1)
	r := 5 * math.Pow(2, -1.0/6.0)
	assert.InDelta(Te, (r-3)*(r-3), e, 1e-6)
	v := T.Violations(0.1, 1)
	require.Len(Te, v, 1, "one violation per group")
	assert.InDelta(Te, r, v[0].Dist, 1e-6)
}

func TestSwapPass(Te *testing.T) {
	T := NewTerm(Restraint)
	_, err := T.AddRestraint(0, 1, 2, 3, 1, 2.5, -1)
	require.NoError(Te, err)
	c, _ := v3.NewMatrix([]float64{0, 0, 0, 6, 0, 0, 0, 2.5, 0})
	before := T.CalcEnergy(c, false, 1)
	assert.Equal(Te, 1, T.SwapPass(c, [][2]int{{1, 2}}))
	assert.Equal(Te, 2, T.J[0])
	after := T.CalcEnergy(c, false, 1)
	assert.Less(Te, after, before)
	//swapping back would make it worse, so nothing happens.
	assert.Equal(Te, 0, T.SwapPass(c, [][2]int{{1, 2}}))
	assert.Equal(Te, 2, T.J[0])
	assert.Equal(Te, 0, T.SwapPass(c, [][2]int{{3, 4}}))
}

func TestReport(Te *testing.T) {
	terms := testTerms(Te)
	res := terms[1]
	coords, _ := v3.NewMatrix(append([]float64(nil), testCoords...))
	res.CalcEnergy(coords, false, 1)
	v := res.Violations(0, 1)
	require.NotEmpty(Te, v)
	s := Summarize(v)
	assert.Equal(Te, len(v), s.N)
	assert.GreaterOrEqual(Te, s.Max, s.Mean)
	assert.Zero(Te, Summarize(nil).N)
	_, ok := terms[3].Violation(0, 0, 1)
	assert.False(Te, ok)

	var buf bytes.Buffer
	require.NoError(Te, res.WriteReport(&buf, func(i int) string { return "A" + string(rune('0'+i)) }))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(Te, lines, res.Len()+1)
	assert.Contains(Te, lines[3], "A0")
	assert.Contains(Te, lines[3], "1.800")
}
