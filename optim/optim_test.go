/*
 * optim_test.go, part of gorefine.
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

package optim

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/optimize"
)

// an anisotropic quadratic bowl with its minimum at (1, 1, ...).
func bowl(x []float64) float64 {
	var f float64
	for i, v := range x {
		f += float64(i+1) * (v - 1) * (v - 1)
	}
	return f
}

func bowlGrad(grad, x []float64) {
	for i, v := range x {
		grad[i] = 2 * float64(i+1) * (v - 1)
	}
}

func TestTracker(Te *testing.T) {
	T := NewTracker(Problem{Func: bowl})
	T.Func([]float64{0, 0})
	T.Func([]float64{1, 1})
	T.Func([]float64{3, 3})
	assert.Equal(Te, 3, T.Evals)
	assert.Zero(Te, T.F)
	assert.Equal(Te, []float64{1, 1}, T.X)
	res := T.result()
	res.X[0] = 7
	assert.Equal(Te, 1.0, T.X[0], "results own their coordinates")

	calls := 0
	T = NewTracker(Problem{Func: func(x []float64) float64 {
		calls++
		if calls > 1 {
			panic("boom")
		}
		return 2
	}})
	assert.Equal(Te, 2.0, T.Func([]float64{0}))
	assert.Equal(Te, FailedValue, T.Func([]float64{1}))
	assert.Equal(Te, FailedValue, T.Func([]float64{2}))
	assert.Equal(Te, 2, calls, "no evaluations after a panic")
	assert.ErrorIs(Te, T.Err(), ErrPanic)
	assert.Equal(Te, 2.0, T.F)
}

func TestFiniteGradient(Te *testing.T) {
	x := []float64{0.3, -1.2, 2.5}
	num := make([]float64, 3)
	ana := make([]float64, 3)
	FiniteGradient(bowl)(num, x)
	bowlGrad(ana, x)
	assert.InDeltaSlice(Te, ana, num, 1e-6)
}

func TestGradient(Te *testing.T) {
	var trace []float64
	progress := 0
	s := DefaultSettings()
	s.ReportEvery = 1
	s.Progress = func(r Report) {
		progress++
		assert.LessOrEqual(Te, r.Best, r.F)
	}
	s.SnapshotEvery = 1
	s.Recorder = func(r Report, x []float64) {
		assert.Len(Te, x, 4)
		trace = append(trace, r.F)
	}
	x0 := []float64{4, -3, 0, 2}
	res := Gradient(context.Background(), Problem{Func: bowl, Grad: bowlGrad}, x0, s)
	require.NoError(Te, res.Err)
	assert.InDelta(Te, 0, res.F, 1e-8)
	assert.InDeltaSlice(Te, []float64{1, 1, 1, 1}, res.X, 1e-4)
	assert.Equal(Te, []float64{4, -3, 0, 2}, x0, "x0 is not modified")
	require.NotEmpty(Te, trace)
	assert.Positive(Te, progress)
	for i := 1; i < len(trace); i++ {
		assert.LessOrEqual(Te, trace[i], trace[i-1])
	}
	assert.Greater(Te, res.Evals, 1)
	assert.Equal(Te, bowl(res.X), res.F)
}

func TestGradientFiniteDifferences(Te *testing.T) {
	res := Gradient(context.Background(), Problem{Func: bowl}, []float64{-2, 5}, DefaultSettings())
	require.NoError(Te, res.Err)
	assert.InDelta(Te, 0, res.F, 1e-6)
}

func TestGradientAtMinimum(Te *testing.T) {
	flat := func(x []float64) float64 { return 0 }
	res := Gradient(context.Background(), Problem{Func: flat, Grad: func(g, x []float64) {
		for i := range g {
			g[i] = 0
		}
	}}, []float64{1, 2, 3}, DefaultSettings())
	require.NoError(Te, res.Err)
	assert.Zero(Te, res.F)
	assert.Equal(Te, []float64{1, 2, 3}, res.X)
}

func TestEvolutionary(Te *testing.T) {
	s := DefaultSettings()
	s.MaxEvals = 5000
	s.InitStep = 1
	res := Evolutionary(context.Background(), Problem{Func: bowl}, []float64{0, 0, 0}, s)
	require.NoError(Te, res.Err)
	assert.Less(Te, res.F, 1e-6)
	assert.Equal(Te, bowl(res.X), res.F, "the result is an evaluated point")
	assert.LessOrEqual(Te, res.Evals, s.MaxEvals+50)
	assert.Contains(Te, []optimize.Status{optimize.MethodConverge, optimize.FunctionEvaluationLimit}, res.Status)
}

func TestEvolutionaryStall(Te *testing.T) {
	//a staircase: the best value stays put for many generations before each step down.
	stairs := func(x []float64) float64 {
		return math.Floor(4*bowl(x)) / 4
	}
	s := DefaultSettings()
	s.MaxEvals = 3000
	s.Patience = 2
	s.InitStep = 1
	res := Evolutionary(context.Background(), Problem{Func: stairs}, []float64{0, 0, 0}, s)
	require.NoError(Te, res.Err)
	assert.NotEqual(Te, optimize.FunctionConvergence, res.Status)
	assert.LessOrEqual(Te, res.F, 0.25)
}

func TestPanicRecovered(Te *testing.T) {
	calls := 0
	f := func(x []float64) float64 {
		calls++
		if calls > 40 {
			panic("singular geometry")
		}
		return bowl(x)
	}
	s := DefaultSettings()
	s.MaxEvals = 500
	x0 := []float64{3, 3}
	res := Evolutionary(context.Background(), Problem{Func: f}, x0, s)
	require.Error(Te, res.Err)
	assert.ErrorIs(Te, res.Err, ErrPanic)
	assert.Equal(Te, optimize.Failure, res.Status)
	assert.LessOrEqual(Te, res.F, bowl(x0))
	assert.False(Te, math.IsInf(res.F, 0))
	assert.Equal(Te, bowl(res.X), res.F)
}

func TestCanceled(Te *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := DefaultSettings()
	s.MaxEvals = 1000
	res := Evolutionary(ctx, Problem{Func: bowl}, []float64{3, 3}, s)
	assert.ErrorIs(Te, res.Err, ErrCanceled)
	assert.LessOrEqual(Te, res.F, bowl([]float64{3, 3}))
}

func TestTuneStep(Te *testing.T) {
	sq := func(x []float64) float64 {
		var f float64
		for _, v := range x {
			f += v * v
		}
		return f
	}
	sigma := TuneStep(Problem{Func: sq}, []float64{0, 0}, 0, 1)
	//half of the samples have |x|^2 > 1 at sigma ~ 0.85
	assert.Greater(Te, sigma, 0.2)
	assert.Less(Te, sigma, 3.5)
}
