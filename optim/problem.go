/*
 * problem.go, part of gorefine.
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
	"fmt"
	"math"

	"gonum.org/v1/gonum/diff/fd"
)

// FailedValue is returned to the optimizer for evaluations attempted after the objective
// panicked. It is finite, so line searches back off instead of producing NaNs.
const FailedValue = math.MaxFloat32

// Problem is a function to be minimized. Grad may be nil, in which case the gradient
// driver uses central finite differences.
type Problem struct {
	Func func(x []float64) float64
	Grad func(grad, x []float64)
}

// FiniteGradient returns a gradient function for f, obtained by central finite differences.
// It is slow, and meant to check analytic gradients or to use when there are none.
func FiniteGradient(f func([]float64) float64) func(grad, x []float64) {
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}
	return func(grad, x []float64) {
		fd.Gradient(grad, f, x, settings)
	}
}

// Tracker remembers the lowest value of a function over all the evaluations it sees.
type Tracker struct {
	F     float64
	X     []float64
	Evals int
	f     func([]float64) float64
	grad  func(grad, x []float64)
	err   error
}

// NewTracker returns a tracker wrapping the given problem.
func NewTracker(p Problem) *Tracker {
	return &Tracker{F: math.Inf(1), f: p.Func, grad: p.Grad}
}

// Func evaluates the wrapped function at x, updating the best point if needed.
// A panic in the function is recovered. The tracker then stops evaluating and
// returns FailedValue from there on. Err reports the panic.
func (T *Tracker) Func(x []float64) (f float64) {
	if T.err != nil {
		return FailedValue
	}
	defer func() {
		if r := recover(); r != nil {
			T.err = newError(fmt.Sprintf("objective: %v", r), ErrPanic, "Tracker.Func")
			f = FailedValue
		}
	}()
	f = T.f(x)
	T.Evals++
	if f < T.F || T.X == nil {
		T.F = f
		T.X = append(T.X[:0], x...)
	}
	return f
}

// Grad evaluates the wrapped gradient, recovering panics like Func does.
func (T *Tracker) Grad(grad, x []float64) {
	if T.err != nil {
		for i := range grad {
			grad[i] = 0
		}
		return
	}
	defer func() {
		if r := recover(); r != nil {
			T.err = newError(fmt.Sprintf("gradient: %v", r), ErrPanic, "Tracker.Grad")
			for i := range grad {
				grad[i] = 0
			}
		}
	}()
	T.grad(grad, x)
}

// Err returns the error that stopped the tracker, if any.
func (T *Tracker) Err() error { return T.err }

func (T *Tracker) result() Result {
	return Result{X: append([]float64(nil), T.X...), F: T.F, Evals: T.Evals}
}
