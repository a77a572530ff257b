/*
 * minimize.go, part of gorefine.
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
	"fmt"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/optimize"
)

// Result is the outcome of a run. X and F are always the best point evaluated,
// even when Err is not nil.
type Result struct {
	X          []float64
	F          float64
	Evals      int
	Iterations int
	Status     optimize.Status
	Err        error
}

// Evolutionary minimizes p starting from x0 with the CMA-ES method. Only p.Func is used.
// The run ends when the covariance of the search distribution collapses, or when the
// evaluation or iteration budget is spent. Patience is ignored.
func Evolutionary(ctx context.Context, p Problem, x0 []float64, s Settings) Result {
	s.Patience = 0
	method := &optimize.CmaEsChol{InitStepSize: s.InitStep, Population: s.Population}
	return run(ctx, p, x0, s, method, "Evolutionary")
}

// Gradient minimizes p starting from x0 with nonlinear conjugate gradients. If p.Grad
// is nil, the gradient is obtained by finite differences.
func Gradient(ctx context.Context, p Problem, x0 []float64, s Settings) Result {
	if p.Grad == nil {
		p.Grad = FiniteGradient(p.Func)
	}
	//a zero gradient must stop the run before the line search sees it.
	if s.GradTol <= 0 {
		s.GradTol = 1e-12
	}
	method := &optimize.CG{Linesearcher: &optimize.MoreThuente{CurvatureFactor: 0.1}}
	return run(ctx, p, x0, s, method, "Gradient")
}

func run(ctx context.Context, p Problem, x0 []float64, s Settings, method optimize.Method, name string) (res Result) {
	log := s.logger().With(zap.String("method", name))
	start := time.Now()
	tr := NewTracker(p)
	problem := optimize.Problem{
		Func: tr.Func,
		Status: func() (optimize.Status, error) {
			if err := tr.Err(); err != nil {
				return optimize.Failure, err
			}
			if err := ctx.Err(); err != nil {
				return optimize.Failure, newError(err.Error(), ErrCanceled, name)
			}
			return optimize.NotTerminated, nil
		},
	}
	if p.Grad != nil {
		problem.Grad = tr.Grad
	}
	settings := &optimize.Settings{
		Converger:         newConverger(s, tr, start),
		MajorIterations:   s.MaxIter,
		FuncEvaluations:   s.MaxEvals,
		GradientThreshold: s.GradTol,
		Recorder:          &recorder{every: s.SnapshotEvery, fn: s.Recorder, tracker: tr, start: start},
	}
	//the starting point is always a candidate.
	f0 := tr.Func(x0)
	log.Info("starting", zap.Int("dimension", len(x0)), zap.Float64("energy", f0))
	defer func() {
		if r := recover(); r != nil {
			log.Warn("optimizer panicked", zap.Any("panic", r), zap.Float64("best", tr.F))
			res = tr.result()
			res.Status = optimize.Failure
			res.Err = newError(fmt.Sprintf("%v", r), ErrPanic, name)
		}
	}()
	var r *optimize.Result
	var err error
	if ctx.Err() == nil {
		r, err = optimize.Minimize(problem, x0, settings, method)
	}
	res = tr.result()
	if r != nil {
		res.Iterations = r.MajorIterations
		res.Status = r.Status
	}
	if err == nil {
		err = tr.Err()
	}
	if err == nil && ctx.Err() != nil {
		err = newError(ctx.Err().Error(), ErrCanceled, name)
	}
	if err != nil {
		res.Status = optimize.Failure
		if e, ok := err.(*Error); ok {
			e.Decorate(name)
			res.Err = e
		} else {
			res.Err = newError("optimizer failed", err, name)
		}
		log.Warn("run failed", zap.Error(res.Err), zap.Float64("best", res.F))
		return res
	}
	log.Info("finished", zap.Stringer("status", res.Status), zap.Int("evaluations", res.Evals),
		zap.Int("iterations", res.Iterations), zap.Float64("best", res.F), zap.Duration("elapsed", time.Since(start)))
	return res
}
