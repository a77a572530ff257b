/*
 * converge.go, part of gorefine.
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
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/optimize"
)

// converger wraps the gonum function convergence test and issues the periodic
// progress reports, which are due even when the run is not converging.
type converger struct {
	fc       optimize.FunctionConverge
	every    int
	iter     int
	progress func(Report)
	tracker  *Tracker
	start    time.Time
	log      *zap.Logger
}

func newConverger(s Settings, tr *Tracker, start time.Time) *converger {
	return &converger{
		fc:       optimize.FunctionConverge{Absolute: s.AbsTol, Relative: s.RelTol, Iterations: s.Patience},
		every:    s.ReportEvery,
		progress: s.Progress,
		tracker:  tr,
		start:    start,
		log:      s.logger(),
	}
}

func (C *converger) Init(dim int) {
	C.iter = 0
	C.fc.Init(dim)
}

func (C *converger) Converged(loc *optimize.Location) optimize.Status {
	C.iter++
	if C.every > 0 && C.iter%C.every == 0 {
		r := Report{Iteration: C.iter, Evals: C.tracker.Evals, F: loc.F, Best: C.tracker.F, Elapsed: time.Since(C.start)}
		C.log.Info("progress", zap.Int("iteration", r.Iteration), zap.Int("evaluations", r.Evals), zap.Float64("best", r.Best))
		if C.progress != nil {
			C.progress(r)
		}
	}
	return C.fc.Converged(loc)
}

// recorder hands the location of the method to the user every few major iterations.
type recorder struct {
	every   int
	iter    int
	fn      func(Report, []float64)
	tracker *Tracker
	start   time.Time
}

func (R *recorder) Init() error {
	R.iter = 0
	return nil
}

func (R *recorder) Record(loc *optimize.Location, op optimize.Operation, stats *optimize.Stats) error {
	if op != optimize.MajorIteration || R.fn == nil {
		return nil
	}
	R.iter++
	if R.every > 0 && R.iter%R.every == 0 {
		R.fn(Report{Iteration: R.iter, Evals: R.tracker.Evals, F: loc.F, Best: R.tracker.F, Elapsed: time.Since(R.start)}, loc.X)
	}
	return nil
}
