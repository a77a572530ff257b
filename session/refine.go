/*
 * refine.go, part of gorefine.
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

package session

import (
	"context"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/rmera/gorefine/energy"
	"github.com/rmera/gorefine/intcoord"
	"github.com/rmera/gorefine/optim"
	"github.com/rmera/gorefine/stf"
)

// improvement is the smallest energy decrease that counts as progress for a pass.
const improvement = 1e-9

// Result summarizes a refinement.
type Result struct {
	Start    float64 //energy before the refinement
	Energy   float64 //energy of the best point, which the session is left at
	Passes   int
	Runs     int //optimizer runs, including retries
	Failures int //optimizer runs that ended with an error
	Evals    int
	Swapped  int //label swaps kept by the swap passes
	Angles   []float64
}

// Refine minimizes the energy with the given method, starting from the current angles.
// Each pass runs the swap pass over the interchangeable atoms, and then the optimizer.
// When a run does not improve the energy, up to Retries runs are started from perturbed
// angles. The session is left at the best point found, which is returned even when
// the returned error is not nil (it is only non-nil if ctx is done).
func (S *Session) Refine(ctx context.Context, m Method) (Result, error) {
	S.trace = S.trace[:0]
	evals0 := S.evals
	var snap *stf.Writer
	if S.opts.SnapshotFile != "" {
		var err error
		snap, err = stf.Create(S.opts.SnapshotFile, S.Top.Len(), map[string]string{"session": S.ID, "method": m.String()})
		if err != nil {
			S.log.Warn("can't write snapshots", zap.Error(err))
			snap = nil
		} else {
			defer snap.Close()
		}
	}
	bestX := S.Model.Normalize(nil)
	best := S.Evaluate(bestX)
	res := Result{Start: best}
	S.log.Info("refinement started", zap.Stringer("method", m), zap.Float64("energy", best))
	var err error
	//with no degrees of freedom there is nothing to move.
	for pass := 0; pass < S.opts.Passes && len(bestX) > 0; pass++ {
		if err = ctx.Err(); err != nil {
			break
		}
		if best <= S.opts.Target {
			break
		}
		res.Passes++
		S.Model.Denormalize(bestX)
		S.place()
		if len(S.swaps) > 0 {
			swapped := S.terms[energy.Restraint].SwapPass(S.Coords, S.swaps)
			res.Swapped += swapped
			if swapped > 0 {
				best = S.Evaluate(bestX)
			}
		}
		for trial := 0; trial <= S.opts.Retries; trial++ {
			x0 := append([]float64(nil), bestX...)
			if trial > 0 {
				x0 = S.perturb(bestX)
			}
			r := S.run(ctx, m, x0, snap)
			res.Runs++
			if r.Err != nil {
				res.Failures++
				S.metrics.Failures.Inc()
				S.log.Warn("optimizer run failed", zap.Int("pass", pass), zap.Int("trial", trial), zap.Error(r.Err))
			}
			if len(r.X) == len(bestX) && r.F < best-improvement {
				best = r.F
				bestX = r.X
				break
			}
			if ctx.Err() != nil || best <= S.opts.Target {
				break
			}
			S.log.Debug("no improvement", zap.Int("pass", pass), zap.Int("trial", trial), zap.Float64("energy", r.F))
		}
		S.metrics.BestEnergy.Set(best)
		S.log.Info("pass finished", zap.Int("pass", pass), zap.Float64("best", best))
	}
	//the pairs may have changed since the best point was evaluated.
	res.Energy = S.Evaluate(bestX)
	S.metrics.BestEnergy.Set(res.Energy)
	res.Evals = S.evals - evals0
	res.Angles = S.Model.Values()
	S.log.Info("refinement finished", zap.Float64("energy", res.Energy), zap.Int("evaluations", res.Evals),
		zap.Int("runs", res.Runs), zap.Int("failures", res.Failures))
	if err != nil {
		return res, newError("refinement interrupted", err, "Refine")
	}
	return res, nil
}

func (S *Session) run(ctx context.Context, m Method, x0 []float64, snap *stf.Writer) optim.Result {
	s := S.opts.settings()
	s.Logger = S.log
	s.Progress = func(r optim.Report) {
		S.trace = append(S.trace, r)
		S.metrics.BestEnergy.Set(r.Best)
		if S.opts.Progress != nil {
			S.opts.Progress(r)
		}
	}
	if snap != nil && s.SnapshotEvery > 0 {
		s.Recorder = func(r optim.Report, x []float64) {
			S.Model.Denormalize(x)
			S.place()
			if err := snap.WNext(S.Coords, stf.Frame{Energy: r.F, Iteration: r.Iteration}); err != nil {
				S.log.Warn("can't write snapshot", zap.Error(err))
			}
		}
	}
	p := S.Problem()
	if m == Evolutionary {
		sigma := S.Model.NormSigma()
		if len(sigma) > 0 {
			s.InitStep = floats.Sum(sigma) / float64(len(sigma))
		}
		if S.opts.TuneStep {
			f0 := S.Evaluate(x0)
			s.InitStep = optim.TuneStep(p, x0, f0, S.opts.TuneBand)
			S.log.Debug("tuned step", zap.Float64("step", s.InitStep))
		}
		return optim.Evolutionary(ctx, p, x0, s)
	}
	return optim.Gradient(ctx, p, x0, s)
}

// perturb returns a copy of x with Gaussian noise added to each angle, with a standard
// deviation of Perturb times the step size of the angle.
func (S *Session) perturb(x []float64) []float64 {
	S.Model.Denormalize(x)
	v := S.Model.Values()
	for i := range v {
		sigma := S.opts.Perturb * S.Model.DOF(i).Sigma
		if sigma <= 0 {
			continue
		}
		v[i] += distuv.Normal{Mu: 0, Sigma: sigma}.Rand()
		if d := S.Model.DOF(i); d.Kind == intcoord.Amplitude {
			v[i] = math.Min(math.Max(v[i], d.Lower), d.Upper)
		}
	}
	S.Model.SetValues(v)
	return S.Model.Normalize(nil)
}
