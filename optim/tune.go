/*
 * tune.go, part of gorefine.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// MaxStep is the largest step size TuneStep considers. It is the width of the
	// normalized coordinate range.
	MaxStep        = 100.0
	TuneSamples    = 20
	TuneIterations = 12
	tuneTolerance  = 0.1
)

// TuneStep looks for a step size such that roughly half of the Gaussian perturbations
// of x0 with that standard deviation give a value above target+band. It bisects on the
// step size between 0 and MaxStep.
func TuneStep(p Problem, x0 []float64, target, band float64) float64 {
	lo, hi := 0.0, MaxStep
	x := make([]float64, len(x0))
	noise := make([]float64, len(x0))
	var sigma float64
	for it := 0; it < TuneIterations; it++ {
		sigma = (lo + hi) / 2
		n := distuv.Normal{Mu: 0, Sigma: sigma}
		above := 0
		for s := 0; s < TuneSamples; s++ {
			for i := range noise {
				noise[i] = n.Rand()
			}
			floats.AddTo(x, x0, noise)
			if p.Func(x) > target+band {
				above++
			}
		}
		frac := float64(above) / TuneSamples
		switch {
		case frac > 0.5+tuneTolerance:
			hi = sigma
		case frac < 0.5-tuneTolerance:
			lo = sigma
		default:
			return sigma
		}
	}
	return sigma
}
