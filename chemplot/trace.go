/*
 * trace.go, part of gorefine.
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

package chemplot

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/rmera/gorefine/optim"
)

// EnergyTrace returns a plot of the energy reported during a refinement against the
// number of evaluations, with one line for the energy at the current point of the
// optimizer and one for the best energy so far. Reports from consecutive optimizer
// runs, each counting evaluations from zero, are placed one after the other.
func EnergyTrace(reports []optim.Report, title string) (*plot.Plot, error) {
	if len(reports) == 0 {
		return nil, &Error{"empty trace", []string{"EnergyTrace"}, true, ErrNoData}
	}
	cur := make(plotter.XYs, len(reports))
	best := make(plotter.XYs, len(reports))
	var offset, prev int
	for i, r := range reports {
		if r.Evals < prev {
			offset += prev
		}
		prev = r.Evals
		x := float64(offset + r.Evals)
		cur[i].X, cur[i].Y = x, r.F
		best[i].X, best[i].Y = x, r.Best
	}
	p := plot.New()
	p.Title.Text = title
	p.Title.Padding = 3 * vg.Millimeter
	p.X.Label.Text = "Evaluations"
	p.Y.Label.Text = "Energy"
	p.Add(plotter.NewGrid())
	if err := plotutil.AddLines(p, "current", cur, "best", best); err != nil {
		return nil, &Error{"adding lines", []string{"EnergyTrace"}, true, err}
	}
	return p, nil
}
