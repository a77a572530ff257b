/*
 * options.go, part of gorefine.
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
	"fmt"
	"math"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/rmera/gorefine/energy"
	"github.com/rmera/gorefine/intcoord"
	"github.com/rmera/gorefine/optim"
	"github.com/rmera/gorefine/spatial"
)

// Method selects the optimizer used in a refinement.
type Method int

const (
	Evolutionary Method = iota
	Gradient
)

func (m Method) String() string {
	if m == Gradient {
		return "gradient"
	}
	return "evolutionary"
}

// ParseMethod returns the method with the given name: "evolutionary" (or "cmaes"),
// or "gradient" (or "cg").
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(s) {
	case "evolutionary", "cmaes":
		return Evolutionary, nil
	case "gradient", "cg":
		return Gradient, nil
	}
	return 0, newError(fmt.Sprintf("unknown method %q", s), ErrInvalidOptions, "ParseMethod")
}

func parseMode(s string) (intcoord.Mode, error) {
	switch strings.ToLower(s) {
	case "sincos", "":
		return intcoord.SinCos, nil
	case "boundary":
		return intcoord.Boundary, nil
	}
	return 0, newError(fmt.Sprintf("unknown normalization mode %q", s), ErrInvalidOptions, "parseMode")
}

// Weights scale the contribution of each energy term.
type Weights struct {
	Repulsion  float64 `mapstructure:"repulsion"`
	Restraint  float64 `mapstructure:"restraint"`
	ForceField float64 `mapstructure:"force_field"`
	Stacking   float64 `mapstructure:"stacking"`
}

func (W Weights) of(k energy.Kind) float64 {
	switch k {
	case energy.Repulsion:
		return W.Repulsion
	case energy.Restraint:
		return W.Restraint
	case energy.ForceField:
		return W.ForceField
	}
	return W.Stacking
}

// OptimOptions are the limits and cadences of each optimizer run.
type OptimOptions struct {
	MaxEvals      int     `mapstructure:"max_evals"`
	MaxIter       int     `mapstructure:"max_iter"`
	RelTol        float64 `mapstructure:"rel_tol"`
	AbsTol        float64 `mapstructure:"abs_tol"`
	Patience      int     `mapstructure:"patience"`
	ReportEvery   int     `mapstructure:"report_every"`
	SnapshotEvery int     `mapstructure:"snapshot_every"`
	Population    int     `mapstructure:"population"`
}

// Options contains the configuration of a session.
type Options struct {
	Start int `mapstructure:"start"` //root of the kinematic tree, -1 for automatic
	End   int `mapstructure:"end"`   //end of the main chain, -1 for none
	//Normalization of the angles: "sincos" or "boundary"
	Mode   string `mapstructure:"mode"`
	Method string `mapstructure:"method"`
	Passes int    `mapstructure:"passes"`
	//Number of restarts from perturbed angles when a pass does not improve the energy.
	Retries int `mapstructure:"retries"`
	//Standard deviation of the perturbation for the restarts, in units of the step size of each angle.
	Perturb float64 `mapstructure:"perturb"`
	//A refinement stops as soon as the energy is at or below Target. The default, -Inf,
	//disables it, since the force field and stacking terms can be negative.
	Target           float64 `mapstructure:"target"`
	RebuildEvery     int     `mapstructure:"rebuild_every"`
	ClosureTolerance float64 `mapstructure:"closure_tolerance"`
	ClosureWeight    float64 `mapstructure:"closure_weight"`
	Sigma            float64 `mapstructure:"sigma"` //base step size, in radians
	BackboneFactor   float64 `mapstructure:"backbone_factor"`
	//If positive, the angle boundaries are centered on the starting values, with this half width, in radians.
	CenterWidth    float64 `mapstructure:"center_width"`
	ViolationLimit float64 `mapstructure:"violation_limit"`
	//Tune the initial step of the evolutionary optimizer so half of the trial points
	//are TuneBand above the starting energy.
	TuneStep     bool                  `mapstructure:"tune_step"`
	TuneBand     float64               `mapstructure:"tune_band"`
	SnapshotFile string                `mapstructure:"snapshot_file"`
	Weights      Weights               `mapstructure:"weights"`
	Spatial      spatial.Options       `mapstructure:"spatial"`
	ForceField   energy.FFParams       `mapstructure:"force_field"`
	Optim        OptimOptions          `mapstructure:"optim"`
	Sites        []intcoord.PseudoSite `mapstructure:"sites"`

	Logger     *zap.Logger           `mapstructure:"-"`
	Registerer prometheus.Registerer `mapstructure:"-"`
	Progress   func(optim.Report)    `mapstructure:"-"`
}

// DefaultOptions returns reasonable options for most molecules.
func DefaultOptions() Options {
	o := optim.DefaultSettings()
	return Options{
		Start:            -1,
		End:              -1,
		Mode:             "sincos",
		Method:           "gradient",
		Passes:           3,
		Retries:          2,
		Perturb:          1,
		Target:           math.Inf(-1),
		RebuildEvery:     20,
		ClosureTolerance: 0.1,
		ClosureWeight:    10,
		Sigma:            0.5,
		BackboneFactor:   intcoord.DefaultBackboneFactor,
		ViolationLimit:   0.2,
		TuneBand:         10,
		Weights:          Weights{Repulsion: 1, Restraint: 1, ForceField: 1, Stacking: 1},
		Spatial:          spatial.DefaultOptions(),
		ForceField:       energy.DefaultFFParams(),
		Optim: OptimOptions{
			MaxEvals:    o.MaxEvals,
			RelTol:      o.RelTol,
			AbsTol:      o.AbsTol,
			Patience:    o.Patience,
			ReportEvery: o.ReportEvery,
		},
	}
}

// Validate returns an error if the options can't be used for a session.
func (O Options) Validate() error {
	var problems []string
	if O.Passes < 1 {
		problems = append(problems, "passes must be at least 1")
	}
	if O.Retries < 0 {
		problems = append(problems, "retries can't be negative")
	}
	if O.RebuildEvery < 1 {
		problems = append(problems, "rebuild_every must be at least 1")
	}
	if O.ClosureTolerance < 0 {
		problems = append(problems, "closure_tolerance can't be negative")
	}
	if O.Spatial.Cutoff <= 0 {
		problems = append(problems, "spatial.cutoff must be positive")
	}
	if O.ForceField.SwitchOn > O.ForceField.Cutoff {
		problems = append(problems, "force_field.switch_on larger than force_field.cutoff")
	}
	if _, err := parseMode(O.Mode); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := ParseMethod(O.Method); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return newError(strings.Join(problems, "; "), ErrInvalidOptions, "Validate")
	}
	return nil
}

func (O Options) settings() optim.Settings {
	s := optim.DefaultSettings()
	s.MaxEvals = O.Optim.MaxEvals
	s.MaxIter = O.Optim.MaxIter
	s.RelTol = O.Optim.RelTol
	s.AbsTol = O.Optim.AbsTol
	s.Patience = O.Optim.Patience
	s.ReportEvery = O.Optim.ReportEvery
	s.SnapshotEvery = O.Optim.SnapshotEvery
	s.Population = O.Optim.Population
	return s
}
