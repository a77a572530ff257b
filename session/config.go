/*
 * config.go, part of gorefine.
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
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the prefix of the environment variables that override options,
// e.g. GOREFINE_PASSES or GOREFINE_SPATIAL_CUTOFF.
const envPrefix = "GOREFINE"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// setDefaults registers every scalar option with viper, so the environment
// can override keys absent from the file.
func setDefaults(v *viper.Viper, o Options) {
	defaults := map[string]interface{}{
		"start":                     o.Start,
		"end":                       o.End,
		"mode":                      o.Mode,
		"method":                    o.Method,
		"passes":                    o.Passes,
		"retries":                   o.Retries,
		"perturb":                   o.Perturb,
		"target":                    o.Target,
		"rebuild_every":             o.RebuildEvery,
		"closure_tolerance":         o.ClosureTolerance,
		"closure_weight":            o.ClosureWeight,
		"sigma":                     o.Sigma,
		"backbone_factor":           o.BackboneFactor,
		"center_width":              o.CenterWidth,
		"violation_limit":           o.ViolationLimit,
		"tune_step":                 o.TuneStep,
		"tune_band":                 o.TuneBand,
		"snapshot_file":             o.SnapshotFile,
		"weights.repulsion":         o.Weights.Repulsion,
		"weights.restraint":         o.Weights.Restraint,
		"weights.force_field":       o.Weights.ForceField,
		"weights.stacking":          o.Weights.Stacking,
		"spatial.cutoff":            o.Spatial.Cutoff,
		"spatial.exclude_hydrogens": o.Spatial.ExcludeHydrogens,
		"spatial.residue_window":    o.Spatial.ResidueWindow,
		"spatial.shrink":            o.Spatial.Shrink,
		"spatial.hbond_discount":    o.Spatial.HBondDiscount,
		"spatial.close_discount":    o.Spatial.CloseDiscount,
		"spatial.weight":            o.Spatial.Weight,
		"force_field.dielectric":    o.ForceField.Dielectric,
		"force_field.switch_on":     o.ForceField.SwitchOn,
		"force_field.cutoff":        o.ForceField.Cutoff,
		"optim.max_evals":           o.Optim.MaxEvals,
		"optim.max_iter":            o.Optim.MaxIter,
		"optim.rel_tol":             o.Optim.RelTol,
		"optim.abs_tol":             o.Optim.AbsTol,
		"optim.patience":            o.Optim.Patience,
		"optim.report_every":        o.Optim.ReportEvery,
		"optim.snapshot_every":      o.Optim.SnapshotEvery,
		"optim.population":          o.Optim.Population,
	}
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
}

// LoadOptions reads the options from the file at path (YAML, TOML or JSON, from the
// extension) over the defaults. Keys missing from the file keep their default values,
// unknown keys are ignored, and GOREFINE_* environment variables override both.
func LoadOptions(path string) (Options, error) {
	o := DefaultOptions()
	v := newViper()
	setDefaults(v, o)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return o, newError("reading "+path, err, "LoadOptions")
	}
	return unmarshal(v, o)
}

// OptionsFromEnv builds the options from the defaults and the GOREFINE_* environment
// variables only.
func OptionsFromEnv() (Options, error) {
	o := DefaultOptions()
	v := newViper()
	setDefaults(v, o)
	return unmarshal(v, o)
}

func unmarshal(v *viper.Viper, o Options) (Options, error) {
	if err := v.Unmarshal(&o); err != nil {
		return o, newError("decoding options", err, "LoadOptions")
	}
	if err := o.Validate(); err != nil {
		return o, err
	}
	return o, nil
}
