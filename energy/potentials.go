/*
 * potentials.go, part of gorefine.
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

import "math"

// Eps is added to every distance, so derivatives stay finite when two atoms overlap.
const Eps = 1e-8

// Stacking band. The energy is minimal at the center and zero outside.
const (
	StackLow    = 4.0
	StackHigh   = 6.0
	StackCenter = 5.0
	StackWidth  = 1.0
)

// Force field defaults.
const (
	Coulomb           = 332.0636 //kcal A/(mol e^2)
	DefaultDielectric = 4.0
	DefaultSwitchOn   = 8.0
	DefaultFFCutoff   = 10.0
)

// FFParams are the global parameters of the force-field term.
type FFParams struct {
	Dielectric float64 `mapstructure:"dielectric"`
	SwitchOn   float64 `mapstructure:"switch_on"`
	Cutoff     float64 `mapstructure:"cutoff"`
}

// DefaultFFParams returns the force-field defaults.
func DefaultFFParams() FFParams {
	return FFParams{Dielectric: DefaultDielectric, SwitchOn: DefaultSwitchOn, Cutoff: DefaultFFCutoff}
}

// potential returns the energy for the row k at distance d, and its derivative with
// respect to d. It does not include the row weight.
type potential func(t *Term, k int, d float64) (e, deriv float64)

// table of potential shapes, indexed by Kind
var potentials = [...]potential{
	Repulsion:  repulsion,
	Restraint:  restraint,
	ForceField: forceField,
	Stacking:   stacking,
}

// squareWell is zero within [lo, hi] and quadratic outside.
func squareWell(d, lo, hi float64) (float64, float64) {
	switch {
	case d < lo:
		return (lo - d) * (lo - d), -2 * (lo - d)
	case d > hi:
		return (d - hi) * (d - hi), 2 * (d - hi)
	}
	return 0, 0
}

func repulsion(t *Term, k int, d float64) (float64, float64) {
	return squareWell(d, t.Lo[k], math.Inf(1))
}

func restraint(t *Term, k int, d float64) (float64, float64) {
	return squareWell(d, t.Lo[k], t.Hi[k])
}

func stacking(t *Term, k int, d float64) (float64, float64) {
	if d <= t.Lo[k] || d >= t.Hi[k] {
		return 0, 0
	}
	u := (d - StackCenter) / StackWidth
	f := 1 - u*u
	return -f * f, 4 * u * f / StackWidth
}

// forceField is a Lennard-Jones plus Coulomb pair with a CHARMM switching function
// between SwitchOn and Cutoff.
func forceField(t *Term, k int, d float64) (float64, float64) {
	ff := t.FF
	if d >= ff.Cutoff {
		return 0, 0
	}
	rm, eps, qq := t.Lo[k], t.Hi[k], t.Param[k]
	s6 := math.Pow(rm/d, 6)
	s12 := s6 * s6
	u := eps * (s12 - 2*s6)
	du := 12 * eps / d * (s6 - s12)
	if qq != 0 {
		c := Coulomb * qq / (ff.Dielectric * d)
		u += c
		du -= c / d
	}
	if d <= ff.SwitchOn {
		return u, du
	}
	c2 := ff.Cutoff * ff.Cutoff
	on2 := ff.SwitchOn * ff.SwitchOn
	r2 := d * d
	den := math.Pow(c2-on2, 3)
	s := (c2 - r2) * (c2 - r2) * (c2 + 2*r2 - 3*on2) / den
	ds := 12 * d * (c2 - r2) * (on2 - r2) / den
	return s * u, ds*u + s*du
}
