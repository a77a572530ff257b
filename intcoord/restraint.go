/*
 * restraint.go, part of gorefine.
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

package intcoord

import (
	"fmt"
	"math"
)

type angleRestraint struct {
	dof    int
	lower  float64
	upper  float64
	weight float64
}

// AddAngleRestraint adds a soft square-well restraint that keeps the angle with the given
// name within [lower, upper] (mod 2pi).
func (M *Model) AddAngleRestraint(name string, lower, upper, weight float64) error {
	i := M.Index(name)
	if i < 0 {
		return &Error{fmt.Sprintf("no angle %q", name), []string{"AddAngleRestraint"}, true, ErrUnknownAngle}
	}
	if lower > upper {
		return &Error{fmt.Sprintf("%s: %.3f > %.3f", name, lower, upper), []string{"AddAngleRestraint"}, true, ErrInvalidBounds}
	}
	M.restraints = append(M.restraints, angleRestraint{dof: i, lower: lower, upper: upper, weight: weight})
	return nil
}

// NRestraints returns the number of angle restraints.
func (M *Model) NRestraints() int { return len(M.restraints) }

// RestraintEnergy returns the energy of the angle restraints for the current values.
// If grad is not nil, the derivatives with respect to each angle are added to it.
func (M *Model) RestraintEnergy(grad []float64) float64 {
	var e float64
	for _, r := range M.restraints {
		en, d := wellEnergy(M.values[r.dof], r.lower, r.upper, r.weight)
		e += en
		if grad != nil {
			grad[r.dof] += d
		}
	}
	return e
}

// wellEnergy is a square well on the circle: zero inside [lower,upper],
// weight*delta^2 outside, with delta the distance to the closest bound.
func wellEnergy(theta, lower, upper, weight float64) (e, deriv float64) {
	if upper-lower >= 2*math.Pi {
		return 0, 0
	}
	t := lower + mod2Pi(theta-lower)
	if t <= upper {
		return 0, 0
	}
	above := t - upper
	below := lower + 2*math.Pi - t
	if above < below {
		return weight * above * above, 2 * weight * above
	}
	return weight * below * below, -2 * weight * below
}
