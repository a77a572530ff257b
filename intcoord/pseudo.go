/*
 * pseudo.go, part of gorefine.
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
	"math"

	refine "github.com/rmera/gorefine"
)

// PseudoOffset is added to the first and subtracted from the last of the five
// ring dihedrals produced from the pseudorotation parameters, to go from the
// endocyclic torsions to the ones stored in the kinematic tree.
var PseudoOffset = refine.Deg2Rad(121.8084)

// MaxAmplitude is the default upper boundary for the pseudorotation amplitude.
var MaxAmplitude = refine.Deg2Rad(60)

var step144 = 4 * math.Pi / 5

// PseudoSite is a five-membered ring whose dihedrals are represented by
// pseudorotation. Atoms are the atoms whose dihedral fields hold the five ring
// torsions nu0 to nu4.
type PseudoSite struct {
	Name  string
	Atoms [5]int
}

// Pseudo2Torsions returns the five ring torsions for the given phase and amplitude,
// including the fixed offsets on the first and last one.
func Pseudo2Torsions(phase, amplitude float64) [5]float64 {
	var nu [5]float64
	for k := range nu {
		nu[k] = amplitude * math.Cos(phase+float64(k-2)*step144)
	}
	nu[0] += PseudoOffset
	nu[4] -= PseudoOffset
	for k := range nu {
		nu[k] = refine.ReduceAngle(nu[k])
	}
	return nu
}

// Torsions2Pseudo recovers the phase and amplitude from the torsions nu2 and nu3,
// which carry no offset. The phase is in (-pi,pi].
func Torsions2Pseudo(nu2, nu3 float64) (phase, amplitude float64) {
	s, c := math.Sin(step144), math.Cos(step144)
	t := (nu2 - nu3*c) / s
	amplitude = math.Sqrt(t*t + nu3*nu3)
	if amplitude < 1e-12 {
		return 0, 0
	}
	arg := nu2 / amplitude
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	phase = math.Acos(arg)
	//acos only gives [0,pi]; the mirror branch may reproduce nu3 better.
	alt := 2*math.Pi - phase
	if math.Abs(amplitude*math.Cos(alt+step144)-nu3) < math.Abs(amplitude*math.Cos(phase+step144)-nu3) {
		phase = alt
	}
	return refine.ReduceAngle(phase), amplitude
}
