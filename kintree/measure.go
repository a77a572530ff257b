/*
 * measure.go, part of gorefine.
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

package kintree

import (
	refine "github.com/rmera/gorefine"
	v3 "github.com/rmera/gorefine/v3"
)

// Measure sets the bond length, valence angle and dihedral of every atom from coords, and
// decides which dihedrals are rotatable.
// The first atom of each branch gets the absolute dihedral, the following ones
// the offset to the previous sibling, so rotating the first atom rotates the whole branch.
func (T *Tree) Measure(top *refine.Topology, coords *v3.Matrix) {
	for _, b := range T.Branches {
		gg, g, p := b.Context[0], b.Context[1], b.Context[2]
		pv := coords.Vec(p)
		var prevAbs float64
		for k, a := range b.Atoms {
			at := top.Atom(a)
			av := coords.Vec(a)
			at.Length = refine.Distance(av, pv)
			at.Valence = 0
			at.Dihedral = 0
			at.Rotatable = false
			if g < 0 {
				continue
			}
			gv := coords.Vec(g)
			at.Valence = refine.Angle(av, pv, gv)
			if gg < 0 {
				continue
			}
			abs := refine.Dihedral(coords.Vec(gg), gv, pv, av)
			if k == 0 {
				at.Dihedral = abs
				at.Rotatable = rotatable(top, g, p)
			} else {
				at.Dihedral = refine.ReduceAngle(abs - prevAbs)
			}
			prevAbs = abs
		}
	}
}

// rotatable decides whether the torsion about the g-p bond is free. It is only called
// for complete contexts, so g always has a bond besides g-p.
func rotatable(top *refine.Topology, g, p int) bool {
	b := top.Bond(g, p)
	if b == nil || !b.Single() || b.RingClosure {
		return false
	}
	if top.IsHydrogen(g) || top.IsHydrogen(p) {
		return false
	}
	return !constrained(top.Atom(g)) || !constrained(top.Atom(p))
}

func constrained(at *refine.Atom) bool {
	return at.Flags&(refine.Ring|refine.Aromatic|refine.Resonant) != 0 || at.Resonance >= 0
}

// Rotatable returns the atoms that own a rotatable dihedral, in shell order.
func (T *Tree) Rotatable(top *refine.Topology) []int {
	ret := make([]int, 0, len(T.Branches))
	for _, a := range T.Order {
		if top.Atom(a).Rotatable {
			ret = append(ret, a)
		}
	}
	return ret
}

// AbsDihedral returns the absolute dihedral of atom i, built from the sibling offsets.
func (T *Tree) AbsDihedral(top *refine.Topology, i int) float64 {
	d := top.Atom(i).Dihedral
	for s := T.prev[i]; s >= 0; s = T.prev[s] {
		d += top.Atom(s).Dihedral
	}
	return refine.ReduceAngle(d)
}
