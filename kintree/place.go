/*
 * place.go, part of gorefine.
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
	"math"

	refine "github.com/rmera/gorefine"
	v3 "github.com/rmera/gorefine/v3"
)

// Place sets the Cartesian coordinates of every non-anchor atom from the length,
// valence and dihedral fields of the atoms, in shell order (natural extension
// reference frame). Anchors keep the coordinates they have in coords.
func (T *Tree) Place(top *refine.Topology, coords *v3.Matrix) {
	for _, b := range T.Branches {
		if !b.Complete() {
			continue
		}
		A := coords.Vec(b.Context[0])
		B := coords.Vec(b.Context[1])
		C := coords.Vec(b.Context[2])
		bc, n, m := frame(A, B, C)
		var phi float64
		for _, a := range b.Atoms {
			at := top.Atom(a)
			phi += at.Dihedral
			st, ct := math.Sincos(at.Valence)
			sp, cp := math.Sincos(phi)
			//local coordinates of the new atom
			d := v3.Vec{-at.Length * ct, at.Length * st * cp, at.Length * st * sp}
			pos := C.Add(bc.Scale(d[0])).Add(m.Scale(d[1])).Add(n.Scale(d[2]))
			coords.SetVec(a, pos)
		}
	}
}

// frame returns the orthonormal frame for placing atoms bonded to C,
// with B-C as first axis.
func frame(A, B, C v3.Vec) (bc, n, m v3.Vec) {
	bc = C.Sub(B).Unit()
	ab := B.Sub(A)
	n = ab.Cross(bc)
	if n.Norm() < 1e-8 {
		//A, B and C are colinear, any perpendicular will do.
		n = bc.Cross(v3.Vec{1, 0, 0})
		if n.Norm() < 1e-8 {
			n = bc.Cross(v3.Vec{0, 1, 0})
		}
	}
	n = n.Unit()
	m = n.Cross(bc)
	return bc, n, m
}
