/*
 * gradient.go, part of gorefine.
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

// TorsionGradient propagates the Cartesian energy gradient grad (one row per atom)
// to the dihedral field of every atom, and returns it in dst (which is
// allocated if nil or too short). Entries for anchors are zero.
//
// Changing the dihedral field of an atom rotates, about its g->p axis, the subtrees of
// that atom and of all the siblings placed after it. For such a rotation
// dE/dphi = u . sum_i (x_i - p) x g_i, where u is the unit axis vector and g_i the gradient
// on the moving atom i.
func (T *Tree) TorsionGradient(top *refine.Topology, coords, grad *v3.Matrix, dst []float64) []float64 {
	n := top.Len()
	if len(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = 0
	}
	//subtree sums of the gradient and of the torque x cross g
	sumG := make([]v3.Vec, n)
	sumT := make([]v3.Vec, n)
	for k := len(T.Order) - 1; k >= 0; k-- {
		a := T.Order[k]
		x := coords.Vec(a)
		g := grad.Vec(a)
		sumG[a] = sumG[a].Add(g)
		sumT[a] = sumT[a].Add(x.Cross(g))
		if p := T.Parent[a]; p >= 0 {
			sumG[p] = sumG[p].Add(sumG[a])
			sumT[p] = sumT[p].Add(sumT[a])
		}
	}
	for _, b := range T.Branches {
		if !b.Complete() {
			continue
		}
		pv := coords.Vec(b.Context[2])
		u := pv.Sub(coords.Vec(b.Context[1])).Unit()
		var G, Tq v3.Vec
		for k := len(b.Atoms) - 1; k >= 0; k-- {
			a := b.Atoms[k]
			G = G.Add(sumG[a])
			Tq = Tq.Add(sumT[a])
			dst[a] = u.Dot(Tq.Sub(pv.Cross(G)))
		}
	}
	return dst
}
