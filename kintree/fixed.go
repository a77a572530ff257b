/*
 * fixed.go, part of gorefine.
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
)

// PairSet is a set of unordered atom pairs.
type PairSet map[[2]int]struct{}

func key(i, j int) [2]int {
	if i > j {
		i, j = j, i
	}
	return [2]int{i, j}
}

func (P PairSet) Add(i, j int) {
	P[key(i, j)] = struct{}{}
}

func (P PairSet) Has(i, j int) bool {
	_, ok := P[key(i, j)]
	return ok
}

// FixedPairs returns the pairs of atoms whose distance does not depend on any free
// dihedral: bonded (1-2) pairs, 1-3 pairs and 1-4 pairs across a bond that
// is not a rotation axis. FixedPairs must be called after Build.
func (T *Tree) FixedPairs(top *refine.Topology) PairSet {
	fixed := make(PairSet)
	n := top.Len()
	for i := 0; i < n; i++ {
		ni := top.Neighbors(i)
		for k, b := range ni {
			fixed.Add(i, b)
			for _, c := range ni[k+1:] {
				fixed.Add(b, c)
			}
		}
	}
	for _, bond := range top.Bonds {
		b, c := bond.At1, bond.At2
		if T.axisRotatable(top, b, c) {
			continue
		}
		for _, i := range top.Neighbors(b) {
			if i == c {
				continue
			}
			for _, j := range top.Neighbors(c) {
				if j == b || j == i {
					continue
				}
				fixed.Add(i, j)
			}
		}
	}
	return fixed
}

// axisRotatable returns whether the bond b-c is the axis of a rotatable dihedral.
func (T *Tree) axisRotatable(top *refine.Topology, b, c int) bool {
	if T.Parent[b] == c {
		b, c = c, b
	}
	if T.Parent[c] != b {
		return false //ring closure
	}
	ch := T.children[c]
	return len(ch) > 0 && top.Atom(ch[0]).Rotatable
}
