/*
 * bonds.go, part of gorefine.
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

package refine

// Bond joins the atoms with indexes At1 and At2 in a topology.
type Bond struct {
	Index int
	At1   int
	At2   int
	Order float64 //Order 0 means undetermined
	//RingClosure is true iff the bond was left out of the kinematic tree.
	RingClosure bool
}

// Cross returns the index of the atom bonded to origin through B.
func (B *Bond) Cross(origin int) int {
	if origin == B.At1 {
		return B.At2
	}
	if origin == B.At2 {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!") //I think this got to be a programming error, so a panic is warranted.
}

// Contains returns whether the atom with index i is one of the ends of B.
func (B *Bond) Contains(i int) bool {
	return B.At1 == i || B.At2 == i
}

// Single returns true if the bond order is 1, or undetermined.
func (B *Bond) Single() bool {
	return B.Order == 1 || B.Order == 0
}
