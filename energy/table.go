/*
 * table.go, part of gorefine.
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

// PairTable stores the pairs of a term in columns. The meaning of Lo, Hi and Param
// depends on the kind of term:
//
//	Repulsion:  Lo is the contact radius.
//	Restraint:  Lo and Hi are the bounds, Param the target distance.
//	ForceField: Lo is the LJ minimum distance, Hi the well depth, Param the charge product.
//	Stacking:   Lo and Hi are the band where the term is not zero.
//
// Dist and Deriv are filled by each energy evaluation, with the distance
// and the derivative of the energy with respect to it.
type PairTable struct {
	I      []int
	J      []int
	Weight []float64
	Lo     []float64
	Hi     []float64
	Param  []float64
	Group  []int
	Dist   []float64
	Deriv  []float64
}

// Len returns the number of pairs in the table.
func (P *PairTable) Len() int { return len(P.I) }

// Reset removes all the pairs, but keeps the storage.
func (P *PairTable) Reset() {
	P.setLen(0)
}

// grow makes sure the table has room for n more pairs, doubling the capacity of all
// the columns at once when it does not.
func (P *PairTable) grow(n int) {
	l := len(P.I)
	if l+n <= cap(P.I) {
		return
	}
	c := 2 * cap(P.I)
	if c < l+n {
		c = l + n
	}
	if c < 16 {
		c = 16
	}
	P.I = append(make([]int, 0, c), P.I...)
	P.J = append(make([]int, 0, c), P.J...)
	P.Group = append(make([]int, 0, c), P.Group...)
	P.Weight = append(make([]float64, 0, c), P.Weight...)
	P.Lo = append(make([]float64, 0, c), P.Lo...)
	P.Hi = append(make([]float64, 0, c), P.Hi...)
	P.Param = append(make([]float64, 0, c), P.Param...)
	P.Dist = append(make([]float64, 0, c), P.Dist...)
	P.Deriv = append(make([]float64, 0, c), P.Deriv...)
}

func (P *PairTable) setLen(n int) {
	P.I = P.I[:n]
	P.J = P.J[:n]
	P.Group = P.Group[:n]
	P.Weight = P.Weight[:n]
	P.Lo = P.Lo[:n]
	P.Hi = P.Hi[:n]
	P.Param = P.Param[:n]
	P.Dist = P.Dist[:n]
	P.Deriv = P.Deriv[:n]
}

// add appends a pair and returns its row.
func (P *PairTable) add(i, j int, weight, lo, hi, param float64, group int) int {
	P.grow(1)
	k := len(P.I)
	P.setLen(k + 1)
	P.I[k] = i
	P.J[k] = j
	P.Weight[k] = weight
	P.Lo[k] = lo
	P.Hi[k] = hi
	P.Param[k] = param
	P.Group[k] = group
	P.Dist[k] = 0
	P.Deriv[k] = 0
	return k
}
