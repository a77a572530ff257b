/*
 * term.go, part of gorefine.
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

import (
	"fmt"
	"math"

	v3 "github.com/rmera/gorefine/v3"
)

// Kind of energy term
type Kind int

const (
	Repulsion Kind = iota
	Restraint
	ForceField
	Stacking
)

func (k Kind) String() string {
	switch k {
	case Repulsion:
		return "repulsion"
	case Restraint:
		return "restraint"
	case ForceField:
		return "forcefield"
	case Stacking:
		return "stacking"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Term is a set of atom pairs that interact through the same potential.
type Term struct {
	Kind Kind
	PairTable
	FF FFParams

	groups map[int][]int //rows of each restraint group
}

// NewTerm returns an empty term of the given kind.
func NewTerm(kind Kind) *Term {
	return &Term{Kind: kind, FF: DefaultFFParams(), groups: make(map[int][]int)}
}

func (T *Term) mustBe(k Kind) {
	if T.Kind != k {
		panic(fmt.Sprintf("energy: adding a %s pair to a %s term", k, T.Kind))
	}
}

// Reset removes all the pairs of the term.
func (T *Term) Reset() {
	T.PairTable.Reset()
	T.groups = make(map[int][]int)
}

// AddRepulsion adds a pair that is penalized when closer than radius. It returns the row of the pair.
func (T *Term) AddRepulsion(i, j int, radius, weight float64) int {
	T.mustBe(Repulsion)
	return T.add(i, j, weight, radius, math.Inf(1), 0, -1)
}

// AddRestraint adds a distance restraint between i and j, penalized outside [lo, hi].
// Restraints with the same non-negative group are ambiguous: they are evaluated together,
// with the r^-6 averaged distance over the group, and the bounds and weight of the first one.
func (T *Term) AddRestraint(i, j int, lo, hi, weight, target float64, group int) (int, error) {
	T.mustBe(Restraint)
	if lo > hi {
		return -1, &Error{fmt.Sprintf("restraint %d-%d: %.3f > %.3f", i, j, lo, hi), []string{"AddRestraint"}, true, ErrInvalidBounds}
	}
	if group < 0 {
		group = -1
	}
	k := T.add(i, j, weight, lo, hi, target, group)
	if group >= 0 {
		T.groups[group] = append(T.groups[group], k)
	}
	return k, nil
}

// AddForceField adds a Lennard-Jones/Coulomb pair with minimum at rm, well depth eps and charge product qq.
func (T *Term) AddForceField(i, j int, rm, eps, qq, weight float64) int {
	T.mustBe(ForceField)
	return T.add(i, j, weight, rm, eps, qq, -1)
}

// AddStacking adds a stacking pair (usually the centers of two bases).
func (T *Term) AddStacking(i, j int, weight float64) int {
	T.mustBe(Stacking)
	return T.add(i, j, weight, StackLow, StackHigh, StackCenter, -1)
}

// grouped returns true if the row k belongs to a group with more than one member.
func (T *Term) grouped(k int) bool {
	return T.Group[k] >= 0 && len(T.groups[T.Group[k]]) > 1
}

// distance returns the distance between the atoms of the row k, plus Eps.
func (T *Term) distance(coords *v3.Matrix, k int) float64 {
	return math.Sqrt(coords.Vec(T.I[k]).Dist2(coords.Vec(T.J[k]))) + Eps
}

// CalcEnergy returns the energy of the term for coords, multiplied by weight.
// If deriv is true, the derivative of the (weighted) energy with respect to the
// distance of each pair is stored in Deriv, to be used by Forces.
func (T *Term) CalcEnergy(coords *v3.Matrix, deriv bool, weight float64) float64 {
	pot := potentials[T.Kind]
	var e float64
	for k := range T.I {
		T.Dist[k] = T.distance(coords, k)
	}
	for k := range T.I {
		if T.Kind == Restraint && T.grouped(k) {
			if T.groups[T.Group[k]][0] == k {
				e += T.groupEnergy(T.Group[k], deriv, weight)
			}
			continue
		}
		en, d := pot(T, k, T.Dist[k])
		w := weight * T.Weight[k]
		e += w * en
		if deriv {
			T.Deriv[k] = w * d
		}
	}
	return e
}

// effDistance returns the r^-6 averaged distance of a group of rows.
func (T *Term) effDistance(rows []int) float64 {
	var s float64
	for _, k := range rows {
		s += math.Pow(T.Dist[k], -6)
	}
	return math.Pow(s, -1.0/6.0)
}

// groupEnergy evaluates a group of ambiguous restraints. Dist must be up to date.
func (T *Term) groupEnergy(g int, deriv bool, weight float64) float64 {
	rows := T.groups[g]
	first := rows[0]
	r := T.effDistance(rows)
	en, d := squareWell(r, T.Lo[first], T.Hi[first])
	w := weight * T.Weight[first]
	if deriv {
		for _, k := range rows {
			//dr/dd_k = (r/d_k)^7
			T.Deriv[k] = w * d * math.Pow(r/T.Dist[k], 7)
		}
	}
	return w * en
}

// Forces adds to grad (one row per atom) the gradient of the energy of the term with
// respect to the Cartesian coordinates, using the derivatives stored by the last
// CalcEnergy call with deriv=true.
func (T *Term) Forces(coords, grad *v3.Matrix) {
	for k := range T.I {
		if T.Deriv[k] == 0 {
			continue
		}
		i, j := T.I[k], T.J[k]
		u := coords.Vec(i).Sub(coords.Vec(j)).Scale(T.Deriv[k] / T.Dist[k])
		grad.SetVec(i, grad.Vec(i).Add(u))
		grad.SetVec(j, grad.Vec(j).Sub(u))
	}
}

// Involves returns the rows with the atom a as one of its ends.
func (T *Term) Involves(a int) []int {
	var ret []int
	for k := range T.I {
		if T.I[k] == a || T.J[k] == a {
			ret = append(ret, k)
		}
	}
	return ret
}
