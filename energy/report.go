/*
 * report.go, part of gorefine.
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
	"bufio"
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Violation describes a pair (or a group of ambiguous pairs) outside its allowed region.
type Violation struct {
	Kind   Kind
	Row    int
	Group  int
	I, J   int
	Dist   float64 //for groups, the r^-6 averaged distance
	Lo, Hi float64
	Amount float64 //how far outside the bounds the distance is
	Energy float64
}

// Violation returns the violation for the row k, if it exceeds limit.
// It uses the distances from the last energy evaluation.
// Only repulsion and restraint terms have violations.
func (T *Term) Violation(k int, limit, weight float64) (Violation, bool) {
	if T.Kind != Repulsion && T.Kind != Restraint {
		return Violation{}, false
	}
	d := T.Dist[k]
	lo, hi, w := T.Lo[k], T.Hi[k], T.Weight[k]
	if T.Kind == Restraint && T.grouped(k) {
		rows := T.groups[T.Group[k]]
		d = T.effDistance(rows)
		lo, hi, w = T.Lo[rows[0]], T.Hi[rows[0]], T.Weight[rows[0]]
	}
	var amount float64
	switch {
	case d < lo:
		amount = lo - d
	case d > hi:
		amount = d - hi
	}
	if amount <= limit || amount == 0 {
		return Violation{}, false
	}
	return Violation{
		Kind:   T.Kind,
		Row:    k,
		Group:  T.Group[k],
		I:      T.I[k],
		J:      T.J[k],
		Dist:   d,
		Lo:     lo,
		Hi:     hi,
		Amount: amount,
		Energy: weight * w * amount * amount,
	}, true
}

// Violations returns all the violations larger than limit, one per group.
func (T *Term) Violations(limit, weight float64) []Violation {
	var ret []Violation
	for k := range T.I {
		if T.grouped(k) && T.groups[T.Group[k]][0] != k {
			continue
		}
		if v, ok := T.Violation(k, limit, weight); ok {
			ret = append(ret, v)
		}
	}
	return ret
}

// WriteReport writes a fixed-width table with the pairs of the term: pair index, group,
// atom names (as given by names) and bounds. It is meant for people, not to be read back.
func (T *Term) WriteReport(w io.Writer, names func(int) string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#%6s %6s %-14s %-14s %8s %8s\n", "pair", "group", "atom1", "atom2", "low", "up")
	for k := range T.I {
		hi := T.Hi[k]
		if math.IsInf(hi, 1) {
			hi = 0
		}
		fmt.Fprintf(bw, "%7d %6d %-14s %-14s %8.3f %8.3f\n", k, T.Group[k], names(T.I[k]), names(T.J[k]), T.Lo[k], hi)
	}
	if err := bw.Flush(); err != nil {
		return &Error{"writing report", []string{"WriteReport"}, true, err}
	}
	return nil
}

// Stats summarizes a set of violations.
type Stats struct {
	N      int
	Mean   float64
	StdDev float64
	Max    float64
	Energy float64
}

// Summarize returns statistics on the amounts of the violations in v.
func Summarize(v []Violation) Stats {
	if len(v) == 0 {
		return Stats{}
	}
	amounts := make([]float64, len(v))
	energies := make([]float64, len(v))
	for i, x := range v {
		amounts[i] = x.Amount
		energies[i] = x.Energy
	}
	s := Stats{N: len(v), Max: floats.Max(amounts), Energy: floats.Sum(energies)}
	if len(v) == 1 {
		s.Mean = amounts[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(amounts, nil)
	return s
}

func (s Stats) String() string {
	return fmt.Sprintf("%d violations, mean %.3f, sd %.3f, max %.3f, energy %.3f", s.N, s.Mean, s.StdDev, s.Max, s.Energy)
}
