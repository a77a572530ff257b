/*
 * swap.go, part of gorefine.
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
	"sort"

	v3 "github.com/rmera/gorefine/v3"
)

// rowsEnergy returns the unweighted-by-caller energy of the given rows, evaluating
// every group they touch as a whole.
func (T *Term) rowsEnergy(coords *v3.Matrix, rows []int) float64 {
	pot := potentials[T.Kind]
	doneGroups := make(map[int]bool)
	var e float64
	for _, k := range rows {
		T.Dist[k] = T.distance(coords, k)
	}
	for _, k := range rows {
		if T.Kind == Restraint && T.grouped(k) {
			g := T.Group[k]
			if doneGroups[g] {
				continue
			}
			doneGroups[g] = true
			for _, m := range T.groups[g] {
				T.Dist[m] = T.distance(coords, m)
			}
			e += T.groupEnergy(g, false, 1)
			continue
		}
		en, _ := pot(T, k, T.Dist[k])
		e += T.Weight[k] * en
	}
	return e
}

// swapLabels exchanges a and b in the given rows.
func (T *Term) swapLabels(rows []int, a, b int) {
	for _, k := range rows {
		for _, col := range [2][]int{T.I, T.J} {
			switch col[k] {
			case a:
				col[k] = b
			case b:
				col[k] = a
			}
		}
	}
}

// SwapPass tries, for each pair of interchangeable atoms (e.g. prochiral protons without
// stereospecific assignment), to exchange their labels in the pairs of this term,
// and keeps the labeling with the lower energy. It returns the number of pairs swapped.
func (T *Term) SwapPass(coords *v3.Matrix, swaps [][2]int) int {
	swapped := 0
	for _, s := range swaps {
		a, b := s[0], s[1]
		rows := append(T.Involves(a), T.Involves(b)...)
		if len(rows) == 0 {
			continue
		}
		sort.Ints(rows)
		rows = dedup(rows)
		before := T.rowsEnergy(coords, rows)
		T.swapLabels(rows, a, b)
		after := T.rowsEnergy(coords, rows)
		if after < before {
			swapped++
			continue
		}
		T.swapLabels(rows, a, b)
		T.rowsEnergy(coords, rows)
	}
	return swapped
}

func dedup(s []int) []int {
	if len(s) == 0 {
		return s
	}
	ret := s[:1]
	for _, v := range s[1:] {
		if v != ret[len(ret)-1] {
			ret = append(ret, v)
		}
	}
	return ret
}
