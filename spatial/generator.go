/*
 * generator.go, part of gorefine.
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

package spatial

import (
	refine "github.com/rmera/gorefine"
	"github.com/rmera/gorefine/kintree"
	v3 "github.com/rmera/gorefine/v3"
)

// Empirical radius adjustments. They have no first-principles derivation, they
// just work well.
const (
	DefaultShrink        = 0.0
	DefaultHBondDiscount = 0.4
	DefaultCloseDiscount = 0.2
	DefaultCutoff        = 4.0
)

// Options for the generation of repulsion pairs.
type Options struct {
	Cutoff           float64 `mapstructure:"cutoff"`
	ExcludeHydrogens bool    `mapstructure:"exclude_hydrogens"`
	//Pairs of atoms in residues further apart than this are ignored. A negative value means no limit.
	ResidueWindow int     `mapstructure:"residue_window"`
	Shrink        float64 `mapstructure:"shrink"`
	HBondDiscount float64 `mapstructure:"hbond_discount"`
	CloseDiscount float64 `mapstructure:"close_discount"`
	Weight        float64 `mapstructure:"weight"`
}

// DefaultOptions returns reasonable options for most cases.
func DefaultOptions() Options {
	return Options{
		Cutoff:        DefaultCutoff,
		ResidueWindow: -1,
		Shrink:        DefaultShrink,
		HBondDiscount: DefaultHBondDiscount,
		CloseDiscount: DefaultCloseDiscount,
		Weight:        1,
	}
}

// Sink receives the generated pairs. energy.Term implements it.
type Sink interface {
	//Reset removes all the pairs previously added.
	Reset()
	AddRepulsion(i, j int, radius, weight float64) int
}

// Contact returns the contact radius for the pair of atoms with types ti and tj
// (the pair combination rule). Each hard radius is reduced by shrink, and by hbond
// when the hydrogen bond roles of the two atoms are opposite. A zero or negative
// contact radius for either atom means the pair is ignored, and 0 is returned.
func Contact(ti, tj *refine.AtomType, shrink, hbond float64) float64 {
	ri := ti.HardRadius - shrink
	rj := tj.HardRadius - shrink
	if ri <= 0 || rj <= 0 {
		return 0
	}
	if ti.HBond*tj.HBond == -1 {
		ri -= hbond
		rj -= hbond
	}
	return ri + rj
}

// Generator turns the raw candidate pairs of an Index into repulsion pairs.
type Generator struct {
	Options
	top        *refine.Topology
	types      []*refine.AtomType
	fixed      kintree.PairSet
	restrained kintree.PairSet
	index      *Index
}

// NewGenerator returns a generator for top, with the atom types given (one per atom) and
// the pairs of fixed distance from the kinematic tree.
func NewGenerator(top *refine.Topology, types []*refine.AtomType, fixed kintree.PairSet, opts Options) *Generator {
	if len(types) != top.Len() {
		panic(v3.ErrShape)
	}
	if fixed == nil {
		fixed = make(kintree.PairSet)
	}
	return &Generator{
		Options:    opts,
		top:        top,
		types:      types,
		fixed:      fixed,
		restrained: make(kintree.PairSet),
		index:      NewIndex(),
	}
}

// Restrain marks the pair i, j as already held by an explicit restraint, so no repulsion
// pair is generated for it.
func (G *Generator) Restrain(i, j int) {
	G.restrained.Add(i, j)
}

// Close returns true if i and j share an atom within two tree hops of each of them.
func (G *Generator) Close(i, j int) bool {
	var si, sj [3]int
	si = G.ancestors(i)
	sj = G.ancestors(j)
	for _, a := range si {
		if a < 0 {
			continue
		}
		for _, b := range sj {
			if a == b {
				return true
			}
		}
	}
	return false
}

func (G *Generator) ancestors(i int) [3]int {
	ret := [3]int{i, -1, -1}
	p := G.top.Atom(i).Parent
	ret[1] = p
	if p >= 0 {
		ret[2] = G.top.Atom(p).Parent
	}
	return ret
}

func absInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Generate rebuilds the index over coords, and replaces the pairs in sink with the pairs
// that survive the filters. It returns the number of pairs added.
func (G *Generator) Generate(coords *v3.Matrix, sink Sink) int {
	sink.Reset()
	G.index.Build(coords, G.Cutoff)
	added := 0
	G.index.Pairs(func(i, j int, d2 float64) {
		if G.ExcludeHydrogens && (G.top.IsHydrogen(i) || G.top.IsHydrogen(j)) {
			return
		}
		delta := absInt(G.top.Atom(i).MolID - G.top.Atom(j).MolID)
		if G.ResidueWindow >= 0 && delta > G.ResidueWindow {
			return
		}
		discount := 0.0
		if delta <= 1 {
			if G.fixed.Has(i, j) {
				return
			}
			if G.Close(i, j) {
				discount = G.CloseDiscount
			}
		}
		r := Contact(G.types[i], G.types[j], G.Shrink, G.HBondDiscount)
		if r <= 0 {
			return
		}
		if G.restrained.Has(i, j) {
			return
		}
		sink.AddRepulsion(i, j, r-discount, G.Weight)
		added++
	})
	return added
}
