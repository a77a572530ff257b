/*
 * chem.go, part of gorefine.
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

import (
	"fmt"
	"strings"
)

// Flags for atom properties that affect the kinematics.
type Flags uint8

const (
	Ring Flags = 1 << iota
	Aromatic
	Resonant
	Backbone
)

// Has returns whether all the flags in g are set in f.
func (f Flags) Has(g Flags) bool { return f&g == g }

// Atom contains the information to represent an atom, except for the coordinates, which will be in a separate *v3.Matrix.
// Atoms are stored in a Topology and refer to each other, and to their bonds, by index.
type Atom struct {
	Name    string
	ID      int //1-based, assigned by the topology
	Symbol  string
	MolName string
	MolID   int //residue index
	Chain   byte
	Type    string //nonbonded type code. The element symbol is used if empty.
	Charge  float64
	Flags   Flags
	Bonds   []int //indexes of the bonds of this atom in the topology
	//Interchangeable partner (i.e. a prochiral pair) or -1.
	Swap int
	//Resonance partner or -1
	Resonance int

	//Tree fields, -1 until a kinematic tree is built.
	Parent int
	Branch int
	Group  int

	//Kinematic scalars relative to the tree parent.
	Length    float64
	Valence   float64
	Dihedral  float64
	Rotatable bool
}

// NewAtom returns an atom with the given name and element, and all the index
// fields set to -1.
func NewAtom(name, symbol string) *Atom {
	a := new(Atom)
	a.Name = name
	a.Symbol = symbol
	a.reset()
	return a
}

func (A *Atom) reset() {
	A.Swap = -1
	A.Resonance = -1
	A.ResetTree()
}

// ResetTree clears the tree fields of the atom.
func (A *Atom) ResetTree() {
	A.Parent = -1
	A.Branch = -1
	A.Group = -1
	A.Rotatable = false
}

// Copy returns a copy of the atom, with its own bond slice.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic(ErrNilData)
	}
	n := *A
	n.Bonds = append([]int(nil), A.Bonds...)
	return &n
}

// Topology is the atom arena. Atoms and bonds are referred to by their indexes
// in the Atoms and Bonds slices.
type Topology struct {
	Atoms []*Atom
	Bonds []*Bond
}

// NewTopology returns an empty topology with room for n atoms.
func NewTopology(n int) *Topology {
	return &Topology{Atoms: make([]*Atom, 0, n), Bonds: make([]*Bond, 0, n)}
}

// AddAtom appends at to the topology, sets its ID and returns its index.
func (T *Topology) AddAtom(at *Atom) int {
	if at == nil {
		panic(ErrNilData)
	}
	at.ID = len(T.Atoms) + 1
	at.Bonds = at.Bonds[:0]
	at.ResetTree()
	T.Atoms = append(T.Atoms, at)
	return len(T.Atoms) - 1
}

// AddBond creates a bond of the given order between the atoms with indexes i and j.
// It returns an error if either index is out of range, if i==j or if the bond already exists.
func (T *Topology) AddBond(i, j int, order float64) (*Bond, error) {
	n := len(T.Atoms)
	if i < 0 || j < 0 || i >= n || j >= n || i == j {
		return nil, NewError(fmt.Sprintf("Invalid bond %d-%d for %d atoms", i, j, n), nil, "AddBond")
	}
	if T.Bond(i, j) != nil {
		return nil, NewError(fmt.Sprintf("Bond %d-%d already present", i, j), nil, "AddBond")
	}
	b := &Bond{Index: len(T.Bonds), At1: i, At2: j, Order: order}
	T.Bonds = append(T.Bonds, b)
	T.Atoms[i].Bonds = append(T.Atoms[i].Bonds, b.Index)
	T.Atoms[j].Bonds = append(T.Atoms[j].Bonds, b.Index)
	return b, nil
}

// Atom returns the Atom corresponding to the index i
// of the Atom slice in the Topology. Panics if
// out of range.
func (T *Topology) Atom(i int) *Atom {
	if i < 0 || i >= len(T.Atoms) {
		panic(ErrIndexOutOfRange)
	}
	return T.Atoms[i]
}

// BondAt returns the bond with index i.
func (T *Topology) BondAt(i int) *Bond {
	if i < 0 || i >= len(T.Bonds) {
		panic(ErrIndexOutOfRange)
	}
	return T.Bonds[i]
}

// Bond returns the bond between atoms i and j, or nil if they are not bonded.
func (T *Topology) Bond(i, j int) *Bond {
	at := T.Atom(i)
	for _, b := range at.Bonds {
		if T.Bonds[b].Contains(j) {
			return T.Bonds[b]
		}
	}
	return nil
}

// Neighbors returns the indexes of the atoms bonded to the atom i, in bond order.
func (T *Topology) Neighbors(i int) []int {
	at := T.Atom(i)
	ret := make([]int, 0, len(at.Bonds))
	for _, b := range at.Bonds {
		ret = append(ret, T.Bonds[b].Cross(i))
	}
	return ret
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

// IsHydrogen returns whether the atom i is a hydrogen.
func (T *Topology) IsHydrogen(i int) bool {
	return strings.EqualFold(T.Atom(i).Symbol, "H")
}

// FullName returns a "<MolID>.<Name>" identifier for the atom i.
func (T *Topology) FullName(i int) string {
	at := T.Atom(i)
	return fmt.Sprintf("%d.%s", at.MolID, at.Name)
}

// ResetTree clears the tree fields of all the atoms and the ring-closure flags
// of all the bonds.
func (T *Topology) ResetTree() {
	for _, a := range T.Atoms {
		a.ResetTree()
	}
	for _, b := range T.Bonds {
		b.RingClosure = false
	}
}
