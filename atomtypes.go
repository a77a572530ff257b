/*
 * atomtypes.go, part of gorefine.
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
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// HBond roles
const (
	Acceptor = -1
	NoHBond  = 0
	Donor    = 1
)

// DefaultHardScale is the fraction of the van der Waals radius used as hard-sphere
// radius for the element-based default types.
const DefaultHardScale = 0.8

// AtomType contains the nonbonded parameters for one atom type.
type AtomType struct {
	Name        string
	HardRadius  float64 //A, used for steric repulsion
	IdealRadius float64 //A, the LJ minimum is at the sum of both ideal radii
	WellDepth   float64 //kcal/mol
	Mass        float64
	HBond       int //Donor, Acceptor or NoHBond
}

// AtomTypeTable maps type codes to their parameters. It is loaded once and only read afterwards.
type AtomTypeTable struct {
	types map[string]*AtomType
}

// NewAtomTypeTable returns an empty table.
func NewAtomTypeTable() *AtomTypeTable {
	return &AtomTypeTable{types: make(map[string]*AtomType)}
}

// Add adds t to the table, replacing any type with the same name.
func (A *AtomTypeTable) Add(t AtomType) {
	A.types[t.Name] = &t
}

// Len returns the number of types in the table
func (A *AtomTypeTable) Len() int {
	return len(A.types)
}

// Names returns the sorted names of all the types in the table.
func (A *AtomTypeTable) Names() []string {
	ret := make([]string, 0, len(A.types))
	for k := range A.types {
		ret = append(ret, k)
	}
	sort.Strings(ret)
	return ret
}

// Get returns the type with the given name.
func (A *AtomTypeTable) Get(name string) (*AtomType, error) {
	t, ok := A.types[name]
	if !ok {
		return nil, NewError(fmt.Sprintf("type %q", name), ErrUnknownType, "AtomTypeTable.Get")
	}
	return t, nil
}

// Lookup returns the type of at. The element symbol is used when the atom
// has no type code.
func (A *AtomTypeTable) Lookup(at *Atom) (*AtomType, error) {
	name := at.Type
	if name == "" {
		name = at.Symbol
	}
	t, err := A.Get(name)
	if err != nil {
		return nil, ErrDecorate(err, fmt.Sprintf("Lookup: atom %s", at.Name))
	}
	return t, nil
}

// Resolve looks up the types of all the atoms in the topology and returns them
// as a slice parallel to the atoms.
func (A *AtomTypeTable) Resolve(top Atomer) ([]*AtomType, error) {
	ret := make([]*AtomType, top.Len())
	for i := range ret {
		t, err := A.Lookup(top.Atom(i))
		if err != nil {
			return nil, ErrDecorate(err, "Resolve")
		}
		ret[i] = t
	}
	return ret, nil
}

// DefaultAtomTypes returns a table with one type per element, named as the element symbol,
// built from the element data tables.
func DefaultAtomTypes() *AtomTypeTable {
	A := NewAtomTypeTable()
	for sym, vdw := range symbolVdwrad {
		well, ok := symbolWell[sym]
		if !ok {
			well = 0.1
		}
		hb := NoHBond
		if sym == "O" {
			hb = Acceptor
		}
		A.Add(AtomType{
			Name:        sym,
			HardRadius:  vdw * DefaultHardScale,
			IdealRadius: vdw,
			WellDepth:   well,
			Mass:        symbolMass[sym],
			HBond:       hb,
		})
	}
	return A
}

// ReadAtomTypes reads a parameter file with one type per line:
//
//	type hardRadius idealRadius wellDepth mass hbond
//
// Everything after a '#' is ignored, as are empty lines.
func ReadAtomTypes(r io.Reader) (*AtomTypeTable, error) {
	A := NewAtomTypeTable()
	scan := bufio.NewScanner(r)
	line := 0
	for scan.Scan() {
		line++
		text := scan.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 6 {
			return nil, NewError(fmt.Sprintf("line %d: expected 6 fields, got %d", line, len(fields)), nil, "ReadAtomTypes")
		}
		var vals [4]float64
		for i := range vals {
			v, err := strconv.ParseFloat(fields[i+1], 64)
			if err != nil {
				return nil, NewError(fmt.Sprintf("line %d", line), err, "ReadAtomTypes")
			}
			vals[i] = v
		}
		hb, err := strconv.Atoi(fields[5])
		if err != nil || hb < -1 || hb > 1 {
			return nil, NewError(fmt.Sprintf("line %d: invalid hydrogen bond role %q", line, fields[5]), err, "ReadAtomTypes")
		}
		A.Add(AtomType{Name: fields[0], HardRadius: vals[0], IdealRadius: vals[1], WellDepth: vals[2], Mass: vals[3], HBond: hb})
	}
	if err := scan.Err(); err != nil {
		return nil, NewError("reading types", err, "ReadAtomTypes")
	}
	return A, nil
}
