/*
 * model.go, part of gorefine.
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

package intcoord

import (
	"fmt"
	"math"

	refine "github.com/rmera/gorefine"
)

// DefaultBackboneFactor divides the step size of backbone dihedrals, which move
// much more of the molecule than side chain ones.
const DefaultBackboneFactor = 4.0

// Kind of degree of freedom
type Kind int

const (
	Torsion Kind = iota
	Phase
	Amplitude
)

// DOF is one free parameter of the model.
type DOF struct {
	Name     string
	Kind     Kind
	Atom     int //The atom that owns the dihedral, or -1 for pseudorotation parameters
	Site     int //The pseudorotation site, or -1
	Lower    float64
	Upper    float64
	Sigma    float64
	Backbone bool
}

// Model is the internal coordinate model of one molecule.
type Model struct {
	top        *refine.Topology
	dofs       []DOF
	values     []float64
	sites      []PseudoSite
	mode       Mode
	byName     map[string]int
	byAtom     map[int]int
	restraints []angleRestraint
}

// New builds a model with one degree of freedom for each atom in rotatable (as given
// by kintree.Tree.Rotatable) not owned by a pseudorotation site, plus phase and amplitude
// for each site. The boundaries are the full circle, and the values are read from the atoms.
func New(top *refine.Topology, rotatable []int, sites []PseudoSite) (*Model, error) {
	M := &Model{
		top:    top,
		sites:  sites,
		mode:   SinCos,
		byName: make(map[string]int),
		byAtom: make(map[int]int),
	}
	owned := make(map[int]bool)
	for _, s := range sites {
		seen := make(map[int]bool)
		for _, a := range s.Atoms {
			if a < 0 || a >= top.Len() || seen[a] {
				return nil, &Error{fmt.Sprintf("invalid atom %d in pseudorotation site %s", a, s.Name), []string{"New"}, true, nil}
			}
			seen[a] = true
			owned[a] = true
		}
	}
	for _, a := range rotatable {
		if owned[a] {
			continue
		}
		at := top.Atom(a)
		M.add(DOF{Name: top.FullName(a), Kind: Torsion, Atom: a, Site: -1, Backbone: at.Flags.Has(refine.Backbone)})
		M.byAtom[a] = len(M.dofs) - 1
	}
	for i, s := range sites {
		M.add(DOF{Name: s.Name + ":phase", Kind: Phase, Atom: -1, Site: i})
		M.add(DOF{Name: s.Name + ":amplitude", Kind: Amplitude, Atom: -1, Site: i})
	}
	M.values = make([]float64, len(M.dofs))
	M.SetFullCircle()
	M.SetSigma(1, DefaultBackboneFactor)
	M.Read()
	return M, nil
}

func (M *Model) add(d DOF) {
	M.byName[d.Name] = len(M.dofs)
	M.dofs = append(M.dofs, d)
}

// Len returns the number of degrees of freedom
func (M *Model) Len() int { return len(M.dofs) }

// DOF returns a copy of the ith degree of freedom.
func (M *Model) DOF(i int) DOF { return M.dofs[i] }

// Index returns the index of the degree of freedom with the given name, or -1.
func (M *Model) Index(name string) int {
	i, ok := M.byName[name]
	if !ok {
		return -1
	}
	return i
}

// AtomIndex returns the index of the degree of freedom owned by the atom a, or -1.
func (M *Model) AtomIndex(a int) int {
	i, ok := M.byAtom[a]
	if !ok {
		return -1
	}
	return i
}

// Values returns a copy of the current angle vector.
func (M *Model) Values() []float64 {
	return append([]float64(nil), M.values...)
}

// SetValues copies v into the angle vector. Torsions and phases are reduced to (-pi,pi].
// It panics if v does not have Len elements.
func (M *Model) SetValues(v []float64) {
	if len(v) != len(M.values) {
		panic(refine.ErrIndexOutOfRange)
	}
	for i, x := range v {
		if M.dofs[i].Kind != Amplitude {
			x = refine.ReduceAngle(x)
		}
		M.values[i] = x
	}
}

// Read pulls the dihedral fields of the atoms into the angle vector.
func (M *Model) Read() {
	for i, d := range M.dofs {
		switch d.Kind {
		case Torsion:
			M.values[i] = refine.ReduceAngle(M.top.Atom(d.Atom).Dihedral)
		case Phase:
			s := M.sites[d.Site]
			p, a := Torsions2Pseudo(M.top.Atom(s.Atoms[2]).Dihedral, M.top.Atom(s.Atoms[3]).Dihedral)
			M.values[i] = p
			M.values[i+1] = a
		}
	}
}

// Write sets the dihedral fields of the atoms from the angle vector.
// The caller must recompute the coordinates afterwards.
func (M *Model) Write() {
	for i, d := range M.dofs {
		switch d.Kind {
		case Torsion:
			M.top.Atom(d.Atom).Dihedral = M.values[i]
		case Phase:
			s := M.sites[d.Site]
			nu := Pseudo2Torsions(M.values[i], M.values[i+1])
			for k, a := range s.Atoms {
				M.top.Atom(a).Dihedral = nu[k]
			}
		}
	}
}

// TorsionGradient converts the derivatives with respect to the dihedral field of each
// atom (as given by kintree.Tree.TorsionGradient) into derivatives with respect
// to the model parameters, and adds them to dst.
func (M *Model) TorsionGradient(dst, atomGrad []float64) {
	if len(dst) != len(M.dofs) {
		panic(refine.ErrIndexOutOfRange)
	}
	for i, d := range M.dofs {
		switch d.Kind {
		case Torsion:
			dst[i] += atomGrad[d.Atom]
		case Phase:
			s := M.sites[d.Site]
			P, A := M.values[i], M.values[i+1]
			for k, a := range s.Atoms {
				arg := P + float64(k-2)*step144
				dst[i] += atomGrad[a] * (-A * math.Sin(arg))
				dst[i+1] += atomGrad[a] * math.Cos(arg)
			}
		}
	}
}

// SetSigma sets the step size of every degree of freedom to base, divided by
// backboneFactor for backbone dihedrals.
func (M *Model) SetSigma(base, backboneFactor float64) {
	if backboneFactor <= 0 {
		backboneFactor = 1
	}
	for i := range M.dofs {
		M.dofs[i].Sigma = base
		if M.dofs[i].Backbone {
			M.dofs[i].Sigma = base / backboneFactor
		}
	}
}

// SetFullCircle sets the boundaries of every torsion and phase to (-pi, pi], and
// those of the amplitudes to [0, MaxAmplitude].
func (M *Model) SetFullCircle() {
	for i := range M.dofs {
		if M.dofs[i].Kind == Amplitude {
			M.dofs[i].Lower, M.dofs[i].Upper = 0, MaxAmplitude
			continue
		}
		M.dofs[i].Lower, M.dofs[i].Upper = -math.Pi, math.Pi
	}
}

// Center sets the boundaries of every torsion and phase to the current value
// plus/minus halfWidth. Amplitudes are not affected.
func (M *Model) Center(halfWidth float64) {
	halfWidth = math.Min(math.Abs(halfWidth), math.Pi)
	for i := range M.dofs {
		if M.dofs[i].Kind == Amplitude {
			continue
		}
		M.dofs[i].Lower = M.values[i] - halfWidth
		M.dofs[i].Upper = M.values[i] + halfWidth
	}
}

// SetBoundary sets the boundaries of the degree of freedom i.
func (M *Model) SetBoundary(i int, lower, upper float64) error {
	if i < 0 || i >= len(M.dofs) {
		return &Error{fmt.Sprintf("no degree of freedom %d", i), []string{"SetBoundary"}, true, ErrUnknownAngle}
	}
	if lower > upper {
		return &Error{fmt.Sprintf("%s: %.3f > %.3f", M.dofs[i].Name, lower, upper), []string{"SetBoundary"}, true, ErrInvalidBounds}
	}
	if upper-lower > 2*math.Pi {
		upper = lower + 2*math.Pi
	}
	M.dofs[i].Lower, M.dofs[i].Upper = lower, upper
	return nil
}
