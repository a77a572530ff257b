/*
 * session.go, part of gorefine.
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

package session

import (
	"fmt"
	"io"
	"math"

	"github.com/google/uuid"
	"go.uber.org/zap"

	refine "github.com/rmera/gorefine"
	"github.com/rmera/gorefine/energy"
	"github.com/rmera/gorefine/intcoord"
	"github.com/rmera/gorefine/kintree"
	"github.com/rmera/gorefine/optim"
	"github.com/rmera/gorefine/spatial"
	v3 "github.com/rmera/gorefine/v3"
)

// Session is the refinement of one molecule.
type Session struct {
	ID     string
	Top    *refine.Topology
	Coords *v3.Matrix
	Tree   *kintree.Tree
	Model  *intcoord.Model

	opts    Options
	method  Method
	types   []*refine.AtomType
	gen     *spatial.Generator
	terms   [4]*energy.Term //indexed by energy.Kind
	swaps   [][2]int
	evals   int
	dirty   bool //the repulsion pairs must be regenerated before the next evaluation
	metrics *Metrics
	log     *zap.Logger
	trace   []optim.Report

	grad  *v3.Matrix //Cartesian gradient
	tgrad []float64  //derivatives with respect to the dihedral field of each atom
	dgrad []float64  //derivatives with respect to each degree of freedom
}

// New builds a session for the molecule top, with coordinates coords. The coordinates
// are used to measure the internal coordinates, and are then updated in place by the
// session. The bonds that close rings are kept closed by distance restraints.
func New(top *refine.Topology, coords *v3.Matrix, types *refine.AtomTypeTable, opts Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, refine.ErrDecorate(err, "New")
	}
	mode, _ := parseMode(opts.Mode)
	method, _ := ParseMethod(opts.Method)
	if types == nil {
		types = refine.DefaultAtomTypes()
	}
	resolved, err := types.Resolve(top)
	if err != nil {
		return nil, refine.ErrDecorate(err, "New")
	}
	tree, err := kintree.Build(top, coords, opts.Start, opts.End)
	if err != nil {
		return nil, refine.ErrDecorate(err, "New")
	}
	model, err := intcoord.New(top, tree.Rotatable(top), opts.Sites)
	if err != nil {
		return nil, refine.ErrDecorate(err, "New")
	}
	model.SetMode(mode)
	model.SetSigma(opts.Sigma, opts.BackboneFactor)
	if opts.CenterWidth > 0 {
		model.Center(opts.CenterWidth)
	}
	metrics, err := NewMetrics(opts.Registerer)
	if err != nil {
		return nil, newError("registering metrics", err, "New")
	}
	S := &Session{
		ID:      uuid.NewString(),
		Top:     top,
		Coords:  coords,
		Tree:    tree,
		Model:   model,
		opts:    opts,
		method:  method,
		types:   resolved,
		gen:     spatial.NewGenerator(top, resolved, tree.FixedPairs(top), opts.Spatial),
		dirty:   true,
		metrics: metrics,
		grad:    v3.Zeros(top.Len()),
		tgrad:   make([]float64, top.Len()),
		dgrad:   make([]float64, model.Len()),
	}
	for k := range S.terms {
		S.terms[k] = energy.NewTerm(energy.Kind(k))
	}
	S.terms[energy.ForceField].FF = opts.ForceField
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	S.log = log.With(zap.String("session", S.ID))
	for _, c := range tree.Closures {
		lo := math.Max(0, c.Dist-opts.ClosureTolerance)
		hi := c.Dist + opts.ClosureTolerance
		if _, err := S.terms[energy.Restraint].AddRestraint(c.I, c.J, lo, hi, opts.ClosureWeight, c.Dist, -1); err != nil {
			return nil, refine.ErrDecorate(err, "New")
		}
		S.gen.Restrain(c.I, c.J)
	}
	S.log.Info("session created", zap.Int("atoms", top.Len()), zap.Int("dofs", model.Len()),
		zap.Int("closures", len(tree.Closures)), zap.Stringer("mode", mode))
	return S, nil
}

// Term returns the energy term of the given kind.
func (S *Session) Term(k energy.Kind) *energy.Term { return S.terms[k] }

// Options returns the options of the session.
func (S *Session) Options() Options { return S.opts }

// Evals returns the number of energy evaluations so far.
func (S *Session) Evals() int { return S.evals }

func (S *Session) checkAtoms(caller string, atoms ...int) error {
	for _, a := range atoms {
		if a < 0 || a >= S.Top.Len() {
			return newError(fmt.Sprintf("atom %d, topology has %d", a, S.Top.Len()), ErrUnknownAtom, caller)
		}
	}
	return nil
}

// AddDistanceRestraint restrains the distance between atoms i and j to [lo, hi].
// Restraints with the same non-negative group are ambiguous, and evaluated together
// with an r^-6 averaged distance. No repulsion is applied to restrained pairs.
func (S *Session) AddDistanceRestraint(i, j int, lo, hi, weight, target float64, group int) error {
	if err := S.checkAtoms("AddDistanceRestraint", i, j); err != nil {
		return err
	}
	if _, err := S.terms[energy.Restraint].AddRestraint(i, j, lo, hi, weight, target, group); err != nil {
		return refine.ErrDecorate(err, "AddDistanceRestraint")
	}
	S.gen.Restrain(i, j)
	S.dirty = true
	return nil
}

// AddStacking adds a stacking interaction between atoms (or pseudoatoms) i and j.
func (S *Session) AddStacking(i, j int, weight float64) error {
	if err := S.checkAtoms("AddStacking", i, j); err != nil {
		return err
	}
	S.terms[energy.Stacking].AddStacking(i, j, weight)
	return nil
}

// AddForceFieldPair adds a force-field interaction between i and j. The minimum
// distance is the sum of the ideal radii of their types, the well depth the geometric
// mean of the type well depths, and the charges are those of the atoms.
func (S *Session) AddForceFieldPair(i, j int, weight float64) error {
	if err := S.checkAtoms("AddForceFieldPair", i, j); err != nil {
		return err
	}
	ti, tj := S.types[i], S.types[j]
	rm := ti.IdealRadius + tj.IdealRadius
	eps := math.Sqrt(ti.WellDepth * tj.WellDepth)
	qq := S.Top.Atom(i).Charge * S.Top.Atom(j).Charge
	S.terms[energy.ForceField].AddForceField(i, j, rm, eps, qq, weight)
	return nil
}

// AddSwapPair marks atoms i and j as interchangeable, so the refinement may swap their
// labels in the restraints.
func (S *Session) AddSwapPair(i, j int) error {
	if err := S.checkAtoms("AddSwapPair", i, j); err != nil {
		return err
	}
	if i == j {
		return newError(fmt.Sprintf("atom %d can't be swapped with itself", i), ErrUnknownAtom, "AddSwapPair")
	}
	S.Top.Atom(i).Swap = j
	S.Top.Atom(j).Swap = i
	S.swaps = append(S.swaps, [2]int{i, j})
	return nil
}

// AddDihedralBoundary sets the boundaries, in radians, of the angle with the given name.
// If weight is positive, the angle is also kept within the boundaries by a soft restraint.
func (S *Session) AddDihedralBoundary(name string, lower, upper, weight float64) error {
	i := S.Model.Index(name)
	if i < 0 {
		return newError(fmt.Sprintf("no angle %q", name), intcoord.ErrUnknownAngle, "AddDihedralBoundary")
	}
	if err := S.Model.SetBoundary(i, lower, upper); err != nil {
		return refine.ErrDecorate(err, "AddDihedralBoundary")
	}
	if weight > 0 {
		if err := S.Model.AddAngleRestraint(name, lower, upper, weight); err != nil {
			return refine.ErrDecorate(err, "AddDihedralBoundary")
		}
	}
	return nil
}

// SetAngles sets the angles of the model and recomputes the coordinates.
func (S *Session) SetAngles(values []float64) error {
	if len(values) != S.Model.Len() {
		return newError(fmt.Sprintf("%d angles given, %d expected", len(values), S.Model.Len()), ErrInvalidOptions, "SetAngles")
	}
	S.Model.SetValues(values)
	S.place()
	return nil
}

// place writes the angles to the atoms and recomputes the coordinates.
func (S *Session) place() {
	S.Model.Write()
	S.Tree.Place(S.Top, S.Coords)
}

// rebuild regenerates the repulsion pairs from the current coordinates.
func (S *Session) rebuild() {
	n := S.gen.Generate(S.Coords, S.terms[energy.Repulsion])
	S.dirty = false
	S.metrics.Rebuilds.Inc()
	S.log.Debug("repulsion pairs regenerated", zap.Int("pairs", n), zap.Int("evaluation", S.evals))
}

// energy returns the energy for the current coordinates. If deriv is true, it also
// leaves the derivatives with respect to each degree of freedom in S.dgrad.
func (S *Session) energy(deriv bool) float64 {
	if S.dirty || S.evals%S.opts.RebuildEvery == 0 {
		S.rebuild()
	}
	S.evals++
	S.metrics.Evaluations.Inc()
	var e float64
	for _, t := range S.terms {
		if t.Len() == 0 {
			continue
		}
		e += t.CalcEnergy(S.Coords, deriv, S.opts.Weights.of(t.Kind))
	}
	if !deriv {
		return e + S.Model.RestraintEnergy(nil)
	}
	S.grad.Zero()
	for _, t := range S.terms {
		t.Forces(S.Coords, S.grad)
	}
	S.tgrad = S.Tree.TorsionGradient(S.Top, S.Coords, S.grad, S.tgrad)
	for i := range S.dgrad {
		S.dgrad[i] = 0
	}
	S.Model.TorsionGradient(S.dgrad, S.tgrad)
	return e + S.Model.RestraintEnergy(S.dgrad)
}

// Energy returns the energy of the current coordinates.
func (S *Session) Energy() float64 {
	return S.energy(false)
}

// EnergyWithDerivative returns the energy of the current coordinates, and puts in
// dtheta (allocated if nil or of the wrong length) the derivative of the energy with
// respect to each angle of the model.
func (S *Session) EnergyWithDerivative(dtheta []float64) (float64, []float64) {
	e := S.energy(true)
	if len(dtheta) != len(S.dgrad) {
		dtheta = make([]float64, len(S.dgrad))
	}
	copy(dtheta, S.dgrad)
	return e, dtheta
}

// CartesianGradient returns a copy of the Cartesian gradient from the last evaluation
// with derivatives.
func (S *Session) CartesianGradient() *v3.Matrix {
	return S.grad.Clone()
}

// Evaluate returns the energy at the point x of the normalized angle space.
// The coordinates are left at x.
func (S *Session) Evaluate(x []float64) float64 {
	S.Model.Denormalize(x)
	S.place()
	return S.energy(false)
}

// EvaluateGrad puts in grad the gradient of the energy at the point x of the normalized
// angle space.
func (S *Session) EvaluateGrad(grad, x []float64) {
	S.Model.Denormalize(x)
	S.place()
	S.energy(true)
	S.Model.NormGradient(grad, x, S.dgrad)
}

// Problem returns the energy of the session as an optimization problem over the
// normalized angle space.
func (S *Session) Problem() optim.Problem {
	return optim.Problem{Func: S.Evaluate, Grad: S.EvaluateGrad}
}

// DumpAngles writes the current angles, one "<name> <degrees>" line each.
func (S *Session) DumpAngles(w io.Writer) error {
	return refine.ErrDecorate(S.Model.Dump(w), "DumpAngles")
}

// ReadAngles reads angles written by DumpAngles, and recomputes the coordinates.
func (S *Session) ReadAngles(r io.Reader) error {
	if err := S.Model.ReadDump(r); err != nil {
		return refine.ErrDecorate(err, "ReadAngles")
	}
	S.place()
	return nil
}

// Violations returns the restraint and repulsion violations larger than
// the ViolationLimit option, for the current coordinates.
func (S *Session) Violations() []energy.Violation {
	var ret []energy.Violation
	for _, k := range []energy.Kind{energy.Restraint, energy.Repulsion} {
		t := S.terms[k]
		w := S.opts.Weights.of(k)
		t.CalcEnergy(S.Coords, false, w)
		ret = append(ret, t.Violations(S.opts.ViolationLimit, w)...)
	}
	return ret
}

// RestraintReport writes a table with the distance restraints of the session,
// followed by a summary of the current violations.
func (S *Session) RestraintReport(w io.Writer) error {
	if err := S.terms[energy.Restraint].WriteReport(w, S.Top.FullName); err != nil {
		return refine.ErrDecorate(err, "RestraintReport")
	}
	_, err := fmt.Fprintf(w, "# %s\n", energy.Summarize(S.Violations()))
	if err != nil {
		return newError("writing report", err, "RestraintReport")
	}
	return nil
}

// Trace returns the progress reports of the last refinement.
func (S *Session) Trace() []optim.Report {
	return append([]optim.Report(nil), S.trace...)
}
