/*
 * build.go, part of gorefine.
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

package kintree

import (
	"fmt"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	refine "github.com/rmera/gorefine"
	v3 "github.com/rmera/gorefine/v3"
)

// EndBoost is added to the weight of the end atom, so the path that leads to it
// is always the heaviest, and is placed last.
const EndBoost = 1000.0

// Branch is a set of atoms that share a parent (the root of the branch).
// Context holds the grandparent of the root, the parent of the root and the root itself,
// or -1 where those do not exist. The kinematic scalars of each atom in Atoms
// are defined with respect to the Context atoms.
type Branch struct {
	Context [3]int
	Atoms   []int
}

// Root returns the branch root, i.e. the parent of all the atoms in the branch.
func (B Branch) Root() int { return B.Context[2] }

// Complete returns true if all the context atoms exist, so the dihedrals of the
// branch atoms are defined.
func (B Branch) Complete() bool {
	return B.Context[0] >= 0 && B.Context[1] >= 0 && B.Context[2] >= 0
}

// Closure is a bond that was left out of the tree to break a ring.
// Dist is the I-J distance in the coordinates given to Build.
type Closure struct {
	I, J int
	Bond int
	Dist float64
}

// Tree is a rooted spanning tree of the bond graph of a topology.
type Tree struct {
	Start, End int
	Order      []int //Atoms in shell (breadth-first) order
	Parent     []int
	Depth      []int
	Branches   []Branch
	Closures   []Closure

	children [][]int
	prev     []int //previous sibling, or -1
}

// Build builds the kinematic tree of top, starting from the atom start.
// If start is -1, the lowest-index atom with only one bond is used. If end is not -1,
// the path from start to end is placed last in every shell, so it is the
// "main chain" of the tree.
// Build sets the tree fields of the atoms in top, flags the ring-closing bonds, adds
// the Ring flag to every atom in a closed ring, and measures the internal coordinates from coords.
func Build(top *refine.Topology, coords *v3.Matrix, start, end int) (*Tree, error) {
	n := top.Len()
	if n == 0 {
		return nil, newError("empty topology", ErrNoStartAtom, "Build")
	}
	if coords.NVecs() != n {
		panic(v3.ErrShape)
	}
	g := newBondGraph(top)
	if start == -1 {
		start = autoStart(g)
		if start < 0 {
			return nil, newError("no atom with exactly one bond", ErrNoStartAtom, "Build")
		}
	}
	if start < 0 || start >= n {
		return nil, newError(fmt.Sprintf("start atom %d for %d atoms", start, n), ErrUnreachable, "Build")
	}
	if g.degree(start) != 1 && !(n == 1 && g.degree(start) == 0) {
		return nil, newError(fmt.Sprintf("start atom %d has %d bonds", start, g.degree(start)), ErrNoStartAtom, "Build")
	}
	if end < -1 || end >= n {
		return nil, newError(fmt.Sprintf("end atom %d for %d atoms", end, n), ErrUnreachable, "Build")
	}
	if comps := topo.ConnectedComponents(g); len(comps) > 1 {
		return nil, newError(fmt.Sprintf("%d connected components", len(comps)), ErrDisconnected, "Build")
	}
	top.ResetTree()

	//First pass, only to get the shells and the weights.
	first := walk(g, start)
	weight := make([]float64, n)
	for i := range weight {
		z := refine.AtomicNumber(top.Atom(i).Symbol)
		if z == 0 {
			z = 1
		}
		weight[i] = float64(z)
	}
	if end >= 0 {
		weight[end] += EndBoost
	}
	for k := len(first.order) - 1; k > 0; k-- {
		a := first.order[k]
		weight[first.parent[a]] += weight[a]
	}
	g.sortBy(weight)
	final := walk(g, start)

	T := &Tree{
		Start:    start,
		End:      end,
		Order:    final.order,
		Parent:   final.parent,
		Depth:    final.depth,
		children: make([][]int, n),
		prev:     make([]int, n),
	}
	for i := range T.prev {
		T.prev[i] = -1
	}
	for _, a := range T.Order[1:] {
		p := T.Parent[a]
		if c := T.children[p]; len(c) > 0 {
			T.prev[a] = c[len(c)-1]
		}
		T.children[p] = append(T.children[p], a)
	}
	T.buildBranches(top)
	T.findClosures(top, coords)
	T.Measure(top, coords)
	return T, nil
}

func autoStart(g *bondGraph) int {
	if len(g.adj) == 1 {
		return 0
	}
	for i := range g.adj {
		if g.degree(i) == 1 {
			return i
		}
	}
	return -1
}

type walkResult struct {
	order  []int
	parent []int
	depth  []int
}

// walk does a breadth-first traversal of g from start. The parent of each
// atom is the atom from which it was first reached, so depths are shell numbers.
func walk(g *bondGraph, start int) walkResult {
	n := len(g.adj)
	r := walkResult{order: make([]int, 0, n), parent: make([]int, n), depth: make([]int, n)}
	seen := make([]bool, n)
	for i := range r.parent {
		r.parent[i] = -1
	}
	seen[start] = true
	bf := traverse.BreadthFirst{
		Traverse: func(e graph.Edge) bool {
			from, to := int(e.From().ID()), int(e.To().ID())
			//an atom is reached once, and queued right away
			if !seen[to] {
				seen[to] = true
				r.parent[to] = from
				r.depth[to] = r.depth[from] + 1
			}
			return true
		},
		Visit: func(node graph.Node) {
			r.order = append(r.order, int(node.ID()))
		},
	}
	bf.Walk(g, atomNode(start), nil)
	return r
}

// buildBranches groups the atoms by parent, in shell order.
func (T *Tree) buildBranches(top *refine.Topology) {
	for _, p := range T.Order {
		ch := T.children[p]
		if len(ch) == 0 {
			continue
		}
		b := Branch{Context: [3]int{-1, -1, p}, Atoms: append([]int(nil), ch...)}
		if g := T.Parent[p]; g >= 0 {
			b.Context[1] = g
			b.Context[0] = T.Parent[g]
		}
		for _, a := range ch {
			at := top.Atom(a)
			at.Parent = p
			at.Branch = len(T.Branches)
			if b.Complete() {
				at.Group = ch[0]
			}
		}
		T.Branches = append(T.Branches, b)
	}
}

// findClosures flags the bonds not used by the tree.
func (T *Tree) findClosures(top *refine.Topology, coords *v3.Matrix) {
	for _, b := range top.Bonds {
		if T.Parent[b.At1] == b.At2 || T.Parent[b.At2] == b.At1 {
			continue
		}
		b.RingClosure = true
		T.Closures = append(T.Closures, Closure{
			I:    b.At1,
			J:    b.At2,
			Bond: b.Index,
			Dist: refine.Distance(coords.Vec(b.At1), coords.Vec(b.At2)),
		})
		for _, a := range T.ringPath(b.At1, b.At2) {
			top.Atom(a).Flags |= refine.Ring
		}
	}
}

// ringPath returns the atoms in the tree path between i and j, both included.
func (T *Tree) ringPath(i, j int) []int {
	ret := []int{}
	for T.Depth[i] > T.Depth[j] {
		ret = append(ret, i)
		i = T.Parent[i]
	}
	for T.Depth[j] > T.Depth[i] {
		ret = append(ret, j)
		j = T.Parent[j]
	}
	for i != j {
		ret = append(ret, i, j)
		i, j = T.Parent[i], T.Parent[j]
	}
	return append(ret, i)
}

// Len returns the number of atoms in the tree.
func (T *Tree) Len() int { return len(T.Order) }

// Children returns the children of the atom i, in placement order.
func (T *Tree) Children(i int) []int { return T.children[i] }

// PrevSibling returns the sibling placed right before i, or -1 if i is the first child of its parent.
func (T *Tree) PrevSibling(i int) int { return T.prev[i] }

// Anchor returns true if the atom i does not have a complete context (i.e. it is
// too close to the start atom) so it keeps its Cartesian position.
func (T *Tree) Anchor(i int) bool { return T.Depth[i] < 3 }

// Axis returns the atoms g, p that define the rotation axis for the dihedral of the atom i,
// or -1, -1 for anchors.
func (T *Tree) Axis(i int) (g, p int) {
	if T.Anchor(i) {
		return -1, -1
	}
	p = T.Parent[i]
	return T.Parent[p], p
}
