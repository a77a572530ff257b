/*
 * graph.go, part of gorefine.
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
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/iterator"

	refine "github.com/rmera/gorefine"
)

// atomNode is an atom, identified by its index in the topology.
type atomNode int64

func (a atomNode) ID() int64 { return int64(a) }

// bondEdge implements graph.Edge. Bonds are not directional, so the reversed
// edge is just the same bond seen from the other end.
type bondEdge struct {
	from, to atomNode
	index    int
}

func (B bondEdge) From() graph.Node { return B.from }

func (B bondEdge) To() graph.Node { return B.to }

func (B bondEdge) ReversedEdge() graph.Edge {
	return bondEdge{from: B.to, to: B.from, index: B.index}
}

// bondGraph implements gonum's graph.Undirected over the bonds of a topology.
// Neighbors are returned in a fixed order, so traversals are reproducible.
type bondGraph struct {
	adj   [][]int //neighbors of each atom
	bonds [][]int //bond index for each entry in adj
}

func newBondGraph(top *refine.Topology) *bondGraph {
	n := top.Len()
	g := &bondGraph{adj: make([][]int, n), bonds: make([][]int, n)}
	for i := 0; i < n; i++ {
		for _, b := range top.Atom(i).Bonds {
			g.adj[i] = append(g.adj[i], top.BondAt(b).Cross(i))
			g.bonds[i] = append(g.bonds[i], b)
		}
	}
	g.sortBy(nil)
	return g
}

// sortBy orders the neighbors of every atom by increasing weight, then by index.
// A nil weight slice orders by index only.
func (g *bondGraph) sortBy(weight []float64) {
	for i := range g.adj {
		s := &neighSorter{adj: g.adj[i], bonds: g.bonds[i], weight: weight}
		sort.Sort(s)
	}
}

type neighSorter struct {
	adj, bonds []int
	weight     []float64
}

func (s *neighSorter) Len() int { return len(s.adj) }

func (s *neighSorter) Less(i, j int) bool {
	a, b := s.adj[i], s.adj[j]
	if s.weight != nil && s.weight[a] != s.weight[b] {
		return s.weight[a] < s.weight[b]
	}
	return a < b
}

func (s *neighSorter) Swap(i, j int) {
	s.adj[i], s.adj[j] = s.adj[j], s.adj[i]
	s.bonds[i], s.bonds[j] = s.bonds[j], s.bonds[i]
}

func (g *bondGraph) Node(id int64) graph.Node {
	if id < 0 || int(id) >= len(g.adj) {
		return nil
	}
	return atomNode(id)
}

func (g *bondGraph) Nodes() graph.Nodes {
	nodes := make([]graph.Node, len(g.adj))
	for i := range nodes {
		nodes[i] = atomNode(i)
	}
	return iterator.NewOrderedNodes(nodes)
}

func (g *bondGraph) From(id int64) graph.Nodes {
	if id < 0 || int(id) >= len(g.adj) {
		return graph.Empty
	}
	nodes := make([]graph.Node, len(g.adj[id]))
	for i, v := range g.adj[id] {
		nodes[i] = atomNode(v)
	}
	return iterator.NewOrderedNodes(nodes)
}

func (g *bondGraph) HasEdgeBetween(xid, yid int64) bool {
	return g.Edge(xid, yid) != nil
}

func (g *bondGraph) Edge(uid, vid int64) graph.Edge {
	if uid < 0 || int(uid) >= len(g.adj) {
		return nil
	}
	for i, v := range g.adj[uid] {
		if int64(v) == vid {
			return bondEdge{from: atomNode(uid), to: atomNode(vid), index: g.bonds[uid][i]}
		}
	}
	return nil
}

func (g *bondGraph) EdgeBetween(xid, yid int64) graph.Edge {
	return g.Edge(xid, yid)
}

func (g *bondGraph) degree(i int) int {
	return len(g.adj[i])
}
