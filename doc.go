/*
 * doc.go, part of gorefine.
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

/*
Package refine is the main package of the goRefine library. It provides the atom
arena (atoms, bonds and topologies indexed by small integers), the nonbonded
atom-type tables and the basic geometric functions used by the rest of the library.

Capabilities:

  - Builds a kinematic tree (a rooted spanning tree of the bond graph) for a molecule,
    setting ring-closing bonds aside as distance restraints (package kintree).
  - Represents the free dihedrals of a molecule, including the pseudorotation of
    five-membered rings, as a normalized parameter vector (package intcoord).
  - Enumerates atom pairs closer than a cutoff with a cell grid, and generates the
    steric repulsion pairs from them (package spatial).
  - Evaluates repulsion, distance restraint, force-field and base-stacking energies,
    with analytic derivatives (package energy).
  - Minimizes the energy over the dihedral space with an evolutionary (CMA-ES) or a
    conjugate-gradient optimizer from gonum (package optim).
  - Runs complete refinement sessions, with snapshot trajectories, metrics and
    logging (packages session, stf and chemplot).

goRefine uses the v3.Matrix type for coordinates, which is based on gonum's
mat.Dense. Each row of a v3.Matrix is one point in space.
*/
package refine
