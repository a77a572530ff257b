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
Package intcoord implements the internal-coordinate model of goRefine: the vector of
free dihedral angles of a molecule, which is what the optimizers actually move.

Each rotatable dihedral of the kinematic tree is one degree of freedom. The five
endocyclic dihedrals of a furanose-like ring can instead be represented by the two
pseudorotation parameters, phase and amplitude (Altona and Sundaralingam, JACS 94, 8205 (1972)).

The model reads and writes the dihedral fields of the atoms, but it never touches Cartesian
coordinates: the caller must run the forward kinematics (kintree.Tree.Place) after Write.

For the optimizers, the angles are mapped to a normalized space, either as
(100 sin, 100 cos) pairs, or rescaled to [0,100] within a boundary.
*/
package intcoord
