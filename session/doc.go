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
Package session wires the pieces of goRefine into a refinement session for one molecule.

A Session owns the kinematic tree, the internal coordinate model, the generator of
repulsion pairs and the energy terms. It evaluates the energy at points of the normalized
angle space, with or without derivatives, regenerating the repulsion pairs every few
evaluations, and runs multi-pass refinements with any of the optimizers in optim.

A Session is not safe for concurrent use, but sessions over different molecules are
independent of each other, as all their configuration lives in their Options.
*/
package session
