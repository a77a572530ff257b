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
Package energy implements the energy terms of goRefine. Each Term holds a table of
atom pairs that interact through one potential: steric repulsion, distance restraints
(optionally grouped, with r^-6 averaging, for ambiguous assignments), a switched
Lennard-Jones/Coulomb force field, or base stacking.

A Term never moves atoms. It reads the coordinates, returns the energy and stores the
derivative of the energy with respect to the distance of each pair, which Forces
turns into Cartesian gradients.
*/
package energy
