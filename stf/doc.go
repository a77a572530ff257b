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
Package stf reads and writes snapshot trajectories: the Cartesian coordinates of a
molecule at successive points of a refinement, each frame tagged with its energy
and iteration number.

# Format

A snapshot file is a text file compressed with z-standard (zstd), and may only contain
ASCII symbols.

The file starts with a header of key=value lines, ending with a line that starts with
"**" followed by one or more spaces and the number of atoms per frame. The header always
contains the precision, under the key "prec", and may contain other keys (for instance,
the ID of the session that produced the file).

After the header, each frame has one line per atom with 3 integers: the x, y and z
coordinates in Angstrom multiplied by 10 to the power of the precision, and rounded.
The frame ends with a line starting with "*", followed by the energy of the frame and the
iteration at which it was taken, separated by spaces. The "**" sequence only appears
at the end of the header.
*/
package stf
