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
Package optim drives the minimization of a scalar function of a vector of normalized
coordinates. It offers an evolutionary driver (CMA-ES) and a gradient driver (conjugate
gradients with a More-Thuente line search), both from gonum/optimize, behind a small
neutral Problem type.

Every evaluation goes through a Tracker, which keeps the lowest point ever evaluated.
For population-based methods the optimum reported by the library is a statistic of the
population, so the tracker's point is the one to restore. The drivers always return it,
also when the run fails.
*/
package optim
