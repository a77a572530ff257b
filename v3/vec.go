/*
 * vec.go, part of gorefine.
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

package v3

import "math"

// Vec is one point (or direction) in 3D space.
type Vec [3]float64

func (a Vec) Add(b Vec) Vec {
	return Vec{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a Vec) Sub(b Vec) Vec {
	return Vec{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func (a Vec) Scale(f float64) Vec {
	return Vec{a[0] * f, a[1] * f, a[2] * f}
}

func (a Vec) Dot(b Vec) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Cross returns the cross product a x b
func (a Vec) Cross(b Vec) Vec {
	return Vec{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

// Norm returns the euclidean norm of a
func (a Vec) Norm() float64 {
	return math.Sqrt(a.Dot(a))
}

// Unit returns a normalized copy of a. The zero vector is returned as is.
func (a Vec) Unit() Vec {
	n := a.Norm()
	if n == 0 {
		return a
	}
	return a.Scale(1 / n)
}

// Dist2 returns the squared distance between a and b
func (a Vec) Dist2(b Vec) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}
