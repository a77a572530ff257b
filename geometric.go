/*
 * geometric.go, part of gorefine.
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

package refine

import (
	"math"

	v3 "github.com/rmera/gorefine/v3"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero. This probably sucks.

// VecAngle takes 2 vectors and calculate the angle in radians between them
// It does not check for correctness or return errors!
func VecAngle(v1, v2 v3.Vec) float64 {
	normproduct := v1.Norm() * v2.Norm()
	if normproduct == 0 {
		return 0
	}
	argument := v1.Dot(v2) / normproduct
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

// Distance returns the distance between a and b.
func Distance(a, b v3.Vec) float64 {
	return math.Sqrt(a.Dist2(b))
}

// Angle returns the a-b-c angle, in radians.
func Angle(a, b, c v3.Vec) float64 {
	return VecAngle(a.Sub(b), c.Sub(b))
}

// Dihedral calculates the dihedral between the points a, b, c, d, where the first plane
// is defined by abc and the second by bcd. The result is in (-pi,pi].
func Dihedral(a, b, c, d v3.Vec) float64 {
	//bma=b minus a
	bma := b.Sub(a)
	cmb := c.Sub(b)
	dmc := d.Sub(c)
	bmascaled := bma.Scale(cmb.Norm())
	first := bmascaled.Dot(cmb.Cross(dmc))
	v1 := bma.Cross(cmb)
	v2 := cmb.Cross(dmc)
	second := v1.Dot(v2)
	return ReduceAngle(math.Atan2(first, second))
}

// DihedralAt is Dihedral for the atoms with indexes i, j, k, l in coords.
func DihedralAt(coords *v3.Matrix, i, j, k, l int) float64 {
	return Dihedral(coords.Vec(i), coords.Vec(j), coords.Vec(k), coords.Vec(l))
}

// RotateAbout rotates the point p by angle radians about the axis that goes from ax1 to ax2,
// following the right-hand rule.
func RotateAbout(p, ax1, ax2 v3.Vec, angle float64) v3.Vec {
	u := ax2.Sub(ax1).Unit()
	r := p.Sub(ax1)
	s, c := math.Sincos(angle)
	//Rodrigues
	rot := r.Scale(c).Add(u.Cross(r).Scale(s)).Add(u.Scale(u.Dot(r) * (1 - c)))
	return rot.Add(ax1)
}
