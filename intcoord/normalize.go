/*
 * normalize.go, part of gorefine.
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

package intcoord

import (
	"math"

	refine "github.com/rmera/gorefine"
)

// Mode selects how angles are mapped to the normalized space seen by the optimizers.
type Mode int

const (
	//SinCos maps each angle to (100 sin, 100 cos). It doubles the number of parameters,
	//but it is always well defined.
	SinCos Mode = iota
	//Boundary rescales each angle to [0,100] within its boundaries.
	Boundary
)

const normScale = 100.0

func (m Mode) String() string {
	if m == Boundary {
		return "boundary"
	}
	return "sincos"
}

// SetMode selects the normalization mode.
func (M *Model) SetMode(m Mode) { M.mode = m }

// Mode returns the normalization mode.
func (M *Model) Mode() Mode { return M.mode }

// NormLen returns the length of the normalized vector.
func (M *Model) NormLen() int {
	if M.mode == SinCos {
		return 2 * len(M.dofs)
	}
	return len(M.dofs)
}

// width returns the width of the boundary of the degree of freedom i.
func (M *Model) width(i int) float64 {
	return M.dofs[i].Upper - M.dofs[i].Lower
}

// Normalize puts the normalized angle vector in dst, which is allocated if nil, and returns it.
func (M *Model) Normalize(dst []float64) []float64 {
	n := M.NormLen()
	if len(dst) != n {
		dst = make([]float64, n)
	}
	for i, v := range M.values {
		if M.mode == SinCos {
			s, c := math.Sincos(v)
			dst[2*i] = normScale * s
			dst[2*i+1] = normScale * c
			continue
		}
		w := M.width(i)
		if w <= 0 {
			dst[i] = 0
			continue
		}
		lo := M.dofs[i].Lower
		t := lo + mod2Pi(v-lo)
		dst[i] = normScale * (t - lo) / w
	}
	return dst
}

// Denormalize sets the angle vector from the normalized vector x.
func (M *Model) Denormalize(x []float64) {
	if len(x) != M.NormLen() {
		panic(refine.ErrIndexOutOfRange)
	}
	for i := range M.values {
		if M.mode == SinCos {
			M.values[i] = math.Atan2(x[2*i], x[2*i+1])
			if M.dofs[i].Kind != Amplitude {
				M.values[i] = refine.ReduceAngle(M.values[i])
			}
			continue
		}
		v := M.dofs[i].Lower + x[i]/normScale*M.width(i)
		if M.dofs[i].Kind != Amplitude {
			v = refine.ReduceAngle(v)
		}
		M.values[i] = v
	}
}

// NormGradient converts dtheta, the derivative of the energy with respect to each angle,
// into the derivative with respect to the normalized coordinates x, and puts it in dst.
func (M *Model) NormGradient(dst, x, dtheta []float64) {
	if len(dst) != M.NormLen() || len(x) != M.NormLen() || len(dtheta) != len(M.dofs) {
		panic(refine.ErrIndexOutOfRange)
	}
	for i, g := range dtheta {
		if M.mode == SinCos {
			s, c := x[2*i], x[2*i+1]
			r2 := s*s + c*c
			if r2 == 0 {
				dst[2*i], dst[2*i+1] = 0, 0
				continue
			}
			dst[2*i] = g * c / r2
			dst[2*i+1] = -g * s / r2
			continue
		}
		dst[i] = g * M.width(i) / normScale
	}
}

// NormSigma returns the step size of each normalized coordinate.
func (M *Model) NormSigma() []float64 {
	ret := make([]float64, 0, M.NormLen())
	for i, d := range M.dofs {
		if M.mode == SinCos {
			ret = append(ret, normScale*d.Sigma, normScale*d.Sigma)
			continue
		}
		w := M.width(i)
		if w <= 0 {
			ret = append(ret, 0)
			continue
		}
		ret = append(ret, normScale*d.Sigma/w)
	}
	return ret
}

// mod2Pi returns x modulo 2pi, in [0, 2pi).
func mod2Pi(x float64) float64 {
	r := math.Mod(x, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	if r >= 2*math.Pi {
		r = 0
	}
	return r
}
