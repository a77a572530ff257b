/*
 * gocoords.go, part of gorefine.
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

import (
	"fmt"
	"math"
	"strings"
)

// NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Len is the same as NVecs
func (F *Matrix) Len() int {
	return F.NVecs()
}

// Vec returns a copy of the ith vector of F.
func (F *Matrix) Vec(i int) Vec {
	raw := F.RawMatrix()
	if i < 0 || i >= raw.Rows {
		panic(ErrIndexOutOfRange)
	}
	s := raw.Data[i*raw.Stride : i*raw.Stride+3]
	return Vec{s[0], s[1], s[2]}
}

// SetVec sets the ith vector of F to v.
func (F *Matrix) SetVec(i int, v Vec) {
	raw := F.RawMatrix()
	if i < 0 || i >= raw.Rows {
		panic(ErrIndexOutOfRange)
	}
	copy(raw.Data[i*raw.Stride:i*raw.Stride+3], v[:])
}

// Bounds returns the lower and upper corners of the axis-aligned box containing
// all the vectors in F. It panics if F is empty.
func (F *Matrix) Bounds() (lo, hi Vec) {
	n := F.NVecs()
	if n == 0 {
		panic(ErrShape)
	}
	lo = F.Vec(0)
	hi = lo
	for i := 1; i < n; i++ {
		v := F.Vec(i)
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], v[k])
			hi[k] = math.Max(hi[k], v[k])
		}
	}
	return lo, hi
}

// Clone returns a new Matrix with a copy of the contents of F.
func (F *Matrix) Clone() *Matrix {
	r := Zeros(F.NVecs())
	r.Copy(F.Dense)
	return r
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	v := make([]string, 0, r+2)
	v = append(v, "\n[")
	for i := 0; i < r; i++ {
		row := F.Vec(i)
		sep := " "
		if i == 0 {
			sep = ""
		}
		v = append(v, fmt.Sprintf("%s%6.2f %6.2f %6.2f", sep, row[0], row[1], row[2]))
		if i < r-1 {
			v = append(v, "\n")
		}
	}
	v = append(v, " ]")
	return strings.Join(v, "")
}
