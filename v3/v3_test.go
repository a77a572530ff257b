/*
 * v3_test.go, part of gorefine.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	require.Error(Te, err)
	A, err := NewMatrix([]float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(Te, err)
	assert.Equal(Te, 3, A.NVecs())
	assert.Equal(Te, Vec{4, 5, 6}, A.Vec(1))
}

func TestSharesData(Te *testing.T) {
	data := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(data)
	require.NoError(Te, err)
	A.SetVec(2, Vec{-1, -2, -3})
	assert.Equal(Te, Vec{-1, -2, -3}, A.Vec(2))
	assert.Equal(Te, -2.0, data[7], "NewMatrix does not copy")
	assert.Equal(Te, 3, A.Len())
	assert.Panics(Te, func() { A.Vec(3) })
}

func TestBounds(Te *testing.T) {
	A, err := NewMatrix([]float64{1, -2, 3, -4, 5, 0, 2, 2, 9})
	require.NoError(Te, err)
	lo, hi := A.Bounds()
	assert.Equal(Te, Vec{-4, -2, 0}, lo)
	assert.Equal(Te, Vec{2, 5, 9}, hi)
	C := A.Clone()
	C.SetVec(0, Vec{})
	assert.Equal(Te, 1.0, A.At(0, 0))
}

func TestVecAlgebra(Te *testing.T) {
	x := Vec{1, 0, 0}
	y := Vec{0, 1, 0}
	assert.Equal(Te, Vec{0, 0, 1}, x.Cross(y))
	assert.InDelta(Te, 0.0, x.Dot(y), 1e-12)
	assert.InDelta(Te, 2.0, x.Dist2(y), 1e-12)
	assert.InDelta(Te, 1.0, Vec{3, 4, 0}.Unit().Norm(), 1e-12)
	assert.Equal(Te, Vec{}, Vec{}.Unit())
}
