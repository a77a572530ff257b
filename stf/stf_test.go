/*
 * stf_test.go, part of gorefine.
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

package stf

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v3 "github.com/rmera/gorefine/v3"
)

func frames() []*v3.Matrix {
	a, _ := v3.NewMatrix([]float64{0, 0, 0, 1.5234, -0.2, 3.14159, -12.0006, 4, 0.0004})
	b, _ := v3.NewMatrix([]float64{0.1, 0.2, 0.3, 1.6, -0.25, 3.0, -11.5, 4.5, 0.7})
	return []*v3.Matrix{a, b}
}

func TestRoundTrip(Te *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, 3, map[string]string{"session": "abc", "molecule": "test"})
	require.NoError(Te, err)
	for i, f := range frames() {
		require.NoError(Te, w.WNext(f, Frame{Energy: 10.5 / float64(i+1), Iteration: 100 * i}))
	}
	assert.Equal(Te, 2, w.Frames())
	bad := v3.Zeros(2)
	assert.Error(Te, w.WNext(bad, Frame{}))
	require.NoError(Te, w.Close())
	assert.Error(Te, w.WNext(frames()[0], Frame{}))

	r, err := NewReader(&buf)
	require.NoError(Te, err)
	assert.Equal(Te, 3, r.Len())
	assert.Equal(Te, "abc", r.Header()["session"])
	assert.Equal(Te, "3", r.Header()["prec"])
	c := v3.Zeros(3)
	for i, f := range frames() {
		info, err := r.Next(c)
		require.NoError(Te, err)
		assert.Equal(Te, 100*i, info.Iteration)
		assert.InDelta(Te, 10.5/float64(i+1), info.Energy, 1e-5)
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				assert.InDelta(Te, f.At(j, k), c.At(j, k), 0.5e-3)
			}
		}
	}
	_, err = r.Next(c)
	require.Error(Te, err)
	assert.True(Te, errors.Is(err, io.EOF))
	var last *LastFrameError
	assert.ErrorAs(Te, err, &last)
	assert.False(Te, r.Readable())
}

func TestPrecisionAndFiles(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "snap.stf")
	w, err := Create(name, 3, map[string]string{"prec": "1"})
	require.NoError(Te, err)
	require.NoError(Te, w.WNext(frames()[0], Frame{Energy: -1, Iteration: 3}))
	require.NoError(Te, w.Close())

	r, err := Open(name)
	require.NoError(Te, err)
	defer r.Close()
	c := v3.Zeros(3)
	_, err = r.Next(c)
	require.NoError(Te, err)
	assert.InDelta(Te, 3.1, c.At(1, 2), 1e-9)
	assert.InDelta(Te, -12.0, c.At(2, 0), 1e-9)
	_, err = r.Next(nil)
	assert.ErrorIs(Te, err, io.EOF)

	_, err = Open(filepath.Join(Te.TempDir(), "missing.stf"))
	assert.Error(Te, err)
}

func TestBadHeader(Te *testing.T) {
	_, err := NewWriter(io.Discard, 2, map[string]string{"bad=key": "x"})
	assert.Error(Te, err)
	_, err = NewReader(bytes.NewReader([]byte("not zstd at all")))
	assert.Error(Te, err)
}
