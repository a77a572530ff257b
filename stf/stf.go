/*
 * stf.go, part of gorefine.
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
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	v3 "github.com/rmera/gorefine/v3"
)

// DefaultPrecision is the number of decimals kept for each coordinate.
const DefaultPrecision = 3

// Frame holds the information stored with each snapshot, besides the coordinates.
type Frame struct {
	Energy    float64
	Iteration int
}

// Writer writes snapshots to a zstd-compressed stream.
type Writer struct {
	f      io.Closer //the file, if the Writer opened it
	z      *zstd.Encoder
	h      *bufio.Writer
	natoms int
	prec   int
	mult   float64
	name   string
	frames int
}

// NewWriter returns a Writer for frames of natoms atoms, writing to w.
// The header keys are written in lexical order. If header has a valid "prec" key,
// that precision is used, otherwise DefaultPrecision.
func NewWriter(w io.Writer, natoms int, header map[string]string) (*Writer, error) {
	z, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, &Error{"can't start compression: " + err.Error(), "", []string{"NewWriter"}, true}
	}
	S := &Writer{z: z, h: bufio.NewWriter(z), natoms: natoms, prec: DefaultPrecision}
	if p, ok := header["prec"]; ok {
		if prec, err := strconv.Atoi(p); err == nil && prec > 0 {
			S.prec = prec
		}
	}
	S.mult = math.Pow(10, float64(S.prec))
	keys := make([]string, 0, len(header))
	for k := range header {
		if k != "prec" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	fmt.Fprintf(S.h, "prec=%d\n", S.prec)
	for _, k := range keys {
		if strings.ContainsAny(k+header[k], "=\n") {
			z.Close()
			return nil, &Error{fmt.Sprintf("invalid header entry %q", k), "", []string{"NewWriter"}, true}
		}
		fmt.Fprintf(S.h, "%s=%s\n", k, header[k])
	}
	fmt.Fprintf(S.h, "** %d\n", natoms)
	return S, nil
}

// Create creates (or truncates) the file name and returns a Writer on it.
func Create(name string, natoms int, header map[string]string) (*Writer, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, &Error{err.Error(), name, []string{"Create"}, true}
	}
	S, err := NewWriter(f, natoms, header)
	if err != nil {
		f.Close()
		return nil, errDecorate(err, "Create")
	}
	S.f = f
	S.name = name
	return S, nil
}

// Len returns the number of atoms per frame.
func (S *Writer) Len() int { return S.natoms }

// Frames returns the number of frames written so far.
func (S *Writer) Frames() int { return S.frames }

// WNext writes the coordinates coord as a new frame.
func (S *Writer) WNext(coord *v3.Matrix, info Frame) error {
	if S.h == nil {
		return &Error{TrajUnIniWrite, S.name, []string{"WNext"}, true}
	}
	if coord == nil {
		return &Error{NilCoordinates, S.name, []string{"WNext"}, true}
	}
	if v := coord.NVecs(); v != S.natoms {
		return &Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.name, []string{"WNext"}, true}
	}
	for i := 0; i < S.natoms; i++ {
		S.h.WriteString(S.encode(coord.Vec(i)))
	}
	_, err := fmt.Fprintf(S.h, "* %.6g %d\n", info.Energy, info.Iteration)
	if err != nil {
		return &Error{err.Error(), S.name, []string{"WNext"}, true}
	}
	S.frames++
	return nil
}

func (S *Writer) encode(v v3.Vec) string {
	var t [3]int64
	for i, c := range v {
		t[i] = int64(math.RoundToEven(c * S.mult))
	}
	return fmt.Sprintf("%d %d %d\n", t[0], t[1], t[2])
}

// Close flushes the pending data and closes the Writer, and the file, if the Writer
// opened it. The Writer can't be used after this call.
func (S *Writer) Close() error {
	if S.h == nil {
		return nil
	}
	err := S.h.Flush()
	if err2 := S.z.Close(); err == nil {
		err = err2
	}
	if S.f != nil {
		if err2 := S.f.Close(); err == nil {
			err = err2
		}
	}
	S.h = nil
	if err != nil {
		return &Error{err.Error(), S.name, []string{"Close"}, true}
	}
	return nil
}

// Reader reads snapshots from a zstd-compressed stream.
type Reader struct {
	f      io.Closer
	z      *zstd.Decoder
	h      *bufio.Reader
	natoms int
	prec   int
	mult   float64
	name   string
	header map[string]string
}

// NewReader reads the header of the trajectory in r, and returns a Reader
// positioned at the first frame.
func NewReader(r io.Reader) (*Reader, error) {
	z, err := zstd.NewReader(r)
	if err != nil {
		return nil, &Error{"can't start decompression: " + err.Error(), "", []string{"NewReader"}, true}
	}
	S := &Reader{z: z, h: bufio.NewReader(z), natoms: -1, prec: DefaultPrecision, header: make(map[string]string)}
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			z.Close()
			return nil, &Error{"can't read header: " + err.Error(), "", []string{"NewReader"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				z.Close()
				return nil, &Error{fmt.Sprintf("can't read atom number from %q", str), "", []string{"NewReader"}, true}
			}
			S.natoms, err = strconv.Atoi(nat[1])
			if err != nil || S.natoms < 0 {
				z.Close()
				return nil, &Error{fmt.Sprintf("can't read atom number from %q", nat[1]), "", []string{"NewReader"}, true}
			}
			break
		}
		k, v, ok := strings.Cut(str, "=")
		if !ok {
			z.Close()
			return nil, &Error{fmt.Sprintf("malformed header line %q", str), "", []string{"NewReader"}, true}
		}
		S.header[k] = v
	}
	if p, ok := S.header["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec <= 0 {
			z.Close()
			return nil, &Error{fmt.Sprintf("invalid precision %q", p), "", []string{"NewReader"}, true}
		}
		S.prec = prec
	}
	S.mult = math.Pow(10, float64(S.prec))
	return S, nil
}

// Open opens the file name for reading.
func Open(name string) (*Reader, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &Error{err.Error(), name, []string{"Open"}, true}
	}
	S, err := NewReader(f)
	if err != nil {
		f.Close()
		if e, ok := err.(*Error); ok {
			e.filename = name
		}
		return nil, errDecorate(err, "Open")
	}
	S.f = f
	S.name = name
	return S, nil
}

// Header returns the metadata in the header of the trajectory.
func (S *Reader) Header() map[string]string { return S.header }

// Len returns the number of atoms per frame.
func (S *Reader) Len() int { return S.natoms }

// Readable returns true if Next can be called on the Reader.
func (S *Reader) Readable() bool { return S.h != nil }

// Next puts the coordinates of the next frame in c, and returns the information stored
// with the frame. If c is nil, the frame is checked and skipped. At the end of the
// trajectory, it returns a *LastFrameError, which matches io.EOF for errors.Is,
// and closes the Reader.
func (S *Reader) Next(c *v3.Matrix) (Frame, error) {
	var info Frame
	if !S.Readable() {
		return info, &Error{TrajUnIniRead, S.name, []string{"Next"}, true}
	}
	if c != nil && c.NVecs() != S.natoms {
		return info, &Error{fmt.Sprintf("matrix for %d atoms given, but frames have %d", c.NVecs(), S.natoms), S.name, []string{"Next"}, true}
	}
	for i := 0; i < S.natoms; i++ {
		line, err := S.h.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) && i == 0 && line == "" {
				S.Close()
				return info, newLastFrameError(S.name, "Next")
			}
			return info, &Error{ReadError + ": " + err.Error(), S.name, []string{"Next"}, true}
		}
		v, err := S.decode(line)
		if err != nil {
			return info, &Error{err.Error(), S.name, []string{"Next"}, true}
		}
		if c != nil {
			c.SetVec(i, v)
		}
	}
	s, err := S.h.ReadString('\n')
	if err != nil || len(s) == 0 || s[0] != '*' {
		return info, &Error{WrongFormat + ": missing frame termination mark", S.name, []string{"Next"}, true}
	}
	fields := strings.Fields(s)
	if len(fields) >= 3 {
		info.Energy, err = strconv.ParseFloat(fields[1], 64)
		if err == nil {
			info.Iteration, err = strconv.Atoi(fields[2])
		}
		if err != nil {
			return info, &Error{WrongFormat + ": " + err.Error(), S.name, []string{"Next"}, true}
		}
	}
	return info, nil
}

func (S *Reader) decode(str string) (v3.Vec, error) {
	var v v3.Vec
	s := strings.Fields(str)
	if len(s) != 3 {
		return v, fmt.Errorf("%s: %d fields in coordinates line %q", WrongFormat, len(s), str)
	}
	for i, f := range s {
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return v, fmt.Errorf("can't parse coordinate %d (%s): %w", i, f, err)
		}
		v[i] = float64(n) / S.mult
	}
	return v, nil
}

// Close closes the Reader, and the file if the Reader opened it.
func (S *Reader) Close() {
	if S.h == nil {
		return
	}
	S.z.Close()
	if S.f != nil {
		S.f.Close()
	}
	S.h = nil
}
