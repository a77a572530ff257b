/*
 * dump.go, part of gorefine.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	refine "github.com/rmera/gorefine"
)

// Dump writes one "<name> <degrees>" line per degree of freedom.
func (M *Model) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, d := range M.dofs {
		deg := strconv.FormatFloat(refine.Rad2Deg(M.values[i]), 'g', -1, 64)
		if _, err := fmt.Fprintf(bw, "%s %s\n", d.Name, deg); err != nil {
			return &Error{"writing angles", []string{"Dump"}, true, err}
		}
	}
	if err := bw.Flush(); err != nil {
		return &Error{"writing angles", []string{"Dump"}, true, err}
	}
	return nil
}

// ReadDump reads angles in the format written by Dump, and sets the angle vector.
// Angles not in the input keep their values. The angle vector is only changed if the
// whole input is read without errors. The caller must call Write afterwards
// to update the atoms.
func (M *Model) ReadDump(r io.Reader) error {
	values := append([]float64(nil), M.values...)
	scan := bufio.NewScanner(r)
	line := 0
	for scan.Scan() {
		line++
		fields := strings.Fields(scan.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return &Error{fmt.Sprintf("line %d: expected 2 fields", line), []string{"ReadDump"}, true, nil}
		}
		i := M.Index(fields[0])
		if i < 0 {
			return &Error{fmt.Sprintf("line %d: %q", line, fields[0]), []string{"ReadDump"}, true, ErrUnknownAngle}
		}
		deg, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return &Error{fmt.Sprintf("line %d", line), []string{"ReadDump"}, true, err}
		}
		v := refine.Deg2Rad(deg)
		if M.dofs[i].Kind != Amplitude {
			v = refine.ReduceAngle(v)
		}
		values[i] = v
	}
	if err := scan.Err(); err != nil {
		return &Error{"reading angles", []string{"ReadDump"}, true, err}
	}
	copy(M.values, values)
	return nil
}
