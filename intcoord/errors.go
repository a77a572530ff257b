/*
 * errors.go, part of gorefine.
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
	"errors"
	"fmt"
)

var (
	ErrInvalidBounds = errors.New("intcoord: lower bound larger than upper bound")
	ErrUnknownAngle  = errors.New("intcoord: unknown angle")
)

// Error is the error type for the intcoord package. It fulfills refine.Error.
type Error struct {
	message  string
	deco     []string
	critical bool
	err      error
}

func (err *Error) Error() string {
	if err.err == nil {
		return err.message
	}
	return fmt.Sprintf("%v: %s", err.err, err.message)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *Error) Critical() bool { return err.critical }

func (err *Error) Unwrap() error { return err.err }
