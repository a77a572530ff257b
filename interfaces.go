/*
 * interfaces.go, part of gorefine.
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
	"errors"
	"fmt"
)

// Atomer is the basic interface for a topology.
type Atomer interface {

	//Atom returns the Atom corresponding to the index i
	//of the Atom slice in the Topology. Should panic if
	//out of range.
	Atom(i int) *Atom

	Len() int
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call also returns the "decoration" slice of strings resulting from the current call. If passed an empty string, it should just return the current value, not add the empty string to the slice.
	Critical() bool
}

// ErrUnknownType is returned when an atom refers to a nonbonded type that is not in the table.
var ErrUnknownType = errors.New("goRefine: unknown atom type")

// CError is the error type for the refine package.
type CError struct {
	msg      string
	deco     []string
	critical bool
	err      error
}

func (err *CError) Error() string {
	if err.err != nil {
		return fmt.Sprintf("%s: %v", err.msg, err.err)
	}
	return err.msg
}

func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

func (err *CError) Critical() bool { return err.critical }

func (err *CError) Unwrap() error { return err.err }

// NewError returns a critical error with the given message, wrapping err (which can be nil).
// It is meant for the other goRefine packages.
func NewError(msg string, err error, caller string) *CError {
	e := &CError{msg: msg, critical: true, err: err}
	e.Decorate(caller)
	return e
}

// ErrDecorate adds caller to the decoration trail of err, if err is a
// goRefine Error, and returns err.
func ErrDecorate(err error, caller string) error {
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
	}
	return err
}

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilData         = PanicMsg("goRefine: Nil data given ")
	ErrIndexOutOfRange = PanicMsg("goRefine: Index out of range")
)
