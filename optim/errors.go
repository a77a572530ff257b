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

package optim

import (
	"errors"
	"fmt"
)

var (
	// ErrPanic is wrapped by the errors of runs where the objective or the optimizer panicked.
	ErrPanic = errors.New("optim: recovered from panic")
	// ErrCanceled is wrapped when the context of a run is done before the run finishes.
	ErrCanceled = errors.New("optim: run canceled")
)

// Error is the error type for the optim package. It fulfills refine.Error.
// Errors from a failed run are never critical, since the best point found is still usable.
type Error struct {
	message  string
	deco     []string
	critical bool
	err      error
}

func newError(msg string, err error, caller string) *Error {
	return &Error{message: msg, deco: []string{caller}, err: err}
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
