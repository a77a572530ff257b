/*
 * settings.go, part of gorefine.
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
	"time"

	"go.uber.org/zap"
)

// Report is a snapshot of the state of a run, given to progress callbacks.
type Report struct {
	Iteration int
	Evals     int
	F         float64 //value at the current location of the method
	Best      float64 //lowest value evaluated so far
	Elapsed   time.Duration
}

// Settings controls a run of one of the drivers. The zero value is usable,
// but DefaultSettings gives more sensible limits.
type Settings struct {
	MaxEvals int //0 means no limit
	MaxIter  int //0 means no limit
	//The gradient run converges when the value does not improve by more than
	//AbsTol+RelTol*|f| for Patience consecutive iterations.
	RelTol   float64
	AbsTol   float64
	Patience int
	GradTol  float64 //gradient driver only
	//Progress, if not nil, is called every ReportEvery iterations, whether or not
	//the run is converging.
	ReportEvery int
	Progress    func(Report)
	//Recorder, if not nil, is called every SnapshotEvery iterations with the
	//current location of the method.
	SnapshotEvery int
	Recorder      func(Report, []float64)
	InitStep      float64 //evolutionary driver only, 0 means the library default.
	Population    int     //evolutionary driver only, 0 means the library default.
	Logger        *zap.Logger
}

// DefaultSettings returns the default settings for a run.
func DefaultSettings() Settings {
	return Settings{
		MaxEvals:    20000,
		RelTol:      1e-8,
		AbsTol:      1e-10,
		Patience:    20,
		GradTol:     1e-8,
		ReportEvery: 100,
	}
}

func (S Settings) logger() *zap.Logger {
	if S.Logger == nil {
		return zap.NewNop()
	}
	return S.Logger
}
