/*
 * metrics.go, part of gorefine.
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

package session

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsPrefix = "gorefine_"

// Metrics are the prometheus collectors updated by sessions.
type Metrics struct {
	Evaluations prometheus.Counter
	Rebuilds    prometheus.Counter
	Failures    prometheus.Counter
	BestEnergy  prometheus.Gauge
}

// NewMetrics creates the session collectors and registers them with registerer.
// If registerer is nil, the collectors are not registered anywhere, but still work.
// Collectors already registered (by a previous session) are reused, so sessions
// sharing a registerer share their counters.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricsPrefix + "evaluations_total",
			Help: "Total number of energy evaluations.",
		}),
		Rebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricsPrefix + "spatial_rebuilds_total",
			Help: "Total number of regenerations of the repulsion pairs.",
		}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricsPrefix + "optimizer_failures_total",
			Help: "Total number of optimizer runs that ended with an error.",
		}),
		BestEnergy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricsPrefix + "best_energy",
			Help: "Lowest energy found by the last refinement.",
		}),
	}
	if registerer == nil {
		return m, nil
	}
	var err error
	if m.Evaluations, err = registerCounter(registerer, m.Evaluations); err != nil {
		return nil, err
	}
	if m.Rebuilds, err = registerCounter(registerer, m.Rebuilds); err != nil {
		return nil, err
	}
	if m.Failures, err = registerCounter(registerer, m.Failures); err != nil {
		return nil, err
	}
	if err = registerer.Register(m.BestEnergy); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		g, ok := are.ExistingCollector.(prometheus.Gauge)
		if !ok {
			return nil, err
		}
		m.BestEnergy = g
	}
	return m, nil
}

func registerCounter(registerer prometheus.Registerer, c prometheus.Counter) (prometheus.Counter, error) {
	err := registerer.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
			return existing, nil
		}
	}
	return nil, err
}
