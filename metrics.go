// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// MetricsNamespace prefixes every metric exported by the parrot programs.
const MetricsNamespace = "parrot"

// NewRegistry creates a prometheus registry with the standard go runtime and
// process collectors already registered.
func NewRegistry() *prometheus.Registry {
	r := prometheus.NewRegistry()
	r.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Metrics provides one registry as both a prometheus.Registerer and a
// prometheus.Gatherer, so that collectors and the /metrics handler agree.
func Metrics() fx.Option {
	return fx.Provide(
		NewRegistry,
		func(r *prometheus.Registry) prometheus.Registerer { return r },
		func(r *prometheus.Registry) prometheus.Gatherer { return r },
	)
}
