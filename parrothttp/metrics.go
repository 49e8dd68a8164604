// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrothttp

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/parrot"
	"go.uber.org/multierr"
)

// NotFoundRoute is the route label used for requests that match no route.
const NotFoundRoute = "notfound"

// Metrics holds the echo service's collectors.
type Metrics struct {
	// Requests counts finished requests by route and status code
	Requests *prometheus.CounterVec

	// Chunks counts body chunks streamed back to clients, by route
	Chunks *prometheus.CounterVec

	// Bytes counts body bytes streamed back to clients, by route
	Bytes *prometheus.CounterVec
}

// NewMetrics creates the echo service's collectors and registers them.
func NewMetrics(r prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: parrot.MetricsNamespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total HTTP requests by route and status code",
			},
			[]string{"route", "code"},
		),
		Chunks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: parrot.MetricsNamespace,
				Subsystem: "http",
				Name:      "stream_chunks_total",
				Help:      "Total body chunks streamed back to clients",
			},
			[]string{"route"},
		),
		Bytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: parrot.MetricsNamespace,
				Subsystem: "http",
				Name:      "stream_bytes_total",
				Help:      "Total body bytes streamed back to clients",
			},
			[]string{"route"},
		),
	}

	err := multierr.Combine(
		r.Register(m.Requests),
		r.Register(m.Chunks),
		r.Register(m.Bytes),
	)

	if err != nil {
		return nil, err
	}

	return m, nil
}

// RouteName returns the name of the route a request matched, or NotFoundRoute.
func RouteName(request *http.Request) string {
	if route := mux.CurrentRoute(request); route != nil {
		if name := route.GetName(); len(name) > 0 {
			return name
		}
	}

	return NotFoundRoute
}

// Instrument is middleware that counts requests by route and status code.
// A nil Metrics does no instrumentation.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	if m == nil {
		return next
	}

	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		ow := newObservedWriter(response)
		defer func() {
			m.Requests.WithLabelValues(
				RouteName(request),
				strconv.Itoa(ow.StatusCode()),
			).Inc()
		}()

		next.ServeHTTP(ow, request)
	})
}

// observeStream records what a streaming handler wrote.
func (m *Metrics) observeStream(route string, stats StreamStats) {
	if m == nil {
		return
	}

	m.Chunks.WithLabelValues(route).Add(float64(stats.Chunks))
	m.Bytes.WithLabelValues(route).Add(float64(stats.Bytes))
}
