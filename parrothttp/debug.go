// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrothttp

import (
	"net/http/pprof"
	rpprof "runtime/pprof"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// DebugServerKey is the configuration key, and component name, of the
	// optional debug server.
	DebugServerKey = "servers.debug"

	// MetricsPath is where the debug server exposes prometheus metrics.
	MetricsPath = "/metrics"

	// PprofPath is where the debug server exposes pprof.  net/http/pprof
	// resolves named profiles relative to this exact prefix.
	PprofPath = "/debug/pprof"
)

// ConfigurePprofRoutes adds the pprof handlers to r, which is normally a
// subrouter for PprofPath + "/".
func ConfigurePprofRoutes(r *mux.Router) {
	r.Path("/").HandlerFunc(pprof.Index)
	r.Path("/cmdline").HandlerFunc(pprof.Cmdline)
	r.Path("/profile").HandlerFunc(pprof.Profile)
	r.Path("/symbol").HandlerFunc(pprof.Symbol)
	r.Path("/trace").HandlerFunc(pprof.Trace)

	// gorilla/mux matches paths exactly, unlike http.ServeMux, so every
	// named profile needs its own route
	for _, p := range rpprof.Profiles() {
		r.Path("/" + p.Name()).HandlerFunc(pprof.Index)
	}
}

// ConfigureDebugRoutes adds the metrics and pprof endpoints to a router.
func ConfigureDebugRoutes(r *mux.Router, g prometheus.Gatherer) {
	r.Handle(MetricsPath, promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	r.HandleFunc(PprofPath, pprof.Index)
	ConfigurePprofRoutes(r.PathPrefix(PprofPath + "/").Subrouter())
}

// DebugIn holds the dependencies for the debug server's routes.
type DebugIn struct {
	fx.In

	Router   *mux.Router `name:"servers.debug"`
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
}

// ProvideDebug assembles the debug server built by s.  It is kept off the
// main server so the echo route table stays fixed.
func ProvideDebug(s *S) fx.Option {
	return fx.Options(
		s.ProvideKey(DebugServerKey),
		fx.Invoke(
			func(in DebugIn) {
				in.Logger.Info("mapping debug handlers", zap.String("metrics", MetricsPath), zap.String("pprof", PprofPath))
				ConfigureDebugRoutes(in.Router, in.Gatherer)
			},
		),
	)
}
