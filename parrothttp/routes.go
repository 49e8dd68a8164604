// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrothttp

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// MainServerKey is the configuration key, and component name, of the echo server.
const MainServerKey = "servers.main"

// Route is one entry of a fixed route table.  Matching is exact on both the
// method and the literal path.
type Route struct {
	// Name labels the route in logs and metrics
	Name string

	Method  string
	Path    string
	Handler http.Handler
}

// Routes is the echo service's route table, in precedence order.
func Routes(h Handlers) []Route {
	echo := h.Stream(Identity)
	return []Route{
		{Name: "instructions", Method: http.MethodGet, Path: "/", Handler: http.HandlerFunc(h.Instructions)},
		{Name: "echo", Method: http.MethodPost, Path: "/echo", Handler: echo},
		{Name: "echo", Method: http.MethodGet, Path: "/echo", Handler: echo},
		{Name: "uppercase", Method: http.MethodPost, Path: "/echo/uppercase", Handler: h.Stream(Uppercase)},
	}
}

// NotFound writes a 404 with an empty body.
func NotFound(response http.ResponseWriter, _ *http.Request) {
	response.WriteHeader(http.StatusNotFound)
}

// ConfigureRoutes adds routes to router in order.  Anything that matches no route,
// including a known path with another method, goes to notFound.  Paths are
// matched as sent, so unclean paths such as "//echo" are not redirected.
func ConfigureRoutes(router *mux.Router, notFound http.Handler, routes ...Route) {
	router.SkipClean(true)
	router.NotFoundHandler = notFound
	router.MethodNotAllowedHandler = notFound

	for _, r := range routes {
		router.Methods(r.Method).
			Path(r.Path).
			Name(r.Name).
			Handler(r.Handler)
	}
}

// NewRouter creates a router for a fixed route table.
func NewRouter(notFound http.Handler, routes ...Route) *mux.Router {
	router := mux.NewRouter()
	ConfigureRoutes(router, notFound, routes...)
	return router
}

// RoutesIn holds the dependencies for binding the echo routes.
type RoutesIn struct {
	fx.In

	Router  *mux.Router `name:"servers.main"`
	Logger  *zap.Logger
	Metrics *Metrics
}

// BindRoutes installs the echo route table on the main server's router.
func BindRoutes(in RoutesIn) {
	in.Router.Use(in.Metrics.Instrument)
	ConfigureRoutes(
		in.Router,
		in.Metrics.Instrument(http.HandlerFunc(NotFound)),
		Routes(Handlers{
			Logger:  in.Logger,
			Metrics: in.Metrics,
		})...,
	)
}

// Provide assembles the echo service: the main server built by s, its
// metrics, and its routes.  A prometheus.Registerer must be available.
func Provide(s *S) fx.Option {
	return fx.Options(
		s.ProvideKey(MainServerKey),
		fx.Provide(NewMetrics),
		fx.Invoke(BindRoutes),
	)
}
