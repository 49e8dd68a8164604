// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrothttp

import (
	"errors"
	"fmt"
	"net"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/xmidt-org/parrot"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrNilServerFactory is returned when a builder's prototype is nil.
var ErrNilServerFactory = errors.New("the server factory prototype cannot be nil")

// ServerIn describes the dependencies for unmarshaling a server and binding
// it to the fx.App lifecycle.
type ServerIn struct {
	fx.In

	// Unmarshaler is used to read the ServerFactory from configuration
	Unmarshaler parrot.Unmarshaler

	// Logger receives access logs and server events
	Logger *zap.Logger

	// Lifecycle is the fx.App lifecycle the server is bound to.  The server
	// starts with the app and is gracefully shut down when the app stops.
	Lifecycle fx.Lifecycle

	// Shutdowner stops the app if the server leaves its accept loop
	Shutdowner fx.Shutdowner
}

// S is a Fluent Builder for an http.Server whose routes live on a *mux.Router.
// Begin a chain with Server().
type S struct {
	prototype  ServerFactory
	middleware []alice.Constructor
	listener   ListenerChain
}

// Server begins a builder chain that uses ServerConfig as its factory.
func Server() *S {
	return new(S).
		ServerFactory(ServerConfig{})
}

// ServerFactory sets the prototype that is copied and unmarshaled for each server.
// The prototype should be a struct value.  If it also implements ListenerFactory,
// it controls how the listener is bound.
func (s *S) ServerFactory(prototype ServerFactory) *S {
	s.prototype = prototype
	return s
}

// Middleware appends decorators for the whole server handler.  They run after
// the built-in request ID and access log middleware, and see every request,
// including ones that match no route.
func (s *S) Middleware(m ...alice.Constructor) *S {
	s.middleware = append(s.middleware, m...)
	return s
}

// ListenerConstructors adds decorators for the server's net.Listener.
func (s *S) ListenerConstructors(l ...ListenerConstructor) *S {
	s.listener = s.listener.Append(l...)
	return s
}

// CaptureListenAddress sends the server's bind address to ch when the app starts.
// Tests use this with ":0" addresses.
func (s *S) CaptureListenAddress(ch chan<- net.Addr) *S {
	return s.ListenerConstructors(
		CaptureListenAddress(ch),
	)
}

// newFactory copies the prototype and unmarshals the key into the copy.
func (s *S) newFactory(u parrot.Unmarshaler, key string) (ServerFactory, error) {
	if s.prototype == nil {
		return nil, ErrNilServerFactory
	}

	target := reflect.New(reflect.TypeOf(s.prototype))
	target.Elem().Set(reflect.ValueOf(s.prototype))
	if err := u.UnmarshalKey(key, target.Interface()); err != nil {
		return nil, err
	}

	return target.Elem().Interface().(ServerFactory), nil
}

// unmarshal builds the router and server for a configuration key and binds
// the server to the app lifecycle.
func (s *S) unmarshal(key string, in ServerIn) (*mux.Router, error) {
	factory, err := s.newFactory(in.Unmarshaler, key)
	if err != nil {
		return nil, parrot.ConfigurationError(
			fmt.Errorf("unable to unmarshal server [%s]: %w", key, err),
		)
	}

	logger := in.Logger.With(zap.String("server", key))
	router := mux.NewRouter()
	handler := alice.New(RequestID, AccessLog(logger)).
		Append(s.middleware...).
		Then(router)

	server, err := factory.NewServer(handler)
	if err != nil {
		return nil, parrot.ConfigurationError(
			fmt.Errorf("unable to create server [%s]: %w", key, err),
		)
	}

	if server.Handler == nil {
		server.Handler = handler
	}

	server.ErrorLog = zap.NewStdLog(logger)

	lf, ok := factory.(ListenerFactory)
	if !ok {
		lf = DefaultListenerFactory{}
	}

	in.Lifecycle.Append(fx.Hook{
		OnStart: ServerOnStart(
			server,
			s.listener.Factory(lf),
			logger,
			ShutdownOnExit(in.Shutdowner),
		),
		OnStop: server.Shutdown,
	})

	return router, nil
}

// UnmarshalKey ends the builder chain with a constructor that produces the
// server's *mux.Router.  The server and listener are not exposed; both are bound
// to the enclosing fx.App.
func (s *S) UnmarshalKey(key string) func(ServerIn) (*mux.Router, error) {
	return func(in ServerIn) (*mux.Router, error) {
		return s.unmarshal(key, in)
	}
}

// ProvideKey provides the server's *mux.Router as a component named after the
// configuration key.
func (s *S) ProvideKey(key string) fx.Option {
	return fx.Provide(
		fx.Annotated{
			Name:   key,
			Target: s.UnmarshalKey(key),
		},
	)
}
