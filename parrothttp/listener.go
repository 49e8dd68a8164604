// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrothttp

import (
	"context"
	"errors"
	"net"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ListenerFactory is a strategy for creating the net.Listener a server accepts on.
// Implementations should bind to http.Server.Addr.
type ListenerFactory interface {
	Listen(context.Context, *http.Server) (net.Listener, error)
}

// ListenerFactoryFunc is a closure type that implements ListenerFactory
type ListenerFactoryFunc func(context.Context, *http.Server) (net.Listener, error)

// Listen implements ListenerFactory
func (lff ListenerFactoryFunc) Listen(ctx context.Context, s *http.Server) (net.Listener, error) {
	return lff(ctx, s)
}

// ListenerConstructor decorates a net.Listener once it has been created.
type ListenerConstructor func(net.Listener) net.Listener

// ListenerChain is an immutable sequence of ListenerConstructors, applied in
// order.  The zero value is an empty chain.
type ListenerChain struct {
	c []ListenerConstructor
}

// NewListenerChain creates a chain from a sequence of constructors.
func NewListenerChain(c ...ListenerConstructor) ListenerChain {
	return ListenerChain{
		c: append([]ListenerConstructor{}, c...),
	}
}

// Append returns a new chain with more added to the end.  This chain is not modified.
func (lc ListenerChain) Append(more ...ListenerConstructor) ListenerChain {
	if len(more) == 0 {
		return lc
	}

	return ListenerChain{
		c: append(
			append([]ListenerConstructor{}, lc.c...),
			more...,
		),
	}
}

// Then decorates next with every constructor in this chain.  The first
// constructor is the first one to see the undecorated listener.
func (lc ListenerChain) Then(next net.Listener) net.Listener {
	for _, c := range lc.c {
		next = c(next)
	}

	return next
}

// Factory decorates a ListenerFactory so that its listeners pass through this chain.
func (lc ListenerChain) Factory(next ListenerFactory) ListenerFactory {
	if len(lc.c) == 0 {
		return next
	}

	return ListenerFactoryFunc(func(ctx context.Context, s *http.Server) (net.Listener, error) {
		l, err := next.Listen(ctx, s)
		if err == nil {
			l = lc.Then(l)
		}

		return l, err
	})
}

// CaptureListenAddress returns a ListenerConstructor that sends the listener's
// actual address to ch.  Servers that bind ":0" use it to report their port.
func CaptureListenAddress(ch chan<- net.Addr) ListenerConstructor {
	return func(next net.Listener) net.Listener {
		ch <- next.Addr()
		return next
	}
}

// DefaultListenerFactory is the ListenerFactory used when a server's
// configuration does not supply one.  The zero value is valid.
type DefaultListenerFactory struct {
	// ListenConfig is the object used to create the net.Listener
	ListenConfig net.ListenConfig

	// Network is the TCP network to listen on.  If not set, "tcp" is used.
	Network string
}

// Listen binds to the server's address.  An empty server address binds an
// ephemeral loopback port.
func (f DefaultListenerFactory) Listen(ctx context.Context, server *http.Server) (net.Listener, error) {
	network := f.Network
	if len(network) == 0 {
		network = "tcp"
	}

	address := server.Addr
	if len(address) == 0 {
		address = "127.0.0.1:0"
	}

	return f.ListenConfig.Listen(ctx, network, address)
}

// ServerExit is run when a server leaves its accept loop.  It must not panic.
type ServerExit func()

// ShutdownOnExit returns a ServerExit that shuts down the fx.App, so that a
// server which dies takes the program with it.
func ShutdownOnExit(shutdowner fx.Shutdowner, opts ...fx.ShutdownOption) ServerExit {
	return func() {
		shutdowner.Shutdown(opts...)
	}
}

// Servable is anything with an accept loop.  *http.Server implements it.
type Servable interface {
	Serve(net.Listener) error
}

// Serve runs the accept loop of s until it ends, then runs the onExit callbacks.
// Any error other than http.ErrServerClosed is logged.
func Serve(s Servable, l net.Listener, logger *zap.Logger, onExit ...ServerExit) error {
	defer func() {
		for _, f := range onExit {
			f()
		}
	}()

	err := s.Serve(l)
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("server closed")
	} else {
		logger.Error("server accept loop exited", zap.Error(err))
	}

	return err
}

// ServerOnStart returns an fx.Hook OnStart closure that binds the listener and
// starts the accept loop in a goroutine.
func ServerOnStart(s *http.Server, f ListenerFactory, logger *zap.Logger, onExit ...ServerExit) func(context.Context) error {
	return func(ctx context.Context) error {
		l, err := f.Listen(ctx, s)
		if err != nil {
			return err
		}

		logger.Info("Listening on http://" + l.Addr().String())
		go Serve(s, l, logger, onExit...)
		return nil
	}
}
