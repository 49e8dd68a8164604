// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrothttp

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/xmidt-org/httpaux"
	httpauxserver "github.com/xmidt-org/httpaux/server"
)

// DefaultAddress is where the echo service binds when nothing else is configured:
// port 8000 on every interface.
const DefaultAddress = ":8000"

// ServerFactory creates an http.Server from unmarshaled configuration.  A factory
// may also implement ListenerFactory to control how its listener is bound.
type ServerFactory interface {
	// NewServer creates a server whose handler is, or decorates, h
	NewServer(h http.Handler) (*http.Server, error)
}

// ServerConfig is the built-in ServerFactory.  It is unmarshaled from a
// configuration key such as servers.main.
type ServerConfig struct {
	// Network is the tcp network to listen on.  The default is "tcp".
	Network string

	// Address is the bind address of the server.  If unset, the server binds an
	// ephemeral loopback port.
	Address string

	// ReadTimeout corresponds to http.Server.ReadTimeout
	ReadTimeout time.Duration

	// ReadHeaderTimeout corresponds to http.Server.ReadHeaderTimeout
	ReadHeaderTimeout time.Duration

	// WriteTimeout corresponds to http.Server.WriteTimeout.  Streamed
	// responses are cut off when it elapses, so it is usually left unset.
	WriteTimeout time.Duration

	// IdleTimeout corresponds to http.Server.IdleTimeout
	IdleTimeout time.Duration

	// MaxHeaderBytes corresponds to http.Server.MaxHeaderBytes
	MaxHeaderBytes int

	// KeepAlive corresponds to net.ListenConfig.KeepAlive
	KeepAlive time.Duration

	// Header supplies HTTP headers to emit on every response from this server
	Header http.Header
}

// NewServer implements ServerFactory.
func (sc ServerConfig) NewServer(h http.Handler) (*http.Server, error) {
	return &http.Server{
		Addr:              sc.Address,
		Handler:           httpauxserver.Header(httpaux.NewHeader(sc.Header).SetTo)(h),
		ReadTimeout:       sc.ReadTimeout,
		ReadHeaderTimeout: sc.ReadHeaderTimeout,
		WriteTimeout:      sc.WriteTimeout,
		IdleTimeout:       sc.IdleTimeout,
		MaxHeaderBytes:    sc.MaxHeaderBytes,
	}, nil
}

// Listen implements ListenerFactory
func (sc ServerConfig) Listen(ctx context.Context, s *http.Server) (net.Listener, error) {
	return DefaultListenerFactory{
		ListenConfig: net.ListenConfig{
			KeepAlive: sc.KeepAlive,
		},
		Network: sc.Network,
	}.Listen(ctx, s)
}
