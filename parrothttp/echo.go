// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrothttp

import (
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Instructions is the body served at "/".
const Instructions = "Try POSTing data to /echo such as: `curl localhost:8000/echo -XPOST -d 'hello world'`"

// Handlers are the echo service's route handlers.
type Handlers struct {
	Logger  *zap.Logger
	Metrics *Metrics
}

// Instructions serves the fixed usage text.
func (h Handlers) Instructions(response http.ResponseWriter, _ *http.Request) {
	response.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(response, Instructions); err != nil {
		h.Logger.Debug("unable to write instructions", zap.Error(err))
	}
}

// responseStream adapts a ResponseWriter into a Stream destination that
// flushes through an http.ResponseController.
type responseStream struct {
	http.ResponseWriter
	rc *http.ResponseController
}

func (rs responseStream) Flush() error {
	return rs.rc.Flush()
}

// Stream returns a handler that streams the request body back to the client
// through t.  The request's Content-Type, if any, is echoed.
//
// If the stream fails partway, because the client went away or the connection
// broke, the handler aborts the connection.  The client then sees a truncated
// response rather than a clean one.
func (h Handlers) Stream(t Transform) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		rc := http.NewResponseController(response)

		// HTTP/1.x servers otherwise stop reading the request body once the
		// response starts
		if err := rc.EnableFullDuplex(); err != nil && !errors.Is(err, http.ErrNotSupported) {
			h.Logger.Warn("unable to enable full duplex", zap.Error(err))
		}

		if ct := request.Header.Get("Content-Type"); len(ct) > 0 {
			response.Header().Set("Content-Type", ct)
		}

		route := RouteName(request)
		stats, err := Stream(
			request.Context(),
			responseStream{ResponseWriter: response, rc: rc},
			request.Body,
			t,
		)

		h.Metrics.observeStream(route, stats)
		if err != nil {
			h.Logger.Error(
				"stream failed",
				zap.String("route", route),
				zap.Int("chunks", stats.Chunks),
				zap.Int64("bytes", stats.Bytes),
				zap.Error(err),
			)

			panic(http.ErrAbortHandler)
		}
	})
}
