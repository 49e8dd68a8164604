// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrothttp

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/justinas/alice"
	"go.uber.org/zap"
)

// RequestIDHeader carries the request ID on both requests and responses.
const RequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestIDFrom returns the request ID stored in ctx by the RequestID middleware.
func RequestIDFrom(ctx context.Context) (id string, ok bool) {
	id, ok = ctx.Value(requestIDKey{}).(string)
	return
}

// RequestID is middleware that makes sure every request has an ID.  A client
// supplied RequestIDHeader is kept, otherwise a random UUID is generated.  The
// ID is returned in the response header and stored in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		id := request.Header.Get(RequestIDHeader)
		if len(id) == 0 {
			id = uuid.NewString()
		}

		response.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(
			response,
			request.WithContext(
				context.WithValue(request.Context(), requestIDKey{}, id),
			),
		)
	})
}

// observedWriter records the status code and body size of a response.  It
// exposes Unwrap so that http.ResponseController still reaches the underlying
// writer for flushing and full duplex.
type observedWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func newObservedWriter(w http.ResponseWriter) *observedWriter {
	return &observedWriter{ResponseWriter: w}
}

func (ow *observedWriter) WriteHeader(status int) {
	if ow.status == 0 {
		ow.status = status
	}

	ow.ResponseWriter.WriteHeader(status)
}

func (ow *observedWriter) Write(p []byte) (int, error) {
	if ow.status == 0 {
		ow.status = http.StatusOK
	}

	n, err := ow.ResponseWriter.Write(p)
	ow.bytes += int64(n)
	return n, err
}

func (ow *observedWriter) Unwrap() http.ResponseWriter {
	return ow.ResponseWriter
}

// StatusCode is the status sent to the client.  A handler that never wrote
// anything results in an implicit 200.
func (ow *observedWriter) StatusCode() int {
	if ow.status == 0 {
		return http.StatusOK
	}

	return ow.status
}

// AccessLog returns middleware that logs one line per request.  Aborted
// requests are logged at WARN and the abort is propagated.
func AccessLog(logger *zap.Logger) alice.Constructor {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
			var (
				start = time.Now()
				ow    = newObservedWriter(response)
			)

			defer func() {
				fields := []zap.Field{
					zap.String("method", request.Method),
					zap.String("path", request.URL.Path),
					zap.String("remoteAddr", request.RemoteAddr),
					zap.Int("status", ow.StatusCode()),
					zap.Int64("bytes", ow.bytes),
					zap.Duration("duration", time.Since(start)),
				}

				if id, ok := RequestIDFrom(request.Context()); ok {
					fields = append(fields, zap.String("requestID", id))
				}

				if r := recover(); r != nil {
					logger.Warn("request aborted", append(fields, zap.Any("cause", r))...)
					panic(r)
				}

				logger.Info("request", fields...)
			}()

			next.ServeHTTP(ow, request)
		})
	}
}
