// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrothttp

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type MiddlewareSuite struct {
	suite.Suite
}

func (suite *MiddlewareSuite) TestRequestIDGenerated() {
	var (
		seen     string
		response = httptest.NewRecorder()
		handler  = RequestID(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
			var ok bool
			seen, ok = RequestIDFrom(request.Context())
			suite.True(ok)
		}))
	)

	handler.ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/", nil))
	suite.Equal(seen, response.Header().Get(RequestIDHeader))

	_, err := uuid.Parse(seen)
	suite.NoError(err)
}

func (suite *MiddlewareSuite) TestRequestIDFromClient() {
	var (
		request  = httptest.NewRequest(http.MethodGet, "/", nil)
		response = httptest.NewRecorder()
		handler  = RequestID(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	)

	request.Header.Set(RequestIDHeader, "client-id")
	handler.ServeHTTP(response, request)
	suite.Equal("client-id", response.Header().Get(RequestIDHeader))
}

func (suite *MiddlewareSuite) TestRequestIDMissing() {
	id, ok := RequestIDFrom(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	suite.False(ok)
	suite.Empty(id)
}

func (suite *MiddlewareSuite) TestAccessLog() {
	var (
		core, logs = observer.New(zapcore.DebugLevel)
		response   = httptest.NewRecorder()
		handler    = RequestID(
			AccessLog(zap.New(core))(
				http.HandlerFunc(func(response http.ResponseWriter, _ *http.Request) {
					response.WriteHeader(http.StatusAccepted)
					io.WriteString(response, "squawk")
				}),
			),
		)
	)

	handler.ServeHTTP(response, httptest.NewRequest(http.MethodPost, "/echo", nil))
	suite.Equal(http.StatusAccepted, response.Code)

	entries := logs.FilterMessage("request").All()
	suite.Require().Len(entries, 1)

	fields := entries[0].ContextMap()
	suite.Equal(http.MethodPost, fields["method"])
	suite.Equal("/echo", fields["path"])
	suite.EqualValues(http.StatusAccepted, fields["status"])
	suite.EqualValues(6, fields["bytes"])
	suite.Equal(response.Header().Get(RequestIDHeader), fields["requestID"])
}

func (suite *MiddlewareSuite) TestAccessLogAbort() {
	var (
		core, logs = observer.New(zapcore.DebugLevel)
		handler    = AccessLog(zap.New(core))(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				panic(http.ErrAbortHandler)
			}),
		)
	)

	suite.PanicsWithValue(http.ErrAbortHandler, func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/echo", nil))
	})

	suite.Equal(1, logs.FilterMessage("request aborted").Len())
	suite.Zero(logs.FilterMessage("request").Len())
}

func (suite *MiddlewareSuite) TestObservedWriterUnwrap() {
	var (
		recorder = httptest.NewRecorder()
		ow       = newObservedWriter(recorder)
	)

	suite.Same(recorder, ow.Unwrap())
	suite.Equal(http.StatusOK, ow.StatusCode())
	suite.NoError(http.NewResponseController(ow).Flush())
	suite.True(recorder.Flushed)
}

func TestMiddleware(t *testing.T) {
	suite.Run(t, new(MiddlewareSuite))
}
