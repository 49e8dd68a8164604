// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrotbot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"
)

type GatewaySuite struct {
	suite.Suite

	session *mockSession
	metrics *Metrics
	gateway *Gateway
}

func (suite *GatewaySuite) SetupTest() {
	var err error
	suite.metrics, err = NewMetrics(prometheus.NewPedanticRegistry())
	suite.Require().NoError(err)

	suite.session = new(mockSession)
	suite.gateway = NewGateway(suite.session, zaptest.NewLogger(suite.T()), suite.metrics)
}

func (suite *GatewaySuite) TestNewGateway() {
	suite.Equal(2, suite.session.handlerCount())
}

func (suite *GatewaySuite) TestListen() {
	l := new(mockListener)
	l.On("OnMessage", Message{ID: "1", ChannelID: "channel", AuthorID: "human", Content: "!ping"}).
		Return(true).
		Once()

	suite.gateway.Listen(l)
	suite.Equal(3, suite.session.handlerCount())

	suite.session.ready("bot")
	suite.session.message("1", "channel", "human", "!ping")
	suite.session.message("2", "channel", "bot", "!ping")

	l.AssertExpectations(suite.T())
	suite.Equal(1.0, testutil.ToFloat64(suite.metrics.Messages))
}

func (suite *GatewaySuite) TestListenBeforeReady() {
	l := new(mockListener)
	l.On("OnMessage", mock.Anything).Return(false).Once()

	suite.gateway.Listen(l)
	suite.session.message("1", "channel", "someone", "hello")
	l.AssertExpectations(suite.T())
}

func (suite *GatewaySuite) TestSend() {
	suite.Run("Success", func() {
		suite.session.ExpectSend("channel", "Pong!", nil).Once()
		suite.NoError(suite.gateway.Send(context.Background(), "channel", "Pong!"))
	})

	suite.Run("Failure", func() {
		expectedErr := errors.New("expected")
		suite.session.ExpectSend("channel", "Hello!", expectedErr).Once()
		suite.ErrorIs(suite.gateway.Send(context.Background(), "channel", "Hello!"), expectedErr)
	})

	suite.session.AssertExpectations(suite.T())
}

func (suite *GatewaySuite) TestRun() {
	suite.session.ExpectOpen(nil).Once()
	suite.session.ExpectClose(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() {
		result <- suite.gateway.Run(ctx)
	}()

	cancel()
	select {
	case err := <-result:
		suite.ErrorIs(err, context.Canceled)
	case <-time.After(5 * time.Second):
		suite.Fail("Run did not return after cancellation")
	}

	suite.session.AssertExpectations(suite.T())
}

func (suite *GatewaySuite) TestRunOpenError() {
	expectedErr := errors.New("expected")
	suite.session.ExpectOpen(expectedErr).Once()

	err := suite.gateway.Run(context.Background())
	suite.ErrorIs(err, expectedErr)
	suite.session.AssertExpectations(suite.T())
}

func TestGateway(t *testing.T) {
	suite.Run(t, new(GatewaySuite))
}
