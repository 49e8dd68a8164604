// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrottest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/parrot"
	"go.uber.org/fx"
)

type SuiteSuite struct {
	Suite
}

func (s *SuiteSuite) TestYAML() {
	s.YAML("value: 123\n")
	s.Equal(123, s.Viper().GetInt("value"))

	var (
		value struct{ Value int }
		app   = s.Fxtest(
			fx.Invoke(func(u parrot.Unmarshaler) error {
				return u.Unmarshal(&value)
			}),
		)
	)

	app.RequireStart()
	app.RequireStop()
	s.Equal(123, value.Value)
}

func (s *SuiteSuite) TestFx() {
	app := s.Fx(
		fx.Invoke(func() error { return errors.New("expected") }),
	)

	s.Error(app.Err())
}

func (s *SuiteSuite) TestNewErrApp() {
	NewErrApp(s, fx.Invoke(func() error { return errors.New("expected") }))
}

func (s *SuiteSuite) TestMockSender() {
	m := new(MockSender)
	m.ExpectSend("channel", "Pong!").Return(nil).Once()
	s.NoError(m.Send(context.Background(), "channel", "Pong!"))
	m.AssertExpectations(s.T())
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(SuiteSuite))
}
