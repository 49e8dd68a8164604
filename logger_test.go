// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerSuite struct {
	suite.Suite
}

func (suite *LoggerSuite) yaml(v string) *viper.Viper {
	vp := viper.New()
	vp.SetConfigType("yaml")
	suite.Require().NoError(vp.ReadConfig(strings.NewReader(v)))
	return vp
}

func (suite *LoggerSuite) TestNewLogger() {
	suite.Run("Default", func() {
		l, err := LogConfig{}.NewLogger()
		suite.Require().NoError(err)
		suite.True(l.Core().Enabled(zapcore.InfoLevel))
		suite.False(l.Core().Enabled(zapcore.DebugLevel))
	})

	suite.Run("Development", func() {
		l, err := LogConfig{Level: zapcore.DebugLevel, Development: true}.NewLogger()
		suite.Require().NoError(err)
		suite.True(l.Core().Enabled(zapcore.DebugLevel))
	})

	suite.Run("InvalidEncoding", func() {
		_, err := LogConfig{Encoding: "nosuch"}.NewLogger()
		suite.Error(err)
	})
}

func (suite *LoggerSuite) TestLogging() {
	output := filepath.Join(suite.T().TempDir(), "parrot.log")

	var l *zap.Logger
	app := fxtest.New(
		suite.T(),
		ForViper(suite.yaml(`
log:
  level: warn
  encoding: json
  outputPaths:
    - `+output+`
`)),
		Logging("log"),
		fx.Populate(&l),
	)

	app.RequireStart()
	suite.Require().NotNil(l)
	suite.False(l.Core().Enabled(zapcore.InfoLevel))
	l.Warn("squawk")
	app.RequireStop()

	contents, err := os.ReadFile(output)
	suite.Require().NoError(err)
	suite.Contains(string(contents), "squawk")
}

func (suite *LoggerSuite) TestLoggingError() {
	app := fx.New(
		fx.NopLogger,
		ForViper(suite.yaml(`
log:
  encoding: nosuch
`)),
		Logging("log"),
		fx.Invoke(func(*zap.Logger) {}),
	)

	suite.Require().Error(app.Err())
	suite.Equal(ExitConfiguration, ExitCodeFor(app.Err(), nil))
}

func TestLogger(t *testing.T) {
	suite.Run(t, new(LoggerSuite))
}
