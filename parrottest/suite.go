// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrottest

import (
	"strings"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/parrot"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

// Suite is an embeddable testify suite that gives each test a fresh viper instance.
type Suite struct {
	suite.Suite

	viper *viper.Viper
}

var _ suite.SetupTestSuite = (*Suite)(nil)

// SetupTest initializes a new viper instance for each test
func (suite *Suite) SetupTest() {
	suite.viper = viper.New()
}

// Viper returns the viper instance for the current test.
func (suite *Suite) Viper() *viper.Viper {
	return suite.viper
}

// YAML loads v as the configuration for the current test.
func (suite *Suite) YAML(v string) {
	suite.viper.SetConfigType("yaml")
	suite.Require().NoError(
		suite.viper.ReadConfig(strings.NewReader(v)),
	)
}

// Fxtest creates an *fxtest.App with test logging and the current viper
// configuration available through parrot.Unmarshaler.
func (suite *Suite) Fxtest(more ...fx.Option) *fxtest.App {
	return NewApp(
		suite,
		append(
			[]fx.Option{
				parrot.ForViper(suite.viper),
			},
			more...,
		)...,
	)
}

// Fx is like Fxtest, but returns an *fx.App for tests that expect errors.
func (suite *Suite) Fx(more ...fx.Option) *fx.App {
	return fx.New(
		append(
			[]fx.Option{
				fx.NopLogger,
				fx.Supply(zap.NewNop()),
				parrot.ForViper(suite.viper),
			},
			more...,
		)...,
	)
}
