// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrotbot

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/suite"
	"github.com/xmidt-org/parrot"
)

type ConfigSuite struct {
	suite.Suite
}

func (suite *ConfigSuite) TestNewConfig() {
	suite.T().Setenv(TokenEnv, "token")
	suite.T().Setenv(ChannelIDEnv, "channel")

	cfg, err := NewConfig(viper.New())
	suite.Require().NoError(err)
	suite.Equal(Config{Token: "token", ChannelID: "channel"}, cfg)
}

func (suite *ConfigSuite) TestMissing() {
	testData := []struct {
		name      string
		token     string
		channelID string
		missing   []string
	}{
		{"Token", "", "channel", []string{TokenEnv}},
		{"ChannelID", "token", "", []string{ChannelIDEnv}},
		{"Both", "", "", []string{TokenEnv, ChannelIDEnv}},
	}

	for _, record := range testData {
		suite.Run(record.name, func() {
			suite.T().Setenv(TokenEnv, record.token)
			suite.T().Setenv(ChannelIDEnv, record.channelID)

			_, err := NewConfig(viper.New())
			suite.Require().Error(err)
			suite.ErrorIs(err, ErrMissingEnv)
			suite.Equal(parrot.ExitConfiguration, parrot.ExitCodeFor(err, nil))
			for _, name := range record.missing {
				suite.ErrorContains(err, name)
			}
		})
	}
}

func (suite *ConfigSuite) TestFromConfigFile() {
	suite.T().Setenv(TokenEnv, "")
	suite.T().Setenv(ChannelIDEnv, "")

	v := viper.New()
	v.Set(TokenKey, "file-token")
	v.Set(ChannelIDKey, "file-channel")

	cfg, err := NewConfig(v)
	suite.Require().NoError(err)
	suite.Equal(Config{Token: "file-token", ChannelID: "file-channel"}, cfg)
}

func TestConfig(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}
