// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrotbot

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"github.com/xmidt-org/parrot"
	"go.uber.org/multierr"
)

const (
	// TokenEnv is the environment variable holding the gateway bot token.
	TokenEnv = "DISCORD_TOKEN"

	// ChannelIDEnv is the environment variable holding the announcement channel.
	ChannelIDEnv = "CHANNEL_ID"

	// TokenKey is the configuration key bound to TokenEnv.
	TokenKey = "bot.token"

	// ChannelIDKey is the configuration key bound to ChannelIDEnv.
	ChannelIDKey = "bot.channelID"
)

// ErrMissingEnv indicates that a required environment variable is unset or empty.
var ErrMissingEnv = errors.New("missing required environment variable")

// Config is what the bot needs from its environment.
type Config struct {
	// Token authenticates the bot with the gateway
	Token string

	// ChannelID is where the announcer posts
	ChannelID string
}

// Validate reports every missing value at once.
func (c Config) Validate() (err error) {
	if len(c.Token) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %s", ErrMissingEnv, TokenEnv))
	}

	if len(c.ChannelID) == 0 {
		err = multierr.Append(err, fmt.Errorf("%w: %s", ErrMissingEnv, ChannelIDEnv))
	}

	return
}

// NewConfig binds the bot's environment variables to v and reads the Config.
// A missing variable is a configuration error.
func NewConfig(v *viper.Viper) (cfg Config, err error) {
	err = multierr.Combine(
		v.BindEnv(TokenKey, TokenEnv),
		v.BindEnv(ChannelIDKey, ChannelIDEnv),
	)

	if err == nil {
		cfg = Config{
			Token:     v.GetString(TokenKey),
			ChannelID: v.GetString(ChannelIDKey),
		}

		err = cfg.Validate()
	}

	if err != nil {
		err = parrot.ConfigurationError(err)
	}

	return
}
