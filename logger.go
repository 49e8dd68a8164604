// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrot

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig is the unmarshaled form of a zap logger.  The zero value
// produces a JSON logger at INFO level writing to stderr.
type LogConfig struct {
	// Level is the minimum enabled level, e.g. "debug" or "warn"
	Level zapcore.Level

	// Development switches to zap's development defaults: console
	// encoding, stack traces on warnings, DPanic panics
	Development bool

	// Encoding is either "json" or "console".  If unset, the default
	// for Development is used.
	Encoding string

	// OutputPaths are zap sink URLs or file paths.  Defaults to stderr.
	OutputPaths []string

	// ErrorOutputPaths receive zap's internal errors.  Defaults to stderr.
	ErrorOutputPaths []string
}

// NewLogger builds the zap logger described by this configuration.
func (lc LogConfig) NewLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}

	zc.Level = zap.NewAtomicLevelAt(lc.Level)
	if len(lc.Encoding) > 0 {
		zc.Encoding = lc.Encoding
	}

	if len(lc.OutputPaths) > 0 {
		zc.OutputPaths = append([]string{}, lc.OutputPaths...)
	}

	if len(lc.ErrorOutputPaths) > 0 {
		zc.ErrorOutputPaths = append([]string{}, lc.ErrorOutputPaths...)
	}

	return zc.Build()
}

// fxLogger routes the fx.App's own event log through zap
func fxLogger(l *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: l}
}

// Logger supplies an existing zap logger as a component and uses it
// for fx's event log.
func Logger(l *zap.Logger) fx.Option {
	return fx.Options(
		fx.Supply(l),
		fx.WithLogger(fxLogger),
	)
}

// Logging provides a *zap.Logger unmarshaled from the given configuration key.
// The logger also becomes the fx event logger and is synced when the app stops.
func Logging(key string) fx.Option {
	return fx.Options(
		fx.Provide(
			func(u Unmarshaler) (l *zap.Logger, err error) {
				var lc LogConfig
				if err = u.UnmarshalKey(key, &lc); err == nil {
					l, err = lc.NewLogger()
				}

				if err != nil {
					err = ConfigurationError(
						fmt.Errorf("unable to build logger from [%s]: %w", key, err),
					)
				}

				return
			},
		),
		fx.WithLogger(fxLogger),
		fx.Invoke(
			func(lc fx.Lifecycle, l *zap.Logger) {
				lc.Append(fx.StopHook(func() {
					// syncing stderr fails on some platforms, which is harmless
					_ = l.Sync()
				}))
			},
		),
	)
}
