// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrottest

import (
	"github.com/stretchr/testify/assert"
	"github.com/xmidt-org/parrot"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zaptest"
)

// Logger is an fx option that supplies a zaptest logger bound to t, which also
// receives the fx event log.  t has the same restrictions as in AsTestable.
func Logger(t any) fx.Option {
	return parrot.Logger(
		zaptest.NewLogger(AsTestable(t)),
	)
}

// NewApp creates an *fxtest.App that logs to the enclosing test.
func NewApp(t any, o ...fx.Option) *fxtest.App {
	tt := AsTestable(t)
	return fxtest.New(
		tt,
		append(
			[]fx.Option{Logger(tt)},
			o...,
		)...,
	)
}

// NewErrApp creates an *fx.App which is expected to fail during construction.
// The failure is asserted before the app is returned.  Logging is silenced.
func NewErrApp(t any, o ...fx.Option) *fx.App {
	app := fx.New(
		append(
			o,
			fx.NopLogger,
		)...,
	)

	assert.Error(AsTestable(t), app.Err())
	return app
}
