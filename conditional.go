// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrot

import "go.uber.org/fx"

// Conditional gates a set of fx options.  A nil *Conditional emits nothing.
type Conditional struct{}

// Then returns o bundled together, or an empty option when c is nil.
func (c *Conditional) Then(o ...fx.Option) fx.Option {
	if c == nil {
		return fx.Options()
	}

	return fx.Options(o...)
}

// If yields a usable Conditional only when f is true.  The parrot programs use
// it to switch on optional servers based on what is configured:
//
//	parrot.If(v.IsSet("servers.debug")).Then(
//	    parrothttp.ProvideDebug(parrothttp.Server()),
//	)
func If(f bool) *Conditional {
	if f {
		return new(Conditional)
	}

	return nil
}

// IfNot is the inverse of If.
func IfNot(f bool) *Conditional {
	return If(!f)
}
