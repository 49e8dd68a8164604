// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrottest

import (
	"fmt"
	"testing"
)

// Testable is the minimal interface required for assertions, fxtest, and zaptest.
// *testing.T and *testing.B implement it.
type Testable interface {
	Logf(string, ...interface{})
	Errorf(string, ...interface{})
	Fail()
	Failed() bool
	FailNow()
	Name() string
}

// AsTestable converts v into a Testable.  v may be a *testing.T, a *testing.B,
// or anything with a T() *testing.T method, such as a testify suite.
//
// If v cannot be coerced into a Testable, this function panics.
func AsTestable(v any) Testable {
	if tt, ok := v.(Testable); ok {
		return tt
	}

	type testHolder interface {
		T() *testing.T
	}

	if th, ok := v.(testHolder); ok {
		return th.T()
	}

	panic(fmt.Errorf("%T cannot be converted into a Testable", v))
}
