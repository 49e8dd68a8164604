// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrot

import "errors"

const (
	// ExitFailure is the exit code for any error that carries no exit code of its own.
	ExitFailure int = 1

	// ExitConfiguration is the exit code used when a program cannot start
	// because of missing or invalid configuration.
	ExitConfiguration int = 2
)

// ExitCoder is implemented by errors that know which process exit code
// they should produce.
type ExitCoder interface {
	ExitCode() int
}

type exitCodeErr struct {
	error
	code int
}

func (ece exitCodeErr) ExitCode() int { return ece.code }

func (ece exitCodeErr) Unwrap() error { return ece.error }

// UseExitCode associates an exit code with err.  The returned error unwraps
// to err.  A nil err panics here rather than later.
func UseExitCode(err error, code int) error {
	if err == nil {
		panic("parrot: cannot associate a nil error with an exit code")
	}

	return exitCodeErr{
		error: err,
		code:  code,
	}
}

// ConfigurationError marks err as a startup configuration failure.
func ConfigurationError(err error) error {
	return UseExitCode(err, ExitConfiguration)
}

// ErrorCoder is an optional strategy for mapping errors onto exit codes.  It is
// invoked with nil errors too.
type ErrorCoder func(error) int

// ExitCodeFor determines the exit code for err, checking in order:
//
//   - an ExitCoder anywhere in err's chain
//   - the coder, if not nil
//   - ExitFailure for any non-nil err
//
// A nil err with a nil coder yields zero.
func ExitCodeFor(err error, coder ErrorCoder) int {
	var ec ExitCoder
	switch {
	case errors.As(err, &ec):
		return ec.ExitCode()

	case coder != nil:
		return coder(err)

	case err != nil:
		return ExitFailure

	default:
		return 0
	}
}
