// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrot

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/dig"
	"go.uber.org/fx"
)

// DefaultStopTimeout bounds how long Run waits for an app to stop.
const DefaultStopTimeout = 15 * time.Second

// Run starts app and blocks until it is shut down, either by a signal or by a
// component such as a failed task.  The returned value is the process exit code.
// Failures are reported to errOut, with startup failures reduced to their root cause.
func Run(app *fx.App, errOut io.Writer) int {
	if err := app.Err(); err != nil {
		fmt.Fprintf(errOut, "unable to assemble app: %s\n", dig.RootCause(err))
		return ExitCodeFor(err, nil)
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.StartTimeout())
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		fmt.Fprintf(errOut, "unable to start app: %s\n", err)
		return ExitCodeFor(err, nil)
	}

	signal := <-app.Wait()

	stopCtx, cancel := context.WithTimeout(context.Background(), DefaultStopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(errOut, "unable to stop app cleanly: %s\n", err)
		if signal.ExitCode == 0 {
			return ExitFailure
		}
	}

	return signal.ExitCode
}
