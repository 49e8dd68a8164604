// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ErrTaskStopped is reported when a task returns without an error while
// the app was still running.  Tasks are expected to run until canceled.
var ErrTaskStopped = errors.New("task stopped unexpectedly")

// Task is a named, long-running operation.  Run must return once its
// context is canceled.
type Task struct {
	Name string
	Run  func(context.Context) error
}

// TaskResult describes how a task finished.
type TaskResult struct {
	Name string
	Err  error
}

// run executes the task, turning a panic into an error
func (t Task) run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task %s panicked: %v", t.Name, r)
		}
	}()

	return t.Run(ctx)
}

// Race runs every task concurrently and returns the result of the first one to
// finish.  The remaining tasks are then canceled, and Race waits for them to return.
//
// With no tasks, Race returns the zero TaskResult immediately.
func Race(ctx context.Context, tasks ...Task) TaskResult {
	if len(tasks) == 0 {
		return TaskResult{}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan TaskResult, len(tasks))
	for _, t := range tasks {
		go func(t Task) {
			results <- TaskResult{
				Name: t.Name,
				Err:  t.run(ctx),
			}
		}(t)
	}

	first := <-results
	cancel()
	for i := 1; i < len(tasks); i++ {
		<-results
	}

	return first
}

// RunTasks races the given tasks for the lifetime of an fx.App.  The race
// starts with the app.  If any task stops before the app is stopping, that
// task is logged by name and the app is shut down with an exit code from
// ExitCodeFor.  Stopping the app cancels every task and waits for them.
func RunTasks(lc fx.Lifecycle, sh fx.Shutdowner, logger *zap.Logger, tasks ...Task) {
	var (
		ctx, cancel = context.WithCancel(context.Background())
		done        = make(chan struct{})
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, t := range tasks {
				logger.Info("starting task", zap.String("task", t.Name))
			}

			go func() {
				defer close(done)
				result := Race(ctx, tasks...)
				if ctx.Err() != nil {
					// the app is stopping, so every task is expected to end
					return
				}

				err := result.Err
				if err == nil {
					err = ErrTaskStopped
				}

				logger.Error("task stopped", zap.String("task", result.Name), zap.Error(err))
				sh.Shutdown(fx.ExitCode(ExitCodeFor(err, nil)))
			}()

			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
