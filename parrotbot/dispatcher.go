// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrotbot

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var (
	// ErrEmptyTrigger is returned for a Command without a trigger.
	ErrEmptyTrigger = errors.New("a command trigger cannot be empty")

	// ErrNilAction is returned for a Command without an action.
	ErrNilAction = errors.New("a command action cannot be nil")

	// ErrDuplicateTrigger is returned when two commands share a trigger.
	ErrDuplicateTrigger = errors.New("duplicate command trigger")
)

// Action is what a command does when its trigger matches.
type Action func(ctx context.Context, s Sender, m Message) error

// Reply returns an Action that sends content to the channel the message came from.
func Reply(content string) Action {
	return func(ctx context.Context, s Sender, m Message) error {
		return s.Send(ctx, m.ChannelID, content)
	}
}

// Command binds a literal trigger to an action.  The trigger must match the
// entire message content, case included.
type Command struct {
	Trigger string
	Action  Action
}

// Dispatcher is a Listener with a fixed command table.  The table is built once
// and only read afterwards, so a Dispatcher is safe for concurrent use.
type Dispatcher struct {
	name     string
	sender   Sender
	logger   *zap.Logger
	metrics  *Metrics
	commands map[string]Action
}

// NewDispatcher creates a Dispatcher for the given commands.  Empty triggers,
// nil actions, and duplicate triggers are all errors.
func NewDispatcher(name string, sender Sender, logger *zap.Logger, commands ...Command) (*Dispatcher, error) {
	var errs error
	table := make(map[string]Action, len(commands))
	for _, c := range commands {
		switch {
		case len(c.Trigger) == 0:
			errs = multierr.Append(errs, ErrEmptyTrigger)

		case c.Action == nil:
			errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrNilAction, c.Trigger))

		case table[c.Trigger] != nil:
			errs = multierr.Append(errs, fmt.Errorf("%w: %s", ErrDuplicateTrigger, c.Trigger))

		default:
			table[c.Trigger] = c.Action
		}
	}

	if errs != nil {
		return nil, fmt.Errorf("invalid commands for listener %s: %w", name, errs)
	}

	return &Dispatcher{
		name:     name,
		sender:   sender,
		logger:   logger.With(zap.String("listener", name)),
		commands: table,
	}, nil
}

// WithMetrics sets the collectors this dispatcher reports to and returns it.
func (d *Dispatcher) WithMetrics(m *Metrics) *Dispatcher {
	d.metrics = m
	return d
}

// Name implements Listener
func (d *Dispatcher) Name() string {
	return d.name
}

// OnMessage runs the action bound to the message's content.  Content with no
// command is ignored.  Action failures, panics included, are logged here and
// never reach the caller.
func (d *Dispatcher) OnMessage(ctx context.Context, m Message) bool {
	action, ok := d.commands[m.Content]
	if !ok {
		return false
	}

	err := d.run(ctx, action, m)
	if err != nil {
		d.logger.Error(
			"command failed",
			zap.String("trigger", m.Content),
			zap.String("channelID", m.ChannelID),
			zap.String("messageID", m.ID),
			zap.Error(err),
		)
	} else {
		d.logger.Debug("command handled", zap.String("trigger", m.Content), zap.String("channelID", m.ChannelID))
	}

	d.metrics.observeCommand(d.name, err)
	return true
}

func (d *Dispatcher) run(ctx context.Context, action Action, m Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command %s panicked: %v", m.Content, r)
		}
	}()

	return action(ctx, d.sender, m)
}
