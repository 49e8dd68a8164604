// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrotbot

import (
	"github.com/xmidt-org/parrot"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	// DispatcherTask names the task holding the gateway connection.
	DispatcherTask = "dispatcher"

	// AnnouncerTask names the periodic announcement task.
	AnnouncerTask = "announcer"

	// PingListener answers liveness checks.
	PingListener = "ping"

	// CheckListener answers the richer check command.
	CheckListener = "check"

	// ListenersGroup is the fx value group holding every Listener.
	ListenersGroup = "listeners"
)

// PingCommands is the command table of the ping listener.
func PingCommands() []Command {
	return []Command{
		{Trigger: "!ping", Action: Reply("Pong!")},
	}
}

// CheckCommands is the command table of the check listener.
func CheckCommands() []Command {
	return []Command{
		{Trigger: "!check", Action: Reply("Hello!")},
	}
}

// provideListener provides a Dispatcher as a member of ListenersGroup.
func provideListener(name string, commands func() []Command) fx.Option {
	return fx.Provide(
		fx.Annotated{
			Group: ListenersGroup,
			Target: func(s Sender, logger *zap.Logger, m *Metrics) (Listener, error) {
				d, err := NewDispatcher(name, s, logger, commands()...)
				if err != nil {
					return nil, err
				}

				return d.WithMetrics(m), nil
			},
		},
	)
}

// StartIn holds the dependencies for starting the bot.
type StartIn struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *zap.Logger
	Gateway    *Gateway
	Announcer  *Announcer
	Listeners  []Listener `group:"listeners"`
}

// Start attaches every listener to the gateway, then races the dispatcher and
// announcer tasks for the life of the app.  Whichever stops first is reported
// and takes the app down.
func Start(in StartIn) {
	for _, l := range in.Listeners {
		in.Gateway.Listen(l)
	}

	parrot.RunTasks(
		in.Lifecycle,
		in.Shutdowner,
		in.Logger,
		parrot.Task{Name: DispatcherTask, Run: in.Gateway.Run},
		parrot.Task{Name: AnnouncerTask, Run: in.Announcer.Run},
	)
}

// Provide assembles the chat bot.  A *viper.Viper, a *zap.Logger, and a
// prometheus.Registerer must be available.
func Provide() fx.Option {
	return fx.Options(
		fx.Provide(
			NewConfig,
			func(cfg Config) (Session, error) {
				return NewSession(cfg)
			},
			NewMetrics,
			NewGateway,
			func(g *Gateway) Sender { return g },
			NewAnnouncer,
		),
		provideListener(PingListener, PingCommands),
		provideListener(CheckListener, CheckCommands),
		fx.Invoke(Start),
	)
}
