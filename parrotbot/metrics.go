// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrotbot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xmidt-org/parrot"
	"go.uber.org/multierr"
)

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

// Metrics holds the chat bot's collectors.  A nil *Metrics records nothing.
type Metrics struct {
	// Messages counts messages received from the gateway, excluding the bot's own
	Messages prometheus.Counter

	// Commands counts matched commands by listener and outcome
	Commands *prometheus.CounterVec

	// Announcements counts periodic announcements by outcome
	Announcements *prometheus.CounterVec
}

// NewMetrics creates the chat bot's collectors and registers them.
func NewMetrics(r prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Messages: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: parrot.MetricsNamespace,
				Subsystem: "bot",
				Name:      "messages_total",
				Help:      "Total chat messages received from the gateway",
			},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: parrot.MetricsNamespace,
				Subsystem: "bot",
				Name:      "commands_total",
				Help:      "Total matched commands by listener and outcome",
			},
			[]string{"listener", "outcome"},
		),
		Announcements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: parrot.MetricsNamespace,
				Subsystem: "bot",
				Name:      "announcements_total",
				Help:      "Total periodic announcements by outcome",
			},
			[]string{"outcome"},
		),
	}

	err := multierr.Combine(
		r.Register(m.Messages),
		r.Register(m.Commands),
		r.Register(m.Announcements),
	)

	if err != nil {
		return nil, err
	}

	return m, nil
}

func outcome(err error) string {
	if err != nil {
		return outcomeFailure
	}

	return outcomeSuccess
}

func (m *Metrics) observeMessage() {
	if m != nil {
		m.Messages.Inc()
	}
}

func (m *Metrics) observeCommand(listener string, err error) {
	if m != nil {
		m.Commands.WithLabelValues(listener, outcome(err)).Inc()
	}
}

func (m *Metrics) observeAnnouncement(err error) {
	if m != nil {
		m.Announcements.WithLabelValues(outcome(err)).Inc()
	}
}
