// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrotbot

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultAnnounceInterval is how often the announcer wakes up.
	DefaultAnnounceInterval = 10 * time.Second

	// DefaultAnnounceContent is what the announcer posts.
	DefaultAnnounceContent = "Squawk! parrot is still here."

	// DefaultAnnounceEnabled switches announcements on or off.  The loop
	// still ticks when disabled, it just never sends.
	DefaultAnnounceEnabled = false
)

// Announcer periodically posts a fixed message to a channel.  Its fields are
// set once, before Run.
type Announcer struct {
	// Interval is the time between ticks.  Nonpositive values mean DefaultAnnounceInterval.
	Interval time.Duration

	// Enabled controls whether a tick actually sends anything
	Enabled bool

	// ChannelID is where announcements are posted
	ChannelID string

	// Content is the announcement text
	Content string

	Sender  Sender
	Logger  *zap.Logger
	Metrics *Metrics
}

// NewAnnouncer creates the bot's announcer, posting the default content to the
// configured channel.
func NewAnnouncer(cfg Config, s Sender, logger *zap.Logger, m *Metrics) *Announcer {
	return &Announcer{
		Interval:  DefaultAnnounceInterval,
		Enabled:   DefaultAnnounceEnabled,
		ChannelID: cfg.ChannelID,
		Content:   DefaultAnnounceContent,
		Sender:    s,
		Logger:    logger.With(zap.String("task", AnnouncerTask)),
		Metrics:   m,
	}
}

// Run waits for each tick and, when enabled, sends the announcement.  The first
// failed send ends the loop with that error; there are no retries.  Canceling
// ctx ends the loop with ctx.Err().  A send that has started is not canceled.
func (a *Announcer) Run(ctx context.Context) error {
	interval := a.Interval
	if interval <= 0 {
		interval = DefaultAnnounceInterval
	}

	a.Logger.Info("announcer started", zap.Duration("interval", interval), zap.Bool("enabled", a.Enabled))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if !a.Enabled {
				continue
			}

			err := a.Sender.Send(context.WithoutCancel(ctx), a.ChannelID, a.Content)
			a.Metrics.observeAnnouncement(err)
			if err != nil {
				return fmt.Errorf("unable to announce to channel %s: %w", a.ChannelID, err)
			}

			a.Logger.Debug("announcement sent", zap.String("channelID", a.ChannelID))
		}
	}
}
