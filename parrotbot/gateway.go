// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrotbot

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// Session is the part of *discordgo.Session the gateway uses.
type Session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Session = (*discordgo.Session)(nil)

// Intents are the gateway events the bot subscribes to.  Message content is a
// privileged intent and must also be enabled for the bot in Discord.
const Intents = discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

// NewSession creates an unopened discordgo session for the configured bot token.
func NewSession(cfg Config) (*discordgo.Session, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("unable to create gateway session: %w", err)
	}

	s.Identify.Intents = Intents
	return s, nil
}

// Gateway connects listeners to a chat session and sends messages through it.
type Gateway struct {
	session Session
	logger  *zap.Logger
	metrics *Metrics

	// selfID is the bot's own user ID, learned from the Ready event
	selfID atomic.Value
}

// NewGateway wraps a session.  The session should not be open yet, so that no
// events are missed.
func NewGateway(s Session, logger *zap.Logger, m *Metrics) *Gateway {
	g := &Gateway{
		session: s,
		logger:  logger.With(zap.String("task", DispatcherTask)),
		metrics: m,
	}

	s.AddHandler(g.onReady)
	s.AddHandler(g.onMessageCreate)
	return g
}

func (g *Gateway) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User == nil {
		return
	}

	g.selfID.Store(r.User.ID)
	g.logger.Info(
		"gateway ready",
		zap.String("user", r.User.Username),
		zap.String("userID", r.User.ID),
		zap.Int("guilds", len(r.Guilds)),
	)
}

func (g *Gateway) onMessageCreate(_ *discordgo.Session, mc *discordgo.MessageCreate) {
	if _, ok := g.toMessage(mc); ok {
		g.metrics.observeMessage()
	}
}

// toMessage converts a gateway event, rejecting events without a message
// and messages the bot wrote itself.
func (g *Gateway) toMessage(mc *discordgo.MessageCreate) (m Message, ok bool) {
	if mc == nil || mc.Message == nil {
		return
	}

	m = Message{
		ID:        mc.ID,
		ChannelID: mc.ChannelID,
		Content:   mc.Content,
	}

	if mc.Author != nil {
		m.AuthorID = mc.Author.ID
	}

	selfID, _ := g.selfID.Load().(string)
	ok = len(selfID) == 0 || m.AuthorID != selfID
	return
}

// Listen attaches l to the session as its own handler.  discordgo runs each
// handler on its own goroutine, so listeners never wait on one another.  The
// returned closure detaches l.
func (g *Gateway) Listen(l Listener) func() {
	g.logger.Info("attaching listener", zap.String("listener", l.Name()))
	return g.session.AddHandler(func(_ *discordgo.Session, mc *discordgo.MessageCreate) {
		if m, ok := g.toMessage(mc); ok {
			l.OnMessage(context.Background(), m)
		}
	})
}

// Send implements Sender.
func (g *Gateway) Send(ctx context.Context, channelID, content string) error {
	_, err := g.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return err
}

// Run opens the gateway connection and holds it until ctx is canceled.
func (g *Gateway) Run(ctx context.Context) error {
	if err := g.session.Open(); err != nil {
		return fmt.Errorf("unable to open gateway: %w", err)
	}

	g.logger.Info("gateway connected")
	<-ctx.Done()

	if err := g.session.Close(); err != nil {
		g.logger.Warn("unable to close gateway", zap.Error(err))
	}

	g.logger.Info("gateway disconnected")
	return ctx.Err()
}
