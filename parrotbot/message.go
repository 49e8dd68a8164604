// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrotbot

import "context"

// Message is an incoming chat message.
type Message struct {
	// ID is the gateway's identifier for the message
	ID string

	// ChannelID is where the message was posted, and where replies go
	ChannelID string

	// AuthorID identifies the sender
	AuthorID string

	// Content is the message's raw text
	Content string
}

// Sender posts messages to chat channels.  Sends are network operations
// and can fail.
type Sender interface {
	Send(ctx context.Context, channelID, content string) error
}

// SenderFunc is a closure type that implements Sender
type SenderFunc func(context.Context, string, string) error

// Send implements Sender
func (sf SenderFunc) Send(ctx context.Context, channelID, content string) error {
	return sf(ctx, channelID, content)
}

// Listener receives every message seen by the gateway.
type Listener interface {
	// Name identifies the listener in logs and metrics
	Name() string

	// OnMessage handles one message.  The returned flag reports whether the
	// listener acted on it.
	OnMessage(ctx context.Context, m Message) bool
}
