// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrotbot

import (
	"context"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// mockSession is a Session that records handlers and lets tests deliver events
// to them directly.
type mockSession struct {
	mock.Mock

	lock     sync.Mutex
	handlers []interface{}
}

var _ Session = (*mockSession)(nil)

func (m *mockSession) AddHandler(handler interface{}) func() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.handlers = append(m.handlers, handler)
	return func() {}
}

func (m *mockSession) Open() error {
	return m.Called().Error(0)
}

func (m *mockSession) Close() error {
	return m.Called().Error(0)
}

func (m *mockSession) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	message, _ := args.Get(0).(*discordgo.Message)
	return message, args.Error(1)
}

func (m *mockSession) ExpectOpen(err error) *mock.Call {
	return m.On("Open").Return(err)
}

func (m *mockSession) ExpectClose(err error) *mock.Call {
	return m.On("Close").Return(err)
}

func (m *mockSession) ExpectSend(channelID, content string, err error) *mock.Call {
	var message *discordgo.Message
	if err == nil {
		message = &discordgo.Message{ChannelID: channelID, Content: content}
	}

	return m.On("ChannelMessageSend", channelID, content).Return(message, err)
}

// handlerCount is the number of registered handlers
func (m *mockSession) handlerCount() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.handlers)
}

// ready delivers a Ready event identifying the bot as selfID
func (m *mockSession) ready(selfID string) {
	m.lock.Lock()
	handlers := append([]interface{}{}, m.handlers...)
	m.lock.Unlock()

	r := &discordgo.Ready{
		User: &discordgo.User{ID: selfID, Username: "parrot"},
	}

	for _, h := range handlers {
		if f, ok := h.(func(*discordgo.Session, *discordgo.Ready)); ok {
			f(nil, r)
		}
	}
}

// message delivers a MessageCreate event to every message handler
func (m *mockSession) message(id, channelID, authorID, content string) {
	m.lock.Lock()
	handlers := append([]interface{}{}, m.handlers...)
	m.lock.Unlock()

	mc := &discordgo.MessageCreate{
		Message: &discordgo.Message{
			ID:        id,
			ChannelID: channelID,
			Content:   content,
			Author:    &discordgo.User{ID: authorID},
		},
	}

	for _, h := range handlers {
		if f, ok := h.(func(*discordgo.Session, *discordgo.MessageCreate)); ok {
			f(nil, mc)
		}
	}
}

// mockListener is a Listener that records what it sees.
type mockListener struct {
	mock.Mock
}

func (m *mockListener) Name() string {
	return "mock"
}

var _ Listener = (*mockListener)(nil)

func (m *mockListener) OnMessage(_ context.Context, msg Message) bool {
	return m.Called(msg).Bool(0)
}
