// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrottest

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSender is a mocked chat message sender.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, channelID, content string) error {
	return m.Called(ctx, channelID, content).Error(0)
}

// ExpectSend sets up an expectation for a message sent to channelID with the
// given content, using any context.
func (m *MockSender) ExpectSend(channelID, content string) *mock.Call {
	return m.On("Send", mock.Anything, channelID, content)
}
