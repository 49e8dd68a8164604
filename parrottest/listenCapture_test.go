// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrottest

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListenCapture(t *testing.T) {
	var (
		assert  = assert.New(t)
		require = require.New(t)
		ch      = make(chan net.Addr, 1)
	)

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	defer l.Close()

	assert.Equal(l, ListenCapture(ch)(l))

	addr, ok := ListenReceive(ch, time.Second)
	assert.True(ok)
	assert.Equal(l.Addr(), addr)

	addr, ok = ListenReceive(ch, 10*time.Millisecond)
	assert.False(ok)
	assert.Nil(addr)
}
