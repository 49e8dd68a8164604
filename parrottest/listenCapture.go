// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package parrottest

import (
	"net"
	"time"
)

// ListenCapture returns a listener constructor that sends the bind address
// of a net.Listener to ch.  The listener itself is not decorated.  Servers in
// tests bind ":0" or "127.0.0.1:0" and use this to find their port.
func ListenCapture(ch chan<- net.Addr) func(net.Listener) net.Listener {
	return func(l net.Listener) net.Listener {
		ch <- l.Addr()
		return l
	}
}

// ListenReceive waits up to timeout for an address sent by ListenCapture.
func ListenReceive(ch <-chan net.Addr, timeout time.Duration) (net.Addr, bool) {
	t := time.NewTimer(timeout)
	defer t.Stop()

	select {
	case a := <-ch:
		return a, true
	case <-t.C:
		return nil, false
	}
}
