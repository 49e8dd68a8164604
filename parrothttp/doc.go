// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package parrothttp implements the parrot echo service and the HTTP server
plumbing it runs on.

The echo service is a fixed route table: instructions at "/", a verbatim echo at
"/echo", and an ASCII-uppercasing echo at "/echo/uppercase".  Request bodies are
never buffered whole.  Each chunk read from the client is transformed, written,
and flushed before the next chunk is read.

Servers are unmarshaled from configuration and bound to an fx.App lifecycle.
A server that leaves its accept loop shuts down the whole app.
*/
package parrothttp
