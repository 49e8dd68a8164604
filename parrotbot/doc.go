// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package parrotbot implements the parrot chat bot.

The bot connects to a Discord gateway and attaches independent listeners to
it.  Each listener is a Dispatcher with a fixed table of literal triggers, so
every incoming message is offered to every listener and one listener's failure
never affects another.  Alongside the gateway, an Announcer periodically posts
to a configured channel.
*/
package parrotbot
