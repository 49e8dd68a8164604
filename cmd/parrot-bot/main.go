// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/xmidt-org/parrot"
	"github.com/xmidt-org/parrot/parrotbot"
	"github.com/xmidt-org/parrot/parrothttp"
	"go.uber.org/fx"
)

const applicationName = "parrot-bot"

func main() {
	v, err := parrot.NewViper(applicationName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(parrot.ExitCodeFor(err, nil))
	}

	app := fx.New(
		parrot.ForViper(v),
		parrot.Logging("log"),
		parrot.Metrics(),
		parrotbot.Provide(),
		parrot.If(v.IsSet(parrothttp.DebugServerKey)).Then(
			parrothttp.ProvideDebug(parrothttp.Server()),
		),
	)

	os.Exit(parrot.Run(app, os.Stderr))
}
