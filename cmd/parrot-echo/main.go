// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/xmidt-org/parrot"
	"github.com/xmidt-org/parrot/parrothttp"
	"go.uber.org/fx"
)

const applicationName = "parrot-echo"

func main() {
	v, err := parrot.NewViper(applicationName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(parrot.ExitCodeFor(err, nil))
	}

	v.SetDefault("servers.main.address", parrothttp.DefaultAddress)

	app := fx.New(
		parrot.ForViper(v),
		parrot.Logging("log"),
		parrot.Metrics(),
		parrothttp.Provide(parrothttp.Server()),
		parrot.If(v.IsSet(parrothttp.DebugServerKey)).Then(
			parrothttp.ProvideDebug(parrothttp.Server()),
		),
	)

	os.Exit(parrot.Run(app, os.Stderr))
}
