// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package parrot holds the application plumbing shared by the parrot programs.
//
// # Configuration
//
// Configuration is read with viper and exposed to an fx.App through the
// Unmarshaler component.  NewViper bootstraps a viper instance from optional
// .env files, an optional config file, and the process environment.
//
// # Logging and metrics
//
// Logging installs a zap logger as both a component and the fx event logger.
// Metrics supplies a single prometheus registry.
//
// # Tasks
//
// RunTasks binds long-running, context-driven tasks to an fx.App.  The first task
// to stop shuts down the whole app and its name is reported.
package parrot
