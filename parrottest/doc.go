// SPDX-FileCopyrightText: 2023 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package parrottest has the shared fixtures for testing parrot components:
// fxtest apps with zap test logging, viper-backed suites, listen address
// capture, and a mocked chat sender.
package parrottest
