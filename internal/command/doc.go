// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command defines the CLI command set for awsctl. It turns each
// service's operation table into a command group, and wires flags,
// validators, actions, and shell completion.
package command
