// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for awsctl's user
// configuration. The configuration is expected to be a YAML document located
// in the user's configuration directory, typically:
//   - Linux: $XDG_CONFIG_HOME/awsctl.yaml or $HOME/.config/awsctl.yaml
//   - macOS: $HOME/Library/Application Support/awsctl.yaml
//   - Windows: %APPDATA%/awsctl.yaml
//
// AWSCTL_CFG_FILE overrides the location. Keys are looked up first under the
// active Namespace (the service command, e.g. "dms") and then at the root.
package config
