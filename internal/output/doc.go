// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output filters, sorts and renders operation results as text tables,
// JSON, YAML or raw JSON, and describes SDK output shapes for --schema.
package output
