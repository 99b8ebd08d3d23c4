// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller extracts values from SDK responses rendered as JSON using
// dotted paths with array subscripts.
package driller
