// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package prompt asks the user to confirm mutating operations. Answers of
// Yes to All or No to All stick for the remaining items of an invocation.
package prompt
