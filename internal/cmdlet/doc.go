// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cmdlet adapts shell parameters to single AWS SDK operations.
//
// An operation is declared once as a Def (parameters, default selection,
// pagination) and bound to its SDK method with NewOp. For each invocation
// item the Executor binds the parameters the user set, builds the request
// generically, confirms mutating calls, pages through list results and
// captures the outcome, success or failure, in an Envelope.
package cmdlet
