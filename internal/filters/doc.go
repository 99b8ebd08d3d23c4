// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters narrows the records an operation emits.
//
// A filter is key, operator and target. Operators:
//
//   - = : exact match
//   - ~ : case-insensitive match
//   - ^ : prefix match
//   - < : less than
//   - > : greater than
//   - @ : contains (substring, or element of a list)
//   - / : regular expression
//
// Any operator may be negated with a leading !, e.g. "Status!=deleting".
// Expressions are comma separated; AWSCTL_FILTER_DELIM overrides the comma.
//
// Keys are matched against the OutputKey of the active attrs and otherwise
// treated as a path into each record. A key prefixed with _ is a server-side
// filter: it is not evaluated here but sent to APIs that accept a Filters
// list, with '|' separating alternative values ("_engine-name=mysql|postgres").
package filters
