// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cmdlet

import (
	"encoding/json"
	"fmt"
)

// Envelope is the outcome of one invocation item. Every failure, from
// validation through the SDK call, lands in Err.
type Envelope struct {
	Operation string
	Input     Request
	// Output is the response as JSON without ResultMetadata.
	Output json.RawMessage
	// Selected is Output after --select; nil means nothing to emit.
	Selected  json.RawMessage
	NextToken string
	Err       error
}

// OK reports whether the item succeeded.
func (e Envelope) OK() bool { return e.Err == nil }

// responseJSON renders an SDK output struct as JSON, dropping the
// ResultMetadata every output carries.
func responseJSON(out any) ([]byte, error) {
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("encoding response: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		// Not an object; nothing to strip.
		return data, nil //nolint:nilerr
	}
	if _, ok := doc["ResultMetadata"]; !ok {
		return data, nil
	}
	delete(doc, "ResultMetadata")
	return json.Marshal(doc)
}
