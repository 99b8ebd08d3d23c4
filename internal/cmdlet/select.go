// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cmdlet

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Selector projects a response for output.
type Selector struct {
	// Spec is "*", a response path or ^Param. An empty Spec selects nothing.
	Spec  string
	param string
}

// ParseSelect validates spec against def. "" falls back to def's default.
func ParseSelect(spec string, def *Def) (Selector, error) {
	if spec == "" {
		spec = def.Select
	}
	s := Selector{Spec: spec}
	if name, ok := strings.CutPrefix(spec, "^"); ok {
		if _, found := def.Param(name); !found {
			return Selector{}, fmt.Errorf("--select ^%s: %s has no parameter %q", name, def.Name, name)
		}
		s.param = name
	}
	return s, nil
}

// Whole reports whether the selector emits the entire response.
func (s Selector) Whole() bool { return s.Spec == "*" }

// Path is the response path selected, "" for whole-response and parameter
// selectors.
func (s Selector) Path() string {
	if s.Spec == "*" || s.param != "" {
		return ""
	}
	return s.Spec
}

// Apply returns the selected JSON, or nil when nothing is selected.
func (s Selector) Apply(output []byte, b *Bound) (json.RawMessage, error) {
	switch {
	case s.Spec == "":
		return nil, nil

	case s.Spec == "*":
		return output, nil

	case s.param != "":
		v, ok := b.Value(s.param)
		if !ok {
			return nil, nil
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("selecting ^%s: %w", s.param, err)
		}
		return data, nil

	default:
		r := gjson.GetBytes(output, s.Spec)
		if !r.Exists() {
			return nil, nil
		}
		return json.RawMessage(r.Raw), nil
	}
}
