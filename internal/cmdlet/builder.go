// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cmdlet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Request is an SDK request in its generic form: a tree keyed by SDK field
// names. Only bound parameters appear in it.
type Request map[string]any

// BuildRequest places every bound parameter of def at its Field path.
func BuildRequest(def *Def, b *Bound) (Request, error) {
	req := Request{}
	for _, p := range def.Params {
		v, ok := b.Value(p.Name)
		if !ok {
			continue
		}
		if err := req.Set(p.Field, v); err != nil {
			return nil, fmt.Errorf("--%s: %w", p.Name, err)
		}
	}
	return req, nil
}

// Set places v at the dotted path. Intermediate objects are created; two
// objects landing on the same path are merged.
func (r Request) Set(path string, v any) error {
	parts := strings.Split(path, ".")
	current := map[string]any(r)
	for i, part := range parts[:len(parts)-1] {
		next, ok := current[part]
		if !ok || next == nil {
			m := map[string]any{}
			current[part] = m
			current = m
			continue
		}
		m, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%s is not an object", strings.Join(parts[:i+1], "."))
		}
		current = m
	}

	last := parts[len(parts)-1]
	if existing, ok := current[last].(map[string]any); ok {
		if incoming, ok := v.(map[string]any); ok {
			for k, iv := range incoming {
				if _, taken := existing[k]; !taken {
					existing[k] = iv
				}
			}
			return nil
		}
	}
	current[last] = v
	return nil
}

// Get returns the value at the top-level field.
func (r Request) Get(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// JSON renders r for logs, --what-if and cache keys. Keys are sorted by
// encoding/json so equal requests render identically.
func (r Request) JSON() []byte {
	data, err := json.Marshal(r)
	if err != nil {
		return []byte("{}")
	}
	return data
}

// Decode converts r into the SDK input type I. Fields I does not have are an
// error rather than silently dropped.
func Decode[I any](r Request) (*I, error) {
	in := new(I)
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(in); err != nil {
		return nil, fmt.Errorf("decoding request into %T: %w", in, err)
	}
	return in, nil
}
