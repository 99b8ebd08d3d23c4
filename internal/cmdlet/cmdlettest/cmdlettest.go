// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package cmdlettest provides helpers for testing operation tables.
package cmdlettest

import (
	"time"

	"github.com/awsctl/awsctl/internal/cmdlet"
)

// Source is a map-backed cmdlet.Source. A present key is a set flag.
type Source map[string]any

func (s Source) IsSet(name string) bool { _, ok := s[name]; return ok }

func (s Source) String(name string) string {
	v, _ := s[name].(string)
	return v
}

func (s Source) Bool(name string) bool {
	v, _ := s[name].(bool)
	return v
}

func (s Source) Int(name string) int {
	v, _ := s[name].(int)
	return v
}

func (s Source) StringSlice(name string) []string {
	v, _ := s[name].([]string)
	return v
}

// SampleValue returns a shaped value valid for p. JSON parameters sample as
// null, which every nested settings field accepts.
func SampleValue(p cmdlet.Param) any {
	switch p.Kind {
	case cmdlet.Bool:
		return true
	case cmdlet.Int:
		return max(p.Min, 1)
	case cmdlet.Enum:
		return p.Enum[0]
	case cmdlet.StringList:
		return []string{"sample"}
	case cmdlet.Time:
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	case cmdlet.Blob:
		return []byte("sample")
	case cmdlet.JSON:
		return nil
	case cmdlet.Tags:
		return []map[string]any{{"Key": "k", "Value": "v"}}
	case cmdlet.TagMap:
		return map[string]string{"k": "v"}
	case cmdlet.Attachments:
		return []map[string]any{{"FileName": "sample.txt", "Data": []byte("sample")}}
	default:
		return "sample"
	}
}

// SampleRequest returns a request with every parameter of def set.
func SampleRequest(def *cmdlet.Def) (cmdlet.Request, error) {
	req := cmdlet.Request{}
	for _, p := range def.Params {
		if err := req.Set(p.Field, SampleValue(p)); err != nil {
			return nil, err
		}
	}
	return req, nil
}
