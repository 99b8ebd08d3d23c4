// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cmdlet

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/awsctl/awsctl/internal/blob"
)

// Kind is how a parameter's flag value is parsed and shaped for the request.
type Kind int

const (
	String Kind = iota
	Bool
	Int
	Enum
	StringList
	// Time is an RFC3339 timestamp.
	Time
	// Blob is a byte array loaded through blob.Loader.
	Blob
	// JSON is a nested settings object given inline or as @file.
	JSON
	// Tags is a key=value list shaped as [{Key, Value}].
	Tags
	// TagMap is a key=value list shaped as a string map.
	TagMap
	// Attachments is a [name=]source list shaped as [{FileName, Data}].
	Attachments
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Enum:
		return "enum"
	case StringList:
		return "list"
	case Time:
		return "time"
	case Blob:
		return "blob"
	case JSON:
		return "json"
	case Tags, TagMap:
		return "tags"
	case Attachments:
		return "attachments"
	default:
		return "string"
	}
}

// Param declares one shell parameter and the request field it fills.
type Param struct {
	// Name is the flag name, e.g. "case-id".
	Name string
	// Field is the request field, dotted to nest (S3Settings.BucketName).
	Field    string
	Kind     Kind
	Required bool
	Usage    string
	Aliases  []string
	// Enum lists the accepted values of an Enum parameter.
	Enum []string
	// Min and Max bound an Int parameter when Max is non-zero.
	Min, Max int
	// Pipeline marks the parameter fed by positional arguments or stdin.
	Pipeline bool
	// Default supplies a value when the parameter is not set.
	Default func() any
	// Shape, when set, replaces the shaped value before it is placed in the
	// request.
	Shape func(any) (any, error)
}

// Value returns a Default func yielding v.
func Value(v any) func() any {
	return func() any { return v }
}

// Source reads flag values. *cli.Command satisfies it.
type Source interface {
	IsSet(name string) bool
	String(name string) string
	Bool(name string) bool
	Int(name string) int
	StringSlice(name string) []string
}

var _ Source = (*cli.Command)(nil)

// Repeatable reports whether the parameter's flag may be given more than once,
// each occurrence adding to the list.
func (p Param) Repeatable() bool {
	switch p.Kind {
	case StringList, Tags, TagMap, Attachments:
		return true
	}
	return false
}

// Flag synthesizes the cli flag for p.
func (p Param) Flag() cli.Flag {
	usage := p.Usage
	if p.Required {
		usage += " (required)"
	}

	switch p.Kind {
	case Bool:
		return &cli.BoolFlag{
			Name:    p.Name,
			Aliases: p.Aliases,
			Usage:   usage,
		}
	case Int:
		return &cli.IntFlag{
			Name:    p.Name,
			Aliases: p.Aliases,
			Usage:   usage,
			Validator: func(v int) error {
				return p.checkRange(v)
			},
		}
	case StringList, Tags, TagMap, Attachments:
		return &cli.StringSliceFlag{
			Name:    p.Name,
			Aliases: p.Aliases,
			Usage:   usage,
		}
	case Enum:
		return &cli.StringFlag{
			Name:    p.Name,
			Aliases: p.Aliases,
			Usage:   fmt.Sprintf("%s (%s)", usage, strings.Join(p.Enum, "|")),
			Validator: func(v string) error {
				_, err := p.enumValue(v)
				return err
			},
		}
	default:
		return &cli.StringFlag{
			Name:    p.Name,
			Aliases: p.Aliases,
			Usage:   usage,
		}
	}
}

func (p Param) checkRange(v int) error {
	if p.Max != 0 && (v < p.Min || v > p.Max) {
		return fmt.Errorf("--%s must be between %d and %d", p.Name, p.Min, p.Max)
	}
	return nil
}

// enumValue matches v case-insensitively and returns the canonical spelling.
func (p Param) enumValue(v string) (string, error) {
	for _, e := range p.Enum {
		if strings.EqualFold(e, v) {
			return e, nil
		}
	}
	return "", fmt.Errorf("--%s must be one of %v", p.Name, p.Enum)
}

// read returns the raw flag value of p from src.
func (p Param) read(src Source) any {
	switch p.Kind {
	case Bool:
		return src.Bool(p.Name)
	case Int:
		return src.Int(p.Name)
	case StringList, Tags, TagMap, Attachments:
		return src.StringSlice(p.Name)
	default:
		return src.String(p.Name)
	}
}

// shape converts a raw flag, pipeline or default value into the value placed
// in the request.
func (p Param) shape(ctx context.Context, raw any, loader *blob.Loader) (any, error) {
	v, err := p.shapeKind(ctx, raw, loader)
	if err != nil {
		return nil, err
	}
	if p.Shape != nil {
		return p.Shape(v)
	}
	return v, nil
}

func (p Param) shapeKind(ctx context.Context, raw any, loader *blob.Loader) (any, error) {
	switch p.Kind {
	case Bool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("--%s: want a bool, got %T", p.Name, raw)
		}
		return b, nil

	case Int:
		n, ok := raw.(int)
		if !ok {
			return nil, fmt.Errorf("--%s: want an int, got %T", p.Name, raw)
		}
		return n, p.checkRange(n)

	case Enum:
		return p.enumValue(fmt.Sprint(raw))

	case StringList:
		return p.list(raw), nil

	case Time:
		t, err := time.Parse(time.RFC3339, fmt.Sprint(raw))
		if err != nil {
			return nil, fmt.Errorf("--%s: want an RFC3339 time: %w", p.Name, err)
		}
		return t, nil

	case Blob:
		b, err := p.load(ctx, loader, fmt.Sprint(raw))
		if err != nil {
			return nil, err
		}
		return b.Data, nil

	case JSON:
		spec := fmt.Sprint(raw)
		data := []byte(spec)
		if strings.HasPrefix(spec, "@") || strings.HasPrefix(spec, "s3://") || spec == "-" {
			b, err := p.load(ctx, loader, spec)
			if err != nil {
				return nil, err
			}
			data = b.Data
		}
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("--%s: invalid JSON: %w", p.Name, err)
		}
		return v, nil

	case Tags:
		pairs, err := p.pairs(raw)
		if err != nil {
			return nil, err
		}
		tags := make([]map[string]any, 0, len(pairs))
		for _, kv := range pairs {
			tags = append(tags, map[string]any{"Key": kv[0], "Value": kv[1]})
		}
		return tags, nil

	case TagMap:
		pairs, err := p.pairs(raw)
		if err != nil {
			return nil, err
		}
		tags := make(map[string]string, len(pairs))
		for _, kv := range pairs {
			tags[kv[0]] = kv[1]
		}
		return tags, nil

	case Attachments:
		var attachments []map[string]any
		for _, item := range p.list(raw) {
			name, source := splitAttachment(item)
			b, err := p.load(ctx, loader, source)
			if err != nil {
				return nil, err
			}
			if name == "" {
				name = b.Name
			}
			if name == "" {
				return nil, fmt.Errorf("--%s: attachment %q needs a name (name=source)", p.Name, item)
			}
			attachments = append(attachments, map[string]any{"FileName": name, "Data": b.Data})
		}
		return attachments, nil

	default:
		return fmt.Sprint(raw), nil
	}
}

func (p Param) load(ctx context.Context, loader *blob.Loader, spec string) (blob.Blob, error) {
	if loader == nil {
		loader = &blob.Loader{}
	}
	b, err := loader.Load(ctx, spec)
	if err != nil {
		return blob.Blob{}, fmt.Errorf("--%s: %w", p.Name, err)
	}
	return b, nil
}

// list normalizes a raw list value. A lone string is split on commas.
func (p Param) list(raw any) []string {
	switch v := raw.(type) {
	case []string:
		return slices.Clone(v)
	case string:
		var out []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{fmt.Sprint(v)}
	}
}

func (p Param) pairs(raw any) ([][2]string, error) {
	var pairs [][2]string
	for _, item := range p.list(raw) {
		k, v, ok := strings.Cut(item, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("--%s: want key=value, got %q", p.Name, item)
		}
		pairs = append(pairs, [2]string{k, v})
	}
	return pairs, nil
}

// splitAttachment splits "name=source". A source that is itself a path, URI
// or stdin marker is never split.
func splitAttachment(item string) (name, source string) {
	i := strings.Index(item, "=")
	if i <= 0 || strings.ContainsAny(item[:i], "@:/") || strings.HasPrefix(item, "-") {
		return "", item
	}
	return item[:i], item[i+1:]
}
