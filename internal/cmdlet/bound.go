// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cmdlet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/awsctl/awsctl/internal/blob"
	"github.com/awsctl/awsctl/internal/log"
)

// ErrMissingRequired is wrapped by the error reporting unbound required
// parameters.
var ErrMissingRequired = errors.New("missing required parameter")

// Bound is the per-item context object. It holds only the parameters the user
// set, the pipeline value and declared defaults, each already shaped for the
// request.
type Bound struct {
	Op     string
	Item   *string
	names  []string
	values map[string]any
}

// Bind reads every parameter of def from src. item, when non-nil, feeds the
// pipeline parameter. Every invalid value and all missing required parameters
// are reported together.
func Bind(ctx context.Context, def *Def, src Source, item *string, loader *blob.Loader) (*Bound, error) {
	b := &Bound{Op: def.Name, Item: item, values: map[string]any{}}

	var missing []string
	var errs []error
	for _, p := range def.Params {
		var raw any
		switch {
		case p.Pipeline && item != nil:
			raw = *item
			if p.Kind == Int {
				return nil, fmt.Errorf("--%s cannot be fed from the pipeline", p.Name)
			}
		case src != nil && src.IsSet(p.Name):
			raw = p.read(src)
		case p.Default != nil:
			raw = p.Default()
			log.Tracef("param defaulted: op=%s, param=%s", def.Name, p.Name)
		default:
			if p.Required {
				missing = append(missing, "--"+p.Name)
			}
			continue
		}

		v, err := p.shape(ctx, raw, loader)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		b.set(p.Name, v)
	}

	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("%s: %w(s): %s", def.Name, ErrMissingRequired, strings.Join(missing, ", ")))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	log.Debugf("params bound: op=%s, params=%v", def.Name, b.names)
	return b, nil
}

func (b *Bound) set(name string, v any) {
	if _, ok := b.values[name]; !ok {
		b.names = append(b.names, name)
	}
	b.values[name] = v
}

// Value returns the shaped value of the named parameter.
func (b *Bound) Value(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Names lists the bound parameters in declaration order.
func (b *Bound) Names() []string {
	return b.names
}

// Has reports whether the named parameter is bound.
func (b *Bound) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}
