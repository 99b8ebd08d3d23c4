// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cmdlet

import (
	"context"
	"fmt"
	"reflect"
)

// Def declares one operation: its shell name, the SDK operation it calls and
// how parameters, output and pagination map onto that call.
type Def struct {
	// Name is the subcommand, e.g. "describe-cases".
	Name string
	// API is the SDK operation name, e.g. "DescribeCases".
	API    string
	Usage  string
	Params []Param
	// Select is the default --select. "" emits nothing, "*" the whole
	// response.
	Select string
	// Attrs are the default text columns for the selected records.
	Attrs []string
	// Mutating operations are confirmed before they run.
	Mutating bool
	// Target names the parameter whose value identifies the item in the
	// confirmation prompt.
	Target string
	Pager  *Pager
	// Cacheable responses are reference data kept in the response cache.
	Cacheable bool
	// Filters is the request field that takes server-side --filter
	// expressions as [{Name, Values}].
	Filters string
}

// Param returns the named parameter.
func (d *Def) Param(name string) (Param, bool) {
	for _, p := range d.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

// PipelineParam returns the parameter fed by positional arguments.
func (d *Def) PipelineParam() (Param, bool) {
	for _, p := range d.Params {
		if p.Pipeline {
			return p, true
		}
	}
	return Param{}, false
}

// Op is a Def bound to the SDK call it describes.
type Op interface {
	Def() *Def
	// OutputType is the SDK output struct type.
	OutputType() reflect.Type
	// Invoke decodes req into the SDK input and calls the operation on
	// client.
	Invoke(ctx context.Context, client any, req Request) (any, error)
}

// Call is the shape of every SDK client method, taken as a method expression
// on the service's client interface, e.g. support.API.DescribeCases.
type Call[C, I, O, Opt any] func(C, context.Context, *I, ...func(*Opt)) (*O, error)

type op[C, I, O, Opt any] struct {
	def  Def
	call Call[C, I, O, Opt]
}

// NewOp binds def to call.
func NewOp[C, I, O, Opt any](call func(C, context.Context, *I, ...func(*Opt)) (*O, error), def Def) Op {
	return &op[C, I, O, Opt]{def: def, call: call}
}

func (o *op[C, I, O, Opt]) Def() *Def { return &o.def }

func (o *op[C, I, O, Opt]) OutputType() reflect.Type {
	return reflect.TypeOf((*O)(nil)).Elem()
}

func (o *op[C, I, O, Opt]) Invoke(ctx context.Context, client any, req Request) (any, error) {
	c, ok := client.(C)
	if !ok {
		return nil, fmt.Errorf("%s: client %T does not implement %s", o.def.Name, client, reflect.TypeOf((*C)(nil)).Elem())
	}
	in, err := Decode[I](req)
	if err != nil {
		return nil, err
	}
	return o.call(c, ctx, in)
}
