// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cmdlet

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// fakeSource stands in for *cli.Command; a key present means the flag is set.
type fakeSource map[string]any

func (f fakeSource) IsSet(name string) bool { _, ok := f[name]; return ok }
func (f fakeSource) String(name string) string {
	s, _ := f[name].(string)
	return s
}
func (f fakeSource) Bool(name string) bool {
	b, _ := f[name].(bool)
	return b
}
func (f fakeSource) Int(name string) int {
	n, _ := f[name].(int)
	return n
}
func (f fakeSource) StringSlice(name string) []string {
	s, _ := f[name].([]string)
	return s
}

// A miniature SDK: input/output structs without json tags and a client
// interface whose methods follow the SDK signature.

type widgetOptions struct{}

type widgetTag struct {
	Key   *string
	Value *string
}

type ListWidgetsInput struct {
	Owner      *string
	MaxResults *int32
	NextToken  *string
	Filters    []widgetFilter
}

type widgetFilter struct {
	Name   *string
	Values []string
}

type Widget struct {
	Name *string
	Size int32
}

type resultMetadata struct {
	RequestID string
}

type ListWidgetsOutput struct {
	Widgets        []Widget
	NextToken      *string
	ResultMetadata resultMetadata
}

type DeleteWidgetInput struct {
	WidgetName *string
	Force      *bool
	Tags       []widgetTag
}

type DeleteWidgetOutput struct {
	Widget         *Widget
	ResultMetadata resultMetadata
}

type widgetAPI interface {
	ListWidgets(context.Context, *ListWidgetsInput, ...func(*widgetOptions)) (*ListWidgetsOutput, error)
	DeleteWidget(context.Context, *DeleteWidgetInput, ...func(*widgetOptions)) (*DeleteWidgetOutput, error)
}

type mockWidgets struct {
	mock.Mock
}

func (m *mockWidgets) ListWidgets(ctx context.Context, in *ListWidgetsInput, _ ...func(*widgetOptions)) (*ListWidgetsOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*ListWidgetsOutput)
	return out, args.Error(1)
}

func (m *mockWidgets) DeleteWidget(ctx context.Context, in *DeleteWidgetInput, _ ...func(*widgetOptions)) (*DeleteWidgetOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*DeleteWidgetOutput)
	return out, args.Error(1)
}

func str(s string) *string { return &s }

var listWidgets = NewOp(widgetAPI.ListWidgets, Def{
	Name:   "list-widgets",
	API:    "ListWidgets",
	Select: "Widgets",
	Params: []Param{
		{Name: "owner", Field: "Owner", Pipeline: true},
		{Name: "max-results", Field: "MaxResults", Kind: Int, Min: 2, Max: 50},
		{Name: "next-token", Field: "NextToken"},
	},
	Pager: &Pager{
		InputToken:  "NextToken",
		OutputToken: "NextToken",
		PageSize:    "MaxResults",
		MinPageSize: 2,
		MaxPageSize: 50,
		Items:       "Widgets",
	},
	Filters: "Filters",
})

var deleteWidget = NewOp(widgetAPI.DeleteWidget, Def{
	Name:     "delete-widget",
	API:      "DeleteWidget",
	Select:   "Widget",
	Mutating: true,
	Target:   "widget-name",
	Params: []Param{
		{Name: "widget-name", Field: "WidgetName", Required: true, Pipeline: true},
		{Name: "force", Field: "Force", Kind: Bool},
		{Name: "tags", Field: "Tags", Kind: Tags},
	},
})
