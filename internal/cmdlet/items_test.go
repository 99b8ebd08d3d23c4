// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cmdlet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values(items []*string) []string {
	var out []string
	for _, i := range items {
		if i == nil {
			out = append(out, "<nil>")
			continue
		}
		out = append(out, *i)
	}
	return out
}

func TestItems(t *testing.T) {
	def := deleteWidget.Def()

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  []string
	}{
		{"no args is one item", nil, "", []string{"<nil>"}},
		{"positional", []string{"a", "b"}, "", []string{"a", "b"}},
		{"stdin lines", []string{"-"}, "a\n\n  b  \nc", []string{"a", "b", "c"}},
		{"empty stdin", []string{"-"}, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Items(def, tt.args, strings.NewReader(tt.stdin))
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(items))
		})
	}

	_, err := Items(def, []string{"-"}, nil)
	assert.ErrorContains(t, err, "no stdin")
}

func TestItems_NoPipelineParam(t *testing.T) {
	def := &Def{Name: "describe-services", Params: []Param{{Name: "language", Field: "Language"}}}
	_, err := Items(def, []string{"x"}, nil)
	assert.ErrorContains(t, err, "takes no arguments")

	items, err := Items(def, nil, nil)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestParseSelect(t *testing.T) {
	def := deleteWidget.Def()

	s, err := ParseSelect("", def)
	require.NoError(t, err)
	assert.Equal(t, "Widget", s.Path())
	assert.False(t, s.Whole())

	s, err = ParseSelect("*", def)
	require.NoError(t, err)
	assert.True(t, s.Whole())
	assert.Empty(t, s.Path())

	s, err = ParseSelect("^widget-name", def)
	require.NoError(t, err)
	assert.Empty(t, s.Path())

	_, err = ParseSelect("^nope", def)
	assert.Error(t, err)

	s, err = ParseSelect("", &Def{Name: "quiet"})
	require.NoError(t, err)
	out, err := s.Apply([]byte(`{"A":1}`), &Bound{})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestResponseJSON(t *testing.T) {
	data, err := responseJSON(&DeleteWidgetOutput{Widget: &Widget{Name: str("w")}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"Widget":{"Name":"w","Size":0}}`, string(data))

	data, err = responseJSON([]int{1, 2})
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(data))

	data, err = responseJSON(struct{ A int }{1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"A":1}`, string(data))
}

func TestDef_Lookups(t *testing.T) {
	def := deleteWidget.Def()
	p, ok := def.Param("force")
	assert.True(t, ok)
	assert.Equal(t, Bool, p.Kind)
	_, ok = def.Param("missing")
	assert.False(t, ok)

	p, ok = def.PipelineParam()
	assert.True(t, ok)
	assert.Equal(t, "widget-name", p.Name)

	assert.Equal(t, "ListWidgetsOutput", listWidgets.OutputType().Name())
}
