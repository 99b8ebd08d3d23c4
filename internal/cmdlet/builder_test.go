// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cmdlet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBind(t *testing.T) {
	def := &Def{
		Name: "create-thing",
		Params: []Param{
			{Name: "name", Field: "Name", Required: true, Pipeline: true},
			{Name: "size", Field: "Size", Kind: Int},
			{Name: "language", Field: "Language", Default: Value("en")},
			{Name: "enabled", Field: "Enabled", Kind: Bool},
			{Name: "note", Field: "Note"},
		},
	}
	ctx := context.Background()

	t.Run("only set params and defaults", func(t *testing.T) {
		b, err := Bind(ctx, def, fakeSource{"name": "a", "enabled": false}, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "language", "enabled"}, b.Names())

		v, ok := b.Value("enabled")
		assert.True(t, ok)
		assert.Equal(t, false, v)
		assert.False(t, b.Has("size"))
		assert.False(t, b.Has("note"))
	})

	t.Run("pipeline item wins", func(t *testing.T) {
		item := "from-pipe"
		b, err := Bind(ctx, def, fakeSource{"name": "flag"}, &item, nil)
		require.NoError(t, err)
		v, _ := b.Value("name")
		assert.Equal(t, "from-pipe", v)
		assert.Same(t, &item, b.Item)
	})

	t.Run("set value beats default", func(t *testing.T) {
		b, err := Bind(ctx, def, fakeSource{"name": "a", "language": "ja"}, nil, nil)
		require.NoError(t, err)
		v, _ := b.Value("language")
		assert.Equal(t, "ja", v)
	})

	t.Run("missing required reported together", func(t *testing.T) {
		two := &Def{Name: "two", Params: []Param{
			{Name: "a", Field: "A", Required: true},
			{Name: "b", Field: "B"},
			{Name: "c", Field: "C", Required: true},
		}}
		_, err := Bind(ctx, two, fakeSource{"b": "x"}, nil, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingRequired))
		assert.Contains(t, err.Error(), "--a, --c")
	})

	t.Run("nil source", func(t *testing.T) {
		item := "n"
		b, err := Bind(ctx, def, nil, &item, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"name", "language"}, b.Names())
	})

	t.Run("shape error", func(t *testing.T) {
		bad := &Def{Name: "bad", Params: []Param{{Name: "n", Field: "N", Kind: Int, Min: 1, Max: 2}}}
		_, err := Bind(ctx, bad, fakeSource{"n": 3}, nil, nil)
		assert.Error(t, err)
	})

	t.Run("shape errors and missing required reported together", func(t *testing.T) {
		mixed := &Def{Name: "create-endpoint", Params: []Param{
			{Name: "endpoint-type", Field: "EndpointType", Kind: Enum, Enum: []string{"source", "target"}, Required: true},
			{Name: "port", Field: "Port", Kind: Int, Min: 1, Max: 65535},
			{Name: "engine-name", Field: "EngineName", Required: true},
		}}
		_, err := Bind(ctx, mixed, fakeSource{"endpoint-type": "sideways", "port": 70000}, nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingRequired)
		assert.Contains(t, err.Error(), "--endpoint-type must be one of")
		assert.Contains(t, err.Error(), "--port")
		assert.Contains(t, err.Error(), "--engine-name")
	})
}

func TestBuildRequest(t *testing.T) {
	def := &Def{
		Name: "create-endpoint",
		Params: []Param{
			{Name: "endpoint-identifier", Field: "EndpointIdentifier"},
			{Name: "s3-settings", Field: "S3Settings", Kind: JSON},
			{Name: "bucket-name", Field: "S3Settings.BucketName"},
			{Name: "port", Field: "Port", Kind: Int},
			{Name: "unset", Field: "Unset"},
		},
	}
	b, err := Bind(context.Background(), def, fakeSource{
		"endpoint-identifier": "ep",
		"s3-settings":         `{"BucketName":"from-json","BucketFolder":"raw"}`,
		"bucket-name":         "from-flag",
		"port":                5432,
	}, nil, nil)
	require.NoError(t, err)

	req, err := BuildRequest(def, b)
	require.NoError(t, err)
	assert.Equal(t, Request{
		"EndpointIdentifier": "ep",
		"S3Settings":         map[string]any{"BucketName": "from-flag", "BucketFolder": "raw"},
		"Port":               5432,
	}, req)
	_, ok := req.Get("Unset")
	assert.False(t, ok)
}

func TestRequest_Set(t *testing.T) {
	r := Request{}
	require.NoError(t, r.Set("A.B.C", 1))
	require.NoError(t, r.Set("A.B.D", 2))
	require.NoError(t, r.Set("X", "y"))
	assert.Equal(t, Request{"A": map[string]any{"B": map[string]any{"C": 1, "D": 2}}, "X": "y"}, r)

	err := r.Set("X.Z", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "X is not an object")
}

func TestRequest_JSON(t *testing.T) {
	assert.Equal(t, `{"A":1,"B":"x"}`, string(Request{"B": "x", "A": 1}.JSON()))
	assert.Equal(t, "{}", string(Request{"bad": make(chan int)}.JSON()))
}

func TestDecode(t *testing.T) {
	in, err := Decode[DeleteWidgetInput](Request{
		"WidgetName": "w1",
		"Force":      true,
		"Tags":       []map[string]any{{"Key": "env", "Value": "prod"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "w1", *in.WidgetName)
	assert.True(t, *in.Force)
	require.Len(t, in.Tags, 1)
	assert.Equal(t, "env", *in.Tags[0].Key)

	empty, err := Decode[DeleteWidgetInput](Request{})
	require.NoError(t, err)
	assert.Nil(t, empty.WidgetName, "unset fields stay nil")

	_, err = Decode[DeleteWidgetInput](Request{"Nope": 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nope")
}
