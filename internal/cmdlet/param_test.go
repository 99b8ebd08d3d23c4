// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cmdlet

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/awsctl/awsctl/internal/blob"
)

func TestParam_Shape(t *testing.T) {
	ctx := context.Background()
	when := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		param   Param
		raw     any
		want    any
		wantErr string
	}{
		{"string", Param{Name: "s"}, "abc", "abc", ""},
		{"bool", Param{Name: "b", Kind: Bool}, true, true, ""},
		{"int in range", Param{Name: "n", Kind: Int, Min: 10, Max: 100}, 20, 20, ""},
		{"int out of range", Param{Name: "n", Kind: Int, Min: 10, Max: 100}, 5, nil, "between 10 and 100"},
		{"int unbounded", Param{Name: "n", Kind: Int}, 5000, 5000, ""},
		{"enum canonical", Param{Name: "e", Kind: Enum, Enum: []string{"source", "target"}}, "SOURCE", "source", ""},
		{"enum invalid", Param{Name: "e", Kind: Enum, Enum: []string{"source", "target"}}, "middle", nil, "must be one of"},
		{"list", Param{Name: "l", Kind: StringList}, []string{"a", "b"}, []string{"a", "b"}, ""},
		{"list from pipeline string", Param{Name: "l", Kind: StringList}, "a, b,,c", []string{"a", "b", "c"}, ""},
		{"time", Param{Name: "t", Kind: Time}, "2026-03-01T12:00:00Z", when, ""},
		{"time invalid", Param{Name: "t", Kind: Time}, "yesterday", nil, "RFC3339"},
		{"blob literal", Param{Name: "d", Kind: Blob}, "hello", []byte("hello"), ""},
		{"json", Param{Name: "j", Kind: JSON}, `{"BucketName":"b","Port":1}`, map[string]any{"BucketName": "b", "Port": float64(1)}, ""},
		{"json invalid", Param{Name: "j", Kind: JSON}, `{nope`, nil, "invalid JSON"},
		{"tags", Param{Name: "tags", Kind: Tags}, []string{"env=prod", "team="},
			[]map[string]any{{"Key": "env", "Value": "prod"}, {"Key": "team", "Value": ""}}, ""},
		{"tags invalid", Param{Name: "tags", Kind: Tags}, []string{"env"}, nil, "want key=value"},
		{"tag map", Param{Name: "tags", Kind: TagMap}, []string{"env=prod", "env=dev"}, map[string]string{"env": "dev"}, ""},
		{"attachment literal needs name", Param{Name: "a", Kind: Attachments}, []string{"text"}, nil, "needs a name"},
		{"attachment named literal", Param{Name: "a", Kind: Attachments}, []string{"note.txt=hello"},
			[]map[string]any{{"FileName": "note.txt", "Data": []byte("hello")}}, ""},
		{"shape hook", Param{Name: "s", Shape: func(v any) (any, error) { return strings.ToUpper(v.(string)), nil }}, "abc", "ABC", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.param.shape(ctx, tt.raw, &blob.Loader{})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParam_ShapeFiles(t *testing.T) {
	dir := t.TempDir()
	settings := filepath.Join(dir, "s3.json")
	require.NoError(t, os.WriteFile(settings, []byte(`{"BucketName":"landing"}`), 0o600))
	logs := filepath.Join(dir, "app.log")
	require.NoError(t, os.WriteFile(logs, []byte("boom"), 0o600))

	ctx := context.Background()
	loader := &blob.Loader{}

	got, err := Param{Name: "s3-settings", Kind: JSON}.shape(ctx, "@"+settings, loader)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"BucketName": "landing"}, got)

	got, err = Param{Name: "attachment", Kind: Attachments}.shape(ctx, []string{"@" + logs, "renamed.log=@" + logs}, loader)
	require.NoError(t, err)
	assert.Equal(t, []map[string]any{
		{"FileName": "app.log", "Data": []byte("boom")},
		{"FileName": "renamed.log", "Data": []byte("boom")},
	}, got)

	_, err = Param{Name: "data", Kind: Blob}.shape(ctx, "@"+filepath.Join(dir, "missing"), loader)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--data")
}

func TestSplitAttachment(t *testing.T) {
	tests := []struct {
		item, name, source string
	}{
		{"a.txt=@/tmp/a", "a.txt", "@/tmp/a"},
		{"@/tmp/a=b", "", "@/tmp/a=b"},
		{"s3://b/k?versionId=1", "", "s3://b/k?versionId=1"},
		{"-", "", "-"},
		{"=x", "", "=x"},
		{"plain", "", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.item, func(t *testing.T) {
			name, source := splitAttachment(tt.item)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.source, source)
		})
	}
}

func TestParam_Flag(t *testing.T) {
	tests := []struct {
		param Param
		want  any
	}{
		{Param{Name: "s"}, &cli.StringFlag{}},
		{Param{Name: "b", Kind: Bool}, &cli.BoolFlag{}},
		{Param{Name: "n", Kind: Int}, &cli.IntFlag{}},
		{Param{Name: "e", Kind: Enum, Enum: []string{"x"}}, &cli.StringFlag{}},
		{Param{Name: "l", Kind: StringList}, &cli.StringSliceFlag{}},
		{Param{Name: "t", Kind: Tags}, &cli.StringSliceFlag{}},
		{Param{Name: "m", Kind: TagMap}, &cli.StringSliceFlag{}},
		{Param{Name: "a", Kind: Attachments}, &cli.StringSliceFlag{}},
		{Param{Name: "j", Kind: JSON}, &cli.StringFlag{}},
		{Param{Name: "d", Kind: Blob}, &cli.StringFlag{}},
	}
	for _, tt := range tests {
		t.Run(tt.param.Name, func(t *testing.T) {
			f := tt.param.Flag()
			assert.IsType(t, tt.want, f)
			assert.Equal(t, []string{tt.param.Name}, f.Names()[:1])
			_, slice := f.(*cli.StringSliceFlag)
			assert.Equal(t, slice, tt.param.Repeatable())
		})
	}

	f := Param{Name: "case-id", Required: true, Usage: "case", Aliases: []string{"c"}}.Flag().(*cli.StringFlag)
	assert.Equal(t, "case (required)", f.Usage)
	assert.Equal(t, []string{"c"}, f.Aliases)

	n := Param{Name: "max-results", Kind: Int, Min: 10, Max: 100}.Flag().(*cli.IntFlag)
	require.NotNil(t, n.Validator)
	assert.NoError(t, n.Validator(10))
	assert.Error(t, n.Validator(101))

	e := Param{Name: "endpoint-type", Kind: Enum, Enum: []string{"source", "target"}}.Flag().(*cli.StringFlag)
	assert.Contains(t, e.Usage, "source|target")
	assert.NoError(t, e.Validator("Target"))
	assert.Error(t, e.Validator("both"))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "string", String.String())
	assert.Equal(t, "tags", TagMap.String())
	assert.Equal(t, "attachments", Attachments.String())
}

func TestValue(t *testing.T) {
	assert.Equal(t, "en", Value("en")())
}
