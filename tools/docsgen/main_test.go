// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/awsctl/awsctl/internal/aws"
	"github.com/awsctl/awsctl/internal/command"
	"github.com/awsctl/awsctl/internal/meta"
)

func TestCollectAndRender(t *testing.T) {
	var out, errOut bytes.Buffer
	streams := meta.Streams{In: strings.NewReader(""), Out: &out, Err: &errOut}
	app := command.NewApp(context.Background(), []string{"awsctl"}, streams, aws.NewPool())

	docs := collect(app, "1.2.3", "today")

	names := make([]string, 0, len(docs))
	for _, d := range docs {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"dms", "iotmi", "support"}, names)

	var b bytes.Buffer
	require.NoError(t, render(&b, docs[0]))
	md := b.String()

	assert.True(t, strings.HasPrefix(md, "---\ntitle: awsctl dms\n"))
	assert.Contains(t, md, "version: 1.2.3")
	assert.Contains(t, md, "## create-endpoint")
	assert.Contains(t, md, "| [describe-endpoints](#describe-endpoints) | DescribeEndpoints | paged |")
	assert.Contains(t, md, "`--engine-name`")
	assert.Contains(t, md, "One of source, target.")
	assert.Contains(t, md, "`--region`")
}
