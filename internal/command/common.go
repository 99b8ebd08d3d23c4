// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/awsctl/awsctl/internal/attrs"
	"github.com/awsctl/awsctl/internal/cacheutil"
	"github.com/awsctl/awsctl/internal/cmdlet"
	"github.com/awsctl/awsctl/internal/config"
	"github.com/awsctl/awsctl/internal/meta"
	"github.com/awsctl/awsctl/internal/output"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		al = attrs.Defaults(defaults...)
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// DumpSchemaIfRequested writes the field paths of the operation's selected
// output to w when --schema is set, and returns true if it handled the
// request.
func DumpSchemaIfRequested(cmd *cli.Command, op cmdlet.Op, w io.Writer) (bool, error) {
	if !cmd.Bool("schema") {
		return false, nil
	}

	def := op.Def()
	sel, err := cmdlet.ParseSelect(cmd.String("select"), def)
	if err != nil {
		return true, err
	}
	if sel.Spec == "" || (!sel.Whole() && sel.Path() == "") {
		fmt.Fprintln(w, "(no output selected)")
		return true, nil
	}

	typ, ok := output.FieldType(op.OutputType(), sel.Path())
	if !ok {
		return true, fmt.Errorf("%s output has no field %q", def.API, sel.Path())
	}
	output.DumpSchema(typ, w)
	return true, nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value with the process's
// standard streams.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd != nil && cmd.Metadata != nil {
		if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
			if m.Out == nil {
				m.Streams = meta.StdStreams()
			}
			return m
		}
	}
	return meta.Meta{Streams: meta.StdStreams()}
}

// NewSettings reads the invocation-wide executor settings from cmd and the
// config file.
func NewSettings(cmd *cli.Command, key CacheKey, def *cmdlet.Def) cmdlet.Settings {
	settings := cmdlet.Settings{
		Select:       cmd.String("select"),
		Filter:       cmd.String("filter"),
		CacheTTL:     cacheutil.DefaultTTL,
		CacheSubdirs: cacheutil.Subdirs(key.Service, key.Profile, key.Region),
	}

	if hours, err := config.GetInt("cache.ttl"); err == nil && hours > 0 {
		settings.CacheTTL = time.Duration(hours) * time.Hour
	}

	if def.Pager != nil {
		settings.Page = cmdlet.PageOptions{
			MaxItems:   cmd.Int("max-items"),
			NoPaginate: cmd.Bool("no-paginate"),
			MaxRPS:     cmd.Float("max-rps"),
		}
		if !cmd.IsSet("max-rps") {
			if rps, err := config.GetFloat("pagination.rps"); err == nil && rps > 0 {
				settings.Page.MaxRPS = rps
			}
		}
	}
	if def.Mutating {
		settings.WhatIf = cmd.Bool("what-if")
	}
	if def.Cacheable {
		settings.NoCache = cmd.Bool("no-cache")
	}

	return settings
}

// CacheKey names the partition an invocation's cached responses live in.
type CacheKey struct {
	Service string
	Profile string
	Region  string
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr awsctl <service>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, service string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "awsctl", service)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}
