// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"sort"

	"github.com/urfave/cli/v3"

	"github.com/awsctl/awsctl/internal/aws"
	"github.com/awsctl/awsctl/internal/cmdlet"
	"github.com/awsctl/awsctl/internal/meta"
)

// CmdletCommandBuilder constructs the cli.Command of one operation. Every
// operation parameter becomes a flag; the builder adds the tldr, schema and
// global flags, wires metadata and the validator, and runs the operation
// through a CmdletActionRunner.
type CmdletCommandBuilder struct {
	Service cmdlet.Service
	Op      cmdlet.Op
	Meta    meta.Meta
	Pool    *aws.Pool
}

// Build returns a configured cli.Command from the builder.
func (ccb *CmdletCommandBuilder) Build() *cli.Command {
	def := ccb.Op.Def()

	flags := make([]cli.Flag, 0, len(def.Params))
	for _, p := range def.Params {
		flags = append(flags, p.Flag())
	}

	runner := &CmdletActionRunner{
		Service: ccb.Service,
		Op:      ccb.Op,
		Pool:    ccb.Pool,
	}

	return &cli.Command{
		Name:      def.Name,
		Usage:     def.Usage,
		UsageText: usageText(ccb.Service.Name, def),
		Metadata: map[string]any{
			"meta": ccb.Meta,
			"op":   ccb.Op,
		},
		Flags: append(flags, append([]cli.Flag{
			newTldrFlag(),
			newSchemaFlag(),
		}, NewGlobalFlags(ccb.Service.Name, def)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: runner.Run,
	}
}

// ServiceCommandBuilder constructs the command group of one service.
type ServiceCommandBuilder struct {
	Service cmdlet.Service
	Meta    meta.Meta
	Pool    *aws.Pool
}

// Build returns the service group with one subcommand per operation, sorted
// by name.
func (scb *ServiceCommandBuilder) Build() *cli.Command {
	group := &cli.Command{
		Name:  scb.Service.Name,
		Usage: scb.Service.Usage,
		Metadata: map[string]any{
			"meta": scb.Meta,
		},
	}

	for _, op := range scb.Service.Ops {
		ccb := &CmdletCommandBuilder{
			Service: scb.Service,
			Op:      op,
			Meta:    scb.Meta,
			Pool:    scb.Pool,
		}
		group.Commands = append(group.Commands, ccb.Build())
	}

	sort.Slice(group.Commands, func(i, j int) bool {
		return group.Commands[i].Name < group.Commands[j].Name
	})
	return group
}

func usageText(service string, def *cmdlet.Def) string {
	text := fmt.Sprintf("awsctl %s %s [options]", service, def.Name)
	if p, ok := def.PipelineParam(); ok {
		text += fmt.Sprintf(" [%s ... | -]", p.Name)
	}
	return text
}
