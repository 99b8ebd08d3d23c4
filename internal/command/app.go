// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/awsctl/awsctl/internal/aws"
	"github.com/awsctl/awsctl/internal/cmdlet"
	"github.com/awsctl/awsctl/internal/config"
	"github.com/awsctl/awsctl/internal/meta"
	"github.com/awsctl/awsctl/internal/service/dms"
	"github.com/awsctl/awsctl/internal/service/iotmi"
	"github.com/awsctl/awsctl/internal/service/support"
)

// Services returns every service awsctl exposes, in command order.
func Services() []cmdlet.Service {
	return []cmdlet.Service{
		dms.Service(),
		iotmi.Service(),
		support.Service(),
	}
}

// InitApp builds the root command over the standard streams.
func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	return NewApp(ctx, args, meta.StdStreams(), aws.NewPool()), nil
}

// NewApp builds the root command. The services share pool, so one client is
// leased per service, profile and region for the life of the process.
func NewApp(ctx context.Context, args []string, streams meta.Streams, pool *aws.Pool) *cli.Command {
	// The arg[1] immediately following the binary (arg[0]) is the service and
	// also represents the namespace key to be used when retrieving config
	// values. arg[1] could be -h/--help, so ignore it if it appears to be a
	// flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}
	config.Config.Namespace = ns

	m := meta.Meta{
		Args:    args,
		Config:  config.Config,
		Context: ctx,
		Streams: streams,
	}

	app := &cli.Command{
		Name:      "awsctl",
		Usage:     "AWS Support, Database Migration Service and IoT Managed Integrations from the shell",
		Writer:    streams.Out,
		ErrWriter: streams.Err,
		Reader:    streams.In,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "awsctl version info",
				HideDefault: true,
			},
		},
	}

	for _, svc := range Services() {
		scb := &ServiceCommandBuilder{Service: svc, Meta: m, Pool: pool}
		app.Commands = append(app.Commands, scb.Build())
	}
	app.Commands = append(app.Commands, completionCommandBuilder(m))

	// Make sure flags are sorted for the --help text.
	for _, group := range app.Commands {
		for _, cmd := range group.Commands {
			sort.Slice(cmd.Flags, func(i, j int) bool {
				return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
			})
		}
	}

	return app
}
