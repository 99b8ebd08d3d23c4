// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/urfave/cli/v3"

	"github.com/awsctl/awsctl/internal/aws"
	"github.com/awsctl/awsctl/internal/blob"
	"github.com/awsctl/awsctl/internal/cmdlet"
	"github.com/awsctl/awsctl/internal/config"
	"github.com/awsctl/awsctl/internal/log"
	"github.com/awsctl/awsctl/internal/meta"
	"github.com/awsctl/awsctl/internal/output"
	"github.com/awsctl/awsctl/internal/prompt"
)

// ErrItemsFailed is returned when at least one invocation item failed. Each
// failure has already been reported on stderr.
var ErrItemsFailed = errors.New("one or more items failed")

// CmdletActionRunner encapsulates the action every operation command shares:
// GetMeta, short-circuit checks, BuildAttrs, executor assembly, one Execute
// per invocation item and output emission.
type CmdletActionRunner struct {
	Service cmdlet.Service
	Op      cmdlet.Op
	Pool    *aws.Pool
}

// Run executes the operation with the provided context and command.
func (car *CmdletActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	// Step 1: GetMeta + debug.
	m := GetMeta(cmd)
	def := car.Op.Def()
	log.Debugf("executing action: service=%s, op=%s", car.Service.Name, def.Name)

	// Step 2: Short-circuit checks.
	if ShortCircuitTLDR(ctx, cmd, car.Service.Name) {
		return nil
	}
	if handled, err := DumpSchemaIfRequested(cmd, car.Op, m.Out); handled {
		return err
	}

	// Step 3: BuildAttrs + debug.
	attrList := BuildAttrs(cmd, def.Attrs...)
	log.Debugf("attrs: %v", attrList.Keys())

	// Step 4: Invocation items.
	items, err := cmdlet.Items(def, cmd.Args().Slice(), m.In)
	if err != nil {
		return err
	}

	// Step 5: Execute each item in order and emit.
	exec := car.executor(cmd, m)
	opts := output.NewOptions(cmd)
	failed := 0
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}

		env := exec.Execute(ctx, cmd, item)

		// A paged call that failed part way still emits the pages it got.
		if env.OK() || env.Selected != nil {
			if err := output.SliceDiceSpit(env.Selected, attrList, opts, m.Out, nil); err != nil {
				return err
			}
		}
		if !env.OK() {
			failed++
			fmt.Fprintln(m.Err, env.Err)
		}
	}

	if failed > 0 {
		log.Debugf("items failed: failed=%d, total=%d", failed, len(items))
		return fmt.Errorf("%s: %d of %d: %w", def.Name, failed, len(items), ErrItemsFailed)
	}
	return nil
}

// executor assembles the executor shared by every item of one invocation.
func (car *CmdletActionRunner) executor(cmd *cli.Command, m meta.Meta) *cmdlet.Executor {
	def := car.Op.Def()
	key := aws.Key{
		Service:       car.Service.Name,
		Profile:       cmd.String("profile"),
		Region:        cmd.String("region"),
		DefaultRegion: car.Service.DefaultRegion,
		Endpoint:      cmd.String("endpoint-url"),
	}
	if attempts, err := config.GetInt("retry.max_attempts"); err == nil {
		key.MaxAttempts = attempts
	}

	// Blob parameters may name S3 objects; those are fetched with the same
	// credentials but the S3 endpoint of the region.
	s3Key := key
	s3Key.Service = "s3"
	s3Key.DefaultRegion = ""
	s3Key.Endpoint = ""

	region := key.Region
	if region == "" {
		region = key.DefaultRegion
	}

	return &cmdlet.Executor{
		Op: car.Op,
		Client: func(ctx context.Context) (any, error) {
			return aws.Lease(ctx, car.Pool, key, car.Service.NewClient)
		},
		Gate: prompt.NewGate(cmd.Bool("force"), m.In, m.Err),
		Loader: &blob.Loader{
			In: m.In,
			S3: func(ctx context.Context) (blob.GetObjectAPI, error) {
				client, err := aws.Lease(ctx, car.Pool, s3Key, func(cfg awsv2.Config) *s3v2.Client {
					return aws.NewS3(cfg)
				})
				if err != nil {
					return nil, err
				}
				return client, nil
			},
		},
		Settings: NewSettings(cmd, CacheKey{Service: key.Service, Profile: key.Profile, Region: region}, def),
		ErrCtx: cmdlet.ErrorContext{
			Service:   car.Service.Name,
			Operation: def.API,
			Profile:   key.Profile,
			Region:    region,
		},
		Diag: m.Err,
	}
}
