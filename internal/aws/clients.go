// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"sync"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	dmsv2 "github.com/aws/aws-sdk-go-v2/service/databasemigrationservice"
	iotmiv2 "github.com/aws/aws-sdk-go-v2/service/iotmanagedintegrations"
	s3v2 "github.com/aws/aws-sdk-go-v2/service/s3"
	supportv2 "github.com/aws/aws-sdk-go-v2/service/support"

	"github.com/awsctl/awsctl/internal/log"
)

// Key identifies a leased client. Two leases with equal keys share a client.
type Key struct {
	Service       string
	Profile       string
	Region        string
	DefaultRegion string
	Endpoint      string
	// MaxAttempts replaces the SDK's default retry budget when positive.
	MaxAttempts int
}

func (k Key) options() []Option {
	opts := []Option{
		WithProfile(k.Profile),
		WithRegion(k.Region),
		WithDefaultRegion(k.DefaultRegion),
		WithEndpoint(k.Endpoint),
	}
	if k.MaxAttempts > 0 {
		opts = append(opts, WithRetryer(func() awsv2.Retryer {
			return retry.AddWithMaxAttempts(retry.NewStandard(), k.MaxAttempts)
		}))
	}
	return opts
}

// Pool leases SDK clients. Configs and clients are built once per Key for the
// life of the process and reused by every invocation item.
type Pool struct {
	mu      sync.Mutex
	load    func(context.Context, ...Option) (awsv2.Config, error)
	configs map[Key]awsv2.Config
	clients map[Key]any
}

// NewPool returns a Pool loading configs with LoadAWSConfig.
func NewPool() *Pool {
	return &Pool{
		load:    LoadAWSConfig,
		configs: map[Key]awsv2.Config{},
		clients: map[Key]any{},
	}
}

// Config returns the AWS config for key, loading it on first use. The
// Service field of the key is ignored.
func (p *Pool) Config(ctx context.Context, key Key) (awsv2.Config, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.configLocked(ctx, key)
}

func (p *Pool) configLocked(ctx context.Context, key Key) (awsv2.Config, error) {
	key.Service = ""
	if cfg, ok := p.configs[key]; ok {
		return cfg, nil
	}
	cfg, err := p.load(ctx, key.options()...)
	if err != nil {
		return awsv2.Config{}, fmt.Errorf("failed to load AWS config (profile=%q): %w", key.Profile, err)
	}
	p.configs[key] = cfg
	return cfg, nil
}

// Lease returns the client for key, building it with build on first use.
func Lease[C any](ctx context.Context, p *Pool, key Key, build func(awsv2.Config) C) (C, error) {
	var zero C

	p.mu.Lock()
	defer p.mu.Unlock()

	if c, ok := p.clients[key]; ok {
		if typed, ok := c.(C); ok {
			log.Tracef("client reused: service=%s", key.Service)
			return typed, nil
		}
		return zero, fmt.Errorf("client for %s has unexpected type %T", key.Service, c)
	}

	cfg, err := p.configLocked(ctx, key)
	if err != nil {
		return zero, err
	}

	c := build(cfg)
	p.clients[key] = c
	log.Debugf("client created: service=%s, region=%s", key.Service, cfg.Region)
	return c, nil
}

// NewSupport constructs a v2 AWS Support client from the provided config.
func NewSupport(cfg awsv2.Config, optFns ...func(*supportv2.Options)) *supportv2.Client {
	return supportv2.NewFromConfig(cfg, optFns...)
}

// NewDMS constructs a v2 Database Migration Service client from the provided
// config.
func NewDMS(cfg awsv2.Config, optFns ...func(*dmsv2.Options)) *dmsv2.Client {
	return dmsv2.NewFromConfig(cfg, optFns...)
}

// NewIoTMI constructs a v2 IoT Managed Integrations client from the provided
// config.
func NewIoTMI(cfg awsv2.Config, optFns ...func(*iotmiv2.Options)) *iotmiv2.Client {
	return iotmiv2.NewFromConfig(cfg, optFns...)
}

// NewS3 constructs a v2 S3 client from the provided config. Additional service
// options can be supplied via optFns.
func NewS3(cfg awsv2.Config, optFns ...func(*s3v2.Options)) *s3v2.Client {
	client := s3v2.NewFromConfig(cfg, optFns...)
	log.Debugf("s3 client created")
	return client
}

// WithS3PathStyle forces path-style addressing, which most S3 emulators
// behind a custom endpoint require.
func WithS3PathStyle() func(*s3v2.Options) {
	return func(o *s3v2.Options) {
		o.UsePathStyle = true
	}
}
