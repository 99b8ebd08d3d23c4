// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

//go:build integration
// +build integration

package aws

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	dmsv2 "github.com/aws/aws-sdk-go-v2/service/databasemigrationservice"
	iotmiv2 "github.com/aws/aws-sdk-go-v2/service/iotmanagedintegrations"
	supportv2 "github.com/aws/aws-sdk-go-v2/service/support"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests issue read-only calls against real AWS endpoints using the
// default credential chain. Support requires a Business or Enterprise plan.

func TestIntegration_SupportDescribeSeverityLevels(t *testing.T) {
	ctx := context.Background()
	pool := NewPool()

	client, err := Lease(ctx, pool, Key{Service: "support", DefaultRegion: "us-east-1"}, func(cfg awsv2.Config) *supportv2.Client {
		return NewSupport(cfg)
	})
	require.NoError(t, err)

	out, err := client.DescribeSeverityLevels(ctx, &supportv2.DescribeSeverityLevelsInput{})
	require.NoError(t, err)
	assert.NotEmpty(t, out.SeverityLevels)
}

func TestIntegration_DMSDescribeEndpoints(t *testing.T) {
	ctx := context.Background()
	pool := NewPool()

	client, err := Lease(ctx, pool, Key{Service: "dms", Region: "us-east-1"}, func(cfg awsv2.Config) *dmsv2.Client {
		return NewDMS(cfg)
	})
	require.NoError(t, err)

	p := dmsv2.NewDescribeEndpointsPaginator(client, &dmsv2.DescribeEndpointsInput{MaxRecords: awsv2.Int32(20)})
	for p.HasMorePages() {
		_, err := p.NextPage(ctx)
		require.NoError(t, err)
	}
}

func TestIntegration_IoTMIListManagedThings(t *testing.T) {
	ctx := context.Background()
	pool := NewPool()

	client, err := Lease(ctx, pool, Key{Service: "iotmi", Region: "us-east-1"}, func(cfg awsv2.Config) *iotmiv2.Client {
		return NewIoTMI(cfg)
	})
	require.NoError(t, err)

	_, err = client.ListManagedThings(ctx, &iotmiv2.ListManagedThingsInput{})
	require.NoError(t, err)
}
