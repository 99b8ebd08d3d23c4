// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dms

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	dmsv2 "github.com/aws/aws-sdk-go-v2/service/databasemigrationservice"

	"github.com/awsctl/awsctl/internal/aws"
	"github.com/awsctl/awsctl/internal/cmdlet"
)

// Name is the command group and cache partition of the service.
const Name = "dms"

// API is the part of the Database Migration Service client the operations
// call.
type API interface {
	AddTagsToResource(context.Context, *dmsv2.AddTagsToResourceInput, ...func(*dmsv2.Options)) (*dmsv2.AddTagsToResourceOutput, error)
	CreateEndpoint(context.Context, *dmsv2.CreateEndpointInput, ...func(*dmsv2.Options)) (*dmsv2.CreateEndpointOutput, error)
	CreateEventSubscription(context.Context, *dmsv2.CreateEventSubscriptionInput, ...func(*dmsv2.Options)) (*dmsv2.CreateEventSubscriptionOutput, error)
	CreateReplicationInstance(context.Context, *dmsv2.CreateReplicationInstanceInput, ...func(*dmsv2.Options)) (*dmsv2.CreateReplicationInstanceOutput, error)
	DeleteEndpoint(context.Context, *dmsv2.DeleteEndpointInput, ...func(*dmsv2.Options)) (*dmsv2.DeleteEndpointOutput, error)
	DeleteEventSubscription(context.Context, *dmsv2.DeleteEventSubscriptionInput, ...func(*dmsv2.Options)) (*dmsv2.DeleteEventSubscriptionOutput, error)
	DeleteReplicationInstance(context.Context, *dmsv2.DeleteReplicationInstanceInput, ...func(*dmsv2.Options)) (*dmsv2.DeleteReplicationInstanceOutput, error)
	DescribeConnections(context.Context, *dmsv2.DescribeConnectionsInput, ...func(*dmsv2.Options)) (*dmsv2.DescribeConnectionsOutput, error)
	DescribeEndpoints(context.Context, *dmsv2.DescribeEndpointsInput, ...func(*dmsv2.Options)) (*dmsv2.DescribeEndpointsOutput, error)
	DescribeEventSubscriptions(context.Context, *dmsv2.DescribeEventSubscriptionsInput, ...func(*dmsv2.Options)) (*dmsv2.DescribeEventSubscriptionsOutput, error)
	DescribeReplicationInstances(context.Context, *dmsv2.DescribeReplicationInstancesInput, ...func(*dmsv2.Options)) (*dmsv2.DescribeReplicationInstancesOutput, error)
	DescribeReplicationTasks(context.Context, *dmsv2.DescribeReplicationTasksInput, ...func(*dmsv2.Options)) (*dmsv2.DescribeReplicationTasksOutput, error)
	ListTagsForResource(context.Context, *dmsv2.ListTagsForResourceInput, ...func(*dmsv2.Options)) (*dmsv2.ListTagsForResourceOutput, error)
	StartReplicationTask(context.Context, *dmsv2.StartReplicationTaskInput, ...func(*dmsv2.Options)) (*dmsv2.StartReplicationTaskOutput, error)
	StopReplicationTask(context.Context, *dmsv2.StopReplicationTaskInput, ...func(*dmsv2.Options)) (*dmsv2.StopReplicationTaskOutput, error)
	TestConnection(context.Context, *dmsv2.TestConnectionInput, ...func(*dmsv2.Options)) (*dmsv2.TestConnectionOutput, error)
}

var _ API = (*dmsv2.Client)(nil)

// Service returns the dms command group.
func Service() cmdlet.Service {
	return cmdlet.Service{
		Name:      Name,
		Usage:     "Database Migration Service endpoints, instances, tasks and subscriptions",
		NewClient: func(cfg awsv2.Config) any { return aws.NewDMS(cfg) },
		Ops:       Ops(),
	}
}

// describe returns the Filters, Marker and MaxRecords parameters every DMS
// describe operation shares, followed by extra.
func describe(extra ...cmdlet.Param) []cmdlet.Param {
	return append(extra,
		cmdlet.Param{
			Name:  "filters",
			Field: "Filters",
			Kind:  cmdlet.JSON,
			Usage: `filters as JSON, e.g. [{"Name":"engine-name","Values":["mysql"]}]; see also --filter _name=v1|v2`,
		},
		cmdlet.Param{
			Name:  "marker",
			Field: "Marker",
			Usage: "resume from a previous Marker",
		},
		cmdlet.Param{
			Name:  "max-records",
			Field: "MaxRecords",
			Kind:  cmdlet.Int,
			Min:   20,
			Max:   100,
			Usage: "records per page",
		},
	)
}

func pager(items string) *cmdlet.Pager {
	return &cmdlet.Pager{
		InputToken:  "Marker",
		OutputToken: "Marker",
		PageSize:    "MaxRecords",
		MinPageSize: 20,
		MaxPageSize: 100,
		Items:       items,
	}
}

var (
	tags = cmdlet.Param{
		Name:  "tags",
		Field: "Tags",
		Kind:  cmdlet.Tags,
		Usage: "key=value tags; repeatable",
	}
	kmsKeyID = cmdlet.Param{
		Name:  "kms-key-id",
		Field: "KmsKeyId",
		Usage: "KMS key for encryption at rest",
	}
	endpointArn = cmdlet.Param{
		Name:     "endpoint-arn",
		Field:    "EndpointArn",
		Required: true,
		Pipeline: true,
		Usage:    "endpoint ARN",
	}
	replicationInstanceArn = cmdlet.Param{
		Name:     "replication-instance-arn",
		Field:    "ReplicationInstanceArn",
		Required: true,
		Pipeline: true,
		Usage:    "replication instance ARN",
	}
	replicationTaskArn = cmdlet.Param{
		Name:     "replication-task-arn",
		Field:    "ReplicationTaskArn",
		Required: true,
		Pipeline: true,
		Usage:    "replication task ARN",
	}
	subscriptionName = cmdlet.Param{
		Name:     "subscription-name",
		Field:    "SubscriptionName",
		Required: true,
		Pipeline: true,
		Usage:    "event subscription name",
	}
)

var (
	endpointAttrs     = []string{"EndpointIdentifier", "EndpointType", "EngineName", "Status", "ServerName"}
	instanceAttrs     = []string{"ReplicationInstanceIdentifier", "ReplicationInstanceClass", "ReplicationInstanceStatus", "EngineVersion"}
	taskAttrs         = []string{"ReplicationTaskIdentifier", "MigrationType", "Status", "ReplicationTaskStats.FullLoadProgressPercent"}
	subscriptionAttrs = []string{"CustSubscriptionId", "SourceType", "Status", "Enabled", "SnsTopicArn"}
)

// Ops returns the dms operations.
func Ops() []cmdlet.Op {
	return []cmdlet.Op{
		cmdlet.NewOp(API.DescribeEndpoints, cmdlet.Def{
			Name:    "describe-endpoints",
			API:     "DescribeEndpoints",
			Usage:   "list endpoints",
			Select:  "Endpoints",
			Attrs:   endpointAttrs,
			Params:  describe(),
			Pager:   pager("Endpoints"),
			Filters: "Filters",
		}),

		cmdlet.NewOp(API.CreateEndpoint, cmdlet.Def{
			Name:     "create-endpoint",
			API:      "CreateEndpoint",
			Usage:    "create a source or target endpoint",
			Select:   "Endpoint",
			Attrs:    endpointAttrs,
			Mutating: true,
			Target:   "endpoint-identifier",
			Params: []cmdlet.Param{
				{Name: "endpoint-identifier", Field: "EndpointIdentifier", Required: true, Usage: "endpoint name"},
				{Name: "endpoint-type", Field: "EndpointType", Kind: cmdlet.Enum, Enum: []string{"source", "target"}, Required: true, Usage: "endpoint role"},
				{Name: "engine-name", Field: "EngineName", Required: true, Usage: "database engine, e.g. mysql, postgres, s3"},
				{Name: "server-name", Field: "ServerName", Usage: "database host"},
				{Name: "port", Field: "Port", Kind: cmdlet.Int, Min: 1, Max: 65535, Usage: "database port"},
				{Name: "database-name", Field: "DatabaseName", Usage: "database name"},
				{Name: "username", Field: "Username", Usage: "database user"},
				{Name: "password", Field: "Password", Usage: "database password"},
				{Name: "extra-connection-attributes", Field: "ExtraConnectionAttributes", Usage: "engine-specific attributes"},
				{Name: "certificate-arn", Field: "CertificateArn", Usage: "certificate for SSL connections"},
				{Name: "ssl-mode", Field: "SslMode", Kind: cmdlet.Enum, Enum: []string{"none", "require", "verify-ca", "verify-full"}, Usage: "SSL mode"},
				{Name: "service-access-role-arn", Field: "ServiceAccessRoleArn", Usage: "role used to reach the endpoint's service"},
				kmsKeyID,
				{Name: "s3-settings", Field: "S3Settings", Kind: cmdlet.JSON, Usage: "S3 settings as JSON or @file"},
				{Name: "s3-bucket-name", Field: "S3Settings.BucketName", Usage: "S3 bucket, merged into --s3-settings"},
				{Name: "s3-bucket-folder", Field: "S3Settings.BucketFolder", Usage: "S3 folder, merged into --s3-settings"},
				{Name: "my-sql-settings", Field: "MySQLSettings", Kind: cmdlet.JSON, Usage: "MySQL settings as JSON or @file"},
				{Name: "postgre-sql-settings", Field: "PostgreSQLSettings", Kind: cmdlet.JSON, Usage: "PostgreSQL settings as JSON or @file"},
				tags,
			},
		}),

		cmdlet.NewOp(API.DeleteEndpoint, cmdlet.Def{
			Name:     "delete-endpoint",
			API:      "DeleteEndpoint",
			Usage:    "delete an endpoint",
			Select:   "Endpoint",
			Attrs:    endpointAttrs,
			Mutating: true,
			Target:   "endpoint-arn",
			Params:   []cmdlet.Param{endpointArn},
		}),

		cmdlet.NewOp(API.TestConnection, cmdlet.Def{
			Name:   "test-connection",
			API:    "TestConnection",
			Usage:  "test the connection between a replication instance and an endpoint",
			Select: "Connection",
			Params: []cmdlet.Param{
				endpointArn,
				{Name: replicationInstanceArn.Name, Field: replicationInstanceArn.Field, Required: true, Usage: replicationInstanceArn.Usage},
			},
		}),

		cmdlet.NewOp(API.DescribeConnections, cmdlet.Def{
			Name:    "describe-connections",
			API:     "DescribeConnections",
			Usage:   "list connection test results",
			Select:  "Connections",
			Attrs:   []string{"EndpointIdentifier", "ReplicationInstanceIdentifier", "Status", "LastFailureMessage"},
			Params:  describe(),
			Pager:   pager("Connections"),
			Filters: "Filters",
		}),

		cmdlet.NewOp(API.DescribeReplicationInstances, cmdlet.Def{
			Name:    "describe-replication-instances",
			API:     "DescribeReplicationInstances",
			Usage:   "list replication instances",
			Select:  "ReplicationInstances",
			Attrs:   instanceAttrs,
			Params:  describe(),
			Pager:   pager("ReplicationInstances"),
			Filters: "Filters",
		}),

		cmdlet.NewOp(API.CreateReplicationInstance, cmdlet.Def{
			Name:     "create-replication-instance",
			API:      "CreateReplicationInstance",
			Usage:    "create a replication instance",
			Select:   "ReplicationInstance",
			Attrs:    instanceAttrs,
			Mutating: true,
			Target:   "replication-instance-identifier",
			Params: []cmdlet.Param{
				{Name: "replication-instance-identifier", Field: "ReplicationInstanceIdentifier", Required: true, Usage: "instance name"},
				{Name: "replication-instance-class", Field: "ReplicationInstanceClass", Required: true, Usage: "compute class, e.g. dms.t3.medium"},
				{Name: "allocated-storage", Field: "AllocatedStorage", Kind: cmdlet.Int, Usage: "storage in GiB"},
				{Name: "availability-zone", Field: "AvailabilityZone", Usage: "availability zone"},
				{Name: "engine-version", Field: "EngineVersion", Usage: "replication engine version"},
				{Name: "multi-az", Field: "MultiAZ", Kind: cmdlet.Bool, Usage: "deploy across availability zones"},
				{Name: "publicly-accessible", Field: "PubliclyAccessible", Kind: cmdlet.Bool, Usage: "assign a public IP"},
				{Name: "auto-minor-version-upgrade", Field: "AutoMinorVersionUpgrade", Kind: cmdlet.Bool, Usage: "apply minor engine upgrades"},
				{Name: "replication-subnet-group-identifier", Field: "ReplicationSubnetGroupIdentifier", Usage: "subnet group"},
				{Name: "vpc-security-group-ids", Field: "VpcSecurityGroupIds", Kind: cmdlet.StringList, Usage: "security groups"},
				kmsKeyID,
				tags,
			},
		}),

		cmdlet.NewOp(API.DeleteReplicationInstance, cmdlet.Def{
			Name:     "delete-replication-instance",
			API:      "DeleteReplicationInstance",
			Usage:    "delete a replication instance",
			Select:   "ReplicationInstance",
			Attrs:    instanceAttrs,
			Mutating: true,
			Target:   "replication-instance-arn",
			Params:   []cmdlet.Param{replicationInstanceArn},
		}),

		cmdlet.NewOp(API.DescribeReplicationTasks, cmdlet.Def{
			Name:   "describe-replication-tasks",
			API:    "DescribeReplicationTasks",
			Usage:  "list replication tasks",
			Select: "ReplicationTasks",
			Attrs:  taskAttrs,
			Params: describe(
				cmdlet.Param{Name: "without-settings", Field: "WithoutSettings", Kind: cmdlet.Bool, Usage: "omit task settings from the response"},
			),
			Pager:   pager("ReplicationTasks"),
			Filters: "Filters",
		}),

		cmdlet.NewOp(API.StartReplicationTask, cmdlet.Def{
			Name:     "start-replication-task",
			API:      "StartReplicationTask",
			Usage:    "start, resume or reload a replication task",
			Select:   "ReplicationTask",
			Attrs:    taskAttrs,
			Mutating: true,
			Target:   "replication-task-arn",
			Params: []cmdlet.Param{
				replicationTaskArn,
				{Name: "start-replication-task-type", Field: "StartReplicationTaskType", Kind: cmdlet.Enum, Required: true,
					Enum: []string{"start-replication", "resume-processing", "reload-target"}, Usage: "how to start"},
				{Name: "cdc-start-time", Field: "CdcStartTime", Kind: cmdlet.Time, Usage: "CDC start time (RFC3339)"},
				{Name: "cdc-start-position", Field: "CdcStartPosition", Usage: "CDC start position"},
				{Name: "cdc-stop-position", Field: "CdcStopPosition", Usage: "CDC stop position"},
			},
		}),

		cmdlet.NewOp(API.StopReplicationTask, cmdlet.Def{
			Name:     "stop-replication-task",
			API:      "StopReplicationTask",
			Usage:    "stop a replication task",
			Select:   "ReplicationTask",
			Attrs:    taskAttrs,
			Mutating: true,
			Target:   "replication-task-arn",
			Params:   []cmdlet.Param{replicationTaskArn},
		}),

		cmdlet.NewOp(API.DescribeEventSubscriptions, cmdlet.Def{
			Name:   "describe-event-subscriptions",
			API:    "DescribeEventSubscriptions",
			Usage:  "list event subscriptions",
			Select: "EventSubscriptionsList",
			Attrs:  subscriptionAttrs,
			Params: describe(
				cmdlet.Param{Name: "subscription-name", Field: "SubscriptionName", Pipeline: true, Usage: "only this subscription"},
			),
			Pager:   pager("EventSubscriptionsList"),
			Filters: "Filters",
		}),

		cmdlet.NewOp(API.CreateEventSubscription, cmdlet.Def{
			Name:     "create-event-subscription",
			API:      "CreateEventSubscription",
			Usage:    "subscribe an SNS topic to DMS events",
			Select:   "EventSubscription",
			Attrs:    subscriptionAttrs,
			Mutating: true,
			Target:   "subscription-name",
			Params: []cmdlet.Param{
				{Name: "subscription-name", Field: "SubscriptionName", Required: true, Usage: "subscription name"},
				{Name: "sns-topic-arn", Field: "SnsTopicArn", Required: true, Usage: "topic receiving events"},
				{Name: "source-type", Field: "SourceType", Kind: cmdlet.Enum, Enum: []string{"replication-instance", "replication-task"}, Usage: "event source type"},
				{Name: "source-ids", Field: "SourceIds", Kind: cmdlet.StringList, Usage: "event source identifiers"},
				{Name: "event-categories", Field: "EventCategories", Kind: cmdlet.StringList, Usage: "event categories"},
				{Name: "enabled", Field: "Enabled", Kind: cmdlet.Bool, Usage: "activate the subscription"},
				tags,
			},
		}),

		cmdlet.NewOp(API.DeleteEventSubscription, cmdlet.Def{
			Name:     "delete-event-subscription",
			API:      "DeleteEventSubscription",
			Usage:    "delete an event subscription",
			Select:   "EventSubscription",
			Attrs:    subscriptionAttrs,
			Mutating: true,
			Target:   "subscription-name",
			Params:   []cmdlet.Param{subscriptionName},
		}),

		cmdlet.NewOp(API.AddTagsToResource, cmdlet.Def{
			Name:     "add-tags-to-resource",
			API:      "AddTagsToResource",
			Usage:    "tag a DMS resource",
			Mutating: true,
			Target:   "resource-arn",
			Params: []cmdlet.Param{
				{Name: "resource-arn", Field: "ResourceArn", Required: true, Pipeline: true, Usage: "resource to tag"},
				{Name: tags.Name, Field: tags.Field, Kind: tags.Kind, Required: true, Usage: tags.Usage},
			},
		}),

		cmdlet.NewOp(API.ListTagsForResource, cmdlet.Def{
			Name:   "list-tags-for-resource",
			API:    "ListTagsForResource",
			Usage:  "list the tags of DMS resources",
			Select: "TagList",
			Attrs:  []string{"Key", "Value", "ResourceArn"},
			Params: []cmdlet.Param{
				{Name: "resource-arn", Field: "ResourceArn", Pipeline: true, Usage: "resource to read"},
				{Name: "resource-arn-list", Field: "ResourceArnList", Kind: cmdlet.StringList, Usage: "resources to read"},
			},
		}),
	}
}
