// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package iotmi

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	iotmiv2 "github.com/aws/aws-sdk-go-v2/service/iotmanagedintegrations"
	"github.com/google/uuid"

	"github.com/awsctl/awsctl/internal/aws"
	"github.com/awsctl/awsctl/internal/cmdlet"
)

// Name is the command group and cache partition of the service.
const Name = "iotmi"

// API is the part of the IoT Managed Integrations client the operations
// call.
type API interface {
	CreateCredentialLocker(context.Context, *iotmiv2.CreateCredentialLockerInput, ...func(*iotmiv2.Options)) (*iotmiv2.CreateCredentialLockerOutput, error)
	DeleteCredentialLocker(context.Context, *iotmiv2.DeleteCredentialLockerInput, ...func(*iotmiv2.Options)) (*iotmiv2.DeleteCredentialLockerOutput, error)
	DeleteManagedThing(context.Context, *iotmiv2.DeleteManagedThingInput, ...func(*iotmiv2.Options)) (*iotmiv2.DeleteManagedThingOutput, error)
	GetCredentialLocker(context.Context, *iotmiv2.GetCredentialLockerInput, ...func(*iotmiv2.Options)) (*iotmiv2.GetCredentialLockerOutput, error)
	GetDestination(context.Context, *iotmiv2.GetDestinationInput, ...func(*iotmiv2.Options)) (*iotmiv2.GetDestinationOutput, error)
	GetManagedThing(context.Context, *iotmiv2.GetManagedThingInput, ...func(*iotmiv2.Options)) (*iotmiv2.GetManagedThingOutput, error)
	ListCredentialLockers(context.Context, *iotmiv2.ListCredentialLockersInput, ...func(*iotmiv2.Options)) (*iotmiv2.ListCredentialLockersOutput, error)
	ListDestinations(context.Context, *iotmiv2.ListDestinationsInput, ...func(*iotmiv2.Options)) (*iotmiv2.ListDestinationsOutput, error)
	ListManagedThings(context.Context, *iotmiv2.ListManagedThingsInput, ...func(*iotmiv2.Options)) (*iotmiv2.ListManagedThingsOutput, error)
}

var _ API = (*iotmiv2.Client)(nil)

// Service returns the iotmi command group.
func Service() cmdlet.Service {
	return cmdlet.Service{
		Name:      Name,
		Usage:     "IoT Managed Integrations managed things, credential lockers and destinations",
		NewClient: func(cfg awsv2.Config) any { return aws.NewIoTMI(cfg) },
		Ops:       Ops(),
	}
}

var (
	maxResults = cmdlet.Param{
		Name:  "max-results",
		Field: "MaxResults",
		Kind:  cmdlet.Int,
		Min:   1,
		Max:   100,
		Usage: "items per page",
	}
	nextToken = cmdlet.Param{
		Name:  "next-token",
		Field: "NextToken",
		Usage: "resume from a previous NextToken",
	}
)

func identifier(usage string) cmdlet.Param {
	return cmdlet.Param{
		Name:     "identifier",
		Field:    "Identifier",
		Required: true,
		Pipeline: true,
		Usage:    usage,
	}
}

func pager(items string) *cmdlet.Pager {
	return &cmdlet.Pager{
		InputToken:  "NextToken",
		OutputToken: "NextToken",
		PageSize:    "MaxResults",
		MinPageSize: 1,
		MaxPageSize: 100,
		Items:       items,
	}
}

// Ops returns the iotmi operations.
func Ops() []cmdlet.Op {
	return []cmdlet.Op{
		cmdlet.NewOp(API.ListManagedThings, cmdlet.Def{
			Name:   "list-managed-things",
			API:    "ListManagedThings",
			Usage:  "list managed things",
			Select: "Items",
			Attrs:  []string{"Id", "Name", "Role", "ProvisioningStatus", "SerialNumber"},
			Params: []cmdlet.Param{
				{Name: "owner-filter", Field: "OwnerFilter", Usage: "only things with this owner"},
				{Name: "credential-locker-filter", Field: "CredentialLockerFilter", Usage: "only things in this credential locker"},
				{Name: "role-filter", Field: "RoleFilter", Kind: cmdlet.Enum, Enum: []string{"CONTROLLER", "DEVICE"}, Usage: "only things with this role"},
				{Name: "parent-controller-identifier-filter", Field: "ParentControllerIdentifierFilter", Usage: "only things under this controller"},
				{Name: "provisioning-status-filter", Field: "ProvisioningStatusFilter", Kind: cmdlet.Enum,
					Enum:  []string{"UNASSOCIATED", "PRE_ASSOCIATED", "DISCOVERED", "ACTIVATED", "DELETION_FAILED", "DELETE_IN_PROGRESS", "ISOLATED", "DELETED"},
					Usage: "only things in this provisioning state"},
				{Name: "serial-number-filter", Field: "SerialNumberFilter", Usage: "only the thing with this serial number"},
				maxResults,
				nextToken,
			},
			Pager: pager("Items"),
		}),

		cmdlet.NewOp(API.GetManagedThing, cmdlet.Def{
			Name:   "get-managed-thing",
			API:    "GetManagedThing",
			Usage:  "show a managed thing",
			Select: "*",
			Attrs:  []string{"Id", "Name", "Role", "ProvisioningStatus", "Model"},
			Params: []cmdlet.Param{identifier("managed thing ID")},
		}),

		cmdlet.NewOp(API.DeleteManagedThing, cmdlet.Def{
			Name:     "delete-managed-thing",
			API:      "DeleteManagedThing",
			Usage:    "delete a managed thing",
			Mutating: true,
			Target:   "identifier",
			Params: []cmdlet.Param{
				identifier("managed thing ID"),
				{Name: "force-delete", Field: "Force", Kind: cmdlet.Bool, Usage: "delete even when the device cannot be reached"},
			},
		}),

		cmdlet.NewOp(API.ListCredentialLockers, cmdlet.Def{
			Name:   "list-credential-lockers",
			API:    "ListCredentialLockers",
			Usage:  "list credential lockers",
			Select: "Items",
			Attrs:  []string{"Id", "Name", "CreatedAt"},
			Params: []cmdlet.Param{maxResults, nextToken},
			Pager:  pager("Items"),
		}),

		cmdlet.NewOp(API.CreateCredentialLocker, cmdlet.Def{
			Name:     "create-credential-locker",
			API:      "CreateCredentialLocker",
			Usage:    "create a credential locker",
			Select:   "*",
			Attrs:    []string{"Id", "Arn", "CreatedAt"},
			Mutating: true,
			Target:   "name",
			Params: []cmdlet.Param{
				{Name: "name", Field: "Name", Usage: "locker name"},
				{Name: "client-token", Field: "ClientToken", Default: func() any { return uuid.NewString() },
					Usage: "idempotency token; generated when omitted"},
				{Name: "tags", Field: "Tags", Kind: cmdlet.TagMap, Usage: "key=value tags; repeatable"},
			},
		}),

		cmdlet.NewOp(API.GetCredentialLocker, cmdlet.Def{
			Name:   "get-credential-locker",
			API:    "GetCredentialLocker",
			Usage:  "show a credential locker",
			Select: "*",
			Attrs:  []string{"Id", "Name", "Arn", "CreatedAt"},
			Params: []cmdlet.Param{identifier("credential locker ID")},
		}),

		cmdlet.NewOp(API.DeleteCredentialLocker, cmdlet.Def{
			Name:     "delete-credential-locker",
			API:      "DeleteCredentialLocker",
			Usage:    "delete a credential locker",
			Mutating: true,
			Target:   "identifier",
			Params:   []cmdlet.Param{identifier("credential locker ID")},
		}),

		cmdlet.NewOp(API.ListDestinations, cmdlet.Def{
			Name:   "list-destinations",
			API:    "ListDestinations",
			Usage:  "list notification destinations",
			Select: "DestinationList",
			Attrs:  []string{"Name", "DeliveryDestinationType", "DeliveryDestinationArn"},
			Params: []cmdlet.Param{maxResults, nextToken},
			Pager:  pager("DestinationList"),
		}),

		cmdlet.NewOp(API.GetDestination, cmdlet.Def{
			Name:   "get-destination",
			API:    "GetDestination",
			Usage:  "show a notification destination",
			Select: "*",
			Attrs:  []string{"Name", "DeliveryDestinationType", "DeliveryDestinationArn", "RoleArn"},
			Params: []cmdlet.Param{
				{Name: "name", Field: "Name", Required: true, Pipeline: true, Usage: "destination name"},
			},
		}),
	}
}
