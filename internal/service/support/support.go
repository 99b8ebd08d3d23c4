// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package support

import (
	"context"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	supportv2 "github.com/aws/aws-sdk-go-v2/service/support"

	"github.com/awsctl/awsctl/internal/aws"
	"github.com/awsctl/awsctl/internal/cmdlet"
)

// Name is the command group and cache partition of the service.
const Name = "support"

// DefaultRegion is the only region the Support API is served from in the
// commercial partition.
const DefaultRegion = "us-east-1"

// API is the part of the Support client the operations call.
type API interface {
	AddAttachmentsToSet(context.Context, *supportv2.AddAttachmentsToSetInput, ...func(*supportv2.Options)) (*supportv2.AddAttachmentsToSetOutput, error)
	AddCommunicationToCase(context.Context, *supportv2.AddCommunicationToCaseInput, ...func(*supportv2.Options)) (*supportv2.AddCommunicationToCaseOutput, error)
	CreateCase(context.Context, *supportv2.CreateCaseInput, ...func(*supportv2.Options)) (*supportv2.CreateCaseOutput, error)
	DescribeAttachment(context.Context, *supportv2.DescribeAttachmentInput, ...func(*supportv2.Options)) (*supportv2.DescribeAttachmentOutput, error)
	DescribeCases(context.Context, *supportv2.DescribeCasesInput, ...func(*supportv2.Options)) (*supportv2.DescribeCasesOutput, error)
	DescribeCommunications(context.Context, *supportv2.DescribeCommunicationsInput, ...func(*supportv2.Options)) (*supportv2.DescribeCommunicationsOutput, error)
	DescribeServices(context.Context, *supportv2.DescribeServicesInput, ...func(*supportv2.Options)) (*supportv2.DescribeServicesOutput, error)
	DescribeSeverityLevels(context.Context, *supportv2.DescribeSeverityLevelsInput, ...func(*supportv2.Options)) (*supportv2.DescribeSeverityLevelsOutput, error)
	DescribeTrustedAdvisorChecks(context.Context, *supportv2.DescribeTrustedAdvisorChecksInput, ...func(*supportv2.Options)) (*supportv2.DescribeTrustedAdvisorChecksOutput, error)
	RefreshTrustedAdvisorCheck(context.Context, *supportv2.RefreshTrustedAdvisorCheckInput, ...func(*supportv2.Options)) (*supportv2.RefreshTrustedAdvisorCheckOutput, error)
	ResolveCase(context.Context, *supportv2.ResolveCaseInput, ...func(*supportv2.Options)) (*supportv2.ResolveCaseOutput, error)
}

var _ API = (*supportv2.Client)(nil)

// Service returns the support command group.
func Service() cmdlet.Service {
	return cmdlet.Service{
		Name:          Name,
		Usage:         "AWS Support cases, attachments and Trusted Advisor",
		DefaultRegion: DefaultRegion,
		NewClient:     func(cfg awsv2.Config) any { return aws.NewSupport(cfg) },
		Ops:           Ops(),
	}
}

var (
	language = cmdlet.Param{
		Name:  "language",
		Field: "Language",
		Usage: "ISO 639-1 language code for returned text (en, ja, zh, ko)",
	}
	maxResults = cmdlet.Param{
		Name:  "max-results",
		Field: "MaxResults",
		Kind:  cmdlet.Int,
		Min:   10,
		Max:   100,
		Usage: "items per page",
	}
	nextToken = cmdlet.Param{
		Name:  "next-token",
		Field: "NextToken",
		Usage: "resume from a previous NextToken",
	}
	afterTime = cmdlet.Param{
		Name:  "after-time",
		Field: "AfterTime",
		Usage: "only items created after this ISO 8601 time",
	}
	beforeTime = cmdlet.Param{
		Name:  "before-time",
		Field: "BeforeTime",
		Usage: "only items created before this ISO 8601 time",
	}
	ccEmails = cmdlet.Param{
		Name:  "cc-email-addresses",
		Field: "CcEmailAddresses",
		Kind:  cmdlet.StringList,
		Usage: "email addresses to copy on communications",
	}
	attachmentSetID = cmdlet.Param{
		Name:  "attachment-set-id",
		Field: "AttachmentSetId",
		Usage: "attachment set from add-attachments-to-set",
	}
)

func pager(items string) *cmdlet.Pager {
	return &cmdlet.Pager{
		InputToken:  "NextToken",
		OutputToken: "NextToken",
		PageSize:    "MaxResults",
		MinPageSize: 10,
		MaxPageSize: 100,
		Items:       items,
	}
}

// Ops returns the support operations.
func Ops() []cmdlet.Op {
	return []cmdlet.Op{
		cmdlet.NewOp(API.DescribeCases, cmdlet.Def{
			Name:   "describe-cases",
			API:    "DescribeCases",
			Usage:  "list support cases",
			Select: "Cases",
			Attrs:  []string{"DisplayId", "Subject", "Status", "SeverityCode", "TimeCreated"},
			Params: []cmdlet.Param{
				{Name: "case-id-list", Field: "CaseIdList", Kind: cmdlet.StringList, Pipeline: true, Usage: "case IDs to return"},
				{Name: "display-id", Field: "DisplayId", Usage: "case number shown in the console"},
				afterTime,
				beforeTime,
				{Name: "include-resolved-cases", Field: "IncludeResolvedCases", Kind: cmdlet.Bool, Usage: "include resolved cases"},
				{Name: "include-communications", Field: "IncludeCommunications", Kind: cmdlet.Bool, Usage: "include recent communications"},
				language,
				maxResults,
				nextToken,
			},
			Pager: pager("Cases"),
		}),

		cmdlet.NewOp(API.CreateCase, cmdlet.Def{
			Name:     "create-case",
			API:      "CreateCase",
			Usage:    "open a support case",
			Select:   "CaseId",
			Mutating: true,
			Target:   "subject",
			Params: []cmdlet.Param{
				{Name: "subject", Field: "Subject", Required: true, Usage: "case title"},
				{Name: "communication-body", Field: "CommunicationBody", Required: true, Aliases: []string{"body"}, Usage: "case description"},
				{Name: "service-code", Field: "ServiceCode", Usage: "code from describe-services"},
				{Name: "category-code", Field: "CategoryCode", Usage: "category from describe-services"},
				{Name: "severity-code", Field: "SeverityCode", Usage: "code from describe-severity-levels"},
				{Name: "issue-type", Field: "IssueType", Kind: cmdlet.Enum, Enum: []string{"customer-service", "technical"}, Usage: "type of issue"},
				ccEmails,
				attachmentSetID,
				language,
			},
		}),

		cmdlet.NewOp(API.ResolveCase, cmdlet.Def{
			Name:     "resolve-case",
			API:      "ResolveCase",
			Usage:    "resolve a support case",
			Select:   "*",
			Mutating: true,
			Target:   "case-id",
			Params: []cmdlet.Param{
				{Name: "case-id", Field: "CaseId", Required: true, Pipeline: true, Usage: "case to resolve"},
			},
		}),

		cmdlet.NewOp(API.AddCommunicationToCase, cmdlet.Def{
			Name:     "add-communication-to-case",
			API:      "AddCommunicationToCase",
			Usage:    "add a correspondence to a case",
			Select:   "Result",
			Mutating: true,
			Target:   "case-id",
			Params: []cmdlet.Param{
				{Name: "case-id", Field: "CaseId", Pipeline: true, Usage: "case to update"},
				{Name: "communication-body", Field: "CommunicationBody", Required: true, Aliases: []string{"body"}, Usage: "message text"},
				ccEmails,
				attachmentSetID,
			},
		}),

		cmdlet.NewOp(API.DescribeCommunications, cmdlet.Def{
			Name:   "describe-communications",
			API:    "DescribeCommunications",
			Usage:  "list the communications of a case",
			Select: "Communications",
			Attrs:  []string{"TimeCreated", "SubmittedBy", "Body"},
			Params: []cmdlet.Param{
				{Name: "case-id", Field: "CaseId", Required: true, Pipeline: true, Usage: "case to read"},
				afterTime,
				beforeTime,
				maxResults,
				nextToken,
			},
			Pager: pager("Communications"),
		}),

		cmdlet.NewOp(API.AddAttachmentsToSet, cmdlet.Def{
			Name:     "add-attachments-to-set",
			API:      "AddAttachmentsToSet",
			Usage:    "upload attachments for use in case communications",
			Select:   "*",
			Mutating: true,
			Target:   "attachment-set-id",
			Params: []cmdlet.Param{
				{Name: "attachment", Field: "Attachments", Kind: cmdlet.Attachments, Required: true,
					Usage: "[name=]source where source is @file, - or s3://bucket/key; repeatable"},
				attachmentSetID,
			},
		}),

		cmdlet.NewOp(API.DescribeAttachment, cmdlet.Def{
			Name:   "describe-attachment",
			API:    "DescribeAttachment",
			Usage:  "download an attachment",
			Select: "Attachment",
			Attrs:  []string{"FileName"},
			Params: []cmdlet.Param{
				{Name: "attachment-id", Field: "AttachmentId", Required: true, Pipeline: true, Usage: "attachment to return"},
			},
		}),

		cmdlet.NewOp(API.DescribeServices, cmdlet.Def{
			Name:      "describe-services",
			API:       "DescribeServices",
			Usage:     "list AWS services and their case categories",
			Select:    "Services",
			Attrs:     []string{"Code", "Name"},
			Cacheable: true,
			Params: []cmdlet.Param{
				{Name: "service-code-list", Field: "ServiceCodeList", Kind: cmdlet.StringList, Pipeline: true, Usage: "service codes to return"},
				language,
			},
		}),

		cmdlet.NewOp(API.DescribeSeverityLevels, cmdlet.Def{
			Name:      "describe-severity-levels",
			API:       "DescribeSeverityLevels",
			Usage:     "list case severity levels",
			Select:    "SeverityLevels",
			Attrs:     []string{"Code", "Name"},
			Cacheable: true,
			Params:    []cmdlet.Param{language},
		}),

		cmdlet.NewOp(API.DescribeTrustedAdvisorChecks, cmdlet.Def{
			Name:      "describe-trusted-advisor-checks",
			API:       "DescribeTrustedAdvisorChecks",
			Usage:     "list Trusted Advisor checks",
			Select:    "Checks",
			Attrs:     []string{"Id", "Category", "Name"},
			Cacheable: true,
			Params: []cmdlet.Param{
				{Name: language.Name, Field: language.Field, Usage: language.Usage, Required: true, Default: cmdlet.Value("en")},
			},
		}),

		cmdlet.NewOp(API.RefreshTrustedAdvisorCheck, cmdlet.Def{
			Name:   "refresh-trusted-advisor-check",
			API:    "RefreshTrustedAdvisorCheck",
			Usage:  "request a refresh of a Trusted Advisor check",
			Select: "Status",
			Attrs:  []string{"CheckId", "Status", "MillisUntilNextRefreshable"},
			Params: []cmdlet.Param{
				{Name: "check-id", Field: "CheckId", Required: true, Pipeline: true, Usage: "check to refresh"},
			},
		}),
	}
}
