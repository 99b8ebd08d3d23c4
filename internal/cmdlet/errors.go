// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cmdlet

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrDeclined is the error of an item the user chose not to run.
var ErrDeclined = errors.New("declined")

// ErrorContext carries invocation context for improving SDK error messages.
type ErrorContext struct {
	Service   string
	Operation string // e.g. "DescribeEndpoints"
	Profile   string
	Region    string
}

// Friendly wraps an SDK error with a contextual, user-friendly message.
// Network and unclassified errors stay reachable through errors.Is/As.
func Friendly(err error, ctx ErrorContext) error {
	if err == nil {
		return nil
	}

	op := nonEmpty(ctx.Operation, "request")
	region := nonEmpty(ctx.Region, "<unknown>")

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%s: could not resolve %s (region=%s): check --region/--endpoint-url and network connectivity: %w",
			op, nonEmpty(dnsErr.Name, "<unknown>"), region, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		switch {
		case isAuthCode(code):
			return fmt.Errorf("%s on %s: not authorized (%s) for profile %q: check credentials and IAM permissions: %s",
				op, nonEmpty(ctx.Service, "<unknown>"), code, nonEmpty(ctx.Profile, "default"), apiErr.ErrorMessage())
		case code == "SubscriptionRequiredException":
			return fmt.Errorf("%s: the AWS Support API requires a Business, Enterprise On-Ramp or Enterprise support plan: %s",
				op, apiErr.ErrorMessage())
		}
	}

	return fmt.Errorf("%s on %s (region=%s): %w", op, nonEmpty(ctx.Service, "<unknown>"), region, err)
}

func isAuthCode(code string) bool {
	switch code {
	case "UnrecognizedClientException", "UnrecognizedClient", "ExpiredToken", "ExpiredTokenException",
		"InvalidClientTokenId", "InvalidSignatureException":
		return true
	}
	return strings.HasPrefix(code, "AccessDenied")
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
