// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cmdlet

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
)

func TestFriendly(t *testing.T) {
	ctx := ErrorContext{Service: "dms", Operation: "DescribeEndpoints", Profile: "prod", Region: "eu-west-1"}

	tests := []struct {
		name     string
		err      error
		ctx      ErrorContext
		contains []string
	}{
		{
			name:     "dns",
			err:      fmt.Errorf("send request: %w", &net.DNSError{Name: "dms.eu-west-9.amazonaws.com", Err: "no such host"}),
			ctx:      ctx,
			contains: []string{"DescribeEndpoints: could not resolve dms.eu-west-9.amazonaws.com (region=eu-west-1)", "--endpoint-url"},
		},
		{
			name:     "access denied",
			err:      &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "not allowed"},
			ctx:      ctx,
			contains: []string{"not authorized (AccessDeniedException)", `profile "prod"`, "not allowed"},
		},
		{
			name:     "expired token without profile",
			err:      &smithy.GenericAPIError{Code: "ExpiredToken", Message: "expired"},
			ctx:      ErrorContext{Service: "support"},
			contains: []string{"request on support", `profile "default"`},
		},
		{
			name:     "subscription",
			err:      &smithy.GenericAPIError{Code: "SubscriptionRequiredException", Message: "no plan"},
			ctx:      ErrorContext{Service: "support", Operation: "DescribeCases"},
			contains: []string{"DescribeCases: the AWS Support API requires", "no plan"},
		},
		{
			name:     "other api error",
			err:      &smithy.GenericAPIError{Code: "ResourceNotFoundFault", Message: "gone"},
			ctx:      ctx,
			contains: []string{"DescribeEndpoints on dms (region=eu-west-1):", "ResourceNotFoundFault"},
		},
		{
			name:     "plain",
			err:      errors.New("boom"),
			ctx:      ErrorContext{},
			contains: []string{"request on <unknown> (region=<unknown>): boom"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Friendly(tt.err, tt.ctx)
			for _, c := range tt.contains {
				assert.Contains(t, got.Error(), c)
			}
		})
	}

	assert.NoError(t, Friendly(nil, ctx))
}

func TestFriendly_PreservesChain(t *testing.T) {
	base := &smithy.GenericAPIError{Code: "InvalidResourceStateFault", Message: "busy"}
	err := Friendly(base, ErrorContext{Service: "dms"})

	var apiErr smithy.APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "InvalidResourceStateFault", apiErr.ErrorCode())

	var dnsErr *net.DNSError
	dns := Friendly(&net.DNSError{Name: "h"}, ErrorContext{})
	assert.True(t, errors.As(dns, &dnsErr))
}

func TestIsAuthCode(t *testing.T) {
	for _, code := range []string{"AccessDenied", "AccessDeniedException", "UnrecognizedClientException", "InvalidClientTokenId", "ExpiredToken"} {
		assert.True(t, isAuthCode(code), code)
	}
	assert.False(t, isAuthCode("ThrottlingException"))
}
