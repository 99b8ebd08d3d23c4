// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cmdlet

import (
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
)

// Service groups the operations of one AWS service.
type Service struct {
	// Name is the command group, e.g. "dms".
	Name  string
	Usage string
	// DefaultRegion applies when neither flag, environment nor profile
	// names a region.
	DefaultRegion string
	// NewClient builds the SDK client every operation of the service is
	// invoked on.
	NewClient func(awsv2.Config) any
	Ops       []Op
}

// Op returns the named operation.
func (s Service) Op(name string) (Op, bool) {
	for _, op := range s.Ops {
		if op.Def().Name == name {
			return op, true
		}
	}
	return nil, false
}
