// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/urfave/cli/v3"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks combinations of flags that no single flag
// validator can see.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("force") && c.Bool("what-if") {
		return errors.New("--force and --what-if cannot be combined")
	}
	if c.Bool("no-paginate") && c.Int("max-items") > 0 {
		return errors.New("--no-paginate and --max-items cannot be combined")
	}
	if endpoint := c.String("endpoint-url"); endpoint != "" {
		if err := EndpointValidator(endpoint); err != nil {
			return fmt.Errorf("--endpoint-url %w", err)
		}
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func NonNegativeValidator(value any) error {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return errors.New("must not be negative")
		}
	case float64:
		if v < 0 {
			return errors.New("must not be negative")
		}
	default:
		return fmt.Errorf("unexpected value type %T", value)
	}
	return nil
}

func EndpointValidator(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be an absolute URL, got %q", s)
	}
	return nil
}
