// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/awsctl/awsctl/internal/cmdlet"
	"github.com/awsctl/awsctl/internal/config"
)

// newSchemaFlag and newTldrFlag return fresh flags; a cli flag carries its
// parsed value, so one instance cannot be shared between commands.
func newSchemaFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "schema",
		Usage:       "list the field paths of the selected output",
		HideDefault: true,
	}
}

func newTldrFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the flags every operation of service accepts, plus
// the pagination, confirmation and cache flags that apply to def.
func NewGlobalFlags(service string, def *cmdlet.Def) (flags []cli.Flag) {
	flags = []cli.Flag{
		NewProfileFlag(service, config.Config.Source),
		NewRegionFlag(service, config.Config.Source),
		NewEndpointFlag(service, config.Config.Source),
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.BoolFlag{
			Name:    "local",
			Aliases: []string{"l"},
			Usage:   "show local timestamps",
			Value:   false,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.StringFlag{
			Name:  "select",
			Usage: "response path to emit, * for the whole response or ^param to echo a parameter",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
	}

	if def == nil {
		return
	}

	if def.Pager != nil {
		flags = append(flags,
			&cli.IntFlag{
				Name:  "max-items",
				Usage: "stop after this many items",
				Validator: func(value int) error {
					return FlagValidators(value, NonNegativeValidator)
				},
			},
			&cli.BoolFlag{
				Name:  "no-paginate",
				Usage: "fetch a single page",
			},
			&cli.FloatFlag{
				Name:  "max-rps",
				Usage: "limit page requests per second (0 is unlimited)",
				Validator: func(value float64) error {
					return FlagValidators(value, NonNegativeValidator)
				},
			},
		)
	}

	if def.Mutating {
		flags = append(flags,
			&cli.BoolFlag{
				Name:  "force",
				Usage: "do not ask for confirmation",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("AWSCTL_FORCE"),
				),
			},
			&cli.BoolFlag{
				Name:  "what-if",
				Usage: "show the request without sending it",
			},
		)
	}

	if def.Cacheable {
		flags = append(flags, &cli.BoolFlag{
			Name:  "no-cache",
			Usage: "bypass the response cache",
		})
	}

	return
}

// NewProfileFlag constructs the --profile flag, namespaced to service in the
// config file at path.
func NewProfileFlag(service, path string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "shared config profile",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWSCTL_PROFILE"),
			cli.EnvVar("AWS_PROFILE"),
		),
	}
	return NameSpacedValueChainFlagFromConfigFile(service, path, flag)
}

// NewRegionFlag constructs the --region flag, namespaced to service in the
// config file at path.
func NewRegionFlag(service, path string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:    "region",
		Aliases: []string{"r"},
		Usage:   "AWS region. Overrides the profile",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWSCTL_REGION"),
			cli.EnvVar("AWS_REGION"),
		),
	}
	return NameSpacedValueChainFlagFromConfigFile(service, path, flag)
}

// NewEndpointFlag constructs the --endpoint-url flag, namespaced to service
// in the config file at path.
func NewEndpointFlag(service, path string) *cli.StringFlag {
	flag := &cli.StringFlag{
		Name:  "endpoint-url",
		Usage: "send requests to this URL instead of the service endpoint",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("AWSCTL_ENDPOINT_URL"),
		),
	}
	return NameSpacedValueChainFlagFromConfigFile(service, path, flag)
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain. Without a config file the flag is
// returned unchanged.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	if path == "" {
		return flag
	}

	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
