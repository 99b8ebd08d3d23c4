// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"
	"os"

	"github.com/awsctl/awsctl/internal/config"
)

// Streams are the standard streams a command reads pipeline input from and
// writes results and diagnostics to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns Streams bound to the process's stdin, stdout and stderr.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// Meta contains runtime metadata shared by commands. It carries CLI arguments,
// loaded configuration, context and the standard streams.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
	Streams
}
