// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cmdlet

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Items turns positional arguments into invocation items for def. No
// arguments is a single item without a pipeline value; a lone "-" reads one
// item per non-blank line of in.
func Items(def *Def, args []string, in io.Reader) ([]*string, error) {
	if len(args) == 0 {
		return []*string{nil}, nil
	}

	p, ok := def.PipelineParam()
	if !ok {
		return nil, fmt.Errorf("%s takes no arguments, got %q", def.Name, args)
	}

	if len(args) == 1 && args[0] == "-" {
		if in == nil {
			return nil, fmt.Errorf("--%s: no stdin available for '-'", p.Name)
		}
		var items []*string
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			items = append(items, &line)
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading --%s values from stdin: %w", p.Name, err)
		}
		return items, nil
	}

	items := make([]*string, 0, len(args))
	for _, a := range args {
		items = append(items, &a)
	}
	return items, nil
}
