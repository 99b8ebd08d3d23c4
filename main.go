// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/awsctl/awsctl/internal/cacheutil"
	"github.com/awsctl/awsctl/internal/command"
	"github.com/awsctl/awsctl/internal/config"
	"github.com/awsctl/awsctl/internal/log"
	"github.com/awsctl/awsctl/internal/version"
)

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs expands @sets and collapses repeated flags. Completion
// args pass through untouched.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		return args
	}

	spec := lookupFlagSpec(args)
	args = processSetOnly(args, spec)
	log.Debugf("args after set processing: args=%v", args)

	return deduplicateFlags(args, spec)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(ctx context.Context, args []string) int {
	hours, _ := config.GetInt("cache.clean", 0)
	if err := cacheutil.Purge(hours); err != nil {
		log.Debugf("cache purge err: err=%v", err)
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	ctx, stop := interruptContext()
	defer stop()

	return initAndRunApp(ctx, args)
}

// interruptContext returns a context cancelled by an interrupt, which aborts
// the in-flight request and stops pagination.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// processSetOnly expands an @set argument into the flags listed under
// <service>.<set> in the config file. Without an explicit @set, the
// <service>.<op>.defaults and <service>.defaults sets are injected right after
// the operation name, the operation's taking precedence. A flag already on
// the command line is never injected.
func processSetOnly(args []string, spec flagSpec) []string {
	if len(args) < 2 {
		return args
	}

	for i := 2; i < len(args); i++ {
		if strings.HasPrefix(args[i], "@") {
			set := args[i][1:]
			args = append(args[:i], args[i+1:]...)
			return injectConfigSet(args, args[1]+"."+set, i, spec)
		}
	}

	if len(args) < 3 || strings.HasPrefix(args[2], "-") {
		return args
	}
	args = injectConfigSet(args, args[1]+"."+args[2]+".defaults", 3, spec)
	return injectConfigSet(args, args[1]+".defaults", 3, spec)
}

// injectConfigSet inserts the whitespace-split entries of the string list at
// key into args at insertIdx, skipping flags args already carries.
func injectConfigSet(args []string, key string, insertIdx int, spec flagSpec) []string {
	entries, err := config.GetStringSlice(key)
	if err != nil || len(entries) == 0 {
		return args
	}

	var fields []string
	for _, entry := range entries {
		fields = append(fields, strings.Fields(entry)...)
	}

	present := map[string]bool{}
	if len(args) > 2 {
		for _, g := range groupArgs(args[2:], spec) {
			if g.name != "" {
				present[g.name] = true
			}
		}
	}

	var expanded []string
	for _, g := range groupArgs(fields, spec) {
		if g.name != "" && present[g.name] {
			log.Debugf("set flag overridden: key=%s, flag=%s", key, g.name)
			continue
		}
		expanded = append(expanded, g.tokens...)
	}

	if insertIdx > len(args) {
		insertIdx = len(args)
	}
	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// flagSpec describes the flags of one operation: the canonical name of every
// name and alias, and which flags accumulate when repeated.
type flagSpec struct {
	canonical  map[string]string
	repeatable map[string]bool
}

func (fs flagSpec) name(n string) string {
	if c, ok := fs.canonical[n]; ok {
		return c
	}
	return n
}

// lookupFlagSpec finds the operation named by args[1] and args[2]. Unknown
// operations get an empty spec.
func lookupFlagSpec(args []string) flagSpec {
	spec := flagSpec{canonical: map[string]string{}, repeatable: map[string]bool{}}
	if len(args) < 3 {
		return spec
	}

	for _, svc := range command.Services() {
		if svc.Name != args[1] {
			continue
		}
		for _, op := range svc.Ops {
			def := op.Def()
			if def.Name != args[2] {
				continue
			}
			for _, p := range def.Params {
				for _, n := range append([]string{p.Name}, p.Aliases...) {
					spec.canonical[n] = p.Name
				}
				spec.repeatable[p.Name] = p.Repeatable()
			}
			for _, f := range command.NewGlobalFlags(svc.Name, def) {
				names := f.Names()
				for _, n := range names {
					spec.canonical[n] = names[0]
				}
				_, slice := f.(*cli.StringSliceFlag)
				spec.repeatable[names[0]] = slice
			}
		}
	}
	return spec
}

type flagGroup struct {
	name   string
	tokens []string
}

// groupArgs splits tokens into flags, each with the value it owns, and
// positionals (empty name). A flag owns the token after it when that token is
// neither a flag nor the "-" stdin marker. --x=v and --x are the same flag.
func groupArgs(tokens []string, spec flagSpec) []flagGroup {
	var groups []flagGroup
	for i := 0; i < len(tokens); i++ {
		a := tokens[i]
		if !isFlag(a) {
			groups = append(groups, flagGroup{tokens: []string{a}})
			continue
		}

		name := strings.TrimLeft(a, "-")
		group := []string{a}
		if n, _, ok := strings.Cut(name, "="); ok {
			name = n
		} else if i+1 < len(tokens) && !isFlag(tokens[i+1]) && tokens[i+1] != "-" {
			group = append(group, tokens[i+1])
			i++
		}
		groups = append(groups, flagGroup{name: spec.name(name), tokens: group})
	}
	return groups
}

// deduplicateFlags keeps only the last occurrence of each repeated flag, so a
// flag given later overrides an earlier one. Repeatable list flags keep every
// occurrence.
func deduplicateFlags(args []string, spec flagSpec) []string {
	if len(args) <= 2 {
		return args
	}

	groups := groupArgs(args[2:], spec)
	last := map[string]int{}
	for i, g := range groups {
		if g.name != "" {
			last[g.name] = i
		}
	}

	out := append([]string{}, args[:2]...)
	for i, g := range groups {
		if g.name != "" && !spec.repeatable[g.name] && last[g.name] != i {
			continue
		}
		out = append(out, g.tokens...)
	}
	return out
}

// isFlag reports whether a looks like a flag. A lone "-" is the stdin
// pipeline marker, not a flag.
func isFlag(a string) bool {
	return len(a) > 1 && strings.HasPrefix(a, "-")
}
