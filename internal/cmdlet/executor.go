// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cmdlet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/awsctl/awsctl/internal/blob"
	"github.com/awsctl/awsctl/internal/cacheutil"
	"github.com/awsctl/awsctl/internal/filters"
	"github.com/awsctl/awsctl/internal/log"
	"github.com/awsctl/awsctl/internal/prompt"
)

// Settings are the invocation-wide controls shared by every item.
type Settings struct {
	Select string
	Page   PageOptions
	// Filter is the --filter spec; its server-side expressions go into the
	// request of operations that accept them.
	Filter   string
	WhatIf   bool
	NoCache  bool
	CacheTTL time.Duration
	// CacheSubdirs partition cached responses, see cacheutil.Subdirs.
	CacheSubdirs []string
}

// Executor runs one operation for each invocation item.
type Executor struct {
	Op Op
	// Client returns the SDK client. It is called only when a request is
	// actually issued.
	Client   func(context.Context) (any, error)
	Gate     *prompt.Gate
	Loader   *blob.Loader
	Settings Settings
	ErrCtx   ErrorContext
	// Diag receives --what-if text and continuation tokens.
	Diag io.Writer
}

// Execute binds, builds, confirms and issues the request for one item.
func (e *Executor) Execute(ctx context.Context, src Source, item *string) (env Envelope) {
	def := e.Op.Def()
	env.Operation = def.API

	defer func() {
		if r := recover(); r != nil {
			env.Err = fmt.Errorf("%s: internal error: %v", def.Name, r)
		}
		if env.Err != nil {
			log.WithError(env.Err).Debugf("item failed: op=%s", def.Name)
		}
	}()

	sel, err := ParseSelect(e.Settings.Select, def)
	if err != nil {
		env.Err = err
		return env
	}

	bound, err := Bind(ctx, def, src, item, e.Loader)
	if err != nil {
		env.Err = err
		return env
	}

	req, err := BuildRequest(def, bound)
	if err != nil {
		env.Err = err
		return env
	}
	if err := e.applyServerFilters(def, req); err != nil {
		env.Err = err
		return env
	}
	env.Input = req
	log.Debugf("request built: op=%s, params=%v", def.API, bound.Names())

	if def.Mutating && !e.Settings.WhatIf && e.Gate != nil {
		ok, err := e.Gate.Allow(fmt.Sprintf("Perform %s?", def.API), e.target(def, bound))
		if err != nil {
			env.Err = err
			return env
		}
		if !ok {
			env.Err = fmt.Errorf("%s: %w", def.Name, ErrDeclined)
			return env
		}
	}

	if e.Settings.WhatIf {
		fmt.Fprintf(e.diag(), "What if: performing %s with %s\n", def.API, req.JSON())
		return env
	}

	output, next, fetchErr := e.fetch(ctx, def, req)
	if output == nil {
		env.Err = fetchErr
		return env
	}
	env.Output = output
	env.NextToken = next
	if next != "" {
		fmt.Fprintf(e.diag(), "NextToken: %s\n", next)
	}

	env.Selected, env.Err = sel.Apply(output, bound)
	if fetchErr != nil {
		env.Err = fetchErr
	}
	return env
}

// fetch returns the response JSON, from the cache when allowed. A paginated
// call that fails after its first page returns the pages collected so far
// along with the error.
func (e *Executor) fetch(ctx context.Context, def *Def, req Request) (json.RawMessage, string, error) {
	cacheKey := def.API + " " + string(req.JSON())
	useCache := def.Cacheable && !e.Settings.NoCache && cacheutil.Enabled()
	if useCache {
		if entry, ok := cacheutil.ReadFresh(e.Settings.CacheSubdirs, cacheKey, e.Settings.CacheTTL); ok {
			return entry.Data, "", nil
		}
	}

	client, err := e.Client(ctx)
	if err != nil {
		return nil, "", err
	}

	call := func(ctx context.Context, r Request) ([]byte, error) {
		log.Tracef("request: op=%s, input=%s", def.API, r.JSON())
		out, err := e.Op.Invoke(ctx, client, r)
		if err != nil {
			return nil, Friendly(err, e.ErrCtx)
		}
		return responseJSON(out)
	}

	var output []byte
	var next string
	if def.Pager != nil {
		_, userPageSize := req.Get(def.Pager.PageSize)
		page, pageErr := def.Pager.paginate(ctx, req, e.Settings.Page, userPageSize, call)
		if page == nil {
			return nil, "", pageErr
		}
		if output, err = json.Marshal(page.Output); err != nil {
			return nil, "", fmt.Errorf("encoding pages: %w", err)
		}
		next = page.NextToken
		if page.Truncated {
			fmt.Fprintf(e.diag(), "Results cut at --max-items %d; no resume token.\n", e.Settings.Page.MaxItems)
		}
		if pageErr != nil {
			return output, next, pageErr
		}
	} else {
		if err := ctx.Err(); err != nil {
			return nil, "", err
		}
		if output, err = call(ctx, req); err != nil {
			return nil, "", err
		}
	}

	if useCache {
		if err := cacheutil.Write(e.Settings.CacheSubdirs, cacheKey, output); err != nil {
			log.Warnf("cache write failed: %v", err)
		}
	}
	return output, next, nil
}

// applyServerFilters moves server-side --filter expressions into the
// request's filter field.
func (e *Executor) applyServerFilters(def *Def, req Request) error {
	server := filters.ServerSide(e.Settings.Filter)
	if len(server) == 0 {
		return nil
	}
	if def.Filters == "" {
		return fmt.Errorf("%s does not support server-side filters", def.Name)
	}

	var list []any
	if existing, ok := req.Get(def.Filters); ok {
		if l, ok := existing.([]any); ok {
			list = l
		}
	}
	for _, f := range server {
		values := make([]any, 0, len(f.Values()))
		for _, v := range f.Values() {
			values = append(values, v)
		}
		list = append(list, map[string]any{"Name": f.Key, "Values": values})
	}
	req[def.Filters] = list
	log.Debugf("server-side filters: op=%s, count=%d", def.Name, len(server))
	return nil
}

func (e *Executor) target(def *Def, b *Bound) string {
	if def.Target == "" {
		return ""
	}
	if v, ok := b.Value(def.Target); ok {
		return fmt.Sprint(v)
	}
	return ""
}

func (e *Executor) diag() io.Writer {
	if e.Diag == nil {
		return io.Discard
	}
	return e.Diag
}
