// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cmdlet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/awsctl/awsctl/internal/log"
)

// ErrTokenLoop is returned when a service hands back a continuation token it
// already returned.
var ErrTokenLoop = errors.New("pagination token repeated")

// Pager describes how a list operation continues.
type Pager struct {
	// InputToken is the request field carrying the continuation token.
	InputToken string
	// OutputToken is the response field carrying the next token.
	OutputToken string
	// PageSize is the request field bounding items per page.
	PageSize string
	// MinPageSize and MaxPageSize are the service's accepted page sizes.
	MinPageSize int
	MaxPageSize int
	// Items is the response field holding the page's records.
	Items string
}

// PageOptions are the client-side pagination controls.
type PageOptions struct {
	// MaxItems bounds the records emitted; 0 is unbounded.
	MaxItems int
	// NoPaginate issues a single call.
	NoPaginate bool
	// MaxRPS paces pages; 0 is unlimited.
	MaxRPS float64
}

// Page is the result of a paginated call: the first response with its items
// replaced by every item collected, and the token to resume from. NextToken is
// empty when the last page was cut at MaxItems, since resuming from the
// service's token would skip the records that were cut.
type Page struct {
	Output    map[string]any
	Items     int
	Pages     int
	NextToken string
	Truncated bool
}

// pageFetcher issues one call. The returned document is the response as JSON.
type pageFetcher func(context.Context, Request) ([]byte, error)

func (p *Pager) clamp(n int) int {
	if p.MaxPageSize > 0 && n > p.MaxPageSize {
		return p.MaxPageSize
	}
	if n < p.MinPageSize {
		return p.MinPageSize
	}
	return n
}

// paginate calls fetch until the output token runs out, MaxItems is reached
// or the context is cancelled. Calls are strictly sequential. userPageSize
// reports that the page size field was set by the user and must be kept.
//
// A failure after the first page returns the pages collected so far together
// with the error; NextToken then resumes at the request that failed.
func (p *Pager) paginate(ctx context.Context, req Request, opts PageOptions, userPageSize bool, fetch pageFetcher) (*Page, error) {
	var limiter *rate.Limiter
	if opts.MaxRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.MaxRPS), 1)
	}

	var current string
	seen := map[string]bool{}
	if tok, ok := req.Get(p.InputToken); ok {
		current = fmt.Sprint(tok)
		seen[current] = true
	}

	result := &Page{}
	var items []any
	fail := func(err error, resume string) (*Page, error) {
		if result.Output == nil {
			return nil, err
		}
		log.Debugf("pagination failed: pages=%d, items=%d, resume=%q", result.Pages, len(items), resume)
		result.NextToken = resume
		p.finish(result, items)
		return result, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return fail(err, current)
		}

		if opts.MaxItems > 0 && !userPageSize && p.PageSize != "" {
			req[p.PageSize] = p.clamp(opts.MaxItems - len(items))
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return fail(err, current)
			}
		}

		doc, err := fetch(ctx, req)
		if err != nil {
			return fail(err, current)
		}

		parsed := gjson.ParseBytes(doc)
		page := parsed.Get(p.Items).Array()
		token := parsed.Get(p.OutputToken).String()
		log.Debugf("page fetched: page=%d, items=%d, token=%q", result.Pages+1, len(page), token)

		if result.Output == nil {
			if err := json.Unmarshal(doc, &result.Output); err != nil {
				return nil, fmt.Errorf("reading page: %w", err)
			}
		}
		result.Pages++

		for _, item := range page {
			if opts.MaxItems > 0 && len(items) >= opts.MaxItems {
				result.Truncated = true
				break
			}
			items = append(items, item.Value())
		}
		result.NextToken = token

		switch {
		case result.Truncated:
			log.Debugf("pagination stopped: page cut at max items=%d, no resume token", opts.MaxItems)
			result.NextToken = ""
		case token == "":
			log.Debugf("pagination complete: pages=%d, items=%d", result.Pages, len(items))
		case opts.NoPaginate:
			log.Debugf("pagination stopped: single page requested")
		case opts.MaxItems > 0 && len(items) >= opts.MaxItems:
			log.Debugf("pagination stopped: max items=%d reached", opts.MaxItems)
		case seen[token]:
			return fail(fmt.Errorf("%w: %q", ErrTokenLoop, token), "")
		default:
			seen[token] = true
			current = token
			req[p.InputToken] = token
			continue
		}
		break
	}

	p.finish(result, items)
	return result, nil
}

// finish replaces the first response's items and token with the collected
// ones.
func (p *Pager) finish(result *Page, items []any) {
	if items == nil {
		items = []any{}
	}
	result.Output[p.Items] = items
	if result.NextToken == "" {
		delete(result.Output, p.OutputToken)
	} else {
		result.Output[p.OutputToken] = result.NextToken
	}
	result.Items = len(items)
}
