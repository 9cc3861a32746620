package siteconfig

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// Cache resolves and memoizes the Rule for each host. It is safe for
// concurrent use; concurrent first lookups of a host share one load.
type Cache struct {
	source Source
	logger zerolog.Logger

	rules sync.Map
	group singleflight.Group
}

// NewCache returns a Cache backed by source.
func NewCache(source Source, logger zerolog.Logger) *Cache {
	return &Cache{source: source, logger: logger}
}

// entry is stored for every resolved host, including hosts without a rule.
type entry struct {
	rule     *Rule
	filename string
}

// Lookup returns the rule that applies to rawURL, or nil when no candidate
// file exists. Sources that fail for reasons other than a missing file are
// reported and the result is not cached.
func (c *Cache) Lookup(ctx context.Context, rawURL string) (*Rule, error) {
	rule, _, err := c.Resolve(ctx, rawURL)
	return rule, err
}

// Resolve is Lookup that also reports which file the rule came from.
func (c *Cache) Resolve(ctx context.Context, rawURL string) (*Rule, string, error) {
	if c == nil || c.source == nil {
		return nil, "", nil
	}
	host := NormalizeHost(rawURL)
	if host == "" {
		return nil, "", nil
	}
	if v, ok := c.rules.Load(host); ok {
		e := v.(*entry)
		return e.rule, e.filename, nil
	}

	// The shared load outlives any one caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(host, func() (any, error) {
		e, err := c.load(loadCtx, rawURL)
		if err != nil {
			return nil, err
		}
		c.rules.Store(host, e)
		return e, nil
	})

	select {
	case <-ctx.Done():
		return nil, "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, "", res.Err
		}
		e := res.Val.(*entry)
		return e.rule, e.filename, nil
	}
}

func (c *Cache) load(ctx context.Context, rawURL string) (*entry, error) {
	for _, filename := range CandidateFilenames(rawURL) {
		text, err := c.source.Fetch(ctx, filename)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}

		rule := Parse(text)
		c.logger.Debug().
			Str("file", filename).
			Int("skipped_lines", rule.Skipped).
			Msg("loaded site config")
		return &entry{rule: rule, filename: filename}, nil
	}
	return &entry{}, nil
}
