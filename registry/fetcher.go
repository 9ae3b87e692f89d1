// Package registry retrieves the registry pages a PMST report links to and
// turns them into classified, deduplicated entities.
package registry

import (
	"context"
	"log/slog"

	"github.com/fwojciec/pmst"
	"golang.org/x/sync/errgroup"
)

// Skip records a URL that produced no entity.
type Skip struct {
	Kind   pmst.EntityKind
	URL    string
	Code   string
	Reason string
}

// Fetcher builds entities from registry pages.
type Fetcher struct {
	pages   pmst.PageFetcher
	config  *pmst.Config
	limiter pmst.DomainLimiter
	logger  *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger used for skip warnings and retries.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithLimiter replaces the per-domain rate limiter built from the config.
func WithLimiter(limiter pmst.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = limiter
	}
}

// NewFetcher creates a Fetcher that retrieves pages with pages and applies
// the selectors, concurrency, rate and retry settings of cfg.
func NewFetcher(pages pmst.PageFetcher, cfg *pmst.Config, opts ...Option) *Fetcher {
	f := &Fetcher{
		pages:  pages,
		config: cfg,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.limiter == nil {
		f.limiter = NewDomainLimiter(cfg.Fetch.RPS)
	}
	return f
}

type outcome struct {
	entity *pmst.Entity
	skip   *Skip
}

// FetchEntities fetches one registry page per URL and returns the entities
// in URL order. A URL that cannot be fetched or identified is reported as a
// Skip and never aborts the batch. At most Fetch.Concurrency pages are in
// flight at once.
func (f *Fetcher) FetchEntities(ctx context.Context, kind pmst.EntityKind, urls []string) ([]*pmst.Entity, []Skip) {
	outcomes := make([]outcome, len(urls))

	var g errgroup.Group
	g.SetLimit(max(f.config.Fetch.Concurrency, 1))
	for i, url := range urls {
		g.Go(func() error {
			outcomes[i] = f.fetchEntity(ctx, kind, url)
			return nil
		})
	}
	_ = g.Wait()

	var entities []*pmst.Entity
	var skips []Skip
	for _, o := range outcomes {
		if o.skip != nil {
			f.logger.Warn("skipped entity",
				"kind", o.skip.Kind,
				"url", o.skip.URL,
				"code", o.skip.Code,
				"reason", o.skip.Reason,
			)
			skips = append(skips, *o.skip)
			continue
		}
		entities = append(entities, o.entity)
	}
	return entities, skips
}

func (f *Fetcher) fetchEntity(ctx context.Context, kind pmst.EntityKind, url string) outcome {
	e := &pmst.Entity{Kind: kind, URL: url, ID: pmst.EntityID(url)}

	if kind == pmst.KindSpecies {
		n, err := pmst.RegistryNumber(url)
		if err != nil {
			return skipped(kind, url, err)
		}
		e.RegistryID = n
	}

	doc, err := FetchWithRetryDelays(ctx, url, f.fetchPage, f.logger, f.config.Fetch.RetryDelays)
	if err != nil {
		if pmst.ErrorCode(err) != pmst.EFETCH {
			err = pmst.Errorf(pmst.EFETCH, "fetch %s: %v", url, err)
		}
		return skipped(kind, url, err)
	}

	e.Name = f.name(kind, doc)
	if kind == pmst.KindFeature {
		e.Bioregions = matchingLinks(url, doc.Links(), f.config.BioregionPattern)
	}
	if pmst.StatusesFor(kind) != nil {
		e = pmst.ClassifyEntity(e, doc.Texts(f.config.StatusSelectors[kind])...)
	}
	return outcome{entity: e}
}

func (f *Fetcher) fetchPage(ctx context.Context, url string) (pmst.Document, error) {
	if err := f.limiter.Wait(ctx, url); err != nil {
		return nil, err
	}
	return f.pages.FetchPage(ctx, url)
}

// name returns the text of the kind's name selector, else the page title.
func (f *Fetcher) name(kind pmst.EntityKind, doc pmst.Document) string {
	if sel := f.config.NameSelectors[kind]; sel != "" {
		for _, text := range doc.Texts(sel) {
			if text != "" {
				return text
			}
		}
	}
	return doc.Title()
}

func skipped(kind pmst.EntityKind, url string, err error) outcome {
	return outcome{skip: &Skip{
		Kind:   kind,
		URL:    url,
		Code:   pmst.ErrorCode(err),
		Reason: pmst.ErrorMessage(err),
	}}
}
