package registry

import (
	"context"
	"log/slog"

	"github.com/fwojciec/pmst"
)

// Duplicate records an entity dropped because its ID was already present.
type Duplicate struct {
	Kind pmst.EntityKind
	ID   string
	URL  string
}

// Result summarizes one enrichment run.
type Result struct {
	Skips      []Skip
	Duplicates []Duplicate
	Ambiguous  []string
}

// Enricher fills a report's entity collections from its registry links.
type Enricher struct {
	fetcher *Fetcher
	rules   []pmst.LinkRule
	logger  *slog.Logger
}

// NewEnricher creates an Enricher that classifies links with rules and
// fetches entities with fetcher.
func NewEnricher(fetcher *Fetcher, rules []pmst.LinkRule, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Enricher{fetcher: fetcher, rules: rules, logger: logger}
}

// Enrich classifies the report's URLs, fetches one batch per entity kind
// and merges each batch into the report's existing collection for that
// kind. Entities already on the report win over fetched duplicates.
//
// Individual fetch failures are reported in the Result. Enrich fails only
// if ctx is canceled, in which case the report keeps the collections of
// the batches that completed.
func (e *Enricher) Enrich(ctx context.Context, report *pmst.Report) (*Result, error) {
	links := pmst.ClassifyLinks(report.URLs, e.rules)
	res := &Result{Ambiguous: links.Ambiguous}
	for _, u := range links.Ambiguous {
		e.logger.Warn("url matches more than one kind", "url", u)
	}

	for _, kind := range pmst.EntityKinds {
		urls := links.URLs(kind)
		if len(urls) == 0 {
			continue
		}

		entities, skips := e.fetcher.FetchEntities(ctx, kind, urls)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res.Skips = append(res.Skips, skips...)

		c := pmst.NewCollection()
		for _, existing := range report.Entities(kind) {
			c.Merge(existing)
		}
		for _, entity := range entities {
			if c.Merge(entity) == pmst.SkippedDuplicate {
				e.logger.Info("skipped duplicate entity", "kind", kind, "id", entity.ID, "url", entity.URL)
				res.Duplicates = append(res.Duplicates, Duplicate{Kind: kind, ID: entity.ID, URL: entity.URL})
			}
		}
		report.SetEntities(kind, c.Entities())

		e.logger.Debug("enriched", "kind", kind, "urls", len(urls), "entities", c.Len(), "skipped", len(skips))
	}

	return res, nil
}
