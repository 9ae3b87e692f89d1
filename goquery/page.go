package goquery

import (
	"context"

	"github.com/fwojciec/pmst"
)

// Ensure PageFetcher implements pmst.PageFetcher at compile time.
var _ pmst.PageFetcher = (*PageFetcher)(nil)

// PageFetcher retrieves raw HTML with a pmst.Fetcher and parses it.
type PageFetcher struct {
	fetcher pmst.Fetcher
	parser  pmst.Parser
}

// NewPageFetcher creates a PageFetcher that parses with a goquery Parser.
func NewPageFetcher(fetcher pmst.Fetcher) *PageFetcher {
	return &PageFetcher{fetcher: fetcher, parser: NewParser()}
}

// FetchPage retrieves url and returns the parsed page.
// Every failure, including a parse failure, is reported as EFETCH.
func (f *PageFetcher) FetchPage(ctx context.Context, url string) (pmst.Document, error) {
	raw, err := f.fetcher.Fetch(ctx, url)
	if err != nil {
		if pmst.ErrorCode(err) == pmst.EFETCH {
			return nil, err
		}
		return nil, pmst.Errorf(pmst.EFETCH, "fetch %s: %v", url, err)
	}

	doc, err := f.parser.Parse(raw)
	if err != nil {
		return nil, pmst.Errorf(pmst.EFETCH, "parse %s: %s", url, pmst.ErrorMessage(err))
	}
	return doc, nil
}
