package mock

import (
	"context"
	"regexp"

	"github.com/fwojciec/pmst"
)

var _ pmst.Document = (*Document)(nil)

// Document is a mock implementation of pmst.Document.
type Document struct {
	FindTextFn func(pattern *regexp.Regexp) (string, bool)
	LinksFn    func() []string
	TitleFn    func() string
	TextsFn    func(selector string) []string
}

func (d *Document) FindText(pattern *regexp.Regexp) (string, bool) {
	return d.FindTextFn(pattern)
}

func (d *Document) Links() []string {
	return d.LinksFn()
}

func (d *Document) Title() string {
	return d.TitleFn()
}

func (d *Document) Texts(selector string) []string {
	return d.TextsFn(selector)
}

var _ pmst.Parser = (*Parser)(nil)

// Parser is a mock implementation of pmst.Parser.
type Parser struct {
	ParseFn func(html string) (pmst.Document, error)
}

func (p *Parser) Parse(html string) (pmst.Document, error) {
	return p.ParseFn(html)
}

var _ pmst.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of pmst.PageFetcher.
type PageFetcher struct {
	FetchPageFn func(ctx context.Context, url string) (pmst.Document, error)
}

func (f *PageFetcher) FetchPage(ctx context.Context, url string) (pmst.Document, error) {
	return f.FetchPageFn(ctx, url)
}
