package pmst

import (
	"context"
	"regexp"
)

// Document is a parsed HTML page: either a PMST report or a registry page.
// Implementations must not mutate the underlying page from any method.
type Document interface {
	// FindText returns the text of the element owning the first text node,
	// in document order, that matches pattern. The bool result is false if
	// no text node matches.
	FindText(pattern *regexp.Regexp) (string, bool)

	// Links returns the href of every anchor in document order.
	// Duplicates are preserved.
	Links() []string

	// Title returns the first <title> text, falling back to the first <h1>.
	// Returns an empty string if the page has neither.
	Title() string

	// Texts returns the trimmed text of every element matching the CSS
	// selector. An empty selector returns the text of the whole document.
	Texts(selector string) []string
}

// Parser turns raw HTML into a Document.
type Parser interface {
	Parse(html string) (Document, error)
}

// PageFetcher retrieves a URL and returns the parsed page.
// Failures are reported with code EFETCH; callers treat them opaquely.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (Document, error)
}
