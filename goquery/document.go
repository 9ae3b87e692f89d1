// Package goquery implements pmst.Document over parsed HTML using
// PuerkitoBio/goquery.
package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pmst"
	"golang.org/x/net/html"
)

// Ensure Document implements pmst.Document at compile time.
var _ pmst.Document = (*Document)(nil)

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// NewDocument parses raw HTML into a Document.
func NewDocument(raw string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, pmst.Errorf(pmst.EPARSE, "failed to parse HTML: %v", err)
	}
	return &Document{doc: doc}, nil
}

// FindText returns the trimmed text of the element owning the first text
// node that matches pattern. Script and style contents are never searched.
func (d *Document) FindText(pattern *regexp.Regexp) (string, bool) {
	n := findTextNode(d.doc.Nodes[0], pattern)
	if n == nil || n.Parent == nil {
		return "", false
	}
	return strings.TrimSpace(d.doc.FindNodes(n.Parent).Text()), true
}

func findTextNode(n *html.Node, pattern *regexp.Regexp) *html.Node {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return nil
	}
	if n.Type == html.TextNode && pattern.MatchString(n.Data) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTextNode(c, pattern); found != nil {
			return found
		}
	}
	return nil
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// Links returns the href of every anchor in document order.
func (d *Document) Links() []string {
	var links []string
	d.doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		links = append(links, href)
	})
	return links
}

// Title returns the first <title> text, falling back to the first <h1>.
func (d *Document) Title() string {
	if title := strings.TrimSpace(d.doc.Find("title").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(d.doc.Find("h1").First().Text())
}

// Texts returns the trimmed text of every element matching selector.
// When selector is empty it returns the text of the whole document, with
// text nodes separated by single spaces and script and style omitted.
func (d *Document) Texts(selector string) []string {
	if selector == "" {
		var parts []string
		collectText(d.doc.Nodes[0], &parts)
		return []string{strings.Join(strings.Fields(strings.Join(parts, " ")), " ")}
	}
	var texts []string
	d.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(sel.Text()))
	})
	return texts
}

// Ensure Parser implements pmst.Parser at compile time.
var _ pmst.Parser = (*Parser)(nil)

// Parser parses HTML into goquery-backed documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses raw HTML into a Document.
func (p *Parser) Parse(raw string) (pmst.Document, error) {
	return NewDocument(raw)
}
