package pmst_test

import (
	"regexp"
	"strings"

	"github.com/fwojciec/pmst"
)

// textDoc is a Document over a flat list of text nodes and links.
type textDoc struct {
	texts []string
	links []string
	title string
}

var _ pmst.Document = (*textDoc)(nil)

func (d *textDoc) FindText(pattern *regexp.Regexp) (string, bool) {
	for _, t := range d.texts {
		if pattern.MatchString(t) {
			return t, true
		}
	}
	return "", false
}

func (d *textDoc) Links() []string { return d.links }

func (d *textDoc) Title() string { return d.title }

func (d *textDoc) Texts(selector string) []string {
	if selector == "" {
		return []string{strings.Join(d.texts, " ")}
	}
	return d.texts
}
