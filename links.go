package pmst

import (
	"slices"
	"strings"
)

// LinkRule files URLs containing Pattern under Kind.
type LinkRule struct {
	Kind    EntityKind `yaml:"kind"`
	Pattern string     `yaml:"pattern"`
}

// DefaultLinkRules returns the URL patterns of the registries PMST reports
// link to. Parks have no registry links and therefore no default rule.
func DefaultLinkRules() []LinkRule {
	return []LinkRule{
		{Kind: KindFeature, Pattern: "sprat-public/action/kef"},
		{Kind: KindCommunity, Pattern: "cgi-bin/sprat/public/publicshowcommunity"},
		{Kind: KindSpecies, Pattern: "/cgi-bin/sprat/public/publicspecies"},
		{Kind: KindHeritage, Pattern: "www.environment.gov.au/cgi-bin/ahdb/"},
	}
}

// LinkSet is the result of ClassifyLinks.
type LinkSet struct {
	// ByKind holds the matching URLs of each kind in input order.
	ByKind map[EntityKind][]string

	// Ambiguous lists URLs that matched more than one kind. Such URLs are
	// filed under every kind they matched.
	Ambiguous []string
}

// URLs returns every classified URL of the given kind.
func (s LinkSet) URLs(kind EntityKind) []string {
	return s.ByKind[kind]
}

// All returns every classified URL once, sorted ascending. For sorted
// input, ClassifyLinks(All(), rules) reproduces the same set.
func (s LinkSet) All() []string {
	seen := make(map[string]bool)
	var urls []string
	for _, list := range s.ByKind {
		for _, u := range list {
			if !seen[u] {
				seen[u] = true
				urls = append(urls, u)
			}
		}
	}
	slices.Sort(urls)
	return urls
}

// ClassifyLinks partitions urls by rule pattern. Each rule is checked
// independently by substring match; URLs matching no rule are dropped.
// Rules with an empty pattern never match.
func ClassifyLinks(urls []string, rules []LinkRule) LinkSet {
	set := LinkSet{ByKind: make(map[EntityKind][]string)}
	for _, u := range urls {
		matched := make(map[EntityKind]bool)
		for _, rule := range rules {
			if rule.Pattern == "" || matched[rule.Kind] {
				continue
			}
			if strings.Contains(u, rule.Pattern) {
				matched[rule.Kind] = true
				set.ByKind[rule.Kind] = append(set.ByKind[rule.Kind], u)
			}
		}
		if len(matched) > 1 {
			set.Ambiguous = append(set.Ambiguous, u)
		}
	}
	return set
}
