package pmst

import (
	"regexp"
	"slices"
	"strings"
)

// ConservationStatus is a label from an ordered status vocabulary.
// The zero value means unclassified.
type ConservationStatus string

// Unclassified is the status of an entity no label matched.
const Unclassified ConservationStatus = ""

// Threatened and heritage status labels as they appear on registry pages.
const (
	StatusExtinctInTheWild      ConservationStatus = "Extinct in the Wild"
	StatusExtinct               ConservationStatus = "Extinct"
	StatusCriticallyEndangered  ConservationStatus = "Critically Endangered"
	StatusEndangered            ConservationStatus = "Endangered"
	StatusVulnerable            ConservationStatus = "Vulnerable"
	StatusConservationDependent ConservationStatus = "Conservation Dependent"
	ListingWorldHeritage        ConservationStatus = "World Heritage"
	ListingNationalHeritage     ConservationStatus = "National Heritage"
	ListingCommonwealthHeritage ConservationStatus = "Commonwealth Heritage"
)

// Priority lists, most severe (or most specific) first.
var (
	CommunityStatuses = []ConservationStatus{
		StatusCriticallyEndangered,
		StatusEndangered,
		StatusVulnerable,
	}

	SpeciesStatuses = []ConservationStatus{
		StatusExtinctInTheWild,
		StatusExtinct,
		StatusCriticallyEndangered,
		StatusEndangered,
		StatusVulnerable,
		StatusConservationDependent,
	}

	HeritageListings = []ConservationStatus{
		ListingWorldHeritage,
		ListingNationalHeritage,
		ListingCommonwealthHeritage,
	}
)

// Classify returns the first label in priority order that occurs in text.
//
// Labels match case-insensitively as whole words, with any run of
// whitespace accepted between words. An occurrence of a label that lies
// inside an occurrence of a longer label from the same list does not
// count, so "Critically Endangered" never yields Endangered and "Extinct
// in the Wild" never yields Extinct, whatever order the list is in.
// The bool result is false if no label occurs.
func Classify(text string, labels []ConservationStatus) (ConservationStatus, bool) {
	spans := make([][][]int, len(labels))
	for i, label := range labels {
		spans[i] = labelPattern(label).FindAllStringIndex(text, -1)
	}

	for i, label := range labels {
		for _, span := range spans[i] {
			if !shadowed(span, i, labels, spans) {
				return label, true
			}
		}
	}
	return Unclassified, false
}

// ClassifyAny classifies each text on its own and returns the highest
// priority label found in any of them. A label never matches across two
// texts.
func ClassifyAny(texts []string, labels []ConservationStatus) (ConservationStatus, bool) {
	best := -1
	for _, text := range texts {
		status, ok := Classify(text, labels)
		if !ok {
			continue
		}
		if i := slices.Index(labels, status); best < 0 || i < best {
			best = i
		}
	}
	if best < 0 {
		return Unclassified, false
	}
	return labels[best], true
}

// shadowed reports whether span, an occurrence of labels[i], lies within
// an occurrence of a longer label.
func shadowed(span []int, i int, labels []ConservationStatus, spans [][][]int) bool {
	for j, other := range spans {
		if j == i || len(labels[j]) <= len(labels[i]) {
			continue
		}
		for _, o := range other {
			if o[0] <= span[0] && span[1] <= o[1] {
				return true
			}
		}
	}
	return false
}

func labelPattern(label ConservationStatus) *regexp.Regexp {
	words := strings.Fields(string(label))
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b` + strings.Join(words, `\s+`) + `\b`)
}

// ClassifyCommunity returns a copy of e with its status set from texts
// using CommunityStatuses.
func ClassifyCommunity(e *Entity, texts ...string) *Entity {
	return classifyEntity(e, texts, CommunityStatuses)
}

// ClassifySpecies returns a copy of e with its status set from texts using
// SpeciesStatuses.
func ClassifySpecies(e *Entity, texts ...string) *Entity {
	return classifyEntity(e, texts, SpeciesStatuses)
}

// ClassifyHeritage returns a copy of e with its listing set from texts
// using HeritageListings.
func ClassifyHeritage(e *Entity, texts ...string) *Entity {
	return classifyEntity(e, texts, HeritageListings)
}

// ClassifyEntity dispatches on e.Kind to ClassifyCommunity,
// ClassifySpecies or ClassifyHeritage. Kinds that carry no status are
// returned unchanged.
func ClassifyEntity(e *Entity, texts ...string) *Entity {
	switch e.Kind {
	case KindCommunity:
		return ClassifyCommunity(e, texts...)
	case KindSpecies:
		return ClassifySpecies(e, texts...)
	case KindHeritage:
		return ClassifyHeritage(e, texts...)
	}
	return e
}

// StatusesFor returns the priority list used to classify a kind, or nil
// for kinds that carry no status.
func StatusesFor(kind EntityKind) []ConservationStatus {
	switch kind {
	case KindCommunity:
		return CommunityStatuses
	case KindSpecies:
		return SpeciesStatuses
	case KindHeritage:
		return HeritageListings
	case KindFeature, KindPark:
		return nil
	}
	return nil
}

func classifyEntity(e *Entity, texts []string, labels []ConservationStatus) *Entity {
	out := *e
	out.Bioregions = append([]string(nil), e.Bioregions...)
	out.Status, _ = ClassifyAny(texts, labels)
	return &out
}
