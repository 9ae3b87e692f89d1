package pmst

import (
	"regexp"
	"strconv"
)

// EntityKind discriminates the variants of a registry entity.
type EntityKind string

// Entity kinds referenced by a PMST report.
const (
	KindFeature   EntityKind = "feature"
	KindCommunity EntityKind = "community"
	KindSpecies   EntityKind = "species"
	KindHeritage  EntityKind = "heritage"
	KindPark      EntityKind = "park"
)

// EntityKinds lists every kind in report order.
var EntityKinds = []EntityKind{KindFeature, KindCommunity, KindSpecies, KindHeritage, KindPark}

// Valid reports whether k is a known kind.
func (k EntityKind) Valid() bool {
	switch k {
	case KindFeature, KindCommunity, KindSpecies, KindHeritage, KindPark:
		return true
	}
	return false
}

// Entity is a protected matter referenced by a report and described by an
// external registry page. Kind selects which optional fields apply:
//
//   - KindFeature: Bioregions
//   - KindCommunity: Status from CommunityStatuses
//   - KindSpecies: Status from SpeciesStatuses, RegistryID
//   - KindHeritage: Status from HeritageListings
//   - KindPark: none
//
// An empty Status means the entity is unclassified.
type Entity struct {
	Kind       EntityKind         `json:"kind"`
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	URL        string             `json:"url"`
	Status     ConservationStatus `json:"status,omitempty"`
	RegistryID int                `json:"registryId,omitempty"`
	Bioregions []string           `json:"bioregions,omitempty"`
}

// Classified reports whether a status has been assigned.
func (e *Entity) Classified() bool {
	return e.Status != Unclassified
}

// Validate returns an error if the entity contains invalid fields.
func (e *Entity) Validate() error {
	if !e.Kind.Valid() {
		return Errorf(EINVALID, "entity kind %q unknown", e.Kind)
	}
	if e.URL == "" {
		return Errorf(EINVALID, "entity URL required")
	}
	if e.ID == "" {
		return Errorf(EINVALID, "entity ID required")
	}
	return nil
}

var trailingDigitsRe = regexp.MustCompile(`(\d+)/?$`)

// RegistryNumber returns the numeric registry identifier at the end of a
// registry URL (e.g. taxon_id=1234). Returns EPARSE if the URL does not
// end in digits.
func RegistryNumber(rawURL string) (int, error) {
	m := trailingDigitsRe.FindStringSubmatch(rawURL)
	if m == nil {
		return 0, Errorf(EPARSE, "no registry identifier in %q", rawURL)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, Errorf(EPARSE, "malformed registry identifier %q", m[1])
	}
	return n, nil
}

// EntityID returns the deduplication key for a registry URL: its numeric
// registry identifier, or the URL itself when none can be parsed.
func EntityID(rawURL string) string {
	if n, err := RegistryNumber(rawURL); err == nil {
		return strconv.Itoa(n)
	}
	return rawURL
}

// MergeOutcome reports what Collection.Merge did with a candidate.
type MergeOutcome int

// Merge outcomes.
const (
	Inserted MergeOutcome = iota
	SkippedDuplicate
)

// String returns a display name for the outcome.
func (o MergeOutcome) String() string {
	if o == SkippedDuplicate {
		return "skipped duplicate"
	}
	return "inserted"
}

// Collection accumulates entities keyed by ID, keeping the first entity
// seen for each ID and remembering insertion order.
// Collection is not safe for concurrent use.
type Collection struct {
	byID  map[string]*Entity
	order []*Entity
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{byID: make(map[string]*Entity)}
}

// Merge inserts e unless an entity with the same ID is already present.
// An entity without an ID is keyed by its URL.
func (c *Collection) Merge(e *Entity) MergeOutcome {
	id := e.ID
	if id == "" {
		id = EntityID(e.URL)
	}
	if _, ok := c.byID[id]; ok {
		return SkippedDuplicate
	}
	c.byID[id] = e
	c.order = append(c.order, e)
	return Inserted
}

// Get returns the entity stored under id.
func (c *Collection) Get(id string) (*Entity, bool) {
	e, ok := c.byID[id]
	return e, ok
}

// Len returns the number of entities.
func (c *Collection) Len() int { return len(c.order) }

// Entities returns the entities in insertion order.
func (c *Collection) Entities() []*Entity {
	return append([]*Entity(nil), c.order...)
}
