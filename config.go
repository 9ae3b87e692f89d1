package pmst

import "time"

// Config holds the tunables for report enrichment.
type Config struct {
	// Rules maps registry URL patterns to entity kinds.
	Rules []LinkRule `yaml:"rules"`

	// StatusSelectors names the CSS selector whose text is classified for
	// each kind. Kinds without an entry are classified on the whole page.
	StatusSelectors map[EntityKind]string `yaml:"status_selectors"`

	// NameSelectors names the CSS selector holding an entity's name for
	// each kind. Kinds without an entry, or whose selector matches nothing,
	// use the page title.
	NameSelectors map[EntityKind]string `yaml:"name_selectors"`

	// BioregionPattern identifies bioregion links on feature pages.
	BioregionPattern string `yaml:"bioregion_pattern"`

	Fetch FetchConfig `yaml:"fetch"`
}

// FetchConfig configures registry page retrieval.
type FetchConfig struct {
	Timeout     time.Duration   `yaml:"timeout"`
	Concurrency int             `yaml:"concurrency"`
	RPS         float64         `yaml:"rps"`
	RetryDelays []time.Duration `yaml:"retry_delays"`
	UserAgent   string          `yaml:"user_agent"`
}

// DefaultConfig returns a Config matching the live registry layout.
func DefaultConfig() *Config {
	return &Config{
		Rules: DefaultLinkRules(),
		StatusSelectors: map[EntityKind]string{
			KindCommunity: "td",
			KindSpecies:   "strong",
		},
		NameSelectors: map[EntityKind]string{
			KindFeature: "h1.header-all",
		},
		BioregionPattern: "topics/marine/marine-bioregional-plans",
		Fetch: FetchConfig{
			Timeout:     10 * time.Second,
			Concurrency: 4,
			RPS:         2,
			RetryDelays: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
			UserAgent:   "pmst/1.0",
		},
	}
}

// Validate returns an error if the configuration is unusable.
func (c *Config) Validate() error {
	for _, rule := range c.Rules {
		if !rule.Kind.Valid() {
			return Errorf(EINVALID, "rule kind %q unknown", rule.Kind)
		}
	}
	for kind := range c.StatusSelectors {
		if !kind.Valid() {
			return Errorf(EINVALID, "status selector kind %q unknown", kind)
		}
	}
	for kind := range c.NameSelectors {
		if !kind.Valid() {
			return Errorf(EINVALID, "name selector kind %q unknown", kind)
		}
	}
	if c.Fetch.Timeout <= 0 {
		return Errorf(EINVALID, "fetch timeout must be positive")
	}
	if c.Fetch.Concurrency <= 0 {
		return Errorf(EINVALID, "fetch concurrency must be positive")
	}
	if c.Fetch.RPS <= 0 {
		return Errorf(EINVALID, "fetch rps must be positive")
	}
	for _, d := range c.Fetch.RetryDelays {
		if d < 0 {
			return Errorf(EINVALID, "retry delays must not be negative")
		}
	}
	return nil
}
