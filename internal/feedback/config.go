package feedback

import (
	"maps"
	"regexp"
)

const (
	// DefaultBooleanKeyPattern matches keys such as isRemote, has_portfolio or canMentor.
	DefaultBooleanKeyPattern = `^(?i:is|has|can|should|would|does)(?:[A-Z_\-\s]|$)`

	defaultSectionRating  = 3   // internal 0-10 scale
	defaultOverallRating  = 3.5 // 0-5 scale
	strengthThreshold     = 7   // internal 0-10 scale, inclusive
	weaknessThreshold     = 5   // internal 0-10 scale, inclusive
	genericWeaknessBelow  = 3.5 // 0-5 scale, exclusive
	maxInternalRating     = 10
	fallbackSectionTitle  = "Overall Assessment"
	fallbackSectionNotes  = "General assessment of candidate suitability for the role."
	genericStrength       = "Demonstrated competency in this area"
	genericWeakness       = "Could improve in this area"
	fallbackStrength      = "Demonstrated relevant skills"
	fallbackWeakness      = "Areas for improvement"
	defaultInterviewRole  = "Technical Evaluator"
	defaultInterviewTime  = "45 minutes"
	defaultInterviewState = "COMPLETED"
)

var defaultBooleanPattern = regexp.MustCompile(DefaultBooleanKeyPattern)

// DefaultSectionTitles is the built-in section title table.
func DefaultSectionTitles() map[string]string {
	return map[string]string{
		"1":            "Technical Skills",
		"2":            "Communication & Collaboration",
		"3":            "Cultural Fit & Experience",
		"4":            "Leadership & Management",
		"5":            "Domain Knowledge",
		GeneralSection: "General Assessment",
	}
}

// Config holds the static tables the normalizer works with. A Config is never
// mutated after construction; use NewConfig or DefaultConfig to build one.
type Config struct {
	sectionTitles  map[string]string
	booleanPattern *regexp.Regexp
}

// DefaultConfig returns the built-in title table and boolean key pattern.
func DefaultConfig() *Config {
	return &Config{
		sectionTitles:  DefaultSectionTitles(),
		booleanPattern: defaultBooleanPattern,
	}
}

// NewConfig builds a Config from the defaults, merging titleOverrides over the
// built-in titles. An empty booleanPattern keeps the default pattern.
func NewConfig(titleOverrides map[string]string, booleanPattern string) (*Config, error) {
	cfg := DefaultConfig()

	for key, title := range titleOverrides {
		cfg.sectionTitles[canonicalSection(key)] = title
	}

	if booleanPattern != "" {
		re, err := regexp.Compile(booleanPattern)
		if err != nil {
			return nil, err
		}
		cfg.booleanPattern = re
	}

	return cfg, nil
}

// SectionTitles returns a copy of the title table.
func (c *Config) SectionTitles() map[string]string {
	return maps.Clone(c.sectionTitles)
}

func (c *Config) title(sectionKey string) (string, bool) {
	if c == nil {
		c = DefaultConfig()
	}
	title, ok := c.sectionTitles[sectionKey]
	return title, ok
}

func (c *Config) booleanKey(key string) bool {
	if c == nil || c.booleanPattern == nil {
		return defaultBooleanPattern.MatchString(key)
	}
	return c.booleanPattern.MatchString(key)
}
