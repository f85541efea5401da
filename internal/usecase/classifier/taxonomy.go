package classifier

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

//go:embed taxonomy.yaml
var defaultTaxonomy []byte

// DurationRange is the typical length of a meeting type in minutes (inclusive)
type DurationRange struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether minutes falls inside the range
func (r DurationRange) Contains(minutes float64) bool {
	return minutes >= r.Min && minutes <= r.Max
}

// TypeProfile is the keyword and duration profile of one meeting type
type TypeProfile struct {
	Keywords      []string      `yaml:"keywords"`
	TitleKeywords []string      `yaml:"title_keywords"`
	Duration      DurationRange `yaml:"duration"`
}

// PatternSpec describes a content pattern. AllOf requires one term from every
// group; AnyOf requires MinDistinct different terms (1 when unset).
type PatternSpec struct {
	AllOf       [][]string `yaml:"all_of"`
	AnyOf       []string   `yaml:"any_of"`
	MinDistinct int        `yaml:"min_distinct"`
}

// Patterns are the content patterns that award structural bonuses
type Patterns struct {
	StatusUpdate      PatternSpec `yaml:"status_update"`
	RetroStructure    PatternSpec `yaml:"retro_structure"`
	StoryEstimation   PatternSpec `yaml:"story_estimation"`
	TechnicalDeepDive PatternSpec `yaml:"technical_deep_dive"`
}

// Taxonomy is the static keyword table. It is loaded once and read-only.
type Taxonomy struct {
	Types    map[entities.MeetingType]TypeProfile `yaml:"types"`
	Patterns Patterns                             `yaml:"patterns"`
}

// DefaultTaxonomy returns the embedded taxonomy
func DefaultTaxonomy() *Taxonomy {
	tax, err := ParseTaxonomy(defaultTaxonomy)
	if err != nil {
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return tax
}

// LoadTaxonomy reads a taxonomy file, or returns the embedded one when path is empty
func LoadTaxonomy(path string) (*Taxonomy, error) {
	if path == "" {
		return DefaultTaxonomy(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy: %w", err)
	}
	return ParseTaxonomy(data)
}

// ParseTaxonomy decodes and validates a YAML taxonomy
func ParseTaxonomy(data []byte) (*Taxonomy, error) {
	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return nil, fmt.Errorf("parse taxonomy: %w", err)
	}
	if err := tax.Validate(); err != nil {
		return nil, err
	}
	return &tax, nil
}

// Validate checks that every specialized type has a usable profile
func (t *Taxonomy) Validate() error {
	for _, mt := range entities.Specialized() {
		profile, ok := t.Types[mt]
		if !ok {
			return fmt.Errorf("taxonomy: missing type %q", mt)
		}
		if len(profile.Keywords) == 0 {
			return fmt.Errorf("taxonomy: type %q has no keywords", mt)
		}
		if profile.Duration.Min < 0 || profile.Duration.Max < profile.Duration.Min {
			return fmt.Errorf("taxonomy: type %q has invalid duration range %v-%v", mt, profile.Duration.Min, profile.Duration.Max)
		}
	}
	for mt := range t.Types {
		if !mt.IsSpecialized() {
			return fmt.Errorf("taxonomy: unexpected type %q", mt)
		}
	}
	return nil
}
