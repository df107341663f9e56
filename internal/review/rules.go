package review

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules represents a rules pack loaded from --rules. A pack extends the
// built-in tables; it never replaces them. All category references use
// taxonomy slugs.
type Rules struct {
	Keywords          map[string][]RuleKeyword `yaml:"keywords,omitempty"`
	SeverityOverrides map[string]string        `yaml:"severityOverrides,omitempty"`
	DriverSegments    []string                 `yaml:"driverSegments,omitempty"`
	UrgentCategories  []string                 `yaml:"urgentCategories,omitempty"`
	Suggestions       map[string]string        `yaml:"suggestions,omitempty"`
}

// RuleKeyword is one extra classifier keyword. A zero weight means 1.
type RuleKeyword struct {
	Text   string `yaml:"text"`
	Weight int    `yaml:"weight,omitempty"`
}

// LoadRules loads a rules file from disk. Returns nil Rules and nil error
// if path is empty.
func LoadRules(path string) (*Rules, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file: %w", err)
	}
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}
	return &rules, nil
}

// KeywordsByCategory resolves the pack's extra keywords onto taxonomy
// categories. An unknown slug is an error: a typo silently dropping
// keywords would be worse.
func (r *Rules) KeywordsByCategory() (map[Category][]RuleKeyword, error) {
	if r == nil || len(r.Keywords) == 0 {
		return nil, nil
	}
	out := make(map[Category][]RuleKeyword, len(r.Keywords))
	for slug, kws := range r.Keywords {
		cat, err := ParseCategory(slug)
		if err != nil {
			return nil, fmt.Errorf("rules keywords: %w", err)
		}
		out[cat] = kws
	}
	return out, nil
}

// SeverityOverridesByCategory resolves the pack's severity overrides.
func (r *Rules) SeverityOverridesByCategory() (map[Category]Severity, error) {
	if r == nil || len(r.SeverityOverrides) == 0 {
		return nil, nil
	}
	out := make(map[Category]Severity, len(r.SeverityOverrides))
	for slug, sevName := range r.SeverityOverrides {
		cat, err := ParseCategory(slug)
		if err != nil {
			return nil, fmt.Errorf("rules severityOverrides: %w", err)
		}
		sev, ok := ParseSeverity(sevName)
		if !ok {
			return nil, fmt.Errorf("rules severityOverrides: unknown severity %q for %s", sevName, slug)
		}
		out[cat] = sev
	}
	return out, nil
}

// Urgent resolves the pack's extra urgent categories.
func (r *Rules) Urgent() (map[Category]bool, error) {
	if r == nil || len(r.UrgentCategories) == 0 {
		return nil, nil
	}
	out := make(map[Category]bool, len(r.UrgentCategories))
	for _, slug := range r.UrgentCategories {
		cat, err := ParseCategory(slug)
		if err != nil {
			return nil, fmt.Errorf("rules urgentCategories: %w", err)
		}
		out[cat] = true
	}
	return out, nil
}
