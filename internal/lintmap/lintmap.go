package lintmap

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"drvaudit/internal/review"
)

// Finding is one raw entry from an external static-analysis report, before
// it is mapped into the shared taxonomy.
type Finding struct {
	Severity string `json:"severity"`
	RuleID   string `json:"rule"`
	Message  string `json:"message"`
	Path     string `json:"component"`
	Line     int    `json:"line"`
}

// ErrInvalidFinding marks a structurally invalid record: one missing a
// required field. Unknown severities and unmapped rule ids are NOT invalid;
// they degrade to fallback buckets.
var ErrInvalidFinding = errors.New("invalid finding")

// ruleGroup associates a taxonomy category with the rule-id fragments that
// select it. Groups are matched in order; the first group containing a
// fragment of the rule id wins.
type ruleGroup struct {
	category review.Category
	rules    []string
}

// ruleGroups is the fixed rule-id classification table. The memory
// management group maps into error handling: its rules are null-check and
// allocator-discipline rules, and mapping them there also puts them in the
// ranker's urgent set.
var ruleGroups = []ruleGroup{
	{review.CategorySecurity, []string{"squid:S2068", "squid:S1313", "squid:S1449", "squid:S2245"}},
	{review.CategoryErrorHandling, []string{"squid:S1066", "squid:S1119", "squid:S1143"}}, // memory management
	{review.CategoryErrorHandling, []string{"squid:S1181", "squid:S1193", "squid:S899"}},
	{review.CategoryCodeStyle, []string{"squid:S100", "squid:S101", "squid:S138", "squid:S1151"}},
	{review.CategoryPerformance, []string{"squid:S1943", "squid:S1313"}},
	{review.CategoryOrganization, []string{"squid:S1067", "squid:S134", "squid:S1479"}},
}

// fixedSuggestions maps rule-id fragments to curated fix advice, matched in
// order by substring containment.
var fixedSuggestions = []struct {
	rule string
	text string
}{
	{"squid:S100", "Use descriptive function names with device prefix (e.g., adm1275_read_voltage)"},
	{"squid:S101", "Follow naming convention: lowercase with underscores, device prefix"},
	{"squid:S1066", "Add proper null checks before pointer dereference"},
	{"squid:S1119", "Use no_os_malloc/no_os_free instead of stdlib functions"},
	{"squid:S138", "Split large functions into smaller, focused functions"},
	{"squid:S1181", "Handle specific error codes, return appropriate no-OS error codes"},
	{"squid:S2068", "Remove hardcoded credentials, use configuration parameters"},
	{"squid:S899", "Use NO_OS_BIT() macro instead of (1 << n) patterns"},
}

const fallbackSuggestion = "Review the upstream rule documentation for this rule"

// Mapper translates external findings into taxonomy issues. The zero-extra
// Mapper from New is the fixed-table behavior; extra suggestions from a
// rules pack are consulted after the built-in table.
type Mapper struct {
	extraSuggestions []suggestionEntry
}

type suggestionEntry struct {
	rule string
	text string
}

// New returns a Mapper with the built-in tables only.
func New() *Mapper {
	return &Mapper{}
}

// NewWithSuggestions returns a Mapper whose suggestion lookup also consults
// extra rule-id → suggestion entries. Entries are consulted in sorted rule
// order so lookups stay deterministic when several fragments match.
func NewWithSuggestions(extra map[string]string) *Mapper {
	entries := make([]suggestionEntry, 0, len(extra))
	for rule, text := range extra {
		entries = append(entries, suggestionEntry{rule: rule, text: text})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].rule < entries[j].rule })
	return &Mapper{extraSuggestions: entries}
}

// Map translates one finding into an Issue. A finding with an unknown
// severity token lands in the lowest-urgency bucket and an unmapped rule id
// lands in CategoryOther; neither is an error. A finding missing its rule
// id or path is structurally invalid and rejected.
func (m *Mapper) Map(f Finding) (review.Issue, error) {
	if f.RuleID == "" {
		return review.Issue{}, fmt.Errorf("%w: missing rule id", ErrInvalidFinding)
	}
	if f.Path == "" {
		return review.Issue{}, fmt.Errorf("%w: rule %s: missing component path", ErrInvalidFinding, f.RuleID)
	}
	if f.Line < 0 {
		return review.Issue{}, fmt.Errorf("%w: rule %s: negative line %d", ErrInvalidFinding, f.RuleID, f.Line)
	}

	return review.Issue{
		Location: review.Location{
			Path: strings.TrimPrefix(f.Path, "project:"),
			Line: f.Line,
		},
		Severity:   mapSeverity(f.Severity),
		Category:   categoryFor(f.RuleID),
		Message:    f.Message,
		Suggestion: m.suggestionFor(f.RuleID, f.Message),
		Origin:     review.OriginLinter,
	}, nil
}

// MapAll maps a batch, isolating structurally invalid records: each bad
// record yields an error naming its position and rule, and processing
// continues with the remainder.
func (m *Mapper) MapAll(findings []Finding) ([]review.Issue, []error) {
	issues := make([]review.Issue, 0, len(findings))
	var errs []error
	for i, f := range findings {
		issue, err := m.Map(f)
		if err != nil {
			errs = append(errs, fmt.Errorf("finding %d: %w", i, err))
			continue
		}
		issues = append(issues, issue)
	}
	return issues, errs
}

func categoryFor(ruleID string) review.Category {
	for _, group := range ruleGroups {
		for _, rule := range group.rules {
			if strings.Contains(ruleID, rule) {
				return group.category
			}
		}
	}
	return review.CategoryOther
}

func (m *Mapper) suggestionFor(ruleID, message string) string {
	for _, s := range fixedSuggestions {
		if strings.Contains(ruleID, s.rule) {
			return s.text
		}
	}
	for _, e := range m.extraSuggestions {
		if strings.Contains(ruleID, e.rule) {
			return e.text
		}
	}

	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "function") && strings.Contains(lower, "complex"):
		return "Break into smaller functions following the single-responsibility pattern"
	case strings.Contains(lower, "variable") && strings.Contains(lower, "name"):
		return "Use descriptive variable names with device/component context"
	case strings.Contains(lower, "memory"):
		return "Review memory management - use no_os_alloc/no_os_free consistently"
	case strings.Contains(lower, "error"):
		return "Improve error handling - return specific error codes, check all return values"
	}
	return fallbackSuggestion
}

// mapSeverity folds the external five-level scale onto the internal
// three-level one. Unrecognized tokens degrade to info instead of failing.
func mapSeverity(token string) review.Severity {
	switch strings.ToUpper(token) {
	case "BLOCKER", "CRITICAL":
		return review.SeverityError
	case "MAJOR":
		return review.SeverityWarning
	case "MINOR", "INFO":
		return review.SeverityInfo
	default:
		return review.SeverityInfo
	}
}
