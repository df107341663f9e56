package review

// Origin identifies which pipeline produced an Issue.
type Origin string

const (
	// OriginHeuristic marks issues produced by the local pattern scanner.
	OriginHeuristic Origin = "heuristic"
	// OriginLinter marks issues mapped from an external linter report.
	OriginLinter Origin = "linter"
)

// Location is the position a finding points at. Line is 1-indexed; 0 means
// the issue applies to the file as a whole.
type Location struct {
	Path string `json:"path"`
	Line int    `json:"line"`
}

// Issue is a single categorized finding. Issues are immutable values:
// a new run recomputes them from scratch, nothing mutates them in place.
type Issue struct {
	Location   Location `json:"location"`
	Severity   Severity `json:"severity"`
	Category   Category `json:"category"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Origin     Origin   `json:"origin"`
}

// CommentSource records where a review comment came from.
type CommentSource struct {
	PR   int    `json:"pr"`
	Path string `json:"path,omitempty"`
	Line int    `json:"line,omitempty"`
}

// Comment is a free-text review comment with its assigned category.
type Comment struct {
	Text     string        `json:"text"`
	Author   string        `json:"author"`
	State    string        `json:"state,omitempty"`
	Category Category      `json:"category"`
	Source   CommentSource `json:"source"`
}

// ApplySeverityOverrides returns a copy of issues with per-category severity
// overrides applied. The input slice is not modified.
func ApplySeverityOverrides(issues []Issue, overrides map[Category]Severity) []Issue {
	if len(overrides) == 0 {
		return issues
	}
	out := make([]Issue, len(issues))
	copy(out, issues)
	for i := range out {
		if sev, ok := overrides[out[i].Category]; ok {
			out[i].Severity = sev
		}
	}
	return out
}
