package rank

import (
	"sort"
	"strings"

	"drvaudit/internal/review"
)

// Options holds the ranking knobs. The zero value is not useful; start from
// DefaultOptions and adjust.
type Options struct {
	// Urgent categories get their score reduced by UrgentBonus.
	Urgent map[review.Category]bool
	// DriverSegments are path segments identifying implementation code that
	// deserves PathBonus.
	DriverSegments []string
	UrgentBonus    float64
	PathBonus      float64
}

// DefaultOptions returns the tuned defaults: security and error handling
// are urgent (the external memory rule group maps into error handling), and
// anything under a drivers/ segment is boosted.
func DefaultOptions() Options {
	return Options{
		Urgent: map[review.Category]bool{
			review.CategorySecurity:      true,
			review.CategoryErrorHandling: true,
		},
		DriverSegments: []string{"drivers"},
		UrgentBonus:    0.5,
		PathBonus:      0.3,
	}
}

// Score computes the urgency of an issue; lower is more urgent. It is a
// pure function of the issue's severity, category, and path, so re-ranking
// is idempotent; the score is never stored on the issue.
func (o Options) Score(issue review.Issue) float64 {
	score := float64(issue.Severity.Rank())
	if o.Urgent[issue.Category] {
		score -= o.UrgentBonus
	}
	if o.isDriverPath(issue.Location.Path) {
		score -= o.PathBonus
	}
	return score
}

// Rank returns a new slice sorted ascending by score. The sort is stable:
// issues with equal scores keep their relative input order. The input is
// not modified.
func (o Options) Rank(issues []review.Issue) []review.Issue {
	out := make([]review.Issue, len(issues))
	copy(out, issues)

	scores := make([]float64, len(out))
	for i, issue := range out {
		scores[i] = o.Score(issue)
	}
	// Sort index-wise so scores move with their issues.
	idx := make([]int, len(out))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return scores[idx[a]] < scores[idx[b]]
	})

	ranked := make([]review.Issue, len(out))
	for i, j := range idx {
		ranked[i] = out[j]
	}
	return ranked
}

// isDriverPath reports whether any path segment matches a configured driver
// segment.
func (o Options) isDriverPath(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		for _, want := range o.DriverSegments {
			if seg == want {
				return true
			}
		}
	}
	return false
}
