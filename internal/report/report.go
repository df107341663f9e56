package report

import (
	"time"

	"drvaudit/internal/review"
)

// Options tunes snapshot construction.
type Options struct {
	// ExampleCap bounds how many comment examples each category retains.
	ExampleCap int
	// HighPriorityThreshold selects ranked issues whose score is strictly
	// below it.
	HighPriorityThreshold float64
}

// DefaultOptions returns the standard snapshot settings.
func DefaultOptions() Options {
	return Options{
		ExampleCap:            10,
		HighPriorityThreshold: 3.5,
	}
}

// Tally counts items per category using the supplied accessor. Categories
// with no items are absent from the result.
func Tally[T any](items []T, categoryOf func(T) review.Category) map[review.Category]int {
	counts := make(map[review.Category]int, len(items))
	for _, item := range items {
		counts[categoryOf(item)]++
	}
	return counts
}

// Percentages converts a tally into per-category percentages of the total.
// An empty or zero-total tally yields an empty map, never a division by
// zero.
func Percentages(counts map[review.Category]int) map[review.Category]float64 {
	total := 0
	for _, n := range counts {
		total += n
	}
	pct := make(map[review.Category]float64, len(counts))
	if total == 0 {
		return pct
	}
	for cat, n := range counts {
		pct[cat] = float64(n) / float64(total) * 100
	}
	return pct
}

// SeverityCounts tallies issues per severity.
func SeverityCounts(issues []review.Issue) map[review.Severity]int {
	counts := make(map[review.Severity]int, len(issues))
	for _, issue := range issues {
		counts[issue.Severity]++
	}
	return counts
}

// Examples retains a bounded number of sample texts per category in
// first-seen order. The bound is structural: Add refuses once a category is
// full, so no caller can overfill it.
type Examples struct {
	cap        int
	byCategory map[review.Category][]string
}

// NewExamples returns a container holding at most cap examples per
// category. A cap below one falls back to the default.
func NewExamples(cap int) *Examples {
	if cap < 1 {
		cap = DefaultOptions().ExampleCap
	}
	return &Examples{
		cap:        cap,
		byCategory: make(map[review.Category][]string),
	}
}

// Add records text as an example for cat. It returns false, without
// recording, when the category already holds its cap.
func (e *Examples) Add(cat review.Category, text string) bool {
	if len(e.byCategory[cat]) >= e.cap {
		return false
	}
	e.byCategory[cat] = append(e.byCategory[cat], text)
	return true
}

// For returns a copy of the examples recorded for cat.
func (e *Examples) For(cat review.Category) []string {
	src := e.byCategory[cat]
	if len(src) == 0 {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// Map returns a copy of all recorded examples keyed by category.
func (e *Examples) Map() map[review.Category][]string {
	out := make(map[review.Category][]string, len(e.byCategory))
	for cat := range e.byCategory {
		out[cat] = e.For(cat)
	}
	return out
}

// HighPriority returns the prefix of ranked whose score is strictly below
// threshold. The input must already be sorted ascending by score; the
// returned slice aliases it.
func HighPriority(ranked []review.Issue, score func(review.Issue) float64, threshold float64) []review.Issue {
	for i, issue := range ranked {
		if score(issue) >= threshold {
			return ranked[:i]
		}
	}
	return ranked
}

// Snapshot is the aggregate view over one audit run. All maps key on
// category or severity and serialize with their text slugs.
type Snapshot struct {
	CommentCount       int                          `json:"comment_count"`
	IssueCount         int                          `json:"issue_count"`
	CommentsByCategory map[review.Category]int      `json:"comments_by_category,omitempty"`
	CommentPercentages map[review.Category]float64  `json:"comment_percentages,omitempty"`
	IssuesByCategory   map[review.Category]int      `json:"issues_by_category,omitempty"`
	IssuesBySeverity   map[review.Severity]int      `json:"issues_by_severity,omitempty"`
	Examples           map[review.Category][]string `json:"examples,omitempty"`
	HighPriority       []review.Issue               `json:"high_priority,omitempty"`
}

// BuildSnapshot aggregates classified comments and ranked issues into a
// Snapshot. It is a pure function of its inputs: the run timestamp lives on
// the outer Report so two runs over identical inputs produce identical
// snapshots.
func BuildSnapshot(comments []review.Comment, ranked []review.Issue, score func(review.Issue) float64, opts Options) Snapshot {
	commentTally := Tally(comments, func(c review.Comment) review.Category { return c.Category })

	examples := NewExamples(opts.ExampleCap)
	for _, c := range comments {
		examples.Add(c.Category, c.Text)
	}

	return Snapshot{
		CommentCount:       len(comments),
		IssueCount:         len(ranked),
		CommentsByCategory: commentTally,
		CommentPercentages: Percentages(commentTally),
		IssuesByCategory:   Tally(ranked, func(i review.Issue) review.Category { return i.Category }),
		IssuesBySeverity:   SeverityCounts(ranked),
		Examples:           examples.Map(),
		HighPriority:       HighPriority(ranked, score, opts.HighPriorityThreshold),
	}
}

// Inputs records what a run consumed, for the report header.
type Inputs struct {
	Roots        []string `json:"roots,omitempty"`
	CommentFiles []string `json:"comment_files,omitempty"`
	LintFiles    []string `json:"lint_files,omitempty"`
	FilesScanned int      `json:"files_scanned,omitempty"`
}

// Report is the full serializable result of a run: the snapshot plus the
// underlying comments and ranked issues, with run metadata.
type Report struct {
	Tool        string           `json:"tool"`
	Version     string           `json:"version"`
	GeneratedAt time.Time        `json:"generated_at"`
	Inputs      Inputs           `json:"inputs"`
	Snapshot    Snapshot         `json:"snapshot"`
	Comments    []review.Comment `json:"comments,omitempty"`
	Issues      []review.Issue   `json:"issues,omitempty"`
}
