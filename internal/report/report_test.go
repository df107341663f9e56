package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drvaudit/internal/rank"
	"drvaudit/internal/review"
)

func comment(cat review.Category, text string) review.Comment {
	return review.Comment{Text: text, Author: "reviewer", Category: cat}
}

func issueAt(sev review.Severity, cat review.Category, path string) review.Issue {
	return review.Issue{
		Location: review.Location{Path: path, Line: 1},
		Severity: sev,
		Category: cat,
		Message:  "m",
		Origin:   review.OriginHeuristic,
	}
}

func TestTally(t *testing.T) {
	comments := []review.Comment{
		comment(review.CategoryNaming, "a"),
		comment(review.CategoryNaming, "b"),
		comment(review.CategoryTesting, "c"),
	}
	counts := Tally(comments, func(c review.Comment) review.Category { return c.Category })
	assert.Equal(t, map[review.Category]int{
		review.CategoryNaming:  2,
		review.CategoryTesting: 1,
	}, counts)
}

func TestPercentages(t *testing.T) {
	counts := map[review.Category]int{
		review.CategoryNaming:  3,
		review.CategoryTesting: 1,
	}
	pct := Percentages(counts)
	assert.InDelta(t, 75.0, pct[review.CategoryNaming], 1e-9)
	assert.InDelta(t, 25.0, pct[review.CategoryTesting], 1e-9)
}

func TestPercentagesZeroTotal(t *testing.T) {
	assert.Empty(t, Percentages(nil))
	assert.Empty(t, Percentages(map[review.Category]int{review.CategoryNaming: 0}))
}

func TestSeverityCounts(t *testing.T) {
	issues := []review.Issue{
		issueAt(review.SeverityError, review.CategorySecurity, "a.c"),
		issueAt(review.SeverityError, review.CategoryNaming, "b.c"),
		issueAt(review.SeverityInfo, review.CategoryNaming, "c.c"),
	}
	assert.Equal(t, map[review.Severity]int{
		review.SeverityError: 2,
		review.SeverityInfo:  1,
	}, SeverityCounts(issues))
}

func TestExamplesCap(t *testing.T) {
	e := NewExamples(2)
	assert.True(t, e.Add(review.CategoryNaming, "first"))
	assert.True(t, e.Add(review.CategoryNaming, "second"))
	assert.False(t, e.Add(review.CategoryNaming, "third"))
	assert.Equal(t, []string{"first", "second"}, e.For(review.CategoryNaming))

	// The cap is per category, not global.
	assert.True(t, e.Add(review.CategoryTesting, "other"))
}

func TestExamplesDefaultCap(t *testing.T) {
	e := NewExamples(0)
	for i := 0; i < DefaultOptions().ExampleCap; i++ {
		assert.True(t, e.Add(review.CategoryNaming, "x"))
	}
	assert.False(t, e.Add(review.CategoryNaming, "overflow"))
}

func TestExamplesForReturnsCopy(t *testing.T) {
	e := NewExamples(5)
	e.Add(review.CategoryNaming, "first")
	got := e.For(review.CategoryNaming)
	got[0] = "mutated"
	assert.Equal(t, []string{"first"}, e.For(review.CategoryNaming))
}

func TestHighPriorityPrefix(t *testing.T) {
	o := rank.DefaultOptions()
	issues := []review.Issue{
		issueAt(review.SeverityError, review.CategorySecurity, "drivers/a.c"), // 0.2
		issueAt(review.SeverityError, review.CategoryNaming, "util/b.c"),      // 1.0
		issueAt(review.SeverityWarning, review.CategoryNaming, "util/c.c"),    // 3.0
		issueAt(review.SeverityInfo, review.CategoryNaming, "util/d.c"),       // 5.0
	}
	high := HighPriority(issues, o.Score, 3.5)
	require.Len(t, high, 3)
	assert.Equal(t, "drivers/a.c", high[0].Location.Path)

	assert.Empty(t, HighPriority(issues, o.Score, 0.1))
	assert.Len(t, HighPriority(issues, o.Score, 100), 4)
	assert.Empty(t, HighPriority(nil, o.Score, 3.5))
}

func TestBuildSnapshot(t *testing.T) {
	o := rank.DefaultOptions()
	comments := []review.Comment{
		comment(review.CategoryNaming, "rename this"),
		comment(review.CategoryNaming, "and this"),
		comment(review.CategoryNaming, "this too"),
		comment(review.CategoryTesting, "needs a test"),
	}
	ranked := o.Rank([]review.Issue{
		issueAt(review.SeverityWarning, review.CategoryNaming, "util/c.c"),
		issueAt(review.SeverityError, review.CategorySecurity, "drivers/a.c"),
	})

	snap := BuildSnapshot(comments, ranked, o.Score, Options{ExampleCap: 2, HighPriorityThreshold: 3.5})

	assert.Equal(t, 4, snap.CommentCount)
	assert.Equal(t, 2, snap.IssueCount)
	assert.Equal(t, 3, snap.CommentsByCategory[review.CategoryNaming])
	assert.InDelta(t, 75.0, snap.CommentPercentages[review.CategoryNaming], 1e-9)
	assert.InDelta(t, 25.0, snap.CommentPercentages[review.CategoryTesting], 1e-9)
	assert.Equal(t, 1, snap.IssuesByCategory[review.CategorySecurity])
	assert.Equal(t, 1, snap.IssuesBySeverity[review.SeverityError])

	// Example cap holds and first-seen order is preserved.
	assert.Equal(t, []string{"rename this", "and this"}, snap.Examples[review.CategoryNaming])

	// Both issues score below 3.5; the security error ranks first.
	require.Len(t, snap.HighPriority, 2)
	assert.Equal(t, review.CategorySecurity, snap.HighPriority[0].Category)
}

// Two runs over the same inputs must agree field for field; the timestamp
// lives on the outer Report, not the snapshot.
func TestBuildSnapshotDeterministic(t *testing.T) {
	o := rank.DefaultOptions()
	comments := []review.Comment{
		comment(review.CategoryNaming, "rename this"),
		comment(review.CategoryTesting, "needs a test"),
	}
	ranked := o.Rank([]review.Issue{
		issueAt(review.SeverityError, review.CategorySecurity, "drivers/a.c"),
	})
	a := BuildSnapshot(comments, ranked, o.Score, DefaultOptions())
	b := BuildSnapshot(comments, ranked, o.Score, DefaultOptions())
	assert.Equal(t, a, b)
}

func TestSnapshotJSONKeys(t *testing.T) {
	snap := Snapshot{
		CommentsByCategory: map[review.Category]int{review.CategoryHeaderGuards: 2},
		IssuesBySeverity:   map[review.Severity]int{review.SeverityError: 1},
	}
	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"header_guards":2`)
	assert.Contains(t, string(raw), `"error":1`)
}
