package classify

import (
	"strings"

	"drvaudit/internal/review"
)

// Classifier assigns review categories to free-text comments using weighted
// keyword scoring. The rule table is fixed at construction time and never
// mutated afterwards, so a single Classifier is safe for concurrent use.
type Classifier struct {
	table map[review.Category][]Keyword
}

// New returns a Classifier with the built-in keyword table.
func New() *Classifier {
	return &Classifier{table: defaultTable()}
}

// NewWithExtra returns a Classifier with the built-in table plus extra
// keywords appended per category. Extras with weight < 1 default to 1.
func NewWithExtra(extra map[review.Category][]Keyword) *Classifier {
	table := defaultTable()
	for cat, kws := range extra {
		for _, kw := range kws {
			if kw.Weight < 1 {
				kw.Weight = 1
			}
			kw.Text = strings.ToLower(kw.Text)
			table[cat] = append(table[cat], kw)
		}
	}
	return &Classifier{table: table}
}

// Categorize assigns one category to the comment text. Scoring is a pure
// function of the rule table and the input: each keyword found as a
// substring of the lower-cased text contributes its weight once. The
// strictly highest total wins; ties go to the category declared earliest in
// the taxonomy. A zero score everywhere yields CategoryUncategorized.
func (c *Classifier) Categorize(text string) review.Category {
	lower := strings.ToLower(text)

	best := review.CategoryUncategorized
	bestScore := 0
	for _, cat := range review.Categories() {
		score := 0
		for _, kw := range c.table[cat] {
			if strings.Contains(lower, kw.Text) {
				score += kw.Weight
			}
		}
		if score > bestScore {
			best = cat
			bestScore = score
		}
	}
	return best
}
