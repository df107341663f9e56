package ingest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"drvaudit/internal/review"
)

// DefaultMinCommentChars is the minimum trimmed length a comment body needs
// to be worth classifying. Shorter bodies are almost always "LGTM"-style
// noise.
const DefaultMinCommentChars = 10

// prRecord mirrors one entry of a pull-request comment export: the raw
// review and line-comment objects as the GitHub API returns them, grouped
// per PR.
type prRecord struct {
	PR       int            `json:"pr"`
	Reviews  []reviewEntry  `json:"reviews"`
	Comments []commentEntry `json:"comments"`
}

type userRef struct {
	Login string `json:"login"`
}

type reviewEntry struct {
	User  userRef `json:"user"`
	Body  string  `json:"body"`
	State string  `json:"state"`
}

type commentEntry struct {
	User userRef `json:"user"`
	Body string  `json:"body"`
	Path string  `json:"path"`
	Line int     `json:"line"`
}

// ReadComments parses a pull-request comment export and returns the
// substantial comments in file order, review bodies before line comments
// within each PR. Bodies whose trimmed length is below minChars are
// dropped; a minChars below one keeps everything non-blank. Returned
// comments carry CategoryUncategorized until a classifier assigns one.
func ReadComments(r io.Reader, minChars int) ([]review.Comment, error) {
	var records []prRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing comment export: %w", err)
	}

	var out []review.Comment
	for _, rec := range records {
		for _, rv := range rec.Reviews {
			if !substantial(rv.Body, minChars) {
				continue
			}
			out = append(out, review.Comment{
				Text:     rv.Body,
				Author:   rv.User.Login,
				State:    rv.State,
				Category: review.CategoryUncategorized,
				Source:   review.CommentSource{PR: rec.PR},
			})
		}
		for _, lc := range rec.Comments {
			if !substantial(lc.Body, minChars) {
				continue
			}
			out = append(out, review.Comment{
				Text:     lc.Body,
				Author:   lc.User.Login,
				Category: review.CategoryUncategorized,
				Source:   review.CommentSource{PR: rec.PR, Path: lc.Path, Line: lc.Line},
			})
		}
	}
	return out, nil
}

func substantial(body string, minChars int) bool {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return false
	}
	return len(trimmed) >= minChars
}
