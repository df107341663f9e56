package output

import (
	"fmt"
	"io"
	"strings"

	"drvaudit/internal/report"
	"drvaudit/internal/review"
)

// MarkdownWriter outputs a PR-comment-friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, rep *report.Report) error {
	snap := rep.Snapshot

	fmt.Fprintf(w, "## Driver Review Audit\n\n")

	fmt.Fprintf(w, "| Severity | Count |\n")
	fmt.Fprintf(w, "|----------|-------|\n")
	fmt.Fprintf(w, "| Error    | %d    |\n", snap.IssuesBySeverity[review.SeverityError])
	fmt.Fprintf(w, "| Warning  | %d    |\n", snap.IssuesBySeverity[review.SeverityWarning])
	fmt.Fprintf(w, "| Info     | %d    |\n", snap.IssuesBySeverity[review.SeverityInfo])
	fmt.Fprintf(w, "| **Total** | **%d** |\n\n", snap.IssueCount)

	if snap.CommentCount > 0 {
		fmt.Fprintf(w, "### Review comment categories (%d comments)\n\n", snap.CommentCount)
		fmt.Fprintf(w, "| Category | Count | Share |\n")
		fmt.Fprintf(w, "|----------|-------|-------|\n")
		for _, cat := range categoriesByCount(snap.CommentsByCategory) {
			fmt.Fprintf(w, "| %s | %d | %.1f%% |\n",
				cat.Label(), snap.CommentsByCategory[cat], snap.CommentPercentages[cat])
		}
		fmt.Fprintln(w)
	}

	if snap.IssueCount == 0 {
		fmt.Fprintln(w, "No issues found. :white_check_mark:")
		return nil
	}

	if len(snap.HighPriority) > 0 {
		fmt.Fprintf(w, "<details>\n<summary>:red_circle: High priority (%d)</summary>\n\n", len(snap.HighPriority))
		for _, issue := range snap.HighPriority {
			fmt.Fprintf(w, "### %s\n\n", issue.Message)
			fmt.Fprintf(w, "**`%s:%d`** | %s | %s\n\n",
				issue.Location.Path, issue.Location.Line,
				issue.Category.Label(), strings.ToUpper(issue.Severity.String()))
			if issue.Suggestion != "" {
				fmt.Fprintf(w, "**Suggestion:**\n\n> %s\n\n",
					strings.ReplaceAll(issue.Suggestion, "\n", "\n> "))
			}
			fmt.Fprintf(w, "---\n\n")
		}
		fmt.Fprintf(w, "</details>\n\n")
	}

	if len(snap.Examples) > 0 {
		fmt.Fprintf(w, "<details>\n<summary>Comment examples by category</summary>\n\n")
		for _, cat := range categoriesByCount(snap.CommentsByCategory) {
			examples := snap.Examples[cat]
			if len(examples) == 0 {
				continue
			}
			fmt.Fprintf(w, "**%s**\n\n", cat.Label())
			for _, ex := range examples {
				fmt.Fprintf(w, "> %s\n\n", strings.ReplaceAll(ex, "\n", "\n> "))
			}
		}
		fmt.Fprintf(w, "</details>\n")
	}

	return nil
}
