package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"drvaudit/internal/report"
	"drvaudit/internal/review"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	pathStyle    = lipgloss.NewStyle().Faint(true)

	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// TextWriter outputs a human-readable text report.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, rep *report.Report) error {
	ew := &errWriter{w: w}
	snap := rep.Snapshot

	ew.printf("%s\n", titleStyle.Render(fmt.Sprintf("%s %s driver review audit", rep.Tool, rep.Version)))
	if rep.Inputs.FilesScanned > 0 {
		ew.printf("Files scanned: %d\n", rep.Inputs.FilesScanned)
	}
	ew.println(strings.Repeat("─", 60))

	if snap.CommentCount > 0 {
		ew.printf("\n%s\n", sectionStyle.Render(fmt.Sprintf("Review comments (%d)", snap.CommentCount)))
		for _, cat := range categoriesByCount(snap.CommentsByCategory) {
			ew.printf("  %-28s %4d  %5.1f%%\n",
				cat.Label(), snap.CommentsByCategory[cat], snap.CommentPercentages[cat])
		}
	}

	ew.printf("\n%s\n", sectionStyle.Render(fmt.Sprintf("Issues (%d)", snap.IssueCount)))
	if snap.IssueCount == 0 {
		ew.println("  No issues found. Looks good!")
		return ew.err
	}
	for _, sev := range []review.Severity{review.SeverityError, review.SeverityWarning, review.SeverityInfo} {
		if n := snap.IssuesBySeverity[sev]; n > 0 {
			ew.printf("  %s %d\n", severityLabel(sev), n)
		}
	}

	if len(snap.HighPriority) > 0 {
		ew.printf("\n%s\n", sectionStyle.Render(fmt.Sprintf("High priority (%d)", len(snap.HighPriority))))
		for _, issue := range snap.HighPriority {
			loc := issue.Location
			ew.printf("\n  %s %s  %s\n",
				severityLabel(issue.Severity),
				pathStyle.Render(fmt.Sprintf("%s:%d", loc.Path, loc.Line)),
				issue.Category.Label())
			for _, line := range wrapText(issue.Message, 70) {
				ew.printf("    %s\n", line)
			}
			if issue.Suggestion != "" {
				ew.println("  Suggestion:")
				for _, line := range wrapText(issue.Suggestion, 70) {
					ew.printf("    %s\n", line)
				}
			}
		}
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func severityLabel(s review.Severity) string {
	label := strings.ToUpper(s.String())
	switch s {
	case review.SeverityError:
		return errorStyle.Render("[" + label + "]")
	case review.SeverityWarning:
		return warningStyle.Render("[" + label + "]")
	case review.SeverityInfo:
		return infoStyle.Render("[" + label + "]")
	default:
		return "[" + label + "]"
	}
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
