package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestMarkdownWriter_NoIssues(t *testing.T) {
	var buf bytes.Buffer
	w := &MarkdownWriter{}
	if err := w.Write(&buf, emptyReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "## Driver Review Audit") {
		t.Error("Output should have a heading")
	}
	if !strings.Contains(out, "No issues found") {
		t.Error("Output should say no issues found")
	}
}

func TestMarkdownWriter_WithIssues(t *testing.T) {
	var buf bytes.Buffer
	w := &MarkdownWriter{}
	if err := w.Write(&buf, sampleReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "| Error    | 1") {
		t.Error("Output should show error count in summary table")
	}
	if !strings.Contains(out, "Review comment categories (3 comments)") {
		t.Error("Output should show comment category table")
	}
	if !strings.Contains(out, "| Error Handling | 2 | 66.7% |") {
		t.Error("Output should show per-category share")
	}
	if !strings.Contains(out, "High priority (1)") {
		t.Error("Output should have a high-priority section")
	}
	if !strings.Contains(out, "`drivers/adc/ad7124.c:42`") {
		t.Error("Output should show file:line")
	}
	if !strings.Contains(out, "> Capture and check the return value") {
		t.Error("Output should quote the suggestion")
	}
	if !strings.Contains(out, "Comment examples by category") {
		t.Error("Output should include the examples section")
	}
	if !strings.Contains(out, "> Please add error handling here") {
		t.Error("Output should quote a comment example")
	}
}
