package scan

import (
	"path/filepath"
	"sort"
	"strings"

	"drvaudit/internal/review"
)

// FileKind discriminates the two source flavors the detectors care about.
type FileKind int

const (
	KindOther FileKind = iota
	KindHeader
	KindSource
)

// KindOf derives the file kind from the path's suffix.
func KindOf(path string) FileKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".h":
		return KindHeader
	case ".c":
		return KindSource
	default:
		return KindOther
	}
}

// file is the immutable per-scan view shared by all detectors.
type file struct {
	path    string
	kind    FileKind
	content string
	lines   []string // physical lines; lines[i] is line i+1
}

// emitFunc records one issue for the detector's category. The wrapper in
// Scan enforces at most one issue per line per detector.
type emitFunc func(line int, severity review.Severity, message, suggestion string)

// detector pairs a category with its stateless check function. Detectors
// read only the file view; they never share state with each other.
type detector struct {
	category review.Category
	run      func(f *file, emit emitFunc)
}

// detectors run in this fixed order. Output is concatenated in this order
// before the final stable sort by line, so the order is part of the
// scanner's deterministic contract.
var detectors = []detector{
	{review.CategoryErrorHandling, checkErrorHandling},
	{review.CategoryDocumentation, checkDocumentation},
	{review.CategoryHeaderGuards, checkHeadersIncludes},
	{review.CategoryMagicNumbers, checkMagicNumbers},
	{review.CategoryTypeSafety, checkTypeSafety},
	{review.CategoryNaming, checkNaming},
	{review.CategoryBitOps, checkBitOperations},
}

// Scan runs the full detector battery over one file's content and returns
// the positioned issues, ordered by line number with detector order as the
// stable secondary key. Identical (path, content) input always yields an
// identical result; empty content yields no issues.
func Scan(path, content string) []review.Issue {
	f := &file{
		path:    path,
		kind:    KindOf(path),
		content: content,
		lines:   strings.Split(content, "\n"),
	}
	if content == "" {
		return nil
	}

	var issues []review.Issue
	for _, d := range detectors {
		d := d
		seen := make(map[int]bool)
		emit := func(line int, severity review.Severity, message, suggestion string) {
			// One issue per (path, line, category) per detector.
			if seen[line] {
				return
			}
			seen[line] = true
			issues = append(issues, review.Issue{
				Location:   review.Location{Path: path, Line: line},
				Severity:   severity,
				Category:   d.category,
				Message:    message,
				Suggestion: suggestion,
				Origin:     review.OriginHeuristic,
			})
		}
		d.run(f, emit)
	}

	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Location.Line < issues[j].Location.Line
	})
	return issues
}

// codeOnly reports whether the line is plain code: lines carrying comment
// delimiters or string literals are skipped by the literal-oriented
// detectors to avoid matching inside text.
func codeOnly(line string) bool {
	return !strings.Contains(line, "//") &&
		!strings.Contains(line, "/*") &&
		!strings.Contains(line, `"`)
}

// deviceName extracts the device identifier from the file's base name by
// matching against the known vendor prefixes; empty when the file does not
// look like a device driver.
func deviceName(path string) string {
	base := filepath.Base(path)
	name := strings.SplitN(base, ".", 2)[0]
	for _, prefix := range devicePrefixes {
		if strings.HasPrefix(name, prefix) {
			return name
		}
	}
	return ""
}

// devicePrefixes are the short vendor/device prefixes used across the
// driver tree.
var devicePrefixes = []string{"ad", "adm", "adf", "adt", "ltc", "max", "lt", "cn"}
