package scan

import (
	"fmt"
	"path/filepath"
	"strings"

	"drvaudit/internal/review"
)

// guardScanWindow is how many leading lines may contain the header guard.
const guardScanWindow = 10

// includeRule ties use of a helper or structure type to the include line
// that must accompany it.
type includeRule struct {
	kind    FileKind
	token   string
	include string
}

var includeRules = []includeRule{
	{KindHeader, "struct no_os_spi_desc", `#include "no_os_spi.h"`},
	{KindHeader, "struct no_os_gpio_desc", `#include "no_os_gpio.h"`},
	{KindSource, "no_os_calloc", `#include "no_os_alloc.h"`},
	{KindSource, "no_os_mdelay", `#include "no_os_delay.h"`},
}

// ExpectedGuard derives the conventional guard token from the file's base
// name: uppercase, non-alphanumerics mapped to underscore, wrapped in
// double underscores.
func ExpectedGuard(path string) string {
	base := strings.ToUpper(filepath.Base(path))
	mapped := strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, base)
	return "__" + mapped + "__"
}

func checkHeadersIncludes(f *file, emit emitFunc) {
	if f.kind == KindHeader {
		checkGuard(f, emit)
	}
	checkMissingIncludes(f, emit)
}

// checkGuard flags the file when the leading lines do not carry both the
// #ifndef and #define forms of the name-derived guard token.
func checkGuard(f *file, emit emitFunc) {
	guard := ExpectedGuard(f.path)

	window := f.lines
	if len(window) > guardScanWindow {
		window = window[:guardScanWindow]
	}
	hasIfndef := false
	hasDefine := false
	for _, line := range window {
		if strings.Contains(line, "#ifndef "+guard) {
			hasIfndef = true
		}
		if strings.Contains(line, "#define "+guard) {
			hasDefine = true
		}
	}
	if !hasIfndef || !hasDefine {
		emit(1, review.SeverityWarning,
			"Header guard format may be incorrect",
			fmt.Sprintf("Expected: #ifndef %s / #define %s", guard, guard))
	}
}

// checkMissingIncludes flags use of a known helper or structure type when
// its conventional include is absent from the file. The issue points at the
// first line using the token.
func checkMissingIncludes(f *file, emit emitFunc) {
	for _, rule := range includeRules {
		if rule.kind != f.kind {
			continue
		}
		if !strings.Contains(f.content, rule.token) || strings.Contains(f.content, rule.include) {
			continue
		}
		line := firstLineContaining(f.lines, rule.token)
		emit(line, review.SeverityWarning,
			fmt.Sprintf("Uses %s but doesn't include %s", rule.token, includeName(rule.include)),
			"Add: "+rule.include)
	}
}

func firstLineContaining(lines []string, token string) int {
	for i, line := range lines {
		if strings.Contains(line, token) {
			return i + 1
		}
	}
	return 1
}

func includeName(include string) string {
	return strings.Trim(strings.TrimPrefix(include, "#include "), `"`)
}
