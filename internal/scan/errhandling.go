package scan

import (
	"regexp"
	"strings"

	"drvaudit/internal/review"
)

var (
	helperCallRe    = regexp.MustCompile(`no_os_\w+\([^)]*\);`)
	resultCaptureRe = regexp.MustCompile(`(ret|result|status)\s*=`)
	anyDerefRe      = regexp.MustCompile(`->\w+`)
	handleDerefRe   = regexp.MustCompile(`\b\w+->(?:spi_desc|gpio_\w+|i2c_desc)`)
	nullCheckRe     = regexp.MustCompile(`if\s*\(.*!\w+`)
)

// fireAndForget lists helper calls whose return value is legitimately
// ignored: pure delays and frees.
var fireAndForget = []string{"no_os_mdelay", "no_os_udelay", "no_os_free"}

// nullCheckWindow is how many preceding lines are searched for a null check
// before a handle dereference is flagged.
const nullCheckWindow = 5

func checkErrorHandling(f *file, emit emitFunc) {
	for i, line := range f.lines {
		n := i + 1

		// Helper call whose result is not captured.
		if helperCallRe.MatchString(line) && !resultCaptureRe.MatchString(line) {
			skip := false
			for _, name := range fireAndForget {
				if strings.Contains(line, name) {
					skip = true
					break
				}
			}
			if !skip {
				emit(n, review.SeverityWarning,
					"no-OS function call without return value check",
					"Consider: ret = no_os_function(); if (ret < 0) return ret;")
			}
		}

		// Resource handle dereference with no guard on the line and no null
		// check in the preceding window.
		if anyDerefRe.MatchString(line) && !hasGuardToken(line) && handleDerefRe.MatchString(line) {
			if !nullCheckedAbove(f.lines, i) {
				emit(n, review.SeverityWarning,
					"Potential null pointer dereference",
					"Add null check: if (!dev || !dev->spi_desc) return -EINVAL;")
			}
		}
	}
}

func hasGuardToken(line string) bool {
	for _, tok := range []string{"if", "&&", "||", "?"} {
		if strings.Contains(line, tok) {
			return true
		}
	}
	return false
}

func nullCheckedAbove(lines []string, idx int) bool {
	start := idx - nullCheckWindow
	if start < 0 {
		start = 0
	}
	for _, prev := range lines[start:idx] {
		if nullCheckRe.MatchString(prev) {
			return true
		}
	}
	return false
}
