package scan

import (
	"regexp"
	"strings"

	"drvaudit/internal/review"
)

var (
	fixedWidthCastRe = regexp.MustCompile(`\(\s*(uint\d+_t|int\d+_t)\s*\*\s*\)`)
	sizeofCompareRe  = regexp.MustCompile(`if\s*\([^)]*[<>]=?\s*sizeof`)
)

func checkTypeSafety(f *file, emit emitFunc) {
	for i, line := range f.lines {
		n := i + 1

		if fixedWidthCastRe.MatchString(line) {
			emit(n, review.SeverityWarning,
				"Potentially unsafe pointer cast",
				"Consider using no_os_get_unaligned_*() functions for safe access")
		}

		if sizeofCompareRe.MatchString(line) && strings.Contains(line, "int") {
			emit(n, review.SeverityWarning,
				"Comparing signed value with sizeof (unsigned)",
				"Use unsigned types for size comparisons")
		}
	}
}
