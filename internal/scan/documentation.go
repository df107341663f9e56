package scan

import (
	"regexp"
	"strings"

	"drvaudit/internal/review"
)

var funcDeclRes = []*regexp.Regexp{
	regexp.MustCompile(`^int\d*_t\s+\w+.*\(`),
	regexp.MustCompile(`^void\s+\w+.*\(`),
}

var doxygenMarkers = []string{"@brief", "@param", "@return"}

// checkDocumentation flags public function declarations in headers that have
// no doxygen block since the previous declaration, and @brief lines that end
// right after the marker.
func checkDocumentation(f *file, emit emitFunc) {
	hasDoxygen := false
	for i, line := range f.lines {
		n := i + 1

		if isFuncDecl(line) {
			if f.kind == KindHeader && !hasDoxygen {
				emit(n, review.SeverityWarning,
					"Public function missing Doxygen documentation",
					"Add: /** @brief ... */ comment block before function")
			}
			hasDoxygen = false
		}

		for _, marker := range doxygenMarkers {
			if strings.Contains(line, marker) {
				hasDoxygen = true
				break
			}
		}

		if strings.Contains(line, "@brief") && strings.HasSuffix(strings.TrimSpace(line), "@brief") {
			emit(n, review.SeverityInfo,
				"Incomplete @brief description",
				"Add meaningful description after @brief")
		}
	}
}

func isFuncDecl(line string) bool {
	for _, re := range funcDeclRes {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
