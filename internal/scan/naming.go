package scan

import (
	"fmt"
	"regexp"
	"strings"

	"drvaudit/internal/review"
)

var (
	defineNameRe  = regexp.MustCompile(`^#define\s+(\w+)`)
	bareRegNameRe = regexp.MustCompile(`.*_(REG|REGISTER)\d+$`)
	funcNameRe    = regexp.MustCompile(`^\w+\s+(\w+)\s*\(`)
)

// macroExemptPrefixes are framework-wide macro prefixes that never carry a
// device prefix.
var macroExemptPrefixes = []string{"__", "NO_OS_", "BIT", "GENMASK"}

// funcExemptPrefixes covers framework helpers plus the main/init exception.
var funcExemptPrefixes = []string{"no_os_", "main", "init"}

// checkNaming flags identifiers that do not carry the device prefix derived
// from the file name, and register macros with bare numeric suffixes.
func checkNaming(f *file, emit emitFunc) {
	device := deviceName(f.path)

	for i, line := range f.lines {
		n := i + 1

		if m := defineNameRe.FindStringSubmatch(line); m != nil {
			name := m[1]

			if device != "" && !strings.HasPrefix(name, strings.ToUpper(device)) && !hasAnyPrefix(name, macroExemptPrefixes) {
				emit(n, review.SeverityInfo,
					"Macro doesn't follow device prefix convention",
					fmt.Sprintf("Consider: %s_%s", strings.ToUpper(device), name))
			}

			if bareRegNameRe.MatchString(name) {
				emit(n, review.SeverityInfo,
					"Non-descriptive register name",
					"Use descriptive names: DEVICE_REG_STATUS instead of DEVICE_REG1")
			}
		}

		if f.kind != KindHeader {
			continue
		}
		if m := funcNameRe.FindStringSubmatch(line); m != nil {
			name := m[1]
			if device != "" && !strings.HasPrefix(name, strings.ToLower(device)) && !hasAnyPrefix(name, funcExemptPrefixes) {
				emit(n, review.SeverityInfo,
					"Function doesn't follow device prefix convention",
					fmt.Sprintf("Consider: %s_%s", strings.ToLower(device), name))
			}
		}
	}
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
