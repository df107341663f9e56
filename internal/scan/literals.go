package scan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"drvaudit/internal/review"
)

var numberRe = regexp.MustCompile(`\b(\d+|0x[0-9A-Fa-f]+)\b`)

// allowedLiterals are values too common to be worth naming.
var allowedLiterals = map[string]bool{
	"0": true, "1": true, "2": true, "8": true, "16": true,
	"32": true, "64": true, "100": true, "1000": true,
	"0x00": true, "0x01": true, "0xFF": true, "0x80": true,
}

const (
	namedConstantFloor = 255
	delayConstantFloor = 10
)

// checkMagicNumbers extracts numeric literals per line and flags candidates
// for named constants. Lines carrying comments, string literals, or a
// #define are exempt, as are literals inside index brackets or used as
// shift amounts.
func checkMagicNumbers(f *file, emit emitFunc) {
	for i, line := range f.lines {
		n := i + 1
		if !codeOnly(line) || strings.Contains(line, "#define") {
			continue
		}
		lower := strings.ToLower(line)

		for _, loc := range numberRe.FindAllStringIndex(line, -1) {
			literal := line[loc[0]:loc[1]]
			if allowedLiterals[literal] {
				continue
			}
			if insideBrackets(line, loc[0], loc[1]) || isShiftAmount(line, loc[0]) {
				continue
			}
			value, err := strconv.ParseUint(literal, 0, 64)
			if err != nil {
				continue
			}

			if strings.Contains(lower, "delay") && value > delayConstantFloor {
				emit(n, review.SeverityInfo,
					fmt.Sprintf("Consider defining delay constant: %s", literal),
					fmt.Sprintf("#define DEVICE_RESET_DELAY_MS %s", literal))
			}
			if value > namedConstantFloor && !strings.Contains(lower, "define") {
				emit(n, review.SeverityInfo,
					fmt.Sprintf("Large number might need a constant: %s", literal),
					fmt.Sprintf("Consider: #define DEVICE_REG_VALUE %s", literal))
			}
		}
	}
}

// insideBrackets reports whether the span sits between an opening and
// closing index bracket on the line.
func insideBrackets(line string, start, end int) bool {
	return strings.LastIndex(line[:start], "[") >= 0 && strings.Contains(line[end:], "]")
}

// isShiftAmount reports whether the literal is the right-hand operand of a
// shift operator.
func isShiftAmount(line string, start int) bool {
	before := strings.TrimRight(line[:start], " \t")
	return strings.HasSuffix(before, "<<") || strings.HasSuffix(before, ">>")
}
