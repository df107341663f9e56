package scan

import (
	"fmt"
	"math/bits"
	"regexp"
	"strconv"
	"strings"

	"drvaudit/internal/review"
)

var (
	bitShiftRe  = regexp.MustCompile(`\(1\s*<<\s*(\d+)\)`)
	fieldPrepRe = regexp.MustCompile(`\(\s*\w+\s*<<\s*\d+\s*\)\s*&\s*\w+`)
	fieldGetRe  = regexp.MustCompile(`\(\s*\w+\s*&\s*\w+\s*\)\s*>>\s*\d+`)
	hexDefineRe = regexp.MustCompile(`#define\s+(\w+)\s+(0x[0-9A-Fa-f]+)`)

	genmaskRes = []*regexp.Regexp{
		regexp.MustCompile(`\(\(1\s*<<\s*\d+\)\s*-\s*1\)\s*<<\s*\d+`), // ((1 << n) - 1) << m
		regexp.MustCompile(`0x[fF]+\s*<<\s*\d+`),                      // 0xFF << n
	}
)

// checkBitOperations flags hand-rolled bit idioms that have named helpers:
// single-bit shifts, contiguous field masks, and shift-and-mask field
// pack/unpack expressions.
func checkBitOperations(f *file, emit emitFunc) {
	for i, line := range f.lines {
		n := i + 1
		if !codeOnly(line) {
			continue
		}

		// The mask idioms embed (1 << n), so they must be recognized before
		// the single-bit check claims the line.
		for _, re := range genmaskRes {
			if re.MatchString(line) {
				emit(n, review.SeverityInfo,
					"Consider using NO_OS_GENMASK for bit field masks",
					"Use: NO_OS_GENMASK(high_bit, low_bit) for multi-bit fields")
				break
			}
		}

		if m := bitShiftRe.FindStringSubmatch(line); m != nil {
			emit(n, review.SeverityInfo,
				fmt.Sprintf("Use NO_OS_BIT(%s) instead of (1 << %s)", m[1], m[1]),
				fmt.Sprintf("Replace with: NO_OS_BIT(%s)", m[1]))
		}

		if fieldPrepRe.MatchString(line) {
			emit(n, review.SeverityInfo,
				"Consider using no_os_field_prep() for field preparation",
				"Use: no_os_field_prep(MASK, value)")
		}
		if fieldGetRe.MatchString(line) {
			emit(n, review.SeverityInfo,
				"Consider using no_os_field_get() for field extraction",
				"Use: no_os_field_get(MASK, reg_value)")
		}

		if strings.Contains(line, "#define") {
			checkHexDefine(line, n, emit)
		}
	}
}

// checkHexDefine inspects #define NAME 0x... lines for mask and single-bit
// values that should use the named helpers.
func checkHexDefine(line string, n int, emit emitFunc) {
	m := hexDefineRe.FindStringSubmatch(line)
	if m == nil {
		return
	}
	name := m[1]
	value, err := strconv.ParseUint(m[2], 0, 64)
	if err != nil || value == 0 {
		return
	}

	// Contiguous mask from bit 0: 0x07, 0x3F, ...
	if value&(value+1) == 0 {
		highBit := bits.Len64(value) - 1
		if highBit > 0 && strings.Contains(name, "_MSK") {
			emit(n, review.SeverityInfo,
				fmt.Sprintf("Consider using NO_OS_GENMASK(%d, 0) for mask definition", highBit),
				fmt.Sprintf("#define %s NO_OS_GENMASK(%d, 0)", name, highBit))
		}
	}

	// Single bit: exactly one bit set.
	if value&(value-1) == 0 {
		pos := bits.Len64(value) - 1
		if strings.Contains(name, "BIT") || strings.Contains(name, "MSK") {
			emit(n, review.SeverityInfo,
				fmt.Sprintf("Consider using NO_OS_BIT(%d) for single bit definition", pos),
				fmt.Sprintf("#define %s NO_OS_BIT(%d)", name, pos))
		}
	}
}
