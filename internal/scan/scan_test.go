package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drvaudit/internal/review"
)

func issuesIn(issues []review.Issue, cat review.Category) []review.Issue {
	var out []review.Issue
	for _, is := range issues {
		if is.Category == cat {
			out = append(out, is)
		}
	}
	return out
}

func TestScanDeterministic(t *testing.T) {
	content := "/*\n * @brief\n */\nvoid max17616_reset(struct max17616_dev *dev)\n{\n" +
		"\tno_os_spi_write(dev->spi, buf, 2);\n\tval |= (1 << 3);\n\tx = 300;\n}\n"
	first := Scan("drivers/power/max17616/max17616.c", content)
	second := Scan("drivers/power/max17616/max17616.c", content)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestScanEmptyContent(t *testing.T) {
	assert.Empty(t, Scan("drivers/max17616.c", ""))
}

func TestScanClosedTaxonomyAndOrigin(t *testing.T) {
	content := "int32_t foo_read(void);\n#define CTRL_REG1 0x10\nx = 300;\nptr = (uint32_t *)buf;\n"
	for _, is := range Scan("drivers/max17616.h", content) {
		assert.True(t, is.Category.Valid(), "invalid category %v", is.Category)
		assert.Equal(t, review.OriginHeuristic, is.Origin)
	}
}

func TestScanSortedByLine(t *testing.T) {
	content := "x = 300;\n\nval |= (1 << 3);\n\ny = 999;\n"
	issues := Scan("drivers/adc.c", content)
	for i := 1; i < len(issues); i++ {
		assert.LessOrEqual(t, issues[i-1].Location.Line, issues[i].Location.Line)
	}
}

// One error-handling trigger and one documentation gap must yield exactly
// one issue per category, never duplicates across detectors.
func TestScanNoDoubleCount(t *testing.T) {
	content := "/*\n * @brief\n */\nvoid max17616_reset(struct max17616_dev *dev)\n{\n" +
		"\tno_os_spi_write(dev->spi, buf, 2);\n}\n"
	issues := Scan("drivers/power/max17616/max17616.c", content)

	eh := issuesIn(issues, review.CategoryErrorHandling)
	require.Len(t, eh, 1)
	assert.Equal(t, 6, eh[0].Location.Line)

	doc := issuesIn(issues, review.CategoryDocumentation)
	require.Len(t, doc, 1)
	assert.Equal(t, 2, doc[0].Location.Line)
}

func TestScanDedupPerLineAndCategory(t *testing.T) {
	// CTRL_REG1 violates both the device-prefix rule and the bare-register
	// rule; only one naming issue may surface for the line.
	content := "#define CTRL_REG1 0x10\n"
	issues := Scan("drivers/max17616.h", content)

	type key struct {
		line int
		cat  review.Category
	}
	seen := make(map[key]int)
	for _, is := range issues {
		seen[key{is.Location.Line, is.Category}]++
	}
	for k, count := range seen {
		assert.Equal(t, 1, count, "duplicate issues for %+v", k)
	}
}

func TestErrorHandlingUncheckedCall(t *testing.T) {
	issues := Scan("drivers/max17616.c", "no_os_spi_write(desc, buf, 2);\n")
	eh := issuesIn(issues, review.CategoryErrorHandling)
	require.Len(t, eh, 1)
	assert.Contains(t, eh[0].Message, "without return value check")
}

func TestErrorHandlingFireAndForgetAllowed(t *testing.T) {
	for _, line := range []string{
		"no_os_mdelay(5);\n",
		"no_os_udelay(10);\n",
		"no_os_free(buf);\n",
	} {
		issues := Scan("drivers/max17616.c", line)
		assert.Empty(t, issuesIn(issues, review.CategoryErrorHandling), "line %q", line)
	}
}

func TestErrorHandlingCapturedCallAllowed(t *testing.T) {
	issues := Scan("drivers/max17616.c", "ret = no_os_gpio_get(&desc, param);\n")
	assert.Empty(t, issuesIn(issues, review.CategoryErrorHandling))
}

func TestErrorHandlingNullCheckWindow(t *testing.T) {
	flagged := "ret = no_os_spi_write(dev->spi_desc, buf, len);\n"
	issues := Scan("drivers/max17616.c", flagged)
	require.Len(t, issuesIn(issues, review.CategoryErrorHandling), 1)

	guarded := "if (!dev)\n\treturn -EINVAL;\nret = no_os_spi_write(dev->spi_desc, buf, len);\n"
	issues = Scan("drivers/max17616.c", guarded)
	assert.Empty(t, issuesIn(issues, review.CategoryErrorHandling))
}

func TestDocumentationMissingDoxygen(t *testing.T) {
	content := "int32_t max17616_read(struct max17616_dev *dev);\n"
	issues := Scan("drivers/max17616.h", content)
	doc := issuesIn(issues, review.CategoryDocumentation)
	require.Len(t, doc, 1)
	assert.Contains(t, doc[0].Message, "missing Doxygen")

	// The same declaration in a source file is not a documentation issue.
	issues = Scan("drivers/max17616.c", content)
	assert.Empty(t, issuesIn(issues, review.CategoryDocumentation))
}

func TestDocumentationDoxygenPresent(t *testing.T) {
	content := "/** @brief Reads a register. */\nint32_t max17616_read(struct max17616_dev *dev);\n"
	issues := Scan("drivers/max17616.h", content)
	assert.Empty(t, issuesIn(issues, review.CategoryDocumentation))
}

func TestDocumentationIncompleteBrief(t *testing.T) {
	content := "/*\n * @brief\n */\n"
	issues := Scan("drivers/max17616.c", content)
	doc := issuesIn(issues, review.CategoryDocumentation)
	require.Len(t, doc, 1)
	assert.Equal(t, 2, doc[0].Location.Line)
	assert.Equal(t, review.SeverityInfo, doc[0].Severity)
}

// A header whose first 10 lines carry neither guard form produces exactly
// one header-guard issue, at line 1.
func TestHeaderGuardMissing(t *testing.T) {
	content := "#include \"no_os_util.h\"\n\nstruct mydev_dev;\n"
	issues := Scan("include/mydev.h", content)
	hg := issuesIn(issues, review.CategoryHeaderGuards)
	require.Len(t, hg, 1)
	assert.Equal(t, 1, hg[0].Location.Line)
	assert.Contains(t, hg[0].Suggestion, "__MYDEV_H__")
}

func TestHeaderGuardPresent(t *testing.T) {
	content := "#ifndef __MYDEV_H__\n#define __MYDEV_H__\n\n#endif\n"
	issues := Scan("include/mydev.h", content)
	assert.Empty(t, issuesIn(issues, review.CategoryHeaderGuards))
}

func TestHeaderGuardNotCheckedForSources(t *testing.T) {
	issues := Scan("drivers/mydev.c", "static int x;\n")
	assert.Empty(t, issuesIn(issues, review.CategoryHeaderGuards))
}

func TestExpectedGuard(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"mydev.h", "__MYDEV_H__"},
		{"drivers/power/max17616.h", "__MAX17616_H__"},
		{"mydev-regs.h", "__MYDEV_REGS_H__"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpectedGuard(tt.path), "path %s", tt.path)
	}
}

func TestMissingIncludeForStructUse(t *testing.T) {
	content := "#ifndef __MYDEV_H__\n#define __MYDEV_H__\nstruct mydev_dev {\n\tstruct no_os_spi_desc *spi;\n};\n#endif\n"
	issues := Scan("include/mydev.h", content)
	hg := issuesIn(issues, review.CategoryHeaderGuards)
	require.Len(t, hg, 1)
	assert.Equal(t, 4, hg[0].Location.Line)
	assert.Contains(t, hg[0].Suggestion, "no_os_spi.h")
}

func TestIncludePresentNotFlagged(t *testing.T) {
	content := "#ifndef __MYDEV_H__\n#define __MYDEV_H__\n#include \"no_os_spi.h\"\nstruct no_os_spi_desc *spi;\n#endif\n"
	issues := Scan("include/mydev.h", content)
	assert.Empty(t, issuesIn(issues, review.CategoryHeaderGuards))
}

func TestSourceIncludeRules(t *testing.T) {
	content := "void f(void)\n{\n\tdev = no_os_calloc(1, sizeof(*dev));\n}\n"
	issues := Scan("drivers/mydev.c", content)
	hg := issuesIn(issues, review.CategoryHeaderGuards)
	require.Len(t, hg, 1)
	assert.Contains(t, hg[0].Suggestion, "no_os_alloc.h")
}

// A #define line is never a magic-number candidate; the same literal in an
// assignment is.
func TestMagicNumberDefineVersusUse(t *testing.T) {
	issues := Scan("drivers/mydev.c", "#define DEVICE_THRESHOLD 300\n")
	assert.Empty(t, issuesIn(issues, review.CategoryMagicNumbers))

	issues = Scan("drivers/mydev.c", "x = 300;\n")
	mn := issuesIn(issues, review.CategoryMagicNumbers)
	require.Len(t, mn, 1)
	assert.Contains(t, mn[0].Message, "300")
	assert.Contains(t, mn[0].Message, "constant")
}

func TestMagicNumberAllowList(t *testing.T) {
	issues := Scan("drivers/mydev.c", "a = 0; b = 1; c = 100; d = 1000; e = 0xFF;\n")
	assert.Empty(t, issuesIn(issues, review.CategoryMagicNumbers))
}

func TestMagicNumberSkipsIndexAndShift(t *testing.T) {
	issues := Scan("drivers/mydev.c", "v = buf[300];\n")
	assert.Empty(t, issuesIn(issues, review.CategoryMagicNumbers))

	issues = Scan("drivers/mydev.c", "v = x << 300;\n")
	assert.Empty(t, issuesIn(issues, review.CategoryMagicNumbers))
}

func TestMagicNumberSkipsCommentsAndStrings(t *testing.T) {
	issues := Scan("drivers/mydev.c", "x = 300; // raise to 400 later\n")
	assert.Empty(t, issuesIn(issues, review.CategoryMagicNumbers))

	issues = Scan("drivers/mydev.c", "printf(\"val 300\");\n")
	assert.Empty(t, issuesIn(issues, review.CategoryMagicNumbers))
}

func TestMagicNumberDelayCandidate(t *testing.T) {
	issues := Scan("drivers/mydev.c", "no_os_mdelay(250);\n")
	mn := issuesIn(issues, review.CategoryMagicNumbers)
	require.Len(t, mn, 1)
	assert.Contains(t, mn[0].Message, "delay constant")

	// Small delays stay quiet.
	issues = Scan("drivers/mydev.c", "no_os_mdelay(5);\n")
	assert.Empty(t, issuesIn(issues, review.CategoryMagicNumbers))
}

func TestMagicNumberHexLiteral(t *testing.T) {
	issues := Scan("drivers/mydev.c", "reg = 0x1234;\n")
	mn := issuesIn(issues, review.CategoryMagicNumbers)
	require.Len(t, mn, 1)
	assert.Contains(t, mn[0].Message, "0x1234")
}

func TestTypeSafetyPointerCast(t *testing.T) {
	issues := Scan("drivers/mydev.c", "p = (uint32_t *)buf;\n")
	ts := issuesIn(issues, review.CategoryTypeSafety)
	require.Len(t, ts, 1)
	assert.Contains(t, ts[0].Message, "pointer cast")
}

func TestTypeSafetySignedSizeofCompare(t *testing.T) {
	issues := Scan("drivers/mydev.c", "if (int_count < sizeof(buf))\n")
	ts := issuesIn(issues, review.CategoryTypeSafety)
	require.Len(t, ts, 1)
	assert.Contains(t, ts[0].Message, "sizeof")
}

func TestNamingDevicePrefix(t *testing.T) {
	issues := Scan("drivers/max17616.h", "#define CTRL_MODE 0x12345\n")
	nm := issuesIn(issues, review.CategoryNaming)
	require.Len(t, nm, 1)
	assert.Contains(t, nm[0].Suggestion, "MAX17616_CTRL_MODE")
}

func TestNamingExemptPrefixes(t *testing.T) {
	content := "#define NO_OS_HELPER 3000000\n#define __INTERNAL 4000000\n#define MAX17616_CTRL 5000000\n"
	issues := Scan("drivers/max17616.h", content)
	assert.Empty(t, issuesIn(issues, review.CategoryNaming))
}

func TestNamingBareRegisterSuffix(t *testing.T) {
	issues := Scan("drivers/max17616.h", "#define MAX17616_REG1 0x22222\n")
	nm := issuesIn(issues, review.CategoryNaming)
	require.Len(t, nm, 1)
	assert.Contains(t, nm[0].Message, "Non-descriptive")
}

func TestNamingFunctionPrefixHeaderOnly(t *testing.T) {
	content := "/** @brief Init. */\nint32_t foo_init(struct max17616_dev *dev);\n"
	issues := Scan("drivers/max17616.h", content)
	nm := issuesIn(issues, review.CategoryNaming)
	require.Len(t, nm, 1)
	assert.Contains(t, nm[0].Suggestion, "max17616_foo_init")

	// Same line in a source file: no function naming check.
	issues = Scan("drivers/max17616.c", content)
	assert.Empty(t, issuesIn(issues, review.CategoryNaming))
}

func TestNamingUnknownDeviceSkipped(t *testing.T) {
	issues := Scan("util/helpers.c", "#define SOME_HELPER 123456\n")
	assert.Empty(t, issuesIn(issues, review.CategoryNaming))
}

func TestBitOpsSingleBitShift(t *testing.T) {
	issues := Scan("drivers/mydev.c", "val |= (1 << 3);\n")
	bo := issuesIn(issues, review.CategoryBitOps)
	require.Len(t, bo, 1)
	assert.Contains(t, bo[0].Message, "NO_OS_BIT(3)")
}

func TestBitOpsGenmaskIdiom(t *testing.T) {
	issues := Scan("drivers/mydev.c", "mask = ((1 << 4) - 1) << 2;\n")
	bo := issuesIn(issues, review.CategoryBitOps)
	require.NotEmpty(t, bo)
	assert.Contains(t, bo[0].Message, "NO_OS_GENMASK")
}

func TestBitOpsFieldPrepAndGet(t *testing.T) {
	issues := Scan("drivers/mydev.c", "reg = (val << 4) & CTRL_MASK;\n")
	bo := issuesIn(issues, review.CategoryBitOps)
	require.NotEmpty(t, bo)
	assert.Contains(t, bo[0].Message, "no_os_field_prep")

	issues = Scan("drivers/mydev.c", "val = (reg & CTRL_MASK) >> 4;\n")
	bo = issuesIn(issues, review.CategoryBitOps)
	require.NotEmpty(t, bo)
	assert.Contains(t, bo[0].Message, "no_os_field_get")
}

func TestBitOpsMaskDefine(t *testing.T) {
	issues := Scan("drivers/max17616.h", "#define MAX17616_CTRL_MSK 0x07\n")
	bo := issuesIn(issues, review.CategoryBitOps)
	require.Len(t, bo, 1)
	assert.Contains(t, bo[0].Message, "NO_OS_GENMASK(2, 0)")
}

func TestBitOpsSingleBitDefine(t *testing.T) {
	issues := Scan("drivers/max17616.h", "#define MAX17616_STATUS_BIT 0x10\n")
	bo := issuesIn(issues, review.CategoryBitOps)
	require.Len(t, bo, 1)
	assert.Contains(t, bo[0].Message, "NO_OS_BIT(4)")
}

func TestBitOpsSkipsComments(t *testing.T) {
	issues := Scan("drivers/mydev.c", "/* use (1 << 3) here */\n")
	assert.Empty(t, issuesIn(issues, review.CategoryBitOps))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindHeader, KindOf("a/b/mydev.h"))
	assert.Equal(t, KindSource, KindOf("a/b/mydev.c"))
	assert.Equal(t, KindOther, KindOf("a/b/Makefile"))
}
