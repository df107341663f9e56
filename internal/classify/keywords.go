package classify

import "drvaudit/internal/review"

// Keyword is a single case-insensitive literal matched as a substring of a
// comment. Weight is the score it contributes, at most once per comment
// regardless of repetition.
type Keyword struct {
	Text   string
	Weight int
}

// defaultKeywords is the built-in comment rule table, distilled from six
// months of driver PR review threads. Every keyword carries weight 1;
// a rules pack can add weighted keywords on top.
//
// CategoryBitOps, CategoryOther, and CategoryUncategorized intentionally
// carry no comment keywords: bit-operation advice only comes out of the code
// scanner, and the last two are fallback buckets.
var defaultKeywords = map[review.Category][]string{
	review.CategoryErrorHandling: {
		"error", "return", "null", "check", "handle", "validation", "leak", "memory",
		"free", "malloc", "deallocation", "fail", "ret !=", "ret ==", "if (!", "errno",
	},
	review.CategoryDocumentation: {
		"comment", "documentation", "doc", "readme", "doxygen", "@brief", "@param",
		"@return", "document", "explain", "describe", "unclear", "missing comment",
	},
	review.CategoryHeaderGuards: {
		"header", "include", "guard", "#ifndef", "#define", "#include", "include order",
		"missing include", "circular include", "header guard",
	},
	review.CategoryMagicNumbers: {
		"magic number", "constant", "define", "#define", "hardcode", "literal",
		"magic", "hardcoded", "define this", "use define",
	},
	review.CategoryNaming: {
		"naming", "name", "convention", "prefix", "suffix", "rename", "variable name",
		"function name", "inconsistent", "should be named", "name should",
	},
	review.CategoryCodeStyle: {
		"style", "format", "indent", "spacing", "bracket", "brace", "astyle",
		"formatting", "whitespace", "line length", "indentation",
	},
	review.CategoryTypeSafety: {
		"cast", "casting", "type", "overflow", "underflow", "uint", "int", "float",
		"double", "size_t", "pointer", "alignment", "type safety",
	},
	review.CategoryPerformance: {
		"performance", "optimize", "speed", "memory", "leak", "efficiency",
		"slow", "fast", "memory usage", "cpu", "optimization",
	},
	review.CategorySecurity: {
		"security", "buffer overflow", "bounds check", "validation", "sanitize",
		"vulnerable", "exploit", "attack", "secure", "safety",
	},
	review.CategoryTesting: {
		"test", "testing", "unit test", "integration", "coverage", "assert",
		"verify", "validation", "test case",
	},
	review.CategoryPortability: {
		"platform", "compatibility", "portable", "cross-platform", "linux",
		"windows", "embedded", "architecture", "endian",
	},
	review.CategoryTypos: {
		"typo", "typos", "spelling", "grammar", "misspell", "correct spelling",
		"should be", "meant", "fix typo",
	},
	review.CategoryOrganization: {
		"organize", "structure", "refactor", "move", "separate", "split",
		"organize code", "code structure", "architecture",
	},
}

func defaultTable() map[review.Category][]Keyword {
	table := make(map[review.Category][]Keyword, len(defaultKeywords))
	for cat, words := range defaultKeywords {
		kws := make([]Keyword, len(words))
		for i, w := range words {
			kws[i] = Keyword{Text: w, Weight: 1}
		}
		table[cat] = kws
	}
	return table
}
