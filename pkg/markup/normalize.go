package markup

import "regexp"

var (
	// refKeywordPattern matches a cross-reference abbreviation glued to the
	// preceding word, e.g. "prevederileart. 5" or "conformlit. c)".
	refKeywordPattern = regexp.MustCompile(`([a-zA-ZăâîșțĂÂÎȘȚ])((?:alin|lit|cap|art|pct|sec|tit|par)\.)`)

	// parenGluePattern matches a closing enumeration parenthesis glued to a
	// following letter-and-parenthesis token, e.g. "a)b)".
	parenGluePattern = regexp.MustCompile(`\)([a-zăâîșț]\))`)

	// conjGluePattern matches a whole-word conjunction glued to a following
	// letter-and-parenthesis token, e.g. "șia)" or "saub)".
	conjGluePattern = regexp.MustCompile(`(^|[^a-zA-ZăâîșțĂÂÎȘȚ])(și|sau|la|cu|în|pentru)([a-zăâîșț]\))`)
)

// NormalizeReferences repairs tokens concatenated by upstream markup
// collapse, inserting the missing space before cross-reference keywords and
// before lettered enumeration tokens. It must run before any enumeration
// detection, or the literal-token heuristics ("a)", "lit.") will not fire.
func NormalizeReferences(s string) string {
	// Repeated until fixpoint: adjacent glued tokens share boundary
	// characters, so a single pass can leave work behind.
	for i := 0; i < 8; i++ {
		repaired := refKeywordPattern.ReplaceAllString(s, "$1 $2")
		repaired = parenGluePattern.ReplaceAllString(repaired, ") $1")
		repaired = conjGluePattern.ReplaceAllString(repaired, "$1$2 $3")
		if repaired == s {
			return s
		}
		s = repaired
	}
	return s
}
