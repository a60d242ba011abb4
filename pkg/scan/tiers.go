package scan

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/coolbeans/actscan/pkg/markup"
)

// Tier identifies which extraction strategy produced an article's text.
// The tiers are tried in strict priority order; the first applicable one
// wins.
type Tier int

const (
	// TierNone means no body container was seen yet.
	TierNone Tier = iota
	// TierIntroPoints extracted an introductory paragraph followed by
	// numbered enumeration points.
	TierIntroPoints
	// TierAlineaClause extracted numbered alineas, each possibly holding
	// lettered clauses.
	TierAlineaClause
	// TierBareClauses extracted a bare paragraph with a lettered
	// enumeration directly under it.
	TierBareClauses
	// TierRawFallback joined all text nodes verbatim.
	TierRawFallback
)

var tierNames = map[Tier]string{
	TierNone:         "none",
	TierIntroPoints:  "intro_points",
	TierAlineaClause: "alinea_clause",
	TierBareClauses:  "bare_clauses",
	TierRawFallback:  "raw_fallback",
}

// String returns the stable name of the tier.
func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "unknown"
}

// MarshalJSON encodes the tier by name.
func (t Tier) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a tier from its name.
func (t *Tier) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for tier, n := range tierNames {
		if n == name {
			*t = tier
			return nil
		}
	}
	*t = TierNone
	return nil
}

var (
	pointLabelPattern   = regexp.MustCompile(`^(\d+\.|\(\d+\)|\d+\))\s*`)
	alineaNumberPattern = regexp.MustCompile(`^\(\d+(?:\^\d+)?\)`)
	clauseLetterPattern = regexp.MustCompile(`^([a-zăâîșț]{1,3})\s*\)\s*`)
)

// tierFunc tries one extraction strategy against an article body. It
// reports ok=false when the strategy does not apply, handing over to the
// next tier.
type tierFunc func(body *markup.Node, vocab markup.Vocabulary) (string, bool)

var tiers = []struct {
	tier Tier
	fn   tierFunc
}{
	{TierIntroPoints, tierIntroPoints},
	{TierAlineaClause, tierAlineaClause},
	{TierBareClauses, tierBareClauses},
}

// extractBody extracts the content of one article body container through
// the tier chain. Bodies nested beyond the depth guard skip straight to the
// raw fallback instead of recursing through pathological structure.
func extractBody(body *markup.Node, vocab markup.Vocabulary) (string, Tier) {
	if body.Depth(markup.MaxNestingDepth) <= markup.MaxNestingDepth {
		for _, t := range tiers {
			if text, ok := t.fn(body, vocab); ok {
				return text, t.tier
			}
		}
	}
	return strings.Join(normalizeLines(body.RawLines()), "\n"), TierRawFallback
}

// tierIntroPoints handles a paragraph container holding numbered
// enumeration points: the paragraph's own text becomes an introductory
// line, followed by one line per point.
func tierIntroPoints(body *markup.Node, vocab markup.Vocabulary) (string, bool) {
	paragraphs := body.FindAll(vocab, markup.KindIntroParagraph)
	applicable := false
	for _, p := range paragraphs {
		if len(p.FindAll(vocab, markup.KindEnumPoint)) > 0 {
			applicable = true
			break
		}
	}
	if !applicable {
		return "", false
	}

	var lines []string
	for _, p := range paragraphs {
		points := p.FindAll(vocab, markup.KindEnumPoint)
		if len(points) == 0 {
			if text := markup.NormalizeReferences(p.Text()); text != "" {
				lines = append(lines, text)
			}
			continue
		}
		intro := markup.NormalizeReferences(p.DirectText(vocab, markup.KindEnumPoint))
		if intro != "" {
			lines = append(lines, intro)
		}
		for _, point := range points {
			text := markup.NormalizeReferences(point.Text())
			if text == "" {
				continue
			}
			if m := pointLabelPattern.FindString(text); m != "" {
				lines = append(lines, strings.TrimSpace(m)+" "+strings.TrimSpace(text[len(m):]))
			} else {
				lines = append(lines, text)
			}
		}
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

// tierAlineaClause handles an article body structured as numbered alineas.
// Each alinea emits its number as a standalone bolded line followed by its
// text; clauses nested in an alinea emit an introductory run followed by
// indented bolded clause lines.
func tierAlineaClause(body *markup.Node, vocab markup.Vocabulary) (string, bool) {
	alineas := body.FindAll(vocab, markup.KindAlinea)
	if len(alineas) == 0 {
		return "", false
	}

	var lines []string
	for _, alinea := range alineas {
		lines = append(lines, renderAlinea(alinea, vocab)...)
	}
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

func renderAlinea(alinea *markup.Node, vocab markup.Vocabulary) []string {
	number := ""
	if nums := alinea.FindAll(vocab, markup.KindAlineaNumber); len(nums) > 0 {
		number = nums[0].Text()
	}
	content := alinea
	if bodies := alinea.FindAll(vocab, markup.KindAlineaBody); len(bodies) > 0 {
		content = bodies[0]
	}

	clauses := content.FindAll(vocab, markup.KindClause)
	intro := markup.NormalizeReferences(content.DirectText(vocab,
		markup.KindAlineaNumber, markup.KindClause))
	if number == "" {
		if m := alineaNumberPattern.FindString(intro); m != "" {
			number = m
			intro = strings.TrimSpace(intro[len(m):])
		}
	}

	var lines []string
	if number != "" {
		lines = append(lines, "**"+number+"**")
	}
	if intro != "" {
		lines = append(lines, intro)
	}
	lines = append(lines, renderClauses(clauses, vocab)...)
	return lines
}

// tierBareClauses handles lettered clauses directly under a paragraph, with
// no alinea structure. Clause formatting fires only when a clause literally
// labeled "a)" exists; a lone reference such as "lit. d)" with no preceding
// "a)" is a cross-reference, not an enumeration, and stays inline.
func tierBareClauses(body *markup.Node, vocab markup.Vocabulary) (string, bool) {
	clauses := body.FindAll(vocab, markup.KindClause)
	if len(clauses) == 0 {
		return "", false
	}

	hasFirstLetter := false
	for _, clause := range clauses {
		if clauseLetter(clause, vocab) == "a" {
			hasFirstLetter = true
			break
		}
	}
	if !hasFirstLetter {
		text := markup.NormalizeReferences(body.Text())
		if text == "" {
			return "", false
		}
		return text, true
	}

	var lines []string
	if intro := markup.NormalizeReferences(body.DirectText(vocab, markup.KindClause)); intro != "" {
		lines = append(lines, intro)
	}
	lines = append(lines, renderClauses(clauses, vocab)...)
	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

func renderClauses(clauses []*markup.Node, vocab markup.Vocabulary) []string {
	var lines []string
	for _, clause := range clauses {
		letter := clauseLetter(clause, vocab)
		text := clauseText(clause, vocab)
		if letter == "" && text == "" {
			continue
		}
		if letter == "" {
			lines = append(lines, "  "+text)
			continue
		}
		line := "  **" + letter + ")**"
		if text != "" {
			line += " " + text
		}
		lines = append(lines, line)
	}
	return lines
}

// clauseLetter returns the enumeration letter of a clause, without the
// closing parenthesis.
func clauseLetter(clause *markup.Node, vocab markup.Vocabulary) string {
	if letters := clause.FindAll(vocab, markup.KindClauseLetter); len(letters) > 0 {
		return strings.TrimSpace(strings.TrimSuffix(letters[0].Text(), ")"))
	}
	if m := clauseLetterPattern.FindStringSubmatch(clause.Text()); m != nil {
		return m[1]
	}
	return ""
}

// clauseText returns the body text of a clause, without its leading letter
// token.
func clauseText(clause *markup.Node, vocab markup.Vocabulary) string {
	if bodies := clause.FindAll(vocab, markup.KindClauseBody); len(bodies) > 0 {
		return markup.NormalizeReferences(bodies[0].Text())
	}
	text := clause.DirectText(vocab, markup.KindClauseLetter)
	if m := clauseLetterPattern.FindString(text); m != "" {
		text = text[len(m):]
	}
	return markup.NormalizeReferences(strings.TrimSpace(text))
}

func normalizeLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, markup.NormalizeReferences(line))
	}
	return out
}
