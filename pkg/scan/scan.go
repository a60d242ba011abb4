// Package scan turns semantically tagged act markup into an ordered list of
// article records. It walks the markup once, left to right, maintaining the
// nested hierarchical context, extracts each article body through a strict
// four-tier fallback chain, and scores the result with a weighted confidence
// estimate.
//
// The scanner never fails on malformed input: every data-quality problem
// degrades to a documented fallback and is reported as a Diagnostic. Each
// invocation owns its own Context, so distinct documents may be scanned
// concurrently.
package scan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/coolbeans/actscan/pkg/markup"
)

// MinContentLength is the minimum trimmed body length below which an
// article is flagged with a short-content diagnostic.
const MinContentLength = 10

// Article is one extracted article record. Ordinals are 1-based and assigned
// in document order; the label is the number parsed from the heading and may
// repeat, skip, or be absent.
type Article struct {
	Ordinal    int        `json:"ordinal"`
	Label      string     `json:"label,omitempty"`
	Breadcrumb Breadcrumb `json:"breadcrumb,omitzero"`
	Text       string     `json:"text"`
	Tier       Tier       `json:"tier"`
}

// Title returns the display title of the article, derived from the label
// when present and from the ordinal otherwise.
func (a Article) Title() string {
	if a.Label != "" {
		return "Articolul " + a.Label
	}
	return fmt.Sprintf("Articolul poz. %d", a.Ordinal)
}

// DiagnosticCode classifies a non-fatal quality issue found during a scan.
type DiagnosticCode string

const (
	// DiagNoContent reports a document with no recognizable markers.
	DiagNoContent DiagnosticCode = "no_content"
	// DiagDuplicateLabel reports two articles sharing a parsed label.
	DiagDuplicateLabel DiagnosticCode = "duplicate_label"
	// DiagLabelGap reports a gap in the numeric label sequence.
	DiagLabelGap DiagnosticCode = "label_gap"
	// DiagShortContent reports an article body below MinContentLength.
	DiagShortContent DiagnosticCode = "short_content"
	// DiagDroppedEmpty reports article headings dropped because no body
	// text could be extracted even by the raw fallback.
	DiagDroppedEmpty DiagnosticCode = "dropped_empty"
)

// Diagnostic is one non-fatal quality issue. Diagnostics never abort a
// scan; the reporting collaborator decides whether they block processing.
type Diagnostic struct {
	Code    DiagnosticCode `json:"code"`
	Message string         `json:"message"`
}

// Result is the output of one scan invocation.
type Result struct {
	Articles    []Article    `json:"articles"`
	Confidence  float64      `json:"confidence"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
	Signals     Signals      `json:"signals"`
}

var articleLabelPattern = regexp.MustCompile(`\d+`)

// Scan extracts the article records from raw act markup using the default
// marker vocabulary. Only empty input returns an error (markup.ErrNoMarkup);
// malformed markup degrades through the fallback tiers instead.
func Scan(raw string) (*Result, error) {
	return ScanWithVocabulary(raw, markup.DefaultVocabulary())
}

// ScanWithVocabulary is Scan with an explicit tag-class vocabulary.
func ScanWithVocabulary(raw string, vocab markup.Vocabulary) (*Result, error) {
	root, err := markup.Parse(raw)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	markers := markup.Markers(root, vocab)
	if len(markers) == 0 {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Code:    DiagNoContent,
			Message: "no extractable elements",
		})
		return res, nil
	}

	state := &scanState{vocab: vocab}
	for _, m := range markers {
		state.apply(m, res)
	}
	state.flush(res)

	validateArticles(res)
	if len(state.dropped) > 0 {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Code: DiagDroppedEmpty,
			Message: fmt.Sprintf("dropped %d empty article(s): %s",
				len(state.dropped), strings.Join(state.dropped, ", ")),
		})
	}

	res.Signals = collectSignals(res, root, state)
	res.Confidence = NewEstimator(DefaultWeights()).Estimate(res.Signals)
	return res, nil
}

// scanState is the working state of one scan invocation.
type scanState struct {
	vocab markup.Vocabulary
	ctx   Context

	// open is the article opened by the last heading, pending its body.
	open       *Article
	openLines  []string
	sawChapter bool
	sawSection bool
	dropped    []string
}

func (s *scanState) apply(m markup.Marker, res *Result) {
	switch m.Kind {
	case markup.KindTitleNumber:
		s.ctx.StartTitle(m.Node.Text())
	case markup.KindTitleName:
		s.ctx.NameTitle(m.Node.Text())
	case markup.KindChapterNumber:
		s.sawChapter = true
		s.ctx.StartChapter(m.Node.Text())
	case markup.KindChapterName:
		s.sawChapter = true
		s.ctx.NameChapter(m.Node.Text())
	case markup.KindSectionNumber:
		s.sawSection = true
		s.ctx.StartSection(m.Node.Text())
	case markup.KindSectionName:
		s.sawSection = true
		s.ctx.NameSection(m.Node.Text())
	case markup.KindSubsectionNumber:
		s.ctx.StartSubsection(m.Node.Text())
	case markup.KindSubsectionName:
		s.ctx.NameSubsection(m.Node.Text())
	case markup.KindArticleHeading:
		s.flush(res)
		heading := m.Node.Text()
		s.open = &Article{
			Label:      articleLabelPattern.FindString(heading),
			Breadcrumb: s.ctx.Snapshot(),
		}
	case markup.KindArticleBody:
		if s.open == nil {
			// A body with no preceding heading has nothing to attach
			// to; skip it rather than invent an article.
			return
		}
		text, tier := extractBody(m.Node, s.vocab)
		if text != "" {
			s.openLines = append(s.openLines, text)
		}
		if s.open.Tier == TierNone {
			s.open.Tier = tier
		}
	}
}

// flush finalizes the open article, if any. Articles whose body is empty
// even after the raw fallback are dropped: they are assumed to be
// mis-detected markers rather than real articles.
func (s *scanState) flush(res *Result) {
	if s.open == nil {
		return
	}
	article := s.open
	article.Text = strings.TrimSpace(strings.Join(s.openLines, "\n"))
	s.open = nil
	s.openLines = nil

	if article.Text == "" {
		label := article.Label
		if label == "" {
			label = "(fără număr)"
		}
		s.dropped = append(s.dropped, label)
		return
	}
	article.Ordinal = len(res.Articles) + 1
	res.Articles = append(res.Articles, *article)
}
