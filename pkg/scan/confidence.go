package scan

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/coolbeans/actscan/pkg/markup"
	"gopkg.in/yaml.v3"
)

// minAverageBodyLength is the average article body length above which the
// content signal fires.
const minAverageBodyLength = 50

// metadataSniffWindow is how much leading document text is examined for the
// act type and number.
const metadataSniffWindow = 600

// Signals are the raw quality indicators counted by the scanner and
// consumed by the confidence estimator.
type Signals struct {
	ArticleCount  int     `json:"article_count"`
	HasChapters   bool    `json:"has_chapters"`
	HasSections   bool    `json:"has_sections"`
	AvgBodyLength float64 `json:"avg_body_length"`
	ActType       string  `json:"act_type,omitempty"`
	ActNumber     string  `json:"act_number,omitempty"`
}

// Weights are the confidence term weights. They are configuration, not
// algorithm: tuning them never touches the estimator itself.
type Weights struct {
	Articles  float64 `yaml:"articles" json:"articles"`
	Structure float64 `yaml:"structure" json:"structure"`
	Content   float64 `yaml:"content" json:"content"`
	Metadata  float64 `yaml:"metadata" json:"metadata"`
}

// DefaultWeights returns the standard weighting: articles dominate, with
// structure, content and metadata as secondary signals.
func DefaultWeights() Weights {
	return Weights{Articles: 0.5, Structure: 0.2, Content: 0.2, Metadata: 0.1}
}

// LoadWeights reads a YAML weight override.
func LoadWeights(r io.Reader) (Weights, error) {
	weights := DefaultWeights()
	if err := yaml.NewDecoder(r).Decode(&weights); err != nil {
		return Weights{}, fmt.Errorf("decoding weights: %w", err)
	}
	return weights, nil
}

// Estimator scores an extraction result from its raw signals.
type Estimator struct {
	weights Weights
}

// NewEstimator creates an estimator with the given term weights.
func NewEstimator(weights Weights) *Estimator {
	return &Estimator{weights: weights}
}

// Estimate computes the weighted confidence score in [0, 1]. Each term is
// all or nothing: a signal either contributes its full weight or zero. The
// sum is normalized by the weight total, so a fully satisfied document
// scores exactly 1.
func (e *Estimator) Estimate(sig Signals) float64 {
	total := e.weights.Articles + e.weights.Structure + e.weights.Content + e.weights.Metadata
	if total <= 0 {
		return 0
	}
	fired := 0.0
	if sig.ArticleCount > 0 {
		fired += e.weights.Articles
	}
	if sig.HasChapters || sig.HasSections {
		fired += e.weights.Structure
	}
	if sig.AvgBodyLength > minAverageBodyLength {
		fired += e.weights.Content
	}
	if sig.ActType != "" && sig.ActNumber != "" {
		fired += e.weights.Metadata
	}
	return fired / total
}

var (
	// No trailing word-boundary assertion: it is ASCII-only and fails
	// after the diacritic endings of ORDONANȚĂ and NORMĂ, and "LEGEA"
	// should count as LEGE anyway.
	actTypePattern   = regexp.MustCompile(`(?i)\b(ORDONANȚĂ DE URGENȚĂ|ORDONANTA DE URGENTA|ORDONANȚĂ|ORDONANTA|HOTĂRÂRE|HOTARARE|REGULAMENT|DECIZIE|NORMĂ|NORMA|ORDIN|LEGE)`)
	actNumberPattern = regexp.MustCompile(`(?i)\bnr\.?\s*(\d+(?:/\d{2,4})?)`)
)

// collectSignals gathers the raw quality signals after a completed scan,
// sniffing the act type and number from the document's leading text.
func collectSignals(res *Result, root *markup.Node, state *scanState) Signals {
	sig := Signals{
		ArticleCount: len(res.Articles),
		HasChapters:  state.sawChapter,
		HasSections:  state.sawSection,
	}

	if len(res.Articles) > 0 {
		totalLength := 0
		for _, article := range res.Articles {
			totalLength += len([]rune(article.Text))
		}
		sig.AvgBodyLength = float64(totalLength) / float64(len(res.Articles))
	}

	head := []rune(root.Text())
	if len(head) > metadataSniffWindow {
		head = head[:metadataSniffWindow]
	}
	leading := string(head)
	if m := actTypePattern.FindString(leading); m != "" {
		sig.ActType = strings.ToUpper(m)
	}
	if m := actNumberPattern.FindStringSubmatch(leading); m != nil {
		sig.ActNumber = m[1]
	}
	return sig
}
