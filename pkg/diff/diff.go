// Package diff classifies the articles of two versions of the same act as
// added, modified, deleted or unchanged, to drive re-annotation. Matching
// runs in two passes, by label first and by ordinal second, so upstream
// renumbering does not masquerade as wholesale deletion.
package diff

import (
	"encoding/json"

	"github.com/google/uuid"
)

// DefaultThreshold is the similarity at or above which a literal text
// difference is treated as insignificant drift. The boundary is exact:
// similarity below the threshold means Modified, at or above it Unchanged.
const DefaultThreshold = 0.95

// ArticleVersion is one article as seen in a single version of an act,
// typically rehydrated from storage or freshly produced by a scan.
type ArticleVersion struct {
	Ordinal int    `json:"ordinal"`
	Label   string `json:"label,omitempty"`
	Text    string `json:"text"`
}

// Classification is the change category assigned to one article.
type Classification int

const (
	// Added means the article exists only in the new version.
	Added Classification = iota
	// Modified means the matched texts differ below the threshold.
	Modified
	// Deleted means the article exists only in the old version.
	Deleted
	// Unchanged means the matched texts are identical or within the
	// threshold of each other.
	Unchanged
)

// String returns the string representation of a Classification.
func (c Classification) String() string {
	switch c {
	case Added:
		return "ADDED"
	case Modified:
		return "MODIFIED"
	case Deleted:
		return "DELETED"
	case Unchanged:
		return "UNCHANGED"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON implements json.Marshaler for Classification.
func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// MatchKey names which key matched an article pair.
type MatchKey string

const (
	// MatchByLabel means the pair was matched on the parsed label.
	MatchByLabel MatchKey = "label"
	// MatchByOrdinal means the pair was matched on document position.
	MatchByOrdinal MatchKey = "ordinal"
)

// Change is the classification of one article across the two versions.
type Change struct {
	Type      Classification `json:"type"`
	MatchedBy MatchKey       `json:"matched_by,omitempty"`
	Label     string         `json:"label,omitempty"`
	Ordinal   int            `json:"ordinal,omitempty"`
	OldText   string         `json:"old_text,omitempty"`
	NewText   string         `json:"new_text,omitempty"`
	Score     float64        `json:"score,omitempty"`
}

// Summary aggregates the classification counts.
type Summary struct {
	Added     int `json:"added"`
	Modified  int `json:"modified"`
	Deleted   int `json:"deleted"`
	Unchanged int `json:"unchanged"`
}

// NeedsRelabeling is the number of articles queued for re-annotation:
// everything added or modified.
func (s Summary) NeedsRelabeling() int {
	return s.Added + s.Modified
}

// Report is the full outcome of one comparison. The ID lets the versioning
// collaborator key its rows.
type Report struct {
	ID      uuid.UUID `json:"id"`
	Changes []Change  `json:"changes"`
	Summary Summary   `json:"summary"`
}

// Options tune a comparison. The zero value means the default threshold and
// the standard matching-blocks similarity.
type Options struct {
	Threshold  float64
	Similarity func(a, b string) float64
}

// Compare classifies every article across the two collections. Every input,
// including empty collections, yields a well-defined report: all-Added,
// all-Deleted, or empty.
func Compare(oldArticles, newArticles []ArticleVersion, opts *Options) *Report {
	threshold := DefaultThreshold
	similarity := Similarity
	if opts != nil {
		if opts.Threshold > 0 {
			threshold = opts.Threshold
		}
		if opts.Similarity != nil {
			similarity = opts.Similarity
		}
	}

	oldMatched := make([]bool, len(oldArticles))
	newMatched := make([]bool, len(newArticles))

	// First occurrence wins when labels repeat; duplicates fall through to
	// the ordinal pass.
	newByLabel := make(map[string]int)
	newByOrdinal := make(map[int]int)
	for i, article := range newArticles {
		if article.Label != "" {
			if _, seen := newByLabel[article.Label]; !seen {
				newByLabel[article.Label] = i
			}
		}
		newByOrdinal[article.Ordinal] = i
	}

	report := &Report{ID: uuid.New(), Changes: []Change{}}

	classify := func(base, target ArticleVersion, key MatchKey) {
		change := Change{
			MatchedBy: key,
			Label:     target.Label,
			Ordinal:   target.Ordinal,
		}
		if base.Text == target.Text {
			change.Type = Unchanged
			change.Score = 1.0
		} else if score := similarity(base.Text, target.Text); score < threshold {
			change.Type = Modified
			change.Score = score
			change.OldText = base.Text
			change.NewText = target.Text
		} else {
			change.Type = Unchanged
			change.Score = score
		}
		report.Changes = append(report.Changes, change)
	}

	// Pass 1: label match.
	for i, old := range oldArticles {
		if old.Label == "" {
			continue
		}
		j, ok := newByLabel[old.Label]
		if !ok || newMatched[j] {
			continue
		}
		oldMatched[i] = true
		newMatched[j] = true
		classify(old, newArticles[j], MatchByLabel)
	}

	// Pass 2: ordinal match among the leftovers.
	for i, old := range oldArticles {
		if oldMatched[i] {
			continue
		}
		j, ok := newByOrdinal[old.Ordinal]
		if !ok || newMatched[j] {
			continue
		}
		oldMatched[i] = true
		newMatched[j] = true
		classify(old, newArticles[j], MatchByOrdinal)
	}

	for i, old := range oldArticles {
		if oldMatched[i] {
			continue
		}
		report.Changes = append(report.Changes, Change{
			Type:    Deleted,
			Label:   old.Label,
			Ordinal: old.Ordinal,
			OldText: old.Text,
		})
	}
	for j, article := range newArticles {
		if newMatched[j] {
			continue
		}
		report.Changes = append(report.Changes, Change{
			Type:    Added,
			Label:   article.Label,
			Ordinal: article.Ordinal,
			NewText: article.Text,
		})
	}

	for _, change := range report.Changes {
		switch change.Type {
		case Added:
			report.Summary.Added++
		case Modified:
			report.Summary.Modified++
		case Deleted:
			report.Summary.Deleted++
		case Unchanged:
			report.Summary.Unchanged++
		}
	}
	return report
}
