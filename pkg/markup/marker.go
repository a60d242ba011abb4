package markup

import (
	"fmt"
	"io"
	"sort"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"
)

// MarkerKind identifies the structural role a tagged markup fragment plays
// in a legislative act. The set is closed: a new marker class in the source
// markup requires a new variant here, never ad hoc string matching in the
// scanner.
type MarkerKind int

const (
	// KindNone marks an element with no recognized structural role.
	KindNone MarkerKind = iota
	// KindTitleNumber is the number of a title (Roman numeral).
	KindTitleNumber
	// KindTitleName is the name line of a title.
	KindTitleName
	// KindChapterNumber is the number of a chapter.
	KindChapterNumber
	// KindChapterName is the name line of a chapter.
	KindChapterName
	// KindSectionNumber is the number of a section.
	KindSectionNumber
	// KindSectionName is the name line of a section.
	KindSectionName
	// KindSubsectionNumber is the number of a subsection.
	KindSubsectionNumber
	// KindSubsectionName is the name line of a subsection.
	KindSubsectionName
	// KindArticleHeading is an article heading ("Articolul 5").
	KindArticleHeading
	// KindArticleBody is the container holding one article's content.
	KindArticleBody
	// KindAlinea is a numbered sub-paragraph container within an article.
	KindAlinea
	// KindAlineaNumber is the number fragment of an alinea, e.g. "(1)".
	KindAlineaNumber
	// KindAlineaBody is the text fragment of an alinea.
	KindAlineaBody
	// KindClause is a lettered enumeration item container, e.g. "a) ...".
	KindClause
	// KindClauseLetter is the letter fragment of a clause, e.g. "a)".
	KindClauseLetter
	// KindClauseBody is the text fragment of a clause.
	KindClauseBody
	// KindEnumPoint is a numbered enumeration point inside a paragraph.
	KindEnumPoint
	// KindIntroParagraph is a plain paragraph container within a body.
	KindIntroParagraph
)

var markerKindNames = map[MarkerKind]string{
	KindNone:             "none",
	KindTitleNumber:      "title_number",
	KindTitleName:        "title_name",
	KindChapterNumber:    "chapter_number",
	KindChapterName:      "chapter_name",
	KindSectionNumber:    "section_number",
	KindSectionName:      "section_name",
	KindSubsectionNumber: "subsection_number",
	KindSubsectionName:   "subsection_name",
	KindArticleHeading:   "article_heading",
	KindArticleBody:      "article_body",
	KindAlinea:           "alinea",
	KindAlineaNumber:     "alinea_number",
	KindAlineaBody:       "alinea_body",
	KindClause:           "clause",
	KindClauseLetter:     "clause_letter",
	KindClauseBody:       "clause_body",
	KindEnumPoint:        "enum_point",
	KindIntroParagraph:   "intro_paragraph",
}

// String returns the stable configuration name of the marker kind.
func (k MarkerKind) String() string {
	if name, ok := markerKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseMarkerKind resolves a configuration name back to a MarkerKind.
func ParseMarkerKind(name string) (MarkerKind, error) {
	for kind, n := range markerKindNames {
		if n == name {
			return kind, nil
		}
	}
	return KindNone, fmt.Errorf("unknown marker kind %q", name)
}

// Marker is one recognized structural fragment in document order.
type Marker struct {
	Kind MarkerKind
	Node *Node
}

// Vocabulary maps markup class tokens to marker kinds. It is the versioned
// contract between the retrieval collaborator and the scanner.
type Vocabulary map[string]MarkerKind

// DefaultVocabulary returns the built-in tag-class vocabulary used by the
// official act portal markup.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		"S_TTL_NR":  KindTitleNumber,
		"S_TTL_DEN": KindTitleName,
		"S_CAP_NR":  KindChapterNumber,
		"S_CAP_DEN": KindChapterName,
		"S_SEC_NR":  KindSectionNumber,
		"S_SEC_DEN": KindSectionName,
		"S_SSC_NR":  KindSubsectionNumber,
		"S_SSC_DEN": KindSubsectionName,
		"S_ART_TTL": KindArticleHeading,
		"S_ART_BDY": KindArticleBody,
		"S_ALN":     KindAlinea,
		"S_ALN_TTL": KindAlineaNumber,
		"S_ALN_BDY": KindAlineaBody,
		"S_LIT":     KindClause,
		"S_LIT_TTL": KindClauseLetter,
		"S_LIT_BDY": KindClauseBody,
		"S_PCT":     KindEnumPoint,
		"S_PAR":     KindIntroParagraph,
	}
}

// LoadVocabulary reads a YAML vocabulary override mapping class tokens to
// marker kind names.
func LoadVocabulary(r io.Reader) (Vocabulary, error) {
	var raw map[string]string
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding vocabulary: %w", err)
	}
	vocab := make(Vocabulary, len(raw))
	for class, name := range raw {
		kind, err := ParseMarkerKind(name)
		if err != nil {
			return nil, fmt.Errorf("vocabulary class %q: %w", class, err)
		}
		vocab[class] = kind
	}
	return vocab, nil
}

// MarshalYAML renders the vocabulary as a class-to-kind-name mapping with
// stable key order, for the vocab export command.
func (v Vocabulary) MarshalYAML() (interface{}, error) {
	classes := make([]string, 0, len(v))
	for class := range v {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, class := range classes {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: class},
			&yaml.Node{Kind: yaml.ScalarNode, Value: v[class].String()},
		)
	}
	return node, nil
}

// Markers walks the document once, left to right, and returns every
// recognized structural marker in document order. It does not descend into
// a recognized marker, so an article body is reported as one marker and its
// nested alinea and clause markers are left for the body extractor.
func Markers(root *Node, vocab Vocabulary) []Marker {
	var out []Marker
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		wrapped := &Node{n: n}
		if kind := wrapped.Kind(vocab); kind != KindNone {
			out = append(out, Marker{Kind: kind, Node: wrapped})
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root.n)
	return out
}
