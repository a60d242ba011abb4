// Package markup provides the tagged-markup layer for legislative acts:
// lenient parsing of the source markup, the closed set of structural marker
// kinds, and the versioned tag-class vocabulary that binds markup classes to
// marker kinds.
package markup

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// ErrNoMarkup indicates the caller passed empty or whitespace-only input.
// Malformed markup is never an error: the parser accepts anything and the
// scanner degrades through its fallback tiers instead.
var ErrNoMarkup = errors.New("markup: empty input")

// MaxNestingDepth bounds how deep structural extraction follows nested
// elements inside an article body. Subtrees nested deeper than this are
// handled by the raw-text fallback instead of structural extraction.
const MaxNestingDepth = 64

// Node wraps a parsed markup element.
type Node struct {
	n *html.Node
}

// Parse parses raw act markup leniently and returns the document root.
// Only empty input fails; any malformed markup produces a best-effort tree.
func Parse(raw string) (*Node, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrNoMarkup
	}
	root, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		// html.Parse only fails on reader errors, which a string reader
		// cannot produce; guard anyway.
		return nil, fmt.Errorf("parsing markup: %w", err)
	}
	return &Node{n: root}, nil
}

// classTokens returns the class attribute of an element split into tokens.
func classTokens(n *html.Node) []string {
	if n.Type != html.ElementNode {
		return nil
	}
	for _, attr := range n.Attr {
		if attr.Key == "class" {
			return strings.Fields(attr.Val)
		}
	}
	return nil
}

// Kind returns the marker kind the vocabulary assigns to this node, or
// KindNone when no class token is in the vocabulary.
func (nd *Node) Kind(vocab Vocabulary) MarkerKind {
	for _, token := range classTokens(nd.n) {
		if kind, ok := vocab[token]; ok {
			return kind
		}
	}
	return KindNone
}

// Text returns the whitespace-normalized text content of the node and all
// of its descendants.
func (nd *Node) Text() string {
	var sb strings.Builder
	collectText(nd.n, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func collectText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, sb)
	}
}

// DirectText returns the whitespace-normalized text of the node excluding
// any descendant subtree whose marker kind is in exclude. It is used to
// separate introductory text from nested enumeration markers.
func (nd *Node) DirectText(vocab Vocabulary, exclude ...MarkerKind) string {
	skip := make(map[MarkerKind]bool, len(exclude))
	for _, k := range exclude {
		skip[k] = true
	}
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
			return
		}
		if n != nd.n && skip[(&Node{n: n}).Kind(vocab)] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(nd.n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// FindAll returns the descendants of the node carrying the given marker
// kind, in document order. It does not descend into a match, so nested
// markers of the same kind are reported once at their outermost level.
func (nd *Node) FindAll(vocab Vocabulary, kind MarkerKind) []*Node {
	var out []*Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n != nd.n && (&Node{n: n}).Kind(vocab) == kind {
			out = append(out, &Node{n: n})
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(nd.n)
	return out
}

// RawLines returns every non-blank text node under the node, trimmed, one
// entry per text node in document order. This is the tier-4 fallback view
// of an article body.
func (nd *Node) RawLines() []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if line := strings.TrimSpace(n.Data); line != "" {
				out = append(out, strings.Join(strings.Fields(line), " "))
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(nd.n)
	return out
}

// Depth returns the maximum element nesting depth under the node, stopping
// early once limit is exceeded.
func (nd *Node) Depth(limit int) int {
	var walk func(n *html.Node, depth int) int
	walk = func(n *html.Node, depth int) int {
		if depth > limit {
			return depth
		}
		deepest := depth
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			if d := walk(c, depth+1); d > deepest {
				deepest = d
				if deepest > limit {
					break
				}
			}
		}
		return deepest
	}
	return walk(nd.n, 0)
}
