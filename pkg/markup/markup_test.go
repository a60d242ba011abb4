package markup

import (
	"strings"
	"testing"
)

func mustParse(t *testing.T, raw string) *Node {
	t.Helper()
	root, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return root
}

func TestParseRejectsEmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t"} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q): expected error", in)
		}
	}
}

func TestParseAcceptsMalformedMarkup(t *testing.T) {
	// Unclosed tags and stray closers must still produce a usable tree.
	root := mustParse(t, `<div class="S_ART_BDY">text <span>unclosed </div></b>`)
	if got := root.Text(); !strings.Contains(got, "text unclosed") {
		t.Errorf("Text() = %q", got)
	}
}

func TestMarkersDocumentOrder(t *testing.T) {
	root := mustParse(t, `<html><body>
<span class="S_TTL_NR">TITLUL I</span>
<span class="S_ART_TTL">Articolul 1</span>
<div class="S_ART_BDY"><span class="S_ALN">(1) text</span></div>
</body></html>`)
	markers := Markers(root, DefaultVocabulary())
	got := make([]MarkerKind, 0, len(markers))
	for _, m := range markers {
		got = append(got, m.Kind)
	}
	want := []MarkerKind{KindTitleNumber, KindArticleHeading, KindArticleBody}
	if len(got) != len(want) {
		t.Fatalf("markers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("marker %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMarkersDoNotDescendIntoBody(t *testing.T) {
	// The alinea inside the body belongs to the body extractor, not the
	// top-level marker stream.
	root := mustParse(t, `<div class="S_ART_BDY"><span class="S_ALN">(1) text</span></div>`)
	markers := Markers(root, DefaultVocabulary())
	if len(markers) != 1 || markers[0].Kind != KindArticleBody {
		t.Errorf("markers = %+v, want a single article_body", markers)
	}
}

func TestDirectTextExcludesMarkedSubtrees(t *testing.T) {
	root := mustParse(t, `<div class="S_ART_BDY">intro text <span class="S_LIT">a) clause</span> tail</div>`)
	body := root.FindAll(DefaultVocabulary(), KindArticleBody)[0]
	got := body.DirectText(DefaultVocabulary(), KindClause)
	if got != "intro text tail" {
		t.Errorf("DirectText = %q, want %q", got, "intro text tail")
	}
}

func TestFindAllReportsOutermostMatches(t *testing.T) {
	root := mustParse(t, `<div class="S_ALN">(1) <span class="S_ALN">nested</span></div><div class="S_ALN">(2)</div>`)
	all := root.FindAll(DefaultVocabulary(), KindAlinea)
	if len(all) != 2 {
		t.Errorf("FindAll found %d alineas, want 2 outermost", len(all))
	}
}

func TestRawLines(t *testing.T) {
	root := mustParse(t, "<div>  first \n<span>second</span>\n  \n<b>third</b></div>")
	got := root.RawLines()
	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("RawLines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestVocabularyRoundTrip(t *testing.T) {
	vocab, err := LoadVocabulary(strings.NewReader("X_ART: article_heading\nX_BDY: article_body\n"))
	if err != nil {
		t.Fatalf("LoadVocabulary: %v", err)
	}
	if vocab["X_ART"] != KindArticleHeading || vocab["X_BDY"] != KindArticleBody {
		t.Errorf("vocabulary = %+v", vocab)
	}

	if _, err := LoadVocabulary(strings.NewReader("X: no_such_kind\n")); err == nil {
		t.Error("expected error for unknown marker kind")
	}
}

func TestParseMarkerKindCoversAllKinds(t *testing.T) {
	for kind := range markerKindNames {
		parsed, err := ParseMarkerKind(kind.String())
		if err != nil {
			t.Errorf("ParseMarkerKind(%s): %v", kind, err)
			continue
		}
		if parsed != kind {
			t.Errorf("round trip %s -> %s", kind, parsed)
		}
	}
}

func TestNormalizeReferences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"conformlit. c) din lege", "conform lit. c) din lege"},
		{"prevederileart. 5", "prevederile art. 5"},
		{"șia) doua literă", "și a) doua literă"},
		{"saub) cealaltă", "sau b) cealaltă"},
		{"a)b)c)", "a) b) c)"},
		{"potrivitalin. (2) șipct. 3", "potrivit alin. (2) și pct. 3"},
		// Already-spaced text is left alone.
		{"conform lit. c) din lege", "conform lit. c) din lege"},
		{"text fără referințe", "text fără referințe"},
		// A conjunction inside a longer word is not a conjunction.
		{"școala) nu se desparte", "școala) nu se desparte"},
	}
	for _, tt := range tests {
		if got := NormalizeReferences(tt.in); got != tt.want {
			t.Errorf("NormalizeReferences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
