package scan

import "testing"

func TestRomanToInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"I", 1},
		{"IV", 4},
		{"IX", 9},
		{"XIV", 14},
		{"XL", 40},
		{"MCMXCIV", 1994},
		{"i", 1},
		{"", 0},
		{"ABC", 0},
		{"12", 0},
	}
	for _, tt := range tests {
		if got := romanToInt(tt.in); got != tt.want {
			t.Errorf("romanToInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestHeadingNumber(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"TITLUL I", 1},
		{"CAPITOLUL XIV", 14},
		{"Secțiunea 1", 1},
		{"CAPITOLUL 3", 3},
		{"fără număr", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := headingNumber(tt.in); got != tt.want {
			t.Errorf("headingNumber(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestContextResetRules(t *testing.T) {
	var ctx Context
	ctx.StartTitle("TITLUL I")
	ctx.NameTitle("Dispoziții generale")
	ctx.StartChapter("CAPITOLUL II")
	ctx.NameChapter("Proceduri")
	ctx.StartSection("Secțiunea 1")
	ctx.StartSubsection("Subsecțiunea 2")

	crumb := ctx.Snapshot()
	if crumb.Title.Number != 1 || crumb.Chapter.Number != 2 ||
		crumb.Section.Number != 1 || crumb.Subsection.Number != 2 {
		t.Fatalf("unexpected breadcrumb: %+v", crumb)
	}

	// A new section clears only the subsection.
	ctx.StartSection("Secțiunea 2")
	crumb = ctx.Snapshot()
	if !crumb.Subsection.IsZero() {
		t.Errorf("new section should clear subsection: %+v", crumb)
	}
	if crumb.Chapter.IsZero() || crumb.Title.IsZero() {
		t.Errorf("new section must keep title and chapter: %+v", crumb)
	}

	// A new chapter clears section and subsection.
	ctx.StartSubsection("Subsecțiunea 1")
	ctx.StartChapter("CAPITOLUL III")
	crumb = ctx.Snapshot()
	if !crumb.Section.IsZero() || !crumb.Subsection.IsZero() {
		t.Errorf("new chapter should clear section and subsection: %+v", crumb)
	}

	// A new title clears everything below it.
	ctx.StartTitle("TITLUL II")
	crumb = ctx.Snapshot()
	if !crumb.Chapter.IsZero() {
		t.Errorf("new title should clear chapter: %+v", crumb)
	}
	if crumb.Title.Number != 2 {
		t.Errorf("title number = %d, want 2", crumb.Title.Number)
	}
}

func TestBreadcrumbString(t *testing.T) {
	var ctx Context
	ctx.StartTitle("TITLUL I")
	ctx.NameTitle("Dispoziții generale")
	ctx.StartChapter("CAPITOLUL II")

	got := ctx.Snapshot().String()
	want := "Titlul I - Dispoziții generale / Capitolul II"
	if got != want {
		t.Errorf("breadcrumb = %q, want %q", got, want)
	}

	if (Breadcrumb{}).String() != "" {
		t.Errorf("zero breadcrumb should render empty")
	}
}
