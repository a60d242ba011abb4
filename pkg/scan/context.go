package scan

import "strings"

// Heading is one level of the hierarchical context: the decoded number, the
// number text as written in the source, and the name line.
type Heading struct {
	Number int    `json:"number,omitempty"`
	Label  string `json:"label,omitempty"`
	Name   string `json:"name,omitempty"`
}

// IsZero reports whether the heading level is unset.
func (h Heading) IsZero() bool {
	return h.Label == "" && h.Name == ""
}

func (h Heading) display(prefix string) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	if h.Label != "" {
		sb.WriteByte(' ')
		sb.WriteString(h.Label)
	}
	if h.Name != "" {
		sb.WriteString(" - ")
		sb.WriteString(h.Name)
	}
	return sb.String()
}

// Breadcrumb is a snapshot of the hierarchical context at the moment an
// article heading was seen. It is immutable once attached to an article.
type Breadcrumb struct {
	Title      Heading `json:"title,omitzero"`
	Chapter    Heading `json:"chapter,omitzero"`
	Section    Heading `json:"section,omitzero"`
	Subsection Heading `json:"subsection,omitzero"`
}

// IsZero reports whether no hierarchy level is set.
func (b Breadcrumb) IsZero() bool {
	return b.Title.IsZero() && b.Chapter.IsZero() && b.Section.IsZero() && b.Subsection.IsZero()
}

// String renders the breadcrumb as the active levels joined by " / ".
func (b Breadcrumb) String() string {
	var parts []string
	if !b.Title.IsZero() {
		parts = append(parts, b.Title.display("Titlul"))
	}
	if !b.Chapter.IsZero() {
		parts = append(parts, b.Chapter.display("Capitolul"))
	}
	if !b.Section.IsZero() {
		parts = append(parts, b.Section.display("Secțiunea"))
	}
	if !b.Subsection.IsZero() {
		parts = append(parts, b.Subsection.display("Subsecțiunea"))
	}
	return strings.Join(parts, " / ")
}

// Context is the mutable hierarchical state held during one scan. Starting
// a new title clears chapter, section and subsection; a new chapter clears
// section and subsection; a new section clears subsection; a new subsection
// only sets itself. Article markers never mutate the context.
//
// A Context is owned by a single scan invocation and must not be shared
// across concurrent scans.
type Context struct {
	crumb Breadcrumb
}

// Snapshot returns the current breadcrumb by value.
func (c *Context) Snapshot() Breadcrumb {
	return c.crumb
}

// StartTitle begins a new title from its number marker text.
func (c *Context) StartTitle(label string) {
	c.crumb = Breadcrumb{Title: Heading{Number: headingNumber(label), Label: cleanHeadingLabel(label, "titlul")}}
}

// NameTitle attaches the name line to the current title. A name arriving
// when the current title is already named starts a new, number-less title.
func (c *Context) NameTitle(name string) {
	if c.crumb.Title.Name != "" {
		c.crumb = Breadcrumb{Title: Heading{Name: name}}
		return
	}
	c.crumb.Title.Name = name
}

// StartChapter begins a new chapter from its number marker text.
func (c *Context) StartChapter(label string) {
	c.crumb.Section = Heading{}
	c.crumb.Subsection = Heading{}
	c.crumb.Chapter = Heading{Number: headingNumber(label), Label: cleanHeadingLabel(label, "capitolul")}
}

// NameChapter attaches the name line to the current chapter.
func (c *Context) NameChapter(name string) {
	if c.crumb.Chapter.Name != "" {
		c.crumb.Section = Heading{}
		c.crumb.Subsection = Heading{}
		c.crumb.Chapter = Heading{Name: name}
		return
	}
	c.crumb.Chapter.Name = name
}

// StartSection begins a new section from its number marker text.
func (c *Context) StartSection(label string) {
	c.crumb.Subsection = Heading{}
	c.crumb.Section = Heading{Number: headingNumber(label), Label: cleanHeadingLabel(label, "secțiunea", "sectiunea")}
}

// NameSection attaches the name line to the current section.
func (c *Context) NameSection(name string) {
	if c.crumb.Section.Name != "" {
		c.crumb.Subsection = Heading{}
		c.crumb.Section = Heading{Name: name}
		return
	}
	c.crumb.Section.Name = name
}

// StartSubsection begins a new subsection from its number marker text.
func (c *Context) StartSubsection(label string) {
	c.crumb.Subsection = Heading{Number: headingNumber(label), Label: cleanHeadingLabel(label, "subsecțiunea", "subsectiunea")}
}

// NameSubsection attaches the name line to the current subsection.
func (c *Context) NameSubsection(name string) {
	if c.crumb.Subsection.Name != "" {
		c.crumb.Subsection = Heading{Name: name}
		return
	}
	c.crumb.Subsection.Name = name
}

// cleanHeadingLabel strips the unit keyword from a number marker text, so
// "CAPITOLUL II" and "II" both yield the label "II". Diacritic-less
// spellings of the keyword are accepted too.
func cleanHeadingLabel(text string, keywords ...string) string {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	for _, keyword := range keywords {
		if strings.HasPrefix(lower, keyword) {
			return strings.TrimSpace(trimmed[len(keyword):])
		}
	}
	return trimmed
}
