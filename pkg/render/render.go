// Package render produces the canonical annotated document for an extracted
// act: a YAML frontmatter block, a hierarchical index with anchor-linked
// article references, and one annotatable section per article.
package render

import (
	"fmt"
	"strings"

	"github.com/coolbeans/actscan/pkg/markup"
	"github.com/coolbeans/actscan/pkg/scan"
	"gopkg.in/yaml.v3"
)

// Renderer renders a scan result into the structured document text.
type Renderer struct {
	// Annotations maps an article ordinal to an issue label already
	// attached by the tagging collaborator, shown inline in the index.
	// The per-article placeholders themselves are never populated here.
	Annotations map[int]string
}

// New creates a Renderer with no attached annotations.
func New() *Renderer {
	return &Renderer{}
}

// frontmatter is the marshalled shape of the metadata block. Field order
// here is the output order.
type frontmatter struct {
	ActType       string `yaml:"tip_act,omitempty"`
	ActNumber     string `yaml:"numar_act,omitempty"`
	ActDate       string `yaml:"data_act,omitempty"`
	ActYear       int    `yaml:"an_act,omitempty"`
	Title         string `yaml:"titlu,omitempty"`
	Authority     string `yaml:"emitent,omitempty"`
	MonitorNumber string `yaml:"numar_monitor,omitempty"`
	MonitorDate   string `yaml:"data_monitor,omitempty"`
	MonitorYear   int    `yaml:"an_monitor,omitempty"`
	ArticleCount  int    `yaml:"numar_articole"`
}

// Render produces the full structured document: frontmatter, index, then
// one section per article. Metadata fields the caller left empty are
// prefilled from the scan's own detected signals where possible.
func (r *Renderer) Render(res *scan.Result, meta Metadata) (string, error) {
	if meta.ActType == "" {
		meta.ActType = res.Signals.ActType
	}
	if meta.ActNumber == "" {
		meta.ActNumber = res.Signals.ActNumber
	}

	anchors := AnchorIDs(res)
	var sb strings.Builder

	if err := writeFrontmatter(&sb, res, meta); err != nil {
		return "", err
	}
	r.writeIndex(&sb, res, anchors)
	r.writeArticles(&sb, res, meta, anchors)
	return sb.String(), nil
}

func writeFrontmatter(sb *strings.Builder, res *scan.Result, meta Metadata) error {
	fm := frontmatter{
		ActType:       meta.ActType,
		ActNumber:     meta.ActNumber,
		ActDate:       meta.ActDate,
		ActYear:       dateYear(meta.ActDate),
		Title:         markup.NormalizeReferences(meta.Title),
		Authority:     meta.Authority,
		MonitorNumber: meta.MonitorNumber,
		MonitorDate:   meta.MonitorDate,
		MonitorYear:   dateYear(meta.MonitorDate),
		ArticleCount:  len(res.Articles),
	}
	encoded, err := yaml.Marshal(fm)
	if err != nil {
		return fmt.Errorf("marshalling frontmatter: %w", err)
	}
	sb.WriteString("---\n")
	sb.Write(encoded)
	sb.WriteString("---\n\n")
	return nil
}

// writeIndex emits one heading per hierarchy transition, replaying the same
// transition rules the scanner applied, followed by one anchor-linked line
// per article.
func (r *Renderer) writeIndex(sb *strings.Builder, res *scan.Result, anchors map[int]string) {
	sb.WriteString("# Cuprins\n\n")

	var prev scan.Breadcrumb
	for _, article := range res.Articles {
		writeTransitions(sb, prev, article.Breadcrumb)
		prev = article.Breadcrumb

		line := fmt.Sprintf("- [%s](#%s)", article.Title(), anchors[article.Ordinal])
		if label := r.Annotations[article.Ordinal]; label != "" {
			line += " - " + markup.NormalizeReferences(label)
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
}

func writeTransitions(sb *strings.Builder, prev, next scan.Breadcrumb) {
	changed := next.Title != prev.Title
	if changed && !next.Title.IsZero() {
		fmt.Fprintf(sb, "\n## %s\n\n", headingLine(next.Title, "Titlul"))
	}
	changed = changed || next.Chapter != prev.Chapter
	if changed && !next.Chapter.IsZero() {
		fmt.Fprintf(sb, "\n### %s\n\n", headingLine(next.Chapter, "Capitolul"))
	}
	changed = changed || next.Section != prev.Section
	if changed && !next.Section.IsZero() {
		fmt.Fprintf(sb, "\n#### %s\n\n", headingLine(next.Section, "Secțiunea"))
	}
	changed = changed || next.Subsection != prev.Subsection
	if changed && !next.Subsection.IsZero() {
		fmt.Fprintf(sb, "\n##### %s\n\n", headingLine(next.Subsection, "Subsecțiunea"))
	}
}

func headingLine(h scan.Heading, prefix string) string {
	line := prefix
	if h.Label != "" {
		line += " " + h.Label
	}
	if h.Name != "" {
		line += " - " + markup.NormalizeReferences(h.Name)
	}
	return line
}

// writeArticles emits one section per article: an explicit anchor, the
// heading, the breadcrumb, the two annotation placeholders reserved for the
// tagging collaborator, a metadata sub-block, and the tier-formatted body.
func (r *Renderer) writeArticles(sb *strings.Builder, res *scan.Result, meta Metadata, anchors map[int]string) {
	for _, article := range res.Articles {
		fmt.Fprintf(sb, "<a id=%q></a>\n\n", anchors[article.Ordinal])
		fmt.Fprintf(sb, "## %s\n\n", article.Title())

		if !article.Breadcrumb.IsZero() {
			fmt.Fprintf(sb, "**Încadrare:** %s\n\n", markup.NormalizeReferences(article.Breadcrumb.String()))
		}

		sb.WriteString("**Problemă:**\n\n")
		sb.WriteString("**Explicație:**\n\n")

		sb.WriteString("**Metadate:**\n")
		writeMetadataItem(sb, "Tip act", meta.ActType)
		writeMetadataItem(sb, "Număr act", meta.ActNumber)
		if year := dateYear(meta.ActDate); year > 0 {
			writeMetadataItem(sb, "An act", fmt.Sprintf("%d", year))
		}
		writeMetadataItem(sb, "Emitent", meta.Authority)
		writeMetadataItem(sb, "Monitorul Oficial", meta.MonitorNumber)
		if path := article.Breadcrumb.String(); path != "" {
			writeMetadataItem(sb, "Cale structurală", markup.NormalizeReferences(path))
		}
		sb.WriteByte('\n')

		for _, line := range strings.Split(article.Text, "\n") {
			sb.WriteString(markup.NormalizeReferences(line))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	}
}

func writeMetadataItem(sb *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "- %s: %s\n", key, value)
}
