package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"gopkg.in/yaml.v3"
)

// Markdown renders the document with bracketed section labels, compact
// enough to paste into notes or prompts.
func (d *Document) Markdown() string {
	return d.markdown(false)
}

// HTML renders a standalone HTML page from the markdown form.
func (d *Document) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{
		Title: "Dataset inspection: " + d.Dataset,
		Flags: html.CommonFlags | html.CompletePage,
	})
	return markdown.ToHTML([]byte(d.markdown(true)), p, r)
}

// YAML renders the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	b, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return b, nil
}

func (d *Document) markdown(headings bool) string {
	var b strings.Builder
	heading := func(title string) {
		if headings {
			b.WriteString("## " + title + "\n\n")
			return
		}
		b.WriteString("[" + strings.ToUpper(title) + "]\n")
	}

	heading("Dataset inspection")
	if d.Dataset != "" {
		b.WriteString(fmt.Sprintf("Dataset: %s  \n", d.Dataset))
	}
	b.WriteString(fmt.Sprintf("Rows: %d  \n", d.Rows))
	b.WriteString(fmt.Sprintf("Columns: %d  \n", d.Columns))
	b.WriteString(fmt.Sprintf("Run: %s (%s)\n", d.ID, d.Generated.Format(time.RFC3339)))

	for _, t := range d.Sections {
		b.WriteString("\n")
		heading(t.Title)
		for _, c := range t.Caption {
			b.WriteString(safeVal(c))
			b.WriteString("\n")
		}
		if len(t.Caption) > 0 && headings {
			b.WriteString("\n")
		}
		if len(t.Columns) > 0 {
			if len(t.Rows) == 0 {
				b.WriteString("(none)\n")
			} else {
				writeMarkdownTable(&b, t)
			}
		}
		if len(t.Notes) > 0 {
			if headings {
				b.WriteString("\n")
			}
			for _, n := range t.Notes {
				b.WriteString("- ")
				b.WriteString(safeVal(n))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func writeMarkdownTable(b *strings.Builder, t Table) {
	b.WriteString("| ")
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString(safeName(c))
	}
	b.WriteString(" |\n")
	b.WriteString("| ")
	for i := range t.Columns {
		if i > 0 {
			b.WriteString(" | ")
		}
		b.WriteString("---")
	}
	b.WriteString(" |\n")
	for _, row := range t.Rows {
		b.WriteString("| ")
		for i := range t.Columns {
			if i > 0 {
				b.WriteString(" | ")
			}
			val := ""
			if i < len(row) {
				val = row[i]
			}
			if len(val) > 80 {
				val = val[:77] + "..."
			}
			b.WriteString(safeVal(val))
		}
		b.WriteString(" |\n")
	}
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
