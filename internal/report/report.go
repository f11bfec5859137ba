// Package report collects inspection results as tables and renders them as
// aligned text, markdown, HTML or YAML.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format selects a renderer.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatYAML     Format = "yaml"
)

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use text|markdown|html|yaml)", s)
	}
}

// Table is one report section: an optional caption, a header and rows of
// already formatted cells, and trailing notes.
type Table struct {
	Title   string     `yaml:"title"`
	Caption []string   `yaml:"caption,omitempty"`
	Columns []string   `yaml:"columns,omitempty"`
	Rows    [][]string `yaml:"rows"`
	Notes   []string   `yaml:"notes,omitempty"`
}

// Document is a full inspection run over one dataset.
type Document struct {
	ID        uuid.UUID `yaml:"id"`
	Dataset   string    `yaml:"dataset"`
	Rows      int       `yaml:"rows"`
	Columns   int       `yaml:"columns"`
	Generated time.Time `yaml:"generated"`
	Sections  []Table   `yaml:"sections"`
}

// NewDocument starts a document for a dataset of the given shape.
func NewDocument(dataset string, rows, cols int) *Document {
	return &Document{
		ID:        uuid.New(),
		Dataset:   dataset,
		Rows:      rows,
		Columns:   cols,
		Generated: time.Now().UTC(),
	}
}

// Add appends sections in order.
func (d *Document) Add(tables ...Table) {
	d.Sections = append(d.Sections, tables...)
}

// Options tunes rendering.
type Options struct {
	Format Format
	// Color enables ANSI styling in text output.
	Color bool
}

// Render writes the document in the requested format.
func Render(w io.Writer, d *Document, opt Options) error {
	switch opt.Format {
	case FormatText, "":
		return WriteText(w, d, opt.Color)
	case FormatMarkdown:
		_, err := io.WriteString(w, d.Markdown())
		return err
	case FormatHTML:
		_, err := w.Write(d.HTML())
		return err
	case FormatYAML:
		b, err := d.YAML()
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	default:
		return fmt.Errorf("unsupported format: %s", opt.Format)
	}
}

// Float formats a value at full precision, the way the reports print numbers.
func Float(x float64) string {
	if math.IsNaN(x) {
		return "NaN"
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// List joins names the way the reports print column lists: ['a', 'b'].
func List(names []string) string {
	if len(names) == 0 {
		return "[]"
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
