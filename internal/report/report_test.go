package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleDocument() *Document {
	doc := NewDocument("titanic", 891, 12)
	doc.Add(
		Table{
			Title:   "Missing values",
			Columns: []string{"feature", "percentage_missing"},
			Rows: [][]string{
				{"Cabin", "77.10437710437711"},
				{"Age", "19.865319865319865"},
			},
		},
		Table{
			Title:   "Rare levels",
			Caption: []string{"Embarked has 4 levels."},
			Columns: []string{"level", "percentage_in_data"},
			Rows:    [][]string{{"Q|x", "0.08641975308641975"}},
			Notes:   []string{"The following features didn't meet the mandatory levels: ['Sex']"},
		},
		Table{
			Title:   "Unseen validation levels",
			Columns: []string{"feature", "count", "levels"},
		},
	)
	return doc
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"": FormatText, "md": FormatMarkdown, "HTML": FormatHTML, "yml": FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat("pdf")
	assert.Error(t, err)
}

func TestMarkdownSections(t *testing.T) {
	md := sampleDocument().Markdown()

	assert.Contains(t, md, "[DATASET INSPECTION]")
	assert.Contains(t, md, "Dataset: titanic")
	assert.Contains(t, md, "Rows: 891")
	assert.Contains(t, md, "[MISSING VALUES]\n| feature | percentage_missing |\n| --- | --- |\n| Cabin | 77.10437710437711 |")
	assert.Contains(t, md, "Embarked has 4 levels.")
	assert.Contains(t, md, "| Q/x | 0.08641975308641975 |", "pipes are escaped")
	assert.Contains(t, md, "- The following features didn't meet the mandatory levels: ['Sex']")
	assert.Contains(t, md, "[UNSEEN VALIDATION LEVELS]\n(none)\n")
}

func TestHTMLRendersTables(t *testing.T) {
	page := string(sampleDocument().HTML())
	assert.Contains(t, page, "<title>Dataset inspection: titanic</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<td>Cabin</td>")
	assert.Contains(t, page, "<h2")
}

func TestYAMLRoundTrip(t *testing.T) {
	doc := sampleDocument()
	b, err := doc.YAML()
	require.NoError(t, err)

	var back struct {
		ID       string  `yaml:"id"`
		Dataset  string  `yaml:"dataset"`
		Sections []Table `yaml:"sections"`
	}
	require.NoError(t, yaml.Unmarshal(b, &back))
	assert.Equal(t, doc.ID.String(), back.ID)
	assert.Equal(t, "titanic", back.Dataset)
	require.Len(t, back.Sections, 3)
	assert.Equal(t, doc.Sections[0].Rows, back.Sections[0].Rows)
}

func TestWriteTextAligned(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleDocument(), false))
	out := buf.String()

	assert.Contains(t, out, "=== DATASET TITANIC ===")
	assert.Contains(t, out, "=== MISSING VALUES ===")
	assert.NotContains(t, out, "\x1b[", "no ANSI codes without color")

	lines := strings.Split(out, "\n")
	var header, first string
	for i, l := range lines {
		if strings.HasPrefix(l, "feature ") {
			header, first = l, lines[i+2]
			break
		}
	}
	require.NotEmpty(t, header)
	// numeric column is right-aligned to the header's end
	assert.Equal(t, len(header), len(first))
	assert.True(t, strings.HasPrefix(first, "Cabin    "))
	assert.Contains(t, out, "(none)")
}

func TestRenderDispatch(t *testing.T) {
	doc := sampleDocument()
	for _, f := range []Format{FormatText, FormatMarkdown, FormatHTML, FormatYAML} {
		var buf bytes.Buffer
		require.NoError(t, Render(&buf, doc, Options{Format: f}), f)
		assert.NotEmpty(t, buf.String(), f)
	}
	assert.Error(t, Render(&bytes.Buffer{}, doc, Options{Format: "pdf"}))
}

func TestFloatAndList(t *testing.T) {
	assert.Equal(t, "25", Float(25))
	assert.Equal(t, "0.25", Float(0.25))
	assert.Equal(t, "NaN", Float(math.NaN()))
	assert.Equal(t, "[]", List(nil))
	assert.Equal(t, "['a', 'b']", List([]string{"a", "b"}))
}
