package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"
)

// WriteText prints the document as aligned plain-text tables. With useColor,
// section titles and headers are styled for a terminal.
func WriteText(w io.Writer, d *Document, useColor bool) error {
	bw := bufio.NewWriter(w)
	style := func(c color.Color, s string) string {
		if !useColor {
			return s
		}
		return c.Sprint(s)
	}

	fmt.Fprintf(bw, "%s\n", style(color.Bold, "=== DATASET "+strings.ToUpper(d.Dataset)+" ==="))
	fmt.Fprintf(bw, "rows: %d, columns: %d, run: %s (%s)\n",
		d.Rows, d.Columns, d.ID, d.Generated.Format(time.RFC3339))

	for _, t := range d.Sections {
		fmt.Fprintf(bw, "\n%s\n", style(color.Cyan, "=== "+strings.ToUpper(t.Title)+" ==="))
		for _, c := range t.Caption {
			fmt.Fprintln(bw, c)
		}
		if len(t.Columns) > 0 {
			if len(t.Rows) == 0 {
				fmt.Fprintln(bw, style(color.Gray, "(none)"))
			} else {
				writeAligned(bw, t, func(s string) string { return style(color.Bold, s) })
			}
		}
		for _, n := range t.Notes {
			fmt.Fprintln(bw, style(color.Yellow, n))
		}
	}
	return bw.Flush()
}

func writeAligned(w io.Writer, t Table, header func(string) string) {
	widths := make([]int, len(t.Columns))
	numeric := make([]bool, len(t.Columns))
	for i, c := range t.Columns {
		widths[i] = runewidth.StringWidth(c)
		numeric[i] = true
	}
	for _, row := range t.Rows {
		for i := range t.Columns {
			cell := cellAt(row, i)
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
			if _, err := strconv.ParseFloat(cell, 64); err != nil {
				numeric[i] = false
			}
		}
	}

	cells := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cells[i] = header(pad(c, widths[i], numeric[i]))
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	for i := range t.Columns {
		cells[i] = strings.Repeat("-", widths[i])
	}
	fmt.Fprintln(w, strings.Join(cells, "  "))
	for _, row := range t.Rows {
		for i := range t.Columns {
			cells[i] = pad(cellAt(row, i), widths[i], numeric[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

func pad(s string, width int, right bool) string {
	if right {
		return runewidth.FillLeft(s, width)
	}
	return runewidth.FillRight(s, width)
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
