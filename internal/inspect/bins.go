package inspect

import (
	"math"
	"sort"

	"github.com/elliotchance/orderedmap/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/KaramelBytes/datalens-cli/internal/report"
)

// BinWidth is the Freedman–Diaconis estimate for one continuous column.
//
// Width uses N = every cell of the dataset (rows × columns), not the
// column's own count. TextbookWidth uses the column's non-null count; the two
// are reported side by side so the difference is visible.
type BinWidth struct {
	Column        string
	Q1            float64
	Q3            float64
	IQR           float64
	N             int
	Width         float64
	TextbookWidth float64
	// Bins is ceil((max-min)/Width), or 0 when that is not a finite count.
	Bins int
}

// BinWidthReport maps column name to its bin-width estimate, in request order.
type BinWidthReport struct {
	entries *orderedmap.OrderedMap[string, BinWidth]
}

// Get returns the estimate for a column.
func (r *BinWidthReport) Get(column string) (BinWidth, bool) { return r.entries.Get(column) }

// Len is the number of columns.
func (r *BinWidthReport) Len() int { return r.entries.Len() }

// Widths lists the estimates in order.
func (r *BinWidthReport) Widths() []BinWidth {
	out := make([]BinWidth, 0, r.entries.Len())
	for el := r.entries.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value)
	}
	return out
}

// Table renders the report as a section.
func (r *BinWidthReport) Table() report.Table {
	t := report.Table{
		Title:   "Freedman-Diaconis bin widths",
		Columns: []string{"feature", "width", "textbook_width", "iqr", "n", "bins"},
		Rows:    [][]string{},
		Notes: []string{
			"width uses n = rows x columns of the whole dataset; textbook_width uses the column's non-null count",
		},
	}
	for _, w := range r.Widths() {
		t.Rows = append(t.Rows, []string{
			w.Column,
			report.Float(w.Width),
			report.Float(w.TextbookWidth),
			report.Float(w.IQR),
			report.Float(float64(w.N)),
			report.Float(float64(w.Bins)),
		})
	}
	return t
}

// FreedmanDiaconisWidths estimates a histogram bin width for each requested
// column (default: the continuous features) as 2·IQR / N^(1/3), with
// quartiles by linear interpolation on the sorted non-null values. A column
// with no values gets NaN; a text value fails with ColumnTypeError.
func (i *Inspector) FreedmanDiaconisWidths(columns ...string) (*BinWidthReport, error) {
	cols, err := i.selectColumns(columns, i.features.Continuous)
	if err != nil {
		return nil, err
	}
	log := i.log.WithOperation("freedman_diaconis")
	size := i.data.Size()
	m := orderedmap.NewOrderedMap[string, BinWidth]()
	for _, c := range cols {
		xs := make([]float64, 0, len(c.Values))
		for r, v := range c.Values {
			if v.IsNull() {
				continue
			}
			x, ok := v.Float()
			if !ok {
				return nil, &ColumnTypeError{Column: c.Name, Row: r, Value: v.String(), Want: "numeric"}
			}
			xs = append(xs, x)
		}

		bw := BinWidth{Column: c.Name, N: size}
		if len(xs) == 0 {
			nan := math.NaN()
			bw.Q1, bw.Q3, bw.IQR, bw.Width, bw.TextbookWidth = nan, nan, nan, nan, nan
		} else {
			span := floats.Max(xs) - floats.Min(xs)
			sort.Float64s(xs)
			bw.Q1 = quantile(xs, 0.25)
			bw.Q3 = quantile(xs, 0.75)
			bw.IQR = bw.Q3 - bw.Q1
			bw.Width = fdWidth(bw.IQR, size)
			bw.TextbookWidth = fdWidth(bw.IQR, len(xs))
			bw.Bins = binCount(span, bw.Width)
		}
		log.WithColumn(c.Name).Debugw("bin width", "width", bw.Width, "textbook_width", bw.TextbookWidth)
		i.printf("%s: %s\n", c.Name, report.Float(bw.Width))
		m.Set(c.Name, bw)
	}
	return &BinWidthReport{entries: m}, nil
}

func binCount(span, width float64) int {
	if !(width > 0) {
		return 0
	}
	n := math.Ceil(span / width)
	if math.IsNaN(n) || math.IsInf(n, 0) || n > math.MaxInt32 {
		return 0
	}
	return int(n)
}

func fdWidth(iqr float64, n int) float64 {
	return 2 * iqr / math.Cbrt(float64(n))
}

// quantile expects sorted input and interpolates linearly between the two
// nearest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
