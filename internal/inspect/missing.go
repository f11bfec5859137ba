package inspect

import (
	"fmt"
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/KaramelBytes/datalens-cli/internal/dataset"
	"github.com/KaramelBytes/datalens-cli/internal/report"
)

// MissingEntry is one column's share of null cells, in percent.
type MissingEntry struct {
	Column     string
	Percentage float64
}

// MissingnessReport maps column name to percentage of null entries. Entries
// are sorted descending by percentage and never include 0%.
type MissingnessReport struct {
	entries *orderedmap.OrderedMap[string, float64]
}

func newMissingnessReport(entries []MissingEntry) *MissingnessReport {
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Percentage > entries[b].Percentage
	})
	m := orderedmap.NewOrderedMap[string, float64]()
	for _, e := range entries {
		m.Set(e.Column, e.Percentage)
	}
	return &MissingnessReport{entries: m}
}

// Get returns the percentage for a column and whether it was reported.
func (r *MissingnessReport) Get(column string) (float64, bool) {
	return r.entries.Get(column)
}

// Len is the number of reported columns.
func (r *MissingnessReport) Len() int { return r.entries.Len() }

// Columns lists reported columns in report order.
func (r *MissingnessReport) Columns() []string { return r.entries.Keys() }

// Entries lists the report in order.
func (r *MissingnessReport) Entries() []MissingEntry {
	out := make([]MissingEntry, 0, r.entries.Len())
	for el := r.entries.Front(); el != nil; el = el.Next() {
		out = append(out, MissingEntry{Column: el.Key, Percentage: el.Value})
	}
	return out
}

// Table renders the report as a section.
func (r *MissingnessReport) Table() report.Table {
	t := report.Table{
		Title:   "Missing values",
		Columns: []string{"feature", "percentage_missing"},
		Rows:    [][]string{},
	}
	for _, e := range r.Entries() {
		t.Rows = append(t.Rows, []string{e.Column, report.Float(e.Percentage)})
	}
	return t
}

// MissingPercentages reports, for each requested column (default: all),
// the percentage of null entries. Columns without nulls are left out.
func (i *Inspector) MissingPercentages(columns ...string) (*MissingnessReport, error) {
	cols, err := i.selectColumns(columns, i.data.Columns())
	if err != nil {
		return nil, err
	}
	log := i.log.WithOperation("missing_percentages")
	rows := i.data.Rows()
	entries := make([]MissingEntry, 0, len(cols))
	for _, c := range cols {
		if rows == 0 {
			continue
		}
		pct := float64(c.Nulls()) / float64(rows) * 100
		log.WithColumn(c.Name).Debugw("column missingness", "percentage", pct)
		if pct > 0 {
			entries = append(entries, MissingEntry{Column: c.Name, Percentage: pct})
		}
	}
	return newMissingnessReport(entries), nil
}

// ColumnsAboveMissingThreshold lists, in column order, the columns whose
// missing percentage is strictly greater than threshold. With a validation
// dataset the percentage is taken over training rows (target excluded) and
// validation rows together; a column absent on one side is null on all of
// that side's rows.
func (i *Inspector) ColumnsAboveMissingThreshold(threshold float64) []string {
	var out []string
	for _, e := range i.combinedMissingness() {
		if e.Percentage > threshold {
			out = append(out, e.Column)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// combinedMissingness returns every column's missing percentage in column
// order, including 0% entries.
func (i *Inspector) combinedMissingness() []MissingEntry {
	if i.valid == nil {
		return sideMissingness(i.data, "", nil)
	}
	return sideMissingness(i.data, i.features.Target, i.valid)
}

func sideMissingness(train *dataset.Dataset, exclude string, valid *dataset.Dataset) []MissingEntry {
	var names []string
	for _, n := range train.Columns() {
		if n != exclude {
			names = append(names, n)
		}
	}
	total := train.Rows()
	if valid != nil {
		total += valid.Rows()
		for _, n := range valid.Columns() {
			if n != exclude && !train.Has(n) {
				names = append(names, n)
			}
		}
	}
	out := make([]MissingEntry, 0, len(names))
	if total == 0 {
		return out
	}
	for _, n := range names {
		nulls := sideNulls(train, n)
		if valid != nil {
			nulls += sideNulls(valid, n)
		}
		out = append(out, MissingEntry{Column: n, Percentage: float64(nulls) / float64(total) * 100})
	}
	return out
}

func sideNulls(d *dataset.Dataset, name string) int {
	c, err := d.Column(name)
	if err != nil {
		return d.Rows()
	}
	return c.Nulls()
}

// DropColumnsAboveThreshold removes, in place, every column whose missing
// percentage exceeds threshold from the dataset and from the validation
// dataset where it holds the column. Dropped columns are also removed from the
// feature lists. It returns the removed column names.
func (i *Inspector) DropColumnsAboveThreshold(threshold float64) ([]string, error) {
	drop := i.ColumnsAboveMissingThreshold(threshold)
	if err := dropPresent(i.data, drop); err != nil {
		return nil, err
	}
	if i.valid != nil {
		if err := dropPresent(i.valid, drop); err != nil {
			return nil, err
		}
	}
	i.forget(drop)
	i.log.WithOperation("drop_missing").Infow("dropped columns", "threshold", threshold, "columns", drop)
	i.printf("Removed columns with more than %s%% missing: %s\n", report.Float(threshold), report.List(drop))
	return drop, nil
}

func dropPresent(d *dataset.Dataset, names []string) error {
	var present []string
	for _, n := range names {
		if d.Has(n) {
			present = append(present, n)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if err := d.Drop(present...); err != nil {
		return fmt.Errorf("drop from %s: %w", d.Name, err)
	}
	return nil
}

// FillResult reports how many nulls a fill replaced in one column.
type FillResult struct {
	Column string
	Filled int
}

// FillMissingCategorical replaces nulls with "NONE" and coerces every value
// to text, in place, for each requested column (default: the categorical
// features). The validation dataset is filled the same way when present.
// Returned counts cover both datasets.
func (i *Inspector) FillMissingCategorical(columns ...string) ([]FillResult, error) {
	cols, err := i.selectColumns(columns, i.features.Categorical)
	if err != nil {
		return nil, err
	}
	var vcols []*dataset.Column
	if i.valid != nil {
		for _, c := range cols {
			vc, err := i.valid.Column(c.Name)
			if err != nil {
				return nil, err
			}
			vcols = append(vcols, vc)
		}
	}

	log := i.log.WithOperation("fill_categorical")
	results := make([]FillResult, len(cols))
	for k, c := range cols {
		n := fillText(c)
		if vcols != nil {
			n += fillText(vcols[k])
		}
		results[k] = FillResult{Column: c.Name, Filled: n}
		log.WithColumn(c.Name).Infow("filled column", "filled", n)
	}
	i.printf("Filled nulls with '%s' in %s\n", dataset.NoneLevel, report.List(fillNames(results)))
	return results, nil
}

func fillText(c *dataset.Column) int {
	n := 0
	for k, v := range c.Values {
		if v.IsNull() {
			n++
		}
		c.Values[k] = dataset.Text(v.Level())
	}
	return n
}

// FillMissingContinuous replaces nulls with fill, in place, for each
// requested column (default: the continuous features). Existing values keep
// their type.
func (i *Inspector) FillMissingContinuous(fill float64, columns ...string) ([]FillResult, error) {
	cols, err := i.selectColumns(columns, i.features.Continuous)
	if err != nil {
		return nil, err
	}
	log := i.log.WithOperation("fill_continuous")
	results := make([]FillResult, len(cols))
	for k, c := range cols {
		n := 0
		for r, v := range c.Values {
			if v.IsNull() {
				c.Values[r] = dataset.Number(fill)
				n++
			}
		}
		results[k] = FillResult{Column: c.Name, Filled: n}
		log.WithColumn(c.Name).Infow("filled column", "filled", n, "value", fill)
	}
	i.printf("Filled nulls with %s in %s\n", report.Float(fill), report.List(fillNames(results)))
	return results, nil
}

func fillNames(rs []FillResult) []string {
	out := make([]string, len(rs))
	for k, r := range rs {
		out[k] = r.Column
	}
	return out
}

// FillTable renders fill counts as a section.
func FillTable(title string, rs []FillResult) report.Table {
	t := report.Table{Title: title, Columns: []string{"feature", "filled"}, Rows: [][]string{}}
	for _, r := range rs {
		t.Rows = append(t.Rows, []string{r.Column, fmt.Sprint(r.Filled)})
	}
	return t
}
