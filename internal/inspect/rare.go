package inspect

import (
	"fmt"
	"sort"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/KaramelBytes/datalens-cli/internal/report"
)

// LevelFrequencyReport holds, for one categorical column, the number of
// distinct levels and the levels whose share of rows is at or below the
// threshold, most frequent first.
type LevelFrequencyReport struct {
	Column   string
	Distinct int
	levels   *orderedmap.OrderedMap[string, float64]
}

// Get returns the frequency of a reported level.
func (r *LevelFrequencyReport) Get(level string) (float64, bool) { return r.levels.Get(level) }

// Levels lists reported levels in order.
func (r *LevelFrequencyReport) Levels() []string { return r.levels.Keys() }

// Len is the number of reported levels.
func (r *LevelFrequencyReport) Len() int { return r.levels.Len() }

// Table renders the column's rare levels as a section.
func (r *LevelFrequencyReport) Table() report.Table {
	t := report.Table{
		Title:   "Rare levels: " + r.Column,
		Caption: []string{fmt.Sprintf("%s has %d levels.", r.Column, r.Distinct)},
		Columns: []string{"level", "percentage_in_data"},
		Rows:    [][]string{},
	}
	for el := r.levels.Front(); el != nil; el = el.Next() {
		t.Rows = append(t.Rows, []string{el.Key, report.Float(el.Value)})
	}
	return t
}

// RareLevelReport is the outcome of RareLevels over several columns.
type RareLevelReport struct {
	Threshold float64
	MinLevels int
	Columns   []*LevelFrequencyReport
	// Skipped lists columns with fewer distinct levels than MinLevels.
	Skipped []string
}

// Column returns the report for one analyzed column.
func (r *RareLevelReport) Column(name string) (*LevelFrequencyReport, bool) {
	for _, c := range r.Columns {
		if c.Column == name {
			return c, true
		}
	}
	return nil, false
}

// Tables renders one section per analyzed column plus a closing section
// listing skipped columns.
func (r *RareLevelReport) Tables() []report.Table {
	out := make([]report.Table, 0, len(r.Columns)+1)
	for _, c := range r.Columns {
		out = append(out, c.Table())
	}
	out = append(out, report.Table{
		Title: "Rare levels skipped",
		Notes: []string{fmt.Sprintf("The following features didn't meet the mandatory levels (%d): %s", r.MinLevels, report.List(r.Skipped))},
	})
	return out
}

type levelCount struct {
	level string
	count int
}

// RareLevels reports, for each requested column (default: the categorical
// features), the levels whose fraction of rows is at or below threshold.
// Values are coerced to text first and nulls count as the "NONE" level.
// Columns with fewer than minLevels distinct levels are not analyzed and are
// listed in Skipped instead.
func (i *Inspector) RareLevels(threshold float64, minLevels int, columns ...string) (*RareLevelReport, error) {
	cols, err := i.selectColumns(columns, i.features.Categorical)
	if err != nil {
		return nil, err
	}
	log := i.log.WithOperation("rare_levels")
	out := &RareLevelReport{
		Threshold: threshold,
		MinLevels: minLevels,
		Columns:   []*LevelFrequencyReport{},
		Skipped:   []string{},
	}
	rows := i.data.Rows()
	for _, c := range cols {
		index := map[string]int{}
		var counts []levelCount
		for _, l := range c.Levels() {
			k, ok := index[l]
			if !ok {
				k = len(counts)
				index[l] = k
				counts = append(counts, levelCount{level: l})
			}
			counts[k].count++
		}
		if len(counts) < minLevels {
			log.WithColumn(c.Name).Debugw("skipped column", "distinct", len(counts), "min_levels", minLevels)
			out.Skipped = append(out.Skipped, c.Name)
			continue
		}

		sort.SliceStable(counts, func(a, b int) bool {
			if counts[a].count != counts[b].count {
				return counts[a].count > counts[b].count
			}
			return counts[a].level < counts[b].level
		})
		levels := orderedmap.NewOrderedMap[string, float64]()
		for _, lc := range counts {
			freq := float64(lc.count) / float64(rows)
			if freq <= threshold {
				levels.Set(lc.level, freq)
			}
		}
		rep := &LevelFrequencyReport{Column: c.Name, Distinct: len(counts), levels: levels}
		log.WithColumn(c.Name).Debugw("rare levels", "distinct", rep.Distinct, "reported", rep.Len())
		i.printf("%s has %d levels.\n", c.Name, rep.Distinct)
		for el := levels.Front(); el != nil; el = el.Next() {
			i.printf("  %s: %s\n", el.Key, report.Float(el.Value))
		}
		out.Columns = append(out.Columns, rep)
	}
	i.printf("The following features didn't meet the mandatory levels: %s\n", report.List(out.Skipped))
	return out, nil
}
