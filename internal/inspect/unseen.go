package inspect

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/KaramelBytes/datalens-cli/internal/dataset"
	"github.com/KaramelBytes/datalens-cli/internal/encode"
	"github.com/KaramelBytes/datalens-cli/internal/report"
)

// UnseenLevels lists the levels of one column found in validation rows but
// never in training rows, sorted.
type UnseenLevels struct {
	Column string
	Levels []string
}

// UnseenReport holds only columns with at least one unseen level.
type UnseenReport struct {
	Columns []UnseenLevels
}

// Table renders the report as a section.
func (r *UnseenReport) Table() report.Table {
	t := report.Table{
		Title:   "Unseen validation levels",
		Columns: []string{"feature", "count", "levels"},
		Rows:    [][]string{},
	}
	for _, c := range r.Columns {
		t.Rows = append(t.Rows, []string{c.Column, strconv.Itoa(len(c.Levels)), report.List(c.Levels)})
	}
	return t
}

// UnseenValidationLevels reports, for each requested column (default: the
// categorical features), levels that appear in validation rows but not in
// training rows. With a paired validation dataset the two datasets are
// compared directly; otherwise rows are split by the split column, which must
// hold exactly the values 0 and 1.
func (i *Inspector) UnseenValidationLevels(columns ...string) (*UnseenReport, error) {
	cols, err := i.selectColumns(columns, i.features.Categorical)
	if err != nil {
		return nil, err
	}
	log := i.log.WithOperation("unseen_levels")
	out := &UnseenReport{Columns: []UnseenLevels{}}

	var train, valid func(c *dataset.Column) ([]string, error)
	if i.valid != nil {
		train = func(c *dataset.Column) ([]string, error) { return c.Levels(), nil }
		valid = func(c *dataset.Column) ([]string, error) {
			vc, err := i.valid.Column(c.Name)
			if err != nil {
				return nil, err
			}
			return vc.Levels(), nil
		}
	} else {
		isValid, err := i.splitRows()
		if err != nil {
			return nil, err
		}
		train = func(c *dataset.Column) ([]string, error) { return pick(c, isValid, false), nil }
		valid = func(c *dataset.Column) ([]string, error) { return pick(c, isValid, true), nil }
	}

	for _, c := range cols {
		tl, err := train(c)
		if err != nil {
			return nil, err
		}
		vl, err := valid(c)
		if err != nil {
			return nil, err
		}
		_, levels := encode.NewLabelEncoder(i.order).Fit(tl).Transform(vl)
		if len(levels) == 0 {
			continue
		}
		sort.Strings(levels)
		log.WithColumn(c.Name).Debugw("unseen levels", "count", len(levels))
		i.printf("%s: %d unseen %s\n", c.Name, len(levels), report.List(levels))
		out.Columns = append(out.Columns, UnseenLevels{Column: c.Name, Levels: levels})
	}
	return out, nil
}

// splitRows reads the split column and returns true for validation rows.
func (i *Inspector) splitRows() ([]bool, error) {
	name := i.features.Split
	if name == "" {
		return nil, &ConfigurationError{Field: "split column", Reason: "no split column configured"}
	}
	col, err := i.data.Column(name)
	if err != nil {
		return nil, err
	}
	isValid := make([]bool, len(col.Values))
	var trainRows, validRows int
	for r, v := range col.Values {
		x, ok := v.Float()
		switch {
		case ok && x == 0:
			trainRows++
		case ok && x == 1:
			isValid[r] = true
			validRows++
		default:
			shown := v.String()
			if v.IsNull() {
				shown = "null"
			}
			return nil, &ConfigurationError{
				Field:  "split column " + strconv.Quote(name),
				Reason: fmt.Sprintf("row %d holds %s; values must be exactly {0, 1}", r, shown),
			}
		}
	}
	if trainRows == 0 || validRows == 0 {
		return nil, &ConfigurationError{
			Field:  "split column " + strconv.Quote(name),
			Reason: fmt.Sprintf("values must be exactly {0, 1}; found %d train and %d validation rows", trainRows, validRows),
		}
	}
	return isValid, nil
}

func pick(c *dataset.Column, isValid []bool, want bool) []string {
	var out []string
	for r, v := range c.Values {
		if isValid[r] == want {
			out = append(out, v.Level())
		}
	}
	return out
}
