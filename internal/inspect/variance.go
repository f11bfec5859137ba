package inspect

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/KaramelBytes/datalens-cli/internal/encode"
	"github.com/KaramelBytes/datalens-cli/internal/report"
)

// Mode selects which side of the variance threshold is kept.
type Mode string

const (
	// ModeLow keeps variance <= threshold, ascending.
	ModeLow Mode = "low"
	// ModeHigh keeps variance >= threshold, descending.
	ModeHigh Mode = "high"
)

// ParseMode accepts "low" or "high", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeLow, ModeHigh:
		return m, nil
	default:
		return "", &ConfigurationError{Field: "variance mode", Reason: fmt.Sprintf("unknown mode %q (use low or high)", s)}
	}
}

// FeatureVariance is the population variance of one column's level codes.
type FeatureVariance struct {
	Column   string
	Variance float64
}

// VarianceReport partitions columns by the variance of their integer-encoded
// levels.
//
// Levels are coded in first-seen order, so the variance depends on row order
// and has no meaning beyond ranking near-constant against near-unique
// columns.
type VarianceReport struct {
	Threshold float64
	Mode      Mode
	Kept      []FeatureVariance
	Discarded []string
}

// Table renders the report as a section.
func (r *VarianceReport) Table() report.Table {
	title, other := "Low variance features", "high"
	if r.Mode == ModeHigh {
		title, other = "High variance features", "low"
	}
	t := report.Table{
		Title:   title,
		Caption: []string{"threshold: " + report.Float(r.Threshold)},
		Columns: []string{"feature", "variance"},
		Rows:    [][]string{},
		Notes:   []string{fmt.Sprintf("Discarded as %s variance: %s", other, report.List(r.Discarded))},
	}
	for _, k := range r.Kept {
		t.Rows = append(t.Rows, []string{k.Column, report.Float(k.Variance)})
	}
	return t
}

// VarianceTriage encodes each requested column (default: the categorical
// features) as integer codes and splits columns by the population variance
// of those codes. In low mode columns at or below threshold are kept; in
// high mode columns at or above it are kept. The rest are discarded.
func (i *Inspector) VarianceTriage(threshold float64, mode Mode, columns ...string) (*VarianceReport, error) {
	mode, err := ParseMode(string(mode))
	if err != nil {
		return nil, err
	}
	cols, err := i.selectColumns(columns, i.features.Categorical)
	if err != nil {
		return nil, err
	}
	log := i.log.WithOperation("variance_triage")
	out := &VarianceReport{Threshold: threshold, Mode: mode, Kept: []FeatureVariance{}, Discarded: []string{}}
	for _, c := range cols {
		v, err := codeVariance(c.Levels(), i.order)
		if err != nil {
			return nil, fmt.Errorf("variance of %s: %w", c.Name, err)
		}
		log.WithColumn(c.Name).Debugw("column variance", "variance", v, "order", i.order.String())
		keep := v <= threshold
		if mode == ModeHigh {
			keep = v >= threshold
		}
		if keep {
			out.Kept = append(out.Kept, FeatureVariance{Column: c.Name, Variance: v})
		} else {
			out.Discarded = append(out.Discarded, c.Name)
		}
	}
	sort.SliceStable(out.Kept, func(a, b int) bool {
		if mode == ModeHigh {
			return out.Kept[a].Variance > out.Kept[b].Variance
		}
		return out.Kept[a].Variance < out.Kept[b].Variance
	})
	for _, k := range out.Kept {
		i.printf("%s: %s\n", k.Column, report.Float(k.Variance))
	}
	i.printf("Discarded: %s\n", report.List(out.Discarded))
	return out, nil
}

// codeVariance is the population variance of level codes assigned in the
// given order. An empty column has variance 0.
func codeVariance(levels []string, order encode.Order) (float64, error) {
	v, err := stats.PopulationVariance(encode.Codes(levels, order))
	if errors.Is(err, stats.ErrEmptyInput) {
		return 0, nil
	}
	if err != nil {
		return math.NaN(), err
	}
	return v, nil
}
