package inspect

import (
	"math"

	"github.com/KaramelBytes/datalens-cli/internal/report"
)

// RunOptions carries the thresholds a full inspection uses.
type RunOptions struct {
	MissingThreshold  float64
	RareThreshold     float64
	MinLevels         int
	VarianceThreshold float64
	VarianceMode      Mode
}

// DefaultRunOptions mirrors the per-operation defaults.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		RareThreshold:     1.0,
		MinLevels:         1,
		VarianceThreshold: math.Inf(1),
		VarianceMode:      ModeLow,
	}
}

// Run performs every read-only analysis and collects the results into one
// document. Sections whose features are not configured are left out; the
// unseen-levels section needs a paired validation dataset or a split column.
func (i *Inspector) Run(opts RunOptions) (*report.Document, error) {
	doc := report.NewDocument(i.data.Name, i.data.Rows(), i.data.Width())
	log := i.log.WithOperation("run")
	log.Debugw("starting inspection", "id", doc.ID.String())

	missing, err := i.MissingPercentages()
	if err != nil {
		return nil, err
	}
	doc.Add(missing.Table())
	above := i.ColumnsAboveMissingThreshold(opts.MissingThreshold)
	doc.Add(report.Table{
		Title: "Columns above missing threshold",
		Notes: []string{"threshold " + report.Float(opts.MissingThreshold) + "%: " + report.List(above)},
	})

	if len(i.features.Continuous) > 0 {
		bins, err := i.FreedmanDiaconisWidths()
		if err != nil {
			return nil, err
		}
		doc.Add(bins.Table())
	}

	if len(i.features.Categorical) > 0 {
		rare, err := i.RareLevels(opts.RareThreshold, opts.MinLevels)
		if err != nil {
			return nil, err
		}
		doc.Add(rare.Tables()...)

		mode := opts.VarianceMode
		if mode == "" {
			mode = ModeLow
		}
		variance, err := i.VarianceTriage(opts.VarianceThreshold, mode)
		if err != nil {
			return nil, err
		}
		doc.Add(variance.Table())

		if i.valid != nil || i.features.Split != "" {
			unseen, err := i.UnseenValidationLevels()
			if err != nil {
				return nil, err
			}
			doc.Add(unseen.Table())
		}
	}
	log.Infow("inspection complete", "sections", len(doc.Sections))
	return doc, nil
}
