// Package inspect runs diagnostic summaries over an in-memory dataset:
// missing-value percentages, Freedman–Diaconis bin widths, rare categorical
// levels, variance-based feature triage and train/validation level
// consistency.
//
// Column classes come from a FeatureSet supplied by the caller; they are never
// inferred from value types. Operations that mutate the dataset do so in
// place, and the caller sees the change immediately.
package inspect

import (
	"fmt"
	"io"

	"github.com/KaramelBytes/datalens-cli/internal/dataset"
	"github.com/KaramelBytes/datalens-cli/internal/encode"
	"github.com/KaramelBytes/datalens-cli/internal/logger"
)

// FeatureSet names the categorical and continuous columns, the split
// indicator column (0 = train, 1 = validation) and the target column.
type FeatureSet struct {
	Categorical []string
	Continuous  []string
	Split       string
	Target      string
}

// Inspector runs analyses over a dataset and, optionally, a validation
// dataset with the same columns. It is not safe for concurrent use.
type Inspector struct {
	data     *dataset.Dataset
	valid    *dataset.Dataset
	features FeatureSet
	out      io.Writer
	log      *logger.Logger
	order    encode.Order
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithValidation pairs the dataset with a validation dataset. Drops and
// categorical fills are applied to both.
func WithValidation(v *dataset.Dataset) Option {
	return func(i *Inspector) { i.valid = v }
}

// WithOutput sets where human-readable summaries are printed. The default
// discards them.
func WithOutput(w io.Writer) Option {
	return func(i *Inspector) { i.out = w }
}

// WithLogger sets the structured logger.
func WithLogger(l *logger.Logger) Option {
	return func(i *Inspector) { i.log = l }
}

// WithEncodingOrder sets how categorical levels are numbered before their
// variance is taken. The default is encode.FirstSeen.
func WithEncodingOrder(o encode.Order) Option {
	return func(i *Inspector) { i.order = o }
}

// New returns an Inspector over data.
func New(data *dataset.Dataset, features FeatureSet, opts ...Option) *Inspector {
	i := &Inspector{
		data:     data,
		features: features,
		out:      io.Discard,
		log:      logger.NewNop(),
	}
	for _, o := range opts {
		o(i)
	}
	i.log = i.log.WithDataset(data.Name)
	return i
}

// Dataset returns the inspected dataset.
func (i *Inspector) Dataset() *dataset.Dataset { return i.data }

// Validation returns the paired validation dataset, or nil.
func (i *Inspector) Validation() *dataset.Dataset { return i.valid }

// Features returns the current feature set.
func (i *Inspector) Features() FeatureSet { return i.features }

func (i *Inspector) printf(format string, args ...any) {
	fmt.Fprintf(i.out, format, args...)
}

// selectColumns returns requested when given, the fallback list otherwise, and
// resolves every name against the dataset.
func (i *Inspector) selectColumns(requested, fallback []string) ([]*dataset.Column, error) {
	names := requested
	if len(names) == 0 {
		names = fallback
	}
	out := make([]*dataset.Column, 0, len(names))
	for _, n := range names {
		c, err := i.data.Column(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// forget removes dropped columns from the feature lists.
func (i *Inspector) forget(dropped []string) {
	gone := make(map[string]struct{}, len(dropped))
	for _, d := range dropped {
		gone[d] = struct{}{}
	}
	keep := func(names []string) []string {
		out := names[:0:0]
		for _, n := range names {
			if _, ok := gone[n]; !ok {
				out = append(out, n)
			}
		}
		return out
	}
	i.features.Categorical = keep(i.features.Categorical)
	i.features.Continuous = keep(i.features.Continuous)
}
