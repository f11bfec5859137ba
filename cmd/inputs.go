package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/datalens-cli/internal/config"
	"github.com/KaramelBytes/datalens-cli/internal/dataset"
	"github.com/KaramelBytes/datalens-cli/internal/encode"
	"github.com/KaramelBytes/datalens-cli/internal/inspect"
	"github.com/KaramelBytes/datalens-cli/internal/report"
	"github.com/KaramelBytes/datalens-cli/internal/utils"
)

// featureFiles are looked up from the dataset's directory upwards when no
// features file is configured.
var featureFiles = []string{"datalens.features.yaml", "features.yaml"}

const sqlTimeout = 30 * time.Second

// loadOptions translates configuration into loader options.
func loadOptions() (dataset.Options, error) {
	opt := dataset.DefaultOptions()
	opt.MaxRows = cfg.MaxRows
	opt.Sheet = flagSheet
	if len(cfg.NullTokens) > 0 {
		opt.NullTokens = cfg.NullTokens
	}
	d, err := cfg.DelimiterRune()
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	if opt.DecimalSeparator, err = cfgpkg.SeparatorRune(cfg.DecimalSeparator); err != nil {
		return opt, fmt.Errorf("decimal separator: %w", err)
	}
	if opt.ThousandsSeparator, err = cfgpkg.SeparatorRune(cfg.ThousandsSeparator); err != nil {
		return opt, fmt.Errorf("thousands separator: %w", err)
	}
	return opt, nil
}

// loadDataset reads the main dataset from args[0], or from --query when set.
func loadDataset(cmd *cobra.Command, args []string, opt dataset.Options) (*dataset.Dataset, error) {
	if flagQuery != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("give either a file or --query, not both")
		}
		if cfg.SQLDSN == "" {
			return nil, fmt.Errorf("--query needs a DSN (--dsn or sql_dsn in config)")
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), sqlTimeout)
		defer cancel()
		db, err := dataset.OpenSQL(ctx, cfg.SQLDriver, cfg.SQLDSN)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		log.Debugw("loading query", "driver", cfg.SQLDriver)
		return dataset.Query(ctx, db, "query", flagQuery, opt)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("no dataset given (pass a file or --query)")
	}
	log.Debugw("loading dataset", "path", args[0])
	return dataset.Load(args[0], opt)
}

// resolveFeatures merges the features file with flag overrides. A split
// column that only comes from the configured default is kept when the
// dataset actually holds it.
func resolveFeatures(ds *dataset.Dataset, args []string) (inspect.FeatureSet, error) {
	var fs inspect.FeatureSet
	path := cfg.FeaturesFile
	if path == "" {
		start := ""
		if len(args) > 0 {
			start = args[0]
		}
		found, err := utils.FindUp(start, featureFiles...)
		if err != nil {
			return fs, err
		}
		path = found
	}
	if path != "" {
		f, err := cfgpkg.LoadFeatures(path)
		if err != nil {
			return fs, err
		}
		log.Debugw("features loaded", "path", path, "categorical", len(f.Categorical), "continuous", len(f.Continuous))
		fs = inspect.FeatureSet{
			Categorical: f.Categorical,
			Continuous:  f.Continuous,
			Split:       f.Split,
			Target:      f.Target,
		}
	}
	if len(flagCategorical) > 0 {
		fs.Categorical = flagCategorical
	}
	if len(flagContinuous) > 0 {
		fs.Continuous = flagContinuous
	}
	if flagTarget != "" {
		fs.Target = flagTarget
	}
	switch {
	case flagSplit != "":
		fs.Split = flagSplit
	case fs.Split == "" && ds.Has(cfg.SplitColumn):
		fs.Split = cfg.SplitColumn
	}
	return fs, nil
}

// newInspector loads the inputs named on the command line. out receives the
// inspector's summary lines.
func newInspector(cmd *cobra.Command, args []string, out io.Writer, extra ...inspect.Option) (*inspect.Inspector, error) {
	opt, err := loadOptions()
	if err != nil {
		return nil, err
	}
	ds, err := loadDataset(cmd, args, opt)
	if err != nil {
		return nil, err
	}
	fs, err := resolveFeatures(ds, args)
	if err != nil {
		return nil, err
	}
	order, err := encode.ParseOrder(cfg.VarianceOrder)
	if err != nil {
		return nil, err
	}
	opts := []inspect.Option{inspect.WithLogger(log), inspect.WithOutput(out), inspect.WithEncodingOrder(order)}
	if flagValid != "" {
		valid, err := dataset.Load(flagValid, opt)
		if err != nil {
			return nil, fmt.Errorf("validation dataset: %w", err)
		}
		opts = append(opts, inspect.WithValidation(valid))
	}
	log.Infow("dataset loaded", "dataset", ds.Name, "rows", ds.Rows(), "columns", ds.Width())
	return inspect.New(ds, fs, append(opts, extra...)...), nil
}

// render writes a document in the configured format.
func render(cmd *cobra.Command, doc *report.Document) error {
	format, err := report.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}
	return report.Render(cmd.OutOrStdout(), doc, report.Options{Format: format, Color: cfg.Color})
}

// newDocument starts a report for the inspector's dataset.
func newDocument(in *inspect.Inspector) *report.Document {
	ds := in.Dataset()
	return report.NewDocument(ds.Name, ds.Rows(), ds.Width())
}

// writeReport renders a document to a file. Without --format the format
// follows the file extension; text written to a file is never colored.
func writeReport(cmd *cobra.Command, doc *report.Document, path string) error {
	format, err := report.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("format") {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".markdown":
			format = report.FormatMarkdown
		case ".html", ".htm":
			format = report.FormatHTML
		case ".yaml", ".yml":
			format = report.FormatYAML
		case ".txt":
			format = report.FormatText
		}
	}
	var buf bytes.Buffer
	if err := report.Render(&buf, doc, report.Options{Format: format}); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote report to %s\n", path)
	return nil
}
