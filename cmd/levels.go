package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datalens-cli/internal/encode"
	"github.com/KaramelBytes/datalens-cli/internal/inspect"
)

var (
	rareColumns   []string
	rareThreshold float64
	rareMinLevels int

	varColumns   []string
	varThreshold float64
	varMode      string
	varOrder     string

	unseenColumns []string
)

var rareCmd = &cobra.Command{
	Use:   "rare [file]",
	Short: "List categorical levels at or below a frequency threshold",
	Long: `For each categorical column, count distinct levels (nulls count as "NONE")
and list the levels whose share of rows is at or below --threshold, a
fraction between 0 and 1. Columns with fewer than --min-levels levels are
skipped and listed at the end.

Numeric cells become levels in their shortest text form, so 1.0 and 1 are the
same level "1" and 2.50 is "2.5".`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := newInspector(cmd, args, io.Discard)
		if err != nil {
			return err
		}
		threshold, minLevels := cfg.RareThreshold, cfg.MinLevels
		if cmd.Flags().Changed("threshold") {
			threshold = rareThreshold
		}
		if cmd.Flags().Changed("min-levels") {
			minLevels = rareMinLevels
		}
		rep, err := in.RareLevels(threshold, minLevels, rareColumns...)
		if err != nil {
			return err
		}
		doc := newDocument(in)
		doc.Add(rep.Tables()...)
		return render(cmd, doc)
	},
}

var varianceCmd = &cobra.Command{
	Use:   "variance [file]",
	Short: "Triage categorical columns by the variance of their level codes",
	Long: `Encode each categorical column's levels as integers and compute the
population variance of the codes. Levels are numbered in first-seen order, or
in sorted order with --order lexical. In low mode columns at or below
--threshold are kept; in high mode columns at or above it are kept.

Numeric cells become levels in their shortest text form, so 1.0 and 1 are the
same level "1" and 2.50 is "2.5".

The codes are arbitrary, so the variance is a heuristic: it separates
near-constant columns from near-unique ones and nothing more.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, modeName := cfg.VarianceThreshold, cfg.VarianceMode
		if cmd.Flags().Changed("threshold") {
			threshold = varThreshold
		}
		if cmd.Flags().Changed("mode") {
			modeName = varMode
		}
		mode, err := inspect.ParseMode(modeName)
		if err != nil {
			return err
		}
		var extra []inspect.Option
		if cmd.Flags().Changed("order") {
			order, err := encode.ParseOrder(varOrder)
			if err != nil {
				return err
			}
			extra = append(extra, inspect.WithEncodingOrder(order))
		}
		in, err := newInspector(cmd, args, io.Discard, extra...)
		if err != nil {
			return err
		}
		rep, err := in.VarianceTriage(threshold, mode, varColumns...)
		if err != nil {
			return err
		}
		doc := newDocument(in)
		doc.Add(rep.Table())
		return render(cmd, doc)
	},
}

var unseenCmd = &cobra.Command{
	Use:   "unseen [file]",
	Short: "List categorical levels present in validation but not in training",
	Long: `Compare categorical levels between training and validation rows. Rows are
split by the --split column (0 = train, 1 = validation), or the main dataset
is compared with --valid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := newInspector(cmd, args, io.Discard)
		if err != nil {
			return err
		}
		rep, err := in.UnseenValidationLevels(unseenColumns...)
		if err != nil {
			return err
		}
		doc := newDocument(in)
		doc.Add(rep.Table())
		return render(cmd, doc)
	},
}

func init() {
	rootCmd.AddCommand(rareCmd)
	rareCmd.Flags().StringSliceVar(&rareColumns, "columns", nil, "columns to analyze (default: categorical features)")
	rareCmd.Flags().Float64Var(&rareThreshold, "threshold", 1.0, "report levels with frequency <= this fraction (default from config)")
	rareCmd.Flags().IntVar(&rareMinLevels, "min-levels", 1, "skip columns with fewer distinct levels (default from config)")

	rootCmd.AddCommand(varianceCmd)
	varianceCmd.Flags().StringSliceVar(&varColumns, "columns", nil, "columns to analyze (default: categorical features)")
	varianceCmd.Flags().Float64Var(&varThreshold, "threshold", 0, "variance threshold; accepts inf and -inf (default from config)")
	varianceCmd.Flags().StringVar(&varMode, "mode", "low", "keep low or high variance columns (default from config)")
	varianceCmd.Flags().StringVar(&varOrder, "order", "first_seen", "level numbering: first_seen or lexical (default from config)")

	rootCmd.AddCommand(unseenCmd)
	unseenCmd.Flags().StringSliceVar(&unseenColumns, "columns", nil, "columns to compare (default: categorical features)")
}
