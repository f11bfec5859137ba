package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datalens-cli/internal/dataset"
	"github.com/KaramelBytes/datalens-cli/internal/inspect"
	"github.com/KaramelBytes/datalens-cli/internal/report"
)

var (
	misColumns   []string
	misThreshold float64

	dropThreshold   float64
	dropOutput      string
	dropValidOutput string

	fillKind        string
	fillValue       float64
	fillColumns     []string
	fillOutput      string
	fillValidOutput string
)

var missingCmd = &cobra.Command{
	Use:   "missing [file]",
	Short: "Report the percentage of missing values per column",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := newInspector(cmd, args, io.Discard)
		if err != nil {
			return err
		}
		threshold := cfg.MissingThreshold
		if cmd.Flags().Changed("threshold") {
			threshold = misThreshold
		}
		rep, err := in.MissingPercentages(misColumns...)
		if err != nil {
			return err
		}
		doc := newDocument(in)
		doc.Add(rep.Table(), report.Table{
			Title: "Columns above missing threshold",
			Notes: []string{fmt.Sprintf("threshold %s%%: %s", report.Float(threshold), report.List(in.ColumnsAboveMissingThreshold(threshold)))},
		})
		return render(cmd, doc)
	},
}

var dropMissingCmd = &cobra.Command{
	Use:   "drop-missing [file]",
	Short: "Drop columns whose missing percentage exceeds a threshold",
	Long: `Drop every column whose missing percentage is strictly above --threshold.
With --valid the percentage is taken over both datasets and the column is
dropped from both. Use --output (and --valid-output) to write the result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := newInspector(cmd, args, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		threshold := cfg.MissingThreshold
		if cmd.Flags().Changed("threshold") {
			threshold = dropThreshold
		}
		if _, err := in.DropColumnsAboveThreshold(threshold); err != nil {
			return err
		}
		return writeOutputs(cmd, in, dropOutput, dropValidOutput)
	},
}

var fillCmd = &cobra.Command{
	Use:   "fill [file]",
	Short: "Fill missing values in categorical and continuous columns",
	Long: `Fill nulls in place. Categorical columns get the level "NONE" and are
coerced to text (in the --valid dataset too); continuous columns get --value.
Use --output (and --valid-output) to write the result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := strings.ToLower(strings.TrimSpace(fillKind))
		switch kind {
		case "all", "categorical", "continuous":
		default:
			return fmt.Errorf("unsupported --kind: %s (use all|categorical|continuous)", fillKind)
		}
		if len(fillColumns) > 0 && kind == "all" {
			return fmt.Errorf("--columns needs --kind categorical or continuous")
		}
		in, err := newInspector(cmd, args, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		value := cfg.FillValue
		if cmd.Flags().Changed("value") {
			value = fillValue
		}

		var sections []report.Table
		if kind == "all" || kind == "categorical" {
			res, err := in.FillMissingCategorical(fillColumns...)
			if err != nil {
				return err
			}
			sections = append(sections, inspect.FillTable("Filled categorical", res))
		}
		if kind == "all" || kind == "continuous" {
			res, err := in.FillMissingContinuous(value, fillColumns...)
			if err != nil {
				return err
			}
			sections = append(sections, inspect.FillTable("Filled continuous", res))
		}
		if err := writeOutputs(cmd, in, fillOutput, fillValidOutput); err != nil {
			return err
		}
		doc := newDocument(in)
		doc.Add(sections...)
		return render(cmd, doc)
	},
}

// writeOutputs writes the (mutated) datasets as CSV when paths are given.
func writeOutputs(cmd *cobra.Command, in *inspect.Inspector, output, validOutput string) error {
	if validOutput != "" && in.Validation() == nil {
		return fmt.Errorf("--valid-output needs --valid")
	}
	write := func(ds *dataset.Dataset, path string) error {
		if path == "" {
			return nil
		}
		if err := ds.WriteCSV(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (%d rows, %d columns)\n", path, ds.Rows(), ds.Width())
		return nil
	}
	if err := write(in.Dataset(), output); err != nil {
		return err
	}
	if in.Validation() != nil {
		return write(in.Validation(), validOutput)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(missingCmd)
	missingCmd.Flags().StringSliceVar(&misColumns, "columns", nil, "restrict the report to these columns")
	missingCmd.Flags().Float64Var(&misThreshold, "threshold", 0, "percentage above which columns are listed (default from config)")

	rootCmd.AddCommand(dropMissingCmd)
	dropMissingCmd.Flags().Float64Var(&dropThreshold, "threshold", 0, "drop columns with more than this percentage missing (default from config)")
	dropMissingCmd.Flags().StringVarP(&dropOutput, "output", "o", "", "write the resulting dataset as CSV")
	dropMissingCmd.Flags().StringVar(&dropValidOutput, "valid-output", "", "write the resulting validation dataset as CSV")

	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().StringVar(&fillKind, "kind", "all", "which columns to fill: all | categorical | continuous")
	fillCmd.Flags().Float64Var(&fillValue, "value", 0, "fill value for continuous columns (default from config)")
	fillCmd.Flags().StringSliceVar(&fillColumns, "columns", nil, "columns to fill (default: the features of --kind)")
	fillCmd.Flags().StringVarP(&fillOutput, "output", "o", "", "write the resulting dataset as CSV")
	fillCmd.Flags().StringVar(&fillValidOutput, "valid-output", "", "write the resulting validation dataset as CSV")
}
