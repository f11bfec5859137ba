package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/datalens-cli/internal/inspect"
)

var inspectOutput string

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Run every diagnostic and print one report",
	Long: `Run missingness, bin-width, rare-level, variance and unseen-level analyses
with the configured thresholds. Sections are skipped when their features are
not configured. Use --output to write the report to a file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := newInspector(cmd, args, io.Discard)
		if err != nil {
			return err
		}
		mode, err := inspect.ParseMode(cfg.VarianceMode)
		if err != nil {
			return err
		}
		doc, err := in.Run(inspect.RunOptions{
			MissingThreshold:  cfg.MissingThreshold,
			RareThreshold:     cfg.RareThreshold,
			MinLevels:         cfg.MinLevels,
			VarianceThreshold: cfg.VarianceThreshold,
			VarianceMode:      mode,
		})
		if err != nil {
			return err
		}
		if inspectOutput == "" {
			return render(cmd, doc)
		}
		return writeReport(cmd, doc, inspectOutput)
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVarP(&inspectOutput, "output", "o", "", "write the report to this file (format from --format or the extension)")
}
