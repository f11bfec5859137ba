package cmd

import (
	"io"

	"github.com/spf13/cobra"
)

var binColumns []string

var binsCmd = &cobra.Command{
	Use:   "bins [file]",
	Short: "Suggest Freedman-Diaconis histogram bin widths for continuous columns",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := newInspector(cmd, args, io.Discard)
		if err != nil {
			return err
		}
		rep, err := in.FreedmanDiaconisWidths(binColumns...)
		if err != nil {
			return err
		}
		doc := newDocument(in)
		doc.Add(rep.Table())
		return render(cmd, doc)
	},
}

func init() {
	rootCmd.AddCommand(binsCmd)
	binsCmd.Flags().StringSliceVar(&binColumns, "columns", nil, "columns to estimate (default: continuous features)")
}
