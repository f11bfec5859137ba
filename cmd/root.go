package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/datalens-cli/internal/config"
	"github.com/KaramelBytes/datalens-cli/internal/logger"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Input flags (override config if set)
	flagFeatures    string
	flagCategorical []string
	flagContinuous  []string
	flagSplit       string
	flagTarget      string
	flagValid       string
	flagSheet       string
	flagDelimiter   string
	flagDecimal     string
	flagThousands   string
	flagMaxRows     int
	flagSQLDriver   string
	flagDSN         string
	flagQuery       string

	// Output flags
	flagFormat  string
	flagNoColor bool

	// Loaded configuration and logger
	cfg *cfgpkg.Global
	log *logger.Logger
)

var rootCmd = &cobra.Command{
	Use:   "datalens",
	Short: "datalens: quick diagnostics for tabular datasets",
	Long: `datalens inspects a tabular dataset (or a train/validation pair) and reports
missing values, Freedman-Diaconis bin widths, rare categorical levels,
variance-based feature triage and categorical levels unseen in training.

Datasets load from CSV/TSV, XLSX or a SQL query. Column classes come from a
features file (categorical, continuous, split, target) or from flags.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&cfgFile, "config", "", "config file (default is ~/.datalens/config.yaml)")
	f.BoolVar(&debug, "debug", false, "enable debug logging")

	f.StringVar(&flagFeatures, "features", "", "features YAML file (default: features.yaml next to the dataset or above it)")
	f.StringSliceVar(&flagCategorical, "categorical", nil, "categorical columns (comma-separated, overrides features file)")
	f.StringSliceVar(&flagContinuous, "continuous", nil, "continuous columns (comma-separated, overrides features file)")
	f.StringVar(&flagSplit, "split", "", "split indicator column: 0 = train, 1 = validation")
	f.StringVar(&flagTarget, "target", "", "target column, excluded from train-side missingness with --valid")
	f.StringVar(&flagValid, "valid", "", "validation dataset paired with the main dataset")

	f.StringVar(&flagSheet, "sheet", "", "XLSX: sheet name (default: first sheet)")
	f.StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (default: by extension)")
	f.StringVar(&flagDecimal, "decimal", "", "decimal separator for numbers: '.'|'comma' (auto-detect if omitted)")
	f.StringVar(&flagThousands, "thousands", "", "thousands separator for numbers: ','|'.'|'space' (auto-detect if omitted)")
	f.IntVar(&flagMaxRows, "max-rows", 0, "maximum rows to load (0 = unlimited)")

	f.StringVar(&flagSQLDriver, "sql-driver", "", "SQL driver: mysql | postgres (overrides config)")
	f.StringVar(&flagDSN, "dsn", "", "SQL data source name (overrides config)")
	f.StringVar(&flagQuery, "query", "", "load the dataset from this SQL query instead of a file")

	f.StringVar(&flagFormat, "format", "", "output format: text | markdown | html | yaml (overrides config)")
	f.BoolVar(&flagNoColor, "no-color", false, "disable colored text output")
}

// setup loads .env and configuration, applies flag overrides and builds the
// logger. It runs before every command.
func setup(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	// Apply CLI overrides if provided
	f := cmd.Flags()
	if f.Changed("delimiter") {
		cfg.Delimiter = flagDelimiter
	}
	if f.Changed("decimal") {
		cfg.DecimalSeparator = flagDecimal
	}
	if f.Changed("thousands") {
		cfg.ThousandsSeparator = flagThousands
	}
	if f.Changed("max-rows") && flagMaxRows >= 0 {
		cfg.MaxRows = flagMaxRows
	}
	if f.Changed("features") {
		cfg.FeaturesFile = flagFeatures
	}
	if f.Changed("sql-driver") {
		cfg.SQLDriver = flagSQLDriver
	}
	if f.Changed("dsn") {
		cfg.SQLDSN = flagDSN
	}
	if f.Changed("format") {
		cfg.OutputFormat = flagFormat
	}
	if flagNoColor {
		cfg.Color = false
	}
	if debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logger.New(&cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	log = l
	log.Debugw("configuration loaded", "config_file", cfgFile, "format", cfg.OutputFormat)
	return nil
}
