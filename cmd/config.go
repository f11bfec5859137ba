package cmd

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/datalens-cli/internal/config"
	"github.com/KaramelBytes/datalens-cli/internal/encode"
	"github.com/KaramelBytes/datalens-cli/internal/report"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set datalens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "null_tokens: %s\n", report.List(cfg.NullTokens))
		fmt.Fprintf(out, "delimiter: %s\n", orAuto(cfg.Delimiter))
		fmt.Fprintf(out, "decimal_separator: %s\n", orAuto(cfg.DecimalSeparator))
		fmt.Fprintf(out, "thousands_separator: %s\n", orAuto(cfg.ThousandsSeparator))
		fmt.Fprintf(out, "max_rows: %d\n", cfg.MaxRows)
		if cfg.FeaturesFile != "" {
			fmt.Fprintf(out, "features_file: %s\n", cfg.FeaturesFile)
		}
		fmt.Fprintf(out, "split_column: %s\n", cfg.SplitColumn)
		fmt.Fprintf(out, "missing_threshold: %s\n", report.Float(cfg.MissingThreshold))
		fmt.Fprintf(out, "rare_threshold: %s\n", report.Float(cfg.RareThreshold))
		fmt.Fprintf(out, "min_levels: %d\n", cfg.MinLevels)
		fmt.Fprintf(out, "variance_threshold: %s\n", report.Float(cfg.VarianceThreshold))
		fmt.Fprintf(out, "variance_mode: %s\n", cfg.VarianceMode)
		fmt.Fprintf(out, "variance_order: %s\n", cfg.VarianceOrder)
		fmt.Fprintf(out, "fill_value: %s\n", report.Float(cfg.FillValue))
		fmt.Fprintf(out, "output_format: %s\n", cfg.OutputFormat)
		fmt.Fprintf(out, "color: %t\n", cfg.Color)
		fmt.Fprintf(out, "sql_driver: %s\n", cfg.SQLDriver)
		fmt.Fprintf(out, "sql_dsn: %s\n", mask(cfg.SQLDSN))
		fmt.Fprintf(out, "logging: level=%s format=%s output=%s\n", cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "null_tokens":
			cfg.NullTokens = splitList(val)
		case "delimiter":
			cfg.Delimiter = val
		case "decimal_separator":
			cfg.DecimalSeparator = val
		case "thousands_separator":
			cfg.ThousandsSeparator = val
		case "max_rows":
			i, err := strconv.Atoi(val)
			if err != nil || i < 0 {
				return fmt.Errorf("invalid int for max_rows: %v", val)
			}
			cfg.MaxRows = i
		case "features_file":
			cfg.FeaturesFile = val
		case "split_column":
			cfg.SplitColumn = val
		case "missing_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for missing_threshold: %w", err)
			}
			cfg.MissingThreshold = f
		case "rare_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for rare_threshold: %w", err)
			}
			cfg.RareThreshold = f
		case "min_levels":
			i, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("invalid int for min_levels: %w", err)
			}
			cfg.MinLevels = i
		case "variance_threshold":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || math.IsNaN(f) {
				return fmt.Errorf("invalid float for variance_threshold: %v", val)
			}
			cfg.VarianceThreshold = f
		case "variance_mode":
			cfg.VarianceMode = strings.ToLower(val)
		case "variance_order":
			o, err := encode.ParseOrder(val)
			if err != nil {
				return err
			}
			cfg.VarianceOrder = o.String()
		case "fill_value":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil {
				return fmt.Errorf("invalid float for fill_value: %w", err)
			}
			cfg.FillValue = f
		case "output_format":
			cfg.OutputFormat = val
		case "color":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return fmt.Errorf("invalid bool for color: %w", err)
			}
			cfg.Color = b
		case "sql_driver":
			cfg.SQLDriver = val
		case "sql_dsn":
			cfg.SQLDSN = val
		case "logging.level":
			cfg.Logging.Level = val
		case "logging.format":
			cfg.Logging.Format = val
		case "logging.output":
			cfg.Logging.Output = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}

func orAuto(s string) string {
	if s == "" {
		return "auto"
	}
	return s
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
