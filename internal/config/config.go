package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/KaramelBytes/datalens-cli/internal/dataset"
)

// Global configuration structure.
type Global struct {
	// Loading
	NullTokens         []string `mapstructure:"null_tokens" yaml:"null_tokens"`
	Delimiter          string   `mapstructure:"delimiter" yaml:"delimiter"`
	DecimalSeparator   string   `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	ThousandsSeparator string   `mapstructure:"thousands_separator" yaml:"thousands_separator"`
	MaxRows            int      `mapstructure:"max_rows" yaml:"max_rows"`
	FeaturesFile       string   `mapstructure:"features_file" yaml:"features_file"`
	SplitColumn        string   `mapstructure:"split_column" yaml:"split_column"`

	// Analysis defaults
	MissingThreshold  float64 `mapstructure:"missing_threshold" yaml:"missing_threshold"`
	RareThreshold     float64 `mapstructure:"rare_threshold" yaml:"rare_threshold"`
	MinLevels         int     `mapstructure:"min_levels" yaml:"min_levels"`
	VarianceThreshold float64 `mapstructure:"variance_threshold" yaml:"variance_threshold"`
	VarianceMode      string  `mapstructure:"variance_mode" yaml:"variance_mode"`
	VarianceOrder     string  `mapstructure:"variance_order" yaml:"variance_order"`
	FillValue         float64 `mapstructure:"fill_value" yaml:"fill_value"`

	// Output
	OutputFormat string `mapstructure:"output_format" yaml:"output_format"`
	Color        bool   `mapstructure:"color" yaml:"color"`

	// SQL source
	SQLDriver string `mapstructure:"sql_driver" yaml:"sql_driver"`
	SQLDSN    string `mapstructure:"sql_dsn" yaml:"sql_dsn"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Output string `mapstructure:"output" yaml:"output"`
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".datalens"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.datalens/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := configDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DATALENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("null_tokens", dataset.DefaultNullTokens)
	v.SetDefault("delimiter", "")
	v.SetDefault("decimal_separator", "")
	v.SetDefault("thousands_separator", "")
	v.SetDefault("max_rows", 0)
	v.SetDefault("features_file", "")
	v.SetDefault("split_column", "is_valid")
	v.SetDefault("missing_threshold", 0.0)
	v.SetDefault("rare_threshold", 1.0)
	v.SetDefault("min_levels", 1)
	v.SetDefault("variance_threshold", math.Inf(1))
	v.SetDefault("variance_mode", "low")
	v.SetDefault("variance_order", "first_seen")
	v.SetDefault("fill_value", 0.0)
	v.SetDefault("output_format", "text")
	v.SetDefault("color", true)
	v.SetDefault("sql_driver", "mysql")
	v.SetDefault("sql_dsn", "")
	// Logging defaults
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stderr")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
