package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/KaramelBytes/datalens-cli/internal/encode"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for valid values.
func (c *Global) Validate() error {
	var errs ValidationErrors

	if c.MissingThreshold < 0 || c.MissingThreshold > 100 {
		errs = append(errs, ValidationError{Field: "missing_threshold", Message: "must be between 0 and 100"})
	}
	if c.RareThreshold < 0 {
		errs = append(errs, ValidationError{Field: "rare_threshold", Message: "must be a non-negative fraction"})
	}
	if c.MinLevels < 0 {
		errs = append(errs, ValidationError{Field: "min_levels", Message: "must not be negative"})
	}
	switch c.VarianceMode {
	case "low", "high":
	default:
		errs = append(errs, ValidationError{Field: "variance_mode", Message: fmt.Sprintf("must be low or high, got %q", c.VarianceMode)})
	}
	if _, err := encode.ParseOrder(c.VarianceOrder); err != nil {
		errs = append(errs, ValidationError{Field: "variance_order", Message: err.Error()})
	}
	switch strings.ToLower(c.OutputFormat) {
	case "", "text", "txt", "markdown", "md", "html", "yaml", "yml":
	default:
		errs = append(errs, ValidationError{Field: "output_format", Message: fmt.Sprintf("unsupported format %q", c.OutputFormat)})
	}
	if _, err := c.DelimiterRune(); err != nil {
		errs = append(errs, ValidationError{Field: "delimiter", Message: err.Error()})
	}
	switch c.SQLDriver {
	case "", "mysql", "postgres":
	default:
		errs = append(errs, ValidationError{Field: "sql_driver", Message: fmt.Sprintf("must be mysql or postgres, got %q", c.SQLDriver)})
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{Field: "logging.level", Message: fmt.Sprintf("unknown level %q", c.Logging.Level)})
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		errs = append(errs, ValidationError{Field: "logging.format", Message: fmt.Sprintf("must be text or json, got %q", c.Logging.Format)})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DelimiterRune resolves the configured CSV delimiter; 0 means auto-detect.
func (c *Global) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "":
		return 0, nil
	case "tab", "\\t", "\t":
		return '\t', nil
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return 0, fmt.Errorf("unsupported delimiter %q", c.Delimiter)
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r, nil
}

// SeparatorRune resolves a decimal or thousands separator setting.
func SeparatorRune(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ".", "dot":
		return '.', nil
	case "space":
		return ' ', nil
	default:
		return 0, fmt.Errorf("unsupported separator %q (use ','|'.'|'space')", s)
	}
}
