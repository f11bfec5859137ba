package inspect

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/datalens-cli/internal/dataset"
)

// ErrConfiguration is matched by ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("invalid inspector configuration")

// ErrColumnNotFound is an alias of the dataset lookup sentinel so callers of
// this package need not import dataset to match it.
var ErrColumnNotFound = dataset.ErrColumnNotFound

// ConfigurationError reports an input the inspector refuses to run with, such
// as a split column whose values are not exactly {0, 1}.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

// ColumnTypeError reports a value whose type does not fit the analysis, such
// as text in a continuous column.
type ColumnTypeError struct {
	Column string
	Row    int
	Value  string
	Want   string
}

func (e *ColumnTypeError) Error() string {
	return fmt.Sprintf("column %q row %d: want %s value, got %q", e.Column, e.Row, e.Want, e.Value)
}
