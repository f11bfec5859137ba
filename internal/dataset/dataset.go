// Package dataset holds the in-memory table the inspector works on, plus the
// loaders that build one from CSV, XLSX or a SQL query.
package dataset

import (
	"errors"
	"fmt"
)

// ErrColumnNotFound is matched by ColumnNotFoundError via errors.Is.
var ErrColumnNotFound = errors.New("column not found")

// ColumnNotFoundError reports a lookup of a column name the dataset does not hold.
type ColumnNotFoundError struct {
	Dataset string
	Column  string
}

func (e *ColumnNotFoundError) Error() string {
	if e.Dataset != "" {
		return fmt.Sprintf("column %q not found in dataset %q", e.Column, e.Dataset)
	}
	return fmt.Sprintf("column %q not found", e.Column)
}

func (e *ColumnNotFoundError) Is(target error) bool { return target == ErrColumnNotFound }

// Column is a named, ordered sequence of nullable values.
type Column struct {
	Name   string
	Values []Value
}

// Nulls counts null entries.
func (c *Column) Nulls() int {
	n := 0
	for _, v := range c.Values {
		if v.IsNull() {
			n++
		}
	}
	return n
}

// Levels returns the text-coerced level of every row (nulls become NoneLevel).
func (c *Column) Levels() []string {
	out := make([]string, len(c.Values))
	for i, v := range c.Values {
		out[i] = v.Level()
	}
	return out
}

// Dataset is an ordered collection of equally long columns. It is shared by
// pointer and mutated in place; it is not safe for concurrent use.
type Dataset struct {
	Name  string
	cols  []*Column
	index map[string]int
	rows  int
}

// New returns an empty dataset.
func New(name string) *Dataset {
	return &Dataset{Name: name, index: make(map[string]int)}
}

// AddColumn appends a column. The first column fixes the row count.
func (d *Dataset) AddColumn(name string, values []Value) error {
	if _, ok := d.index[name]; ok {
		return fmt.Errorf("duplicate column %q", name)
	}
	if len(d.cols) > 0 && len(values) != d.rows {
		return fmt.Errorf("column %q has %d rows, dataset has %d", name, len(values), d.rows)
	}
	if len(d.cols) == 0 {
		d.rows = len(values)
	}
	d.index[name] = len(d.cols)
	d.cols = append(d.cols, &Column{Name: name, Values: values})
	return nil
}

// Columns lists column names in order.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.cols))
	for i, c := range d.cols {
		out[i] = c.Name
	}
	return out
}

// Has reports whether a column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.index[name]
	return ok
}

// Column returns the named column. Mutating its Values mutates the dataset.
func (d *Dataset) Column(name string) (*Column, error) {
	i, ok := d.index[name]
	if !ok {
		return nil, &ColumnNotFoundError{Dataset: d.Name, Column: name}
	}
	return d.cols[i], nil
}

// Rows is the number of rows.
func (d *Dataset) Rows() int { return d.rows }

// Width is the number of columns.
func (d *Dataset) Width() int { return len(d.cols) }

// Size is the number of cells: rows times columns.
func (d *Dataset) Size() int { return d.rows * len(d.cols) }

// Drop removes the named columns in place. All names are checked before
// anything is removed.
func (d *Dataset) Drop(names ...string) error {
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		if !d.Has(n) {
			return &ColumnNotFoundError{Dataset: d.Name, Column: n}
		}
		drop[n] = struct{}{}
	}
	if len(drop) == 0 {
		return nil
	}
	kept := d.cols[:0]
	for _, c := range d.cols {
		if _, ok := drop[c.Name]; !ok {
			kept = append(kept, c)
		}
	}
	for i := len(kept); i < len(d.cols); i++ {
		d.cols[i] = nil
	}
	d.cols = kept
	d.reindex()
	if len(d.cols) == 0 {
		d.rows = 0
	}
	return nil
}

// Row returns the values of row i in column order.
func (d *Dataset) Row(i int) []Value {
	out := make([]Value, len(d.cols))
	for j, c := range d.cols {
		out[j] = c.Values[i]
	}
	return out
}

func (d *Dataset) reindex() {
	d.index = make(map[string]int, len(d.cols))
	for i, c := range d.cols {
		d.index[c.Name] = i
	}
}
