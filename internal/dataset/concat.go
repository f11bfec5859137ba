package dataset

import "fmt"

// Concat stacks train rows on top of valid rows and appends a split indicator
// column holding 0 for train rows and 1 for valid rows. Columns missing on one
// side are null on that side's rows. Column order is train's, then any
// columns only valid holds.
func Concat(train, valid *Dataset, split string) (*Dataset, error) {
	if train.Has(split) || valid.Has(split) {
		return nil, fmt.Errorf("split column %q already exists", split)
	}
	names := train.Columns()
	for _, n := range valid.Columns() {
		if !train.Has(n) {
			names = append(names, n)
		}
	}

	out := New(train.Name)
	total := train.Rows() + valid.Rows()
	for _, n := range names {
		values := make([]Value, 0, total)
		values = appendSide(values, train, n)
		values = appendSide(values, valid, n)
		if err := out.AddColumn(n, values); err != nil {
			return nil, err
		}
	}
	ind := make([]Value, 0, total)
	for i := 0; i < train.Rows(); i++ {
		ind = append(ind, Number(0))
	}
	for i := 0; i < valid.Rows(); i++ {
		ind = append(ind, Number(1))
	}
	if err := out.AddColumn(split, ind); err != nil {
		return nil, err
	}
	return out, nil
}

func appendSide(dst []Value, d *Dataset, name string) []Value {
	c, err := d.Column(name)
	if err != nil {
		for i := 0; i < d.Rows(); i++ {
			dst = append(dst, Null())
		}
		return dst
	}
	return append(dst, c.Values...)
}
