package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Options controls how raw text cells become values.
type Options struct {
	// MaxRows limits rows read; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, picked from the file extension.
	Delimiter rune
	// Numeric parsing locale. If DecimalSeparator is 0, auto-detect per value.
	DecimalSeparator   rune
	ThousandsSeparator rune // optional; if 0, auto-detect common separators (',' '.' space)
	// NullTokens are cell contents read as null (compared after trimming, case-sensitive).
	NullTokens []string
	// Sheet selects the XLSX sheet by name; empty means the first sheet.
	Sheet string
}

// DefaultNullTokens mirror the markers pandas treats as missing by default.
var DefaultNullTokens = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL", "None"}

// DefaultOptions returns reasonable defaults for loading.
func DefaultOptions() Options {
	return Options{NullTokens: DefaultNullTokens}
}

// FromRecords builds a dataset from a header and string rows. A column whose
// non-null cells all parse as numbers becomes numeric; otherwise every
// non-null cell stays text.
func FromRecords(name string, header []string, rows [][]string, opt Options) (*Dataset, error) {
	nulls := make(map[string]struct{}, len(opt.NullTokens))
	for _, t := range opt.NullTokens {
		nulls[t] = struct{}{}
	}
	if len(opt.NullTokens) == 0 {
		nulls[""] = struct{}{}
	}
	if opt.MaxRows > 0 && len(rows) > opt.MaxRows {
		rows = rows[:opt.MaxRows]
	}

	ds := New(name)
	seen := map[string]int{}
	for j, h := range header {
		colName := safeName(h, j)
		if n := seen[colName]; n > 0 {
			// pandas-style mangling of duplicate headers
			seen[colName]++
			colName = fmt.Sprintf("%s.%d", colName, n)
		} else {
			seen[colName] = 1
		}

		raw := make([]string, len(rows))
		isNull := make([]bool, len(rows))
		for i, rec := range rows {
			if j < len(rec) {
				raw[i] = strings.TrimSpace(rec[j])
			}
			_, isNull[i] = nulls[raw[i]]
		}
		values := inferColumn(raw, isNull, opt)
		if err := ds.AddColumn(colName, values); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

// inferColumn turns raw cells into values: numeric when every non-null cell
// parses as a number, text otherwise.
func inferColumn(raw []string, isNull []bool, opt Options) []Value {
	numeric := true
	nums := make([]float64, len(raw))
	for i, v := range raw {
		if isNull[i] {
			continue
		}
		x, ok := parseNumeric(v, opt)
		if !ok {
			numeric = false
			break
		}
		nums[i] = x
	}
	values := make([]Value, len(raw))
	for i := range raw {
		switch {
		case isNull[i]:
			values[i] = Null()
		case numeric:
			values[i] = Number(nums[i])
		default:
			values[i] = Text(raw[i])
		}
	}
	return values
}

func safeName(s string, idx int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Sprintf("Unnamed: %d", idx)
	}
	return s
}

func parseNumeric(s string, opt Options) (float64, bool) {
	raw := strings.TrimSuffix(strings.TrimSpace(s), "%")
	// Normalize spaces
	raw = strings.ReplaceAll(raw, "\u00A0", " ")
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, "xX") {
		return 0, false
	}
	// Decide decimal separator
	dec := opt.DecimalSeparator
	thou := opt.ThousandsSeparator
	if dec == 0 {
		// auto detect
		cpos := strings.LastIndex(raw, ",")
		dpos := strings.LastIndex(raw, ".")
		if cpos >= 0 && dpos >= 0 {
			if cpos > dpos {
				dec = ','
				thou = '.'
			} else {
				dec = '.'
				thou = ','
			}
		} else if cpos >= 0 {
			dec = ','
		} else {
			dec = '.'
		}
	}
	// Remove thousands separators if they differ from decimal
	if thou == 0 {
		for _, sep := range []rune{',', '.', ' '} {
			if sep != dec {
				raw = strings.ReplaceAll(raw, string(sep), "")
			}
		}
	} else if thou != dec {
		raw = strings.ReplaceAll(raw, string(thou), "")
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
