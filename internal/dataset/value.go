package dataset

import (
	"math"
	"strconv"
)

// Kind tags the content of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindText:
		return "text"
	default:
		return "null"
	}
}

// NoneLevel is the literal that replaces nulls when a column is coerced to text.
const NoneLevel = "NONE"

// Value is a single nullable table cell holding either a number or text.
type Value struct {
	kind Kind
	num  float64
	text string
}

// Null returns the null value.
func Null() Value { return Value{} }

// Number wraps a float. NaN is stored as null.
func Number(f float64) Value {
	if math.IsNaN(f) {
		return Value{}
	}
	return Value{kind: KindNumber, num: f}
}

// Text wraps a string.
func Text(s string) Value { return Value{kind: KindText, text: s} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) IsText() bool { return v.kind == KindText }

func (v Value) IsNumber() bool { return v.kind == KindNumber }

// Float returns the numeric content and whether the value is a number.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// String coerces the value to text. Numbers use the shortest decimal form
// that round-trips (1, 2.5, 0.001); null becomes the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindText:
		return v.text
	default:
		return ""
	}
}

// Level coerces the value to a categorical level: null becomes NoneLevel,
// everything else its text form.
func (v Value) Level() string {
	if v.kind == KindNull {
		return NoneLevel
	}
	return v.String()
}

// Equal reports whether two values have the same kind and content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNumber:
		return v.num == o.num
	case KindText:
		return v.text == o.text
	default:
		return true
	}
}
