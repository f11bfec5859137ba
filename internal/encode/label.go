// Package encode maps categorical text levels to dense integer codes.
package encode

import (
	"fmt"
	"sort"
	"strings"
)

// Order decides how codes are assigned to distinct levels.
type Order int

const (
	// FirstSeen numbers levels in order of first appearance.
	FirstSeen Order = iota
	// Lexical numbers levels in sorted order, like scikit-learn's LabelEncoder.
	Lexical
)

// ParseOrder maps "first_seen" (the default for "") or "lexical" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first_seen", "first-seen":
		return FirstSeen, nil
	case "lexical":
		return Lexical, nil
	}
	return FirstSeen, fmt.Errorf("unknown encoding order %q (want first_seen or lexical)", s)
}

// String returns the config spelling of the order.
func (o Order) String() string {
	if o == Lexical {
		return "lexical"
	}
	return "first_seen"
}

// LabelEncoder assigns each distinct level a code in [0, n).
type LabelEncoder struct {
	order   Order
	codes   map[string]int
	classes []string
}

// NewLabelEncoder returns an unfitted encoder.
func NewLabelEncoder(order Order) *LabelEncoder {
	return &LabelEncoder{order: order}
}

// Fit learns the level-to-code mapping.
func (e *LabelEncoder) Fit(levels []string) *LabelEncoder {
	e.codes = make(map[string]int)
	e.classes = e.classes[:0]
	for _, v := range levels {
		if _, ok := e.codes[v]; !ok {
			e.codes[v] = len(e.classes)
			e.classes = append(e.classes, v)
		}
	}
	if e.order == Lexical {
		sort.Strings(e.classes)
		for i, c := range e.classes {
			e.codes[c] = i
		}
	}
	return e
}

// Transform returns the code for every level. The second result lists levels
// the encoder was not fitted on; their rows get code -1.
func (e *LabelEncoder) Transform(levels []string) ([]int, []string) {
	out := make([]int, len(levels))
	var unseen []string
	seen := map[string]struct{}{}
	for i, v := range levels {
		code, ok := e.codes[v]
		if !ok {
			out[i] = -1
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				unseen = append(unseen, v)
			}
			continue
		}
		out[i] = code
	}
	return out, unseen
}

// FitTransform fits on levels and encodes them.
func (e *LabelEncoder) FitTransform(levels []string) []int {
	codes, _ := e.Fit(levels).Transform(levels)
	return codes
}

// Classes lists the fitted levels by code.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

// Codes is a convenience for encoding levels as float64 codes in one call.
func Codes(levels []string, order Order) []float64 {
	ints := NewLabelEncoder(order).FitTransform(levels)
	out := make([]float64, len(ints))
	for i, c := range ints {
		out[i] = float64(c)
	}
	return out
}
