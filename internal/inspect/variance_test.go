package inspect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/datalens-cli/internal/encode"
)

func varianceFixture(t *testing.T) *Inspector {
	ds := build(t, "x",
		col{"const", vals("a", "a", "a")},
		col{"three", vals("a", "b", "c")},
		col{"two", vals("a", "b", "b")},
	)
	return New(ds, FeatureSet{Categorical: []string{"const", "three", "two"}})
}

func TestVarianceTriageLowKeepsAllAtInf(t *testing.T) {
	rep, err := varianceFixture(t).VarianceTriage(math.Inf(1), ModeLow)
	require.NoError(t, err)
	require.Len(t, rep.Kept, 3)
	assert.Empty(t, rep.Discarded)

	assert.Equal(t, "const", rep.Kept[0].Column)
	assert.Equal(t, 0.0, rep.Kept[0].Variance)
	assert.Equal(t, "two", rep.Kept[1].Column)
	assert.InDelta(t, 2.0/9, rep.Kept[1].Variance, 1e-12)
	assert.Equal(t, "three", rep.Kept[2].Column)
	assert.InDelta(t, 2.0/3, rep.Kept[2].Variance, 1e-12)
}

func TestVarianceTriageLowDiscardsAllAtNegInf(t *testing.T) {
	rep, err := varianceFixture(t).VarianceTriage(math.Inf(-1), ModeLow)
	require.NoError(t, err)
	assert.Empty(t, rep.Kept)
	assert.Equal(t, []string{"const", "three", "two"}, rep.Discarded)
}

func TestVarianceTriageZeroDiscardsNonConstant(t *testing.T) {
	rep, err := varianceFixture(t).VarianceTriage(0, ModeLow, "three", "two")
	require.NoError(t, err)
	assert.Empty(t, rep.Kept)
	assert.Equal(t, []string{"three", "two"}, rep.Discarded)
}

func TestVarianceTriageHighMode(t *testing.T) {
	rep, err := varianceFixture(t).VarianceTriage(0.2, ModeHigh)
	require.NoError(t, err)
	require.Len(t, rep.Kept, 2)
	assert.Equal(t, "three", rep.Kept[0].Column, "descending")
	assert.Equal(t, "two", rep.Kept[1].Column)
	assert.Equal(t, []string{"const"}, rep.Discarded)

	tbl := rep.Table()
	assert.Equal(t, "High variance features", tbl.Title)
	assert.Contains(t, tbl.Notes[0], "low variance: ['const']")
}

func TestVarianceTriageUnknownMode(t *testing.T) {
	_, err := varianceFixture(t).VarianceTriage(1, Mode("medium"))
	require.ErrorIs(t, err, ErrConfiguration)
	var ce *ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "variance mode", ce.Field)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" HIGH ")
	require.NoError(t, err)
	assert.Equal(t, ModeHigh, m)
	_, err = ParseMode("")
	assert.ErrorIs(t, err, ErrConfiguration)
}

// The same multiset of levels yields different variances depending on the
// row order, because codes follow first appearance.
func TestVarianceDependsOnEncodingOrder(t *testing.T) {
	ds := build(t, "x",
		col{"first", vals("x", "y", "z", "z")},
		col{"second", vals("x", "z", "z", "y")},
	)
	rep, err := New(ds, FeatureSet{}).VarianceTriage(math.Inf(1), ModeLow, "first", "second")
	require.NoError(t, err)
	require.Len(t, rep.Kept, 2)

	got := map[string]float64{}
	for _, k := range rep.Kept {
		got[k.Column] = k.Variance
	}
	assert.InDelta(t, 0.6875, got["first"], 1e-12)
	assert.InDelta(t, 0.5, got["second"], 1e-12)
	assert.NotEqual(t, got["first"], got["second"])
}

// Lexical codes depend only on the level set, so row order stops mattering.
func TestVarianceLexicalOrder(t *testing.T) {
	ds := build(t, "x",
		col{"first", vals("x", "y", "z", "z")},
		col{"second", vals("x", "z", "z", "y")},
	)
	rep, err := New(ds, FeatureSet{}, WithEncodingOrder(encode.Lexical)).VarianceTriage(math.Inf(1), ModeLow, "first", "second")
	require.NoError(t, err)
	require.Len(t, rep.Kept, 2)
	assert.InDelta(t, 0.6875, rep.Kept[0].Variance, 1e-12)
	assert.InDelta(t, 0.6875, rep.Kept[1].Variance, 1e-12)
}

func TestVarianceTriageEmptyDataset(t *testing.T) {
	ds := build(t, "x", col{"c", vals()})
	rep, err := New(ds, FeatureSet{}).VarianceTriage(0, ModeLow, "c")
	require.NoError(t, err)
	assert.Equal(t, []FeatureVariance{{"c", 0}}, rep.Kept)
}
