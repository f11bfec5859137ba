package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcatBuildsSplitIndicator(t *testing.T) {
	train := New("train")
	require.NoError(t, train.AddColumn("sex", nums("m", "f")))
	require.NoError(t, train.AddColumn("survived", nums(1, 0)))

	valid := New("valid")
	require.NoError(t, valid.AddColumn("sex", nums("f")))
	require.NoError(t, valid.AddColumn("deck", nums("C")))

	all, err := Concat(train, valid, "is_valid")
	require.NoError(t, err)
	assert.Equal(t, []string{"sex", "survived", "deck", "is_valid"}, all.Columns())
	assert.Equal(t, 3, all.Rows())

	surv, _ := all.Column("survived")
	assert.Equal(t, nums(1, 0, nil), surv.Values, "train-only column is null on valid rows")
	deck, _ := all.Column("deck")
	assert.Equal(t, nums(nil, nil, "C"), deck.Values)
	split, _ := all.Column("is_valid")
	assert.Equal(t, nums(0, 0, 1), split.Values)
}

func TestConcatRejectsExistingSplit(t *testing.T) {
	train := New("train")
	require.NoError(t, train.AddColumn("is_valid", nums(0)))
	_, err := Concat(train, New("valid"), "is_valid")
	assert.Error(t, err)
}
