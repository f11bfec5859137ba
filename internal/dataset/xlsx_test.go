package dataset

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeXLSXFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Data")
	require.NoError(t, err)
	rows := [][]any{
		{"Pclass", "Embarked", "Fare"},
		{1, "S", 71.2833},
		{3, nil, 7.25},
		{3, "Q", 8.05},
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		row := r
		require.NoError(t, f.SetSheetRow("Data", cell, &row))
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"only", "header"}))
	path := filepath.Join(t.TempDir(), "titanic.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadXLSXBySheetName(t *testing.T) {
	path := writeXLSXFixture(t)
	opt := DefaultOptions()
	opt.Sheet = "data"

	d, err := Load(path, opt)
	require.NoError(t, err)
	assert.Equal(t, "titanic", d.Name)
	assert.Equal(t, []string{"Pclass", "Embarked", "Fare"}, d.Columns())
	assert.Equal(t, 3, d.Rows())

	emb, err := d.Column("Embarked")
	require.NoError(t, err)
	assert.Equal(t, []Value{Text("S"), Null(), Text("Q")}, emb.Values)

	fare, _ := d.Column("Fare")
	x, ok := fare.Values[1].Float()
	require.True(t, ok)
	assert.InDelta(t, 7.25, x, 1e-9)
}

func TestLoadXLSXFirstSheetAndUnknownSheet(t *testing.T) {
	path := writeXLSXFixture(t)

	d, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"only", "header"}, d.Columns())
	assert.Equal(t, 0, d.Rows())

	opt := DefaultOptions()
	opt.Sheet = "Nope"
	_, err = Load(path, opt)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Available sheets: Sheet1, Data")
}

func TestLoadUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.parquet")
	require.NoError(t, writeFile(path, "x"))
	_, err := Load(path, DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupported)
}
