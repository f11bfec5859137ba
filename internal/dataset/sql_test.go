package dataset

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryLoadsResultSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"age", "sex", "ticket"}).
		AddRow(22.0, "male", []byte("A/5 21171")).
		AddRow(nil, []byte("female"), []byte("PC 17599")).
		AddRow(int64(26), "female", nil)
	mock.ExpectQuery("SELECT age, sex, ticket FROM passengers").WillReturnRows(rows)

	d, err := Query(context.Background(), db, "passengers", "SELECT age, sex, ticket FROM passengers", DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())

	assert.Equal(t, []string{"age", "sex", "ticket"}, d.Columns())
	assert.Equal(t, 3, d.Rows())

	age, _ := d.Column("age")
	assert.Equal(t, []Value{Number(22), Null(), Number(26)}, age.Values)
	sex, _ := d.Column("sex")
	assert.Equal(t, []Value{Text("male"), Text("female"), Text("female")}, sex.Values)
	ticket, _ := d.Column("ticket")
	assert.True(t, ticket.Values[2].IsNull())
}

func TestQueryEmptyResultKeepsColumns(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"a", "b"}))
	d, err := Query(context.Background(), db, "empty", "SELECT a, b FROM t WHERE 1=0", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, d.Columns())
	assert.Equal(t, 0, d.Rows())
}

func TestQueryPropagatesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(assert.AnError)
	_, err = Query(context.Background(), db, "x", "SELECT 1", DefaultOptions())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestOpenSQLRejectsUnknownDriver(t *testing.T) {
	_, err := OpenSQL(context.Background(), "sqlite3", "file::memory:")
	assert.Error(t, err)
}
