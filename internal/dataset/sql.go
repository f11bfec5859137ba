package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// OpenSQL opens a database handle for the given driver ("mysql" or "postgres")
// and verifies the connection.
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case "mysql", "postgres":
	default:
		return nil, fmt.Errorf("unsupported sql driver %q (use mysql or postgres)", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// Query runs a query and loads its result set. SQL NULL becomes a null value;
// column types are then inferred the same way as for CSV cells.
func Query(ctx context.Context, db *sql.DB, name, query string, opt Options, args ...any) (*Dataset, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	raw := make([][]string, len(cols))
	nulls := make([][]bool, len(cols))
	dest := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	n := 0
	for rows.Next() {
		if opt.MaxRows > 0 && n >= opt.MaxRows {
			break
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", n+1, err)
		}
		for j, v := range dest {
			s, isNull := sqlText(v)
			raw[j] = append(raw[j], s)
			nulls[j] = append(nulls[j], isNull)
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	ds := New(name)
	for j, c := range cols {
		if raw[j] == nil {
			raw[j], nulls[j] = []string{}, []bool{}
		}
		if err := ds.AddColumn(safeName(c, j), inferColumn(raw[j], nulls[j], opt)); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

func sqlText(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case []byte:
		return string(x), false
	case string:
		return x, false
	case int64:
		return strconv.FormatInt(x, 10), false
	case int:
		return strconv.Itoa(x), false
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), false
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), false
	case bool:
		return strconv.FormatBool(x), false
	case time.Time:
		return x.Format(time.RFC3339), false
	default:
		return fmt.Sprint(x), false
	}
}
