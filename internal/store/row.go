package store

import (
	"database/sql"
	"time"
)

// Row is one result row keyed by column name. Accessors normalize the
// driver's dynamic types; a missing or mistyped column yields the zero
// value, which repository code treats as absent.
type Row map[string]any

func (r Row) Int(column string) int {
	switch v := r[column].(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func (r Row) String(column string) string {
	switch v := r[column].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func (r Row) Bool(column string) bool {
	v, _ := r[column].(bool)
	return v
}

func (r Row) Time(column string) time.Time {
	v, _ := r[column].(time.Time)
	return v
}

// scanRows drains a result set into generic rows. Empty results are an
// empty slice, never an error.
func scanRows(rows *sql.Rows) ([]Row, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(columns))
		for i, column := range columns {
			row[column] = values[i]
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
