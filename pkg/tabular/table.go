package tabular

import (
	"database/sql"
	"fmt"
	"strconv"
)

// Table is an ordered tabular result: column names plus rows of scalars in
// column order. It is the shape every read operation returns.
type Table struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Scan drains rows into a Table. []byte values are converted to string so
// results stay comparable and remain valid after the rows are closed.
func Scan(rows *sql.Rows) (*Table, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	t := &Table{Columns: columns, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		t.Rows = append(t.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return t, nil
}

// Clone returns a copy that shares no row storage with the receiver.
func (t *Table) Clone() *Table {
	c := &Table{
		Columns: make([]string, len(t.Columns)),
		Rows:    make([][]any, len(t.Rows)),
	}
	copy(c.Columns, t.Columns)
	for i, row := range t.Rows {
		c.Rows[i] = make([]any, len(row))
		copy(c.Rows[i], row)
	}
	return c
}

// ColumnIndex returns the position of name, or -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// Empty reports whether the table matched zero rows. An empty table is a
// valid result, not an error.
func (t *Table) Empty() bool {
	return len(t.Rows) == 0
}

// Int64 coerces a scanned scalar to int64. NULL counts as zero.
func Int64(v any) int64 {
	switch x := v.(type) {
	case nil:
		return 0
	case int64:
		return x
	case int:
		return int64(x)
	case int32:
		return int64(x)
	case float64:
		return int64(x)
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// Float64 coerces a scanned scalar to float64. NULL counts as zero.
func Float64(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case float64:
		return x
	case float32:
		return float64(x)
	case int64:
		return float64(x)
	case int:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// String coerces a scanned scalar to its string form. NULL is empty.
func String(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprintf("%v", x)
	}
}
