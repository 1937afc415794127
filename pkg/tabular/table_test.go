package tabular

import "testing"

func TestCloneSharesNoStorage(t *testing.T) {
	original := &Table{
		Columns: []string{"Food_Name", "Quantity"},
		Rows: [][]any{
			{"Bread", int64(10)},
			{"Rice", int64(25)},
		},
	}

	clone := original.Clone()
	clone.Columns[0] = "changed"
	clone.Rows[0][1] = int64(999)

	if original.Columns[0] != "Food_Name" {
		t.Errorf("clone mutated original columns: %v", original.Columns)
	}
	if original.Rows[0][1] != int64(10) {
		t.Errorf("clone mutated original rows: %v", original.Rows[0])
	}
}

func TestColumnIndex(t *testing.T) {
	table := &Table{Columns: []string{"Food_ID", "Food_Name", "Quantity"}}

	if idx := table.ColumnIndex("Quantity"); idx != 2 {
		t.Errorf("expected index 2 for Quantity, got %d", idx)
	}
	if idx := table.ColumnIndex("Missing"); idx != -1 {
		t.Errorf("expected -1 for missing column, got %d", idx)
	}
}

func TestEmpty(t *testing.T) {
	table := &Table{Columns: []string{"Food_ID"}, Rows: [][]any{}}
	if !table.Empty() {
		t.Error("expected zero-row table to be empty")
	}

	table.Rows = append(table.Rows, []any{int64(1)})
	if table.Empty() {
		t.Error("expected table with a row to be non-empty")
	}
}

func TestInt64Coercion(t *testing.T) {
	cases := []struct {
		in   any
		want int64
	}{
		{nil, 0},
		{int64(42), 42},
		{int(7), 7},
		{int32(3), 3},
		{float64(9.7), 9},
		{"15", 15},
		{"not a number", 0},
	}
	for _, c := range cases {
		if got := Int64(c.in); got != c.want {
			t.Errorf("Int64(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestFloat64Coercion(t *testing.T) {
	cases := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{float64(2.5), 2.5},
		{int64(4), 4},
		{"1.25", 1.25},
	}
	for _, c := range cases {
		if got := Float64(c.in); got != c.want {
			t.Errorf("Float64(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestStringCoercion(t *testing.T) {
	if got := String(nil); got != "" {
		t.Errorf("String(nil) = %q, want empty", got)
	}
	if got := String("Completed"); got != "Completed" {
		t.Errorf("String = %q", got)
	}
	if got := String(int64(12)); got != "12" {
		t.Errorf("String(12) = %q", got)
	}
}
