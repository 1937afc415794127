package reports

import "fmt"

// dateExpr casts a text-stored date column for comparison and ordering.
// The column name is interpolated into the statement, so it must be a
// hard-coded identifier — never caller input.
func dateExpr(column string) string {
	return fmt.Sprintf(`"%s"::date`, column)
}
