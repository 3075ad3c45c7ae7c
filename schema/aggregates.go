package schema

import (
	"fmt"

	"github.com/lib/pq"
)

// First selects the value of column ordered earliest by timeColumn within an
// aggregate group.
func First(column, timeColumn string) string {
	return fmt.Sprintf("first(%s, %s)", pq.QuoteIdentifier(column), pq.QuoteIdentifier(timeColumn))
}

// Last selects the value of column ordered latest by timeColumn within an
// aggregate group.
func Last(column, timeColumn string) string {
	return fmt.Sprintf("last(%s, %s)", pq.QuoteIdentifier(column), pq.QuoteIdentifier(timeColumn))
}

// Histogram buckets column into nbuckets buckets between min (inclusive)
// and max (exclusive).
func Histogram(column string, min, max int64, nbuckets int) string {
	return fmt.Sprintf("histogram(%s, %d, %d, %d)", pq.QuoteIdentifier(column), min, max, nbuckets)
}

// ApproximateRowCountQuery estimates the rows of a table or hypertable from
// catalog statistics. Its only parameter is the table name.
const ApproximateRowCountQuery = "SELECT * FROM approximate_row_count($1::regclass)"
