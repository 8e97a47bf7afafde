// Package sqlutil holds database/sql helpers used by the metadata index.
package sqlutil

import (
	"database/sql"
	"strings"
)

// InClause returns "?, ?, ?" for items and the matching args. An empty list
// gives "NULL" so that IN (NULL) matches nothing.
func InClause(items []string) (string, []any) {
	if len(items) == 0 {
		return "NULL", nil
	}
	args := make([]any, len(items))
	for i, item := range items {
		args[i] = item
	}
	return strings.TrimSuffix(strings.Repeat("?, ", len(items)), ", "), args
}

// Strings scans a one-column result set and closes rows.
func Strings(rows *sql.Rows) ([]string, error) {
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
