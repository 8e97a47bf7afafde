// Package shellquote quotes arguments for `sh -c` command lines.
package shellquote

import "strings"

// Quote wraps s in single quotes. An embedded quote closes the string, adds an
// escaped quote and reopens it.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Join quotes each argument and joins them with spaces.
func Join(args ...string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}
