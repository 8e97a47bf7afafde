package fields

import (
	"regexp"
	"strings"
)

var listSeparatorRE = regexp.MustCompile(`,\s+`)

// FormatValue renders a written value.
//
// The input is split on commas (", " collapses to ","). A single element is
// written bare, several as "[a, b, c]". Input already in bracket form is
// unwrapped first, so "[a, b]" stays "[a, b]" and "[a]" stays "[a]". Empty
// input stays empty.
func FormatValue(input string) string {
	if input == "" {
		return ""
	}
	inner, bracketed := unbracket(input)
	items := strings.Split(listSeparatorRE.ReplaceAllString(inner, ","), ",")
	if len(items) == 1 && !bracketed {
		return items[0]
	}
	return "[" + strings.Join(items, ", ") + "]"
}

// unbracket removes one enclosing "[...]" pair. A leading "[[" is a wikilink,
// not a list.
func unbracket(value string) (string, bool) {
	if strings.HasPrefix(value, "[") && !strings.HasPrefix(value, "[[") && strings.HasSuffix(value, "]") {
		return value[1 : len(value)-1], true
	}
	return value, false
}

// JoinList renders a selection so that FormatValue turns it into a list.
func JoinList(items []string) string {
	return strings.Join(items, ",")
}

// SplitList parses a current list value ("a, b", "[a, b]" or "a") into its
// trimmed, non-empty elements.
func SplitList(value string) []string {
	value, _ = unbracket(strings.TrimSpace(value))

	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
