package fields

import (
	"regexp"
	"strings"
)

// inlineFieldRE matches an inline "key:: value" field anywhere in a line.
//
// Group 1 is the key (may carry trailing spaces, trimmed by the caller), group 2
// the optional value. Leading and trailing emphasis, strike and code markers
// around the key are skipped. \p{So} stands in for emoji, which RE2 has no
// property for.
var inlineFieldRE = regexp.MustCompile("[_*~`]*([0-9\\w\\p{L}\\p{So}][-0-9\\w\\p{L}\\p{So}\\s]*)[_*~`]*\\s*::(.+)?")

// MatchInline reports whether line defines an inline field and returns its
// trimmed key and value.
func MatchInline(line string) (key, value string, ok bool) {
	m := inlineFieldRE.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	key = strings.TrimSpace(m[1])
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(m[2]), true
}

// ExtractInline scans content line by line for inline fields.
// When a key is defined on several lines, the last definition wins.
func ExtractInline(content string) *Attributes {
	attrs := NewAttributes()
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := MatchInline(strings.TrimSuffix(line, "\r"))
		if !ok {
			continue
		}
		attrs.Set(key, Text(value))
	}
	return attrs
}
