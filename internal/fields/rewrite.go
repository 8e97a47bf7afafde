package fields

import (
	"regexp"
	"strings"
)

const frontmatterDelimiter = "---"

// IsFrontmatterDelimiter reports whether line is exactly "---", ignoring a
// trailing "\r".
func IsFrontmatterDelimiter(line string) bool {
	return strings.TrimSuffix(line, "\r") == frontmatterDelimiter
}

// keyBoundary is any character that cannot be part of an inline key.
const keyBoundary = `[^\p{L}\p{N}\p{So}_\-]`

// RewriteAttribute replaces the value of key in content and returns the new text.
//
// Lines between the first and second "---" lines are front-matter: a line
// starting with "key:" becomes "key: value". Any other line containing
// "key::" (optionally "key ::") keeps everything up to and including the "::"
// and gets the new value, provided MatchInline reads the line as a field named
// key. A third "---" line is ordinary text. Lines that do not
// define key are returned untouched, so a missing key leaves content unchanged.
func RewriteAttribute(content, key, value string) string {
	formatted := FormatValue(value)
	quoted := regexp.QuoteMeta(key)
	frontmatterRE := regexp.MustCompile(`^` + quoted + `:`)
	inlineRE := regexp.MustCompile(`^(|.*?` + keyBoundary + ")([_*~`]*" + quoted + "[_*~`]*)(\\s?)::(\\s*)(.*?)(\\s*)$")

	lines := strings.Split(content, "\n")
	opened, closed, inFrontmatter := false, false, false

	for i, line := range lines {
		text, hasCR := strings.CutSuffix(line, "\r")
		eol := ""
		if hasCR {
			eol = "\r"
		}

		if IsFrontmatterDelimiter(text) {
			if !opened {
				opened = true
				inFrontmatter = true
			} else if !closed {
				closed = true
				inFrontmatter = false
			}
		}

		if inFrontmatter {
			if frontmatterRE.MatchString(text) {
				lines[i] = key + ": " + formatted + eol
			}
			continue
		}

		// Only lines whose extracted key is exactly key; "my key::" is another field.
		if k, _, ok := MatchInline(text); !ok || k != key {
			continue
		}
		if rewritten, ok := rewriteInline(inlineRE, text, formatted); ok {
			lines[i] = rewritten + eol
		}
	}

	return strings.Join(lines, "\n")
}

func rewriteInline(re *regexp.Regexp, line, formatted string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	prefix, keyPart, space, lead, old, trail := m[1], m[2], m[3], m[4], m[5], m[6]
	// "key::value" keeps its tight spacing; an empty field gets the usual space.
	if lead == "" && old == "" && formatted != "" {
		lead = " "
	}
	return prefix + keyPart + space + "::" + lead + formatted + trail, true
}
