package vault

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Link is an outgoing link of a note.
type Link struct {
	// Target is the link destination as written, e.g. "people/freya" or "Plan.md".
	Target string `json:"target"`

	// Text is the display text (alias or link label), if any.
	Text string `json:"text,omitempty"`

	// Line is the 1-indexed line the link appears on.
	Line int `json:"line"`

	// Wiki is true for [[wikilinks]].
	Wiki bool `json:"wiki"`
}

// wikilinkRE matches [[target]] or [[target|display]].
// The target cannot contain [ or ] so that [[[x]]] array syntax is skipped.
var wikilinkRE = regexp.MustCompile(`\[\[([^\]\[|]+)(?:\|([^\]]+))?\]\]`)

// ParseWikilink parses a string that is exactly a wikilink literal.
func ParseWikilink(s string) (target, display string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[[") || !strings.HasSuffix(s, "]]") {
		return "", "", false
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "[["), "]]")
	target, display, _ = strings.Cut(inner, "|")
	target = strings.TrimSpace(target)
	if target == "" {
		return "", "", false
	}
	return target, strings.TrimSpace(display), true
}

// Links returns the outgoing note links of content in document order.
// Markdown links come from the goldmark AST; external URLs are skipped.
// Wikilinks are scanned line by line.
func Links(content string) []Link {
	source := []byte(content)
	lineStarts := computeLineStarts(content)

	var links []Link

	doc := goldmark.New().Parser().Parse(text.NewReader(source))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}

		dest := string(link.Destination)
		if isExternal(dest) || strings.HasPrefix(dest, "#") || dest == "" {
			return ast.WalkSkipChildren, nil
		}

		label, offset := linkLabel(link, source)
		links = append(links, Link{
			Target: dest,
			Text:   label,
			Line:   offsetToLine(lineStarts, offset),
		})
		return ast.WalkSkipChildren, nil
	})

	for i, line := range strings.Split(content, "\n") {
		for _, m := range wikilinkRE.FindAllStringSubmatchIndex(line, -1) {
			start := m[0]
			if start > 0 && line[start-1] == '[' {
				continue
			}
			target := strings.TrimSpace(line[m[2]:m[3]])
			if target == "" {
				continue
			}
			var display string
			if m[4] >= 0 {
				display = strings.TrimSpace(line[m[4]:m[5]])
			}
			links = append(links, Link{Target: target, Text: display, Line: i + 1, Wiki: true})
		}
	}

	sort.SliceStable(links, func(i, j int) bool { return links[i].Line < links[j].Line })
	return links
}

func isExternal(dest string) bool {
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	return u.Scheme != ""
}

// linkLabel concatenates the text segments under a link and returns the
// byte offset of the first one.
func linkLabel(link *ast.Link, source []byte) (string, int) {
	var b strings.Builder
	offset := -1
	_ = ast.Walk(link, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := n.(*ast.Text); ok {
			if offset < 0 {
				offset = t.Segment.Start
			}
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String()), offset
}

func computeLineStarts(content string) []int {
	starts := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// offsetToLine converts a byte offset to a 1-indexed line number.
func offsetToLine(lineStarts []int, offset int) int {
	if offset < 0 {
		return 1
	}
	idx := sort.Search(len(lineStarts), func(i int) bool { return lineStarts[i] > offset })
	return idx
}
