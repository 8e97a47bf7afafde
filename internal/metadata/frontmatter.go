// Package metadata provides front-matter lookup for vault files: a plain
// parser and a SQLite-backed index that avoids re-reading unchanged files.
package metadata

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aidanlsb/fieldmenu/internal/fields"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

var (
	// ErrMalformed indicates front-matter that is present but cannot be used.
	ErrMalformed = errors.New("malformed frontmatter")
	// ErrNotMapping indicates front-matter whose top level is not a key/value mapping.
	ErrNotMapping = fmt.Errorf("%w: top level is not a mapping", ErrMalformed)
)

// PositionKey is the structural key hosts attach to parsed front-matter.
// It is never an editable attribute.
const PositionKey = "position"

// Position holds the 0-indexed lines of the opening and closing delimiters.
type Position struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Frontmatter is parsed front-matter.
type Frontmatter struct {
	// Fields are the top-level keys in document order.
	Fields *fields.Attributes

	// Position locates the block in the file.
	Position Position

	// Raw is the text between the delimiters.
	Raw string
}

// Cache looks up front-matter for a file.
// It returns nil, nil when the file has no front-matter.
type Cache interface {
	Frontmatter(ctx context.Context, f vault.File) (*Frontmatter, error)
}

// Reader reads file text.
type Reader interface {
	Read(ctx context.Context, f vault.File) (string, error)
}

// Bounds returns the opening and closing delimiter line indices.
// Front-matter only exists when the first line is exactly '---'; the writer
// uses the same test, so "--- " opens nothing.
// If it is present but unclosed, end is -1.
func Bounds(lines []string) (start int, end int, ok bool) {
	if len(lines) == 0 || !fields.IsFrontmatterDelimiter(lines[0]) {
		return 0, -1, false
	}
	for i := 1; i < len(lines); i++ {
		if fields.IsFrontmatterDelimiter(lines[i]) {
			return 0, i, true
		}
	}
	return 0, -1, true
}

// Parse parses YAML front-matter from markdown content.
// Returns nil when there is no (closed) front-matter block.
func Parse(content string) (*Frontmatter, error) {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	start, end, ok := Bounds(lines)
	if !ok || end == -1 {
		return nil, nil
	}

	fm := &Frontmatter{
		Fields:   fields.NewAttributes(),
		Position: Position{Start: start, End: end},
		Raw:      strings.Join(lines[start+1:end], "\n"),
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(fm.Raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	// Empty or comment-only front-matter decodes to an empty document.
	if len(doc.Content) == 0 {
		return fm, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, ErrNotMapping
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		fm.Fields.Set(key.Value, valueFromNode(value))
	}

	return fm, nil
}

func valueFromNode(n *yaml.Node) fields.Value {
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias != nil {
			return valueFromNode(n.Alias)
		}
		return fields.Text("")
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!bool":
			var b bool
			if err := n.Decode(&b); err == nil {
				return fields.BoolValue(b)
			}
		case "!!null":
			return fields.Text("")
		}
		return fields.Text(n.Value)
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			items = append(items, valueFromNode(item).String())
		}
		return fields.ListValue(items)
	default:
		return fields.Text(flowText(n))
	}
}

// flowText renders a nested node on one line, e.g. {a: 1, b: 2}.
func flowText(n *yaml.Node) string {
	c := *n
	c.Style = yaml.FlowStyle
	out, err := yaml.Marshal(&c)
	if err != nil {
		return n.Value
	}
	return strings.TrimSpace(string(out))
}

// Parser is a Cache that reads and parses the file on every lookup.
type Parser struct {
	Reader Reader
}

// NewParser returns a Parser reading through r.
func NewParser(r Reader) *Parser {
	return &Parser{Reader: r}
}

// Frontmatter implements Cache.
func (p *Parser) Frontmatter(ctx context.Context, f vault.File) (*Frontmatter, error) {
	content, err := p.Reader.Read(ctx, f)
	if err != nil {
		return nil, err
	}
	return Parse(content)
}
