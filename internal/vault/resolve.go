package vault

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aidanlsb/fieldmenu/internal/paths"
	"github.com/aidanlsb/fieldmenu/internal/slugs"
)

// NormalizeLink reduces a link as written in a note to a vault path-ish target:
// "[[target|alias]]" -> "target", "target#heading" -> "target",
// "My%20Note.md" -> "My Note.md".
func NormalizeLink(link string) string {
	link = strings.TrimSpace(link)
	if target, _, ok := ParseWikilink(link); ok {
		link = target
	}
	if i := strings.IndexAny(link, "#^"); i >= 0 {
		link = link[:i]
	}
	if unescaped, err := url.PathUnescape(link); err == nil {
		link = unescaped
	}
	return paths.NormalizeRel(link)
}

// Resolve finds the markdown file a link points at.
//
// Matching order: exact vault-relative path, then a unique file whose path
// ends with the target, then a unique file whose name slug equals the
// target's. Only markdown files are eligible.
func (v *Vault) Resolve(ctx context.Context, link string) (File, error) {
	target := NormalizeLink(link)
	if target == "" {
		return File{}, fmt.Errorf("%w: empty link", ErrNotFound)
	}
	if ext := path.Ext(target); ext != "" && !paths.IsMarkdown(target) {
		return File{}, fmt.Errorf("%w: %s", ErrNotMarkdown, target)
	}
	target = paths.EnsureMarkdownExt(target)

	files, err := v.MarkdownFiles(ctx)
	if err != nil {
		return File{}, err
	}

	for _, f := range files {
		if f.Path == target {
			return f, nil
		}
	}

	if f, err := unique(link, files, func(f File) bool {
		return strings.EqualFold(f.Path, target) || strings.HasSuffix(strings.ToLower(f.Path), "/"+strings.ToLower(target))
	}); !errors.Is(err, errNoMatch) {
		return f, err
	}

	want := slugs.PathSlug(strings.TrimSuffix(target, paths.MarkdownExt))
	wantName := slugs.NameSlug(target)
	if f, err := unique(link, files, func(f File) bool {
		if strings.Contains(want, "/") {
			return slugs.PathSlug(f.Path) == want
		}
		return slugs.NameSlug(f.Path) == wantName
	}); !errors.Is(err, errNoMatch) {
		return f, err
	}

	return File{}, fmt.Errorf("%w: %s", ErrNotFound, link)
}

var errNoMatch = errors.New("no match")

func unique(link string, files []File, match func(File) bool) (File, error) {
	var found []File
	for _, f := range files {
		if match(f) {
			found = append(found, f)
		}
	}
	switch len(found) {
	case 0:
		return File{}, errNoMatch
	case 1:
		return found[0], nil
	default:
		names := make([]string, len(found))
		for i, f := range found {
			names[i] = f.Path
		}
		return File{}, fmt.Errorf("%w: %s (%s)", ErrAmbiguous, link, strings.Join(names, ", "))
	}
}
