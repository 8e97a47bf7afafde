// Package slugs provides the slugification used to match link text against
// note file names.
package slugs

import (
	"path"
	"strings"

	goslug "github.com/gosimple/slug"
)

// ComponentSlug converts a single path component to a URL-safe slug.
// A trailing ".md" is ignored.
func ComponentSlug(s string) string {
	s = strings.TrimSuffix(s, ".md")
	slugged := goslug.Make(s)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", "-"))
	}
	return slugged
}

// PathSlug slugifies each "/"-separated component of p.
func PathSlug(p string) string {
	p = strings.TrimSuffix(p, ".md")
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = ComponentSlug(part)
	}
	return strings.Join(parts, "/")
}

// NameSlug slugifies the last component of p, so "Projects/My Plan.md" and
// "my plan" compare equal.
func NameSlug(p string) string {
	return ComponentSlug(path.Base(strings.TrimSuffix(p, "/")))
}
