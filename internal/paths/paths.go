// Package paths provides canonical helpers for vault-relative markdown paths.
//
// Vault-relative paths always use "/" separators, have no leading "./" or "/",
// and never escape the vault root.
package paths

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathOutsideVault is returned when a path resolves outside the vault root.
var ErrPathOutsideVault = errors.New("path is outside vault")

// MarkdownExt is the extension of note files.
const MarkdownExt = ".md"

// NormalizeRel normalizes a vault-relative path-like value:
// - converts OS separators to '/'
// - trims leading "./" and leading "/"
// - collapses repeated '/'
func NormalizeRel(p string) string {
	p = filepath.ToSlash(strings.TrimSpace(p))
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	p = strings.TrimLeft(p, "/")
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// IsMarkdown reports whether p names a markdown file.
func IsMarkdown(p string) bool {
	return strings.EqualFold(filepath.Ext(p), MarkdownExt)
}

// EnsureMarkdownExt appends ".md" when p has no extension.
func EnsureMarkdownExt(p string) string {
	if filepath.Ext(p) == "" {
		return p + MarkdownExt
	}
	return p
}

// ValidateWithinVault returns ErrPathOutsideVault if target is not inside vaultPath.
func ValidateWithinVault(vaultPath, target string) error {
	root, err := filepath.Abs(vaultPath)
	if err != nil {
		return fmt.Errorf("resolve vault path: %w", err)
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return ErrPathOutsideVault
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return ErrPathOutsideVault
	}
	return nil
}

// Rel returns the vault-relative, slash-separated form of an absolute path.
func Rel(vaultPath, abs string) (string, error) {
	if err := ValidateWithinVault(vaultPath, abs); err != nil {
		return "", err
	}
	root, err := filepath.Abs(vaultPath)
	if err != nil {
		return "", err
	}
	absPath, err := filepath.Abs(abs)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}
