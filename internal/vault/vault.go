// Package vault provides access to a directory of markdown notes: reading,
// atomic modification, enumeration and link resolution.
package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aidanlsb/fieldmenu/internal/atomicfile"
	"github.com/aidanlsb/fieldmenu/internal/paths"
)

// StateDir is the per-vault directory holding the metadata index.
const StateDir = ".fieldmenu"

var (
	// ErrNotFound indicates that no markdown file matches a path or link.
	ErrNotFound = errors.New("file not found in vault")
	// ErrAmbiguous indicates that a link matches more than one file.
	ErrAmbiguous = errors.New("link matches more than one file")
	// ErrNotMarkdown indicates that a path names something other than a note.
	ErrNotMarkdown = errors.New("not a markdown file")
)

// File is a markdown file inside a vault.
type File struct {
	// Path is vault-relative and slash-separated, e.g. "projects/alpha.md".
	Path string `json:"path"`

	// AbsPath is the absolute filesystem path.
	AbsPath string `json:"-"`
}

// Name returns the file name without directory and extension.
func (f File) Name() string {
	return strings.TrimSuffix(path.Base(f.Path), path.Ext(f.Path))
}

// Vault is a directory of markdown notes.
type Vault struct {
	root string
}

// Open opens the vault rooted at root.
func Open(root string) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve vault path: %w", err)
	}
	st, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("open vault: %s is not a directory", abs)
	}
	return &Vault{root: abs}, nil
}

// Root returns the absolute vault root.
func (v *Vault) Root() string {
	return v.root
}

// File returns the markdown file at the vault-relative path rel.
func (v *Vault) File(rel string) (File, error) {
	rel = paths.NormalizeRel(rel)
	if rel == "" {
		return File{}, fmt.Errorf("%w: empty path", ErrNotFound)
	}
	if !paths.IsMarkdown(rel) {
		return File{}, fmt.Errorf("%w: %s", ErrNotMarkdown, rel)
	}

	abs := filepath.Join(v.root, filepath.FromSlash(rel))
	if err := paths.ValidateWithinVault(v.root, abs); err != nil {
		return File{}, fmt.Errorf("%s: %w", rel, err)
	}

	st, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return File{}, fmt.Errorf("%w: %s", ErrNotFound, rel)
		}
		return File{}, err
	}
	if st.IsDir() {
		return File{}, fmt.Errorf("%w: %s is a directory", ErrNotMarkdown, rel)
	}

	return File{Path: rel, AbsPath: abs}, nil
}

// FileFromAbs returns the markdown file at an absolute (or working-directory
// relative) filesystem path.
func (v *Vault) FileFromAbs(p string) (File, error) {
	rel, err := paths.Rel(v.root, p)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", p, err)
	}
	return v.File(rel)
}

// Read returns the full text of f.
func (v *Vault) Read(ctx context.Context, f File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	data, err := os.ReadFile(f.AbsPath)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", f.Path, err)
	}
	return string(data), nil
}

// Modify replaces the text of f.
func (v *Vault) Modify(ctx context.Context, f File, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := atomicfile.WriteFile(f.AbsPath, []byte(content)); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

// Stat returns file info for f.
func (v *Vault) Stat(f File) (os.FileInfo, error) {
	return os.Stat(f.AbsPath)
}

// MarkdownFiles returns every markdown file in the vault, sorted by path.
// The state directory, .git and .trash are skipped.
func (v *Vault) MarkdownFiles(ctx context.Context) ([]File, error) {
	var files []File

	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if p != v.root && IgnoredDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !paths.IsMarkdown(p) {
			return nil
		}

		rel, err := paths.Rel(v.root, p)
		if err != nil {
			if errors.Is(err, paths.ErrPathOutsideVault) {
				return nil
			}
			return err
		}
		files = append(files, File{Path: rel, AbsPath: p})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// IgnoredDir reports whether a directory name is never scanned.
func IgnoredDir(name string) bool {
	switch name {
	case StateDir, ".git", ".trash", "node_modules":
		return true
	}
	return false
}
