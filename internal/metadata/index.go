package metadata

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/aidanlsb/fieldmenu/internal/fields"
	"github.com/aidanlsb/fieldmenu/internal/sqlutil"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

// IndexFile is the database file name inside the vault state directory.
const IndexFile = "index.db"

// indexSchemaVersion is bumped whenever the table layout changes; an index
// with another version is dropped and rebuilt lazily.
const indexSchemaVersion = 1

const indexSchema = `
CREATE TABLE IF NOT EXISTS frontmatter (
	path       TEXT PRIMARY KEY,
	mtime      INTEGER NOT NULL,
	present    INTEGER NOT NULL,
	start_line INTEGER NOT NULL DEFAULT 0,
	end_line   INTEGER NOT NULL DEFAULT 0,
	raw        TEXT NOT NULL DEFAULT '',
	fields     TEXT NOT NULL DEFAULT '[]',
	parse_err  TEXT NOT NULL DEFAULT ''
);
`

// Index is a Cache backed by SQLite. Entries are keyed by vault-relative path
// and validated against the file's modification time, so a stale entry is
// re-parsed on lookup.
type Index struct {
	db     *sql.DB
	vault  *vault.Vault
	logger *slog.Logger
}

// storedField is the JSON form of one attribute.
type storedField struct {
	Key  string   `json:"k"`
	Text string   `json:"t,omitempty"`
	Bool *bool    `json:"b,omitempty"`
	List []string `json:"l,omitempty"`
}

// OpenIndex opens or creates the index of v.
func OpenIndex(v *vault.Vault, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	dir := filepath.Join(v.Root(), vault.StateDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", vault.StateDir, err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	// SQLite allows a single writer; serialize through one connection.
	db.SetMaxOpenConns(1)

	idx := &Index{db: db, vault: v, logger: logger}
	if err := idx.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return idx, nil
}

func (idx *Index) initialize() error {
	var version int
	if err := idx.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("failed to read index version: %w", err)
	}
	if version != indexSchemaVersion {
		if _, err := idx.db.Exec(`DROP TABLE IF EXISTS frontmatter`); err != nil {
			return fmt.Errorf("failed to reset index: %w", err)
		}
	}
	if _, err := idx.db.Exec(indexSchema); err != nil {
		return fmt.Errorf("failed to create index schema: %w", err)
	}
	if _, err := idx.db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, indexSchemaVersion)); err != nil {
		return fmt.Errorf("failed to set index version: %w", err)
	}
	return nil
}

// Close closes the database.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Frontmatter implements Cache.
func (idx *Index) Frontmatter(ctx context.Context, f vault.File) (*Frontmatter, error) {
	st, err := idx.vault.Stat(f)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", f.Path, err)
	}
	mtime := st.ModTime().UnixNano()

	fm, hit, err := idx.lookup(ctx, f.Path, mtime)
	if err != nil {
		return nil, err
	}
	if hit {
		return fm, nil
	}

	idx.logger.Debug("index miss", "path", f.Path)
	return idx.refresh(ctx, f, mtime)
}

// Refresh re-parses f and stores the result regardless of its mtime.
func (idx *Index) Refresh(ctx context.Context, f vault.File) error {
	st, err := idx.vault.Stat(f)
	if err != nil {
		return fmt.Errorf("stat %s: %w", f.Path, err)
	}
	_, err = idx.refresh(ctx, f, st.ModTime().UnixNano())
	if errors.Is(err, ErrMalformed) {
		// Stored; the caller sees it on lookup.
		return nil
	}
	return err
}

// Remove deletes the entry for a vault-relative path.
func (idx *Index) Remove(ctx context.Context, path string) error {
	if _, err := idx.db.ExecContext(ctx, `DELETE FROM frontmatter WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to remove %s from index: %w", path, err)
	}
	return nil
}

// Rebuild refreshes every markdown file and drops entries for files that no
// longer exist. It returns the number of files indexed. onFile, if set, is
// called after each file with the running count and the total.
func (idx *Index) Rebuild(ctx context.Context, onFile func(done, total int)) (int, error) {
	files, err := idx.vault.MarkdownFiles(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[string]bool, len(files))
	for i, f := range files {
		if err := idx.Refresh(ctx, f); err != nil {
			return 0, err
		}
		seen[f.Path] = true
		if onFile != nil {
			onFile(i+1, len(files))
		}
	}

	paths, err := idx.Paths(ctx)
	if err != nil {
		return 0, err
	}
	var stale []string
	for _, p := range paths {
		if !seen[p] {
			stale = append(stale, p)
		}
	}
	if err := idx.removeAll(ctx, stale); err != nil {
		return 0, err
	}

	return len(files), nil
}

// Paths returns every indexed path.
func (idx *Index) Paths(ctx context.Context) ([]string, error) {
	rows, err := idx.db.QueryContext(ctx, `SELECT path FROM frontmatter ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("failed to list index: %w", err)
	}
	return sqlutil.Strings(rows)
}

func (idx *Index) removeAll(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	placeholders, args := sqlutil.InClause(paths)
	if _, err := idx.db.ExecContext(ctx, `DELETE FROM frontmatter WHERE path IN (`+placeholders+`)`, args...); err != nil {
		return fmt.Errorf("failed to prune index: %w", err)
	}
	idx.logger.Debug("pruned index", "removed", len(paths))
	return nil
}

func (idx *Index) lookup(ctx context.Context, path string, mtime int64) (*Frontmatter, bool, error) {
	var (
		storedMtime int64
		present     bool
		start, end  int
		raw, blob   string
		parseErr    string
	)
	err := idx.db.QueryRowContext(ctx,
		`SELECT mtime, present, start_line, end_line, raw, fields, parse_err FROM frontmatter WHERE path = ?`,
		path,
	).Scan(&storedMtime, &present, &start, &end, &raw, &blob, &parseErr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to query index: %w", err)
	}
	if storedMtime != mtime {
		return nil, false, nil
	}

	if parseErr != "" {
		return nil, true, fmt.Errorf("%w: %s", ErrMalformed, parseErr)
	}
	if !present {
		return nil, true, nil
	}

	var stored []storedField
	if err := json.Unmarshal([]byte(blob), &stored); err != nil {
		// Corrupt row; treat as a miss so it gets rewritten.
		idx.logger.Debug("corrupt index row", "path", path, "error", err)
		return nil, false, nil
	}

	fm := &Frontmatter{
		Fields:   fields.NewAttributes(),
		Position: Position{Start: start, End: end},
		Raw:      raw,
	}
	for _, s := range stored {
		fm.Fields.Set(s.Key, fields.Value{Text: s.Text, Bool: s.Bool, List: s.List})
	}
	return fm, true, nil
}

func (idx *Index) refresh(ctx context.Context, f vault.File, mtime int64) (*Frontmatter, error) {
	content, err := idx.vault.Read(ctx, f)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			_ = idx.Remove(ctx, f.Path)
		}
		return nil, err
	}

	fm, parseErr := Parse(content)
	if parseErr != nil && !errors.Is(parseErr, ErrMalformed) {
		return nil, parseErr
	}

	if err := idx.store(ctx, f.Path, mtime, fm, parseErr); err != nil {
		return nil, err
	}
	return fm, parseErr
}

func (idx *Index) store(ctx context.Context, path string, mtime int64, fm *Frontmatter, parseErr error) error {
	var (
		present    bool
		start, end int
		raw        string
		errText    string
	)
	stored := []storedField{}

	if parseErr != nil {
		errText = strings.TrimPrefix(parseErr.Error(), ErrMalformed.Error()+": ")
	}
	if fm != nil {
		present = true
		start, end, raw = fm.Position.Start, fm.Position.End, fm.Raw
		for _, attr := range fm.Fields.All() {
			stored = append(stored, storedField{
				Key:  attr.Key,
				Text: attr.Value.Text,
				Bool: attr.Value.Bool,
				List: attr.Value.List,
			})
		}
	}

	blob, err := json.Marshal(stored)
	if err != nil {
		return fmt.Errorf("failed to encode fields: %w", err)
	}

	_, err = idx.db.ExecContext(ctx, `
		INSERT INTO frontmatter (path, mtime, present, start_line, end_line, raw, fields, parse_err)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			mtime = excluded.mtime,
			present = excluded.present,
			start_line = excluded.start_line,
			end_line = excluded.end_line,
			raw = excluded.raw,
			fields = excluded.fields,
			parse_err = excluded.parse_err`,
		path, mtime, present, start, end, raw, string(blob), errText,
	)
	if err != nil {
		return fmt.Errorf("failed to store %s in index: %w", path, err)
	}
	return nil
}
