package metadata

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aidanlsb/fieldmenu/internal/testutil"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

func openIndex(t *testing.T, tv *testutil.TestVault) (*vault.Vault, *Index) {
	t.Helper()
	v, err := vault.Open(tv.Path)
	if err != nil {
		t.Fatalf("vault.Open: %v", err)
	}
	idx, err := OpenIndex(v, nil)
	if err != nil {
		t.Fatalf("OpenIndex: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return v, idx
}

// touch bumps the mtime so the index sees a change even on coarse clocks.
func touch(t *testing.T, path string, offset time.Duration) {
	t.Helper()
	ts := time.Now().Add(offset)
	if err := os.Chtimes(path, ts, ts); err != nil {
		t.Fatal(err)
	}
}

func TestIndexFrontmatterHitAndInvalidate(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithFile("task.md", "---\nstatus: todo\ndone: true\ntags: [a, b]\n---\n").
		Build()
	v, idx := openIndex(t, tv)
	ctx := context.Background()

	f, err := v.File("task.md")
	if err != nil {
		t.Fatal(err)
	}

	fm, err := idx.Frontmatter(ctx, f)
	if err != nil {
		t.Fatalf("Frontmatter: %v", err)
	}
	status, _ := fm.Fields.Get("status")
	if status.String() != "todo" {
		t.Fatalf("status = %q", status.String())
	}

	// Second lookup is served from the index and keeps value types.
	fm, err = idx.Frontmatter(ctx, f)
	if err != nil {
		t.Fatalf("Frontmatter: %v", err)
	}
	done, _ := fm.Fields.Get("done")
	if !done.IsBool() || !*done.Bool {
		t.Errorf("done = %+v, want native true", done)
	}
	tags, _ := fm.Fields.Get("tags")
	if !tags.IsList() || tags.String() != "a, b" {
		t.Errorf("tags = %+v", tags)
	}
	if got := fm.Fields.Keys(); len(got) != 3 || got[0] != "status" {
		t.Errorf("keys = %v, want document order", got)
	}

	tv.WriteFile("task.md", "---\nstatus: done\n---\n")
	touch(t, f.AbsPath, time.Minute)

	fm, err = idx.Frontmatter(ctx, f)
	if err != nil {
		t.Fatalf("Frontmatter: %v", err)
	}
	status, _ = fm.Fields.Get("status")
	if status.String() != "done" {
		t.Errorf("status after change = %q, want done", status.String())
	}
}

func TestIndexNoFrontmatterAndMalformed(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithFile("plain.md", "# Plain\n").
		WithFile("bad.md", "---\n- a\n---\n").
		Build()
	v, idx := openIndex(t, tv)
	ctx := context.Background()

	plain, _ := v.File("plain.md")
	for i := 0; i < 2; i++ {
		fm, err := idx.Frontmatter(ctx, plain)
		if err != nil || fm != nil {
			t.Errorf("lookup %d: fm = %+v, err = %v; want nil, nil", i, fm, err)
		}
	}

	bad, _ := v.File("bad.md")
	for i := 0; i < 2; i++ {
		if _, err := idx.Frontmatter(ctx, bad); !errors.Is(err, ErrMalformed) {
			t.Errorf("lookup %d: err = %v, want ErrMalformed", i, err)
		}
	}
}

func TestIndexRebuildDropsDeletedFiles(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithFile("a.md", "---\nx: 1\n---\n").
		WithFile("b.md", "---\nx: 2\n---\n").
		Build()
	_, idx := openIndex(t, tv)
	ctx := context.Background()

	n, err := idx.Rebuild(ctx, nil)
	if err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if n != 2 {
		t.Errorf("indexed %d files, want 2", n)
	}

	if err := os.Remove(filepath.Join(tv.Path, "b.md")); err != nil {
		t.Fatal(err)
	}
	calls := 0
	if _, err := idx.Rebuild(ctx, func(done, total int) {
		calls++
		if total != 1 {
			t.Errorf("total = %d, want 1", total)
		}
	}); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	if calls != 1 {
		t.Errorf("progress calls = %d, want 1", calls)
	}

	paths, err := idx.Paths(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) != 1 || paths[0] != "a.md" {
		t.Errorf("paths = %v, want [a.md]", paths)
	}
}

func TestParserCache(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithFile("a.md", "---\nstatus: todo\n---\n").
		Build()
	v, err := vault.Open(tv.Path)
	if err != nil {
		t.Fatal(err)
	}
	f, _ := v.File("a.md")

	fm, err := NewParser(v).Frontmatter(context.Background(), f)
	if err != nil {
		t.Fatalf("Frontmatter: %v", err)
	}
	if got, _ := fm.Fields.Get("status"); got.String() != "todo" {
		t.Errorf("status = %q", got.String())
	}
}
