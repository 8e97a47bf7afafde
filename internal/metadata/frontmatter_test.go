package metadata

import (
	"errors"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	content := `---
status: todo
done: false
tags: [work, home]
rating: 4
due: 2025-02-01
empty:
owner: "[[people/freya]]"
meta: {a: 1}
---

# Body
priority:: low
`
	fm, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm == nil {
		t.Fatal("expected non-nil frontmatter")
	}

	wantKeys := []string{"status", "done", "tags", "rating", "due", "empty", "owner", "meta"}
	if got := fm.Fields.Keys(); !reflect.DeepEqual(got, wantKeys) {
		t.Errorf("keys = %v, want %v", got, wantKeys)
	}

	if fm.Position != (Position{Start: 0, End: 9}) {
		t.Errorf("position = %+v", fm.Position)
	}

	done, _ := fm.Fields.Get("done")
	if !done.IsBool() || *done.Bool {
		t.Errorf("done = %+v, want native false", done)
	}

	tags, _ := fm.Fields.Get("tags")
	if !reflect.DeepEqual(tags.List, []string{"work", "home"}) {
		t.Errorf("tags = %+v", tags)
	}

	tests := map[string]string{
		"status": "todo",
		"rating": "4",
		"due":    "2025-02-01",
		"empty":  "",
		"owner":  "[[people/freya]]",
		"meta":   "{a: 1}",
	}
	for key, want := range tests {
		v, _ := fm.Fields.Get(key)
		if v.String() != want {
			t.Errorf("%s = %q, want %q", key, v.String(), want)
		}
	}
}

func TestParseNoFrontmatter(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"no delimiter", "# Heading\n\nstatus: todo\n"},
		{"unclosed", "---\nstatus: todo\n"},
		{"delimiter not on first line", "\n---\nstatus: todo\n---\n"},
		{"delimiter with trailing space", "--- \nstatus: todo\n---\n"},
		{"indented delimiter", " ---\nstatus: todo\n---\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, err := Parse(tt.content)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if fm != nil {
				t.Errorf("expected nil frontmatter, got %+v", fm)
			}
		})
	}
}

func TestParseEmptyFrontmatter(t *testing.T) {
	fm, err := Parse("---\n---\nbody")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fm == nil || fm.Fields.Len() != 0 {
		t.Errorf("expected empty frontmatter, got %+v", fm)
	}
}

func TestParseMalformed(t *testing.T) {
	if _, err := Parse("---\n- a\n- b\n---\n"); !errors.Is(err, ErrNotMapping) {
		t.Errorf("list document: err = %v, want ErrNotMapping", err)
	}
	if _, err := Parse("---\nkey: [unclosed\n---\n"); !errors.Is(err, ErrMalformed) {
		t.Errorf("bad yaml: err = %v, want ErrMalformed", err)
	}
}

func TestParseCRLF(t *testing.T) {
	fm, err := Parse("---\r\nstatus: todo\r\n---\r\nbody\r\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := fm.Fields.Get("status")
	if !ok || v.String() != "todo" {
		t.Errorf("status = %q, want todo", v.String())
	}
}
