package ui

import (
	"strings"
	"testing"
)

func TestRenderMarkdownNormalizesTrailingNewline(t *testing.T) {
	out, err := RenderMarkdown("# Heading\n\nstatus:: todo\n", 80)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if !strings.HasSuffix(out, "\n") || strings.HasSuffix(out, "\n\n") {
		t.Fatalf("expected a single trailing newline, got %q", out)
	}
	if !strings.Contains(out, "Heading") || !strings.Contains(out, "status:: todo") {
		t.Fatalf("missing content in %q", out)
	}
}

func TestRenderMarkdownDefaultsWidth(t *testing.T) {
	out, err := RenderMarkdown("hello", 0)
	if err != nil {
		t.Fatalf("RenderMarkdown() error = %v", err)
	}
	if strings.TrimSpace(out) == "" {
		t.Fatal("expected non-empty output")
	}
}

func TestNoteStyleUsesAccent(t *testing.T) {
	origAccent, origBold, origColor := Accent, AccentBold, accentColor
	t.Cleanup(func() {
		Accent, AccentBold, accentColor = origAccent, origBold, origColor
	})

	ConfigureTheme("none")
	if noteStyle().Heading.Color != nil {
		t.Error("heading should be uncolored without an accent")
	}

	ConfigureTheme("39")
	if c := noteStyle().Heading.Color; c == nil || *c != "39" {
		t.Errorf("heading color = %v, want 39", c)
	}
}
