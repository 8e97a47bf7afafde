package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/fieldmenu/internal/testutil"
)

const planNote = `---
status: todo
done: false
tags: [work]
priority: low
---
# Plan

mood:: calm
flag:: TRUE
`

const dailyNote = `# Today

See [[Plan]] and [the report](reports/q1.md).
`

type cliResult struct {
	stdout string
	stderr string
	err    error
}

type jsonResponse struct {
	OK       bool            `json:"ok"`
	Data     json.RawMessage `json:"data"`
	Error    *ErrorInfo      `json:"error"`
	Warnings []Warning       `json:"warnings"`
	Meta     *Meta           `json:"meta"`
}

func (r cliResult) mustSucceed(t *testing.T) {
	t.Helper()
	if r.err != nil {
		t.Fatalf("command failed: %v\nstdout: %s\nstderr: %s", r.err, r.stdout, r.stderr)
	}
}

func (r cliResult) json(t *testing.T) jsonResponse {
	t.Helper()
	var resp jsonResponse
	if err := json.Unmarshal([]byte(r.stdout), &resp); err != nil {
		t.Fatalf("expected JSON output, got parse error: %v; out=%s", err, r.stdout)
	}
	return resp
}

func (r cliResult) errorCode(t *testing.T) string {
	t.Helper()
	if !errors.Is(r.err, errReported) {
		t.Fatalf("expected a reported JSON error, got %v\nstdout: %s", r.err, r.stdout)
	}
	resp := r.json(t)
	if resp.OK || resp.Error == nil {
		t.Fatalf("expected ok=false with an error; out=%s", r.stdout)
	}
	return resp.Error.Code
}

func decodeData(t *testing.T, resp jsonResponse, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Data, v); err != nil {
		t.Fatalf("failed to decode data: %v; data=%s", err, resp.Data)
	}
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI runs fmenu against the vault with the config at configFile.
func runCLI(t *testing.T, tv *testutil.TestVault, configFile string, args ...string) cliResult {
	t.Helper()

	resetFlags(rootCmd)
	cfg = nil
	configWarnings = nil
	resolvedVaultPath = ""
	resolvedConfigPath = ""
	t.Cleanup(func() {
		resetFlags(rootCmd)
		logger = discardLogger()
	})

	full := append([]string{}, args...)
	full = append(full, "--config", configFile)
	if tv != nil {
		full = append(full, "--vault-path", tv.Path)
	}

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), full, strings.NewReader(""), &stdout, &stderr)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func setupVault(t *testing.T) (*testutil.TestVault, string) {
	t.Helper()
	tv := testutil.NewTestVault(t).
		WithFile("projects/plan.md", planNote).
		WithFile("daily.md", dailyNote).
		Build()
	return tv, writeConfig(t, testutil.PresetConfig())
}

func TestMenuJSONListsEntries(t *testing.T) {
	tv, conf := setupVault(t)

	r := runCLI(t, tv, conf, "menu", "[[Plan]]", "--json")
	r.mustSucceed(t)
	resp := r.json(t)

	var data struct {
		Path    string          `json:"path"`
		Entries []menuEntryJSON `json:"entries"`
	}
	decodeData(t, resp, &data)

	if data.Path != "projects/plan.md" {
		t.Errorf("path = %q, want projects/plan.md", data.Path)
	}
	want := []menuEntryJSON{
		{Kind: "item", Title: "status : todo ▷ doing", Icon: "switch"},
		{Kind: "item", Title: "Update done", Icon: "checkmark"},
		{Kind: "item", Title: "Update tags", Icon: "bullet-list"},
		{Kind: "item", Title: "Update priority", Icon: "right-triangle"},
		{Kind: "separator"},
		{Kind: "item", Title: "Update mood", Icon: "pencil"},
		{Kind: "item", Title: "Update flag", Icon: "checkmark"},
	}
	if len(data.Entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(data.Entries), len(want), data.Entries)
	}
	for i := range want {
		if data.Entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, data.Entries[i], want[i])
		}
	}
	if resp.Meta == nil || resp.Meta.Count != 6 {
		t.Errorf("meta = %+v, want count 6", resp.Meta)
	}
}

func TestMenuItemCyclesWithoutPrompt(t *testing.T) {
	tv, conf := setupVault(t)

	r := runCLI(t, tv, conf, "menu", "Plan", "--item", "status : todo ▷ doing", "--json")
	r.mustSucceed(t)

	var data struct {
		Changed bool   `json:"changed"`
		Item    string `json:"item"`
	}
	decodeData(t, r.json(t), &data)
	if !data.Changed {
		t.Error("expected changed=true")
	}
	tv.AssertFileContains("projects/plan.md", "status: doing\n")
}

func TestMenuItemWithValue(t *testing.T) {
	tests := []struct {
		name  string
		item  string
		value string
		want  string
	}{
		{"multi select", "Update tags", "work, home", "tags: [work, home]\n"},
		{"single select", "Update priority", "high", "priority: high\n"},
		{"toggle", "Update done", "true", "done: true\n"},
		{"inline text", "Update mood", "sunny", "mood:: sunny\n"},
		{"inline toggle", "Update flag", "false", "flag:: false\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv, conf := setupVault(t)
			r := runCLI(t, tv, conf, "menu", "Plan", "--item", tt.item, "--value", tt.value)
			r.mustSucceed(t)
			tv.AssertFileContains("projects/plan.md", tt.want)
		})
	}
}

func TestMenuItemErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"value not an option", []string{"--item", "Update priority", "--value", "urgent"}, ErrInvalidValue},
		{"toggle not boolean", []string{"--item", "Update done", "--value", "maybe"}, ErrInvalidValue},
		{"dialog without terminal", []string{"--item", "Update mood"}, ErrInteractiveRequired},
		{"unknown item", []string{"--item", "Update nothing"}, ErrItemNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tv, conf := setupVault(t)
			args := append([]string{"menu", "Plan", "--json"}, tt.args...)
			r := runCLI(t, tv, conf, args...)
			if code := r.errorCode(t); code != tt.code {
				t.Errorf("code = %s, want %s", code, tt.code)
			}
			tv.AssertFileEquals("projects/plan.md", planNote)
		})
	}
}

func TestMenuUnresolvedLink(t *testing.T) {
	tv, conf := setupVault(t)

	r := runCLI(t, tv, conf, "menu", "Ghost", "--json")
	if code := r.errorCode(t); code != ErrRefNotFound {
		t.Errorf("code = %s, want %s", code, ErrRefNotFound)
	}
}

func TestMenuWithoutItemNeedsTerminal(t *testing.T) {
	tv, conf := setupVault(t)

	r := runCLI(t, tv, conf, "menu", "Plan")
	if r.err == nil {
		t.Fatal("expected an error without a terminal")
	}
	if !strings.Contains(r.stderr, "needs a terminal") {
		t.Errorf("stderr = %q, want a terminal hint", r.stderr)
	}
}

func TestMenuFromNote(t *testing.T) {
	tv, conf := setupVault(t)

	r := runCLI(t, tv, conf, "menu", "plan", "--from", "daily", "--item", "Update flag", "--value", "false")
	r.mustSucceed(t)
	tv.AssertFileContains("projects/plan.md", "flag:: false\n")

	r = runCLI(t, tv, conf, "menu", "Elsewhere", "--from", "daily", "--json")
	if code := r.errorCode(t); code != ErrLinkNotFound {
		t.Errorf("code = %s, want %s", code, ErrLinkNotFound)
	}
}

func TestMenuIgnoresNonMarkdownLinks(t *testing.T) {
	tv, conf := setupVault(t)
	tv.WriteFile("image.png", "png")

	r := runCLI(t, tv, conf, "menu", "image.png", "--json")
	if code := r.errorCode(t); code != ErrFileNotMarkdown {
		t.Errorf("code = %s, want %s", code, ErrFileNotMarkdown)
	}
}

func TestFieldsJSON(t *testing.T) {
	tv, conf := setupVault(t)

	r := runCLI(t, tv, conf, "fields", "Plan", "--json")
	r.mustSucceed(t)

	var data struct {
		Fields []fieldJSON `json:"fields"`
	}
	decodeData(t, r.json(t), &data)
	if len(data.Fields) != 6 {
		t.Fatalf("got %d fields, want 6: %+v", len(data.Fields), data.Fields)
	}

	byKey := make(map[string]fieldJSON)
	for _, f := range data.Fields {
		byKey[f.Key] = f
	}
	if f := byKey["status"]; f.Kind != "cycle" || f.Next != "doing" {
		t.Errorf("status = %+v, want cycle to doing", f)
	}
	if f := byKey["tags"]; f.Kind != "multi_select" || len(f.Selected) != 1 || f.Selected[0] != "work" {
		t.Errorf("tags = %+v, want multi_select with work selected", f)
	}
	if f := byKey["done"]; f.Kind != "toggle" || f.Value != false {
		t.Errorf("done = %+v, want toggle with native false", f)
	}
	if f := byKey["mood"]; f.Section != "inline" || f.Kind != "text_input" || f.Item != "Update mood" {
		t.Errorf("mood = %+v, want inline text_input", f)
	}
}

func TestFieldsText(t *testing.T) {
	tv, conf := setupVault(t)

	r := runCLI(t, tv, conf, "fields", "Plan")
	r.mustSucceed(t)
	for _, want := range []string{"projects/plan.md", "frontmatter", "inline", "cycle ▷ doing", "select (3 options)"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestSetCommand(t *testing.T) {
	tv, conf := setupVault(t)

	runCLI(t, tv, conf, "set", "Plan", "priority", "high").mustSucceed(t)
	tv.AssertFileContains("projects/plan.md", "priority: high\n")

	// Cycle keys accept any value when set directly.
	runCLI(t, tv, conf, "set", "Plan", "status", "blocked").mustSucceed(t)
	tv.AssertFileContains("projects/plan.md", "status: blocked\n")

	r := runCLI(t, tv, conf, "set", "Plan", "priority", "urgent", "--json")
	if code := r.errorCode(t); code != ErrInvalidValue {
		t.Errorf("code = %s, want %s", code, ErrInvalidValue)
	}
}

func TestSetMissingKeyWarns(t *testing.T) {
	tv, conf := setupVault(t)

	r := runCLI(t, tv, conf, "set", "Plan", "owner", "me", "--json")
	r.mustSucceed(t)
	resp := r.json(t)
	if !resp.OK {
		t.Fatalf("expected ok=true; out=%s", r.stdout)
	}
	if len(resp.Warnings) != 1 || resp.Warnings[0].Code != WarnFieldNotFound {
		t.Errorf("warnings = %+v, want one %s", resp.Warnings, WarnFieldNotFound)
	}
	tv.AssertFileEquals("projects/plan.md", planNote)
}

func TestCycleCommand(t *testing.T) {
	tv, conf := setupVault(t)

	r := runCLI(t, tv, conf, "cycle", "Plan", "status")
	r.mustSucceed(t)
	if !strings.Contains(r.stdout, "todo → doing") {
		t.Errorf("stdout = %q, want todo → doing", r.stdout)
	}
	tv.AssertFileContains("projects/plan.md", "status: doing\n")

	runCLI(t, tv, conf, "cycle", "Plan", "status").mustSucceed(t)
	runCLI(t, tv, conf, "cycle", "Plan", "status").mustSucceed(t)
	tv.AssertFileContains("projects/plan.md", "status: todo\n")

	r = runCLI(t, tv, conf, "cycle", "Plan", "priority", "--json")
	if code := r.errorCode(t); code != ErrInvalidInput {
		t.Errorf("code = %s, want %s", code, ErrInvalidInput)
	}
	r = runCLI(t, tv, conf, "cycle", "Plan", "owner", "--json")
	if code := r.errorCode(t); code != ErrFieldNotFound {
		t.Errorf("code = %s, want %s", code, ErrFieldNotFound)
	}
}

func TestLinksJSON(t *testing.T) {
	tv, conf := setupVault(t)

	r := runCLI(t, tv, conf, "links", "daily", "--json")
	r.mustSucceed(t)

	var data struct {
		Links []linkJSON `json:"links"`
	}
	decodeData(t, r.json(t), &data)
	if len(data.Links) != 2 {
		t.Fatalf("got %d links, want 2: %+v", len(data.Links), data.Links)
	}

	byTarget := make(map[string]linkJSON)
	for _, l := range data.Links {
		byTarget[l.Target] = l
	}
	if l := byTarget["Plan"]; l.Resolved != "projects/plan.md" || !l.Wiki {
		t.Errorf("Plan link = %+v", l)
	}
	if l := byTarget["reports/q1.md"]; l.Error != "not found" {
		t.Errorf("report link = %+v, want not found", l)
	}
}

func TestShowRaw(t *testing.T) {
	tv, conf := setupVault(t)

	r := runCLI(t, tv, conf, "show", "Plan", "--raw")
	r.mustSucceed(t)
	if r.stdout != planNote {
		t.Errorf("stdout = %q, want the note text", r.stdout)
	}
}

func TestPresetsCommand(t *testing.T) {
	conf := writeConfig(t, testutil.PresetConfig())

	r := runCLI(t, nil, conf, "presets", "--json")
	r.mustSucceed(t)
	resp := r.json(t)
	if resp.Meta == nil || resp.Meta.Count != 3 {
		t.Errorf("meta = %+v, want count 3", resp.Meta)
	}

	r = runCLI(t, nil, conf, "presets")
	r.mustSucceed(t)
	for _, want := range []string{"status", "cycle", "multi-select", "todo, doing, done"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("output missing %q:\n%s", want, r.stdout)
		}
	}
}

func TestInvalidPresetsAreWarnings(t *testing.T) {
	tv, _ := setupVault(t)
	conf := writeConfig(t, `[[presets]]
name = "status"
values = ["todo", "done"]
cycle = true
multi = true
`)

	r := runCLI(t, tv, conf, "menu", "Plan", "--json")
	r.mustSucceed(t)
	resp := r.json(t)
	if len(resp.Warnings) == 0 || resp.Warnings[0].Code != WarnConfigInvalid {
		t.Errorf("warnings = %+v, want %s", resp.Warnings, WarnConfigInvalid)
	}
}

func TestReindexAndUseIndex(t *testing.T) {
	tv, _ := setupVault(t)
	conf := writeConfig(t, "use_index = true\n"+testutil.PresetConfig())

	r := runCLI(t, tv, conf, "reindex", "--json")
	r.mustSucceed(t)
	var data struct {
		Indexed int `json:"indexed"`
	}
	decodeData(t, r.json(t), &data)
	if data.Indexed != 2 {
		t.Errorf("indexed = %d, want 2", data.Indexed)
	}

	runCLI(t, tv, conf, "cycle", "Plan", "status").mustSucceed(t)
	tv.AssertFileContains("projects/plan.md", "status: doing\n")

	// The index notices the file changed on disk.
	runCLI(t, tv, conf, "cycle", "Plan", "status").mustSucceed(t)
	tv.AssertFileContains("projects/plan.md", "status: done\n")
}

func TestInitCreatesConfigOnce(t *testing.T) {
	conf := filepath.Join(t.TempDir(), "nested", "config.toml")

	r := runCLI(t, nil, conf, "init", "--json")
	r.mustSucceed(t)
	var data struct {
		Created bool `json:"created"`
	}
	decodeData(t, r.json(t), &data)
	if !data.Created {
		t.Error("expected created=true")
	}
	if _, err := os.Stat(conf); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	r = runCLI(t, nil, conf, "init", "--json")
	r.mustSucceed(t)
	decodeData(t, r.json(t), &data)
	if data.Created {
		t.Error("expected created=false for an existing config")
	}
}

func TestUnknownNamedVault(t *testing.T) {
	conf := writeConfig(t, testutil.PresetConfig())

	r := runCLI(t, nil, conf, "fields", "Plan", "--vault", "missing")
	if r.err == nil || !strings.Contains(r.stderr, "vault 'missing' not found") {
		t.Errorf("err = %v, stderr = %q", r.err, r.stderr)
	}
}

func TestOpenRunsEditor(t *testing.T) {
	tv, _ := setupVault(t)
	conf := writeConfig(t, "editor = \"true\"\n")

	r := runCLI(t, tv, conf, "open", "[[Plan]]", "--json")
	r.mustSucceed(t)
	var data struct {
		Path string `json:"path"`
	}
	decodeData(t, r.json(t), &data)
	if data.Path != "projects/plan.md" {
		t.Errorf("path = %q, want projects/plan.md", data.Path)
	}
}

func TestOpenWithoutEditor(t *testing.T) {
	tv, conf := setupVault(t)
	t.Setenv("EDITOR", "")

	r := runCLI(t, tv, conf, "open", "Plan", "--json")
	if code := r.errorCode(t); code != ErrInvalidInput {
		t.Errorf("code = %s, want %s", code, ErrInvalidInput)
	}
}
