package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/fieldmenu/internal/extract"
	"github.com/aidanlsb/fieldmenu/internal/fields"
	"github.com/aidanlsb/fieldmenu/internal/metadata"
	"github.com/aidanlsb/fieldmenu/internal/prompt"
	"github.com/aidanlsb/fieldmenu/internal/quickedit"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

var _ quickedit.Prompter = (*prompt.Terminal)(nil)
var _ quickedit.Prompter = valuePrompter{}

// app wires the vault, the front-matter cache and the quick-edit builder
// for one command.
type app struct {
	vault     *vault.Vault
	index     *metadata.Index
	extractor *extract.Extractor
	builder   *quickedit.Builder
}

// openApp opens the resolved vault. With use_index set, front-matter is read
// through the metadata index.
func openApp(prompter quickedit.Prompter) (*app, error) {
	v, err := vault.Open(getVaultPath())
	if err != nil {
		return nil, err
	}
	a := &app{vault: v}

	var (
		cache metadata.Cache
		store quickedit.FileStore = v
	)
	if getConfig().UseIndex {
		a.index, err = metadata.OpenIndex(v, logger)
		if err != nil {
			return nil, err
		}
		cache = a.index
		store = indexedStore{Vault: v, index: a.index}
	}

	a.extractor = extract.New(v, cache, logger)
	a.builder = quickedit.New(quickedit.Options{
		Store:     store,
		Extractor: a.extractor,
		Presets:   getConfig().Presets,
		Prompter:  prompter,
		Logger:    logger,
	})
	return a, nil
}

func (a *app) Close() error {
	if a.index != nil {
		return a.index.Close()
	}
	return nil
}

// resolve finds the note a link points to.
func (a *app) resolve(ctx context.Context, link string) (vault.File, error) {
	return a.vault.Resolve(ctx, link)
}

// indexedStore refreshes the index entry of every file it writes.
type indexedStore struct {
	*vault.Vault
	index *metadata.Index
}

func (s indexedStore) Modify(ctx context.Context, f vault.File, content string) error {
	if err := s.Vault.Modify(ctx, f, content); err != nil {
		return err
	}
	return s.index.Refresh(ctx, f)
}

// interactive reports whether cmd reads from a terminal.
func interactive(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// terminalFor returns a dialog runner on cmd's input, or nil when there is
// no terminal to draw on.
func terminalFor(cmd *cobra.Command) *prompt.Terminal {
	if !interactive(cmd) {
		return nil
	}
	return &prompt.Terminal{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
}

// prompterFor answers dialogs from --value when it is set, otherwise from
// the terminal. It returns nil when neither is available.
func prompterFor(cmd *cobra.Command) quickedit.Prompter {
	if value, ok := changedString(cmd.Flags(), "value"); ok {
		return valuePrompter{value: value}
	}
	if t := terminalFor(cmd); t != nil {
		return t
	}
	return nil
}

// changedString returns a string flag's value only if it was set.
func changedString(flags *pflag.FlagSet, name string) (string, bool) {
	f := flags.Lookup(name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

// valuePrompter answers every dialog with a fixed value.
type valuePrompter struct {
	value string
}

func (p valuePrompter) MultiSelect(_ context.Context, _ string, options, _ []string) ([]string, bool, error) {
	picked := fields.SplitList(p.value)
	for _, v := range picked {
		if !contains(options, v) {
			return nil, false, fmt.Errorf("%w: %q is not one of: %s", errInvalidValue, v, strings.Join(options, ", "))
		}
	}
	return picked, true, nil
}

func (p valuePrompter) Select(_ context.Context, _ string, options []string, _ string) (string, bool, error) {
	if !contains(options, p.value) {
		return "", false, fmt.Errorf("%w: %q is not one of: %s", errInvalidValue, p.value, strings.Join(options, ", "))
	}
	return p.value, true, nil
}

func (p valuePrompter) Toggle(_ context.Context, _ string, label string, _ bool) (bool, bool, error) {
	state, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(p.value)))
	if err != nil {
		return false, false, fmt.Errorf("%w: %s expects true or false, got %q", errInvalidValue, label, p.value)
	}
	return state, true, nil
}

func (p valuePrompter) TextInput(context.Context, string, string) (string, bool, error) {
	return p.value, true, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
