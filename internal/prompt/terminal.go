// Package prompt implements the quick-edit dialogs as terminal programs.
package prompt

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aidanlsb/fieldmenu/internal/menu"
)

// Terminal runs dialogs on a terminal. Dialogs draw on Out, which should be
// stderr so that stdout stays clean for command output.
type Terminal struct {
	In  io.Reader
	Out io.Writer

	// options are appended to every program; tests use them to disable
	// the renderer.
	options []tea.ProgramOption
}

// NewTerminal returns a Terminal on stdin and stderr.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

func (t *Terminal) run(ctx context.Context, model tea.Model) (tea.Model, error) {
	opts := append([]tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
	}, t.options...)

	final, err := tea.NewProgram(model, opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("run dialog: %w", err)
	}
	return final, nil
}

// MultiSelect lets the user check any subset of options.
func (t *Terminal) MultiSelect(ctx context.Context, title string, options, selected []string) ([]string, bool, error) {
	final, err := t.run(ctx, newMultiSelectModel(title, options, selected))
	if err != nil {
		return nil, false, err
	}
	m := final.(multiSelectModel)
	if !m.done {
		return nil, false, nil
	}
	return m.selected(), true, nil
}

// Select lets the user pick one option, starting at current.
func (t *Terminal) Select(ctx context.Context, title string, options []string, current string) (string, bool, error) {
	final, err := t.run(ctx, newSelectModel(title, options, current))
	if err != nil {
		return "", false, err
	}
	m := final.(selectModel)
	if !m.done {
		return "", false, nil
	}
	return m.choice(), true, nil
}

// Toggle lets the user flip a boolean.
func (t *Terminal) Toggle(ctx context.Context, title string, label string, state bool) (bool, bool, error) {
	final, err := t.run(ctx, toggleModel{title: title, label: label, state: state})
	if err != nil {
		return false, false, err
	}
	m := final.(toggleModel)
	if !m.done {
		return false, false, nil
	}
	return m.state, true, nil
}

// TextInput lets the user edit a line of text starting from current.
func (t *Terminal) TextInput(ctx context.Context, title string, current string) (string, bool, error) {
	final, err := t.run(ctx, newTextInputModel(title, current))
	if err != nil {
		return "", false, err
	}
	m := final.(textInputModel)
	if !m.done {
		return "", false, nil
	}
	return m.input.Value(), true, nil
}

// ChooseItem shows a context menu and returns the picked item.
func (t *Terminal) ChooseItem(ctx context.Context, title string, m *menu.Menu) (*menu.Item, bool, error) {
	final, err := t.run(ctx, newMenuModel(title, m))
	if err != nil {
		return nil, false, err
	}
	mm := final.(menuModel)
	if !mm.done || mm.chosen() == nil {
		return nil, false, nil
	}
	return mm.chosen(), true, nil
}
