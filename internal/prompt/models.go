package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aidanlsb/fieldmenu/internal/menu"
	"github.com/aidanlsb/fieldmenu/internal/ui"
)

const helpConfirm = "enter confirm · esc cancel"

// outcome is shared by every dialog model.
type outcome struct {
	done      bool
	cancelled bool
}

func (o *outcome) handleCommon(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "esc", "ctrl+c", "q":
		o.cancelled = true
		return tea.Quit, true
	case "enter":
		o.done = true
		return tea.Quit, true
	}
	return nil, false
}

func moveCursor(cursor, n int, key string) int {
	switch key {
	case "up", "k", "shift+tab":
		if cursor > 0 {
			return cursor - 1
		}
		return n - 1
	case "down", "j", "tab":
		if cursor < n-1 {
			return cursor + 1
		}
		return 0
	case "home", "g":
		return 0
	case "end", "G":
		return n - 1
	}
	return cursor
}

func renderOption(b *strings.Builder, active bool, text string) {
	if active {
		b.WriteString(ui.AccentBold.Render(ui.SymbolCursor + " " + text))
	} else {
		b.WriteString("  " + text)
	}
	b.WriteString("\n")
}

// multiSelectModel checks any number of options.
type multiSelectModel struct {
	outcome
	title   string
	options []string
	checked []bool
	cursor  int
}

func newMultiSelectModel(title string, options, selected []string) multiSelectModel {
	checked := make([]bool, len(options))
	for i, opt := range options {
		for _, s := range selected {
			if s == opt {
				checked[i] = true
			}
		}
	}
	return multiSelectModel{title: title, options: options, checked: checked}
}

func (m multiSelectModel) Init() tea.Cmd { return nil }

func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if cmd, handled := m.handleCommon(key); handled {
		return m, cmd
	}
	if len(m.options) == 0 {
		return m, nil
	}
	switch key.String() {
	case " ", "space", "x":
		m.checked[m.cursor] = !m.checked[m.cursor]
	case "a":
		all := true
		for _, c := range m.checked {
			all = all && c
		}
		for i := range m.checked {
			m.checked[i] = !all
		}
	default:
		m.cursor = moveCursor(m.cursor, len(m.options), key.String())
	}
	return m, nil
}

func (m multiSelectModel) View() string {
	var b strings.Builder
	b.WriteString(ui.Bold.Render(m.title) + "\n\n")
	for i, opt := range m.options {
		box := "[ ] "
		if m.checked[i] {
			box = "[x] "
		}
		renderOption(&b, i == m.cursor, box+opt)
	}
	b.WriteString("\n" + ui.Hint("space toggle · a all · "+helpConfirm) + "\n")
	return b.String()
}

func (m multiSelectModel) selected() []string {
	var out []string
	for i, opt := range m.options {
		if m.checked[i] {
			out = append(out, opt)
		}
	}
	return out
}

// selectModel picks exactly one option.
type selectModel struct {
	outcome
	title   string
	options []string
	cursor  int
}

func newSelectModel(title string, options []string, current string) selectModel {
	m := selectModel{title: title, options: options}
	for i, opt := range options {
		if opt == current {
			m.cursor = i
			break
		}
	}
	return m
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "enter" && len(m.options) == 0 {
		return m, nil
	}
	if cmd, handled := m.handleCommon(key); handled {
		return m, cmd
	}
	if len(m.options) > 0 {
		m.cursor = moveCursor(m.cursor, len(m.options), key.String())
	}
	return m, nil
}

func (m selectModel) View() string {
	var b strings.Builder
	b.WriteString(ui.Bold.Render(m.title) + "\n\n")
	for i, opt := range m.options {
		renderOption(&b, i == m.cursor, opt)
	}
	b.WriteString("\n" + ui.Hint("↑/↓ move · "+helpConfirm) + "\n")
	return b.String()
}

func (m selectModel) choice() string {
	if len(m.options) == 0 {
		return ""
	}
	return m.options[m.cursor]
}

// toggleModel flips one boolean.
type toggleModel struct {
	outcome
	title string
	label string
	state bool
}

func (m toggleModel) Init() tea.Cmd { return nil }

func (m toggleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case " ", "space", "x", "left", "right", "h", "l":
		m.state = !m.state
		return m, nil
	case "y", "t":
		m.state = true
		return m, nil
	case "n", "f":
		m.state = false
		return m, nil
	}
	cmd, _ := m.handleCommon(key)
	return m, cmd
}

func (m toggleModel) View() string {
	var b strings.Builder
	b.WriteString(ui.Bold.Render(m.title) + "\n\n")
	box := "[ ] "
	if m.state {
		box = "[x] "
	}
	renderOption(&b, true, box+m.label)
	b.WriteString("\n" + ui.Hint("space toggle · "+helpConfirm) + "\n")
	return b.String()
}

// textInputModel edits a single line of text.
type textInputModel struct {
	outcome
	title string
	input textinput.Model
}

func newTextInputModel(title, current string) textInputModel {
	in := textinput.New()
	in.Prompt = ui.SymbolCursor + " "
	in.SetValue(current)
	in.Focus()
	return textInputModel{title: title, input: in}
}

func (m textInputModel) Init() tea.Cmd { return textinput.Blink }

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textInputModel) View() string {
	return ui.Bold.Render(m.title) + "\n\n" + m.input.View() + "\n\n" + ui.Hint(helpConfirm) + "\n"
}

// menuModel picks an item of a context menu. Separators are drawn but
// skipped by the cursor.
type menuModel struct {
	outcome
	title   string
	entries []menu.Entry
	cursor  int
}

func newMenuModel(title string, m *menu.Menu) menuModel {
	mm := menuModel{title: title, entries: m.Visible()}
	mm.cursor = mm.step(-1, 1)
	return mm
}

// step returns the next item index after from in direction dir, wrapping.
func (m menuModel) step(from, dir int) int {
	n := len(m.entries)
	for i := 1; i <= n; i++ {
		idx := ((from+dir*i)%n + n) % n
		if !m.entries[idx].Separator {
			return idx
		}
	}
	return -1
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.String() == "enter" && m.cursor < 0 {
		return m, nil
	}
	if cmd, handled := m.handleCommon(key); handled {
		return m, cmd
	}
	if m.cursor < 0 {
		return m, nil
	}
	switch key.String() {
	case "up", "k", "shift+tab":
		m.cursor = m.step(m.cursor, -1)
	case "down", "j", "tab":
		m.cursor = m.step(m.cursor, 1)
	}
	return m, nil
}

func (m menuModel) View() string {
	var b strings.Builder
	b.WriteString(ui.Bold.Render(m.title) + "\n\n")
	for i, e := range m.entries {
		if e.Separator {
			b.WriteString(ui.Muted.Render("  "+strings.Repeat(ui.SymbolSeparator, 24)) + "\n")
			continue
		}
		renderOption(&b, i == m.cursor, iconGlyph(e.Item.Icon())+" "+e.Item.Title())
	}
	b.WriteString("\n" + ui.Hint("↑/↓ move · "+helpConfirm) + "\n")
	return b.String()
}

func (m menuModel) chosen() *menu.Item {
	if m.cursor < 0 {
		return nil
	}
	return m.entries[m.cursor].Item
}

func iconGlyph(icon string) string {
	switch icon {
	case menu.IconSwitch:
		return "⇄"
	case menu.IconBulletList:
		return "☰"
	case menu.IconRightTriangle:
		return "▸"
	case menu.IconCheckmark:
		return "✓"
	case menu.IconPencil:
		return "✎"
	case menu.IconDocument:
		return "▤"
	default:
		return " "
	}
}
