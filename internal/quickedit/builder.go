// Package quickedit adds attribute quick-edit actions to the link context
// menu of a note and applies them.
package quickedit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/aidanlsb/fieldmenu/internal/extract"
	"github.com/aidanlsb/fieldmenu/internal/fields"
	"github.com/aidanlsb/fieldmenu/internal/menu"
	"github.com/aidanlsb/fieldmenu/internal/paths"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

// ErrNoPrompter is returned when an affordance needs a dialog but none is configured.
var ErrNoPrompter = errors.New("no interactive prompter available")

// Section names the part of the note an attribute came from.
type Section string

const (
	SectionFrontmatter Section = "frontmatter"
	SectionInline      Section = "inline"
)

// Prompter shows the dialogs behind the modal affordances.
// Each method returns ok=false when the user cancels.
type Prompter interface {
	MultiSelect(ctx context.Context, title string, options, selected []string) ([]string, bool, error)
	Select(ctx context.Context, title string, options []string, current string) (string, bool, error)
	Toggle(ctx context.Context, title string, label string, state bool) (bool, bool, error)
	TextInput(ctx context.Context, title string, current string) (string, bool, error)
}

// Options configures a Builder.
type Options struct {
	Store     FileStore
	Extractor *extract.Extractor
	Presets   fields.Presets
	Prompter  Prompter
	Logger    *slog.Logger
}

// Classified is an attribute with the affordance chosen for it.
type Classified struct {
	Section    Section
	Attribute  fields.Attribute
	Affordance fields.Affordance
}

// Builder builds the quick-edit section of link context menus.
type Builder struct {
	extractor *extract.Extractor
	presets   fields.Presets
	prompter  Prompter
	writer    *Writer
	logger    *slog.Logger

	mu        sync.Mutex
	target    vault.File
	hasTarget bool
}

// New returns a Builder.
func New(opts Options) *Builder {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	extractor := opts.Extractor
	if extractor == nil {
		extractor = extract.New(opts.Store, nil, logger)
	}
	return &Builder{
		extractor: extractor,
		presets:   append(fields.Presets{}, opts.Presets...),
		prompter:  opts.Prompter,
		writer:    NewWriter(opts.Store, logger),
		logger:    logger,
	}
}

// Register subscribes the builder to file-menu events of ws. Only menus
// opened on a link to a markdown file get quick-edit items.
func (b *Builder) Register(ws *menu.Workspace) menu.EventRef {
	return ws.OnFileMenu(func(ctx context.Context, m *menu.Menu, f vault.File, source menu.Source) error {
		if source != menu.SourceLinkContextMenu {
			return nil
		}
		if !paths.IsMarkdown(f.Path) {
			return nil
		}
		b.setTarget(f)
		return b.Build(ctx, m, f)
	})
}

// Target returns the file the last link context menu was opened on.
func (b *Builder) Target() (vault.File, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.target, b.hasTarget
}

func (b *Builder) setTarget(f vault.File) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.target = f
	b.hasTarget = true
}

// Classify extracts the attributes of f and classifies each one.
// Front-matter attributes come first, then inline fields.
func (b *Builder) Classify(ctx context.Context, f vault.File) ([]Classified, error) {
	res, err := b.extractor.Extract(ctx, f)
	if err != nil {
		return nil, err
	}

	var out []Classified
	for _, attr := range res.Frontmatter.All() {
		out = append(out, Classified{Section: SectionFrontmatter, Attribute: attr, Affordance: fields.Classify(attr, b.presets)})
	}
	for _, attr := range res.Inline.All() {
		out = append(out, Classified{Section: SectionInline, Attribute: attr, Affordance: fields.Classify(attr, b.presets)})
	}
	return out, nil
}

// Build appends a separator and one item per front-matter attribute, then a
// separator and one item per inline field. Files without either add nothing.
func (b *Builder) Build(ctx context.Context, m *menu.Menu, f vault.File) error {
	classified, err := b.Classify(ctx, f)
	if err != nil {
		return err
	}

	var section Section
	for _, c := range classified {
		if c.Section != section {
			m.AddSeparator()
			section = c.Section
		}
		b.addItem(m, f, c.Affordance)
	}

	b.logger.Debug("link menu built", "path", f.Path, "items", len(classified))
	return nil
}

func (b *Builder) addItem(m *menu.Menu, f vault.File, a fields.Affordance) {
	m.AddItem(func(item *menu.Item) {
		item.SetTitle(ItemTitle(a)).
			SetIcon(ItemIcon(a)).
			OnClick(func(ctx context.Context) error {
				return b.Apply(ctx, f, a)
			})
	})
}

// ItemTitle returns the menu label for an affordance.
func ItemTitle(a fields.Affordance) string {
	if c, ok := a.(fields.Cycle); ok {
		return fields.CycleLabel(c.Key, c.Current, c.Next)
	}
	return "Update " + a.AttributeKey()
}

// ItemIcon returns the menu icon for an affordance.
func ItemIcon(a fields.Affordance) string {
	switch a.(type) {
	case fields.Cycle:
		return menu.IconSwitch
	case fields.MultiSelect:
		return menu.IconBulletList
	case fields.SingleSelect:
		return menu.IconRightTriangle
	case fields.Toggle:
		return menu.IconCheckmark
	default:
		return menu.IconPencil
	}
}

// Apply runs an affordance against f: cycles write immediately, the others
// ask the prompter first. A cancelled dialog writes nothing.
func (b *Builder) Apply(ctx context.Context, f vault.File, a fields.Affordance) error {
	if c, ok := a.(fields.Cycle); ok {
		return b.writer.Write(ctx, f, c.Key, c.Next)
	}
	if b.prompter == nil {
		return ErrNoPrompter
	}

	var (
		value string
		ok    bool
		err   error
	)
	switch a := a.(type) {
	case fields.MultiSelect:
		var selected []string
		selected, ok, err = b.prompter.MultiSelect(ctx, "Select values", a.Options, a.Selected)
		value = fields.JoinList(selected)
	case fields.SingleSelect:
		value, ok, err = b.prompter.Select(ctx, "Select value", a.Options, a.Current)
	case fields.Toggle:
		var state bool
		state, ok, err = b.prompter.Toggle(ctx, "Change Value for "+a.Key, a.Key, a.State)
		value = strconv.FormatBool(state)
	case fields.TextInput:
		value, ok, err = b.prompter.TextInput(ctx, "Change Value for "+a.Key, a.Current)
	default:
		return nil
	}
	if err != nil {
		return err
	}
	if !ok {
		b.logger.Debug("quick edit cancelled", "path", f.Path, "key", a.AttributeKey())
		return nil
	}

	return b.writer.Write(ctx, f, a.AttributeKey(), value)
}

// Writer returns the builder's attribute writer.
func (b *Builder) Writer() *Writer {
	return b.writer
}
