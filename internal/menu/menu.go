// Package menu provides the file context menu and the workspace event that
// lets components contribute items to it.
package menu

import "context"

// Icon names used by menu items.
const (
	IconSwitch        = "switch"
	IconBulletList    = "bullet-list"
	IconRightTriangle = "right-triangle"
	IconCheckmark     = "checkmark"
	IconPencil        = "pencil"
	IconDocument      = "document"
)

// Item is a clickable menu entry.
type Item struct {
	title   string
	icon    string
	onClick func(ctx context.Context) error
}

// SetTitle sets the item label.
func (i *Item) SetTitle(title string) *Item {
	i.title = title
	return i
}

// SetIcon sets the item icon name.
func (i *Item) SetIcon(icon string) *Item {
	i.icon = icon
	return i
}

// OnClick sets the click handler.
func (i *Item) OnClick(fn func(ctx context.Context) error) *Item {
	i.onClick = fn
	return i
}

// Title returns the item label.
func (i *Item) Title() string { return i.title }

// Icon returns the item icon name.
func (i *Item) Icon() string { return i.icon }

// Click runs the click handler, if any.
func (i *Item) Click(ctx context.Context) error {
	if i.onClick == nil {
		return nil
	}
	return i.onClick(ctx)
}

// Entry is either a separator or an item.
type Entry struct {
	Separator bool
	Item      *Item
}

// Menu is an ordered list of entries.
type Menu struct {
	entries []Entry
}

// New returns an empty menu.
func New() *Menu {
	return &Menu{}
}

// AddSeparator appends a separator.
// Leading and repeated separators are dropped when the menu is rendered.
func (m *Menu) AddSeparator() *Menu {
	m.entries = append(m.entries, Entry{Separator: true})
	return m
}

// AddItem appends an item configured by fn.
func (m *Menu) AddItem(fn func(item *Item)) *Menu {
	item := &Item{}
	fn(item)
	m.entries = append(m.entries, Entry{Item: item})
	return m
}

// Entries returns every entry in order.
func (m *Menu) Entries() []Entry {
	return append([]Entry{}, m.entries...)
}

// Visible returns the entries to render: no leading, trailing or doubled separators.
func (m *Menu) Visible() []Entry {
	var out []Entry
	for _, e := range m.entries {
		if e.Separator && (len(out) == 0 || out[len(out)-1].Separator) {
			continue
		}
		out = append(out, e)
	}
	if len(out) > 0 && out[len(out)-1].Separator {
		out = out[:len(out)-1]
	}
	return out
}

// Items returns only the items in order.
func (m *Menu) Items() []*Item {
	var out []*Item
	for _, e := range m.entries {
		if e.Item != nil {
			out = append(out, e.Item)
		}
	}
	return out
}

// FindItem returns the first item with the given title.
func (m *Menu) FindItem(title string) (*Item, bool) {
	for _, item := range m.Items() {
		if item.title == title {
			return item, true
		}
	}
	return nil, false
}
