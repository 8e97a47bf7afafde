package menu

import (
	"context"
	"sync"

	"github.com/aidanlsb/fieldmenu/internal/vault"
)

// Source identifies where a file menu was opened.
type Source string

const (
	// SourceLinkContextMenu is a menu opened on a link inside a note.
	SourceLinkContextMenu Source = "link-context-menu"
	// SourceFileExplorer is a menu opened on a file in a file listing.
	SourceFileExplorer Source = "file-explorer"
	// SourceMoreOptions is a menu opened from a note's own options.
	SourceMoreOptions Source = "more-options"
)

// FileMenuHandler contributes entries to a file menu.
type FileMenuHandler func(ctx context.Context, m *Menu, f vault.File, source Source) error

// EventRef identifies a registered handler.
type EventRef struct {
	id int
}

// Workspace dispatches file-menu events to registered handlers.
type Workspace struct {
	mu       sync.Mutex
	nextID   int
	handlers []registration
}

type registration struct {
	id int
	fn FileMenuHandler
}

// NewWorkspace returns a workspace without handlers.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// OnFileMenu registers fn for file-menu events.
func (w *Workspace) OnFileMenu(fn FileMenuHandler) EventRef {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	w.handlers = append(w.handlers, registration{id: w.nextID, fn: fn})
	return EventRef{id: w.nextID}
}

// Off unregisters a handler.
func (w *Workspace) Off(ref EventRef) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, r := range w.handlers {
		if r.id == ref.id {
			w.handlers = append(w.handlers[:i], w.handlers[i+1:]...)
			return
		}
	}
}

// TriggerFileMenu runs every handler in registration order and stops at the
// first error.
func (w *Workspace) TriggerFileMenu(ctx context.Context, m *Menu, f vault.File, source Source) error {
	w.mu.Lock()
	handlers := append([]registration{}, w.handlers...)
	w.mu.Unlock()

	for _, r := range handlers {
		if err := r.fn(ctx, m, f, source); err != nil {
			return err
		}
	}
	return nil
}
