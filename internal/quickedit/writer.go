package quickedit

import (
	"context"
	"io"
	"log/slog"

	"github.com/aidanlsb/fieldmenu/internal/fields"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

// FileStore reads and replaces file text.
type FileStore interface {
	Read(ctx context.Context, f vault.File) (string, error)
	Modify(ctx context.Context, f vault.File, content string) error
}

// Writer rewrites one attribute in a file.
//
// Writes are read-modify-write without locking: two writes racing on the same
// file resolve as last write wins.
type Writer struct {
	store  FileStore
	logger *slog.Logger
}

// NewWriter returns a Writer over store.
func NewWriter(store FileStore, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{store: store, logger: logger}
}

// Write sets key to value in f. Lines that do not define key are preserved
// byte for byte; if no line defines key the file is saved unchanged.
func (w *Writer) Write(ctx context.Context, f vault.File, key, value string) error {
	content, err := w.store.Read(ctx, f)
	if err != nil {
		return err
	}

	updated := fields.RewriteAttribute(content, key, value)
	if err := w.store.Modify(ctx, f, updated); err != nil {
		return err
	}

	w.logger.Debug("attribute written", "path", f.Path, "key", key, "value", value, "changed", updated != content)
	return nil
}
