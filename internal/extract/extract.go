// Package extract collects the attributes of a note from its front-matter
// and its inline "key:: value" fields.
package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/aidanlsb/fieldmenu/internal/fields"
	"github.com/aidanlsb/fieldmenu/internal/metadata"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

// Result holds the attributes found in one file.
type Result struct {
	// Frontmatter is nil when the file has no usable front-matter.
	Frontmatter *fields.Attributes

	// Inline holds inline fields; empty when none were found.
	Inline *fields.Attributes
}

// Extractor reads attributes. It never modifies the file.
type Extractor struct {
	reader metadata.Reader
	cache  metadata.Cache
	logger *slog.Logger
}

// New returns an Extractor. A nil cache parses front-matter from the file text.
func New(reader metadata.Reader, cache metadata.Cache, logger *slog.Logger) *Extractor {
	if cache == nil {
		cache = metadata.NewParser(reader)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{reader: reader, cache: cache, logger: logger}
}

// Extract returns the front-matter and inline attributes of f.
// Malformed front-matter counts as none; read failures are returned.
func (e *Extractor) Extract(ctx context.Context, f vault.File) (Result, error) {
	fm, err := e.Frontmatter(ctx, f)
	if err != nil {
		return Result{}, err
	}

	content, err := e.reader.Read(ctx, f)
	if err != nil {
		return Result{}, err
	}

	return Result{Frontmatter: fm, Inline: fields.ExtractInline(content)}, nil
}

// Frontmatter returns the editable front-matter attributes of f, without the
// structural position key.
func (e *Extractor) Frontmatter(ctx context.Context, f vault.File) (*fields.Attributes, error) {
	fm, err := e.cache.Frontmatter(ctx, f)
	if errors.Is(err, metadata.ErrMalformed) {
		e.logger.Debug("ignoring malformed frontmatter", "path", f.Path, "error", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fm == nil {
		return nil, nil
	}

	attrs := fields.NewAttributes()
	for _, attr := range fm.Fields.All() {
		if attr.Key == metadata.PositionKey {
			continue
		}
		attrs.Set(attr.Key, attr.Value)
	}
	return attrs, nil
}
