// Package loader fills a reusable content entry's Content from its HTML file
// in the Layouts hive.
package loader

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"go-reusable-content/internal/model"
	"go-reusable-content/internal/setuppath"
	"go-reusable-content/pkg/fsutils"

	"github.com/microcosm-cc/bluemonday"
)

// ErrNoSourceFile is returned for entries that have no FileName to load from.
var ErrNoSourceFile = errors.New("reusable content has no source file")

// HTMLLoader reads HTML source files through a setup path resolver.
type HTMLLoader struct {
	resolver setuppath.Resolver
	policy   *bluemonday.Policy // nil keeps the markup as is
	logger   *slog.Logger
}

// Option configures an HTMLLoader.
type Option func(*HTMLLoader)

// WithSanitizer strips scripts, event handlers and other unsafe markup from
// loaded files using bluemonday's user generated content policy.
func WithSanitizer() Option {
	return func(l *HTMLLoader) {
		l.policy = bluemonday.UGCPolicy()
	}
}

// WithLogger sets the loader's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *HTMLLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates an HTMLLoader.
func New(resolver setuppath.Resolver, opts ...Option) *HTMLLoader {
	l := &HTMLLoader{
		resolver: resolver,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolver returns the resolver used to locate source files.
func (l *HTMLLoader) Resolver() setuppath.Resolver {
	return l.resolver
}

// Sanitize applies the loader's sanitizer policy to html. Without
// WithSanitizer it returns html unchanged.
func (l *HTMLLoader) Sanitize(html string) string {
	if l.policy == nil {
		return html
	}
	return l.policy.Sanitize(html)
}

// Load reads info's HTML file and assigns it to info.Content.
// Files that resolve outside the Layouts folder are refused with
// setuppath.ErrOutsideLayouts. On error info is left unchanged.
func (l *HTMLLoader) Load(info *model.ReusableContentInfo) error {
	if info.FileName == "" {
		return fmt.Errorf("%q: %w", info.Title, ErrNoSourceFile)
	}

	path, err := info.HTMLFilePath(l.resolver)
	if err != nil {
		return fmt.Errorf("resolving HTML file for %q failed: %w", info.Title, err)
	}
	if err := setuppath.CheckInLayouts(l.resolver, path); err != nil {
		l.logger.Warn("Refusing to read reusable content file", "title", info.Title, "path", path, "error", err)
		return fmt.Errorf("reading HTML file for %q refused: %w", info.Title, err)
	}

	html, err := fsutils.ReadTextFile(path)
	if err != nil {
		l.logger.Error("Failed to read reusable content file", "title", info.Title, "path", path, "error", err)
		return fmt.Errorf("reading HTML file for %q failed: %w", info.Title, err)
	}

	html = l.Sanitize(html)
	info.Content = html
	l.logger.Debug("Loaded reusable content", "title", info.Title, "path", path, "bytes", len(html))
	return nil
}
