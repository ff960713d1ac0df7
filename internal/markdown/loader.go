package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/goliatone/go-slackmd/internal/logging"
	"github.com/goliatone/go-slackmd/pkg/interfaces"
)

// Loader reads Markdown documents from a filesystem.
type Loader struct {
	fs       fs.FS
	basePath string
	logger   interfaces.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithLoaderLogger sets the logger used to report loaded documents.
func WithLoaderLogger(logger interfaces.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLoader constructs a Loader. basePath is used to relativise absolute paths
// handed to LoadFile; it may be empty when callers only pass relative paths.
func NewLoader(filesystem fs.FS, basePath string, opts ...LoaderOption) *Loader {
	if basePath != "" {
		basePath = filepath.Clean(basePath)
	}
	l := &Loader{
		fs:       filesystem,
		basePath: basePath,
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFile reads a single Markdown document and parses its front matter.
func (l *Loader) LoadFile(ctx context.Context, path string) (*DocumentResult, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel, err := l.makeRelative(path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}

	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}

	doc, err := BuildDocument(rel, data, info.ModTime())
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(data)
	doc.Checksum = sum[:]

	l.logger.WithContext(ctx).Debug("markdown.document.loaded",
		"path", rel,
		"bytes", len(data),
		"title", doc.FrontMatter.Title,
	)

	return &DocumentResult{
		Document: doc,
		Source:   data,
	}, nil
}

func (l *Loader) makeRelative(path string) (string, error) {
	clean := filepath.Clean(path)
	if !filepath.IsAbs(clean) {
		return clean, nil
	}
	if l.basePath == "" {
		return "", fmt.Errorf("markdown loader: absolute path %s provided without base path", path)
	}
	rel, err := filepath.Rel(l.basePath, clean)
	if err != nil {
		return "", fmt.Errorf("markdown loader: make relative %s: %w", path, err)
	}
	return rel, nil
}

// DocumentResult carries the parsed document along with the raw source.
type DocumentResult struct {
	Document *interfaces.Document
	Source   []byte
}
