package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/m3rciful/pontusbot/core/logger"
)

// DefaultPath is the catalog file used when none is configured.
const DefaultPath = "files.json"

// FileStore reads the catalog from a JSON document on every Load, so edits to
// the file apply to the next request without a restart.
type FileStore struct {
	path string
	log  *slog.Logger
}

// NewFileStore returns a store reading path. A nil log uses the catalog component logger.
func NewFileStore(path string, log *slog.Logger) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	if log == nil {
		log = logger.Component("catalog")
	}
	return &FileStore{path: path, log: log}
}

// Path returns the catalog file location.
func (s *FileStore) Path() string { return s.path }

// Load reads and parses the catalog file.
func (s *FileStore) Load(ctx context.Context) (*Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	start := time.Now()
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrUnavailable, s.path, err)
	}
	c, err := Parse(data, s.log)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if logger.ShouldSampleDebug() {
		logger.LogEvent(ctx, s.log, slog.LevelDebug, "catalog.load",
			slog.String("status", "ok"),
			slog.String("source", "file"),
			slog.String("path", s.path),
			slog.Int("entries", c.Len()),
			slog.Int("skipped", len(c.Issues)),
			slog.Duration("duration", logger.Took(start)),
		)
	}
	return c, nil
}
