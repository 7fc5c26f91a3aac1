package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/pontusbot/core/logger"
)

const (
	selectEntries = `SELECT id, position, name, author, is_mod, multiple_arch,
       architecture, link, file_path, file_size
  FROM catalog_entries
 ORDER BY position, id`

	selectVariants = `SELECT entry_id, position, architecture, link, file_path, file_size
  FROM catalog_variants
 ORDER BY entry_id, position`

	insertEntry = `INSERT INTO catalog_entries
       (id, position, name, author, is_mod, multiple_arch, architecture, link, file_path, file_size)
VALUES (:id, :position, :name, :author, :is_mod, :multiple_arch, :architecture, :link, :file_path, :file_size)`

	insertVariant = `INSERT INTO catalog_variants
       (entry_id, position, architecture, link, file_path, file_size)
VALUES (:entry_id, :position, :architecture, :link, :file_path, :file_size)`
)

type entryRow struct {
	ID           string `db:"id"`
	Position     int    `db:"position"`
	Name         string `db:"name"`
	Author       string `db:"author"`
	IsMod        bool   `db:"is_mod"`
	MultipleArch bool   `db:"multiple_arch"`
	Architecture string `db:"architecture"`
	Link         string `db:"link"`
	FilePath     string `db:"file_path"`
	FileSize     string `db:"file_size"`
}

type variantRow struct {
	EntryID      string `db:"entry_id"`
	Position     int    `db:"position"`
	Architecture string `db:"architecture"`
	Link         string `db:"link"`
	FilePath     string `db:"file_path"`
	FileSize     string `db:"file_size"`
}

// PostgresStore keeps the catalog in PostgreSQL. The bot only reads it;
// Import replaces its contents.
type PostgresStore struct {
	db  *sqlx.DB
	log *slog.Logger
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sqlx.DB, log *slog.Logger) *PostgresStore {
	if log == nil {
		log = logger.Component("catalog")
	}
	return &PostgresStore{db: db, log: log}
}

// Load queries both tables and validates the result like a parsed document.
func (s *PostgresStore) Load(ctx context.Context) (*Catalog, error) {
	start := time.Now()
	var entries []entryRow
	if err := s.db.SelectContext(ctx, &entries, selectEntries); err != nil {
		return nil, fmt.Errorf("%w: select entries: %w", ErrUnavailable, err)
	}
	var variants []variantRow
	if err := s.db.SelectContext(ctx, &variants, selectVariants); err != nil {
		return nil, fmt.Errorf("%w: select variants: %w", ErrUnavailable, err)
	}

	byEntry := make(map[string][]Variant, len(entries))
	for _, v := range variants {
		byEntry[v.EntryID] = append(byEntry[v.EntryID], Variant{
			Architecture: v.Architecture,
			Link:         v.Link,
			FilePath:     v.FilePath,
			FileSize:     v.FileSize,
		})
	}
	out := make([]Entry, 0, len(entries))
	for _, r := range entries {
		e := Entry{
			ID:           r.ID,
			Name:         r.Name,
			Author:       r.Author,
			IsMod:        r.IsMod,
			MultipleArch: r.MultipleArch,
		}
		if r.MultipleArch {
			e.Architectures = byEntry[r.ID]
		} else {
			e.Primary = Variant{
				Architecture: r.Architecture,
				Link:         r.Link,
				FilePath:     r.FilePath,
				FileSize:     r.FileSize,
			}
		}
		out = append(out, e)
	}

	c := Build(out, s.log)
	if logger.ShouldSampleDebug() {
		logger.LogEvent(ctx, s.log, slog.LevelDebug, "catalog.load",
			slog.String("status", "ok"),
			slog.String("source", "postgres"),
			slog.Int("entries", c.Len()),
			slog.Int("skipped", len(c.Issues)),
			slog.Duration("duration", logger.Took(start)),
		)
	}
	return c, nil
}

// Import replaces the stored catalog with c in a single transaction.
func (s *PostgresStore) Import(ctx context.Context, c *Catalog) (err error) {
	if c == nil {
		return fmt.Errorf("import: nil catalog")
	}
	start := time.Now()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM catalog_variants`); err != nil {
		return fmt.Errorf("clear variants: %w", err)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM catalog_entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	var variants int
	for i, e := range c.Entries {
		row := entryRow{
			ID:           e.ID,
			Position:     i,
			Name:         e.Name,
			Author:       e.Author,
			IsMod:        e.IsMod,
			MultipleArch: e.MultipleArch,
			Architecture: e.Primary.Architecture,
			Link:         e.Primary.Link,
			FilePath:     e.Primary.FilePath,
			FileSize:     e.Primary.FileSize,
		}
		if _, err = tx.NamedExecContext(ctx, insertEntry, row); err != nil {
			return fmt.Errorf("insert entry %s: %w", e.ID, err)
		}
		for j, v := range e.Architectures {
			vrow := variantRow{
				EntryID:      e.ID,
				Position:     j,
				Architecture: v.Architecture,
				Link:         v.Link,
				FilePath:     v.FilePath,
				FileSize:     v.FileSize,
			}
			if _, err = tx.NamedExecContext(ctx, insertVariant, vrow); err != nil {
				return fmt.Errorf("insert variant %s/%s: %w", e.ID, v.Architecture, err)
			}
			variants++
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "catalog imported",
		slog.String("event", "catalog.import"),
		slog.String("status", "ok"),
		slog.String("source", "postgres"),
		slog.Int("entries", c.Len()),
		slog.Int("variants", variants),
		slog.Duration("duration", logger.Took(start)),
	)
	return nil
}
