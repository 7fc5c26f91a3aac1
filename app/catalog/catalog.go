// Package catalog loads the file catalog served by the bot and answers
// lookups by entry id and architecture.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode"

	"github.com/m3rciful/pontusbot/core/logger"
)

var (
	// ErrUnavailable means the catalog could not be read at all.
	ErrUnavailable = errors.New("catalog unavailable")
	// ErrMalformed means the catalog was read but has no list of files.
	ErrMalformed = errors.New("catalog malformed")
)

const (
	// ActionSeparator joins the parts of composite callback actions.
	// Architecture names must not contain it; entry ids may.
	ActionSeparator = "_"
	// MaxActionBytes is Telegram's limit for callback data.
	MaxActionBytes = 64

	// DownloadPrefix starts the action that opens an entry.
	DownloadPrefix = "download" + ActionSeparator
	// ArchPrefix starts the action that opens one variant of an entry.
	ArchPrefix = "arch" + ActionSeparator
)

// Source loads a fresh catalog snapshot. Implementations do not cache.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Variant is one deliverable of an entry: a link, a local file, or both.
type Variant struct {
	Architecture string
	Link         string
	FilePath     string
	FileSize     string
}

// HasLink reports whether the variant can be delivered as a hyperlink.
func (v Variant) HasLink() bool { return v.Link != "" }

// HasFile reports whether the variant can be delivered as a document.
func (v Variant) HasFile() bool { return v.FilePath != "" }

// Entry is one offered file.
type Entry struct {
	ID           string
	Name         string
	Author       string
	IsMod        bool
	MultipleArch bool
	// Primary holds the deliverable of single-architecture entries.
	Primary Variant
	// Architectures holds the variants of multi-architecture entries in declared order.
	Architectures []Variant
}

// Variant returns the variant with the given architecture. It always reports
// false for single-architecture entries.
func (e Entry) Variant(arch string) (Variant, bool) {
	if !e.MultipleArch {
		return Variant{}, false
	}
	for _, v := range e.Architectures {
		if v.Architecture == arch {
			return v, true
		}
	}
	return Variant{}, false
}

// DownloadAction returns the callback action that opens this entry.
func (e Entry) DownloadAction() string {
	return DownloadPrefix + e.ID
}

// ArchAction returns the callback action that opens one variant of this entry.
func (e Entry) ArchAction(arch string) string {
	return ArchPrefix + e.ID + ActionSeparator + arch
}

// Issue describes a catalog record that was skipped while building a Catalog.
type Issue struct {
	Index        int
	EntryID      string
	Architecture string
	Reason       string
}

// Catalog is an immutable, validated snapshot of the catalog.
type Catalog struct {
	Entries []Entry
	// Issues lists the records dropped during validation.
	Issues []Issue

	byID map[string]int
}

// Find returns the entry with the given id.
func (c *Catalog) Find(id string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.Entries[i], true
}

// Len returns the number of entries; a nil catalog is empty.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Entries)
}

// Build validates entries and indexes them by id. Invalid records are skipped
// and reported both in Catalog.Issues and as warnings on log:
//   - entries without id or name, with a duplicate id, or whose download action is too long;
//   - single-architecture entries with neither link nor file path;
//   - variants with an empty, duplicate or separator-containing architecture,
//     no deliverable, or an action id over MaxActionBytes;
//   - multi-architecture entries left without variants.
func Build(entries []Entry, log *slog.Logger) *Catalog {
	return build(entries, nil, log)
}

// build is Build with document positions for issue reporting; a nil positions
// slice means entries are numbered as given.
func build(entries []Entry, positions []int, log *slog.Logger) *Catalog {
	if log == nil {
		log = logger.Component("catalog")
	}
	c := &Catalog{byID: make(map[string]int, len(entries))}
	skip := func(idx int, id, arch, reason string) {
		c.Issues = append(c.Issues, Issue{Index: idx, EntryID: id, Architecture: arch, Reason: reason})
		log.Warn("catalog entry skipped",
			slog.String("event", "catalog.skip"),
			slog.String("status", "skip"),
			slog.Int("index", idx),
			slog.String("entry_id", logger.SanitizeLimit(id, 64)),
			slog.String("arch", logger.SanitizeLimit(arch, 64)),
			slog.String("cause", reason),
		)
	}

	for i, e := range entries {
		idx := i
		if positions != nil {
			idx = positions[i]
		}
		switch {
		case e.ID == "":
			skip(idx, "", "", "missing_id")
			continue
		case e.Name == "":
			skip(idx, e.ID, "", "missing_name")
			continue
		case strings.IndexFunc(e.ID, unicode.IsSpace) >= 0:
			// /files get receives whitespace-split arguments.
			skip(idx, e.ID, "", "id_has_space")
			continue
		case len(e.DownloadAction()) > MaxActionBytes:
			skip(idx, e.ID, "", "id_too_long")
			continue
		}
		if _, dup := c.byID[e.ID]; dup {
			skip(idx, e.ID, "", "duplicate_id")
			continue
		}

		if !e.MultipleArch {
			if !e.Primary.HasLink() && !e.Primary.HasFile() {
				skip(idx, e.ID, "", "no_deliverable")
				continue
			}
			e.Architectures = nil
		} else {
			variants := make([]Variant, 0, len(e.Architectures))
			seen := make(map[string]struct{}, len(e.Architectures))
			for _, v := range e.Architectures {
				reason := ""
				_, dup := seen[v.Architecture]
				switch {
				case v.Architecture == "":
					reason = "missing_arch"
				case strings.Contains(v.Architecture, ActionSeparator):
					reason = "arch_has_separator"
				case dup:
					reason = "duplicate_arch"
				case !v.HasLink() && !v.HasFile():
					reason = "no_deliverable"
				case len(e.ArchAction(v.Architecture)) > MaxActionBytes:
					reason = "action_too_long"
				}
				if reason != "" {
					skip(idx, e.ID, v.Architecture, reason)
					continue
				}
				seen[v.Architecture] = struct{}{}
				variants = append(variants, v)
			}
			if len(variants) == 0 {
				skip(idx, e.ID, "", "no_variants")
				continue
			}
			e.Primary = Variant{}
			e.Architectures = variants
		}

		c.byID[e.ID] = len(c.Entries)
		c.Entries = append(c.Entries, e)
	}
	return c
}
