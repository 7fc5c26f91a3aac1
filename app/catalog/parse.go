package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/m3rciful/pontusbot/core/logger"
	"github.com/m3rciful/pontusbot/core/telegram/format"
)

// document is the on-disk layout: {"apkFiles": [...]}.
type document struct {
	Files json.RawMessage `json:"apkFiles"`
}

type rawVariant struct {
	Architecture *string `json:"architecture"`
	Link         *string `json:"link"`
	FilePath     *string `json:"filePath"`
	FileSize     *string `json:"fileSize"`
}

type rawEntry struct {
	ID           *string `json:"id"`
	Name         *string `json:"name"`
	Author       *string `json:"author"`
	IsMod        *bool   `json:"isMod"`
	MultipleArch *bool   `json:"multipleArch"`
	rawVariant
	Architectures []rawVariant `json:"architectures"`
}

func (v rawVariant) toVariant() Variant {
	return Variant{
		Architecture: strings.TrimSpace(format.DerefString(v.Architecture, "")),
		Link:         strings.TrimSpace(format.DerefString(v.Link, "")),
		FilePath:     strings.TrimSpace(format.DerefString(v.FilePath, "")),
		FileSize:     strings.TrimSpace(format.DerefString(v.FileSize, "")),
	}
}

func (r rawEntry) toEntry() Entry {
	e := Entry{
		ID:           strings.TrimSpace(format.DerefString(r.ID, "")),
		Name:         strings.TrimSpace(format.DerefString(r.Name, "")),
		Author:       strings.TrimSpace(format.DerefString(r.Author, "")),
		IsMod:        format.DerefBool(r.IsMod, false),
		MultipleArch: format.DerefBool(r.MultipleArch, false),
	}
	if e.MultipleArch {
		e.Architectures = make([]Variant, 0, len(r.Architectures))
		for _, v := range r.Architectures {
			e.Architectures = append(e.Architectures, v.toVariant())
		}
	} else {
		e.Primary = r.rawVariant.toVariant()
	}
	return e
}

// Parse decodes a catalog document and validates it with Build.
// A JSON syntax error yields ErrUnavailable (the document is corrupt); a valid
// JSON value without an apkFiles array yields ErrMalformed. Individual entries
// of the wrong shape are skipped like any other invalid record.
func Parse(data []byte, log *slog.Logger) (*Catalog, error) {
	if log == nil {
		log = logger.Component("catalog")
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) || len(bytes.TrimSpace(data)) == 0 {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	files := bytes.TrimSpace(doc.Files)
	if len(files) == 0 || bytes.Equal(files, []byte("null")) {
		return nil, fmt.Errorf("%w: missing apkFiles", ErrMalformed)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(files, &items); err != nil {
		return nil, fmt.Errorf("%w: apkFiles is not a list", ErrMalformed)
	}

	entries := make([]Entry, 0, len(items))
	positions := make([]int, 0, len(items))
	var shapeIssues []Issue
	for i, item := range items {
		var raw rawEntry
		if err := json.Unmarshal(item, &raw); err != nil {
			shapeIssues = append(shapeIssues, Issue{Index: i, Reason: "invalid_entry"})
			log.Warn("catalog entry skipped",
				slog.String("event", "catalog.skip"),
				slog.String("status", "skip"),
				slog.Int("index", i),
				slog.String("cause", "invalid_entry"),
				slog.String("err", err.Error()),
			)
			continue
		}
		entries = append(entries, raw.toEntry())
		positions = append(positions, i)
	}

	c := build(entries, positions, log)
	if len(shapeIssues) > 0 {
		c.Issues = append(shapeIssues, c.Issues...)
		sort.SliceStable(c.Issues, func(i, j int) bool { return c.Issues[i].Index < c.Issues[j].Index })
	}
	return c, nil
}
