package menu

import (
	"github.com/m3rciful/pontusbot/app/catalog"
	"github.com/m3rciful/pontusbot/core/telegram/format"
)

const (
	listHeading  = "<b>Available Files:</b>"
	listHint     = "To download a file, type /files get &lt;id&gt;"
	foundHeading = "<b>File found successfully:</b>"
	modded       = "<b>MODDED</b>"
	selectArch   = "Please select an architecture:"
	sentBelow    = "<i>The file is sent below.</i>"
)

// FileList renders the catalog overview. A nil or empty catalog renders the
// "No files available." line.
func FileList(c *catalog.Catalog) Payload {
	var l lines
	l.line(listHeading)
	l.line("")
	if c.Len() == 0 {
		l.WriteString(TextNoFiles)
		return Payload{Text: l.String(), Keyboard: [][]Button{backRow(ActionStart)}}
	}

	rows := make([][]Button, 0, c.Len()+1)
	for _, e := range c.Entries {
		l.line("<b>[" + format.EscapeHTML(e.ID) + "]</b> " + format.EscapeHTML(e.Name))
		rows = append(rows, []Button{{Text: e.Name, Action: e.DownloadAction()}})
	}
	l.line("")
	l.WriteString(listHint)
	rows = append(rows, backRow(ActionStart))
	return Payload{Text: l.String(), Keyboard: rows}
}

// EntrySummary renders an entry. Single-architecture entries show their one
// deliverable; multi-architecture entries show one button per variant in
// catalog order. dl is ignored for multi-architecture entries.
func EntrySummary(e catalog.Entry, dl Download) Payload {
	var l lines
	l.line(foundHeading)
	l.line("")
	l.line(format.Bold(e.Name))
	if e.IsMod {
		l.line(modded)
	}
	l.field("Author", e.Author)

	if e.MultipleArch {
		l.line("")
		l.WriteString(selectArch)
		rows := make([][]Button, 0, len(e.Architectures)+1)
		for _, v := range e.Architectures {
			rows = append(rows, []Button{{Text: v.Architecture, Action: e.ArchAction(v.Architecture)}})
		}
		rows = append(rows, backRow(ActionFiles))
		return Payload{Text: l.String(), Keyboard: rows}
	}

	l.field("Architecture", e.Primary.Architecture)
	l.field("Size", sizeOf(e.Primary, dl))
	l.line("")
	affordance(&l, e.Primary, dl)
	return Payload{Text: l.String(), Keyboard: [][]Button{backRow(ActionFiles)}}
}

// VariantDetail renders one architecture of a multi-architecture entry.
func VariantDetail(e catalog.Entry, v catalog.Variant, dl Download) Payload {
	var l lines
	l.line(foundHeading)
	l.line("")
	l.line(format.Bold(e.Name))
	l.field("Size", sizeOf(v, dl))
	if e.IsMod {
		l.line(modded)
	}
	l.field("Author", e.Author)
	l.field("Architecture", v.Architecture)
	l.line("")
	affordance(&l, v, dl)
	return Payload{Text: l.String(), Keyboard: [][]Button{backRow(e.DownloadAction())}}
}

func sizeOf(v catalog.Variant, dl Download) string {
	if v.FileSize != "" {
		return v.FileSize
	}
	return dl.Size
}

func affordance(l *lines, v catalog.Variant, dl Download) {
	if dl.Method == MethodDocument {
		l.line(sentBelow)
		return
	}
	l.line(format.Link(v.Link, "Download"))
}
