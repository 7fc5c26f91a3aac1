// Package menu renders the bot's messages. Every function is pure: it turns
// catalog data or static texts into a Payload of HTML text plus keyboard rows.
package menu

import (
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/m3rciful/pontusbot/app/catalog"
	"github.com/m3rciful/pontusbot/core/telegram/format"
)

// Static callback actions.
const (
	ActionStart      = "start"
	ActionHelp       = "help"
	ActionAbout      = "about"
	ActionGeneral    = "general"
	ActionHelpFiles  = "hfiles"
	ActionManagement = "management"
	ActionFiles      = "files"
)

// User-facing replies for failures.
const (
	TextLoadFailed        = "Failed to load files."
	TextFileNotFound      = "File not found."
	TextArchNotFound      = "Architecture not found."
	TextInvalidCommand    = "Invalid command. Please use the format /files list or /files get &lt;id&gt;"
	TextStatFailed        = "Failed to read file information."
	TextSendFailed        = "Failed to send file."
	TextNoFiles           = "No files available."
	TextUnsupportedAction = "Unsupported action"
)

const goBack = "Go Back"

// Button is one inline keyboard button.
type Button struct {
	Text   string
	Action string
}

// Payload is a rendered message: HTML text and keyboard rows (possibly none).
type Payload struct {
	Text     string
	Keyboard [][]Button
}

// Plain returns a payload with text only.
func Plain(text string) Payload {
	return Payload{Text: text}
}

// Buttons counts the buttons across all rows.
func (p Payload) Buttons() int {
	n := 0
	for _, row := range p.Keyboard {
		n += len(row)
	}
	return n
}

// Document is a local file to upload after a message.
type Document struct {
	Path     string
	FileName string
	// Caption is HTML.
	Caption string
}

// Mode is the deployment-wide delivery preference.
type Mode string

const (
	// ModeLink prefers hyperlinks and streams only deliverables without one.
	ModeLink Mode = "link"
	// ModeDocument prefers uploading local files and links the rest.
	ModeDocument Mode = "document"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeLink || m == ModeDocument
}

// Method is how one deliverable reaches the user.
type Method int

const (
	// MethodLink renders a Download hyperlink.
	MethodLink Method = iota
	// MethodDocument uploads the local file after the message.
	MethodDocument
)

// Choose picks the method for v under mode m.
func Choose(m Mode, v catalog.Variant) Method {
	switch {
	case m == ModeDocument && v.HasFile():
		return MethodDocument
	case v.HasLink():
		return MethodLink
	case v.HasFile():
		return MethodDocument
	default:
		return MethodLink
	}
}

// Download is the resolved download affordance shown for a deliverable.
type Download struct {
	Method Method
	// Size replaces an empty catalog fileSize, e.g. with the on-disk size.
	Size string
}

// HumanSize formats a byte count the way catalog sizes are usually written.
func HumanSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// DocumentFor describes the upload of v for entry e.
func DocumentFor(e catalog.Entry, v catalog.Variant) Document {
	caption := format.Bold(e.Name)
	if v.Architecture != "" {
		caption += " (" + format.EscapeHTML(v.Architecture) + ")"
	}
	return Document{
		Path:     v.FilePath,
		FileName: filepath.Base(v.FilePath),
		Caption:  caption,
	}
}

func backRow(action string) []Button {
	return []Button{{Text: goBack, Action: action}}
}

type lines struct{ strings.Builder }

func (l *lines) line(s string) {
	l.WriteString(s)
	l.WriteByte('\n')
}

func (l *lines) field(label, value string) {
	if value == "" {
		return
	}
	l.line(label + ": " + format.EscapeHTML(value))
}
