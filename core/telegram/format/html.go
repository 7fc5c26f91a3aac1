package format

import (
	"html"
	"strings"
)

// EscapeHTML escapes text for Telegram's HTML parse mode.
func EscapeHTML(text string) string {
	return html.EscapeString(text)
}

// Bold wraps escaped text in <b> tags.
func Bold(text string) string {
	return "<b>" + EscapeHTML(text) + "</b>"
}

// Italic wraps escaped text in <i> tags.
func Italic(text string) string {
	return "<i>" + EscapeHTML(text) + "</i>"
}

// Link renders an anchor. Both the URL and the label are escaped.
func Link(url, label string) string {
	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(EscapeHTML(url))
	b.WriteString(`">`)
	b.WriteString(EscapeHTML(label))
	b.WriteString("</a>")
	return b.String()
}
