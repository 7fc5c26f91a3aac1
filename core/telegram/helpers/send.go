package helpers

import (
	tele "gopkg.in/telebot.v4"
)

// htmlOptions returns send options for HTML parse mode with link previews disabled.
func htmlOptions(markup *tele.ReplyMarkup) *tele.SendOptions {
	return &tele.SendOptions{
		ParseMode:             tele.ModeHTML,
		ReplyMarkup:           markup,
		DisableWebPagePreview: true,
	}
}

// SendHTML sends a new HTML message with an optional inline keyboard.
func SendHTML(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return c.Send(text, htmlOptions(first(markup)))
}

// EditHTML edits the message the current callback belongs to.
func EditHTML(c tele.Context, text string, markup ...*tele.ReplyMarkup) error {
	return c.Edit(text, htmlOptions(first(markup)))
}

// SendDocument uploads a file from disk to the current chat.
func SendDocument(c tele.Context, path, fileName, caption string) error {
	doc := &tele.Document{
		File:     tele.FromDisk(path),
		FileName: fileName,
		Caption:  caption,
	}
	return c.Send(doc, &tele.SendOptions{ParseMode: tele.ModeHTML})
}

func first(markup []*tele.ReplyMarkup) *tele.ReplyMarkup {
	if len(markup) > 0 {
		return markup[0]
	}
	return nil
}
