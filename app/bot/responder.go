package bot

import (
	"context"
	"log/slog"

	"github.com/m3rciful/pontusbot/app/menu"
	"github.com/m3rciful/pontusbot/app/navigation"
	"github.com/m3rciful/pontusbot/core/logger"
	"github.com/m3rciful/pontusbot/core/telegram/helpers"
	"github.com/m3rciful/pontusbot/core/telegram/keyboard"
	"github.com/m3rciful/pontusbot/core/telegram/netutil"

	tele "gopkg.in/telebot.v4"
)

// responder renders payloads through the telebot context of one update.
type responder struct {
	c tele.Context
}

var _ navigation.Responder = responder{}

func (r responder) Reply(_ context.Context, p menu.Payload) error {
	return helpers.SendHTML(r.c, p.Text, markup(p.Keyboard))
}

// Edit swallows "message is not modified" so pressing the button of the
// current screen again is harmless.
func (r responder) Edit(ctx context.Context, p menu.Payload) error {
	err := helpers.EditHTML(r.c, p.Text, markup(p.Keyboard))
	if netutil.IsNotModified(err) {
		logger.LogEvent(ctx, nil, slog.LevelDebug, "edit.not_modified", slog.String("status", "skip"))
		return nil
	}
	return err
}

func (r responder) SendDocument(_ context.Context, d menu.Document) error {
	return helpers.SendDocument(r.c, d.Path, d.FileName, d.Caption)
}

func markup(rows [][]menu.Button) *tele.ReplyMarkup {
	if len(rows) == 0 {
		return nil
	}
	btns := make([][]keyboard.InlineBtn, 0, len(rows))
	for _, row := range rows {
		r := make([]keyboard.InlineBtn, 0, len(row))
		for _, b := range row {
			r = append(r, keyboard.InlineBtn{Text: b.Text, Data: b.Action})
		}
		btns = append(btns, r)
	}
	return keyboard.InlineButtonsRows(btns...)
}

func userOf(c tele.Context) navigation.User {
	s := c.Sender()
	if s == nil {
		return navigation.User{}
	}
	return navigation.User{ID: s.ID, Username: s.Username, FirstName: s.FirstName}
}
