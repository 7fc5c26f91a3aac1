package router

import (
	"strings"
	"time"

	tg "github.com/m3rciful/pontusbot/core/telegram"
	"github.com/m3rciful/pontusbot/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// TextRoutes builds the handler for plain text. Command aliases registered in
// the registry are resolved here because telebot only routes canonical names.
func TextRoutes(reg *tg.Registry, fallback ui.FallbackProvider) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		fields := strings.Fields(c.Text())

		if reg != nil && len(fields) > 0 && strings.HasPrefix(fields[0], "/") {
			cmdName, _, _ := strings.Cut(fields[0], "@")
			if key, cmd, ok := reg.LookupCommand(cmdName); ok && cmd.Handler != nil {
				return handleWithSummary(c, normalizeHandlerName(key), start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if fallback != nil {
			if h := fallback.UnknownText(); h != nil {
				return handleWithSummary(c, "unknown_text", start, "", "", func() error {
					return h(c)
				})
			}
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{{Endpoint: tele.OnText, Handler: handler}}
}
