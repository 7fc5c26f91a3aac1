package router

import (
	"log/slog"
	"time"

	"github.com/m3rciful/pontusbot/core/logger"
	tg "github.com/m3rciful/pontusbot/core/telegram"
	"github.com/m3rciful/pontusbot/core/telegram/callbacks"
	"github.com/m3rciful/pontusbot/core/telegram/ui"

	tele "gopkg.in/telebot.v4"
)

// CallbackRoute returns a handler that routes callbacks through the registry.
// Matched callbacks are acknowledged before the handler runs; unmatched ones go
// to the fallback, which answers the query itself.
func CallbackRoute(reg *tg.Registry, fallback ui.FallbackProvider) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Callback() == nil {
			return nil
		}
		data, _ := callbacks.ParseCallbackData(c.Callback())
		extras := []slog.Attr{slog.String("cb_key", logger.SanitizeLimit(data, 64))}

		key, cbHandler, ok := reg.ResolveCallback(data)
		if !ok {
			notFound := reg.CallbackNotFound()
			if fallback != nil && fallback.UnknownCallback() != nil {
				notFound = fallback.UnknownCallback()
			}
			return handleWithSummary(c, "callback.unknown", start, "skip", "not_found", func() error {
				if notFound != nil {
					return notFound(c)
				}
				return nil
			}, extras...)
		}

		_ = c.Respond()
		return handleWithSummary(c, "callback."+normalizeHandlerName(key), start, "", "", func() error {
			return cbHandler(c)
		}, extras...)
	}
	return tg.Route{Endpoint: tele.OnCallback, Handler: handler}
}
