package router

import (
	"log/slog"
	"time"

	"github.com/m3rciful/pontusbot/core/logger"
	tg "github.com/m3rciful/pontusbot/core/telegram"

	tele "gopkg.in/telebot.v4"
)

// CommandRoutes prepares one route per registered command, each logging a
// handler summary line.
func CommandRoutes(reg *tg.Registry) []tg.Route {
	if reg == nil {
		return nil
	}

	routes := make([]tg.Route, 0, len(reg.Commands()))
	for cmd, def := range reg.Commands() {
		name := normalizeHandlerName(cmd)
		h := def.Handler
		routes = append(routes, tg.Route{
			Endpoint: cmd,
			Handler: func(c tele.Context) error {
				return handleWithSummary(c, name, time.Now(), "", "", func() error {
					return h(c)
				}, slog.String("command", cmd))
			},
		})
	}

	logger.TWire.Info("tg.wire",
		slog.String("event", "complete"),
		slog.Int("commands", len(reg.Commands())),
		slog.Int("callbacks", len(reg.ListCallbacks())),
	)

	return routes
}
