package telegram

import (
	"github.com/m3rciful/pontusbot/core/telegram/middleware"
)

// DefaultMiddlewares builds the shared middleware chain for bots. Order matters:
// recover wraps everything, the logger stores the request context that the
// routers and metrics rely on.
func DefaultMiddlewares() []Middleware {
	return []Middleware{
		{Name: "recover", Use: middleware.RecoverMiddleware},
		{Name: "logger", Use: middleware.LoggerMiddleware},
		{Name: "metrics", Use: middleware.MessageMetricsMiddleware},
	}
}
