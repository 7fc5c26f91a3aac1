// Package bot wires the navigation controller into the Telegram runtime:
// commands, callback routes, fallbacks and the middleware chain.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/pontusbot/app/catalog"
	appconfig "github.com/m3rciful/pontusbot/app/config"
	"github.com/m3rciful/pontusbot/app/menu"
	"github.com/m3rciful/pontusbot/app/navigation"
	"github.com/m3rciful/pontusbot/core/bootstrap"
	"github.com/m3rciful/pontusbot/core/logger"
	tg "github.com/m3rciful/pontusbot/core/telegram"
	"github.com/m3rciful/pontusbot/core/telegram/callbacks"
	"github.com/m3rciful/pontusbot/core/telegram/commands"
	"github.com/m3rciful/pontusbot/core/telegram/helpers"
	"github.com/m3rciful/pontusbot/core/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// App is the running bot: configuration, controller and handler registry.
type App struct {
	cfg   *appconfig.Config
	nav   *navigation.Controller
	reg   *tg.Registry
	infra *bootstrap.Result
	log   *slog.Logger
}

// New builds the app on top of a catalog source. infra may be nil.
func New(cfg *appconfig.Config, source catalog.Source, infra *bootstrap.Result) (*App, error) {
	if cfg == nil {
		return nil, errors.New("bot: nil config")
	}
	nav, err := navigation.New(navigation.Options{
		Source:   source,
		Mode:     cfg.Catalog.Delivery,
		Branding: cfg.Branding,
		Logger:   logger.Component("nav"),
	})
	if err != nil {
		return nil, err
	}
	a := &App{
		cfg:   cfg,
		nav:   nav,
		reg:   tg.NewRegistry(),
		infra: infra,
		log:   logger.Component("app"),
	}
	if err := a.register(); err != nil {
		return nil, err
	}
	return a, nil
}

// Bootstrap initializes logging and, for the postgres driver, the database,
// then builds the App with the configured catalog source.
func Bootstrap(ctx context.Context, cfg *appconfig.Config) (*App, error) {
	opts := bootstrap.Options{Config: cfg.CoreConfig()}
	if cfg.UsesDatabase() {
		opts.Database = &cfg.Database
		opts.Migrations = catalog.Migrations()
	}
	res, err := bootstrap.Run(ctx, opts)
	if err != nil {
		return nil, err
	}
	return fromInfra(ctx, cfg, res)
}

// fromInfra builds the App on top of bootstrapped infrastructure and
// releases that infrastructure when the App cannot be built.
func fromInfra(ctx context.Context, cfg *appconfig.Config, res *bootstrap.Result) (*App, error) {
	var source catalog.Source
	if res.DB != nil {
		source = catalog.NewPostgresStore(res.DB, nil)
	} else {
		source = catalog.NewFileStore(cfg.Catalog.Path, nil)
	}
	logger.Info(ctx, "app", "catalog.source",
		slog.String("source", cfg.Catalog.Driver),
		slog.String("path", cfg.Catalog.Path),
		slog.String("delivery", string(cfg.Catalog.Delivery)),
	)

	a, err := New(cfg, source, res)
	if err != nil {
		if cerr := res.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close infrastructure: %w", cerr))
		}
		return nil, err
	}
	return a, nil
}

// Registry exposes the handler registry.
func (a *App) Registry() *tg.Registry { return a.reg }

// Close releases the database handle, if any.
func (a *App) Close() error {
	return a.infra.Close()
}

// TelegramRunOptions assembles the runtime: default middlewares, one route per
// command, the callback router and the text fallback for aliases.
func (a *App) TelegramRunOptions() (tg.RunOptions, error) {
	fb := fallbacks{}
	routes := router.CommandRoutes(a.reg)
	routes = append(routes, router.CallbackRoute(a.reg, fb))
	routes = append(routes, router.TextRoutes(a.reg, fb)...)
	return tg.RunOptions{
		Config:      a.cfg.CoreConfig(),
		Registry:    a.reg,
		Middlewares: tg.DefaultMiddlewares(),
		Routes:      routes,
	}, nil
}

func (a *App) register() error {
	a.reg.RegisterCommand("/start", commands.Command{
		Handler:     a.command(navigation.CommandStart),
		Description: "Start the bot",
	})
	a.reg.RegisterCommand("/help", commands.Command{
		Handler:     a.command(navigation.CommandHelp),
		Description: "Show the help menu",
	})
	a.reg.RegisterCommand("/about", commands.Command{
		Handler:     a.command(navigation.CommandAbout),
		Description: "Show information about the bot",
	})
	a.reg.RegisterCommand("/files", commands.Command{
		Handler:     a.command(navigation.CommandFiles),
		Description: "List files or download one by id",
	})

	for _, key := range navigation.StaticActions() {
		if err := a.reg.RegisterCallback(key, a.action); err != nil {
			return fmt.Errorf("bot: %w", err)
		}
	}
	for _, prefix := range []string{catalog.DownloadPrefix, catalog.ArchPrefix} {
		if err := a.reg.RegisterCallbackPrefix(prefix, a.action); err != nil {
			return fmt.Errorf("bot: %w", err)
		}
	}
	a.reg.SetCallbackNotFound(unsupportedAction)
	return nil
}

func (a *App) command(name string) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := helpers.BuildContext(c)
		return a.nav.Command(ctx, responder{c: c}, userOf(c), name, c.Args())
	}
}

// action handles every registered callback. The query is already answered by
// the callback router, so data that matches a prefix but cannot be parsed is
// only logged.
func (a *App) action(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	data, _ := callbacks.ParseCallbackData(c.Callback())
	err := a.nav.Action(ctx, responder{c: c}, userOf(c), data)
	if errors.Is(err, navigation.ErrUnknownAction) {
		logger.LogEvent(ctx, a.log, slog.LevelInfo, "callback.malformed",
			slog.String("status", "skip"),
			slog.String("cb_key", logger.SanitizeLimit(data, 64)),
		)
		return nil
	}
	return err
}

// fallbacks ignores plain text and answers unknown callbacks.
type fallbacks struct{}

func (fallbacks) UnknownText() tele.HandlerFunc { return nil }

func (fallbacks) UnknownCallback() tele.HandlerFunc { return unsupportedAction }

func unsupportedAction(c tele.Context) error {
	return c.Respond(&tele.CallbackResponse{Text: menu.TextUnsupportedAction})
}
