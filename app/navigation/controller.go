// Package navigation maps commands and callback actions to screens, loads the
// catalog for each request and turns every failure into a user-facing reply.
package navigation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/m3rciful/pontusbot/app/catalog"
	"github.com/m3rciful/pontusbot/app/menu"
	"github.com/m3rciful/pontusbot/core/logger"
)

// Command names handled by the controller.
const (
	CommandStart = "start"
	CommandHelp  = "help"
	CommandAbout = "about"
	CommandFiles = "files"
)

// Responder delivers payloads to the chat an update came from.
type Responder interface {
	// Reply sends a new message.
	Reply(ctx context.Context, p menu.Payload) error
	// Edit replaces the message that carried the pressed button.
	Edit(ctx context.Context, p menu.Payload) error
	// SendDocument uploads a local file.
	SendDocument(ctx context.Context, d menu.Document) error
}

// User is the sender of an update.
type User struct {
	ID        int64
	Username  string
	FirstName string
}

// Options configures a Controller.
type Options struct {
	Source   catalog.Source
	Mode     menu.Mode
	Branding menu.Branding
	// Stat inspects local files before upload; nil means os.Stat.
	Stat   func(name string) (fs.FileInfo, error)
	Logger *slog.Logger
}

// Controller renders screens for commands and actions.
type Controller struct {
	source   catalog.Source
	mode     menu.Mode
	branding menu.Branding
	stat     func(name string) (fs.FileInfo, error)
	log      *slog.Logger
}

// New validates opts and builds a Controller.
func New(opts Options) (*Controller, error) {
	if opts.Source == nil {
		return nil, errors.New("navigation: catalog source is required")
	}
	if opts.Mode == "" {
		opts.Mode = menu.ModeLink
	}
	if !opts.Mode.Valid() {
		return nil, fmt.Errorf("navigation: unsupported delivery mode %q", opts.Mode)
	}
	if opts.Stat == nil {
		opts.Stat = os.Stat
	}
	if opts.Logger == nil {
		opts.Logger = logger.Component("nav")
	}
	return &Controller{
		source:   opts.Source,
		mode:     opts.Mode,
		branding: opts.Branding.WithDefaults(),
		stat:     opts.Stat,
		log:      opts.Logger,
	}, nil
}

// Command answers a slash command with a new message. Errors returned are
// transport failures; domain failures are answered in chat.
func (c *Controller) Command(ctx context.Context, r Responder, u User, name string, args []string) error {
	name = strings.ToLower(strings.TrimPrefix(name, "/"))
	c.logRequest(ctx, u, slog.String("command", name))

	var t Target
	switch name {
	case CommandStart:
		t = Target{State: StateWelcome}
	case CommandHelp:
		t = Target{State: StateHelpRoot}
	case CommandAbout:
		t = Target{State: StateAbout}
	case CommandFiles:
		var err error
		if t, err = ParseFilesArgs(args); err != nil {
			logger.LogEvent(ctx, c.log, slog.LevelInfo, "nav.invalid_command",
				slog.String("status", "skip"),
				slog.String("command", name),
				slog.String("payload", logger.SanitizeLimit(strings.Join(args, " "), 64)),
			)
			return r.Reply(ctx, menu.Plain(menu.TextInvalidCommand))
		}
	default:
		return fmt.Errorf("%w: /%s", ErrUnknownAction, name)
	}
	return c.show(ctx, r, u, t, r.Reply)
}

// Action answers a button press by editing the message in place. Unknown
// actions return ErrUnknownAction and leave the chat untouched.
func (c *Controller) Action(ctx context.Context, r Responder, u User, data string) error {
	t, err := ParseAction(data)
	if err != nil {
		return err
	}
	c.logRequest(ctx, u, slog.String("action", logger.SanitizeLimit(data, 64)))
	return c.show(ctx, r, u, t, r.Edit)
}

type sendFunc func(context.Context, menu.Payload) error

func (c *Controller) show(ctx context.Context, r Responder, u User, t Target, send sendFunc) error {
	switch t.State {
	case StateWelcome:
		return send(ctx, menu.Welcome(c.branding, u.FirstName))
	case StateHelpRoot:
		return send(ctx, menu.HelpRoot())
	case StateHelpGeneral:
		return send(ctx, menu.HelpGeneral())
	case StateHelpFiles:
		return send(ctx, menu.HelpFiles())
	case StateHelpManagement:
		return send(ctx, menu.HelpManagement())
	case StateAbout:
		return send(ctx, menu.About(c.branding))
	}

	cat, err := c.load(ctx)
	if err != nil {
		return r.Reply(ctx, menu.Plain(menu.TextLoadFailed))
	}

	switch t.State {
	case StateFileList:
		return send(ctx, menu.FileList(cat))
	case StateEntrySummary:
		e, ok := cat.Find(t.EntryID)
		if !ok {
			return c.notFound(ctx, r, t, ErrEntryNotFound, menu.TextFileNotFound)
		}
		if e.MultipleArch {
			return send(ctx, menu.EntrySummary(e, menu.Download{}))
		}
		return c.deliver(ctx, r, send, e, e.Primary, func(dl menu.Download) menu.Payload {
			return menu.EntrySummary(e, dl)
		})
	case StateVariantDetail:
		e, ok := cat.Find(t.EntryID)
		if !ok {
			return c.notFound(ctx, r, t, ErrEntryNotFound, menu.TextFileNotFound)
		}
		v, ok := e.Variant(t.Arch)
		if !ok {
			return c.notFound(ctx, r, t, ErrVariantNotFound, menu.TextArchNotFound)
		}
		return c.deliver(ctx, r, send, e, v, func(dl menu.Download) menu.Payload {
			return menu.VariantDetail(e, v, dl)
		})
	}
	return fmt.Errorf("%w: state %s", ErrUnknownAction, t.State)
}

// load fetches a fresh snapshot. A malformed catalog is served as empty; any
// other failure is returned after logging.
func (c *Controller) load(ctx context.Context) (*catalog.Catalog, error) {
	cat, err := c.source.Load(ctx)
	switch {
	case err == nil:
		return cat, nil
	case errors.Is(err, catalog.ErrMalformed):
		logger.LogEvent(ctx, c.log, slog.LevelWarn, "catalog.malformed",
			slog.String("status", "fail"),
			slog.Any("err", err),
		)
		return nil, nil
	default:
		logger.LogEvent(ctx, c.log, slog.LevelError, "catalog.unavailable",
			slog.String("status", logger.Status(err)),
			slog.Any("err", err),
		)
		return nil, err
	}
}

func (c *Controller) notFound(ctx context.Context, r Responder, t Target, cause error, text string) error {
	logger.LogEvent(ctx, c.log, slog.LevelInfo, "nav.not_found",
		slog.String("status", "not_found"),
		slog.String("outcome", "not_found"),
		slog.String("entry_id", logger.SanitizeLimit(t.EntryID, 64)),
		slog.String("arch", logger.SanitizeLimit(t.Arch, 64)),
		slog.Any("cause", cause),
	)
	return r.Reply(ctx, menu.Plain(text))
}

// deliver shows a deliverable. Links are rendered inline; local files are
// checked with stat, announced with send and then uploaded.
func (c *Controller) deliver(ctx context.Context, r Responder, send sendFunc, e catalog.Entry, v catalog.Variant, render func(menu.Download) menu.Payload) error {
	if menu.Choose(c.mode, v) == menu.MethodLink {
		return send(ctx, render(menu.Download{Method: menu.MethodLink}))
	}

	info, err := c.stat(v.FilePath)
	if err == nil && info.IsDir() {
		err = fmt.Errorf("%s is a directory", v.FilePath)
	}
	if err != nil {
		c.logDelivery(ctx, e, v, "stat", err)
		return r.Reply(ctx, menu.Plain(menu.TextStatFailed))
	}

	dl := menu.Download{Method: menu.MethodDocument}
	if v.FileSize == "" {
		dl.Size = menu.HumanSize(info.Size())
	}
	if err := send(ctx, render(dl)); err != nil {
		return err
	}
	if err := r.SendDocument(ctx, menu.DocumentFor(e, v)); err != nil {
		c.logDelivery(ctx, e, v, "upload", err)
		return r.Reply(ctx, menu.Plain(menu.TextSendFailed))
	}
	logger.LogEvent(ctx, c.log, slog.LevelInfo, "nav.delivered",
		slog.String("status", "ok"),
		slog.String("entry_id", e.ID),
		slog.String("arch", v.Architecture),
		slog.String("delivery", string(menu.ModeDocument)),
		slog.Int64("size_bytes", info.Size()),
	)
	return nil
}

func (c *Controller) logDelivery(ctx context.Context, e catalog.Entry, v catalog.Variant, step string, err error) {
	logger.LogEvent(ctx, c.log, slog.LevelError, "nav.delivery_failed",
		slog.String("status", "fail"),
		slog.String("entry_id", e.ID),
		slog.String("arch", v.Architecture),
		slog.String("path", v.FilePath),
		slog.String("cause", step),
		slog.Any("err", fmt.Errorf("%w: %w", ErrDelivery, err)),
	)
}

func (c *Controller) logRequest(ctx context.Context, u User, attr slog.Attr) {
	logger.LogEvent(ctx, c.log, slog.LevelInfo, "nav.request",
		attr,
		slog.Int64("user_id", u.ID),
		slog.String("username", logger.SanitizeLimit(u.Username, 64)),
	)
}
