package router

import (
	"errors"
	"testing"

	tg "github.com/m3rciful/pontusbot/core/telegram"
	"github.com/m3rciful/pontusbot/core/telegram/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

type fakeContext struct {
	tele.Context
	update    tele.Update
	store     map[string]any
	responses []*tele.CallbackResponse
}

func newFake(update tele.Update) *fakeContext {
	return &fakeContext{update: update, store: map[string]any{}}
}

func (f *fakeContext) Update() tele.Update           { return f.update }
func (f *fakeContext) Callback() *tele.Callback      { return f.update.Callback }
func (f *fakeContext) Sender() *tele.User            { return &tele.User{ID: 7} }
func (f *fakeContext) Chat() *tele.Chat              { return &tele.Chat{ID: 9} }
func (f *fakeContext) Get(key string) interface{}    { return f.store[key] }
func (f *fakeContext) Set(key string, v interface{}) { f.store[key] = v }
func (f *fakeContext) Text() string {
	if f.update.Message != nil {
		return f.update.Message.Text
	}
	return ""
}

func (f *fakeContext) Respond(resp ...*tele.CallbackResponse) error {
	if len(resp) == 0 {
		resp = []*tele.CallbackResponse{nil}
	}
	f.responses = append(f.responses, resp...)
	return nil
}

type fallbacks struct {
	text, callback tele.HandlerFunc
}

func (f fallbacks) UnknownText() tele.HandlerFunc     { return f.text }
func (f fallbacks) UnknownCallback() tele.HandlerFunc { return f.callback }

func TestCallbackRouteDispatchesByPrefix(t *testing.T) {
	reg := tg.NewRegistry()
	var got string
	require.NoError(t, reg.RegisterCallbackPrefix("download_", func(c tele.Context) error {
		got = c.Callback().Data
		return nil
	}))
	route := CallbackRoute(reg, nil)
	assert.Equal(t, tele.OnCallback, route.Endpoint)

	c := newFake(tele.Update{ID: 1, Callback: &tele.Callback{Data: "download_pontus"}})
	require.NoError(t, route.Handler(c))
	assert.Equal(t, "download_pontus", got)
	require.Len(t, c.responses, 1)
	assert.Nil(t, c.responses[0])
}

func TestCallbackRouteUnknownUsesRegistryFallback(t *testing.T) {
	reg := tg.NewRegistry()
	route := CallbackRoute(reg, fallbacks{})

	c := newFake(tele.Update{ID: 2, Callback: &tele.Callback{Data: "nope"}})
	require.NoError(t, route.Handler(c))
	require.Len(t, c.responses, 1)
	assert.Equal(t, "Unsupported action", c.responses[0].Text)
}

func TestCallbackRouteUnknownUsesProvider(t *testing.T) {
	reg := tg.NewRegistry()
	called := false
	route := CallbackRoute(reg, fallbacks{callback: func(tele.Context) error { called = true; return nil }})
	c := newFake(tele.Update{ID: 3, Callback: &tele.Callback{Data: "nope"}})
	require.NoError(t, route.Handler(c))
	assert.True(t, called)
	assert.Empty(t, c.responses)
}

func TestCallbackRoutePropagatesHandlerError(t *testing.T) {
	reg := tg.NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, reg.RegisterCallback("files", func(tele.Context) error { return boom }))
	c := newFake(tele.Update{ID: 4, Callback: &tele.Callback{Data: "files"}})
	assert.ErrorIs(t, CallbackRoute(reg, nil).Handler(c), boom)
}

func TestCommandRoutes(t *testing.T) {
	reg := tg.NewRegistry()
	calls := 0
	reg.RegisterCommand("/start", commands.Command{Handler: func(tele.Context) error { calls++; return nil }, Description: "Start"})
	routes := CommandRoutes(reg)
	require.Len(t, routes, 1)
	assert.Equal(t, "/start", routes[0].Endpoint)
	require.NoError(t, routes[0].Handler(newFake(tele.Update{ID: 5, Message: &tele.Message{Text: "/start"}})))
	assert.Equal(t, 1, calls)
}

func TestTextRoutesResolvesAliases(t *testing.T) {
	reg := tg.NewRegistry()
	calls := 0
	reg.RegisterCommand("/files", commands.Command{
		Handler:     func(tele.Context) error { calls++; return nil },
		Description: "Files",
		Aliases:     []string{"apk"},
	})
	unknown := 0
	routes := TextRoutes(reg, fallbacks{text: func(tele.Context) error { unknown++; return nil }})
	require.Len(t, routes, 1)

	require.NoError(t, routes[0].Handler(newFake(tele.Update{ID: 6, Message: &tele.Message{Text: "/apk@pontusbot list"}})))
	require.NoError(t, routes[0].Handler(newFake(tele.Update{ID: 7, Message: &tele.Message{Text: "hello"}})))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, unknown)
}

func TestNormalizeHandlerName(t *testing.T) {
	assert.Equal(t, "files", normalizeHandlerName("/Files"))
	assert.Equal(t, "download", normalizeHandlerName("download_"))
	assert.Equal(t, "unknown", normalizeHandlerName(" "))
}

type codedErr struct{}

func (codedErr) Error() string { return "coded" }
func (codedErr) Code() string  { return "not found" }

func TestDeriveErrorCode(t *testing.T) {
	assert.Equal(t, "", deriveErrorCode(nil))
	assert.Equal(t, "NOT_FOUND", deriveErrorCode(codedErr{}))
	assert.Equal(t, "ERRORSTRING", deriveErrorCode(errors.New("x")))
}
