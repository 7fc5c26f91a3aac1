package telegram

import (
	"errors"
	"testing"

	"github.com/m3rciful/pontusbot/core/telegram/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"
)

func noop(tele.Context) error { return nil }

func TestResolveCallbackExactBeatsPrefix(t *testing.T) {
	reg := NewRegistry()
	var hit string
	require.NoError(t, reg.RegisterCallback("files", func(tele.Context) error { hit = "files"; return nil }))
	require.NoError(t, reg.RegisterCallbackPrefix("f", func(tele.Context) error { hit = "f"; return nil }))
	require.NoError(t, reg.RegisterCallbackPrefix("arch_", func(tele.Context) error { hit = "arch_"; return nil }))

	key, h, ok := reg.ResolveCallback("files")
	require.True(t, ok)
	assert.Equal(t, "files", key)
	require.NoError(t, h(nil))
	assert.Equal(t, "files", hit)

	key, _, ok = reg.ResolveCallback("arch_pontus_arm64")
	require.True(t, ok)
	assert.Equal(t, "arch_", key)

	key, _, ok = reg.ResolveCallback("fx")
	require.True(t, ok)
	assert.Equal(t, "f", key)

	_, _, ok = reg.ResolveCallback("zzz")
	assert.False(t, ok)
}

func TestResolveCallbackLongestPrefix(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCallbackPrefix("a", noop))
	require.NoError(t, reg.RegisterCallbackPrefix("arch_", noop))
	key, _, ok := reg.ResolveCallback("arch_x_y")
	require.True(t, ok)
	assert.Equal(t, "arch_", key)
}

func TestRegisterCallbackRejectsInvalidAndDuplicate(t *testing.T) {
	reg := NewRegistry()
	assert.True(t, errors.Is(reg.RegisterCallback("", noop), ErrInvalidCallback))
	assert.True(t, errors.Is(reg.RegisterCallbackPrefix("x", nil), ErrInvalidCallback))
	require.NoError(t, reg.RegisterCallback("help", noop))
	assert.Error(t, reg.RegisterCallback("help", noop))
	assert.Equal(t, []string{"help"}, reg.ListCallbacks())
}

func TestCommandsListingAndLookup(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Start the bot"})
	reg.RegisterCommand("/files", commands.Command{Handler: noop, Description: "Files", Aliases: []string{"apk"}})
	reg.RegisterCommand("/debug", commands.Command{Handler: noop, Description: "Debug", Hidden: true})
	reg.RegisterCommand("nostash", commands.Command{Handler: noop, Description: "x"})
	reg.RegisterCommand("/empty", commands.Command{Handler: noop})

	visible := reg.ListCommands(true)
	require.Len(t, visible, 2)
	assert.Equal(t, "files", visible[0].Text)
	assert.Equal(t, "start", visible[1].Text)
	assert.Len(t, reg.ListCommands(false), 3)

	key, _, ok := reg.LookupCommand("/apk")
	require.True(t, ok)
	assert.Equal(t, "/files", key)
	_, _, ok = reg.LookupCommand("start")
	assert.True(t, ok)
	_, _, ok = reg.LookupCommand("/nope")
	assert.False(t, ok)
}

type fakeSetter struct {
	got []tele.Command
	err error
}

func (f *fakeSetter) SetCommands(opts ...interface{}) error {
	if len(opts) > 0 {
		f.got, _ = opts[0].([]tele.Command)
	}
	return f.err
}

func TestInitBotCommandsPublishesVisible(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterCommand("/help", commands.Command{Handler: noop, Description: "Show the help menu"})
	setter := &fakeSetter{}
	InitBotCommands(setter, reg)
	require.Len(t, setter.got, 1)
	assert.Equal(t, "help", setter.got[0].Text)

	InitBotCommands(&fakeSetter{err: errors.New("boom")}, reg)
}

func TestBuildPoller(t *testing.T) {
	p := BuildPoller(PollerOptions{RunMode: "webhook", Webhook: WebhookOptions{Listen: "0.0.0.0", Port: 8443, URL: "https://x"}})
	wh, ok := p.(*tele.Webhook)
	require.True(t, ok)
	assert.Equal(t, "0.0.0.0:8443", wh.Listen)
	assert.Equal(t, "https://x", wh.Endpoint.PublicURL)

	lp, ok := BuildPoller(PollerOptions{RunMode: "longpoll"}).(*tele.LongPoller)
	require.True(t, ok)
	assert.Equal(t, defaultLongPollTimeout, lp.Timeout)
}
