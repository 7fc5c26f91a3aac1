package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/pontusbot/core/config"
	coretelegram "github.com/m3rciful/pontusbot/core/telegram"
)

type carrier struct{ cfg *coreconfig.Config }

func (c carrier) CoreConfig() *coreconfig.Config { return c.cfg }

type app struct {
	opts   coretelegram.RunOptions
	closed bool
}

func (a *app) TelegramRunOptions() (coretelegram.RunOptions, error) { return a.opts, nil }
func (a *app) Close() error                                         { a.closed = true; return nil }

func TestResolveConfigPath(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PONTUS_TEST_CONFIG", "")

	assert.Equal(t, "explicit.yaml", ResolveConfigPath("explicit.yaml", "PONTUS_TEST_CONFIG"))
	assert.Equal(t, "", ResolveConfigPath("", "PONTUS_TEST_CONFIG"))

	require.NoError(t, os.WriteFile(filepath.Join(".", DefaultConfigFile), []byte("{}"), 0o600))
	assert.Equal(t, DefaultConfigFile, ResolveConfigPath("", "PONTUS_TEST_CONFIG"))

	t.Setenv("PONTUS_TEST_CONFIG", "/etc/pontus.yaml")
	assert.Equal(t, "/etc/pontus.yaml", ResolveConfigPath("", "PONTUS_TEST_CONFIG"))
}

func TestRunWiresHooksAndClosesApp(t *testing.T) {
	a := &app{}
	var started, stopped bool
	a.opts.OnStart = func(context.Context, coretelegram.Runtime) error { started = true; return nil }

	err := Run(Options{
		ConfigPath:     "cfg.yaml",
		LoadConfig:     func(string) (ConfigCarrier, error) { return carrier{cfg: &coreconfig.Config{}}, nil },
		Bootstrap:      func(context.Context, ConfigCarrier) (TelegramApp, error) { return a, nil },
		ShutdownLogger: func() error { return nil },
		RunTelegram: func(ctx context.Context, opts coretelegram.RunOptions) error {
			if err := opts.OnStart(ctx, coretelegram.Runtime{}); err != nil {
				return err
			}
			stopped = opts.OnStop(ctx, coretelegram.Runtime{}) == nil
			return nil
		},
	})
	require.NoError(t, err)
	assert.True(t, started)
	assert.True(t, stopped)
	assert.True(t, a.closed)
}

func TestRunPropagatesLoadError(t *testing.T) {
	boom := errors.New("boom")
	err := Run(Options{
		ConfigPath: "x",
		LoadConfig: func(string) (ConfigCarrier, error) { return nil, boom },
		Bootstrap:  func(context.Context, ConfigCarrier) (TelegramApp, error) { return nil, nil },
	})
	assert.ErrorIs(t, err, boom)
}
