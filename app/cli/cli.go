// Package cli defines the pontusbot command line: the bot server plus
// catalog and database maintenance commands.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/m3rciful/pontusbot/app/bot"
	appconfig "github.com/m3rciful/pontusbot/app/config"
	"github.com/m3rciful/pontusbot/core/buildinfo"
	corecmd "github.com/m3rciful/pontusbot/core/cmd"
)

// ExitError is the process exit code when a command fails.
const ExitError = 1

type rootOptions struct {
	configPath string
	envFile    string
}

// resolve loads the .env file and returns the effective config path.
func (o *rootOptions) resolve() (string, error) {
	if err := appconfig.LoadDotEnv(o.envFile); err != nil {
		return "", err
	}
	return corecmd.ResolveConfigPath(o.configPath, corecmd.DefaultConfigEnvVar), nil
}

// NewRootCmd builds the command tree. Without a subcommand the bot is served.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "pontusbot",
		Short: "Telegram bot that serves a catalog of downloadable files",
		Long: `PontusBot answers /start, /help, /about and /files, lets users browse the
file catalog with inline buttons and delivers files as links or documents.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to the YAML config (default $CONFIG_PATH or ./config.yaml)")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded before the config, if present")

	cmd.AddCommand(
		newServeCmd(opts),
		newCatalogCmd(opts),
		newMigrateCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(opts)
		},
	}
}

func runServe(opts *rootOptions) error {
	path, err := opts.resolve()
	if err != nil {
		return err
	}
	return corecmd.Run(corecmd.Options{
		ConfigPath: path,
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := appconfig.Load(path)
			if err != nil {
				return nil, err
			}
			return cfg, nil
		},
		Bootstrap: func(ctx context.Context, carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg, ok := carrier.(*appconfig.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", carrier)
			}
			return bot.Bootstrap(ctx, cfg)
		},
	})
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pontusbot %s\n", buildinfo.String())
		},
	}
}
