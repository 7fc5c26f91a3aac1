package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"

	"github.com/m3rciful/pontusbot/app/catalog"
	appconfig "github.com/m3rciful/pontusbot/app/config"
	"github.com/m3rciful/pontusbot/core/bootstrap"
)

// ErrCatalogIssues is returned by "catalog validate --strict" when records were skipped.
var ErrCatalogIssues = errors.New("catalog has skipped records")

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect or import the file catalog",
	}
	cmd.AddCommand(newValidateCmd(opts), newImportCmd(opts))
	return cmd
}

func newValidateCmd(opts *rootOptions) *cobra.Command {
	var (
		path   string
		strict bool
	)
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Parse the catalog file and report skipped records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				cfg, err := loadOffline(opts)
				if err != nil {
					return err
				}
				path = cfg.Catalog.Path
			}
			c, err := catalog.NewFileStore(path, nil).Load(cmd.Context())
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), path, c)
			if strict && len(c.Issues) > 0 {
				return fmt.Errorf("%w: %d", ErrCatalogIssues, len(c.Issues))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Catalog file (default catalog.path from config)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail when any record was skipped")
	return cmd
}

func printReport(w io.Writer, path string, c *catalog.Catalog) {
	fmt.Fprintf(w, "%s: %d entries, %d skipped\n", path, c.Len(), len(c.Issues))
	for _, e := range c.Entries {
		archs := 1
		if e.MultipleArch {
			archs = len(e.Architectures)
		}
		fmt.Fprintf(w, "  [%s] %s (%d variants)\n", e.ID, e.Name, archs)
	}
	for _, is := range c.Issues {
		fmt.Fprintf(w, "  skipped #%d id=%q arch=%q: %s\n", is.Index, is.EntryID, is.Architecture, is.Reason)
	}
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the PostgreSQL catalog with the contents of a catalog file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadOffline(opts)
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.Catalog.Path
			}
			if err := cfg.Database.Normalize(); err != nil {
				return err
			}
			var imported int
			seed := bootstrap.SeederFunc(func(ctx context.Context, db *sqlx.DB) error {
				c, err := catalog.NewFileStore(path, nil).Load(ctx)
				if err != nil {
					return err
				}
				imported = c.Len()
				return catalog.NewPostgresStore(db, nil).Import(ctx, c)
			})
			res, err := bootstrap.Run(cmd.Context(), bootstrap.Options{
				Config:     cfg.CoreConfig(),
				Database:   &cfg.Database,
				Migrations: catalog.Migrations(),
				Seeders:    []bootstrap.Seeder{seed},
			})
			if err != nil {
				return err
			}
			defer res.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d entries from %s into %s\n", imported, path, cfg.Database.Target())
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "Catalog file (default catalog.path from config)")
	return cmd
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations for the postgres catalog driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadOffline(opts)
			if err != nil {
				return err
			}
			if err := cfg.Database.Normalize(); err != nil {
				return err
			}
			res, err := bootstrap.Run(cmd.Context(), bootstrap.Options{
				Config:     cfg.CoreConfig(),
				Database:   &cfg.Database,
				Migrations: catalog.Migrations(),
			})
			if err != nil {
				return err
			}
			defer res.Close()
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied to %s\n", cfg.Database.Target())
			return nil
		},
	}
}

func loadOffline(opts *rootOptions) (*appconfig.Config, error) {
	path, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	return appconfig.LoadOffline(path)
}
