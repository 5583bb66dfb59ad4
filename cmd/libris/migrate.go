package main

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/libris-backend/internal/adapter/postgres"
)

func newMigrateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator) error {
					n, err := m.Up(ctx)
					if err != nil {
						return err
					}
					c.log.InfoContext(ctx, "migrations applied", slog.Int("count", n))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator) error {
					if err := m.Down(ctx); err != nil {
						return err
					}
					c.log.InfoContext(ctx, "migration rolled back")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "List migrations and whether they are applied",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return c.withMigrator(cmd.Context(), func(ctx context.Context, m *postgres.Migrator) error {
					statuses, err := m.Status(ctx)
					if err != nil {
						return err
					}

					tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
					fmt.Fprintln(tw, "VERSION\tAPPLIED\tSOURCE")
					for _, s := range statuses {
						fmt.Fprintf(tw, "%d\t%t\t%s\n", s.Version, s.Applied, s.Source)
					}
					return tw.Flush()
				})
			},
		},
	)
	return cmd
}

func (c *cli) withMigrator(ctx context.Context, fn func(context.Context, *postgres.Migrator) error) error {
	pool, err := postgres.NewPool(ctx, c.cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	m, err := postgres.NewMigrator(pool)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(ctx, m)
}
