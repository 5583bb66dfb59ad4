package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/libris-backend/internal/adapter/postgres"
	"github.com/heartmarshall/libris-backend/internal/app"
)

// newSweepCmd runs one overdue fine sweep, for use from an external cron job.
func newSweepCmd(c *cli) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Create or refresh fines for overdue loans once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var scope *uuid.UUID
			if userID != "" {
				id, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("--user: %w", err)
				}
				scope = &id
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), c.cfg.Fines.SweepTimeout)
			defer cancel()

			pool, err := postgres.NewPool(ctx, c.cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()

			a := app.New(c.cfg, c.log, pool, clockwork.NewRealClock())
			res, err := a.Fines.Sweep(ctx, scope)
			if err != nil {
				return err
			}

			c.log.InfoContext(ctx, "sweep completed",
				slog.Int("scanned", res.Scanned),
				slog.Int("created", len(res.Created)),
				slog.Int("updated", len(res.Updated)),
				slog.Int("failed", res.Failed),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "scanned %d overdue loans: %d fines created, %d updated, %d failed\n",
				res.Scanned, len(res.Created), len(res.Updated), res.Failed)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "only sweep loans of this member")
	return cmd
}
