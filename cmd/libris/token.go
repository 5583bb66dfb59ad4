package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/libris-backend/internal/auth"
	"github.com/heartmarshall/libris-backend/internal/domain"
)

// newTokenCmd mints a bearer token signed with auth.jwt_secret, for local
// testing and operator scripts when no identity provider is at hand.
func newTokenCmd(c *cli) *cobra.Command {
	var (
		userID string
		role   string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for a member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id, err := uuid.Parse(userID)
			if err != nil {
				return fmt.Errorf("--user: %w", err)
			}
			r := domain.UserRole(role)
			if !r.IsValid() {
				return fmt.Errorf("--role: unknown role %q", role)
			}

			jwt := auth.NewJWTManager(c.cfg.Auth.JWTSecret, c.cfg.Auth.JWTIssuer, clockwork.NewRealClock())
			token, err := jwt.GenerateAccessToken(id, r, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "member id (required)")
	cmd.Flags().StringVar(&role, "role", string(domain.UserRoleBorrower), "librarian or borrower")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
