package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"qtirender/internal/config"
	"qtirender/internal/domain"
	"qtirender/internal/service"
)

func newTokenCmd() *cobra.Command {
	var (
		userID string
		role   string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token signed with the configured JWT secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			id := uuid.New()
			if userID != "" {
				if id, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("invalid --user: %w", err)
				}
			}

			tok, err := service.NewAuthService(cfg.JWT).IssueToken(id, domain.UserRole(role))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "user %s (%s), expires %s\n", id, role, tok.ExpiresAt.Format("2006-01-02 15:04:05 MST"))
			fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID (default: random)")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleAuthor), "Role: author or learner")
	return cmd
}
