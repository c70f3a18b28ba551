package token

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/claimdesk/claimdesk/internal/domain/permission"
	"github.com/claimdesk/claimdesk/internal/infrastructure/auth"
	"github.com/claimdesk/claimdesk/internal/infrastructure/config"
)

var (
	env        string
	configPath string
	email      string
	role       string
	ttl        time.Duration
)

// NewCommand mints bearer tokens signed with the configured secret. Meant
// for local development and smoke tests against a running server.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVar(&email, "email", "", "User email (required)")
	cmd.Flags().StringVar(&role, "role", "", "Role key (required)")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if env == "production" {
		return fmt.Errorf("refusing to issue tokens in production")
	}

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	jwtSvc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.Audience)
	tok, err := jwtSvc.Generate(email, permission.NewRoleKey(role).String(), ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
