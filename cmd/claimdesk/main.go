package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/claimdesk/claimdesk/internal/interfaces/cli/migrate"
	"github.com/claimdesk/claimdesk/internal/interfaces/cli/permissions"
	"github.com/claimdesk/claimdesk/internal/interfaces/cli/schedule"
	"github.com/claimdesk/claimdesk/internal/interfaces/cli/server"
	"github.com/claimdesk/claimdesk/internal/interfaces/cli/token"
)

// @title                      Claimdesk API
// @version                    1.0
// @description                Device repair claim lifecycle, permissions and repayment projections.
// @BasePath                   /
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:          "claimdesk",
		Short:        "Claimdesk - repair claim back office",
		Long:         `Claimdesk runs the claim lifecycle API and ships tools for migrations, permissions and repayment projections.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		permissions.NewCommand(),
		schedule.NewCommand(),
		token.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
