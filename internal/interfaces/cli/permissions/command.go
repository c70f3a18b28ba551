package permissions

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	apppermission "github.com/claimdesk/claimdesk/internal/application/permission"
	"github.com/claimdesk/claimdesk/internal/domain/permission"
	vo "github.com/claimdesk/claimdesk/internal/domain/permission/valueobjects"
	"github.com/claimdesk/claimdesk/internal/infrastructure/config"
	"github.com/claimdesk/claimdesk/internal/infrastructure/database"
	infraPermission "github.com/claimdesk/claimdesk/internal/infrastructure/permission"
	"github.com/claimdesk/claimdesk/internal/shared/logger"
)

var (
	env        string
	configPath string
	role       string
	user       string
	tableFile  string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permissions",
		Short: "Inspect and seed role permissions",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVarP(&tableFile, "file", "f", "", "Role table YAML (default: permissions.table_path)")

	cmd.AddCommand(
		newResolveCommand(),
		newSeedCommand(),
	)

	return cmd
}

func newResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Print the effective permissions for a role and user",
		Long: `Resolve the effective permission set for --role, applying the override for --user
when one exists. With --file the YAML table is used directly; otherwise the policy store is read.`,
		RunE: runResolve,
	}

	cmd.Flags().StringVarP(&role, "role", "r", "", "Role key (required)")
	cmd.Flags().StringVarP(&user, "user", "u", "", "User email")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Replace role grants in the policy store with the role table",
		RunE:  runSeed,
	}
}

func initEnv() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(env, configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if tableFile == "" {
		tableFile = cfg.Permissions.TablePath
	}
	return cfg, logger.NewLogger(), nil
}

func openService(ctx context.Context, cfg *config.Config, log logger.Interface) (*apppermission.Service, *infraPermission.Enforcer, error) {
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	enforcer, err := infraPermission.NewEnforcer(database.Get(), log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	return apppermission.NewService(enforcer, apppermission.NoopCache(), log), enforcer, nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := initEnv()
	if err != nil {
		return err
	}

	var (
		resolver *permission.Resolver
		enforcer *infraPermission.Enforcer
	)
	if cmd.Flags().Changed("file") {
		table, err := infraPermission.LoadTableFile(tableFile)
		if err != nil {
			return err
		}
		resolver = permission.NewResolver(table)
	} else {
		svc, e, err := openService(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer database.Close()
		enforcer = e

		if err := svc.Load(ctx); err != nil {
			return err
		}
		resolver = svc.Resolver()
	}

	roleKey := permission.NewRoleKey(role)
	if !resolver.Table().HasRole(roleKey) {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: role %q has no grants\n", roleKey)
	}

	userKey := permission.NewUserKey(user)
	set := resolver.Resolve(roleKey, userKey)
	if enforcer != nil {
		if err := reportDisagreements(cmd.ErrOrStderr(), enforcer, roleKey, userKey, set); err != nil {
			return err
		}
	}
	return printPermissionSet(cmd.OutOrStdout(), set)
}

type policyChecker interface {
	Disagreements(role permission.RoleKey, user permission.UserKey, set permission.PermissionSet) ([]vo.Capability, error)
}

// reportDisagreements warns about capabilities where the casbin policies
// decide differently from the resolved set.
func reportDisagreements(w io.Writer, pc policyChecker, role permission.RoleKey, user permission.UserKey, set permission.PermissionSet) error {
	diff, err := pc.Disagreements(role, user, set)
	if err != nil {
		return err
	}
	for _, c := range diff {
		fmt.Fprintf(w, "warning: policy store disagrees on %s (resolved %t)\n", c, set.Has(c))
	}
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, log, err := initEnv()
	if err != nil {
		return err
	}

	table, err := infraPermission.LoadTableFile(tableFile)
	if err != nil {
		return err
	}

	svc, _, err := openService(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer database.Close()

	if err := svc.Seed(ctx, table); err != nil {
		log.Errorw("failed to seed permissions", "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %d roles and %d overrides from %s\n",
		len(table.Roles()), len(table.Users()), displayPath(tableFile))
	return nil
}

func printPermissionSet(w io.Writer, set permission.PermissionSet) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CAPABILITY\tGRANTED")
	for _, c := range vo.AllCapabilities() {
		fmt.Fprintf(tw, "%s\t%t\n", c, set.Has(c))
	}
	return tw.Flush()
}

func displayPath(path string) string {
	if path == "" {
		return "built-in default table"
	}
	return path
}
