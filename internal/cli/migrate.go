package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"labportal/pkg/database"
)

// MigrateCmd 对认证库执行版本化迁移
func MigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply auth store migrations",
		Long: `Apply pending migrations to the auth store (users, users_labs).

Optimus and Backstage are owned by other systems and are never migrated.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			sqlDB, err := rt.stores.Auth.DB()
			if err != nil {
				return err
			}
			if err := database.RunMigrations(sqlDB, rt.cfg.AuthDB.Driver, rt.logger); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s auth store is up to date\n", color.New(color.FgGreen).Sprint("✓"))
			return nil
		},
	}
}
