package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd 组装 labadmin 命令树
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "labadmin",
		Short: "Operator tooling for the lab portal",
		Long: `labadmin manages portal accounts, applies auth store migrations and
inspects jobs across the production and proofing stores.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file (default ./config/config.yaml)")

	root.AddCommand(MigrateCmd())
	root.AddCommand(DoctorCmd())
	root.AddCommand(UserCmd())
	root.AddCommand(JobCmd())

	return root
}
