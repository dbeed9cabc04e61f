package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// UserCmd 门户账户管理
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage portal accounts",
	}

	cmd.AddCommand(userAddCmd())
	cmd.AddCommand(userLabCmd())
	cmd.AddCommand(userAssignCmd())

	return cmd
}

func userAddCmd() *cobra.Command {
	var username, password, lab string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account and bind it to a lab",
		Long: `Create a portal account. The lab code must match the customer code
used by the production system exactly (case-sensitive).

Examples:
  labadmin user add --username ana --password s3cretpass --lab LABX`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			user, err := rt.svc.User.CreateUser(context.Background(), username, password, lab)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s created %s (%s) in lab %s\n",
				color.New(color.FgGreen).Sprint("✓"), user.Username, user.ID, user.Lab)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "login name")
	cmd.Flags().StringVar(&password, "password", "", "initial password (min 8 chars)")
	cmd.Flags().StringVar(&lab, "lab", "", "lab code")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("lab")

	return cmd
}

func userLabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lab <username>",
		Short: "Show the lab an account belongs to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			lab, err := rt.svc.Lab.ResolveLab(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), lab)
			return nil
		},
	}
}

func userAssignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <username> <lab>",
		Short: "Move an account to another lab",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.svc.User.AssignLab(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s\n", color.New(color.FgGreen).Sprint("✓"), args[0], args[1])
			return nil
		},
	}
}
