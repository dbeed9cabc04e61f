package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"labportal/internal/dto"
	"labportal/internal/service"
)

// JobCmd 工单诊断
func JobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "job",
		Short: "Inspect jobs across the production and proofing stores",
	}

	cmd.AddCommand(jobShowCmd())
	cmd.AddCommand(jobAuthorizeCmd())

	return cmd
}

func jobShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <number>",
		Short: "Assemble and print the job view",
		Long: `Assemble the full job view exactly as the portal would serve it,
without any authorization check.

Examples:
  labadmin job show 123456
  labadmin job show 123456 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			view, err := rt.svc.Job.Assemble(context.Background(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			renderJobView(cmd.OutOrStdout(), view)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

func jobAuthorizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "authorize <username> <number>",
		Short: "Check whether an account may open a job",
		Long: `Run the same authorization the portal applies to /users/:id/jobs/:number,
using the account's own id as the path id. Exits non-zero when denied.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx := context.Background()
			user, err := rt.repo.User.GetByUsername(ctx, args[0])
			if err != nil {
				return fmt.Errorf("用户不存在: %s", args[0])
			}

			who := service.Identity{UserID: user.UserID, Username: user.Username}
			allowed := rt.svc.Access.Authorize(ctx, who, args[1], user.UserID)

			fmt.Fprintln(cmd.OutOrStdout(), decisionLabel(allowed))
			if !allowed {
				return fmt.Errorf("%s 无权访问工单 %s", args[0], args[1])
			}
			return nil
		},
	}
}

func decisionLabel(allowed bool) string {
	if allowed {
		return color.New(color.FgGreen).Sprint("GRANTED")
	}
	return color.New(color.FgRed).Sprint("DENIED")
}

// renderJobView 以人类可读格式输出工单视图
func renderJobView(w io.Writer, v *dto.JobView) {
	if !v.Known {
		fmt.Fprintf(w, "Job %s: %s\n", v.Number, color.New(color.FgYellow).Sprint("not found in production store"))
		return
	}

	fmt.Fprintf(w, "Job %s  [%s]\n\n", v.Number, v.Lab)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Title:\t%s\n", strings.TrimSpace(v.Title1+" "+v.Title2))
	fmt.Fprintf(tw, "  Product:\t%s\n", v.Product)
	fmt.Fprintf(tw, "  Material:\t%s\n", v.Material)
	fmt.Fprintf(tw, "  Phase:\t%s (status %d)\n", v.Phase, v.Status)
	fmt.Fprintf(tw, "  Qty:\t%d\n", v.QtyOrdered)
	fmt.Fprintf(tw, "  Colors:\t%s\n", formatSwatches(v.Colors))
	fmt.Fprintf(tw, "  Order file:\t%s\n", orDash(v.Order.Path))
	fmt.Fprintf(tw, "  Varnish machine/UV:\t%s / %s\n", yesNo(v.VarnishMachine), yesNo(v.VarnishUV))
	fmt.Fprintf(tw, "  Braille:\t%s\n", yesNo(v.Braille))
	if v.CurrentStage != nil {
		fmt.Fprintf(tw, "  Current stage:\t%s (%s)\n", v.CurrentStage.Code, v.CurrentStage.Department)
	}
	if v.LastDelivery != nil {
		fmt.Fprintf(tw, "  Last delivery:\t%s x%d\n", v.LastDelivery.Date.Format("2006-01-02"), v.LastDelivery.Qty)
	}
	if v.Proof != nil {
		fmt.Fprintf(tw, "  Proof:\t%s v%d\n", v.Proof.State, v.Proof.Version)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\nStats: %d stages, %d min worked, %d deliveries (%d pcs), %d prior registrations\n",
		v.Stats.StageCount, v.Stats.WorkedMinutes, v.Stats.DeliveryCount, v.Stats.ScheduledQty, v.Stats.PriorRegistrations)
}

func formatSwatches(colors []dto.ColorSwatch) string {
	if len(colors) == 0 {
		return "-"
	}
	names := make([]string, 0, len(colors))
	for _, c := range colors {
		if c.Hex == "" {
			names = append(names, c.Name+"(?)")
			continue
		}
		names = append(names, c.Name)
	}
	return strings.Join(names, " + ")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
