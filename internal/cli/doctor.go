package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// DoctorCmd 探测三个数据源的连通性
func DoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check connectivity to the Optimus, Backstage and auth stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			results := rt.stores.Ping(ctx)
			names := make([]string, 0, len(results))
			for name := range results {
				names = append(names, name)
			}
			sort.Strings(names)

			failed := 0
			for _, name := range names {
				if err := results[name]; err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "  %s %-10s %v\n", color.New(color.FgRed).Sprint("✗"), name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", color.New(color.FgGreen).Sprint("✓"), name)
			}

			if failed > 0 {
				return fmt.Errorf("%d 个数据源不可用", failed)
			}
			return nil
		},
	}
}
