package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the operations dashboard",
		Long: `Show the attention counters and per-client health overview:
overdue tasks, open work, onboarding progress, and computed relationship
health for every client on the roster.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			report, err := wire.WorkspaceService().Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to compute status: %w", err)
			}

			b := report.Badges
			fmt.Println("Operations Dashboard")
			fmt.Println()
			fmt.Printf("  Overdue tasks:    %s\n", badge(b.OverdueTasks, color.FgRed))
			fmt.Printf("  Active clients:   %s\n", badge(b.ActiveClients, color.FgHiGreen))
			fmt.Printf("  Open tasks:       %s\n", badge(b.OpenTasks, color.FgYellow))
			fmt.Printf("  Posts in flight:  %s\n", badge(b.OpenPosts, color.FgYellow))
			fmt.Printf("  Onboardings open: %s\n", badge(b.OpenOnboarding, color.FgCyan))

			if len(report.Clients) == 0 {
				fmt.Println()
				fmt.Println("No clients on the roster yet.")
				return nil
			}

			fmt.Println()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tCLIENT\tSTATUS\tHEALTH\tONBOARDING")
			fmt.Fprintln(w, "--\t------\t------\t------\t----------")
			for _, row := range report.Clients {
				c := row.Client
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					c.ID, c.Name, c.Status, colorHealth(row.Computed), c.OnboardingStatus)
			}
			w.Flush()
			return nil
		},
	}
}

func badge(n int, attr color.Attribute) string {
	if n == 0 {
		return "0"
	}
	return color.New(attr).Sprintf("%d", n)
}

func colorHealth(health string) string {
	switch health {
	case models.HealthHealthy:
		return color.New(color.FgHiGreen).Sprint(health)
	case models.HealthAtRisk:
		return color.New(color.FgYellow).Sprint(health)
	case models.HealthCritical:
		return color.New(color.FgRed).Sprint(health)
	}
	return health
}
