package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/wire"
)

// OnboardingCmd returns the onboarding command
func OnboardingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "onboarding",
		Short: "Manage client onboarding checklists",
		Long:  "Inspect and advance the 10-step onboarding protocol for active clients",
	}

	cmd.AddCommand(onboardingListCmd())
	cmd.AddCommand(onboardingShowCmd())
	cmd.AddCommand(onboardingCheckCmd())
	cmd.AddCommand(onboardingUncheckCmd())
	cmd.AddCommand(onboardingBlockCmd())

	return cmd
}

func onboardingListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List onboarding protocols",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			protocols, err := wire.OnboardingService().ListProtocols(ctx)
			if err != nil {
				return fmt.Errorf("failed to list protocols: %w", err)
			}
			if len(protocols) == 0 {
				fmt.Println("No onboarding protocols yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "CLIENT\tPROGRESS\tSTATUS\tLAST UPDATED")
			fmt.Fprintln(w, "------\t--------\t------\t------------")
			for _, ob := range protocols {
				fmt.Fprintf(w, "%d\t%d/10\t%s\t%s\n",
					ob.ClientID, ob.Progress, ob.Status, ob.LastUpdated.Format("2006-01-02"))
			}
			w.Flush()
			return nil
		},
	}
}

func onboardingShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [client-id]",
		Short: "Show a client's onboarding checklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			clientID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			ob, err := wire.OnboardingService().GetForClient(ctx, clientID)
			if err != nil {
				return err
			}

			fmt.Printf("Onboarding for client %d [%s] — %d/10\n", ob.ClientID, ob.Status, ob.Progress)
			fmt.Println()
			for _, step := range ob.Steps {
				mark := "[ ]"
				if step.Completed {
					mark = "[x]"
				}
				fmt.Printf("  %s %s. %s (%s)\n", mark, step.ID, step.Label, step.Owner)
			}
			return nil
		},
	}
}

func onboardingCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [client-id] [step-id]",
		Short: "Mark an onboarding step complete",
		Long: `Mark an onboarding step complete. Steps owned by the CEO require the
CEO passphrase. Completing the final step marks the sprint live.

Examples:
  agencyos onboarding check 3 2
  agencyos onboarding check 3 8 --phrase "war room"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setOnboardingStep(cmd, args, true)
		},
	}

	addOperatorFlag(cmd)

	return cmd
}

func onboardingUncheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uncheck [client-id] [step-id]",
		Short: "Mark an onboarding step incomplete",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setOnboardingStep(cmd, args, false)
		},
	}

	addOperatorFlag(cmd)

	return cmd
}

func setOnboardingStep(cmd *cobra.Command, args []string, completed bool) error {
	ctx := context.Background()
	clientID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid client id %q", args[0])
	}
	stepID := args[1]

	ob, err := wire.OnboardingService().GetForClient(ctx, clientID)
	if err != nil {
		return err
	}

	// CEO-owned steps are gated here; the engine itself takes any author.
	for _, step := range ob.Steps {
		if step.ID == stepID && step.Owner == models.OwnerCEO {
			if _, err := requireCEO(ctx, cmd); err != nil {
				return err
			}
			break
		}
	}

	updated, err := wire.OnboardingService().UpdateStep(ctx, ob.ID, stepID, completed)
	if err != nil {
		return fmt.Errorf("failed to update step: %w", err)
	}

	if completed {
		fmt.Printf("✓ Step %s complete — onboarding at %d/10\n", stepID, updated.Progress)
		if updated.Progress == 10 {
			fmt.Println("  Onboarding complete — sprint officially live")
		}
	} else {
		fmt.Printf("✓ Step %s reopened — onboarding at %d/10\n", stepID, updated.Progress)
	}
	return nil
}

func onboardingBlockCmd() *cobra.Command {
	var unblock bool

	cmd := &cobra.Command{
		Use:   "block [client-id]",
		Short: "Flag an onboarding protocol as blocked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			clientID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			ob, err := wire.OnboardingService().GetForClient(ctx, clientID)
			if err != nil {
				return err
			}
			if err := wire.OnboardingService().SetBlocked(ctx, ob.ID, !unblock); err != nil {
				return err
			}
			if unblock {
				fmt.Printf("✓ Onboarding for client %d unblocked\n", clientID)
			} else {
				fmt.Printf("✓ Onboarding for client %d flagged as blocked\n", clientID)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unblock, "clear", false, "Clear the blocked flag instead")

	return cmd
}
