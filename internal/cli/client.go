package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/agencyos/internal/core/client"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/ports/primary"
	"github.com/example/agencyos/internal/wire"
)

// ClientCmd returns the client command
func ClientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Manage clients through their lifecycle",
		Long:  "Install, list, update, and close clients in the agency roster",
	}

	cmd.AddCommand(clientAddCmd())
	cmd.AddCommand(clientListCmd())
	cmd.AddCommand(clientShowCmd())
	cmd.AddCommand(clientUpdateCmd())
	cmd.AddCommand(clientStatusCmd())
	cmd.AddCommand(clientEventCmd())
	cmd.AddCommand(clientDeleteCmd())

	return cmd
}

func clientAddCmd() *cobra.Command {
	var req primary.CreateClientRequest

	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Install a new client",
		Long: `Install a new client into the roster.

Clients default to the Lead status; installing directly into "Active Sprint"
creates the onboarding protocol immediately.

Examples:
  agencyos client add "Acme Fitness" --niche "fitness coaching" --tier T2
  agencyos client add "Northwind Dental" --status "Active Sprint" --start-date 2026-04-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			req.Name = args[0]

			c, err := wire.ClientService().CreateClient(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to add client: %w", err)
			}

			fmt.Printf("✓ Installed client %d: %s [%s]\n", c.ID, c.Name, c.Status)
			if c.Status == models.ClientStatusActive {
				fmt.Println("  Onboarding protocol created")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Status, "status", "", "Lifecycle status (defaults to Lead)")
	cmd.Flags().StringVar(&req.RevenueGate, "revenue-gate", "", "Verified revenue band")
	cmd.Flags().StringVar(&req.Tier, "tier", "", "Service tier")
	cmd.Flags().IntVar(&req.ContractValue, "contract-value", 0, "Contract value")
	cmd.Flags().IntVar(&req.LTV, "ltv", 0, "Lifetime value")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&req.Email, "email", "", "Contact email")
	cmd.Flags().StringVar(&req.ContactName, "contact", "", "Contact name")
	cmd.Flags().StringVar(&req.Niche, "niche", "", "Client niche")
	cmd.Flags().StringVar(&req.StartDate, "start-date", "", "Engagement start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.ShadowAvatar, "shadow-avatar", "", "Shadow avatar summary")
	cmd.Flags().StringVar(&req.BleedingNeck, "bleeding-neck", "", "Acute pain point")
	cmd.Flags().StringSliceVar(&req.ContentPillars, "pillars", nil, "Content pillars")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "Free-form notes")

	return cmd
}

func clientListCmd() *cobra.Command {
	var filters primary.ClientFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			clients, err := wire.ClientService().ListClients(ctx, filters)
			if err != nil {
				return fmt.Errorf("failed to list clients: %w", err)
			}

			if len(clients) == 0 {
				fmt.Println("No clients found.")
				fmt.Println()
				fmt.Println("Install your first client:")
				fmt.Println("  agencyos client add \"Acme Fitness\"")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSTATUS\tTIER\tNICHE\tONBOARDING")
			fmt.Fprintln(w, "--\t----\t------\t----\t-----\t----------")
			for _, c := range clients {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.Name, c.Status, c.Tier, c.Niche, c.OnboardingStatus)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Status, "status", "", "Filter by lifecycle status")
	cmd.Flags().StringVar(&filters.Tier, "tier", "", "Filter by service tier")

	return cmd
}

func clientShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [client-id]",
		Short: "Show client details and timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			c, err := wire.ClientService().GetClient(ctx, id)
			if err != nil {
				return err
			}
			computed, err := wire.ClientService().ClientHealth(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("Client: %d\n", c.ID)
			fmt.Printf("Name: %s\n", c.Name)
			fmt.Printf("Status: %s\n", c.Status)
			fmt.Printf("Health: %s\n", colorHealth(computed))
			if c.RelationshipHealth != "" && c.RelationshipHealth != computed {
				fmt.Printf("Manual override: %s\n", colorHealth(c.RelationshipHealth))
			}
			if c.Tier != "" {
				fmt.Printf("Tier: %s\n", c.Tier)
			}
			if c.Niche != "" {
				fmt.Printf("Niche: %s\n", c.Niche)
			}
			if c.StartDate != "" {
				fmt.Printf("Start date: %s\n", c.StartDate)
			}
			if c.ShadowAvatar != "" {
				fmt.Printf("Shadow avatar: %s\n", c.ShadowAvatar)
			}
			if c.BleedingNeck != "" {
				fmt.Printf("Bleeding neck: %s\n", c.BleedingNeck)
			}
			fmt.Printf("Onboarding: %s\n", c.OnboardingStatus)

			if len(c.Timeline) > 0 {
				fmt.Println()
				fmt.Println("Timeline (newest first):")
				for _, e := range c.Timeline {
					fmt.Printf("  %s  %s\n", e.Date, e.Event)
				}
			}
			return nil
		},
	}
}

func clientUpdateCmd() *cobra.Command {
	var (
		name, tier, niche, startDate string
		shadowAvatar, bleedingNeck   string
		relationshipHealth, notes    string
		contractValue, ltv           int
	)

	cmd := &cobra.Command{
		Use:   "update [client-id]",
		Short: "Update client fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			var patch client.Patch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("tier") {
				patch.Tier = &tier
			}
			if cmd.Flags().Changed("niche") {
				patch.Niche = &niche
			}
			if cmd.Flags().Changed("start-date") {
				patch.StartDate = &startDate
			}
			if cmd.Flags().Changed("shadow-avatar") {
				patch.ShadowAvatar = &shadowAvatar
			}
			if cmd.Flags().Changed("bleeding-neck") {
				patch.BleedingNeck = &bleedingNeck
			}
			if cmd.Flags().Changed("health") {
				patch.RelationshipHealth = &relationshipHealth
			}
			if cmd.Flags().Changed("notes") {
				patch.Notes = &notes
			}
			if cmd.Flags().Changed("contract-value") {
				patch.ContractValue = &contractValue
			}
			if cmd.Flags().Changed("ltv") {
				patch.LTV = &ltv
			}

			c, err := wire.ClientService().UpdateClient(ctx, id, patch)
			if err != nil {
				return fmt.Errorf("failed to update client: %w", err)
			}

			fmt.Printf("✓ Updated client %d: %s\n", c.ID, c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Client name")
	cmd.Flags().StringVar(&tier, "tier", "", "Service tier")
	cmd.Flags().StringVar(&niche, "niche", "", "Client niche")
	cmd.Flags().StringVar(&startDate, "start-date", "", "Engagement start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&shadowAvatar, "shadow-avatar", "", "Shadow avatar summary")
	cmd.Flags().StringVar(&bleedingNeck, "bleeding-neck", "", "Acute pain point")
	cmd.Flags().StringVar(&relationshipHealth, "health", "", "Manual health override")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().IntVar(&contractValue, "contract-value", 0, "Contract value")
	cmd.Flags().IntVar(&ltv, "ltv", 0, "Lifetime value")

	return cmd
}

func clientStatusCmd() *cobra.Command {
	var withSprint bool

	cmd := &cobra.Command{
		Use:   "status [client-id] [new-status]",
		Short: "Move a client through the lifecycle",
		Long: `Change a client's lifecycle status. The transition fires the matching
side effects: activation creates the onboarding protocol, retainer
conversion archives open tasks, closure cancels them.

Examples:
  agencyos client status 3 "Active Sprint"
  agencyos client status 3 "Active Sprint" --with-sprint
  agencyos client status 3 Retainer`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}
			status := args[1]

			c, err := wire.ClientService().UpdateClient(ctx, id, client.Patch{Status: &status})
			if err != nil {
				return fmt.Errorf("failed to change status: %w", err)
			}
			fmt.Printf("✓ Client %d is now %s\n", c.ID, c.Status)

			if withSprint && status == models.ClientStatusActive {
				ids, err := wire.TaskService().GenerateSprint(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to generate sprint: %w", err)
				}
				fmt.Printf("✓ Generated %d sprint tasks (%d-%d)\n", len(ids), ids[0], ids[len(ids)-1])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withSprint, "with-sprint", false, "Also generate the phase-1 sprint on activation")

	return cmd
}

func clientEventCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "event [client-id] [text]",
		Short: "Add a manual timeline event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			if err := wire.ClientService().AddTimelineEvent(ctx, id, args[1], models.EventTypeManual); err != nil {
				return fmt.Errorf("failed to add event: %w", err)
			}
			fmt.Printf("✓ Event added to client %d timeline\n", id)
			return nil
		},
	}
}

func clientDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [client-id]",
		Short: "Delete a client and everything bound to it",
		Long: `Delete a client from the roster.

WARNING: This is a destructive operation. The client's tasks, posts,
onboarding protocol, and client-scoped vault entries go with it.
Requires the CEO passphrase.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid client id %q", args[0])
			}

			if _, err := requireCEO(ctx, cmd); err != nil {
				return err
			}
			if err := wire.ClientService().DeleteClient(ctx, id); err != nil {
				return err
			}
			fmt.Printf("✓ Client %d deleted\n", id)
			return nil
		},
	}

	addOperatorFlag(cmd)

	return cmd
}
