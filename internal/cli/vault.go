package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/agencyos/internal/core/vault"
	"github.com/example/agencyos/internal/ports/primary"
	"github.com/example/agencyos/internal/wire"
)

// VaultCmd returns the vault command
func VaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Manage the knowledge vault",
		Long:  "SOPs, AI prompts, brand standards, and client knowledge entries",
	}

	cmd.AddCommand(vaultAddCmd())
	cmd.AddCommand(vaultListCmd())
	cmd.AddCommand(vaultShowCmd())
	cmd.AddCommand(vaultUpdateCmd())
	cmd.AddCommand(vaultCopyCmd())
	cmd.AddCommand(vaultDeleteCmd())

	return cmd
}

func vaultAddCmd() *cobra.Command {
	var req primary.CreateEntryRequest
	var contentFile string

	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a knowledge entry",
		Long: `Add an entry to the vault. AI prompts with [[VARIABLE]] placeholders
get their variable list extracted automatically.

Examples:
  agencyos vault add "CONTENT PRODUCTION" --category sop --linked-types "Content Production"
  agencyos vault add "Hook Writer" --category ai-prompt --content-file prompt.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			req.Title = args[0]

			if contentFile != "" {
				data, err := os.ReadFile(contentFile)
				if err != nil {
					return fmt.Errorf("failed to read content file: %w", err)
				}
				req.Content = string(data)
			}

			entry, err := wire.VaultService().CreateEntry(ctx, req)
			if err != nil {
				return fmt.Errorf("failed to add entry: %w", err)
			}

			fmt.Printf("✓ Added vault entry %d: %s [%s]\n", entry.ID, entry.Title, entry.Category)
			if len(entry.PromptVariables) > 0 {
				fmt.Printf("  Variables: %s\n", strings.Join(entry.PromptVariables, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Category, "category", "", "Category: sop, ai-prompt, client-knowledge-base, brand-standard (required)")
	cmd.Flags().StringVar(&req.Pillar, "pillar", "", "Content pillar")
	cmd.Flags().StringSliceVar(&req.Tags, "tags", nil, "Tags")
	cmd.Flags().StringVar(&req.Status, "status", "", "Status (defaults to active)")
	cmd.Flags().StringVar(&req.Content, "content", "", "Entry content")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "Read content from a file")
	cmd.Flags().StringVar(&req.PromptTool, "tool", "", "Target tool for AI prompts")
	cmd.Flags().StringVar(&req.UsageNotes, "usage", "", "Usage notes")
	cmd.Flags().StringSliceVar(&req.LinkedTaskTypes, "linked-types", nil, "Task categories this SOP covers")
	cmd.Flags().IntVar(&req.LinkedClientID, "client", 0, "Linked client id")
	cmd.MarkFlagRequired("category")

	return cmd
}

func vaultListCmd() *cobra.Command {
	var filters primary.VaultFilters

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List vault entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			entries, err := wire.VaultService().ListEntries(ctx, filters)
			if err != nil {
				return fmt.Errorf("failed to list entries: %w", err)
			}

			if len(entries) == 0 {
				fmt.Println("No vault entries found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSTATUS\tCOPIES")
			fmt.Fprintln(w, "--\t-----\t--------\t------\t------")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
					e.ID, e.Title, e.Category, e.Status, e.CopyCount)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&filters.Status, "status", "", "Filter by status")
	cmd.Flags().IntVar(&filters.ClientID, "client", 0, "Filter by linked client")

	return cmd
}

func vaultShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [entry-id]",
		Short: "Show a vault entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}

			e, err := wire.VaultService().GetEntry(ctx, id)
			if err != nil {
				return err
			}

			fmt.Printf("Entry: %d\n", e.ID)
			fmt.Printf("Title: %s\n", e.Title)
			fmt.Printf("Category: %s\n", e.Category)
			fmt.Printf("Status: %s\n", e.Status)
			if len(e.Tags) > 0 {
				fmt.Printf("Tags: %s\n", strings.Join(e.Tags, ", "))
			}
			if len(e.LinkedTaskTypes) > 0 {
				fmt.Printf("Covers: %s\n", strings.Join(e.LinkedTaskTypes, ", "))
			}
			if len(e.PromptVariables) > 0 {
				fmt.Printf("Variables: %s\n", strings.Join(e.PromptVariables, ", "))
			}
			if e.LinkedClientID != 0 {
				fmt.Printf("Client: %d\n", e.LinkedClientID)
			}
			fmt.Printf("Copies: %d\n", e.CopyCount)
			if e.Content != "" {
				fmt.Println()
				fmt.Println(e.Content)
			}
			return nil
		},
	}
}

func vaultUpdateCmd() *cobra.Command {
	var title, status, content, pillar string

	cmd := &cobra.Command{
		Use:   "update [entry-id]",
		Short: "Update a vault entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}

			var patch vault.Patch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("status") {
				patch.Status = &status
			}
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}
			if cmd.Flags().Changed("pillar") {
				patch.Pillar = &pillar
			}

			e, err := wire.VaultService().UpdateEntry(ctx, id, patch)
			if err != nil {
				return fmt.Errorf("failed to update entry: %w", err)
			}
			fmt.Printf("✓ Updated vault entry %d: %s\n", e.ID, e.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Entry title")
	cmd.Flags().StringVar(&status, "status", "", "Status (active, draft, archived)")
	cmd.Flags().StringVar(&content, "content", "", "Entry content")
	cmd.Flags().StringVar(&pillar, "pillar", "", "Content pillar")

	return cmd
}

func vaultCopyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy [entry-id]",
		Short: "Print an entry's content and count the usage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}

			content, err := wire.VaultService().CopyEntry(ctx, id)
			if err != nil {
				return err
			}
			fmt.Println(content)
			return nil
		},
	}
}

func vaultDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete [entry-id]",
		Short: "Delete a vault entry",
		Long: `Delete a vault entry.

WARNING: This is a destructive operation and requires the CEO passphrase.
Tasks referencing the entry keep their reference text; it simply stops
resolving.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid entry id %q", args[0])
			}

			if _, err := requireCEO(ctx, cmd); err != nil {
				return err
			}
			if err := wire.VaultService().DeleteEntry(ctx, id); err != nil {
				return err
			}
			fmt.Printf("✓ Vault entry %d deleted\n", id)
			return nil
		},
	}

	addOperatorFlag(cmd)

	return cmd
}
