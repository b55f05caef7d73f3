package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/agencyos/internal/config"
	"github.com/example/agencyos/internal/db"
	"github.com/example/agencyos/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var remoteURL, remoteKey string

	cmd := &cobra.Command{
		Use:   "init [ceo-phrase] [team-phrase]",
		Short: "Initialize the workspace",
		Long: `Initialize a fresh workspace: seed the knowledge vault and store the
capability passphrases. The CEO phrase unlocks approval gates; the team
phrase covers day-to-day operations.

Examples:
  agencyos init "war room" "boiler room"
  agencyos init "war room" "boiler room" --remote-url https://example.supabase.co/rest/v1/workspace`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if err := wire.WorkspaceService().Initialize(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("failed to initialize workspace: %w", err)
			}

			if remoteURL != "" {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("failed to resolve working directory: %w", err)
				}
				cfg := &config.Config{
					Version:   "1",
					RemoteURL: remoteURL,
					RemoteKey: remoteKey,
				}
				if err := config.SaveConfig(cwd, cfg); err != nil {
					return err
				}
			}

			fmt.Println("✓ Workspace initialized")
			fmt.Println("  Vault seeded with standard SOPs, prompts, and brand standards")
			if dbPath, err := db.GetDBPath(); err == nil {
				fmt.Printf("  Database: %s\n", dbPath)
			}
			if remoteURL != "" {
				fmt.Printf("  Remote workspace: %s\n", remoteURL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&remoteURL, "remote-url", "", "Shared workspace endpoint")
	cmd.Flags().StringVar(&remoteKey, "remote-key", "", "API key for the shared workspace")

	return cmd
}
