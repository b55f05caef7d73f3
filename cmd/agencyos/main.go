package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/agencyos/internal/cli"
	"github.com/example/agencyos/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "agencyos",
		Short:   "AgencyOS - operations ledger for the agency war room",
		Version: version.String(),
		Long: `AgencyOS is a CLI tool for running an agency's operations: clients
through their lifecycle, tasks and posts through approval pipelines,
onboarding checklists, and the knowledge vault.`,
	}

	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ClientCmd())
	rootCmd.AddCommand(cli.TaskCmd())
	rootCmd.AddCommand(cli.PostCmd())
	rootCmd.AddCommand(cli.OnboardingCmd())
	rootCmd.AddCommand(cli.VaultCmd())
	rootCmd.AddCommand(cli.StatusCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
