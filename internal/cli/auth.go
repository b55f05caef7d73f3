package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/agencyos/internal/ctxutil"
	"github.com/example/agencyos/internal/models"
	"github.com/example/agencyos/internal/wire"
)

// addOperatorFlag registers the passphrase flag used to resolve the
// operator level on mutating commands.
func addOperatorFlag(cmd *cobra.Command) {
	cmd.Flags().String("phrase", "", "Capability passphrase (defaults to the team level)")
}

// resolveOperator maps the command's passphrase flag to an operator level.
// No phrase means team-level capability; a wrong phrase is an error, not a
// silent downgrade.
func resolveOperator(ctx context.Context, cmd *cobra.Command) (string, error) {
	phrase, _ := cmd.Flags().GetString("phrase")
	if phrase == "" {
		return models.AuthorTeam, nil
	}
	return wire.WorkspaceService().ResolveOperator(ctx, phrase)
}

// operatorContext resolves the operator and returns a context carrying it,
// so services can attribute the work they record.
func operatorContext(cmd *cobra.Command) (context.Context, error) {
	ctx := context.Background()
	operator, err := resolveOperator(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return ctxutil.WithOperator(ctx, operator), nil
}

// requireCEO resolves the operator and fails unless it is the CEO level.
func requireCEO(ctx context.Context, cmd *cobra.Command) (string, error) {
	operator, err := resolveOperator(ctx, cmd)
	if err != nil {
		return "", err
	}
	if operator != models.AuthorCEO {
		return "", fmt.Errorf("this operation requires the CEO passphrase (use --phrase)")
	}
	return operator, nil
}
