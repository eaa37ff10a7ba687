package auth

import (
	"errors"
	"fmt"
	"strings"

	"ffc/zonectl/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout <provider>",
		Short: "Remove a provider's stored API token",
		Long: `Remove the API token stored in the local keychain for a DNS provider.
Tokens supplied via --token or the environment are unaffected.

Example:
  zonectl auth logout cloudflare`,
		Args: cobra.ExactArgs(1),
		RunE: runLogout,
	}

	return cmd
}

func runLogout(cmd *cobra.Command, args []string) error {
	provider := strings.TrimSpace(args[0])
	if provider == "" {
		return fmt.Errorf("provider is required")
	}

	store := auth.DefaultStore()
	err := store.DeleteToken(provider)
	if errors.Is(err, auth.ErrTokenNotFound) {
		fmt.Fprintf(cmd.OutOrStdout(), "No stored token for provider %s\n", provider)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed token for provider %s\n", provider)
	return nil
}
