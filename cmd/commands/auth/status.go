package auth

import (
	"errors"
	"fmt"
	"os"

	dnsproviders "ffc/zonectl/internal/dns/providers"
	"ffc/zonectl/internal/services/auth"
	"ffc/zonectl/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show authentication status for providers",
		Long: `Show which DNS providers have stored API tokens, and which token
environment variables are set.

Example:
  zonectl auth status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := auth.DefaultStore()

			// Use TUI in interactive terminal.
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if err := tui.RunAuthStatus(store); err != nil {
					return fmt.Errorf("auth status failed: %w", err)
				}
				return nil
			}

			// Non-interactive fallback.
			providerNames := dnsproviders.List()

			if len(providerNames) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No providers registered.")
				return nil
			}

			for _, provider := range providerNames {
				_, err := store.GetToken(provider)
				switch {
				case err == nil:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in\n", provider)
				case errors.Is(err, auth.ErrTokenNotFound):
					fmt.Fprintf(cmd.OutOrStdout(), "%s: not logged in\n", provider)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", provider, err)
				}
			}

			for _, name := range auth.TokenEnvVars {
				if os.Getenv(name) != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "%s is set\n", name)
				}
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
