package auth

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	dnsproviders "ffc/zonectl/internal/dns/providers"
	"ffc/zonectl/internal/services/auth"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <provider>",
		Short: "Store an API token for a provider",
		Long: `Store an API token for a DNS provider in the local keychain. The token
is checked against the provider API first; pass --no-verify to store it
unchecked.

Example:
  zonectl auth login cloudflare`,
		Args: cobra.ExactArgs(1),
		RunE: runLogin,
	}

	cmd.Flags().String("token", "", "API token (optional, overrides prompt)")
	cmd.Flags().Bool("no-verify", false, "Skip verifying the token against the provider API")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	provider := strings.TrimSpace(args[0])
	if provider == "" {
		return fmt.Errorf("provider is required")
	}

	token, err := cmd.Flags().GetString("token")
	if err != nil {
		return err
	}

	token = strings.TrimSpace(token)
	if token == "" {
		fmt.Fprint(cmd.OutOrStdout(), "Enter API token: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		token = strings.TrimSpace(string(raw))
	}

	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	noVerify, _ := cmd.Flags().GetBool("no-verify")
	if !noVerify {
		if err := verifyToken(cmd, provider, token); err != nil {
			return err
		}
	}

	store := auth.DefaultStore()
	if err := store.SetToken(provider, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved token for provider %s\n", provider)
	return nil
}

// verifyToken checks the token against the provider API before it is
// stored. A provider zonectl has no client for cannot be checked and
// passes.
func verifyToken(cmd *cobra.Command, provider, token string) error {
	p, err := dnsproviders.Get(provider, dnsproviders.Config{Token: token})
	if err != nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
	defer cancel()

	var verifyErr error
	check := func() { _, verifyErr = p.ListZones(ctx) }

	if term.IsTerminal(int(os.Stdout.Fd())) {
		accessible := os.Getenv("ACCESSIBLE") != ""
		spinErr := spinner.New().
			Title("Verifying token...").
			Accessible(accessible).
			Output(cmd.ErrOrStderr()).
			Action(check).
			Run()
		if spinErr != nil {
			return spinErr
		}
	} else {
		check()
	}

	if verifyErr != nil {
		return fmt.Errorf("token verification failed: %w", verifyErr)
	}
	return nil
}
