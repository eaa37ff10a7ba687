package record

import (
	"fmt"
	"os"

	"ffc/zonectl/internal/config"
	dnsproviders "ffc/zonectl/internal/dns/providers"
	"ffc/zonectl/internal/dns/reconcile"
	"ffc/zonectl/internal/dns/services"
	"ffc/zonectl/internal/history"
	"ffc/zonectl/internal/retry"
	"ffc/zonectl/internal/services/auth"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewCommand returns the top-level "record" Cobra command with all subcommands attached.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Manage individual DNS records",
		Long: `List, upsert, delete, and browse records in a zone. Set and delete plan
first and change nothing without --apply.`,
		PersistentPreRunE: resolveProviderFlag,
		SilenceUsage:      true,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(SetCommand())
	cmd.AddCommand(DeleteCommand())
	cmd.AddCommand(BrowseCommand())

	cmd.PersistentFlags().String("provider", "", "DNS provider to use (overrides the configured default)")
	cmd.PersistentFlags().String("token", "", "API token (overrides environment and keyring)")
	cmd.PersistentFlags().String("base-url", "", "Override the provider API base URL")

	return cmd
}

// resolveProviderFlag ensures the --provider flag has a value, falling
// back to the dns.provider config key and then the built-in default when
// the flag was not explicitly set.
func resolveProviderFlag(cmd *cobra.Command, args []string) error {
	if cmd.Flag("provider").Changed {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	return cmd.Flag("provider").Value.Set(cfg.Provider())
}

// newRecordService builds the service stack for one command invocation.
func newRecordService(cmd *cobra.Command) (*services.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	providerName := cmd.Flag("provider").Value.String()
	flagToken := cmd.Flag("token").Value.String()

	var prompt auth.PromptFunc
	if term.IsTerminal(int(os.Stdin.Fd())) {
		prompt = auth.TerminalPrompt
	}
	cred, err := auth.ResolveToken(providerName, flagToken, auth.DefaultStore(), prompt)
	if err != nil {
		return nil, err
	}

	baseURL := cmd.Flag("base-url").Value.String()
	if baseURL == "" {
		baseURL = cfg.APIBaseURL
	}

	provider, err := dnsproviders.Get(providerName, dnsproviders.Config{
		Token:   cred.Token,
		BaseURL: baseURL,
	})
	if err != nil {
		return nil, err
	}
	provider = dnsproviders.WithRetry(provider, retry.DefaultConfig())

	overrides, err := cfg.ZoneIDs()
	if err != nil {
		return nil, err
	}
	return services.New(provider, services.WithZoneIDOverrides(overrides)), nil
}

// resolveMode maps the --apply flag to an execution mode.
func resolveMode(cmd *cobra.Command) reconcile.Mode {
	if apply, _ := cmd.Flags().GetBool("apply"); apply {
		return reconcile.Apply
	}
	return reconcile.DryRun
}

// recordHistory persists the mutations an applied report describes,
// best-effort.
func recordHistory(cmd *cobra.Command, command string, report *reconcile.Report) {
	if report == nil || report.Mode != reconcile.Apply {
		return
	}

	repo, err := history.Open()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: history not recorded: %v\n", err)
		return
	}
	defer repo.Close()

	rec := history.NewRecorder(repo, command, os.Args[1:])
	if err := rec.RecordReport(report); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: history not recorded: %v\n", err)
	}
}

// printReport renders a reconciliation report, one status line per
// operation plus the summary line.
func printReport(cmd *cobra.Command, report *reconcile.Report) {
	for _, w := range report.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}

	out := cmd.OutOrStdout()
	for _, res := range report.Results {
		line := res.Op.Describe()
		if res.Op.Rationale != "" {
			line = fmt.Sprintf("%s (%s)", line, res.Op.Rationale)
		}
		if res.Err != nil {
			line = fmt.Sprintf("%s: %v", line, res.Err)
		}
		fmt.Fprintf(out, "  %-8s %s\n", res.Status, line)
	}

	fmt.Fprintln(out, report.Summary())
}
