package config

import (
	"fmt"
	"strings"

	"ffc/zonectl/internal/config"
	dnsproviders "ffc/zonectl/internal/dns/providers"
	"ffc/zonectl/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  zonectl config set dns.provider cloudflare\n" +
			"  zonectl config set zone.id_overrides \"example.org=abc123,example.net=def456\"",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

// validators maps key names to optional pre-save validation functions.
// Keys not present in this map rely on the key's own Set validation.
var validators = map[string]func(value string) error{
	"dns.provider": validateProvider,
}

func runSet(cmd *cobra.Command, args []string) error {
	key := util.NormalizeKey(args[0])
	value := args[1]

	spec := config.Lookup(key)
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	if validate, ok := validators[spec.Name]; ok {
		if err := validate(value); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// The value is passed through unnormalized: zone IDs and URLs are
	// case-sensitive, and each key's Set decides its own canonical form.
	if err := spec.Set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, spec.Get(cfg))
	return nil
}

// validateProvider checks that the given name is a registered provider.
func validateProvider(name string) error {
	normalized := util.NormalizeKey(name)
	known := dnsproviders.List()
	for _, p := range known {
		if p == normalized {
			return nil
		}
	}
	return fmt.Errorf("unknown provider %q (registered: %v)", name, known)
}
