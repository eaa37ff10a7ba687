package zone

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/dns/reconcile"
	"ffc/zonectl/internal/util"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// PurgeCommand returns the "zone purge" subcommand.
func PurgeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge <zone>",
		Short: "Delete records of the given types from a zone",
		Long: `Plan deletes for every record of the given types whose name is not on
the keep list. With no --type the purge covers all managed types (A,
AAAA, CNAME, MX, TXT). Keep names may be relative to the zone.

Applying an interactive purge shows the plan and asks for confirmation
first; pass --yes to skip the prompt in scripts.

Examples:
  zonectl zone purge example.org --type TXT
  zonectl zone purge example.org --keep www --keep @ --apply`,
		Args: cobra.ExactArgs(1),
		RunE: runPurge,
	}

	cmd.Flags().StringSlice("type", nil, "Record type to purge (repeatable; default all managed types)")
	cmd.Flags().StringSlice("keep", nil, "Record name to keep (repeatable; @ for the apex)")
	cmd.Flags().Bool("apply", false, "Apply the planned operations (default is dry-run)")
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	return cmd
}

func runPurge(cmd *cobra.Command, args []string) error {
	zoneName := args[0]
	if err := util.ValidateZoneName(zoneName); err != nil {
		return err
	}

	typeFlags, _ := cmd.Flags().GetStringSlice("type")
	keep, _ := cmd.Flags().GetStringSlice("keep")
	yes, _ := cmd.Flags().GetBool("yes")

	types := make([]domain.RecordType, 0, len(typeFlags))
	for _, t := range typeFlags {
		types = append(types, domain.RecordType(strings.ToUpper(strings.TrimSpace(t))))
	}

	svc, err := newZoneService(cmd)
	if err != nil {
		return err
	}

	mode := resolveMode(cmd)
	if mode == reconcile.Apply && !yes && term.IsTerminal(int(os.Stdin.Fd())) {
		preview, err := svc.Purge(cmd.Context(), zoneName, types, keep, reconcile.DryRun)
		if err != nil {
			return err
		}
		printReport(cmd, preview)
		if preview.Pending() == 0 {
			return nil
		}

		confirmed, err := confirmPurge(preview.Pending(), zoneName)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	report, execErr := svc.Purge(cmd.Context(), zoneName, types, keep, mode)
	if report != nil {
		printReport(cmd, report)
		recordHistory(cmd, "zone purge", report)
	}
	return execErr
}

func confirmPurge(count int, zoneName string) (bool, error) {
	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete %d record(s) from %s?", count, zoneName)).
			Description("Deleted records cannot be recovered.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&confirmed),
	)).WithAccessible(os.Getenv("ACCESSIBLE") != "")

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}
