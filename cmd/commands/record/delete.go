package record

import (
	"errors"
	"fmt"
	"os"

	"ffc/zonectl/internal/dns/reconcile"
	"ffc/zonectl/internal/util"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// DeleteCommand returns the "record delete" subcommand.
func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <zone> <record-id>",
		Short: "Delete a record by its provider ID",
		Long: `Delete one record by ID. The record is looked up first so the plan shows
what it removes; deleting an ID that is already gone is a no-op.

Applying interactively shows the plan and asks for confirmation first;
pass --yes to skip the prompt in scripts.

Examples:
  zonectl record delete example.org 9c1d8ee2c45
  zonectl record delete example.org 9c1d8ee2c45 --apply`,
		Args: cobra.ExactArgs(2),
		RunE: runDelete,
	}

	cmd.Flags().Bool("apply", false, "Apply the planned operations (default is dry-run)")
	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	zoneName, recordID := args[0], args[1]
	if err := util.ValidateZoneName(zoneName); err != nil {
		return err
	}

	svc, err := newRecordService(cmd)
	if err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	mode := resolveMode(cmd)
	if mode == reconcile.Apply && !yes && term.IsTerminal(int(os.Stdin.Fd())) {
		preview, err := svc.DeleteRecord(cmd.Context(), zoneName, recordID, reconcile.DryRun)
		if err != nil {
			return err
		}
		printReport(cmd, preview)

		confirmed, err := confirmDelete(recordID, zoneName)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	report, execErr := svc.DeleteRecord(cmd.Context(), zoneName, recordID, mode)
	if report != nil {
		printReport(cmd, report)
		recordHistory(cmd, "record delete", report)
	}
	return execErr
}

func confirmDelete(recordID, zoneName string) (bool, error) {
	confirmed := false
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Delete record %s from %s?", recordID, zoneName)).
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
