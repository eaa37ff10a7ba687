package zone

import (
	"ffc/zonectl/internal/dns/services"
	"ffc/zonectl/internal/util"

	"github.com/spf13/cobra"
)

// PagesCommand returns the "zone pages" subcommand.
func PagesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pages <zone>",
		Short: "Repoint the zone apex at GitHub Pages",
		Long: `Replace the apex's current address records with the chosen GitHub Pages
representation. Conflicting apex records of other representations are
deleted before the new ones are created; everything below the apex is
untouched.

Modes:
  apex-a       A records for the GitHub Pages IPv4 set (default)
  apex-aaaa    AAAA records for the GitHub Pages IPv6 set
  apex-cname   a flattened CNAME to --target

Examples:
  zonectl zone pages example.org
  zonectl zone pages example.org --mode apex-cname --target ffc.github.io --apply`,
		Args: cobra.ExactArgs(1),
		RunE: runPages,
	}

	cmd.Flags().String("mode", string(services.PagesApexA), "Apex representation: apex-a, apex-aaaa, or apex-cname")
	cmd.Flags().String("target", "", "CNAME target host (required for apex-cname)")
	cmd.Flags().Bool("apply", false, "Apply the planned operations (default is dry-run)")

	return cmd
}

func runPages(cmd *cobra.Command, args []string) error {
	zoneName := args[0]
	if err := util.ValidateZoneName(zoneName); err != nil {
		return err
	}

	modeFlag, _ := cmd.Flags().GetString("mode")
	pagesMode, err := services.ParsePagesMode(modeFlag)
	if err != nil {
		return err
	}
	target, _ := cmd.Flags().GetString("target")

	svc, err := newZoneService(cmd)
	if err != nil {
		return err
	}

	opts := services.PagesOptions{Mode: pagesMode, Target: target}
	report, execErr := svc.Pages(cmd.Context(), zoneName, opts, resolveMode(cmd))
	if report != nil {
		printReport(cmd, report)
		recordHistory(cmd, "zone pages", report)
	}
	return execErr
}
