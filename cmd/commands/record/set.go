package record

import (
	"strings"

	"ffc/zonectl/internal/dns/domain"
	"ffc/zonectl/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "record set" subcommand.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <zone>",
		Short: "Create or converge a single record",
		Long: `Ensure one record exists with the given value. An absent record is
created, a differing CNAME is updated in place, and an exact match
changes nothing. Address and MX records are additive: a new value is
created alongside existing siblings rather than replacing them.

Examples:
  zonectl record set example.org --type TXT --name @ --content "v=spf1 -all"
  zonectl record set example.org --type CNAME --name www --content ffc.github.io --apply
  zonectl record set example.org --type MX --name @ --content mx.example.net --priority 10 --apply`,
		Args: cobra.ExactArgs(1),
		RunE: runSet,
	}

	cmd.Flags().String("type", "", "Record type (A, AAAA, CNAME, MX, TXT)")
	cmd.Flags().String("name", "", "Record name relative to the zone (@ for the apex)")
	cmd.Flags().String("content", "", "Record value")
	cmd.Flags().Int("ttl", 0, "TTL in seconds (default 120; 1 for provider-automatic)")
	cmd.Flags().Int("priority", 0, "MX preference (default 10 when unset)")
	cmd.Flags().Bool("proxied", false, "Serve the record through the provider proxy")
	cmd.Flags().String("comment", "", "Provider-side comment on the record")
	cmd.Flags().Bool("apply", false, "Apply the planned operations (default is dry-run)")

	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("content")

	return cmd
}

func runSet(cmd *cobra.Command, args []string) error {
	zoneName := args[0]
	if err := util.ValidateZoneName(zoneName); err != nil {
		return err
	}

	typeFlag, _ := cmd.Flags().GetString("type")
	nameFlag, _ := cmd.Flags().GetString("name")
	content, _ := cmd.Flags().GetString("content")
	ttl, _ := cmd.Flags().GetInt("ttl")
	comment, _ := cmd.Flags().GetString("comment")

	if err := util.ValidateRecordName(nameFlag); err != nil {
		return err
	}

	spec := domain.RecordSpec{
		Type:    domain.RecordType(strings.ToUpper(strings.TrimSpace(typeFlag))),
		Name:    nameFlag,
		Content: content,
		TTL:     ttl,
		Comment: comment,
	}
	if cmd.Flags().Changed("priority") {
		prio, _ := cmd.Flags().GetInt("priority")
		spec.Priority = domain.IntPtr(prio)
	}
	if cmd.Flags().Changed("proxied") {
		proxied, _ := cmd.Flags().GetBool("proxied")
		spec.Proxied = domain.BoolPtr(proxied)
	}

	svc, err := newRecordService(cmd)
	if err != nil {
		return err
	}

	report, execErr := svc.EnsureRecord(cmd.Context(), zoneName, spec, resolveMode(cmd))
	if report != nil {
		printReport(cmd, report)
		recordHistory(cmd, "record set", report)
	}
	return execErr
}
