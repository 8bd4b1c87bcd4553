package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mmynk/chitfund/internal/auth"
	"github.com/mmynk/chitfund/internal/export"
)

// NewStatementCommand creates the statement command.
func NewStatementCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "statement <member-id|phone>",
		Short: "Print a member's loan statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			b, closeBook, err := openBook(ctx, rootOpts)
			if err != nil {
				return err
			}
			defer closeBook()

			id := args[0]
			if m, ok := b.FindMemberByPhone(id); ok {
				id = m.ID
			}
			member, err := b.Member(ctx, auth.AdminUser, id)
			if err != nil {
				return err
			}
			stmt, err := b.Statement(ctx, auth.AdminUser, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(stmt)
			}
			group := b.Snapshot().Settings.Name
			return export.WriteStatement(out, export.NewPrinter(rootOpts.Locale), group, member, stmt)
		},
	}
}
