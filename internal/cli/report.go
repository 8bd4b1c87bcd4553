package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/chitfund/internal/auth"
	"github.com/mmynk/chitfund/internal/export"
	"github.com/mmynk/chitfund/internal/models"
)

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "report <YYYY-MM>",
		Short: "Write the monthly collection report",
		Long: `Write the collection and expense report for one month.

Text format produces the same CSV as the web download; json format
produces the report with totals and outstanding dues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			month, err := models.ParseMonth(args[0])
			if err != nil {
				return err
			}

			b, closeBook, err := openBook(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer closeBook()

			report, err := b.MonthlyReport(cmd.Context(), auth.AdminUser, month)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			if rootOpts.Format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}

			view, err := b.View(cmd.Context(), auth.AdminUser)
			if err != nil {
				return err
			}
			names := make(map[string]string, len(view.Members))
			for _, m := range view.Members {
				names[m.ID] = m.Name
			}
			if err := export.WriteMonthlyReportCSV(out, report, names); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	return cmd
}
