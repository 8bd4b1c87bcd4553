// Package export renders ledger reports for download and printing.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/mmynk/chitfund/internal/calculator"
	"github.com/mmynk/chitfund/internal/models"
)

const dateLayout = "2006-01-02"

var (
	recordHeader  = []string{"Member Name", "Savings", "Principal Paid", "Interest Paid", "Penalty", "Total", "Date Recorded"}
	expenseHeader = []string{"EXPENSES - Category", "Description", "Amount", "Date"}
)

// MonthlyReportFilename is the download name of the CSV for month.
func MonthlyReportFilename(month models.Month) string {
	return fmt.Sprintf("Group_Report_%s.csv", month)
}

// WriteMonthlyReportCSV writes one row per payment record, a blank line, and
// then the month's admin and misc expenses. names maps member IDs to display
// names.
func WriteMonthlyReportCSV(w io.Writer, report calculator.MonthlyReport, names map[string]string) error {
	cw := csv.NewWriter(w)

	rows := [][]string{recordHeader}
	for _, r := range report.Records {
		name, ok := names[r.MemberID]
		if !ok {
			name = "Unknown"
		}
		rows = append(rows, []string{
			name,
			r.Savings.StringFixed(2),
			r.PrincipalPaid.StringFixed(2),
			r.InterestPaid.StringFixed(2),
			r.Penalty.StringFixed(2),
			r.Total().StringFixed(2),
			r.Timestamp.Format(dateLayout),
		})
	}

	rows = append(rows, nil, expenseHeader)
	for _, p := range report.AdminPayments {
		rows = append(rows, []string{string(calculator.ExpenseAdminReward), p.Description, p.Amount.StringFixed(2), p.Timestamp.Format(dateLayout)})
	}
	for _, p := range report.MiscPayments {
		rows = append(rows, []string{string(calculator.ExpenseMisc), p.Description, p.Amount.StringFixed(2), p.Timestamp.Format(dateLayout)})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write report csv: %w", err)
	}
	return nil
}
