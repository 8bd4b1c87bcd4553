package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/chitfund/internal/calculator"
	"github.com/mmynk/chitfund/internal/models"
)

// NewPrinter returns a number printer for the BCP 47 tag, falling back to
// English for unknown tags.
func NewPrinter(tag string) *message.Printer {
	lang, err := language.Parse(tag)
	if err != nil {
		lang = language.English
	}
	return message.NewPrinter(lang)
}

// StatementFilename is the download name of a member's printable statement.
func StatementFilename(member models.Member) string {
	return fmt.Sprintf("Statement_%s.txt", strings.ReplaceAll(member.Name, " ", "_"))
}

// WriteStatement renders a printable loan statement, newest entry first.
func WriteStatement(w io.Writer, p *message.Printer, group string, member models.Member, stmt calculator.Statement) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, group)
	fmt.Fprintf(bw, "Loan statement: %s (%s)\n", member.Name, member.Phone)
	fmt.Fprintf(bw, "Outstanding principal: %s at %s%% per month\n", amount(p, stmt.Balance), member.LoanInterestRate)
	fmt.Fprintf(bw, "Loan cap: %s\n", amount(p, member.LoanCap))
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "%-10s  %-12s  %12s  %12s  %s\n", "DATE", "TYPE", "CHANGE", "BALANCE", "DETAILS")
	entries := stmt.NewestFirst()
	if len(entries) == 0 {
		fmt.Fprintln(bw, "No loan activity.")
	}
	for _, e := range entries {
		details := e.Description
		switch {
		case e.Type == calculator.EntryRepayment && e.Interest.IsPositive():
			details += fmt.Sprintf(" (interest %s)", amount(p, e.Interest))
		case e.Type == calculator.EntryRateAdjust && e.Reason != "":
			details += fmt.Sprintf(" (%s)", e.Reason)
		}
		fmt.Fprintf(bw, "%-10s  %-12s  %12s  %12s  %s\n",
			e.Date.Format(dateLayout), e.Type, signed(p, e.Amount), amount(p, e.Balance), details)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write statement: %w", err)
	}
	return nil
}

// amount formats d to two places with the integer part grouped for the
// printer's locale. The digits come from the decimal itself, never a float.
func amount(p *message.Printer, d decimal.Decimal) string {
	d = d.Round(2)
	if d.IsNegative() {
		return "-" + amount(p, d.Neg())
	}
	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return d.StringFixed(2)
	}
	return p.Sprintf("%d", n) + decimalSeparator(p) + frac
}

func decimalSeparator(p *message.Printer) string {
	r := []rune(p.Sprintf("%.1f", 0.5))
	if len(r) < 3 {
		return "."
	}
	return string(r[1 : len(r)-1])
}

func signed(p *message.Printer, d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return "+" + amount(p, d)
	case d.IsNegative():
		return "-" + amount(p, d.Neg())
	default:
		return amount(p, d)
	}
}
