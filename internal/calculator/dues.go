package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/models"
)

var hundred = decimal.NewFromInt(100)

// SuggestedInterest is one month of interest on the member's current principal.
func SuggestedInterest(member *models.Member) decimal.Decimal {
	return member.CurrentLoanPrincipal.Mul(member.LoanInterestRate).Div(hundred)
}

// Due is the amount a member still owes for a month.
type Due struct {
	MemberID    string
	MemberName  string
	SavingsDue  decimal.Decimal
	InterestDue decimal.Decimal
	TotalDue    decimal.Decimal
}

// OutstandingDues lists members without any payment record in month whose
// estimated due is positive.
//
// Interest is estimated from the member's current principal and rate, not
// the terms in force during month, so estimates for past months follow
// today's loan terms.
func OutstandingDues(data *models.GroupData, month models.Month) []Due {
	target := data.SavingsTarget(month)
	var dues []Due
	for i := range data.Members {
		m := &data.Members[i]
		if HasPaid(data, m.ID, month) {
			continue
		}
		interest := SuggestedInterest(m)
		total := target.Add(interest)
		if !total.IsPositive() {
			continue
		}
		dues = append(dues, Due{
			MemberID:    m.ID,
			MemberName:  m.Name,
			SavingsDue:  target,
			InterestDue: interest,
			TotalDue:    total,
		})
	}
	return dues
}

// MonthlyReport is the collection and expense summary of one month.
type MonthlyReport struct {
	Month         models.Month
	Records       []models.PaymentRecord
	AdminPayments []models.AdminPayment
	MiscPayments  []models.MiscPayment
	Totals        Totals
	CollectionSum decimal.Decimal
	ExpenseSum    decimal.Decimal
	NetFlow       decimal.Decimal
	Dues          []Due
}

// BuildMonthlyReport summarizes month as seen by viewer. Members see only
// their own records and dues and no expenses.
func BuildMonthlyReport(data *models.GroupData, month models.Month, viewer models.AuthUser) MonthlyReport {
	report := MonthlyReport{
		Month:   month,
		Records: RecordsForMonth(RecordsVisibleTo(data, viewer), month),
	}

	if viewer.IsAdmin() {
		for _, p := range data.AdminPayments {
			if p.Month == month {
				report.AdminPayments = append(report.AdminPayments, p)
				report.ExpenseSum = report.ExpenseSum.Add(p.Amount)
			}
		}
		for _, p := range data.MiscPayments {
			if p.Month == month {
				report.MiscPayments = append(report.MiscPayments, p)
				report.ExpenseSum = report.ExpenseSum.Add(p.Amount)
			}
		}
	}

	for _, d := range OutstandingDues(data, month) {
		if viewer.CanView(d.MemberID) {
			report.Dues = append(report.Dues, d)
		}
	}

	report.Totals = SumRecords(report.Records)
	report.CollectionSum = report.Totals.Collection()
	report.NetFlow = report.CollectionSum.Sub(report.ExpenseSum)
	return report
}
