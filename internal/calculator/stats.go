package calculator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/models"
)

// Totals aggregates the components of a set of payment records.
type Totals struct {
	Savings   decimal.Decimal
	Principal decimal.Decimal
	Interest  decimal.Decimal
	Penalty   decimal.Decimal
}

// Collection returns the total cash collected.
func (t Totals) Collection() decimal.Decimal {
	return t.Savings.Add(t.Principal).Add(t.Interest).Add(t.Penalty)
}

// SumRecords totals each component across records.
func SumRecords(records []models.PaymentRecord) Totals {
	var t Totals
	for _, r := range records {
		t.Savings = t.Savings.Add(r.Savings)
		t.Principal = t.Principal.Add(r.PrincipalPaid)
		t.Interest = t.Interest.Add(r.InterestPaid)
		t.Penalty = t.Penalty.Add(r.Penalty)
	}
	return t
}

// TotalExpenses sums admin rewards and miscellaneous expenses.
func TotalExpenses(data *models.GroupData) decimal.Decimal {
	total := decimal.Zero
	for _, p := range data.AdminPayments {
		total = total.Add(p.Amount)
	}
	for _, p := range data.MiscPayments {
		total = total.Add(p.Amount)
	}
	return total
}

// TotalDisbursed sums every loan ever issued, opening balances included.
func TotalDisbursed(data *models.GroupData) decimal.Decimal {
	total := decimal.Zero
	for _, l := range data.LoansIssued {
		total = total.Add(l.Amount)
	}
	return total
}

// NetFunds returns the group's liquid cash:
//
//	initialNetFunds + collections - expenses - loans disbursed
//
// The result may be negative and is never clamped.
func NetFunds(data *models.GroupData) decimal.Decimal {
	return data.Settings.InitialNetFunds.
		Add(SumRecords(data.Records).Collection()).
		Sub(TotalExpenses(data)).
		Sub(TotalDisbursed(data))
}

// GrowthSavings returns the baseline plus all savings contributions.
// Interest and penalties are separate income and are not included.
func GrowthSavings(data *models.GroupData) decimal.Decimal {
	return data.Settings.InitialGrowthSavings.Add(SumRecords(data.Records).Savings)
}

// ActiveLoanBurden sums the outstanding principal of all members.
func ActiveLoanBurden(data *models.GroupData) decimal.Decimal {
	total := decimal.Zero
	for _, m := range data.Members {
		total = total.Add(m.CurrentLoanPrincipal)
	}
	return total
}

// RecordsVisibleTo returns the payment records the viewer may see.
func RecordsVisibleTo(data *models.GroupData, viewer models.AuthUser) []models.PaymentRecord {
	if viewer.IsAdmin() {
		return data.Records
	}
	var out []models.PaymentRecord
	for _, r := range data.Records {
		if viewer.CanView(r.MemberID) {
			out = append(out, r)
		}
	}
	return out
}

// RecordsForMonth filters records to one month.
func RecordsForMonth(records []models.PaymentRecord, month models.Month) []models.PaymentRecord {
	var out []models.PaymentRecord
	for _, r := range records {
		if r.Month == month {
			out = append(out, r)
		}
	}
	return out
}

// DashboardStats are the headline figures of the dashboard.
type DashboardStats struct {
	// TotalFunds is NetFunds for admins and the member's own contributions
	// for members.
	TotalFunds        decimal.Decimal
	ActiveLoans       decimal.Decimal
	InterestEarned    decimal.Decimal
	Penalties         decimal.Decimal
	MonthlyCollection decimal.Decimal
	GrowthSavings     decimal.Decimal
	Expenses          decimal.Decimal
	MembersWithLoans  int
}

// Dashboard computes the dashboard figures as seen by viewer. Members only
// see their own records and never the carry-over baselines or expenses.
func Dashboard(data *models.GroupData, viewer models.AuthUser, today time.Time) DashboardStats {
	records := RecordsVisibleTo(data, viewer)
	totals := SumRecords(records)
	monthly := SumRecords(RecordsForMonth(records, models.MonthOf(today)))

	stats := DashboardStats{
		InterestEarned:    totals.Interest,
		Penalties:         totals.Penalty,
		MonthlyCollection: monthly.Collection(),
	}

	if viewer.IsAdmin() {
		stats.TotalFunds = NetFunds(data)
		stats.GrowthSavings = GrowthSavings(data)
		stats.Expenses = TotalExpenses(data)
		stats.ActiveLoans = ActiveLoanBurden(data)
		for _, m := range data.Members {
			if m.HasActiveLoan() {
				stats.MembersWithLoans++
			}
		}
		return stats
	}

	stats.TotalFunds = totals.Collection()
	stats.GrowthSavings = totals.Savings
	if m := data.FindMember(viewer.MemberID); m != nil {
		stats.ActiveLoans = m.CurrentLoanPrincipal
		if m.HasActiveLoan() {
			stats.MembersWithLoans = 1
		}
	}
	return stats
}
