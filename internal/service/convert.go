package service

import (
	"github.com/mmynk/chitfund/internal/book"
	"github.com/mmynk/chitfund/internal/calculator"
	"github.com/mmynk/chitfund/pkg/api"
)

func toAPIStats(s calculator.DashboardStats) api.DashboardStats {
	return api.DashboardStats{
		TotalFunds:        s.TotalFunds,
		ActiveLoans:       s.ActiveLoans,
		InterestEarned:    s.InterestEarned,
		Penalties:         s.Penalties,
		MonthlyCollection: s.MonthlyCollection,
		GrowthSavings:     s.GrowthSavings,
		Expenses:          s.Expenses,
		MembersWithLoans:  s.MembersWithLoans,
	}
}

func toAPIAlerts(alerts []calculator.PaymentAlert) []api.PaymentAlert {
	out := make([]api.PaymentAlert, len(alerts))
	for i, a := range alerts {
		out[i] = api.PaymentAlert{
			MemberID:   a.MemberID,
			MemberName: a.MemberName,
			Status:     string(a.Status),
			DueDay:     a.DueDay,
		}
	}
	return out
}

func toAPIGrowth(points []calculator.GrowthPoint) []api.GrowthPoint {
	out := make([]api.GrowthPoint, len(points))
	for i, p := range points {
		out[i] = api.GrowthPoint{
			Month:      p.Month,
			Savings:    p.Savings,
			Cumulative: p.Cumulative,
			Interest:   p.Interest,
		}
	}
	return out
}

func toAPIStatement(stmt calculator.Statement) *api.GetStatementResponse {
	entries := stmt.NewestFirst()
	resp := &api.GetStatementResponse{
		MemberID: stmt.MemberID,
		Balance:  stmt.Balance,
		Entries:  make([]api.StatementEntry, len(entries)),
	}
	for i, e := range entries {
		entry := api.StatementEntry{
			ID:            e.ID,
			Date:          e.Date,
			Type:          string(e.Type),
			Amount:        e.Amount,
			PrincipalPaid: e.PrincipalPaid,
			Interest:      e.Interest,
			Balance:       e.Balance,
			Description:   e.Description,
			Reason:        e.Reason,
		}
		if e.Type == calculator.EntryRateAdjust {
			oldRate, newRate := e.OldRate, e.NewRate
			entry.OldRate = &oldRate
			entry.NewRate = &newRate
		}
		resp.Entries[i] = entry
	}
	return resp
}

func toAPIReport(r calculator.MonthlyReport) api.MonthlyReport {
	out := api.MonthlyReport{
		Month:          r.Month,
		Records:        r.Records,
		AdminPayments:  r.AdminPayments,
		MiscPayments:   r.MiscPayments,
		TotalSavings:   r.Totals.Savings,
		TotalPrincipal: r.Totals.Principal,
		TotalInterest:  r.Totals.Interest,
		TotalPenalty:   r.Totals.Penalty,
		CollectionSum:  r.CollectionSum,
		ExpenseSum:     r.ExpenseSum,
		NetFlow:        r.NetFlow,
		Dues:           make([]api.Due, len(r.Dues)),
	}
	for i, d := range r.Dues {
		out.Dues[i] = api.Due{
			MemberID:    d.MemberID,
			MemberName:  d.MemberName,
			SavingsDue:  d.SavingsDue,
			InterestDue: d.InterestDue,
			TotalDue:    d.TotalDue,
		}
	}
	return out
}

func toAPILoans(loans []calculator.ActiveLoan) []api.ActiveLoan {
	out := make([]api.ActiveLoan, len(loans))
	for i, l := range loans {
		out[i] = api.ActiveLoan{Member: l.Member, DisbursementDate: l.DisbursementDate}
	}
	return out
}

func toAPIExpenses(feed []calculator.Expense) []api.Expense {
	out := make([]api.Expense, len(feed))
	for i, e := range feed {
		out[i] = api.Expense{
			Kind:        string(e.Kind),
			ID:          e.ID,
			Month:       e.Month,
			Amount:      e.Amount,
			Description: e.Description,
			Timestamp:   e.Timestamp,
		}
	}
	return out
}

func toMemberInput(f api.MemberFields) book.MemberInput {
	return book.MemberInput{
		Name:             f.Name,
		Phone:            f.Phone,
		JoiningDate:      f.JoiningDate,
		LoanCap:          f.LoanCap,
		DueDay:           f.DueDay,
		OpeningPrincipal: f.OpeningPrincipal,
		OpeningRate:      f.OpeningRate,
	}
}

func toSettingsInput(r *api.UpdateSettingsRequest) book.SettingsInput {
	return book.SettingsInput{
		Name:                 r.Name,
		MonthlySavingsAmount: r.MonthlySavingsAmount,
		DefaultInterestRate:  r.DefaultInterestRate,
		DueDay:               r.DueDay,
		InitialGrowthSavings: r.InitialGrowthSavings,
		InitialNetFunds:      r.InitialNetFunds,
	}
}

// loanSortField parses the active loan sort key, defaulting to amount.
func loanSortField(s string) calculator.LoanSortField {
	switch calculator.LoanSortField(s) {
	case calculator.SortByName, calculator.SortByDate:
		return calculator.LoanSortField(s)
	default:
		return calculator.SortByAmount
	}
}
