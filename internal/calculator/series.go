package calculator

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/models"
)

// GrowthPoint is one month of the savings growth chart.
type GrowthPoint struct {
	Month      models.Month
	Savings    decimal.Decimal
	Cumulative decimal.Decimal
	Interest   decimal.Decimal
}

// GrowthSeries returns per-month savings and interest with a running total
// of savings, in ascending month order.
func GrowthSeries(records []models.PaymentRecord) []GrowthPoint {
	byMonth := make(map[models.Month]*GrowthPoint)
	for _, r := range records {
		p, ok := byMonth[r.Month]
		if !ok {
			p = &GrowthPoint{Month: r.Month}
			byMonth[r.Month] = p
		}
		p.Savings = p.Savings.Add(r.Savings)
		p.Interest = p.Interest.Add(r.InterestPaid)
	}

	months := make([]models.Month, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i] < months[j] })

	series := make([]GrowthPoint, 0, len(months))
	cumulative := decimal.Zero
	for _, m := range months {
		p := *byMonth[m]
		cumulative = cumulative.Add(p.Savings)
		p.Cumulative = cumulative
		series = append(series, p)
	}
	return series
}

// ActiveLoan is a member with outstanding principal.
type ActiveLoan struct {
	Member models.Member

	// DisbursementDate is the latest loan date, or the joining date when the
	// member has no loan events.
	DisbursementDate time.Time
}

// LoanSortField selects the ActiveLoans ordering.
type LoanSortField string

const (
	SortByName   LoanSortField = "name"
	SortByAmount LoanSortField = "amount"
	SortByDate   LoanSortField = "date"
)

// ActiveLoans lists members with outstanding principal whose name contains
// search (case-insensitive), ordered by field.
func ActiveLoans(data *models.GroupData, search string, field LoanSortField, descending bool) []ActiveLoan {
	search = strings.ToLower(search)
	var loans []ActiveLoan
	for _, m := range data.Members {
		if !m.HasActiveLoan() {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) {
			continue
		}
		disbursed := m.JoiningDate
		var latest time.Time
		for _, l := range data.LoansIssued {
			if l.MemberID == m.ID && l.Date.After(latest) {
				latest = l.Date
			}
		}
		if !latest.IsZero() {
			disbursed = latest
		}
		loans = append(loans, ActiveLoan{Member: m, DisbursementDate: disbursed})
	}

	less := func(a, b ActiveLoan) bool {
		switch field {
		case SortByName:
			return a.Member.Name < b.Member.Name
		case SortByDate:
			return a.DisbursementDate.Before(b.DisbursementDate)
		default:
			return a.Member.CurrentLoanPrincipal.LessThan(b.Member.CurrentLoanPrincipal)
		}
	}
	sort.SliceStable(loans, func(i, j int) bool {
		if descending {
			return less(loans[j], loans[i])
		}
		return less(loans[i], loans[j])
	})
	return loans
}

// ExpenseKind labels an entry of the expense feed.
type ExpenseKind string

const (
	ExpenseAdminReward ExpenseKind = "Admin Reward"
	ExpenseMisc        ExpenseKind = "Misc Expense"
)

// Expense is an admin reward or miscellaneous payment in a combined feed.
type Expense struct {
	Kind        ExpenseKind
	ID          string
	Month       models.Month
	Amount      decimal.Decimal
	Description string
	Timestamp   time.Time
}

// ExpenseFeed returns admin and misc payments newest first, at most limit
// entries (all when limit <= 0).
func ExpenseFeed(data *models.GroupData, limit int) []Expense {
	feed := make([]Expense, 0, len(data.AdminPayments)+len(data.MiscPayments))
	for _, p := range data.AdminPayments {
		feed = append(feed, Expense{Kind: ExpenseAdminReward, ID: p.ID, Month: p.Month, Amount: p.Amount, Description: p.Description, Timestamp: p.Timestamp})
	}
	for _, p := range data.MiscPayments {
		feed = append(feed, Expense{Kind: ExpenseMisc, ID: p.ID, Month: p.Month, Amount: p.Amount, Description: p.Description, Timestamp: p.Timestamp})
	}
	sort.SliceStable(feed, func(i, j int) bool {
		return feed[i].Timestamp.After(feed[j].Timestamp)
	})
	if limit > 0 && len(feed) > limit {
		feed = feed[:limit]
	}
	return feed
}

// recentNoteWindow is how long a published note counts as unread.
const recentNoteWindow = 3 * 24 * time.Hour

// UnreadNotesCount counts notes published within the last three days.
func UnreadNotesCount(notes []models.MeetingNote, now time.Time) int {
	cutoff := now.Add(-recentNoteWindow)
	count := 0
	for _, n := range notes {
		if n.PublishedAt != nil && n.PublishedAt.After(cutoff) {
			count++
		}
	}
	return count
}
