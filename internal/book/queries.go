package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/calculator"
	"github.com/mmynk/chitfund/internal/models"
)

// View returns the part of the group visible to actor. Admins see every
// collection; members see only their own member row, payments, loans and
// rate changes plus published meeting notes. Carry-over baselines, expenses
// and the admin password hash are never included for members.
func (b *Book) View(ctx context.Context, actor models.AuthUser) (*models.GroupData, error) {
	if actor.Role == "" {
		return nil, ErrUnauthorized
	}

	var view *models.GroupData
	b.read(func(d *models.GroupData) {
		view = d.Clone()
	})
	view.Settings.AdminPasswordHash = ""
	if actor.IsAdmin() {
		return view, nil
	}

	view.Settings.InitialGrowthSavings = decimal.Zero
	view.Settings.InitialNetFunds = decimal.Zero
	view.AdminPayments = []models.AdminPayment{}
	view.MiscPayments = []models.MiscPayment{}

	members := []models.Member{}
	for _, m := range view.Members {
		if actor.CanView(m.ID) {
			members = append(members, m)
		}
	}
	view.Members = members

	view.Records = calculator.RecordsVisibleTo(view, actor)
	if view.Records == nil {
		view.Records = []models.PaymentRecord{}
	}

	loans := []models.LoanIssuedRecord{}
	for _, l := range view.LoansIssued {
		if actor.CanView(l.MemberID) {
			loans = append(loans, l)
		}
	}
	view.LoansIssued = loans

	changes := []models.InterestRateChangeRecord{}
	for _, c := range view.InterestRateChanges {
		if actor.CanView(c.MemberID) {
			changes = append(changes, c)
		}
	}
	view.InterestRateChanges = changes

	view.MeetingNotes = publishedNotes(view.MeetingNotes)
	return view, nil
}

func publishedNotes(notes []models.MeetingNote) []models.MeetingNote {
	out := []models.MeetingNote{}
	for _, n := range notes {
		if n.Published() {
			out = append(out, n)
		}
	}
	return out
}

// Member returns one member. Members may only look themselves up.
func (b *Book) Member(ctx context.Context, actor models.AuthUser, id string) (models.Member, error) {
	if !actor.CanView(id) {
		return models.Member{}, ErrUnauthorized
	}
	var (
		member models.Member
		err    error
	)
	b.read(func(d *models.GroupData) {
		m := d.FindMember(id)
		if m == nil {
			err = notFound("member", id)
			return
		}
		member = *m
		member.DueDay = copyDay(m.DueDay)
	})
	return member, err
}

// FindMemberByPhone looks up a member for OTP login.
func (b *Book) FindMemberByPhone(phone string) (models.Member, bool) {
	var (
		member models.Member
		ok     bool
	)
	b.read(func(d *models.GroupData) {
		if m := d.FindMemberByPhone(phone); m != nil {
			member, ok = *m, true
		}
	})
	return member, ok
}

// Statement replays a member's loan history.
func (b *Book) Statement(ctx context.Context, actor models.AuthUser, memberID string) (calculator.Statement, error) {
	if !actor.CanView(memberID) {
		return calculator.Statement{}, ErrUnauthorized
	}
	var (
		stmt calculator.Statement
		err  error
	)
	b.read(func(d *models.GroupData) {
		if d.FindMember(memberID) == nil {
			err = notFound("member", memberID)
			return
		}
		stmt = calculator.BuildStatement(d, memberID)
	})
	return stmt, err
}

// Dashboard returns the headline figures as seen by actor.
func (b *Book) Dashboard(ctx context.Context, actor models.AuthUser) (calculator.DashboardStats, error) {
	if actor.Role == "" {
		return calculator.DashboardStats{}, ErrUnauthorized
	}
	var stats calculator.DashboardStats
	b.read(func(d *models.GroupData) {
		stats = calculator.Dashboard(d, actor, b.now())
	})
	return stats, nil
}

// PaymentAlerts returns this cycle's payment status per visible member.
func (b *Book) PaymentAlerts(ctx context.Context, actor models.AuthUser) ([]calculator.PaymentAlert, error) {
	if actor.Role == "" {
		return nil, ErrUnauthorized
	}
	var alerts []calculator.PaymentAlert
	b.read(func(d *models.GroupData) {
		alerts = calculator.PaymentAlerts(d, actor, b.now())
	})
	return alerts, nil
}

// MonthlyReport summarizes collections, expenses and dues for month.
func (b *Book) MonthlyReport(ctx context.Context, actor models.AuthUser, month models.Month) (calculator.MonthlyReport, error) {
	if actor.Role == "" {
		return calculator.MonthlyReport{}, ErrUnauthorized
	}
	if !month.Valid() {
		return calculator.MonthlyReport{}, invalid("month", "want YYYY-MM")
	}
	var report calculator.MonthlyReport
	b.read(func(d *models.GroupData) {
		report = calculator.BuildMonthlyReport(d.Clone(), month, actor)
	})
	return report, nil
}

// GrowthSeries returns the monthly savings chart for the records visible to actor.
func (b *Book) GrowthSeries(ctx context.Context, actor models.AuthUser) ([]calculator.GrowthPoint, error) {
	if actor.Role == "" {
		return nil, ErrUnauthorized
	}
	var series []calculator.GrowthPoint
	b.read(func(d *models.GroupData) {
		series = calculator.GrowthSeries(calculator.RecordsVisibleTo(d, actor))
	})
	return series, nil
}

// ActiveLoans lists members with outstanding principal. Admin only.
func (b *Book) ActiveLoans(ctx context.Context, actor models.AuthUser, search string, field calculator.LoanSortField, descending bool) ([]calculator.ActiveLoan, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	var loans []calculator.ActiveLoan
	b.read(func(d *models.GroupData) {
		loans = calculator.ActiveLoans(d.Clone(), search, field, descending)
	})
	return loans, nil
}

// ExpenseFeed returns the most recent expenses. Admin only.
func (b *Book) ExpenseFeed(ctx context.Context, actor models.AuthUser, limit int) ([]calculator.Expense, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	var feed []calculator.Expense
	b.read(func(d *models.GroupData) {
		feed = calculator.ExpenseFeed(d, limit)
	})
	return feed, nil
}

// MeetingNotes returns the notes visible to actor, newest first, and how
// many published notes are recent enough to count as unread.
func (b *Book) MeetingNotes(ctx context.Context, actor models.AuthUser) ([]models.MeetingNote, int, error) {
	if actor.Role == "" {
		return nil, 0, ErrUnauthorized
	}
	var (
		notes  []models.MeetingNote
		unread int
	)
	b.read(func(d *models.GroupData) {
		notes = d.Clone().MeetingNotes
		unread = calculator.UnreadNotesCount(notes, b.now())
	})
	if !actor.IsAdmin() {
		notes = publishedNotes(notes)
	}
	return notes, unread, nil
}

// Notifications returns the shared notification feed, newest first.
func (b *Book) Notifications(ctx context.Context, actor models.AuthUser) ([]models.Notification, error) {
	if actor.Role == "" {
		return nil, ErrUnauthorized
	}
	var out []models.Notification
	b.read(func(d *models.GroupData) {
		out = append([]models.Notification{}, d.Notifications...)
	})
	return out, nil
}

// PaymentSuggestion prefills a payment for member and month.
type PaymentSuggestion struct {
	Savings     decimal.Decimal
	Interest    decimal.Decimal
	Principal   decimal.Decimal
	IsLate      bool
	AlreadyPaid bool
}

// SuggestPayment returns the savings target, one month's interest on the
// current principal, and whether a payment recorded now would be late.
func (b *Book) SuggestPayment(ctx context.Context, actor models.AuthUser, memberID string, month models.Month) (PaymentSuggestion, error) {
	if !actor.CanView(memberID) {
		return PaymentSuggestion{}, ErrUnauthorized
	}
	if !month.Valid() {
		return PaymentSuggestion{}, invalid("month", "want YYYY-MM")
	}
	var (
		s   PaymentSuggestion
		err error
	)
	b.read(func(d *models.GroupData) {
		m := d.FindMember(memberID)
		if m == nil {
			err = notFound("member", memberID)
			return
		}
		s = PaymentSuggestion{
			Savings:     d.SavingsTarget(month),
			Interest:    calculator.SuggestedInterest(m),
			Principal:   m.CurrentLoanPrincipal,
			IsLate:      calculator.IsLate(d, m, month, b.now()),
			AlreadyPaid: calculator.HasPaid(d, memberID, month),
		}
	})
	return s, err
}
