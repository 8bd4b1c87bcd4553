package calculator

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/models"
)

// EntryType classifies a row of a member's loan statement.
type EntryType string

const (
	EntryDisbursement EntryType = "DISBURSEMENT"
	EntryRepayment    EntryType = "REPAYMENT"
	EntryRateAdjust   EntryType = "RATE_ADJUST"
)

// StatementEntry is one row of a member's loan statement.
type StatementEntry struct {
	ID   string
	Date time.Time
	Type EntryType

	// Amount is the signed change applied to the balance:
	// positive for disbursements, negative for repayments, zero for rate changes.
	Amount decimal.Decimal

	// PrincipalPaid is the principal on the payment record. It differs from
	// -Amount only when the payment exceeded the outstanding balance.
	PrincipalPaid decimal.Decimal

	// Interest is the interest paid alongside a repayment. Display only.
	Interest decimal.Decimal

	// Balance is the running principal after this row.
	Balance decimal.Decimal

	Description string

	// OldRate, NewRate and Reason are set on RATE_ADJUST rows.
	OldRate decimal.Decimal
	NewRate decimal.Decimal
	Reason  string
}

// Statement is the chronological loan history of one member.
type Statement struct {
	MemberID string

	// Entries are ordered oldest first, in replay order.
	Entries []StatementEntry

	// Balance is the running balance after the last entry.
	Balance decimal.Decimal
}

// NewestFirst returns the entries in display order without modifying s.
func (s Statement) NewestFirst() []StatementEntry {
	out := make([]StatementEntry, len(s.Entries))
	for i, e := range s.Entries {
		out[len(s.Entries)-1-i] = e
	}
	return out
}

type loanEvent struct {
	at      time.Time
	loan    *models.LoanIssuedRecord
	payment *models.PaymentRecord
	change  *models.InterestRateChangeRecord
}

// BuildStatement replays the member's disbursements, principal repayments and
// rate changes in timestamp order and returns the running-balance statement.
//
// The ledger stamps each member's events strictly after the previous one, so
// equal timestamps only occur in imported data. Those keep insertion order,
// with disbursements ahead of repayments ahead of rate changes. A repayment
// never takes the balance below zero; the excess is shown in PrincipalPaid
// but not applied.
func BuildStatement(data *models.GroupData, memberID string) Statement {
	var events []loanEvent
	for i := range data.LoansIssued {
		l := &data.LoansIssued[i]
		if l.MemberID == memberID {
			events = append(events, loanEvent{at: l.Date, loan: l})
		}
	}
	for i := range data.Records {
		r := &data.Records[i]
		if r.MemberID == memberID && r.PrincipalPaid.IsPositive() {
			events = append(events, loanEvent{at: r.Timestamp, payment: r})
		}
	}
	for i := range data.InterestRateChanges {
		c := &data.InterestRateChanges[i]
		if c.MemberID == memberID {
			events = append(events, loanEvent{at: c.Date, change: c})
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].at.Before(events[j].at)
	})

	stmt := Statement{MemberID: memberID, Entries: make([]StatementEntry, 0, len(events))}
	balance := decimal.Zero

	for _, ev := range events {
		switch {
		case ev.loan != nil:
			l := ev.loan
			balance = balance.Add(l.Amount)
			desc := fmt.Sprintf("Loan Issued (%s%% Interest)", l.InterestRate.String())
			if l.Opening {
				desc = fmt.Sprintf("Opening Balance (%s%% Interest)", l.InterestRate.String())
			}
			stmt.Entries = append(stmt.Entries, StatementEntry{
				ID:          l.ID,
				Date:        l.Date,
				Type:        EntryDisbursement,
				Amount:      l.Amount,
				Balance:     balance,
				Description: desc,
			})

		case ev.payment != nil:
			r := ev.payment
			applied := decimal.Min(r.PrincipalPaid, balance)
			balance = balance.Sub(applied)
			stmt.Entries = append(stmt.Entries, StatementEntry{
				ID:            r.ID,
				Date:          r.Timestamp,
				Type:          EntryRepayment,
				Amount:        applied.Neg(),
				PrincipalPaid: r.PrincipalPaid,
				Interest:      r.InterestPaid,
				Balance:       balance,
				Description:   fmt.Sprintf("Repayment for %s", r.Month),
			})

		case ev.change != nil:
			c := ev.change
			stmt.Entries = append(stmt.Entries, StatementEntry{
				ID:          c.ID,
				Date:        c.Date,
				Type:        EntryRateAdjust,
				Amount:      decimal.Zero,
				Balance:     balance,
				Description: fmt.Sprintf("Interest Adjusted: %s%% → %s%%", c.OldRate.String(), c.NewRate.String()),
				OldRate:     c.OldRate,
				NewRate:     c.NewRate,
				Reason:      c.Reason,
			})
		}
	}

	stmt.Balance = balance
	return stmt
}

// LastEventTime returns the timestamp of the member's latest loan, payment
// or rate change, or the zero time when there is none.
func LastEventTime(data *models.GroupData, memberID string) time.Time {
	var last time.Time
	for _, l := range data.LoansIssued {
		if l.MemberID == memberID && l.Date.After(last) {
			last = l.Date
		}
	}
	for _, r := range data.Records {
		if r.MemberID == memberID && r.Timestamp.After(last) {
			last = r.Timestamp
		}
	}
	for _, c := range data.InterestRateChanges {
		if c.MemberID == memberID && c.Date.After(last) {
			last = c.Date
		}
	}
	return last
}

// Principal returns the member's outstanding principal as derived from the
// event log.
func Principal(data *models.GroupData, memberID string) decimal.Decimal {
	return BuildStatement(data, memberID).Balance
}

// ProjectPrincipals recomputes CurrentLoanPrincipal for every member.
func ProjectPrincipals(data *models.GroupData) {
	for i := range data.Members {
		data.Members[i].CurrentLoanPrincipal = Principal(data, data.Members[i].ID)
	}
}
