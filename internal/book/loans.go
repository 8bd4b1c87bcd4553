package book

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/models"
)

// IssueLoan disburses amount to the member at the given monthly rate.
//
// The rate is snapshotted on the loan record and becomes the member's
// current rate. The member's principal plus amount may not exceed their cap.
func (b *Book) IssueLoan(ctx context.Context, actor models.AuthUser, memberID string, amount, rate decimal.Decimal) (models.LoanIssuedRecord, error) {
	var loan models.LoanIssuedRecord
	err := b.mutate(ctx, "issue_loan", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}
		if !amount.IsPositive() {
			return invalid("amount", "must be positive")
		}
		if rate.IsNegative() {
			return invalid("interestRate", "must not be negative")
		}

		m := d.FindMember(memberID)
		if m == nil {
			return notFound("member", memberID)
		}
		if total := m.CurrentLoanPrincipal.Add(amount); total.GreaterThan(m.LoanCap) {
			return fmt.Errorf("%w: principal %s plus %s exceeds cap %s",
				ErrCapacityExceeded, m.CurrentLoanPrincipal, amount, m.LoanCap)
		}

		now := b.stamp(d, m.ID)
		loan = models.LoanIssuedRecord{
			ID:           b.newID(),
			MemberID:     m.ID,
			Amount:       amount,
			InterestRate: rate,
			Date:         now,
		}
		d.LoansIssued = append(d.LoansIssued, loan)
		m.LoanInterestRate = rate

		d.Notifications = append([]models.Notification{{
			ID:        b.newID(),
			Type:      models.NotificationLoanDisbursed,
			Message:   fmt.Sprintf("Loan of %s disbursed to %s at %s%% monthly interest", amount.StringFixed(2), m.Name, rate),
			Timestamp: now,
		}}, d.Notifications...)
		return nil
	})
	if err != nil {
		return models.LoanIssuedRecord{}, err
	}
	return loan, nil
}

// RecordPayment appends a monthly payment. Principal repaid reduces the
// member's balance, never below zero. Several payments for the same member
// and month are allowed.
//
// The ledger assigns the record's ID and timestamp; values set by the caller
// are replaced so a payment always applies to the balance as it stands now.
func (b *Book) RecordPayment(ctx context.Context, actor models.AuthUser, rec models.PaymentRecord) (models.PaymentRecord, error) {
	err := b.mutate(ctx, "record_payment", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}
		if !rec.Month.Valid() {
			return invalid("month", "want YYYY-MM")
		}
		for _, c := range []struct {
			field string
			v     decimal.Decimal
		}{
			{"savings", rec.Savings},
			{"principalPaid", rec.PrincipalPaid},
			{"interestPaid", rec.InterestPaid},
			{"penalty", rec.Penalty},
		} {
			if c.v.IsNegative() {
				return invalid(c.field, "must not be negative")
			}
		}
		if d.FindMember(rec.MemberID) == nil {
			return notFound("member", rec.MemberID)
		}

		rec.ID = b.newID()
		rec.Timestamp = b.stamp(d, rec.MemberID)
		d.Records = append(d.Records, rec)
		return nil
	})
	if err != nil {
		return models.PaymentRecord{}, err
	}
	return rec, nil
}

// AdjustInterestRate changes the member's current rate and records the
// change for the audit trail. Existing loan records keep their rates.
func (b *Book) AdjustInterestRate(ctx context.Context, actor models.AuthUser, memberID string, newRate decimal.Decimal, reason string) (models.InterestRateChangeRecord, error) {
	var change models.InterestRateChangeRecord
	err := b.mutate(ctx, "adjust_interest_rate", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}
		m := d.FindMember(memberID)
		if m == nil {
			return notFound("member", memberID)
		}
		change = models.InterestRateChangeRecord{
			ID:       b.newID(),
			MemberID: m.ID,
			OldRate:  m.LoanInterestRate,
			NewRate:  newRate,
			Reason:   reason,
			Date:     b.stamp(d, m.ID),
		}
		d.InterestRateChanges = append(d.InterestRateChanges, change)
		m.LoanInterestRate = newRate
		return nil
	})
	if err != nil {
		return models.InterestRateChangeRecord{}, err
	}
	return change, nil
}
