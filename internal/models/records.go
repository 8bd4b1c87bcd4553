package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is one collection from one member for one calendar month.
// Several records may exist for the same member and month.
type PaymentRecord struct {
	ID       string `json:"id"`
	MemberID string `json:"memberId"`
	Month    Month  `json:"month"`

	// Savings is the growth contribution.
	Savings decimal.Decimal `json:"savings"`

	// PrincipalPaid reduces the member's outstanding principal.
	PrincipalPaid decimal.Decimal `json:"principalPaid"`

	// InterestPaid is income for the group; it never reduces principal.
	InterestPaid decimal.Decimal `json:"interestPaid"`

	Penalty decimal.Decimal `json:"penalty"`

	Timestamp time.Time `json:"timestamp"`
}

// Total returns the cash collected by this record.
func (r PaymentRecord) Total() decimal.Decimal {
	return r.Savings.Add(r.PrincipalPaid).Add(r.InterestPaid).Add(r.Penalty)
}

// LoanIssuedRecord is a loan disbursement to a member.
type LoanIssuedRecord struct {
	ID       string          `json:"id"`
	MemberID string          `json:"memberId"`
	Amount   decimal.Decimal `json:"amount"`

	// InterestRate is the monthly rate at the time of issuance.
	InterestRate decimal.Decimal `json:"interestRate"`

	Date time.Time `json:"date"`

	// Opening marks a carry-over balance reconstructed from a legacy
	// principal that had no disbursement events behind it.
	Opening bool `json:"opening,omitempty"`
}

// InterestRateChangeRecord is the audit trail of a manual rate adjustment.
type InterestRateChangeRecord struct {
	ID       string          `json:"id"`
	MemberID string          `json:"memberId"`
	OldRate  decimal.Decimal `json:"oldRate"`
	NewRate  decimal.Decimal `json:"newRate"`
	Reason   string          `json:"reason"`
	Date     time.Time       `json:"date"`
}

// AdminPayment is an administrator reward paid out of group funds.
type AdminPayment struct {
	ID          string          `json:"id"`
	Month       Month           `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`

	// PeriodMonths is the number of months the reward covers. Display only.
	PeriodMonths int `json:"periodMonths"`

	Timestamp time.Time `json:"timestamp"`
}

// MiscPayment is any other expense paid out of group funds.
type MiscPayment struct {
	ID          string          `json:"id"`
	Month       Month           `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}
