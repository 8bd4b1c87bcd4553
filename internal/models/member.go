package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultLoanCap is applied to members created without an explicit cap.
var DefaultLoanCap = decimal.NewFromInt(50000)

// Member represents one participant of the savings group.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string `json:"id"`

	// Name is the display name of the member.
	Name string `json:"name"`

	// Phone is the 10-digit mobile number used for OTP login.
	Phone string `json:"phone"`

	// JoiningDate is the day the member joined the group.
	JoiningDate time.Time `json:"joiningDate"`

	// CurrentLoanPrincipal is the outstanding principal owed by the member.
	// It is derived from LoanIssuedRecord and PaymentRecord events and is
	// never negative.
	CurrentLoanPrincipal decimal.Decimal `json:"currentLoanPrincipal"`

	// LoanInterestRate is the monthly interest rate in percent. Issuing a loan
	// overwrites it with that loan's rate.
	LoanInterestRate decimal.Decimal `json:"loanInterestRate"`

	// LoanCap is the ceiling on CurrentLoanPrincipal checked at loan issuance.
	LoanCap decimal.Decimal `json:"loanCap"`

	// DueDay overrides GroupSettings.DueDay for this member when set (1-28).
	DueDay *int `json:"dueDay,omitempty"`
}

// EffectiveDueDay returns the member's own due day, or the group default.
func (m *Member) EffectiveDueDay(settings GroupSettings) int {
	if m.DueDay != nil && *m.DueDay > 0 {
		return *m.DueDay
	}
	return settings.DueDay
}

// HasActiveLoan reports whether the member owes any principal.
func (m *Member) HasActiveLoan() bool {
	return m.CurrentLoanPrincipal.IsPositive()
}
