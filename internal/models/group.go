package models

import "github.com/shopspring/decimal"

// CurrentSchemaVersion is the GroupData layout written by this version.
//
// Version history:
//   - 0: legacy snapshots without a version field
//   - 1: loanCap, dueDay and expense collections always present
//   - 2: opening balances reconciled into loan events, admin password hashed
const CurrentSchemaVersion = 2

// DefaultDueDay is the group due day used when none is configured.
const DefaultDueDay = 10

// GroupSettings is the group-wide configuration.
type GroupSettings struct {
	// Name is the display name of the group (e.g., "Unity Savings Group").
	Name string `json:"name"`

	// MonthlySavingsAmount is the default savings target per member per month.
	MonthlySavingsAmount decimal.Decimal `json:"monthlySavingsAmount"`

	// DefaultInterestRate prefills new loans (monthly percent).
	DefaultInterestRate decimal.Decimal `json:"defaultInterestRate"`

	// DueDay is the day of month after which an unpaid cycle is overdue (1-28).
	DueDay int `json:"dueDay"`

	// AdminPasswordHash is the bcrypt hash of the admin password.
	// Empty means the bootstrap password from configuration applies.
	AdminPasswordHash string `json:"adminPassword,omitempty"`

	// InitialGrowthSavings is the savings carried over from paper records.
	InitialGrowthSavings decimal.Decimal `json:"initialGrowthSavings"`

	// InitialNetFunds is the liquid cash carried over from paper records.
	InitialNetFunds decimal.Decimal `json:"initialNetFunds"`
}

// GroupData is the aggregate root of the whole ledger.
type GroupData struct {
	SchemaVersion int `json:"schemaVersion"`

	Settings            GroupSettings              `json:"settings"`
	Members             []Member                   `json:"members"`
	Records             []PaymentRecord            `json:"records"`
	LoansIssued         []LoanIssuedRecord         `json:"loansIssued"`
	InterestRateChanges []InterestRateChangeRecord `json:"interestRateChanges"`
	MeetingNotes        []MeetingNote              `json:"meetingNotes"`
	AdminPayments       []AdminPayment             `json:"adminPayments"`
	MiscPayments        []MiscPayment              `json:"miscPayments"`
	Notifications       []Notification             `json:"notifications"`

	// MonthlySavingsTargets overrides Settings.MonthlySavingsAmount per month.
	MonthlySavingsTargets map[Month]decimal.Decimal `json:"monthlySavingsTargets,omitempty"`
}

// SavingsTarget returns the savings due per member for the given month.
func (d *GroupData) SavingsTarget(month Month) decimal.Decimal {
	if amount, ok := d.MonthlySavingsTargets[month]; ok {
		return amount
	}
	return d.Settings.MonthlySavingsAmount
}

// FindMember returns the member with the given ID, or nil.
func (d *GroupData) FindMember(id string) *Member {
	for i := range d.Members {
		if d.Members[i].ID == id {
			return &d.Members[i]
		}
	}
	return nil
}

// FindMemberByPhone returns the member registered with phone, or nil.
func (d *GroupData) FindMemberByPhone(phone string) *Member {
	for i := range d.Members {
		if d.Members[i].Phone == phone {
			return &d.Members[i]
		}
	}
	return nil
}

// Clone returns a deep copy of d that shares no mutable state with it.
func (d *GroupData) Clone() *GroupData {
	out := *d
	out.Members = make([]Member, len(d.Members))
	for i, m := range d.Members {
		if m.DueDay != nil {
			day := *m.DueDay
			m.DueDay = &day
		}
		out.Members[i] = m
	}
	out.Records = append([]PaymentRecord(nil), d.Records...)
	out.LoansIssued = append([]LoanIssuedRecord(nil), d.LoansIssued...)
	out.InterestRateChanges = append([]InterestRateChangeRecord(nil), d.InterestRateChanges...)
	out.MeetingNotes = make([]MeetingNote, len(d.MeetingNotes))
	for i, n := range d.MeetingNotes {
		if n.PublishedAt != nil {
			at := *n.PublishedAt
			n.PublishedAt = &at
		}
		out.MeetingNotes[i] = n
	}
	out.AdminPayments = append([]AdminPayment(nil), d.AdminPayments...)
	out.MiscPayments = append([]MiscPayment(nil), d.MiscPayments...)
	out.Notifications = append([]Notification(nil), d.Notifications...)
	if d.MonthlySavingsTargets != nil {
		out.MonthlySavingsTargets = make(map[Month]decimal.Decimal, len(d.MonthlySavingsTargets))
		for k, v := range d.MonthlySavingsTargets {
			out.MonthlySavingsTargets[k] = v
		}
	}
	return &out
}
