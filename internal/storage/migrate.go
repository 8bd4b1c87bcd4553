package storage

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/chitfund/internal/calculator"
	"github.com/mmynk/chitfund/internal/models"
)

// NewGroup returns an empty group with default settings at the current
// schema version.
func NewGroup(name string) *models.GroupData {
	data := &models.GroupData{
		SchemaVersion: models.CurrentSchemaVersion,
		Settings: models.GroupSettings{
			Name:                 name,
			MonthlySavingsAmount: decimal.NewFromInt(1000),
			DefaultInterestRate:  decimal.NewFromInt(2),
			DueDay:               models.DefaultDueDay,
		},
	}
	fillCollections(data)
	return data
}

// Migrate upgrades data in place to models.CurrentSchemaVersion. It reports
// whether anything changed so callers can persist the upgrade.
//
//	v1: missing collections are created, due day defaults to 10 and member
//	    loan caps default to 50000.
//	v2: cached principals not backed by loan events become opening loans
//	    dated at the member's joining date, and a plaintext admin password
//	    is replaced by its bcrypt hash.
func Migrate(data *models.GroupData) (bool, error) {
	if data.SchemaVersion > models.CurrentSchemaVersion {
		return false, fmt.Errorf("unsupported schema version %d (newest known is %d)", data.SchemaVersion, models.CurrentSchemaVersion)
	}

	changed := fillCollections(data)
	from := data.SchemaVersion

	if data.SchemaVersion < 1 {
		if data.Settings.DueDay == 0 {
			data.Settings.DueDay = models.DefaultDueDay
		}
		for i := range data.Members {
			if data.Members[i].LoanCap.IsZero() {
				data.Members[i].LoanCap = models.DefaultLoanCap
			}
		}
		data.SchemaVersion = 1
	}

	if data.SchemaVersion < 2 {
		reconcileOpeningBalances(data)
		if err := hashAdminPassword(data); err != nil {
			return false, err
		}
		data.SchemaVersion = 2
	}

	if data.SchemaVersion != from {
		slog.Info("Migrated group data", "from", from, "to", data.SchemaVersion)
		changed = true
	}
	return changed, nil
}

func fillCollections(data *models.GroupData) bool {
	changed := false
	if data.Members == nil {
		data.Members, changed = []models.Member{}, true
	}
	if data.Records == nil {
		data.Records, changed = []models.PaymentRecord{}, true
	}
	if data.LoansIssued == nil {
		data.LoansIssued, changed = []models.LoanIssuedRecord{}, true
	}
	if data.InterestRateChanges == nil {
		data.InterestRateChanges, changed = []models.InterestRateChangeRecord{}, true
	}
	if data.MeetingNotes == nil {
		data.MeetingNotes, changed = []models.MeetingNote{}, true
	}
	if data.AdminPayments == nil {
		data.AdminPayments, changed = []models.AdminPayment{}, true
	}
	if data.MiscPayments == nil {
		data.MiscPayments, changed = []models.MiscPayment{}, true
	}
	if data.Notifications == nil {
		data.Notifications, changed = []models.Notification{}, true
	}
	if data.MonthlySavingsTargets == nil {
		data.MonthlySavingsTargets, changed = map[models.Month]decimal.Decimal{}, true
	}
	return changed
}

// maxReconcilePasses bounds the opening balance search. Each pass absorbs
// at least one repayment that was floored at zero.
const maxReconcilePasses = 16

func reconcileOpeningBalances(data *models.GroupData) {
	for _, m := range data.Members {
		if calculator.Principal(data, m.ID).GreaterThanOrEqual(m.CurrentLoanPrincipal) {
			continue
		}

		data.LoansIssued = append(data.LoansIssued, models.LoanIssuedRecord{
			ID:           uuid.New().String(),
			MemberID:     m.ID,
			InterestRate: m.LoanInterestRate,
			Date:         openingDate(data, m),
			Opening:      true,
		})
		opening := &data.LoansIssued[len(data.LoansIssued)-1]

		// Repayments recorded against the carried balance were floored at
		// zero in the replay, so grow the opening amount until it covers them.
		for pass := 0; pass < maxReconcilePasses; pass++ {
			missing := m.CurrentLoanPrincipal.Sub(calculator.Principal(data, m.ID))
			if !missing.IsPositive() {
				break
			}
			opening.Amount = opening.Amount.Add(missing)
		}
		slog.Info("Recorded opening balance", "member", m.ID, "amount", opening.Amount.String())
	}
}

// openingDate is the joining date, moved back if any of the member's loan
// events predate it.
func openingDate(data *models.GroupData, m models.Member) time.Time {
	date := m.JoiningDate
	earlier := func(t time.Time) {
		if date.IsZero() || t.Before(date) {
			date = t
		}
	}
	for _, l := range data.LoansIssued {
		if l.MemberID == m.ID {
			earlier(l.Date)
		}
	}
	for _, r := range data.Records {
		if r.MemberID == m.ID && r.PrincipalPaid.IsPositive() {
			earlier(r.Timestamp)
		}
	}
	if date.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return date
}

func hashAdminPassword(data *models.GroupData) error {
	pw := data.Settings.AdminPasswordHash
	if pw == "" || strings.HasPrefix(pw, "$2") {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	data.Settings.AdminPasswordHash = string(hash)
	return nil
}
