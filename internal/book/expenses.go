package book

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/models"
)

// AddAdminPayment records a reward paid to the administrator. PeriodMonths
// is a label only and defaults to 1.
func (b *Book) AddAdminPayment(ctx context.Context, actor models.AuthUser, p models.AdminPayment) (models.AdminPayment, error) {
	err := b.mutate(ctx, "add_admin_payment", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}
		if !p.Month.Valid() {
			return invalid("month", "want YYYY-MM")
		}
		if !p.Amount.IsPositive() {
			return invalid("amount", "must be positive")
		}
		if p.PeriodMonths < 0 {
			return invalid("periodMonths", "must not be negative")
		}

		p.ID = b.newID()
		p.Timestamp = b.now()
		if p.PeriodMonths == 0 {
			p.PeriodMonths = 1
		}
		d.AdminPayments = append(d.AdminPayments, p)
		return nil
	})
	return p, err
}

// AddMiscPayment records a miscellaneous group expense.
func (b *Book) AddMiscPayment(ctx context.Context, actor models.AuthUser, p models.MiscPayment) (models.MiscPayment, error) {
	err := b.mutate(ctx, "add_misc_payment", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}
		if !p.Month.Valid() {
			return invalid("month", "want YYYY-MM")
		}
		if !p.Amount.IsPositive() {
			return invalid("amount", "must be positive")
		}
		p.Description = strings.TrimSpace(p.Description)
		if p.Description == "" {
			return invalid("description", "must not be empty")
		}

		p.ID = b.newID()
		p.Timestamp = b.now()
		d.MiscPayments = append(d.MiscPayments, p)
		return nil
	})
	return p, err
}

// SetMonthlySavingsTarget overrides the savings amount due for one month.
func (b *Book) SetMonthlySavingsTarget(ctx context.Context, actor models.AuthUser, month models.Month, amount decimal.Decimal) error {
	return b.mutate(ctx, "set_savings_target", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}
		if !month.Valid() {
			return invalid("month", "want YYYY-MM")
		}
		if amount.IsNegative() {
			return invalid("amount", "must not be negative")
		}

		d.MonthlySavingsTargets[month] = amount
		return nil
	})
}

// RemoveMonthlySavingsTarget reverts month to the group default.
func (b *Book) RemoveMonthlySavingsTarget(ctx context.Context, actor models.AuthUser, month models.Month) error {
	return b.mutate(ctx, "remove_savings_target", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}

		if _, ok := d.MonthlySavingsTargets[month]; !ok {
			return notFound("savings target", string(month))
		}
		delete(d.MonthlySavingsTargets, month)
		return nil
	})
}

// SettingsInput carries the editable group settings. The admin password
// is changed through SetAdminPasswordHash.
type SettingsInput struct {
	Name                 string
	MonthlySavingsAmount decimal.Decimal
	DefaultInterestRate  decimal.Decimal
	DueDay               int
	InitialGrowthSavings decimal.Decimal
	InitialNetFunds      decimal.Decimal
}

// UpdateSettings replaces the group settings.
func (b *Book) UpdateSettings(ctx context.Context, actor models.AuthUser, in SettingsInput) (models.GroupSettings, error) {
	var settings models.GroupSettings
	err := b.mutate(ctx, "update_settings", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}
		in.Name = strings.TrimSpace(in.Name)
		switch {
		case in.Name == "":
			return invalid("name", "must not be empty")
		case in.MonthlySavingsAmount.IsNegative():
			return invalid("monthlySavingsAmount", "must not be negative")
		case in.DefaultInterestRate.IsNegative():
			return invalid("defaultInterestRate", "must not be negative")
		case in.DueDay < 1 || in.DueDay > 28:
			return invalid("dueDay", "must be between 1 and 28")
		}

		d.Settings.Name = in.Name
		d.Settings.MonthlySavingsAmount = in.MonthlySavingsAmount
		d.Settings.DefaultInterestRate = in.DefaultInterestRate
		d.Settings.DueDay = in.DueDay
		d.Settings.InitialGrowthSavings = in.InitialGrowthSavings
		d.Settings.InitialNetFunds = in.InitialNetFunds
		settings = d.Settings
		settings.AdminPasswordHash = ""
		return nil
	})
	return settings, err
}

// SetAdminPasswordHash stores a new bcrypt hash of the admin password.
func (b *Book) SetAdminPasswordHash(ctx context.Context, actor models.AuthUser, hash string) error {
	return b.mutate(ctx, "set_admin_password", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}
		if hash == "" {
			return invalid("adminPassword", "must not be empty")
		}

		d.Settings.AdminPasswordHash = hash
		return nil
	})
}

// AdminPasswordHash returns the stored admin password hash, if any.
func (b *Book) AdminPasswordHash() string {
	var hash string
	b.read(func(d *models.GroupData) { hash = d.Settings.AdminPasswordHash })
	return hash
}
