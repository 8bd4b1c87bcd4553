package book

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/models"
)

// MemberInput carries the editable fields of a member.
type MemberInput struct {
	Name        string
	Phone       string
	JoiningDate time.Time

	// LoanCap defaults to models.DefaultLoanCap when zero.
	LoanCap decimal.Decimal

	// DueDay overrides the group due day when set.
	DueDay *int

	// OpeningPrincipal is a carried-over balance for members joining with an
	// existing loan. Only used by AddMember.
	OpeningPrincipal decimal.Decimal

	// OpeningRate applies to OpeningPrincipal. Defaults to the group rate.
	OpeningRate decimal.Decimal
}

func (in *MemberInput) validate() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return invalid("name", "must not be empty")
	}
	if !validPhone(in.Phone) {
		return invalid("phone", "must be 10 digits")
	}
	if in.LoanCap.IsNegative() {
		return invalid("loanCap", "must not be negative")
	}
	if in.DueDay != nil && (*in.DueDay < 1 || *in.DueDay > 28) {
		return invalid("dueDay", "must be between 1 and 28")
	}
	if in.OpeningPrincipal.IsNegative() {
		return invalid("openingPrincipal", "must not be negative")
	}
	if in.OpeningRate.IsNegative() {
		return invalid("openingRate", "must not be negative")
	}
	return nil
}

func validPhone(phone string) bool {
	if len(phone) != 10 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func phoneTaken(d *models.GroupData, phone, exceptID string) bool {
	m := d.FindMemberByPhone(phone)
	return m != nil && m.ID != exceptID
}

// AddMember enrolls a new member. A positive OpeningPrincipal is recorded
// as an opening loan dated at the joining date.
func (b *Book) AddMember(ctx context.Context, actor models.AuthUser, in MemberInput) (models.Member, error) {
	var member models.Member
	err := b.mutate(ctx, "add_member", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}
		if err := in.validate(); err != nil {
			return err
		}

		if phoneTaken(d, in.Phone, "") {
			return invalid("phone", "already registered to another member")
		}
		if in.OpeningPrincipal.GreaterThan(capOrDefault(in.LoanCap)) {
			return invalid("openingPrincipal", "exceeds loan cap")
		}

		joined := in.JoiningDate
		if joined.IsZero() {
			joined = b.now()
		}
		rate := in.OpeningRate
		if rate.IsZero() {
			rate = d.Settings.DefaultInterestRate
		}

		member = models.Member{
			ID:               b.newID(),
			Name:             in.Name,
			Phone:            in.Phone,
			JoiningDate:      joined,
			LoanInterestRate: rate,
			LoanCap:          capOrDefault(in.LoanCap),
			DueDay:           copyDay(in.DueDay),
		}
		d.Members = append(d.Members, member)

		if in.OpeningPrincipal.IsPositive() {
			d.LoansIssued = append(d.LoansIssued, models.LoanIssuedRecord{
				ID:           b.newID(),
				MemberID:     member.ID,
				Amount:       in.OpeningPrincipal,
				InterestRate: rate,
				Date:         joined,
				Opening:      true,
			})
			member.CurrentLoanPrincipal = in.OpeningPrincipal
		}
		return nil
	})
	return member, err
}

// UpdateMember edits a member's identity, cap and due day. Principal and
// rate change only through loans, payments and rate adjustments.
func (b *Book) UpdateMember(ctx context.Context, actor models.AuthUser, id string, in MemberInput) (models.Member, error) {
	var member models.Member
	err := b.mutate(ctx, "update_member", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}
		if err := in.validate(); err != nil {
			return err
		}

		m := d.FindMember(id)
		if m == nil {
			return notFound("member", id)
		}
		if phoneTaken(d, in.Phone, id) {
			return invalid("phone", "already registered to another member")
		}
		m.Name = in.Name
		m.Phone = in.Phone
		if !in.JoiningDate.IsZero() {
			m.JoiningDate = in.JoiningDate
		}
		m.LoanCap = capOrDefault(in.LoanCap)
		m.DueDay = copyDay(in.DueDay)
		member = *m
		return nil
	})
	return member, err
}

// DeleteMember removes the member and every payment, loan and rate change
// that references them.
func (b *Book) DeleteMember(ctx context.Context, actor models.AuthUser, id string) error {
	return b.mutate(ctx, "delete_member", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}

		if d.FindMember(id) == nil {
			return notFound("member", id)
		}

		members := d.Members[:0]
		for _, m := range d.Members {
			if m.ID != id {
				members = append(members, m)
			}
		}
		d.Members = members

		records := d.Records[:0]
		for _, r := range d.Records {
			if r.MemberID != id {
				records = append(records, r)
			}
		}
		d.Records = records

		loans := d.LoansIssued[:0]
		for _, l := range d.LoansIssued {
			if l.MemberID != id {
				loans = append(loans, l)
			}
		}
		d.LoansIssued = loans

		changes := d.InterestRateChanges[:0]
		for _, c := range d.InterestRateChanges {
			if c.MemberID != id {
				changes = append(changes, c)
			}
		}
		d.InterestRateChanges = changes
		return nil
	})
}

func capOrDefault(c decimal.Decimal) decimal.Decimal {
	if c.IsZero() {
		return models.DefaultLoanCap
	}
	return c
}

func copyDay(day *int) *int {
	if day == nil {
		return nil
	}
	v := *day
	return &v
}
