package calculator

import (
	"time"

	"github.com/mmynk/chitfund/internal/models"
)

// PaymentStatus is a member's standing for the current collection cycle.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "PAID"
	StatusPending PaymentStatus = "PENDING"
	StatusOverdue PaymentStatus = "OVERDUE"
	StatusNone    PaymentStatus = "NONE"
)

// HasPaid reports whether any payment record exists for the member and month.
func HasPaid(data *models.GroupData, memberID string, month models.Month) bool {
	for _, r := range data.Records {
		if r.MemberID == memberID && r.Month == month {
			return true
		}
	}
	return false
}

// Status classifies the member for the month containing today.
//
// PAID if a record exists this month. Otherwise, a member with no loan and a
// zero savings target owes nothing (NONE); the rest are PENDING up to and
// including the effective due day and OVERDUE after it.
func Status(data *models.GroupData, member *models.Member, today time.Time) PaymentStatus {
	month := models.MonthOf(today)
	if HasPaid(data, member.ID, month) {
		return StatusPaid
	}
	if !member.HasActiveLoan() && !data.SavingsTarget(month).IsPositive() {
		return StatusNone
	}
	if today.Day() <= member.EffectiveDueDay(data.Settings) {
		return StatusPending
	}
	return StatusOverdue
}

// PaymentAlert is one row of the dashboard payment alerts.
type PaymentAlert struct {
	MemberID   string
	MemberName string
	Status     PaymentStatus
	DueDay     int
}

// PaymentAlerts lists the cycle status of every member visible to viewer,
// leaving out members with status NONE.
func PaymentAlerts(data *models.GroupData, viewer models.AuthUser, today time.Time) []PaymentAlert {
	var alerts []PaymentAlert
	for i := range data.Members {
		m := &data.Members[i]
		if !viewer.CanView(m.ID) {
			continue
		}
		status := Status(data, m, today)
		if status == StatusNone {
			continue
		}
		alerts = append(alerts, PaymentAlert{
			MemberID:   m.ID,
			MemberName: m.Name,
			Status:     status,
			DueDay:     m.EffectiveDueDay(data.Settings),
		})
	}
	return alerts
}

// IsLate reports whether a payment recorded today for month would be late:
// only the current month can be late, and only after the effective due day.
func IsLate(data *models.GroupData, member *models.Member, month models.Month, today time.Time) bool {
	return month == models.MonthOf(today) && today.Day() > member.EffectiveDueDay(data.Settings)
}
