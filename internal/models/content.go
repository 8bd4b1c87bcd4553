package models

import "time"

// MeetingNote holds the minutes of a group meeting.
// A note with a nil PublishedAt is a draft visible only to admins.
type MeetingNote struct {
	ID          string     `json:"id"`
	Month       Month      `json:"month"`
	Content     string     `json:"content"`
	Author      string     `json:"author"`
	CreatedAt   time.Time  `json:"createdAt"`
	PublishedAt *time.Time `json:"publishedAt"`
}

// Published reports whether the note has been released to members.
func (n *MeetingNote) Published() bool {
	return n.PublishedAt != nil
}

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationLoanDisbursed NotificationType = "LOAN_DISBURSED"
	NotificationSystem        NotificationType = "SYSTEM"
)

// Notification is an entry in the admin notification feed.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}
