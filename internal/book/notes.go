package book

import (
	"context"
	"strings"

	"github.com/mmynk/chitfund/internal/models"
)

// AddMeetingNote drafts minutes for a month. Drafts are visible to admins
// only until published.
func (b *Book) AddMeetingNote(ctx context.Context, actor models.AuthUser, month models.Month, content string) (models.MeetingNote, error) {
	var note models.MeetingNote
	err := b.mutate(ctx, "add_meeting_note", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}
		if !month.Valid() {
			return invalid("month", "want YYYY-MM")
		}
		content = strings.TrimSpace(content)
		if content == "" {
			return invalid("content", "must not be empty")
		}

		note = models.MeetingNote{
			ID:        b.newID(),
			Month:     month,
			Content:   content,
			Author:    actor.Name,
			CreatedAt: b.now(),
		}
		d.MeetingNotes = append([]models.MeetingNote{note}, d.MeetingNotes...)
		return nil
	})
	return note, err
}

// PublishMeetingNote makes a note visible to members. Publishing again
// moves the publication time to now.
func (b *Book) PublishMeetingNote(ctx context.Context, actor models.AuthUser, id string) (models.MeetingNote, error) {
	var note models.MeetingNote
	err := b.mutate(ctx, "publish_meeting_note", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}

		for i := range d.MeetingNotes {
			n := &d.MeetingNotes[i]
			if n.ID != id {
				continue
			}
			now := b.now()
			n.PublishedAt = &now
			note = *n
			return nil
		}
		return notFound("meeting note", id)
	})
	return note, err
}

// DeleteMeetingNote removes a note whether or not it was published.
func (b *Book) DeleteMeetingNote(ctx context.Context, actor models.AuthUser, id string) error {
	return b.mutate(ctx, "delete_meeting_note", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}

		for i := range d.MeetingNotes {
			if d.MeetingNotes[i].ID == id {
				d.MeetingNotes = append(d.MeetingNotes[:i], d.MeetingNotes[i+1:]...)
				return nil
			}
		}
		return notFound("meeting note", id)
	})
}

// MarkAllNotificationsRead marks the shared notification feed as read.
func (b *Book) MarkAllNotificationsRead(ctx context.Context, actor models.AuthUser) error {
	return b.mutate(ctx, "mark_notifications_read", actor, func(d *models.GroupData) error {
		if actor.Role == "" {
			return ErrUnauthorized
		}

		for i := range d.Notifications {
			d.Notifications[i].Read = true
		}
		return nil
	})
}

// ClearNotifications empties the notification feed.
func (b *Book) ClearNotifications(ctx context.Context, actor models.AuthUser) error {
	return b.mutate(ctx, "clear_notifications", actor, func(d *models.GroupData) error {
		if err := requireAdmin(actor); err != nil {
			return err
		}

		d.Notifications = []models.Notification{}
		return nil
	})
}
