package service

import (
	"context"

	"connectrpc.com/connect"

	"github.com/mmynk/chitfund/internal/auth"
	"github.com/mmynk/chitfund/internal/book"
	"github.com/mmynk/chitfund/pkg/api"
)

// IssueLoan disburses a loan to a member.
func (s *LedgerService) IssueLoan(ctx context.Context, req *connect.Request[api.IssueLoanRequest]) (*connect.Response[api.IssueLoanResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("IssueLoan request received", "member_id", req.Msg.MemberID, "amount", req.Msg.Amount)

	loan, err := s.book.IssueLoan(ctx, user, req.Msg.MemberID, req.Msg.Amount, req.Msg.InterestRate)
	if err != nil {
		return nil, connectError(err)
	}
	member, err := s.book.Member(ctx, user, loan.MemberID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.IssueLoanResponse{Loan: loan, Member: member}), nil
}

// RecordPayment appends a monthly collection for a member.
func (s *LedgerService) RecordPayment(ctx context.Context, req *connect.Request[api.RecordPaymentRequest]) (*connect.Response[api.RecordPaymentResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("RecordPayment request received", "member_id", req.Msg.Record.MemberID, "month", req.Msg.Record.Month)

	rec, err := s.book.RecordPayment(ctx, user, req.Msg.Record)
	if err != nil {
		return nil, connectError(err)
	}
	member, err := s.book.Member(ctx, user, rec.MemberID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.RecordPaymentResponse{Record: rec, Member: member}), nil
}

// AdjustInterestRate changes a member's rate with an audit record.
func (s *LedgerService) AdjustInterestRate(ctx context.Context, req *connect.Request[api.AdjustInterestRateRequest]) (*connect.Response[api.AdjustInterestRateResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	change, err := s.book.AdjustInterestRate(ctx, user, req.Msg.MemberID, req.Msg.NewRate, req.Msg.Reason)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.AdjustInterestRateResponse{Change: change}), nil
}

// AddMember registers a new member.
func (s *LedgerService) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.MemberResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	member, err := s.book.AddMember(ctx, user, toMemberInput(req.Msg.Member))
	if err != nil {
		return nil, connectError(err)
	}
	s.logger.Info("Member added", "member_id", member.ID)
	return connect.NewResponse(&api.MemberResponse{Member: member}), nil
}

// UpdateMember edits a member's profile.
func (s *LedgerService) UpdateMember(ctx context.Context, req *connect.Request[api.UpdateMemberRequest]) (*connect.Response[api.MemberResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	member, err := s.book.UpdateMember(ctx, user, req.Msg.ID, toMemberInput(req.Msg.Member))
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.MemberResponse{Member: member}), nil
}

// DeleteMember removes a member and all of their records.
func (s *LedgerService) DeleteMember(ctx context.Context, req *connect.Request[api.DeleteMemberRequest]) (*connect.Response[api.Empty], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.book.DeleteMember(ctx, user, req.Msg.ID); err != nil {
		return nil, connectError(err)
	}
	s.logger.Info("Member deleted", "member_id", req.Msg.ID)
	return connect.NewResponse(&api.Empty{}), nil
}

// AddAdminPayment records an administrator reward.
func (s *LedgerService) AddAdminPayment(ctx context.Context, req *connect.Request[api.AddAdminPaymentRequest]) (*connect.Response[api.AddAdminPaymentResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.book.AddAdminPayment(ctx, user, req.Msg.Payment)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.AddAdminPaymentResponse{Payment: p}), nil
}

// AddMiscPayment records a miscellaneous expense.
func (s *LedgerService) AddMiscPayment(ctx context.Context, req *connect.Request[api.AddMiscPaymentRequest]) (*connect.Response[api.AddMiscPaymentResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	p, err := s.book.AddMiscPayment(ctx, user, req.Msg.Payment)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.AddMiscPaymentResponse{Payment: p}), nil
}

// SetSavingsTarget overrides the savings target for one month.
func (s *LedgerService) SetSavingsTarget(ctx context.Context, req *connect.Request[api.SetSavingsTargetRequest]) (*connect.Response[api.Empty], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.book.SetMonthlySavingsTarget(ctx, user, req.Msg.Month, req.Msg.Amount); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// RemoveSavingsTarget restores the default target for one month.
func (s *LedgerService) RemoveSavingsTarget(ctx context.Context, req *connect.Request[api.RemoveSavingsTargetRequest]) (*connect.Response[api.Empty], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.book.RemoveMonthlySavingsTarget(ctx, user, req.Msg.Month); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// AddMeetingNote saves a draft meeting note.
func (s *LedgerService) AddMeetingNote(ctx context.Context, req *connect.Request[api.AddMeetingNoteRequest]) (*connect.Response[api.MeetingNoteResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	note, err := s.book.AddMeetingNote(ctx, user, req.Msg.Month, req.Msg.Content)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.MeetingNoteResponse{Note: note}), nil
}

// PublishMeetingNote releases a note to members.
func (s *LedgerService) PublishMeetingNote(ctx context.Context, req *connect.Request[api.PublishMeetingNoteRequest]) (*connect.Response[api.MeetingNoteResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	note, err := s.book.PublishMeetingNote(ctx, user, req.Msg.ID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.MeetingNoteResponse{Note: note}), nil
}

// DeleteMeetingNote removes a note.
func (s *LedgerService) DeleteMeetingNote(ctx context.Context, req *connect.Request[api.DeleteMeetingNoteRequest]) (*connect.Response[api.Empty], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.book.DeleteMeetingNote(ctx, user, req.Msg.ID); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// UpdateSettings replaces the group settings.
func (s *LedgerService) UpdateSettings(ctx context.Context, req *connect.Request[api.UpdateSettingsRequest]) (*connect.Response[api.UpdateSettingsResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.book.UpdateSettings(ctx, user, toSettingsInput(req.Msg))
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.UpdateSettingsResponse{Settings: settings}), nil
}

// ChangeAdminPassword stores a new bcrypt hash for the admin password.
func (s *LedgerService) ChangeAdminPassword(ctx context.Context, req *connect.Request[api.ChangeAdminPasswordRequest]) (*connect.Response[api.Empty], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, connectError(book.ErrUnauthorized)
	}
	if err := s.admin.ValidateCredential(req.Msg.NewPassword); err != nil {
		return nil, connectError(err)
	}

	hash, err := auth.HashPassword(req.Msg.NewPassword)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if err := s.book.SetAdminPasswordHash(ctx, user, hash); err != nil {
		return nil, connectError(err)
	}
	s.logger.Info("Admin password changed")
	return connect.NewResponse(&api.Empty{}), nil
}

// MarkNotificationsRead marks the whole feed as read.
func (s *LedgerService) MarkNotificationsRead(ctx context.Context, req *connect.Request[api.MarkNotificationsReadRequest]) (*connect.Response[api.Empty], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.book.MarkAllNotificationsRead(ctx, user); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}

// ClearNotifications empties the feed.
func (s *LedgerService) ClearNotifications(ctx context.Context, req *connect.Request[api.ClearNotificationsRequest]) (*connect.Response[api.Empty], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.book.ClearNotifications(ctx, user); err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.Empty{}), nil
}
