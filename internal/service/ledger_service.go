package service

import (
	"bytes"
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"golang.org/x/text/message"

	"github.com/mmynk/chitfund/internal/auth"
	"github.com/mmynk/chitfund/internal/book"
	"github.com/mmynk/chitfund/internal/export"
	"github.com/mmynk/chitfund/internal/insights"
	"github.com/mmynk/chitfund/internal/middleware"
	"github.com/mmynk/chitfund/internal/models"
	"github.com/mmynk/chitfund/pkg/api"
)

// LedgerService implements the LedgerService RPC interface on top of a Book.
type LedgerService struct {
	book    *book.Book
	advisor *insights.Advisor
	admin   auth.Authenticator
	printer *message.Printer
	logger  *slog.Logger
}

// NewLedgerService creates a ledger service. admin validates new admin
// passwords; printer formats amounts in printable statements.
func NewLedgerService(b *book.Book, advisor *insights.Advisor, admin auth.Authenticator, printer *message.Printer, logger *slog.Logger) *LedgerService {
	return &LedgerService{
		book:    b,
		advisor: advisor,
		admin:   admin,
		printer: printer,
		logger:  logger,
	}
}

// actor returns the session user placed in ctx by the auth interceptor.
func actor(ctx context.Context) (models.AuthUser, error) {
	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		return models.AuthUser{}, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return user, nil
}

// GetGroup returns the group as visible to the caller.
func (s *LedgerService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	view, err := s.book.View(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.GetGroupResponse{Group: view}), nil
}

// GetDashboard returns headline stats, payment alerts and the growth chart.
func (s *LedgerService) GetDashboard(ctx context.Context, req *connect.Request[api.GetDashboardRequest]) (*connect.Response[api.GetDashboardResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.book.Dashboard(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}
	alerts, err := s.book.PaymentAlerts(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}
	growth, err := s.book.GrowthSeries(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}
	_, unread, err := s.book.MeetingNotes(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetDashboardResponse{
		Stats:       toAPIStats(stats),
		Alerts:      toAPIAlerts(alerts),
		Growth:      toAPIGrowth(growth),
		UnreadNotes: unread,
	}), nil
}

// GetStatement returns a member's loan statement, newest entry first.
func (s *LedgerService) GetStatement(ctx context.Context, req *connect.Request[api.GetStatementRequest]) (*connect.Response[api.GetStatementResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	stmt, err := s.book.Statement(ctx, user, req.Msg.MemberID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(toAPIStatement(stmt)), nil
}

// ExportStatement renders a member's statement as printable text.
func (s *LedgerService) ExportStatement(ctx context.Context, req *connect.Request[api.ExportStatementRequest]) (*connect.Response[api.ExportResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	member, err := s.book.Member(ctx, user, req.Msg.MemberID)
	if err != nil {
		return nil, connectError(err)
	}
	stmt, err := s.book.Statement(ctx, user, req.Msg.MemberID)
	if err != nil {
		return nil, connectError(err)
	}
	view, err := s.book.View(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}

	var buf bytes.Buffer
	if err := export.WriteStatement(&buf, s.printer, view.Settings.Name, member, stmt); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&api.ExportResponse{
		Filename:    export.StatementFilename(member),
		ContentType: "text/plain; charset=utf-8",
		Content:     buf.String(),
	}), nil
}

// GetMonthlyReport summarizes one month's collections, expenses and dues.
func (s *LedgerService) GetMonthlyReport(ctx context.Context, req *connect.Request[api.GetMonthlyReportRequest]) (*connect.Response[api.GetMonthlyReportResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	report, err := s.book.MonthlyReport(ctx, user, req.Msg.Month)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.GetMonthlyReportResponse{Report: toAPIReport(report)}), nil
}

// ExportMonthlyReport renders a month's report as CSV.
func (s *LedgerService) ExportMonthlyReport(ctx context.Context, req *connect.Request[api.ExportMonthlyReportRequest]) (*connect.Response[api.ExportResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	report, err := s.book.MonthlyReport(ctx, user, req.Msg.Month)
	if err != nil {
		return nil, connectError(err)
	}
	view, err := s.book.View(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}

	names := make(map[string]string, len(view.Members))
	for _, m := range view.Members {
		names[m.ID] = m.Name
	}

	var buf bytes.Buffer
	if err := export.WriteMonthlyReportCSV(&buf, report, names); err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.logger.Info("Monthly report exported", "month", report.Month, "records", len(report.Records))
	return connect.NewResponse(&api.ExportResponse{
		Filename:    export.MonthlyReportFilename(report.Month),
		ContentType: "text/csv",
		Content:     buf.String(),
	}), nil
}

// ListActiveLoans lists members with outstanding principal.
func (s *LedgerService) ListActiveLoans(ctx context.Context, req *connect.Request[api.ListActiveLoansRequest]) (*connect.Response[api.ListActiveLoansResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	loans, err := s.book.ActiveLoans(ctx, user, req.Msg.Search, loanSortField(req.Msg.SortBy), req.Msg.Descending)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.ListActiveLoansResponse{Loans: toAPILoans(loans)}), nil
}

// ListExpenses returns the most recent admin and misc payments.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	feed, err := s.book.ExpenseFeed(ctx, user, req.Msg.Limit)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(feed)}), nil
}

// ListMeetingNotes returns the notes visible to the caller.
func (s *LedgerService) ListMeetingNotes(ctx context.Context, req *connect.Request[api.ListMeetingNotesRequest]) (*connect.Response[api.ListMeetingNotesResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	notes, unread, err := s.book.MeetingNotes(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.ListMeetingNotesResponse{Notes: notes, Unread: unread}), nil
}

// ListNotifications returns the notification feed.
func (s *LedgerService) ListNotifications(ctx context.Context, req *connect.Request[api.ListNotificationsRequest]) (*connect.Response[api.ListNotificationsResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	feed, err := s.book.Notifications(ctx, user)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.ListNotificationsResponse{Notifications: feed}), nil
}

// SuggestPayment prefills the payment form for a member and month.
func (s *LedgerService) SuggestPayment(ctx context.Context, req *connect.Request[api.SuggestPaymentRequest]) (*connect.Response[api.SuggestPaymentResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	sug, err := s.book.SuggestPayment(ctx, user, req.Msg.MemberID, req.Msg.Month)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.SuggestPaymentResponse{
		Savings:     sug.Savings,
		Interest:    sug.Interest,
		Principal:   sug.Principal,
		IsLate:      sug.IsLate,
		AlreadyPaid: sug.AlreadyPaid,
	}), nil
}

// GetInsights asks the AI advisor for a summary of the group. Advisor
// failures are reported in the response rather than as an RPC error.
func (s *LedgerService) GetInsights(ctx context.Context, req *connect.Request[api.GetInsightsRequest]) (*connect.Response[api.GetInsightsResponse], error) {
	user, err := actor(ctx)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin() {
		return nil, connectError(book.ErrUnauthorized)
	}

	summary, err := s.advisor.Insights(ctx, s.book.Snapshot())
	if err != nil {
		s.logger.Warn("Insights unavailable", "error", err)
		return connect.NewResponse(&api.GetInsightsResponse{Summary: summary}), nil
	}
	return connect.NewResponse(&api.GetInsightsResponse{Summary: summary, Available: true}), nil
}
