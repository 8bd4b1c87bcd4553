package api

import (
	"context"
	"strings"

	"connectrpc.com/connect"
)

// BearerToken returns a client interceptor that authenticates every call
// with token.
func BearerToken(token string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				req.Header().Set("Authorization", "Bearer "+token)
			}
			return next(ctx, req)
		}
	}
}

// AuthServiceClient is a client for the AuthService.
type AuthServiceClient struct {
	adminLogin *connect.Client[AdminLoginRequest, LoginResponse]
	requestOTP *connect.Client[RequestOTPRequest, RequestOTPResponse]
	verifyOTP  *connect.Client[VerifyOTPRequest, LoginResponse]
	me         *connect.Client[MeRequest, MeResponse]
}

// NewAuthServiceClient constructs a client for the AuthService. The baseURL is the
// server root, for example http://localhost:8080.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &AuthServiceClient{
		adminLogin: connect.NewClient[AdminLoginRequest, LoginResponse](httpClient, baseURL+AuthServiceAdminLoginProcedure, opts...),
		requestOTP: connect.NewClient[RequestOTPRequest, RequestOTPResponse](httpClient, baseURL+AuthServiceRequestOTPProcedure, opts...),
		verifyOTP:  connect.NewClient[VerifyOTPRequest, LoginResponse](httpClient, baseURL+AuthServiceVerifyOTPProcedure, opts...),
		me:         connect.NewClient[MeRequest, MeResponse](httpClient, baseURL+AuthServiceMeProcedure, opts...),
	}
}

// AdminLogin calls chitfund.v1.AuthService.AdminLogin.
func (c *AuthServiceClient) AdminLogin(ctx context.Context, req *connect.Request[AdminLoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.adminLogin.CallUnary(ctx, req)
}

// RequestOTP calls chitfund.v1.AuthService.RequestOTP.
func (c *AuthServiceClient) RequestOTP(ctx context.Context, req *connect.Request[RequestOTPRequest]) (*connect.Response[RequestOTPResponse], error) {
	return c.requestOTP.CallUnary(ctx, req)
}

// VerifyOTP calls chitfund.v1.AuthService.VerifyOTP.
func (c *AuthServiceClient) VerifyOTP(ctx context.Context, req *connect.Request[VerifyOTPRequest]) (*connect.Response[LoginResponse], error) {
	return c.verifyOTP.CallUnary(ctx, req)
}

// Me calls chitfund.v1.AuthService.Me.
func (c *AuthServiceClient) Me(ctx context.Context, req *connect.Request[MeRequest]) (*connect.Response[MeResponse], error) {
	return c.me.CallUnary(ctx, req)
}

// LedgerServiceClient is a client for the LedgerService.
type LedgerServiceClient struct {
	getGroup              *connect.Client[GetGroupRequest, GetGroupResponse]
	getDashboard          *connect.Client[GetDashboardRequest, GetDashboardResponse]
	getStatement          *connect.Client[GetStatementRequest, GetStatementResponse]
	exportStatement       *connect.Client[ExportStatementRequest, ExportResponse]
	getMonthlyReport      *connect.Client[GetMonthlyReportRequest, GetMonthlyReportResponse]
	exportMonthlyReport   *connect.Client[ExportMonthlyReportRequest, ExportResponse]
	listActiveLoans       *connect.Client[ListActiveLoansRequest, ListActiveLoansResponse]
	listExpenses          *connect.Client[ListExpensesRequest, ListExpensesResponse]
	listMeetingNotes      *connect.Client[ListMeetingNotesRequest, ListMeetingNotesResponse]
	listNotifications     *connect.Client[ListNotificationsRequest, ListNotificationsResponse]
	suggestPayment        *connect.Client[SuggestPaymentRequest, SuggestPaymentResponse]
	getInsights           *connect.Client[GetInsightsRequest, GetInsightsResponse]
	issueLoan             *connect.Client[IssueLoanRequest, IssueLoanResponse]
	recordPayment         *connect.Client[RecordPaymentRequest, RecordPaymentResponse]
	adjustInterestRate    *connect.Client[AdjustInterestRateRequest, AdjustInterestRateResponse]
	addMember             *connect.Client[AddMemberRequest, MemberResponse]
	updateMember          *connect.Client[UpdateMemberRequest, MemberResponse]
	deleteMember          *connect.Client[DeleteMemberRequest, Empty]
	addAdminPayment       *connect.Client[AddAdminPaymentRequest, AddAdminPaymentResponse]
	addMiscPayment        *connect.Client[AddMiscPaymentRequest, AddMiscPaymentResponse]
	setSavingsTarget      *connect.Client[SetSavingsTargetRequest, Empty]
	removeSavingsTarget   *connect.Client[RemoveSavingsTargetRequest, Empty]
	addMeetingNote        *connect.Client[AddMeetingNoteRequest, MeetingNoteResponse]
	publishMeetingNote    *connect.Client[PublishMeetingNoteRequest, MeetingNoteResponse]
	deleteMeetingNote     *connect.Client[DeleteMeetingNoteRequest, Empty]
	updateSettings        *connect.Client[UpdateSettingsRequest, UpdateSettingsResponse]
	changeAdminPassword   *connect.Client[ChangeAdminPasswordRequest, Empty]
	markNotificationsRead *connect.Client[MarkNotificationsReadRequest, Empty]
	clearNotifications    *connect.Client[ClearNotificationsRequest, Empty]
}

// NewLedgerServiceClient constructs a client for the LedgerService. The baseURL is the
// server root, for example http://localhost:8080.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(Codec{})}, opts...)
	return &LedgerServiceClient{
		getGroup:              connect.NewClient[GetGroupRequest, GetGroupResponse](httpClient, baseURL+LedgerServiceGetGroupProcedure, opts...),
		getDashboard:          connect.NewClient[GetDashboardRequest, GetDashboardResponse](httpClient, baseURL+LedgerServiceGetDashboardProcedure, opts...),
		getStatement:          connect.NewClient[GetStatementRequest, GetStatementResponse](httpClient, baseURL+LedgerServiceGetStatementProcedure, opts...),
		exportStatement:       connect.NewClient[ExportStatementRequest, ExportResponse](httpClient, baseURL+LedgerServiceExportStatementProcedure, opts...),
		getMonthlyReport:      connect.NewClient[GetMonthlyReportRequest, GetMonthlyReportResponse](httpClient, baseURL+LedgerServiceGetMonthlyReportProcedure, opts...),
		exportMonthlyReport:   connect.NewClient[ExportMonthlyReportRequest, ExportResponse](httpClient, baseURL+LedgerServiceExportMonthlyReportProcedure, opts...),
		listActiveLoans:       connect.NewClient[ListActiveLoansRequest, ListActiveLoansResponse](httpClient, baseURL+LedgerServiceListActiveLoansProcedure, opts...),
		listExpenses:          connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		listMeetingNotes:      connect.NewClient[ListMeetingNotesRequest, ListMeetingNotesResponse](httpClient, baseURL+LedgerServiceListMeetingNotesProcedure, opts...),
		listNotifications:     connect.NewClient[ListNotificationsRequest, ListNotificationsResponse](httpClient, baseURL+LedgerServiceListNotificationsProcedure, opts...),
		suggestPayment:        connect.NewClient[SuggestPaymentRequest, SuggestPaymentResponse](httpClient, baseURL+LedgerServiceSuggestPaymentProcedure, opts...),
		getInsights:           connect.NewClient[GetInsightsRequest, GetInsightsResponse](httpClient, baseURL+LedgerServiceGetInsightsProcedure, opts...),
		issueLoan:             connect.NewClient[IssueLoanRequest, IssueLoanResponse](httpClient, baseURL+LedgerServiceIssueLoanProcedure, opts...),
		recordPayment:         connect.NewClient[RecordPaymentRequest, RecordPaymentResponse](httpClient, baseURL+LedgerServiceRecordPaymentProcedure, opts...),
		adjustInterestRate:    connect.NewClient[AdjustInterestRateRequest, AdjustInterestRateResponse](httpClient, baseURL+LedgerServiceAdjustInterestRateProcedure, opts...),
		addMember:             connect.NewClient[AddMemberRequest, MemberResponse](httpClient, baseURL+LedgerServiceAddMemberProcedure, opts...),
		updateMember:          connect.NewClient[UpdateMemberRequest, MemberResponse](httpClient, baseURL+LedgerServiceUpdateMemberProcedure, opts...),
		deleteMember:          connect.NewClient[DeleteMemberRequest, Empty](httpClient, baseURL+LedgerServiceDeleteMemberProcedure, opts...),
		addAdminPayment:       connect.NewClient[AddAdminPaymentRequest, AddAdminPaymentResponse](httpClient, baseURL+LedgerServiceAddAdminPaymentProcedure, opts...),
		addMiscPayment:        connect.NewClient[AddMiscPaymentRequest, AddMiscPaymentResponse](httpClient, baseURL+LedgerServiceAddMiscPaymentProcedure, opts...),
		setSavingsTarget:      connect.NewClient[SetSavingsTargetRequest, Empty](httpClient, baseURL+LedgerServiceSetSavingsTargetProcedure, opts...),
		removeSavingsTarget:   connect.NewClient[RemoveSavingsTargetRequest, Empty](httpClient, baseURL+LedgerServiceRemoveSavingsTargetProcedure, opts...),
		addMeetingNote:        connect.NewClient[AddMeetingNoteRequest, MeetingNoteResponse](httpClient, baseURL+LedgerServiceAddMeetingNoteProcedure, opts...),
		publishMeetingNote:    connect.NewClient[PublishMeetingNoteRequest, MeetingNoteResponse](httpClient, baseURL+LedgerServicePublishMeetingNoteProcedure, opts...),
		deleteMeetingNote:     connect.NewClient[DeleteMeetingNoteRequest, Empty](httpClient, baseURL+LedgerServiceDeleteMeetingNoteProcedure, opts...),
		updateSettings:        connect.NewClient[UpdateSettingsRequest, UpdateSettingsResponse](httpClient, baseURL+LedgerServiceUpdateSettingsProcedure, opts...),
		changeAdminPassword:   connect.NewClient[ChangeAdminPasswordRequest, Empty](httpClient, baseURL+LedgerServiceChangeAdminPasswordProcedure, opts...),
		markNotificationsRead: connect.NewClient[MarkNotificationsReadRequest, Empty](httpClient, baseURL+LedgerServiceMarkNotificationsReadProcedure, opts...),
		clearNotifications:    connect.NewClient[ClearNotificationsRequest, Empty](httpClient, baseURL+LedgerServiceClearNotificationsProcedure, opts...),
	}
}

// GetGroup calls chitfund.v1.LedgerService.GetGroup.
func (c *LedgerServiceClient) GetGroup(ctx context.Context, req *connect.Request[GetGroupRequest]) (*connect.Response[GetGroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

// GetDashboard calls chitfund.v1.LedgerService.GetDashboard.
func (c *LedgerServiceClient) GetDashboard(ctx context.Context, req *connect.Request[GetDashboardRequest]) (*connect.Response[GetDashboardResponse], error) {
	return c.getDashboard.CallUnary(ctx, req)
}

// GetStatement calls chitfund.v1.LedgerService.GetStatement.
func (c *LedgerServiceClient) GetStatement(ctx context.Context, req *connect.Request[GetStatementRequest]) (*connect.Response[GetStatementResponse], error) {
	return c.getStatement.CallUnary(ctx, req)
}

// ExportStatement calls chitfund.v1.LedgerService.ExportStatement.
func (c *LedgerServiceClient) ExportStatement(ctx context.Context, req *connect.Request[ExportStatementRequest]) (*connect.Response[ExportResponse], error) {
	return c.exportStatement.CallUnary(ctx, req)
}

// GetMonthlyReport calls chitfund.v1.LedgerService.GetMonthlyReport.
func (c *LedgerServiceClient) GetMonthlyReport(ctx context.Context, req *connect.Request[GetMonthlyReportRequest]) (*connect.Response[GetMonthlyReportResponse], error) {
	return c.getMonthlyReport.CallUnary(ctx, req)
}

// ExportMonthlyReport calls chitfund.v1.LedgerService.ExportMonthlyReport.
func (c *LedgerServiceClient) ExportMonthlyReport(ctx context.Context, req *connect.Request[ExportMonthlyReportRequest]) (*connect.Response[ExportResponse], error) {
	return c.exportMonthlyReport.CallUnary(ctx, req)
}

// ListActiveLoans calls chitfund.v1.LedgerService.ListActiveLoans.
func (c *LedgerServiceClient) ListActiveLoans(ctx context.Context, req *connect.Request[ListActiveLoansRequest]) (*connect.Response[ListActiveLoansResponse], error) {
	return c.listActiveLoans.CallUnary(ctx, req)
}

// ListExpenses calls chitfund.v1.LedgerService.ListExpenses.
func (c *LedgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

// ListMeetingNotes calls chitfund.v1.LedgerService.ListMeetingNotes.
func (c *LedgerServiceClient) ListMeetingNotes(ctx context.Context, req *connect.Request[ListMeetingNotesRequest]) (*connect.Response[ListMeetingNotesResponse], error) {
	return c.listMeetingNotes.CallUnary(ctx, req)
}

// ListNotifications calls chitfund.v1.LedgerService.ListNotifications.
func (c *LedgerServiceClient) ListNotifications(ctx context.Context, req *connect.Request[ListNotificationsRequest]) (*connect.Response[ListNotificationsResponse], error) {
	return c.listNotifications.CallUnary(ctx, req)
}

// SuggestPayment calls chitfund.v1.LedgerService.SuggestPayment.
func (c *LedgerServiceClient) SuggestPayment(ctx context.Context, req *connect.Request[SuggestPaymentRequest]) (*connect.Response[SuggestPaymentResponse], error) {
	return c.suggestPayment.CallUnary(ctx, req)
}

// GetInsights calls chitfund.v1.LedgerService.GetInsights.
func (c *LedgerServiceClient) GetInsights(ctx context.Context, req *connect.Request[GetInsightsRequest]) (*connect.Response[GetInsightsResponse], error) {
	return c.getInsights.CallUnary(ctx, req)
}

// IssueLoan calls chitfund.v1.LedgerService.IssueLoan.
func (c *LedgerServiceClient) IssueLoan(ctx context.Context, req *connect.Request[IssueLoanRequest]) (*connect.Response[IssueLoanResponse], error) {
	return c.issueLoan.CallUnary(ctx, req)
}

// RecordPayment calls chitfund.v1.LedgerService.RecordPayment.
func (c *LedgerServiceClient) RecordPayment(ctx context.Context, req *connect.Request[RecordPaymentRequest]) (*connect.Response[RecordPaymentResponse], error) {
	return c.recordPayment.CallUnary(ctx, req)
}

// AdjustInterestRate calls chitfund.v1.LedgerService.AdjustInterestRate.
func (c *LedgerServiceClient) AdjustInterestRate(ctx context.Context, req *connect.Request[AdjustInterestRateRequest]) (*connect.Response[AdjustInterestRateResponse], error) {
	return c.adjustInterestRate.CallUnary(ctx, req)
}

// AddMember calls chitfund.v1.LedgerService.AddMember.
func (c *LedgerServiceClient) AddMember(ctx context.Context, req *connect.Request[AddMemberRequest]) (*connect.Response[MemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

// UpdateMember calls chitfund.v1.LedgerService.UpdateMember.
func (c *LedgerServiceClient) UpdateMember(ctx context.Context, req *connect.Request[UpdateMemberRequest]) (*connect.Response[MemberResponse], error) {
	return c.updateMember.CallUnary(ctx, req)
}

// DeleteMember calls chitfund.v1.LedgerService.DeleteMember.
func (c *LedgerServiceClient) DeleteMember(ctx context.Context, req *connect.Request[DeleteMemberRequest]) (*connect.Response[Empty], error) {
	return c.deleteMember.CallUnary(ctx, req)
}

// AddAdminPayment calls chitfund.v1.LedgerService.AddAdminPayment.
func (c *LedgerServiceClient) AddAdminPayment(ctx context.Context, req *connect.Request[AddAdminPaymentRequest]) (*connect.Response[AddAdminPaymentResponse], error) {
	return c.addAdminPayment.CallUnary(ctx, req)
}

// AddMiscPayment calls chitfund.v1.LedgerService.AddMiscPayment.
func (c *LedgerServiceClient) AddMiscPayment(ctx context.Context, req *connect.Request[AddMiscPaymentRequest]) (*connect.Response[AddMiscPaymentResponse], error) {
	return c.addMiscPayment.CallUnary(ctx, req)
}

// SetSavingsTarget calls chitfund.v1.LedgerService.SetSavingsTarget.
func (c *LedgerServiceClient) SetSavingsTarget(ctx context.Context, req *connect.Request[SetSavingsTargetRequest]) (*connect.Response[Empty], error) {
	return c.setSavingsTarget.CallUnary(ctx, req)
}

// RemoveSavingsTarget calls chitfund.v1.LedgerService.RemoveSavingsTarget.
func (c *LedgerServiceClient) RemoveSavingsTarget(ctx context.Context, req *connect.Request[RemoveSavingsTargetRequest]) (*connect.Response[Empty], error) {
	return c.removeSavingsTarget.CallUnary(ctx, req)
}

// AddMeetingNote calls chitfund.v1.LedgerService.AddMeetingNote.
func (c *LedgerServiceClient) AddMeetingNote(ctx context.Context, req *connect.Request[AddMeetingNoteRequest]) (*connect.Response[MeetingNoteResponse], error) {
	return c.addMeetingNote.CallUnary(ctx, req)
}

// PublishMeetingNote calls chitfund.v1.LedgerService.PublishMeetingNote.
func (c *LedgerServiceClient) PublishMeetingNote(ctx context.Context, req *connect.Request[PublishMeetingNoteRequest]) (*connect.Response[MeetingNoteResponse], error) {
	return c.publishMeetingNote.CallUnary(ctx, req)
}

// DeleteMeetingNote calls chitfund.v1.LedgerService.DeleteMeetingNote.
func (c *LedgerServiceClient) DeleteMeetingNote(ctx context.Context, req *connect.Request[DeleteMeetingNoteRequest]) (*connect.Response[Empty], error) {
	return c.deleteMeetingNote.CallUnary(ctx, req)
}

// UpdateSettings calls chitfund.v1.LedgerService.UpdateSettings.
func (c *LedgerServiceClient) UpdateSettings(ctx context.Context, req *connect.Request[UpdateSettingsRequest]) (*connect.Response[UpdateSettingsResponse], error) {
	return c.updateSettings.CallUnary(ctx, req)
}

// ChangeAdminPassword calls chitfund.v1.LedgerService.ChangeAdminPassword.
func (c *LedgerServiceClient) ChangeAdminPassword(ctx context.Context, req *connect.Request[ChangeAdminPasswordRequest]) (*connect.Response[Empty], error) {
	return c.changeAdminPassword.CallUnary(ctx, req)
}

// MarkNotificationsRead calls chitfund.v1.LedgerService.MarkNotificationsRead.
func (c *LedgerServiceClient) MarkNotificationsRead(ctx context.Context, req *connect.Request[MarkNotificationsReadRequest]) (*connect.Response[Empty], error) {
	return c.markNotificationsRead.CallUnary(ctx, req)
}

// ClearNotifications calls chitfund.v1.LedgerService.ClearNotifications.
func (c *LedgerServiceClient) ClearNotifications(ctx context.Context, req *connect.Request[ClearNotificationsRequest]) (*connect.Response[Empty], error) {
	return c.clearNotifications.CallUnary(ctx, req)
}
