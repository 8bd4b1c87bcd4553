package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/chitfund/pkg/api"
)

// NewAuthServiceHandler builds an HTTP handler for the AuthService. It
// returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc *AuthService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(api.AuthServiceAdminLoginProcedure, connect.NewUnaryHandler(api.AuthServiceAdminLoginProcedure, svc.AdminLogin, opts...))
	mux.Handle(api.AuthServiceRequestOTPProcedure, connect.NewUnaryHandler(api.AuthServiceRequestOTPProcedure, svc.RequestOTP, opts...))
	mux.Handle(api.AuthServiceVerifyOTPProcedure, connect.NewUnaryHandler(api.AuthServiceVerifyOTPProcedure, svc.VerifyOTP, opts...))
	mux.Handle(api.AuthServiceMeProcedure, connect.NewUnaryHandler(api.AuthServiceMeProcedure, svc.Me, opts...))
	return "/" + api.AuthServiceName + "/", mux
}

// NewLedgerServiceHandler builds an HTTP handler for the LedgerService. Every
// procedure expects the session user in the request context, so opts must
// include an authenticating interceptor.
func NewLedgerServiceHandler(svc *LedgerService, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
	mux := http.NewServeMux()

	// Queries
	mux.Handle(api.LedgerServiceGetGroupProcedure, connect.NewUnaryHandler(api.LedgerServiceGetGroupProcedure, svc.GetGroup, opts...))
	mux.Handle(api.LedgerServiceGetDashboardProcedure, connect.NewUnaryHandler(api.LedgerServiceGetDashboardProcedure, svc.GetDashboard, opts...))
	mux.Handle(api.LedgerServiceGetStatementProcedure, connect.NewUnaryHandler(api.LedgerServiceGetStatementProcedure, svc.GetStatement, opts...))
	mux.Handle(api.LedgerServiceExportStatementProcedure, connect.NewUnaryHandler(api.LedgerServiceExportStatementProcedure, svc.ExportStatement, opts...))
	mux.Handle(api.LedgerServiceGetMonthlyReportProcedure, connect.NewUnaryHandler(api.LedgerServiceGetMonthlyReportProcedure, svc.GetMonthlyReport, opts...))
	mux.Handle(api.LedgerServiceExportMonthlyReportProcedure, connect.NewUnaryHandler(api.LedgerServiceExportMonthlyReportProcedure, svc.ExportMonthlyReport, opts...))
	mux.Handle(api.LedgerServiceListActiveLoansProcedure, connect.NewUnaryHandler(api.LedgerServiceListActiveLoansProcedure, svc.ListActiveLoans, opts...))
	mux.Handle(api.LedgerServiceListExpensesProcedure, connect.NewUnaryHandler(api.LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...))
	mux.Handle(api.LedgerServiceListMeetingNotesProcedure, connect.NewUnaryHandler(api.LedgerServiceListMeetingNotesProcedure, svc.ListMeetingNotes, opts...))
	mux.Handle(api.LedgerServiceListNotificationsProcedure, connect.NewUnaryHandler(api.LedgerServiceListNotificationsProcedure, svc.ListNotifications, opts...))
	mux.Handle(api.LedgerServiceSuggestPaymentProcedure, connect.NewUnaryHandler(api.LedgerServiceSuggestPaymentProcedure, svc.SuggestPayment, opts...))
	mux.Handle(api.LedgerServiceGetInsightsProcedure, connect.NewUnaryHandler(api.LedgerServiceGetInsightsProcedure, svc.GetInsights, opts...))

	// Mutations
	mux.Handle(api.LedgerServiceIssueLoanProcedure, connect.NewUnaryHandler(api.LedgerServiceIssueLoanProcedure, svc.IssueLoan, opts...))
	mux.Handle(api.LedgerServiceRecordPaymentProcedure, connect.NewUnaryHandler(api.LedgerServiceRecordPaymentProcedure, svc.RecordPayment, opts...))
	mux.Handle(api.LedgerServiceAdjustInterestRateProcedure, connect.NewUnaryHandler(api.LedgerServiceAdjustInterestRateProcedure, svc.AdjustInterestRate, opts...))
	mux.Handle(api.LedgerServiceAddMemberProcedure, connect.NewUnaryHandler(api.LedgerServiceAddMemberProcedure, svc.AddMember, opts...))
	mux.Handle(api.LedgerServiceUpdateMemberProcedure, connect.NewUnaryHandler(api.LedgerServiceUpdateMemberProcedure, svc.UpdateMember, opts...))
	mux.Handle(api.LedgerServiceDeleteMemberProcedure, connect.NewUnaryHandler(api.LedgerServiceDeleteMemberProcedure, svc.DeleteMember, opts...))
	mux.Handle(api.LedgerServiceAddAdminPaymentProcedure, connect.NewUnaryHandler(api.LedgerServiceAddAdminPaymentProcedure, svc.AddAdminPayment, opts...))
	mux.Handle(api.LedgerServiceAddMiscPaymentProcedure, connect.NewUnaryHandler(api.LedgerServiceAddMiscPaymentProcedure, svc.AddMiscPayment, opts...))
	mux.Handle(api.LedgerServiceSetSavingsTargetProcedure, connect.NewUnaryHandler(api.LedgerServiceSetSavingsTargetProcedure, svc.SetSavingsTarget, opts...))
	mux.Handle(api.LedgerServiceRemoveSavingsTargetProcedure, connect.NewUnaryHandler(api.LedgerServiceRemoveSavingsTargetProcedure, svc.RemoveSavingsTarget, opts...))
	mux.Handle(api.LedgerServiceAddMeetingNoteProcedure, connect.NewUnaryHandler(api.LedgerServiceAddMeetingNoteProcedure, svc.AddMeetingNote, opts...))
	mux.Handle(api.LedgerServicePublishMeetingNoteProcedure, connect.NewUnaryHandler(api.LedgerServicePublishMeetingNoteProcedure, svc.PublishMeetingNote, opts...))
	mux.Handle(api.LedgerServiceDeleteMeetingNoteProcedure, connect.NewUnaryHandler(api.LedgerServiceDeleteMeetingNoteProcedure, svc.DeleteMeetingNote, opts...))
	mux.Handle(api.LedgerServiceUpdateSettingsProcedure, connect.NewUnaryHandler(api.LedgerServiceUpdateSettingsProcedure, svc.UpdateSettings, opts...))
	mux.Handle(api.LedgerServiceChangeAdminPasswordProcedure, connect.NewUnaryHandler(api.LedgerServiceChangeAdminPasswordProcedure, svc.ChangeAdminPassword, opts...))
	mux.Handle(api.LedgerServiceMarkNotificationsReadProcedure, connect.NewUnaryHandler(api.LedgerServiceMarkNotificationsReadProcedure, svc.MarkNotificationsRead, opts...))
	mux.Handle(api.LedgerServiceClearNotificationsProcedure, connect.NewUnaryHandler(api.LedgerServiceClearNotificationsProcedure, svc.ClearNotifications, opts...))

	return "/" + api.LedgerServiceName + "/", mux
}
