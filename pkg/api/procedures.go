package api

const (
	// AuthServiceName is the fully-qualified name of the AuthService.
	AuthServiceName = "chitfund.v1.AuthService"
	// LedgerServiceName is the fully-qualified name of the LedgerService.
	LedgerServiceName = "chitfund.v1.LedgerService"
)

// AuthService procedures.
const (
	AuthServiceAdminLoginProcedure = "/" + AuthServiceName + "/AdminLogin"
	AuthServiceRequestOTPProcedure = "/" + AuthServiceName + "/RequestOTP"
	AuthServiceVerifyOTPProcedure  = "/" + AuthServiceName + "/VerifyOTP"
	AuthServiceMeProcedure         = "/" + AuthServiceName + "/Me"
)

// LedgerService query procedures.
const (
	LedgerServiceGetGroupProcedure            = "/" + LedgerServiceName + "/GetGroup"
	LedgerServiceGetDashboardProcedure        = "/" + LedgerServiceName + "/GetDashboard"
	LedgerServiceGetStatementProcedure        = "/" + LedgerServiceName + "/GetStatement"
	LedgerServiceExportStatementProcedure     = "/" + LedgerServiceName + "/ExportStatement"
	LedgerServiceGetMonthlyReportProcedure    = "/" + LedgerServiceName + "/GetMonthlyReport"
	LedgerServiceExportMonthlyReportProcedure = "/" + LedgerServiceName + "/ExportMonthlyReport"
	LedgerServiceListActiveLoansProcedure     = "/" + LedgerServiceName + "/ListActiveLoans"
	LedgerServiceListExpensesProcedure        = "/" + LedgerServiceName + "/ListExpenses"
	LedgerServiceListMeetingNotesProcedure    = "/" + LedgerServiceName + "/ListMeetingNotes"
	LedgerServiceListNotificationsProcedure   = "/" + LedgerServiceName + "/ListNotifications"
	LedgerServiceSuggestPaymentProcedure      = "/" + LedgerServiceName + "/SuggestPayment"
	LedgerServiceGetInsightsProcedure         = "/" + LedgerServiceName + "/GetInsights"
)

// LedgerService mutation procedures.
const (
	LedgerServiceIssueLoanProcedure             = "/" + LedgerServiceName + "/IssueLoan"
	LedgerServiceRecordPaymentProcedure         = "/" + LedgerServiceName + "/RecordPayment"
	LedgerServiceAdjustInterestRateProcedure    = "/" + LedgerServiceName + "/AdjustInterestRate"
	LedgerServiceAddMemberProcedure             = "/" + LedgerServiceName + "/AddMember"
	LedgerServiceUpdateMemberProcedure          = "/" + LedgerServiceName + "/UpdateMember"
	LedgerServiceDeleteMemberProcedure          = "/" + LedgerServiceName + "/DeleteMember"
	LedgerServiceAddAdminPaymentProcedure       = "/" + LedgerServiceName + "/AddAdminPayment"
	LedgerServiceAddMiscPaymentProcedure        = "/" + LedgerServiceName + "/AddMiscPayment"
	LedgerServiceSetSavingsTargetProcedure      = "/" + LedgerServiceName + "/SetSavingsTarget"
	LedgerServiceRemoveSavingsTargetProcedure   = "/" + LedgerServiceName + "/RemoveSavingsTarget"
	LedgerServiceAddMeetingNoteProcedure        = "/" + LedgerServiceName + "/AddMeetingNote"
	LedgerServicePublishMeetingNoteProcedure    = "/" + LedgerServiceName + "/PublishMeetingNote"
	LedgerServiceDeleteMeetingNoteProcedure     = "/" + LedgerServiceName + "/DeleteMeetingNote"
	LedgerServiceUpdateSettingsProcedure        = "/" + LedgerServiceName + "/UpdateSettings"
	LedgerServiceChangeAdminPasswordProcedure   = "/" + LedgerServiceName + "/ChangeAdminPassword"
	LedgerServiceMarkNotificationsReadProcedure = "/" + LedgerServiceName + "/MarkNotificationsRead"
	LedgerServiceClearNotificationsProcedure    = "/" + LedgerServiceName + "/ClearNotifications"
)
