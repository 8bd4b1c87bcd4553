package api

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/models"
)

// Empty is returned by procedures with no result.
type Empty struct{}

// ─── Auth ───────────────────────────────────────────────────────────────────

type AdminLoginRequest struct {
	Password string `json:"password"`
}

type RequestOTPRequest struct {
	Phone string `json:"phone"`
}

type RequestOTPResponse struct {
	ExpiresInSeconds int64 `json:"expiresInSeconds"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// LoginResponse carries the bearer token for subsequent calls.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      models.AuthUser `json:"user"`
}

type MeRequest struct{}

type MeResponse struct {
	User models.AuthUser `json:"user"`
}

// ─── Queries ────────────────────────────────────────────────────────────────

type GetGroupRequest struct{}

// GetGroupResponse holds the group as visible to the caller.
type GetGroupResponse struct {
	Group *models.GroupData `json:"group"`
}

type GetDashboardRequest struct{}

type GetDashboardResponse struct {
	Stats       DashboardStats `json:"stats"`
	Alerts      []PaymentAlert `json:"alerts"`
	Growth      []GrowthPoint  `json:"growth"`
	UnreadNotes int            `json:"unreadNotes"`
}

type DashboardStats struct {
	TotalFunds        decimal.Decimal `json:"totalFunds"`
	ActiveLoans       decimal.Decimal `json:"activeLoans"`
	InterestEarned    decimal.Decimal `json:"interestEarned"`
	Penalties         decimal.Decimal `json:"penalties"`
	MonthlyCollection decimal.Decimal `json:"monthlyCollection"`
	GrowthSavings     decimal.Decimal `json:"growthSavings"`
	Expenses          decimal.Decimal `json:"expenses"`
	MembersWithLoans  int             `json:"membersWithLoans"`
}

type PaymentAlert struct {
	MemberID   string `json:"memberId"`
	MemberName string `json:"memberName"`
	Status     string `json:"status"`
	DueDay     int    `json:"dueDay"`
}

type GrowthPoint struct {
	Month      models.Month    `json:"month"`
	Savings    decimal.Decimal `json:"savings"`
	Cumulative decimal.Decimal `json:"cumulative"`
	Interest   decimal.Decimal `json:"interest"`
}

type GetStatementRequest struct {
	MemberID string `json:"memberId"`
}

// GetStatementResponse lists statement entries newest first.
type GetStatementResponse struct {
	MemberID string           `json:"memberId"`
	Balance  decimal.Decimal  `json:"balance"`
	Entries  []StatementEntry `json:"entries"`
}

type StatementEntry struct {
	ID            string           `json:"id"`
	Date          time.Time        `json:"date"`
	Type          string           `json:"type"`
	Amount        decimal.Decimal  `json:"amount"`
	PrincipalPaid decimal.Decimal  `json:"principalPaid"`
	Interest      decimal.Decimal  `json:"interest"`
	Balance       decimal.Decimal  `json:"balance"`
	Description   string           `json:"description"`
	OldRate       *decimal.Decimal `json:"oldRate,omitempty"`
	NewRate       *decimal.Decimal `json:"newRate,omitempty"`
	Reason        string           `json:"reason,omitempty"`
}

type ExportStatementRequest struct {
	MemberID string `json:"memberId"`
}

// ExportResponse carries a rendered document.
type ExportResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type GetMonthlyReportRequest struct {
	Month models.Month `json:"month"`
}

type GetMonthlyReportResponse struct {
	Report MonthlyReport `json:"report"`
}

type MonthlyReport struct {
	Month          models.Month           `json:"month"`
	Records        []models.PaymentRecord `json:"records"`
	AdminPayments  []models.AdminPayment  `json:"adminPayments"`
	MiscPayments   []models.MiscPayment   `json:"miscPayments"`
	TotalSavings   decimal.Decimal        `json:"totalSavings"`
	TotalPrincipal decimal.Decimal        `json:"totalPrincipal"`
	TotalInterest  decimal.Decimal        `json:"totalInterest"`
	TotalPenalty   decimal.Decimal        `json:"totalPenalty"`
	CollectionSum  decimal.Decimal        `json:"collectionSum"`
	ExpenseSum     decimal.Decimal        `json:"expenseSum"`
	NetFlow        decimal.Decimal        `json:"netFlow"`
	Dues           []Due                  `json:"dues"`
}

type Due struct {
	MemberID    string          `json:"memberId"`
	MemberName  string          `json:"memberName"`
	SavingsDue  decimal.Decimal `json:"savingsDue"`
	InterestDue decimal.Decimal `json:"interestDue"`
	TotalDue    decimal.Decimal `json:"totalDue"`
}

type ExportMonthlyReportRequest struct {
	Month models.Month `json:"month"`
}

type ListActiveLoansRequest struct {
	Search string `json:"search"`
	// SortBy is one of "name", "amount" (default) or "date".
	SortBy     string `json:"sortBy"`
	Descending bool   `json:"descending"`
}

type ListActiveLoansResponse struct {
	Loans []ActiveLoan `json:"loans"`
}

type ActiveLoan struct {
	Member           models.Member `json:"member"`
	DisbursementDate time.Time     `json:"disbursementDate"`
}

type ListExpensesRequest struct {
	Limit int `json:"limit"`
}

type ListExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}

type Expense struct {
	Kind        string          `json:"kind"`
	ID          string          `json:"id"`
	Month       models.Month    `json:"month"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Timestamp   time.Time       `json:"timestamp"`
}

type ListMeetingNotesRequest struct{}

type ListMeetingNotesResponse struct {
	Notes  []models.MeetingNote `json:"notes"`
	Unread int                  `json:"unread"`
}

type ListNotificationsRequest struct{}

type ListNotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

type SuggestPaymentRequest struct {
	MemberID string       `json:"memberId"`
	Month    models.Month `json:"month"`
}

type SuggestPaymentResponse struct {
	Savings     decimal.Decimal `json:"savings"`
	Interest    decimal.Decimal `json:"interest"`
	Principal   decimal.Decimal `json:"principal"`
	IsLate      bool            `json:"isLate"`
	AlreadyPaid bool            `json:"alreadyPaid"`
}

type GetInsightsRequest struct{}

// GetInsightsResponse holds the advisor's summary. When the advisor is
// unreachable Available is false and Summary holds a fallback message.
type GetInsightsResponse struct {
	Summary   string `json:"summary"`
	Available bool   `json:"available"`
}

// ─── Mutations ──────────────────────────────────────────────────────────────

type IssueLoanRequest struct {
	MemberID     string          `json:"memberId"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interestRate"`
}

type IssueLoanResponse struct {
	Loan   models.LoanIssuedRecord `json:"loan"`
	Member models.Member           `json:"member"`
}

// RecordPaymentRequest carries the payment amounts. The server assigns the
// record's ID and timestamp.
type RecordPaymentRequest struct {
	Record models.PaymentRecord `json:"record"`
}

type RecordPaymentResponse struct {
	Record models.PaymentRecord `json:"record"`
	Member models.Member        `json:"member"`
}

type AdjustInterestRateRequest struct {
	MemberID string          `json:"memberId"`
	NewRate  decimal.Decimal `json:"newRate"`
	Reason   string          `json:"reason"`
}

type AdjustInterestRateResponse struct {
	Change models.InterestRateChangeRecord `json:"change"`
}

// MemberFields are the editable member attributes. Opening fields apply
// only when adding a member.
type MemberFields struct {
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	JoiningDate      time.Time       `json:"joiningDate"`
	LoanCap          decimal.Decimal `json:"loanCap"`
	DueDay           *int            `json:"dueDay,omitempty"`
	OpeningPrincipal decimal.Decimal `json:"openingPrincipal"`
	OpeningRate      decimal.Decimal `json:"openingRate"`
}

type AddMemberRequest struct {
	Member MemberFields `json:"member"`
}

type UpdateMemberRequest struct {
	ID     string       `json:"id"`
	Member MemberFields `json:"member"`
}

type MemberResponse struct {
	Member models.Member `json:"member"`
}

type DeleteMemberRequest struct {
	ID string `json:"id"`
}

type AddAdminPaymentRequest struct {
	Payment models.AdminPayment `json:"payment"`
}

type AddAdminPaymentResponse struct {
	Payment models.AdminPayment `json:"payment"`
}

type AddMiscPaymentRequest struct {
	Payment models.MiscPayment `json:"payment"`
}

type AddMiscPaymentResponse struct {
	Payment models.MiscPayment `json:"payment"`
}

type SetSavingsTargetRequest struct {
	Month  models.Month    `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type RemoveSavingsTargetRequest struct {
	Month models.Month `json:"month"`
}

type AddMeetingNoteRequest struct {
	Month   models.Month `json:"month"`
	Content string       `json:"content"`
}

type PublishMeetingNoteRequest struct {
	ID string `json:"id"`
}

type DeleteMeetingNoteRequest struct {
	ID string `json:"id"`
}

type MeetingNoteResponse struct {
	Note models.MeetingNote `json:"note"`
}

type UpdateSettingsRequest struct {
	Name                 string          `json:"name"`
	MonthlySavingsAmount decimal.Decimal `json:"monthlySavingsAmount"`
	DefaultInterestRate  decimal.Decimal `json:"defaultInterestRate"`
	DueDay               int             `json:"dueDay"`
	InitialGrowthSavings decimal.Decimal `json:"initialGrowthSavings"`
	InitialNetFunds      decimal.Decimal `json:"initialNetFunds"`
}

type UpdateSettingsResponse struct {
	Settings models.GroupSettings `json:"settings"`
}

type ChangeAdminPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

type MarkNotificationsReadRequest struct{}

type ClearNotificationsRequest struct{}
