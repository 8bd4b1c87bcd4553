package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/auth"
	"github.com/mmynk/chitfund/internal/book"
	"github.com/mmynk/chitfund/internal/export"
	"github.com/mmynk/chitfund/internal/insights"
	"github.com/mmynk/chitfund/internal/middleware"
	"github.com/mmynk/chitfund/internal/models"
	"github.com/mmynk/chitfund/internal/storage"
	"github.com/mmynk/chitfund/internal/storage/sqlite"
	"github.com/mmynk/chitfund/pkg/api"
)

const adminPassword = "supersecret"

type captureSender struct {
	mu    sync.Mutex
	codes map[string]string
}

func (s *captureSender) SendCode(_ context.Context, phone, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[phone] = code
	return nil
}

func (s *captureSender) code(phone string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.codes[phone]
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(context.Context, string) (string, error) {
	return "Financial Health Score: 8", nil
}

type testEnv struct {
	url    string
	auth   *api.AuthServiceClient
	sender *captureSender
	book   *book.Book
}

func (e *testEnv) ledger(token string) *api.LedgerServiceClient {
	return api.NewLedgerServiceClient(http.DefaultClient, e.url, connect.WithInterceptors(api.BearerToken(token)))
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T) (*testEnv, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ledger := book.New(storage.NewGroup("Unity Savings Group"), book.WithSaver(store))

	admin, err := auth.NewPasswordAuthenticator(ledger, adminPassword)
	if err != nil {
		t.Fatalf("failed to create admin authenticator: %v", err)
	}
	sender := &captureSender{codes: make(map[string]string)}
	otp := auth.NewOTPAuthenticator(ledger, sender, 5*time.Minute)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	authSvc := NewAuthService(admin, otp, 5*time.Minute, jwtManager, logger)
	ledgerSvc := NewLedgerService(ledger, insights.NewAdvisor(stubSummarizer{}, time.Second), admin, export.NewPrinter("en"), logger)

	authPath, authHandler := NewAuthServiceHandler(authSvc,
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)))
	ledgerPath, ledgerHandler := NewLedgerServiceHandler(ledgerSvc,
		connect.WithInterceptors(middleware.RequireAuth(jwtManager), middleware.LoggingInterceptor()))

	mux := http.NewServeMux()
	mux.Handle(authPath, authHandler)
	mux.Handle(ledgerPath, ledgerHandler)
	server := httptest.NewServer(mux)

	env := &testEnv{
		url:    server.URL,
		auth:   api.NewAuthServiceClient(http.DefaultClient, server.URL),
		sender: sender,
		book:   ledger,
	}

	cleanup := func() {
		server.Close()
		ledger.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return env, cleanup
}

func adminToken(t *testing.T, env *testEnv) string {
	t.Helper()
	resp, err := env.auth.AdminLogin(context.Background(), connect.NewRequest(&api.AdminLoginRequest{Password: adminPassword}))
	if err != nil {
		t.Fatalf("AdminLogin failed: %v", err)
	}
	return resp.Msg.Token
}

func addMember(t *testing.T, client *api.LedgerServiceClient, name, phone string) string {
	t.Helper()
	resp, err := client.AddMember(context.Background(), connect.NewRequest(&api.AddMemberRequest{
		Member: api.MemberFields{Name: name, Phone: phone},
	}))
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	return resp.Msg.Member.ID
}

func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Fatalf("code: expected %v, got %v (%v)", code, got, err)
	}
}

func TestAdminLogin(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := env.auth.AdminLogin(context.Background(), connect.NewRequest(&api.AdminLoginRequest{Password: adminPassword}))
	if err != nil {
		t.Fatalf("AdminLogin failed: %v", err)
	}
	if resp.Msg.Token == "" {
		t.Error("expected non-empty token")
	}
	if !resp.Msg.User.IsAdmin() {
		t.Errorf("role: expected ADMIN, got %s", resp.Msg.User.Role)
	}

	_, err = env.auth.AdminLogin(context.Background(), connect.NewRequest(&api.AdminLoginRequest{Password: "wrong-password"}))
	wantCode(t, err, connect.CodeUnauthenticated)

	me, err := api.NewAuthServiceClient(http.DefaultClient, env.url, connect.WithInterceptors(api.BearerToken(resp.Msg.Token))).
		Me(context.Background(), connect.NewRequest(&api.MeRequest{}))
	if err != nil {
		t.Fatalf("Me failed: %v", err)
	}
	if me.Msg.User.ID != auth.AdminUser.ID {
		t.Errorf("Me: expected %s, got %s", auth.AdminUser.ID, me.Msg.User.ID)
	}
}

func TestLedgerRequiresToken(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	client := api.NewLedgerServiceClient(http.DefaultClient, env.url)
	_, err := client.GetDashboard(context.Background(), connect.NewRequest(&api.GetDashboardRequest{}))
	wantCode(t, err, connect.CodeUnauthenticated)

	_, err = env.ledger("not-a-token").GetGroup(context.Background(), connect.NewRequest(&api.GetGroupRequest{}))
	wantCode(t, err, connect.CodeUnauthenticated)
}

func TestLoanLifecycle(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	client := env.ledger(adminToken(t, env))

	memberID := addMember(t, client, "Jane Smith", "9876543210")

	loan, err := client.IssueLoan(ctx, connect.NewRequest(&api.IssueLoanRequest{
		MemberID:     memberID,
		Amount:       decimal.NewFromInt(5000),
		InterestRate: decimal.NewFromInt(2),
	}))
	if err != nil {
		t.Fatalf("IssueLoan failed: %v", err)
	}
	if !loan.Msg.Member.CurrentLoanPrincipal.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("principal after loan: expected 5000, got %s", loan.Msg.Member.CurrentLoanPrincipal)
	}

	paid, err := client.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		Record: models.PaymentRecord{
			MemberID:      memberID,
			Month:         "2024-02",
			Savings:       decimal.NewFromInt(1000),
			PrincipalPaid: decimal.NewFromInt(1000),
			InterestPaid:  decimal.NewFromInt(100),
		},
	}))
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	if !paid.Msg.Member.CurrentLoanPrincipal.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("principal after payment: expected 4000, got %s", paid.Msg.Member.CurrentLoanPrincipal)
	}

	stmt, err := client.GetStatement(ctx, connect.NewRequest(&api.GetStatementRequest{MemberID: memberID}))
	if err != nil {
		t.Fatalf("GetStatement failed: %v", err)
	}
	if len(stmt.Msg.Entries) != 2 {
		t.Fatalf("entries: expected 2, got %d", len(stmt.Msg.Entries))
	}
	if stmt.Msg.Entries[0].Type != "REPAYMENT" {
		t.Errorf("newest entry: expected REPAYMENT, got %s", stmt.Msg.Entries[0].Type)
	}
	if !stmt.Msg.Balance.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("balance: expected 4000, got %s", stmt.Msg.Balance)
	}

	dash, err := client.GetDashboard(ctx, connect.NewRequest(&api.GetDashboardRequest{}))
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	// 1000 savings + 1000 principal + 100 interest - 5000 disbursed
	if !dash.Msg.Stats.TotalFunds.Equal(decimal.NewFromInt(-2900)) {
		t.Errorf("total funds: expected -2900, got %s", dash.Msg.Stats.TotalFunds)
	}
	if dash.Msg.Stats.MembersWithLoans != 1 {
		t.Errorf("members with loans: expected 1, got %d", dash.Msg.Stats.MembersWithLoans)
	}

	loans, err := client.ListActiveLoans(ctx, connect.NewRequest(&api.ListActiveLoansRequest{Search: "jane"}))
	if err != nil {
		t.Fatalf("ListActiveLoans failed: %v", err)
	}
	if len(loans.Msg.Loans) != 1 {
		t.Errorf("active loans: expected 1, got %d", len(loans.Msg.Loans))
	}
}

func TestErrorCodes(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	client := env.ledger(adminToken(t, env))

	memberID := addMember(t, client, "Jane Smith", "9876543210")

	tests := []struct {
		name string
		call func() error
		code connect.Code
	}{
		{
			name: "loan over cap",
			call: func() error {
				_, err := client.IssueLoan(ctx, connect.NewRequest(&api.IssueLoanRequest{
					MemberID: memberID, Amount: decimal.NewFromInt(60000), InterestRate: decimal.NewFromInt(2),
				}))
				return err
			},
			code: connect.CodeFailedPrecondition,
		},
		{
			name: "non-positive loan",
			call: func() error {
				_, err := client.IssueLoan(ctx, connect.NewRequest(&api.IssueLoanRequest{
					MemberID: memberID, Amount: decimal.Zero, InterestRate: decimal.NewFromInt(2),
				}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown member",
			call: func() error {
				_, err := client.GetStatement(ctx, connect.NewRequest(&api.GetStatementRequest{MemberID: "missing"}))
				return err
			},
			code: connect.CodeNotFound,
		},
		{
			name: "bad month",
			call: func() error {
				_, err := client.GetMonthlyReport(ctx, connect.NewRequest(&api.GetMonthlyReportRequest{Month: "March"}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "duplicate phone",
			call: func() error {
				_, err := client.AddMember(ctx, connect.NewRequest(&api.AddMemberRequest{
					Member: api.MemberFields{Name: "Other", Phone: "9876543210"},
				}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "weak admin password",
			call: func() error {
				_, err := client.ChangeAdminPassword(ctx, connect.NewRequest(&api.ChangeAdminPasswordRequest{NewPassword: "short"}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wantCode(t, tt.call(), tt.code)
		})
	}
}

func TestMemberLoginAndScope(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	admin := env.ledger(adminToken(t, env))

	janeID := addMember(t, admin, "Jane Smith", "9876543210")
	raviID := addMember(t, admin, "Ravi Kumar", "9123456780")

	_, err := env.auth.RequestOTP(ctx, connect.NewRequest(&api.RequestOTPRequest{Phone: "9000000000"}))
	wantCode(t, err, connect.CodeNotFound)

	otp, err := env.auth.RequestOTP(ctx, connect.NewRequest(&api.RequestOTPRequest{Phone: "9876543210"}))
	if err != nil {
		t.Fatalf("RequestOTP failed: %v", err)
	}
	if otp.Msg.ExpiresInSeconds != 300 {
		t.Errorf("expires: expected 300, got %d", otp.Msg.ExpiresInSeconds)
	}

	login, err := env.auth.VerifyOTP(ctx, connect.NewRequest(&api.VerifyOTPRequest{
		Phone: "9876543210",
		Code:  env.sender.code("9876543210"),
	}))
	if err != nil {
		t.Fatalf("VerifyOTP failed: %v", err)
	}
	if login.Msg.User.MemberID != janeID {
		t.Errorf("member id: expected %s, got %s", janeID, login.Msg.User.MemberID)
	}

	member := env.ledger(login.Msg.Token)

	if _, err := member.GetStatement(ctx, connect.NewRequest(&api.GetStatementRequest{MemberID: janeID})); err != nil {
		t.Errorf("own statement: %v", err)
	}
	_, err = member.GetStatement(ctx, connect.NewRequest(&api.GetStatementRequest{MemberID: raviID}))
	wantCode(t, err, connect.CodePermissionDenied)

	_, err = member.IssueLoan(ctx, connect.NewRequest(&api.IssueLoanRequest{
		MemberID: janeID, Amount: decimal.NewFromInt(100), InterestRate: decimal.NewFromInt(2),
	}))
	wantCode(t, err, connect.CodePermissionDenied)

	_, err = member.GetInsights(ctx, connect.NewRequest(&api.GetInsightsRequest{}))
	wantCode(t, err, connect.CodePermissionDenied)

	group, err := member.GetGroup(ctx, connect.NewRequest(&api.GetGroupRequest{}))
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(group.Msg.Group.Members) != 1 || group.Msg.Group.Members[0].ID != janeID {
		t.Errorf("member view should contain only the caller, got %d members", len(group.Msg.Group.Members))
	}
}

func TestExports(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()
	ctx := context.Background()
	client := env.ledger(adminToken(t, env))

	memberID := addMember(t, client, "Jane Smith", "9876543210")
	_, err := client.RecordPayment(ctx, connect.NewRequest(&api.RecordPaymentRequest{
		Record: models.PaymentRecord{MemberID: memberID, Month: "2024-03", Savings: decimal.NewFromInt(1000)},
	}))
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	csv, err := client.ExportMonthlyReport(ctx, connect.NewRequest(&api.ExportMonthlyReportRequest{Month: "2024-03"}))
	if err != nil {
		t.Fatalf("ExportMonthlyReport failed: %v", err)
	}
	if csv.Msg.Filename != "Group_Report_2024-03.csv" {
		t.Errorf("filename: got %s", csv.Msg.Filename)
	}
	if !strings.Contains(csv.Msg.Content, "Jane Smith,1000.00,0.00,0.00,0.00,1000.00,") {
		t.Errorf("csv missing record row:\n%s", csv.Msg.Content)
	}

	stmt, err := client.ExportStatement(ctx, connect.NewRequest(&api.ExportStatementRequest{MemberID: memberID}))
	if err != nil {
		t.Fatalf("ExportStatement failed: %v", err)
	}
	if !strings.HasPrefix(stmt.Msg.Content, "Unity Savings Group\n") {
		t.Errorf("statement should start with the group name:\n%s", stmt.Msg.Content)
	}
}

func TestGetInsights(t *testing.T) {
	env, cleanup := setupTestServer(t)
	defer cleanup()

	resp, err := env.ledger(adminToken(t, env)).GetInsights(context.Background(), connect.NewRequest(&api.GetInsightsRequest{}))
	if err != nil {
		t.Fatalf("GetInsights failed: %v", err)
	}
	if !resp.Msg.Available || resp.Msg.Summary != "Financial Health Score: 8" {
		t.Errorf("unexpected insights: %+v", resp.Msg)
	}
}

func TestConnectErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code connect.Code
	}{
		{book.ErrUnauthorized, connect.CodePermissionDenied},
		{book.ErrNotFound, connect.CodeNotFound},
		{&book.ValidationError{Field: "amount", Reason: "must be positive"}, connect.CodeInvalidArgument},
		{book.ErrCapacityExceeded, connect.CodeFailedPrecondition},
		{auth.ErrInvalidCredentials, connect.CodeUnauthenticated},
		{auth.ErrTooManyAttempts, connect.CodeResourceExhausted},
		{book.ErrExternalService, connect.CodeUnavailable},
		{errors.New("disk on fire"), connect.CodeInternal},
	}

	for _, tt := range tests {
		if got := connect.CodeOf(connectError(tt.err)); got != tt.code {
			t.Errorf("connectError(%v): expected %v, got %v", tt.err, tt.code, got)
		}
	}
}
