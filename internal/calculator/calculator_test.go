package calculator

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func admin() models.AuthUser {
	return models.AuthUser{ID: "admin", Name: "Administrator", Role: models.RoleAdmin}
}

func memberUser(id string) models.AuthUser {
	return models.AuthUser{ID: id, Name: id, Role: models.RoleMember, MemberID: id}
}

func testGroup() *models.GroupData {
	return &models.GroupData{
		Settings: models.GroupSettings{
			Name:                 "Unity Savings Group",
			MonthlySavingsAmount: dec("1000"),
			DefaultInterestRate:  dec("2"),
			DueDay:               10,
		},
		Members: []models.Member{
			{ID: "m1", Name: "John Doe", Phone: "9876543210", LoanCap: dec("50000"), JoiningDate: day(2023, 1, 1)},
			{ID: "m2", Name: "Jane Smith", Phone: "9988776655", LoanCap: dec("25000"), JoiningDate: day(2023, 1, 1)},
		},
	}
}

func TestBuildStatement(t *testing.T) {
	data := testGroup()
	data.LoansIssued = []models.LoanIssuedRecord{
		{ID: "l1", MemberID: "m2", Amount: dec("5000"), InterestRate: dec("2"), Date: day(2024, 1, 5)},
	}
	data.Records = []models.PaymentRecord{
		{ID: "r1", MemberID: "m2", Month: "2024-02", Savings: dec("1000"), PrincipalPaid: dec("2000"), InterestPaid: dec("100"), Timestamp: day(2024, 2, 3)},
		{ID: "r2", MemberID: "m1", Month: "2024-02", Savings: dec("1000"), Timestamp: day(2024, 2, 3)},
	}
	data.InterestRateChanges = []models.InterestRateChangeRecord{
		{ID: "c1", MemberID: "m2", OldRate: dec("2"), NewRate: dec("1.5"), Reason: "good standing", Date: day(2024, 3, 1)},
	}

	stmt := BuildStatement(data, "m2")

	if len(stmt.Entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(stmt.Entries))
	}
	if !stmt.Balance.Equal(dec("3000")) {
		t.Errorf("balance = %s, want 3000", stmt.Balance)
	}

	wantTypes := []EntryType{EntryDisbursement, EntryRepayment, EntryRateAdjust}
	wantBalances := []string{"5000", "3000", "3000"}
	for i, e := range stmt.Entries {
		if e.Type != wantTypes[i] {
			t.Errorf("entry %d type = %s, want %s", i, e.Type, wantTypes[i])
		}
		if !e.Balance.Equal(dec(wantBalances[i])) {
			t.Errorf("entry %d balance = %s, want %s", i, e.Balance, wantBalances[i])
		}
	}

	if got := stmt.Entries[0].Description; got != "Loan Issued (2% Interest)" {
		t.Errorf("disbursement description = %q", got)
	}
	if got := stmt.Entries[1].Description; got != "Repayment for 2024-02" {
		t.Errorf("repayment description = %q", got)
	}
	if !stmt.Entries[1].Interest.Equal(dec("100")) {
		t.Errorf("repayment interest = %s, want 100", stmt.Entries[1].Interest)
	}
	if got := stmt.Entries[2].Description; got != "Interest Adjusted: 2% → 1.5%" {
		t.Errorf("rate description = %q", got)
	}
	if stmt.Entries[2].Reason != "good standing" {
		t.Errorf("rate reason = %q", stmt.Entries[2].Reason)
	}

	newest := stmt.NewestFirst()
	if newest[0].ID != "c1" || newest[2].ID != "l1" {
		t.Errorf("NewestFirst order = %s, %s, %s", newest[0].ID, newest[1].ID, newest[2].ID)
	}
	if stmt.Entries[0].ID != "l1" {
		t.Error("NewestFirst modified the statement")
	}
}

func TestBuildStatementOrdersByTimestamp(t *testing.T) {
	data := testGroup()
	// Stored out of order: the repayment was appended before the loan.
	data.Records = []models.PaymentRecord{
		{ID: "r1", MemberID: "m1", Month: "2024-03", PrincipalPaid: dec("500"), Timestamp: day(2024, 3, 2)},
	}
	data.LoansIssued = []models.LoanIssuedRecord{
		{ID: "l2", MemberID: "m1", Amount: dec("1000"), InterestRate: dec("2"), Date: day(2024, 4, 1)},
		{ID: "l1", MemberID: "m1", Amount: dec("2000"), InterestRate: dec("2"), Date: day(2024, 1, 1)},
	}

	stmt := BuildStatement(data, "m1")

	var ids []string
	for _, e := range stmt.Entries {
		ids = append(ids, e.ID)
	}
	want := []string{"l1", "r1", "l2"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("order = %v, want %v", ids, want)
		}
	}
	if !stmt.Balance.Equal(dec("2500")) {
		t.Errorf("balance = %s, want 2500", stmt.Balance)
	}
}

func TestBuildStatementOverpaymentFloorsAtZero(t *testing.T) {
	data := testGroup()
	data.LoansIssued = []models.LoanIssuedRecord{
		{ID: "l1", MemberID: "m1", Amount: dec("1000"), InterestRate: dec("2"), Date: day(2024, 1, 1)},
	}
	data.Records = []models.PaymentRecord{
		{ID: "r1", MemberID: "m1", Month: "2024-02", PrincipalPaid: dec("1500"), Timestamp: day(2024, 2, 1)},
	}

	stmt := BuildStatement(data, "m1")

	if !stmt.Balance.IsZero() {
		t.Errorf("balance = %s, want 0", stmt.Balance)
	}
	repay := stmt.Entries[1]
	if !repay.Amount.Equal(dec("-1000")) {
		t.Errorf("applied amount = %s, want -1000", repay.Amount)
	}
	if !repay.PrincipalPaid.Equal(dec("1500")) {
		t.Errorf("principal paid = %s, want 1500", repay.PrincipalPaid)
	}

	sum := decimal.Zero
	for _, e := range stmt.Entries {
		sum = sum.Add(e.Amount)
	}
	if !sum.Equal(stmt.Balance) {
		t.Errorf("sum of deltas = %s, balance = %s", sum, stmt.Balance)
	}
}

func TestBuildStatementOpeningBalance(t *testing.T) {
	data := testGroup()
	data.LoansIssued = []models.LoanIssuedRecord{
		{ID: "open", MemberID: "m2", Amount: dec("5000"), InterestRate: dec("2"), Date: day(2023, 1, 1), Opening: true},
	}
	stmt := BuildStatement(data, "m2")
	if got := stmt.Entries[0].Description; got != "Opening Balance (2% Interest)" {
		t.Errorf("description = %q", got)
	}
}

func TestBuildStatementIsRepeatable(t *testing.T) {
	data := testGroup()
	data.LoansIssued = []models.LoanIssuedRecord{
		{ID: "l1", MemberID: "m1", Amount: dec("3000"), InterestRate: dec("2"), Date: day(2024, 1, 1)},
		{ID: "l2", MemberID: "m1", Amount: dec("1000"), InterestRate: dec("1.5"), Date: day(2024, 3, 1)},
	}
	data.Records = []models.PaymentRecord{
		{ID: "r1", MemberID: "m1", Month: "2024-02", PrincipalPaid: dec("4000"), InterestPaid: dec("60"), Timestamp: day(2024, 2, 1)},
		{ID: "r2", MemberID: "m1", Month: "2024-03", PrincipalPaid: dec("250"), Timestamp: day(2024, 3, 1)},
	}
	data.InterestRateChanges = []models.InterestRateChangeRecord{
		{ID: "c1", MemberID: "m1", OldRate: dec("1.5"), NewRate: dec("1"), Reason: "loyalty", Date: day(2024, 3, 1)},
	}
	before := data.Clone()

	first := BuildStatement(data, "m1")
	second := BuildStatement(data, "m1")

	if !reflect.DeepEqual(first, second) {
		t.Errorf("statements differ:\n%+v\n%+v", first, second)
	}
	if !reflect.DeepEqual(before.Members, data.Members) ||
		!reflect.DeepEqual(before.LoansIssued, data.LoansIssued) ||
		!reflect.DeepEqual(before.Records, data.Records) ||
		!reflect.DeepEqual(before.InterestRateChanges, data.InterestRateChanges) {
		t.Error("BuildStatement modified the event log")
	}
	if !first.Balance.Equal(dec("750")) {
		t.Errorf("balance = %s, want 750", first.Balance)
	}
}

func TestLastEventTime(t *testing.T) {
	data := testGroup()
	if got := LastEventTime(data, "m1"); !got.IsZero() {
		t.Errorf("empty log: got %v, want zero time", got)
	}

	data.LoansIssued = []models.LoanIssuedRecord{
		{ID: "l1", MemberID: "m1", Amount: dec("100"), Date: day(2024, 1, 1)},
		{ID: "l2", MemberID: "m2", Amount: dec("100"), Date: day(2024, 9, 1)},
	}
	data.Records = []models.PaymentRecord{
		{ID: "r1", MemberID: "m1", Month: "2024-02", Savings: dec("10"), Timestamp: day(2024, 2, 1)},
	}
	data.InterestRateChanges = []models.InterestRateChangeRecord{
		{ID: "c1", MemberID: "m1", Date: day(2024, 3, 1)},
	}

	if got, want := LastEventTime(data, "m1"), day(2024, 3, 1); !got.Equal(want) {
		t.Errorf("m1: got %v, want %v", got, want)
	}
	if got, want := LastEventTime(data, "m2"), day(2024, 9, 1); !got.Equal(want) {
		t.Errorf("m2: got %v, want %v", got, want)
	}
}

func TestProjectPrincipals(t *testing.T) {
	data := testGroup()
	data.Members[0].CurrentLoanPrincipal = dec("999")
	data.LoansIssued = []models.LoanIssuedRecord{
		{ID: "l1", MemberID: "m2", Amount: dec("5000"), InterestRate: dec("2"), Date: day(2024, 1, 1)},
	}

	ProjectPrincipals(data)

	if !data.Members[0].CurrentLoanPrincipal.IsZero() {
		t.Errorf("m1 principal = %s, want 0", data.Members[0].CurrentLoanPrincipal)
	}
	if !data.Members[1].CurrentLoanPrincipal.Equal(dec("5000")) {
		t.Errorf("m2 principal = %s, want 5000", data.Members[1].CurrentLoanPrincipal)
	}
}

func TestNetFunds(t *testing.T) {
	data := testGroup()
	data.Settings.InitialNetFunds = dec("10000")
	data.Settings.InitialGrowthSavings = dec("8000")
	data.Records = []models.PaymentRecord{
		{ID: "r1", MemberID: "m1", Month: "2024-01", Savings: dec("1000"), InterestPaid: dec("50"), Penalty: dec("10"), Timestamp: day(2024, 1, 5)},
		{ID: "r2", MemberID: "m2", Month: "2024-01", Savings: dec("1000"), PrincipalPaid: dec("500"), Timestamp: day(2024, 1, 6)},
	}
	data.AdminPayments = []models.AdminPayment{{ID: "a1", Month: "2024-01", Amount: dec("200"), PeriodMonths: 1}}
	data.MiscPayments = []models.MiscPayment{{ID: "x1", Month: "2024-01", Amount: dec("60")}}
	data.LoansIssued = []models.LoanIssuedRecord{{ID: "l1", MemberID: "m2", Amount: dec("3000"), Date: day(2024, 1, 2)}}

	// 10000 + 2560 - 260 - 3000
	if got := NetFunds(data); !got.Equal(dec("9300")) {
		t.Errorf("NetFunds = %s, want 9300", got)
	}
	if got := GrowthSavings(data); !got.Equal(dec("10000")) {
		t.Errorf("GrowthSavings = %s, want 10000", got)
	}
}

func TestNetFundsCanBeNegative(t *testing.T) {
	data := testGroup()
	data.Records = []models.PaymentRecord{
		{ID: "r1", MemberID: "m1", Month: "2024-01", Savings: dec("1000"), Timestamp: day(2024, 1, 5)},
	}
	data.AdminPayments = []models.AdminPayment{{ID: "a1", Month: "2024-01", Amount: dec("1500")}}
	data.MiscPayments = []models.MiscPayment{{ID: "x1", Month: "2024-01", Amount: dec("50")}}

	if got := NetFunds(data); !got.Equal(dec("-550")) {
		t.Errorf("NetFunds = %s, want -550", got)
	}
}

func TestDashboard(t *testing.T) {
	data := testGroup()
	data.Settings.InitialNetFunds = dec("1000")
	data.Members[1].CurrentLoanPrincipal = dec("4000")
	data.Records = []models.PaymentRecord{
		{ID: "r1", MemberID: "m1", Month: "2024-05", Savings: dec("1000"), Timestamp: day(2024, 5, 2)},
		{ID: "r2", MemberID: "m2", Month: "2024-05", Savings: dec("1000"), InterestPaid: dec("80"), Timestamp: day(2024, 5, 3)},
		{ID: "r3", MemberID: "m2", Month: "2024-04", Savings: dec("1000"), InterestPaid: dec("100"), Timestamp: day(2024, 4, 3)},
	}
	data.MiscPayments = []models.MiscPayment{{ID: "x1", Month: "2024-05", Amount: dec("30")}}
	today := day(2024, 5, 20)

	t.Run("admin", func(t *testing.T) {
		s := Dashboard(data, admin(), today)
		if !s.TotalFunds.Equal(dec("4150")) {
			t.Errorf("TotalFunds = %s, want 4150", s.TotalFunds)
		}
		if !s.MonthlyCollection.Equal(dec("2080")) {
			t.Errorf("MonthlyCollection = %s, want 2080", s.MonthlyCollection)
		}
		if !s.InterestEarned.Equal(dec("180")) {
			t.Errorf("InterestEarned = %s, want 180", s.InterestEarned)
		}
		if !s.ActiveLoans.Equal(dec("4000")) || s.MembersWithLoans != 1 {
			t.Errorf("ActiveLoans = %s (%d members)", s.ActiveLoans, s.MembersWithLoans)
		}
		if !s.Expenses.Equal(dec("30")) {
			t.Errorf("Expenses = %s, want 30", s.Expenses)
		}
	})

	t.Run("member sees own figures", func(t *testing.T) {
		s := Dashboard(data, memberUser("m2"), today)
		if !s.TotalFunds.Equal(dec("2180")) {
			t.Errorf("TotalFunds = %s, want 2180", s.TotalFunds)
		}
		if !s.GrowthSavings.Equal(dec("2000")) {
			t.Errorf("GrowthSavings = %s, want 2000", s.GrowthSavings)
		}
		if !s.Expenses.IsZero() {
			t.Errorf("Expenses = %s, want 0", s.Expenses)
		}
		if !s.ActiveLoans.Equal(dec("4000")) {
			t.Errorf("ActiveLoans = %s, want 4000", s.ActiveLoans)
		}
	})
}

func TestStatus(t *testing.T) {
	data := testGroup()
	data.Records = []models.PaymentRecord{
		{ID: "r1", MemberID: "m1", Month: "2024-06", Savings: dec("1000"), Timestamp: day(2024, 6, 1)},
	}
	custom := 15
	data.Members[1].DueDay = &custom

	tests := []struct {
		name   string
		member int
		today  time.Time
		want   PaymentStatus
	}{
		{"paid this month", 0, day(2024, 6, 25), StatusPaid},
		{"not paid last month is irrelevant", 0, day(2024, 7, 9), StatusPending},
		{"on the due day", 0, day(2024, 7, 10), StatusPending},
		{"after the due day", 0, day(2024, 7, 11), StatusOverdue},
		{"member due day override", 1, day(2024, 6, 14), StatusPending},
		{"after member due day", 1, day(2024, 6, 16), StatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Status(data, &data.Members[tt.member], tt.today)
			if got != tt.want {
				t.Errorf("Status() = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("nothing owed", func(t *testing.T) {
		data := testGroup()
		data.MonthlySavingsTargets = map[models.Month]decimal.Decimal{"2024-06": decimal.Zero}
		if got := Status(data, &data.Members[0], day(2024, 6, 20)); got != StatusNone {
			t.Errorf("Status() = %s, want NONE", got)
		}
		data.Members[0].CurrentLoanPrincipal = dec("100")
		if got := Status(data, &data.Members[0], day(2024, 6, 20)); got != StatusOverdue {
			t.Errorf("Status() with loan = %s, want OVERDUE", got)
		}
	})
}

func TestPaymentAlertsScopedToMember(t *testing.T) {
	data := testGroup()
	alerts := PaymentAlerts(data, memberUser("m1"), day(2024, 6, 5))
	if len(alerts) != 1 || alerts[0].MemberID != "m1" {
		t.Fatalf("alerts = %+v, want only m1", alerts)
	}
	if alerts[0].Status != StatusPending || alerts[0].DueDay != 10 {
		t.Errorf("alert = %+v", alerts[0])
	}
	if got := PaymentAlerts(data, admin(), day(2024, 6, 5)); len(got) != 2 {
		t.Errorf("admin sees %d alerts, want 2", len(got))
	}
}

func TestIsLate(t *testing.T) {
	data := testGroup()
	m := &data.Members[0]
	today := day(2024, 6, 12)
	if !IsLate(data, m, "2024-06", today) {
		t.Error("current month after due day should be late")
	}
	if IsLate(data, m, "2024-05", today) {
		t.Error("past month should never be late")
	}
	if IsLate(data, m, "2024-06", day(2024, 6, 10)) {
		t.Error("due day itself should not be late")
	}
}

func TestSuggestedInterest(t *testing.T) {
	m := &models.Member{CurrentLoanPrincipal: dec("5000"), LoanInterestRate: dec("2")}
	if got := SuggestedInterest(m); !got.Equal(dec("100")) {
		t.Errorf("SuggestedInterest = %s, want 100", got)
	}
}

func TestBuildMonthlyReport(t *testing.T) {
	data := testGroup()
	data.Members[1].CurrentLoanPrincipal = dec("5000")
	data.Members[1].LoanInterestRate = dec("2")
	data.Records = []models.PaymentRecord{
		{ID: "r1", MemberID: "m1", Month: "2024-06", Savings: dec("1000"), Penalty: dec("20"), Timestamp: day(2024, 6, 12)},
		{ID: "r0", MemberID: "m2", Month: "2024-05", Savings: dec("1000"), Timestamp: day(2024, 5, 2)},
	}
	data.AdminPayments = []models.AdminPayment{{ID: "a1", Month: "2024-06", Amount: dec("300"), PeriodMonths: 1}}
	data.MiscPayments = []models.MiscPayment{{ID: "x1", Month: "2024-06", Amount: dec("20")}}

	report := BuildMonthlyReport(data, "2024-06", admin())

	if len(report.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(report.Records))
	}
	if !report.CollectionSum.Equal(dec("1020")) {
		t.Errorf("CollectionSum = %s, want 1020", report.CollectionSum)
	}
	if !report.ExpenseSum.Equal(dec("320")) {
		t.Errorf("ExpenseSum = %s, want 320", report.ExpenseSum)
	}
	if !report.NetFlow.Equal(dec("700")) {
		t.Errorf("NetFlow = %s, want 700", report.NetFlow)
	}
	if len(report.Dues) != 1 || report.Dues[0].MemberID != "m2" {
		t.Fatalf("dues = %+v, want m2 only", report.Dues)
	}
	if !report.Dues[0].TotalDue.Equal(dec("1100")) {
		t.Errorf("TotalDue = %s, want 1100", report.Dues[0].TotalDue)
	}

	scoped := BuildMonthlyReport(data, "2024-06", memberUser("m1"))
	if len(scoped.AdminPayments) != 0 || !scoped.ExpenseSum.IsZero() {
		t.Error("member report should not include expenses")
	}
	if len(scoped.Dues) != 0 {
		t.Errorf("member m1 should not see m2's due")
	}
}

func TestGrowthSeries(t *testing.T) {
	records := []models.PaymentRecord{
		{Month: "2024-02", Savings: dec("1000"), InterestPaid: dec("40")},
		{Month: "2024-01", Savings: dec("1000")},
		{Month: "2024-02", Savings: dec("500")},
	}
	series := GrowthSeries(records)
	if len(series) != 2 {
		t.Fatalf("len = %d, want 2", len(series))
	}
	if series[0].Month != "2024-01" || !series[0].Cumulative.Equal(dec("1000")) {
		t.Errorf("first point = %+v", series[0])
	}
	if !series[1].Savings.Equal(dec("1500")) || !series[1].Cumulative.Equal(dec("2500")) || !series[1].Interest.Equal(dec("40")) {
		t.Errorf("second point = %+v", series[1])
	}
}

func TestActiveLoans(t *testing.T) {
	data := testGroup()
	data.Members = append(data.Members, models.Member{ID: "m3", Name: "Arun", JoiningDate: day(2022, 1, 1), CurrentLoanPrincipal: dec("100")})
	data.Members[0].CurrentLoanPrincipal = dec("3000")
	data.Members[1].CurrentLoanPrincipal = dec("7000")
	data.LoansIssued = []models.LoanIssuedRecord{
		{ID: "l1", MemberID: "m1", Amount: dec("1000"), Date: day(2024, 1, 1)},
		{ID: "l2", MemberID: "m1", Amount: dec("2000"), Date: day(2024, 3, 1)},
		{ID: "l3", MemberID: "m2", Amount: dec("7000"), Date: day(2024, 2, 1)},
	}

	byAmount := ActiveLoans(data, "", SortByAmount, true)
	if len(byAmount) != 3 || byAmount[0].Member.ID != "m2" || byAmount[2].Member.ID != "m3" {
		t.Errorf("amount desc order wrong: %+v", byAmount)
	}
	if !byAmount[1].DisbursementDate.Equal(day(2024, 3, 1)) {
		t.Errorf("m1 disbursement date = %v, want latest loan", byAmount[1].DisbursementDate)
	}
	if !byAmount[2].DisbursementDate.Equal(day(2022, 1, 1)) {
		t.Errorf("m3 disbursement date should fall back to joining date")
	}

	byName := ActiveLoans(data, "", SortByName, false)
	if byName[0].Member.Name != "Arun" {
		t.Errorf("first by name = %s", byName[0].Member.Name)
	}

	filtered := ActiveLoans(data, "jane", SortByDate, false)
	if len(filtered) != 1 || filtered[0].Member.ID != "m2" {
		t.Errorf("search result = %+v", filtered)
	}
}

func TestExpenseFeed(t *testing.T) {
	data := testGroup()
	for i := 1; i <= 4; i++ {
		data.AdminPayments = append(data.AdminPayments, models.AdminPayment{ID: "a", Amount: dec("100"), Timestamp: day(2024, time.Month(i), 1)})
		data.MiscPayments = append(data.MiscPayments, models.MiscPayment{ID: "x", Amount: dec("10"), Timestamp: day(2024, time.Month(i), 2)})
	}
	feed := ExpenseFeed(data, 5)
	if len(feed) != 5 {
		t.Fatalf("len = %d, want 5", len(feed))
	}
	if feed[0].Kind != ExpenseMisc || !feed[0].Timestamp.Equal(day(2024, 4, 2)) {
		t.Errorf("newest = %+v", feed[0])
	}
	if len(ExpenseFeed(data, 0)) != 8 {
		t.Error("limit 0 should return everything")
	}
}

func TestUnreadNotesCount(t *testing.T) {
	now := day(2024, 6, 10)
	recent := now.Add(-24 * time.Hour)
	old := now.Add(-5 * 24 * time.Hour)
	notes := []models.MeetingNote{
		{ID: "n1", PublishedAt: &recent},
		{ID: "n2", PublishedAt: &old},
		{ID: "n3"},
	}
	if got := UnreadNotesCount(notes, now); got != 1 {
		t.Errorf("UnreadNotesCount = %d, want 1", got)
	}
}
