package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/chitfund/internal/models"
	"github.com/mmynk/chitfund/internal/storage"
)

func TestSQLiteStore(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "chitfund-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	t.Run("Load on empty database returns nil", func(t *testing.T) {
		data, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if data != nil {
			t.Errorf("Expected nil group, got %+v", data)
		}
		if _, ok, err := store.Info(ctx); err != nil || ok {
			t.Errorf("Info() = ok %v, err %v; want no snapshot", ok, err)
		}
	})

	t.Run("Save then Load round trips the group", func(t *testing.T) {
		original := storage.NewGroup("Unity Savings Group")
		day := 12
		original.Members = append(original.Members, models.Member{
			ID:                   "m1",
			Name:                 "Jane Smith",
			Phone:                "9988776655",
			JoiningDate:          time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			CurrentLoanPrincipal: decimal.NewFromInt(5000),
			LoanInterestRate:     decimal.RequireFromString("1.5"),
			LoanCap:              decimal.NewFromInt(25000),
			DueDay:               &day,
		})
		original.LoansIssued = append(original.LoansIssued, models.LoanIssuedRecord{
			ID: "l1", MemberID: "m1", Amount: decimal.NewFromInt(5000),
			InterestRate: decimal.NewFromInt(2), Date: time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC),
		})
		original.MonthlySavingsTargets["2024-01"] = decimal.NewFromInt(1500)

		if err := store.Save(ctx, original); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.Settings.Name != "Unity Savings Group" {
			t.Errorf("Name = %q", loaded.Settings.Name)
		}
		if loaded.SchemaVersion != models.CurrentSchemaVersion {
			t.Errorf("SchemaVersion = %d", loaded.SchemaVersion)
		}
		if len(loaded.Members) != 1 {
			t.Fatalf("Expected 1 member, got %d", len(loaded.Members))
		}
		m := loaded.Members[0]
		if !m.LoanInterestRate.Equal(decimal.RequireFromString("1.5")) {
			t.Errorf("LoanInterestRate = %s", m.LoanInterestRate)
		}
		if m.DueDay == nil || *m.DueDay != 12 {
			t.Errorf("DueDay = %v, want 12", m.DueDay)
		}
		if !m.JoiningDate.Equal(time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("JoiningDate = %v", m.JoiningDate)
		}
		if got := loaded.SavingsTarget("2024-01"); !got.Equal(decimal.NewFromInt(1500)) {
			t.Errorf("SavingsTarget = %s, want 1500", got)
		}

		info, ok, err := store.Info(ctx)
		if err != nil || !ok {
			t.Fatalf("Info() = ok %v, err %v", ok, err)
		}
		if info.Members != 1 || info.Loans != 1 || info.Records != 0 {
			t.Errorf("Info = %+v", info)
		}
	})

	t.Run("Save overwrites the previous snapshot", func(t *testing.T) {
		next := storage.NewGroup("Renamed Group")
		if err := store.Save(ctx, next); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		loaded, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if loaded.Settings.Name != "Renamed Group" || len(loaded.Members) != 0 {
			t.Errorf("Expected overwritten snapshot, got %q with %d members", loaded.Settings.Name, len(loaded.Members))
		}
	})
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	if err := store.Save(ctx, storage.NewGroup("Persistent")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	store.Close()

	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	data, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if data == nil || data.Settings.Name != "Persistent" {
		t.Errorf("Expected saved group after reopen, got %+v", data)
	}
}
