package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"kukkaro/internal/models"
	"kukkaro/internal/testutil"
)

func TestGetSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("creates_defaults_on_first_read", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, nil)

		settings, err := svc.GetSettings(ctx)
		testutil.AssertNoError(t, err)

		if settings.ID != models.SettingsID {
			t.Errorf("expected id %d, got %d", models.SettingsID, settings.ID)
		}
		if settings.BudgetEnabled {
			t.Error("budget should be disabled by default")
		}
		if !settings.BudgetAmount.IsZero() {
			t.Errorf("expected zero budget, got %s", settings.BudgetAmount)
		}
	})

	t.Run("repeated_reads_keep_one_row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, nil)

		for i := 0; i < 3; i++ {
			_, err := svc.GetSettings(ctx)
			testutil.AssertNoError(t, err)
		}

		var count int64
		db.Model(&models.Settings{}).Count(&count)
		if count != 1 {
			t.Errorf("expected exactly one settings row, got %d", count)
		}
	})

	t.Run("existing_row_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		testutil.CreateTestSettings(t, db, true, "750")
		svc := NewSettingsService(db, nil)

		settings, err := svc.GetSettings(ctx)
		testutil.AssertNoError(t, err)
		if !settings.BudgetEnabled || !settings.BudgetAmount.Equal(decimal.NewFromInt(750)) {
			t.Errorf("unexpected settings %+v", settings)
		}
	})
}

func TestUpdateSettings(t *testing.T) {
	ctx := context.Background()

	t.Run("partial_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		rec := &testutil.EventRecorder{}
		svc := NewSettingsService(db, rec)

		amount := decimal.RequireFromString("1200.50")
		settings, err := svc.UpdateSettings(ctx, SettingsUpdate{BudgetAmount: &amount})
		testutil.AssertNoError(t, err)
		if !settings.BudgetAmount.Equal(amount) {
			t.Errorf("expected 1200.50, got %s", settings.BudgetAmount)
		}
		if settings.BudgetEnabled {
			t.Error("enabled flag should be unchanged")
		}

		enabled := true
		settings, err = svc.UpdateSettings(ctx, SettingsUpdate{BudgetEnabled: &enabled})
		testutil.AssertNoError(t, err)
		if !settings.BudgetEnabled {
			t.Error("expected budget enabled")
		}
		if !settings.BudgetAmount.Equal(amount) {
			t.Errorf("amount should be unchanged, got %s", settings.BudgetAmount)
		}

		if got := rec.Types(); len(got) != 2 || got[0] != "settings.updated" {
			t.Errorf("unexpected events %v", got)
		}
	})

	t.Run("zero_budget_allowed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, nil)

		zero := decimal.Zero
		_, err := svc.UpdateSettings(ctx, SettingsUpdate{BudgetAmount: &zero})
		testutil.AssertNoError(t, err)
	})

	t.Run("negative_budget_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, nil)

		negative := decimal.NewFromInt(-1)
		_, err := svc.UpdateSettings(ctx, SettingsUpdate{BudgetAmount: &negative})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
	})

	t.Run("budget_over_column_size_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewSettingsService(db, nil)

		huge := decimal.RequireFromString("99999999999999999")
		_, err := svc.UpdateSettings(ctx, SettingsUpdate{BudgetAmount: &huge})
		testutil.AssertAppError(t, err, "VALIDATION_ERROR")
		if err != nil && err.Error() != "Budget amount must not exceed 9999999999.99" {
			t.Errorf("unexpected message %q", err.Error())
		}

		settings, err := svc.GetSettings(ctx)
		testutil.AssertNoError(t, err)
		if !settings.BudgetAmount.IsZero() {
			t.Errorf("budget should be unchanged, got %s", settings.BudgetAmount)
		}
	})
}
