package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"kukkaro/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category of the given type.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType) *models.Category {
	t.Helper()
	return CreateTestCategoryWithName(t, db, fmt.Sprintf("Test Category %d", nextID()), categoryType)
}

// CreateTestCategoryWithName creates a category with the given name and type.
func CreateTestCategoryWithName(t *testing.T, db *gorm.DB, name string, categoryType models.CategoryType) *models.Category {
	t.Helper()

	category := &models.Category{
		Name:  name,
		Type:  categoryType,
		Icon:  "🏷️",
		Color: "#336699",
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense with the given amount and date.
func CreateTestExpense(t *testing.T, db *gorm.DB, categoryID uint, amount string, date time.Time) *models.Transaction {
	t.Helper()
	return createTestTransaction(t, db, models.KindExpense, categoryID, amount, date)
}

// CreateTestIncome creates an income with the given amount and date.
func CreateTestIncome(t *testing.T, db *gorm.DB, categoryID uint, amount string, date time.Time) *models.Transaction {
	t.Helper()
	return createTestTransaction(t, db, models.KindIncome, categoryID, amount, date)
}

func createTestTransaction(t *testing.T, db *gorm.DB, kind models.Kind, categoryID uint, amount string, date time.Time) *models.Transaction {
	t.Helper()

	txn := &models.Transaction{
		Name:       fmt.Sprintf("Test %s %d", kind, nextID()),
		Amount:     decimal.RequireFromString(amount),
		CategoryID: categoryID,
		Date:       date.UTC(),
		Kind:       kind,
	}
	if err := db.Table(kind.Table()).Create(txn).Error; err != nil {
		t.Fatalf("failed to create test %s: %v", kind, err)
	}
	return txn
}

// CreateTestSettings stores the settings row with the given budget.
func CreateTestSettings(t *testing.T, db *gorm.DB, enabled bool, amount string) *models.Settings {
	t.Helper()

	settings := models.DefaultSettings()
	settings.BudgetEnabled = enabled
	settings.BudgetAmount = decimal.RequireFromString(amount)
	if err := db.Save(&settings).Error; err != nil {
		t.Fatalf("failed to create test settings: %v", err)
	}
	return &settings
}
