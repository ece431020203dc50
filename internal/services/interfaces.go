package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"kukkaro/internal/models"
)

// TransactionUpdate carries the fields of a partial expense or income update.
// Nil fields are left unchanged.
type TransactionUpdate struct {
	Name       *string
	Amount     *decimal.Decimal
	CategoryID *uint
	Date       *time.Time
}

// IsEmpty reports whether no field is set.
func (u TransactionUpdate) IsEmpty() bool {
	return u.Name == nil && u.Amount == nil && u.CategoryID == nil && u.Date == nil
}

// TransactionServicer defines the contract for expense and income business logic.
// Every method targets the table selected by kind.
type TransactionServicer interface {
	CreateTransaction(ctx context.Context, kind models.Kind, name string, amount decimal.Decimal, categoryID uint, date time.Time) (*models.Transaction, error)
	ListTransactions(ctx context.Context, kind models.Kind, month string) ([]models.Transaction, error)
	GetTransactionByID(ctx context.Context, kind models.Kind, id uint) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, kind models.Kind, id uint, update TransactionUpdate) (*models.Transaction, error)
	DeleteTransaction(ctx context.Context, kind models.Kind, id uint) error
}

// CategoryUpdate carries the fields of a partial category update.
// The type of a category cannot be changed.
type CategoryUpdate struct {
	Name  *string
	Icon  *string
	Color *string
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, name string, categoryType models.CategoryType, icon, color string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListCategoriesByType(ctx context.Context, categoryType models.CategoryType) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id uint) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uint, update CategoryUpdate) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

// SettingsUpdate carries the fields of a partial settings update.
type SettingsUpdate struct {
	BudgetEnabled *bool
	BudgetAmount  *decimal.Decimal
}

// SettingsServicer defines the contract for the budget settings singleton.
type SettingsServicer interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	UpdateSettings(ctx context.Context, update SettingsUpdate) (*models.Settings, error)
}
