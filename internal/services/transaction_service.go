package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kukkaro/internal/errors"
	"kukkaro/internal/events"
	"kukkaro/internal/models"
)

// transactionService handles expense and income business logic.
type transactionService struct {
	db     *gorm.DB
	events events.Publisher
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, publisher events.Publisher) TransactionServicer {
	return &transactionService{
		db:     db,
		events: publisher,
	}
}

func notFound(kind models.Kind) *apperrors.AppError {
	if kind == models.KindIncome {
		return apperrors.ErrIncomeNotFound
	}
	return apperrors.ErrExpenseNotFound
}

func positiveAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.Validationf("Amount must be a positive number")
	}
	amount, err := storableAmount("Amount", amount)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.LessThan(minAmount) {
		return decimal.Zero, apperrors.Validationf("Amount must be at least %s", minAmount.StringFixed(2))
	}
	return amount, nil
}

// CreateTransaction stores a new expense or income and returns it joined with its category.
func (s *transactionService) CreateTransaction(
	ctx context.Context,
	kind models.Kind,
	name string,
	amount decimal.Decimal,
	categoryID uint,
	date time.Time,
) (*models.Transaction, error) {
	name = strings.TrimSpace(name)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if categoryID == 0 {
		missing = append(missing, "categoryId")
	}
	if date.IsZero() {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}

	amount, err := positiveAmount(amount)
	if err != nil {
		return nil, err
	}

	category, err := s.categoryFor(ctx, kind, categoryID)
	if err != nil {
		return nil, err
	}

	txn := &models.Transaction{
		Name:       name,
		Amount:     amount,
		CategoryID: categoryID,
		Date:       date.UTC(),
		Kind:       kind,
	}
	if err := s.db.WithContext(ctx).Table(kind.Table()).Create(txn).Error; err != nil {
		return nil, dbError(err)
	}
	txn.Category = category

	publish(ctx, s.events, string(kind), events.ActionCreated, txn.ID)
	return txn, nil
}

// ListTransactions returns rows newest first. A non-empty month ("YYYY-MM")
// restricts the result to that calendar month.
func (s *transactionService) ListTransactions(ctx context.Context, kind models.Kind, month string) ([]models.Transaction, error) {
	q := s.db.WithContext(ctx).Table(kind.Table())
	if month != "" {
		start, end, err := MonthRange(month)
		if err != nil {
			return nil, err
		}
		q = q.Where("date >= ? AND date <= ?", start, end)
	}

	rows := []models.Transaction{}
	if err := q.Order("date DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, dbError(err)
	}

	if err := s.attachCategories(ctx, kind, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// GetTransactionByID retrieves one row joined with its category.
func (s *transactionService) GetTransactionByID(ctx context.Context, kind models.Kind, id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.WithContext(ctx).Table(kind.Table()).Where("id = ?", id).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(kind)
		}
		return nil, dbError(err)
	}

	rows := []models.Transaction{txn}
	if err := s.attachCategories(ctx, kind, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// UpdateTransaction applies the provided fields only, validating each as on create.
func (s *transactionService) UpdateTransaction(ctx context.Context, kind models.Kind, id uint, update TransactionUpdate) (*models.Transaction, error) {
	existing, err := s.GetTransactionByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperrors.Validationf("Name cannot be empty")
		}
		updates["name"] = name
	}
	if update.Amount != nil {
		amount, err := positiveAmount(*update.Amount)
		if err != nil {
			return nil, err
		}
		updates["amount"] = amount
	}
	if update.CategoryID != nil {
		if _, err := s.categoryFor(ctx, kind, *update.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *update.CategoryID
	}
	if update.Date != nil {
		if update.Date.IsZero() {
			return nil, apperrors.Validationf("Invalid date")
		}
		updates["date"] = update.Date.UTC()
	}

	if len(updates) == 0 {
		return existing, nil
	}
	updates["updated_at"] = time.Now()

	if err := s.db.WithContext(ctx).Table(kind.Table()).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, dbError(err)
	}

	publish(ctx, s.events, string(kind), events.ActionUpdated, id)
	return s.GetTransactionByID(ctx, kind, id)
}

// DeleteTransaction permanently removes a row.
func (s *transactionService) DeleteTransaction(ctx context.Context, kind models.Kind, id uint) error {
	res := s.db.WithContext(ctx).Table(kind.Table()).Where("id = ?", id).Delete(&models.Transaction{})
	if res.Error != nil {
		return dbError(res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(kind)
	}

	publish(ctx, s.events, string(kind), events.ActionDeleted, id)
	return nil
}

// categoryFor loads the referenced category and checks it matches kind.
func (s *transactionService) categoryFor(ctx context.Context, kind models.Kind, categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidReference
		}
		return nil, dbError(err)
	}
	if category.Type != kind.CategoryType() {
		return nil, apperrors.ErrCategoryMismatch
	}
	return &category, nil
}

// attachCategories loads the categories referenced by rows in one query.
func (s *transactionService) attachCategories(ctx context.Context, kind models.Kind, rows []models.Transaction) error {
	if len(rows) == 0 {
		return nil
	}

	seen := make(map[uint]bool)
	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		if !seen[r.CategoryID] {
			seen[r.CategoryID] = true
			ids = append(ids, r.CategoryID)
		}
	}

	var categories []models.Category
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error; err != nil {
		return dbError(err)
	}
	byID := make(map[uint]*models.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}

	for i := range rows {
		rows[i].Kind = kind
		rows[i].Category = byID[rows[i].CategoryID]
	}
	return nil
}
