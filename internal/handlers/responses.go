package handlers

import (
	"time"

	"kukkaro/internal/models"
	"kukkaro/internal/money"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error   string `json:"error" example:"Expense not found"`
	Code    string `json:"code" example:"EXPENSE_NOT_FOUND"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is returned by delete endpoints.
type MessageResponse struct {
	Message string `json:"message" example:"Expense deleted successfully"`
}

// CategoryResponse represents a category in the response
type CategoryResponse struct {
	ID        uint                `json:"id"`
	Name      string              `json:"name"`
	Type      models.CategoryType `json:"type" enums:"income,expense"`
	Icon      string              `json:"icon"`
	Color     string              `json:"color"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func newCategoryResponse(c *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		Icon:      c.Icon,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func newCategoryResponses(categories []models.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = newCategoryResponse(&categories[i])
	}
	return out
}

// TransactionResponse represents an expense or income joined with its category.
// Amounts are rounded to two decimals.
type TransactionResponse struct {
	ID         uint              `json:"id"`
	Name       string            `json:"name"`
	Amount     float64           `json:"amount" example:"12.5"`
	CategoryID uint              `json:"categoryId"`
	Date       time.Time         `json:"date"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Category   *CategoryResponse `json:"category"`
}

func newTransactionResponse(t *models.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:         t.ID,
		Name:       t.Name,
		Amount:     money.Round2(t.Amount),
		CategoryID: t.CategoryID,
		Date:       t.Date.UTC(),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
	if t.Category != nil {
		c := newCategoryResponse(t.Category)
		resp.Category = &c
	}
	return resp
}

func newTransactionResponses(rows []models.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(rows))
	for i := range rows {
		out[i] = newTransactionResponse(&rows[i])
	}
	return out
}

// SettingsResponse represents the budget settings.
type SettingsResponse struct {
	ID            uint      `json:"id"`
	BudgetEnabled bool      `json:"budgetEnabled"`
	BudgetAmount  float64   `json:"budgetAmount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func newSettingsResponse(s *models.Settings) SettingsResponse {
	return SettingsResponse{
		ID:            s.ID,
		BudgetEnabled: s.BudgetEnabled,
		BudgetAmount:  money.Round2(s.BudgetAmount),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
