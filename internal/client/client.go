// Package client provides an HTTP client for the kukkaro budget API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://localhost:8080/api"

// Kind selects the expense or income collection.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

func (k Kind) path() string {
	if k == KindIncome {
		return "/incomes"
	}
	return "/expenses"
}

// Category is a category as returned by the API.
type Category struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Transaction is an expense or income joined with its category.
type Transaction struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Amount     float64   `json:"amount"`
	CategoryID uint      `json:"categoryId"`
	Date       time.Time `json:"date"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Category   *Category `json:"category"`
}

// Settings holds the budget configuration.
type Settings struct {
	BudgetEnabled bool    `json:"budgetEnabled"`
	BudgetAmount  float64 `json:"budgetAmount"`
}

// TransactionInput is the payload for creating an expense or income.
// Amount is sent verbatim so the server can accept a decimal comma.
type TransactionInput struct {
	Name       string    `json:"name"`
	Amount     string    `json:"amount"`
	CategoryID uint      `json:"categoryId"`
	Date       time.Time `json:"date"`
}

// TransactionPatch changes only the fields that are set.
type TransactionPatch struct {
	Name       *string    `json:"name,omitempty"`
	Amount     *string    `json:"amount,omitempty"`
	CategoryID *uint      `json:"categoryId,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
}

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// CategoryPatch changes only the fields that are set.
type CategoryPatch struct {
	Name  *string `json:"name,omitempty"`
	Icon  *string `json:"icon,omitempty"`
	Color *string `json:"color,omitempty"`
}

// SettingsPatch changes only the fields that are set.
type SettingsPatch struct {
	BudgetEnabled *bool   `json:"budgetEnabled,omitempty"`
	BudgetAmount  *string `json:"budgetAmount,omitempty"`
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Client communicates with the budget API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// ListTransactions fetches expenses or incomes, newest first. An empty month
// returns every row; otherwise month has the form YYYY-MM.
func (c *Client) ListTransactions(ctx context.Context, kind Kind, month string) ([]Transaction, error) {
	query := url.Values{}
	if month != "" {
		query.Set("month", month)
	}

	var rows []Transaction
	if err := c.do(ctx, http.MethodGet, kind.path(), query, nil, &rows); err != nil {
		return nil, fmt.Errorf("listing %ss: %w", kind, err)
	}
	return rows, nil
}

// GetTransaction fetches one expense or income.
func (c *Client) GetTransaction(ctx context.Context, kind Kind, id uint) (*Transaction, error) {
	var txn Transaction
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", kind.path(), id), nil, nil, &txn); err != nil {
		return nil, fmt.Errorf("fetching %s %d: %w", kind, id, err)
	}
	return &txn, nil
}

// CreateTransaction stores a new expense or income.
func (c *Client) CreateTransaction(ctx context.Context, kind Kind, in TransactionInput) (*Transaction, error) {
	var txn Transaction
	if err := c.do(ctx, http.MethodPost, kind.path(), nil, in, &txn); err != nil {
		return nil, fmt.Errorf("creating %s: %w", kind, err)
	}
	return &txn, nil
}

// UpdateTransaction applies a partial update.
func (c *Client) UpdateTransaction(ctx context.Context, kind Kind, id uint, patch TransactionPatch) (*Transaction, error) {
	var txn Transaction
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", kind.path(), id), nil, patch, &txn); err != nil {
		return nil, fmt.Errorf("updating %s %d: %w", kind, id, err)
	}
	return &txn, nil
}

// DeleteTransaction removes an expense or income.
func (c *Client) DeleteTransaction(ctx context.Context, kind Kind, id uint) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", kind.path(), id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting %s %d: %w", kind, id, err)
	}
	return nil
}

// ListCategories fetches every category.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return categories, nil
}

// ListCategoriesByType fetches the categories of one type (income or expense).
func (c *Client) ListCategoriesByType(ctx context.Context, categoryType string) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(categoryType), nil, nil, &categories); err != nil {
		return nil, fmt.Errorf("listing %s categories: %w", categoryType, err)
	}
	return categories, nil
}

// CreateCategory stores a new category.
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPost, "/categories", nil, in, &category); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}
	return &category, nil
}

// UpdateCategory applies a partial update.
func (c *Client) UpdateCategory(ctx context.Context, id uint, patch CategoryPatch) (*Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/categories/%d", id), nil, patch, &category); err != nil {
		return nil, fmt.Errorf("updating category %d: %w", id, err)
	}
	return &category, nil
}

// DeleteCategory removes a category. The API refuses while transactions reference it.
func (c *Client) DeleteCategory(ctx context.Context, id uint) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, nil, nil); err != nil {
		return fmt.Errorf("deleting category %d: %w", id, err)
	}
	return nil
}

// GetSettings fetches the budget settings.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := c.do(ctx, http.MethodGet, "/settings", nil, nil, &settings); err != nil {
		return nil, fmt.Errorf("fetching settings: %w", err)
	}
	return &settings, nil
}

// UpdateSettings applies a partial update to the budget settings.
func (c *Client) UpdateSettings(ctx context.Context, patch SettingsPatch) (*Settings, error) {
	var settings Settings
	if err := c.do(ctx, http.MethodPut, "/settings", nil, patch, &settings); err != nil {
		return nil, fmt.Errorf("updating settings: %w", err)
	}
	return &settings, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&body); err == nil {
		apiErr.Message = body.Error
		apiErr.Code = body.Code
	}
	return apiErr
}
