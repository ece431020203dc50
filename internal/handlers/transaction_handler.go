package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "kukkaro/internal/errors"
	"kukkaro/internal/models"
	"kukkaro/internal/money"
	"kukkaro/internal/services"
)

// TransactionHandler serves the expense or income endpoints, depending on kind.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	kind               models.Kind
}

// NewTransactionHandler creates a new TransactionHandler for one kind.
func NewTransactionHandler(transactionService services.TransactionServicer, kind models.Kind) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, kind: kind}
}

// CreateTransactionRequest represents the request payload for creating an expense or income.
// amount and categoryId may be sent as numbers or strings; amount accepts a decimal comma.
// Fields carry no binding tags: required checks run in Create so that every missing
// field is reported in one "Missing required fields" message.
type CreateTransactionRequest struct {
	Name       *string         `json:"name" example:"Groceries"`
	Amount     *NumberOrString `json:"amount" swaggertype:"string" example:"12,50"`
	CategoryID *NumberOrString `json:"categoryId" swaggertype:"integer" example:"1"`
	Date       *string         `json:"date" example:"2025-03-15T00:00:00Z"`
}

// UpdateTransactionRequest represents a partial update. Omitted fields are unchanged.
type UpdateTransactionRequest struct {
	Name       *string         `json:"name"`
	Amount     *NumberOrString `json:"amount" swaggertype:"string"`
	CategoryID *NumberOrString `json:"categoryId" swaggertype:"integer"`
	Date       *string         `json:"date"`
}

// ListTransactionsQuery holds the optional month filter.
type ListTransactionsQuery struct {
	Month string `form:"month" json:"month" binding:"omitempty,year_month"`
}

func amountError(err error) error {
	if errors.Is(err, money.ErrNotPositive) {
		return apperrors.Validationf("Amount must be a positive number")
	}
	return apperrors.Validationf("Invalid amount")
}

// ListTransactions returns the rows of the handler's kind, newest first.
// @Summary     List expenses or incomes
// @Description List rows newest first, optionally restricted to one calendar month
// @Tags        expenses,incomes
// @Produce     json
// @Param       month query string false "Month filter (YYYY-MM)"
// @Success     200 {array} TransactionResponse
// @Failure     400 {object} ErrorResponse "Invalid month"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
// @Router      /incomes [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var q ListTransactionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	rows, err := h.transactionService.ListTransactions(c.Request.Context(), h.kind, q.Month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTransactionResponses(rows))
}

// GetTransaction returns one row.
// @Summary     Get an expense or income
// @Tags        expenses,incomes
// @Produce     json
// @Param       id path int true "ID"
// @Success     200 {object} TransactionResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expenses/{id} [get]
// @Router      /incomes/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	txn, err := h.transactionService.GetTransactionByID(c.Request.Context(), h.kind, id)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTransactionResponse(txn))
}

// CreateTransaction stores a new row.
// @Summary     Create an expense or income
// @Tags        expenses,incomes
// @Accept      json
// @Produce     json
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
// @Router      /incomes [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	var missing []string
	if !presentString(req.Name) {
		missing = append(missing, "name")
	}
	if !present(req.Amount) {
		missing = append(missing, "amount")
	}
	if !present(req.CategoryID) {
		missing = append(missing, "categoryId")
	}
	if !presentString(req.Date) {
		missing = append(missing, "date")
	}
	if len(missing) > 0 {
		respondWithError(c, apperrors.Validationf("Missing required fields: %s", strings.Join(missing, ", ")))
		return
	}

	amount, err := money.ParsePositive(req.Amount.String())
	if err != nil {
		respondWithError(c, amountError(err))
		return
	}
	categoryID, err := parseID(*req.CategoryID, "categoryId")
	if err != nil {
		respondWithError(c, err)
		return
	}
	date, err := parseFlexibleTime(*req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), h.kind, *req.Name, amount, categoryID, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newTransactionResponse(txn))
}

// UpdateTransaction applies a partial update.
// @Summary     Update an expense or income
// @Tags        expenses,incomes
// @Accept      json
// @Produce     json
// @Param       id path int true "ID"
// @Param       request body UpdateTransactionRequest true "Fields to change"
// @Success     200 {object} TransactionResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expenses/{id} [put]
// @Router      /incomes/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	var update services.TransactionUpdate
	update.Name = req.Name
	if req.Amount != nil {
		amount, err := money.ParsePositive(req.Amount.String())
		if err != nil {
			respondWithError(c, amountError(err))
			return
		}
		update.Amount = &amount
	}
	if req.CategoryID != nil {
		categoryID, err := parseID(*req.CategoryID, "categoryId")
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.CategoryID = &categoryID
	}
	if req.Date != nil {
		date, err := parseFlexibleTime(*req.Date)
		if err != nil {
			respondWithError(c, err)
			return
		}
		update.Date = &date
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), h.kind, id, update)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTransactionResponse(txn))
}

// DeleteTransaction removes a row permanently.
// @Summary     Delete an expense or income
// @Tags        expenses,incomes
// @Produce     json
// @Param       id path int true "ID"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Invalid ID"
// @Failure     404 {object} ErrorResponse "Not found"
// @Router      /expenses/{id} [delete]
// @Router      /incomes/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), h.kind, id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: h.kind.Title() + " deleted successfully"})
}
