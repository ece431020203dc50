package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "kukkaro/internal/errors"
	"kukkaro/internal/money"
	"kukkaro/internal/services"
)

// SettingsHandler serves the budget settings singleton.
type SettingsHandler struct {
	settingsService services.SettingsServicer
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsService services.SettingsServicer) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// UpdateSettingsRequest represents a partial settings update.
type UpdateSettingsRequest struct {
	BudgetEnabled *bool           `json:"budgetEnabled"`
	BudgetAmount  *NumberOrString `json:"budgetAmount" swaggertype:"string" example:"1500,00"`
}

// GetSettings returns the settings, creating the defaults on first read.
// @Summary     Get settings
// @Tags        settings
// @Produce     json
// @Success     200 {object} SettingsResponse
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /settings [get]
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSettingsResponse(settings))
}

// UpdateSettings applies the provided fields.
// @Summary     Update settings
// @Tags        settings
// @Accept      json
// @Produce     json
// @Param       request body UpdateSettingsRequest true "Fields to change"
// @Success     200 {object} SettingsResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /settings [put]
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	var update services.SettingsUpdate
	update.BudgetEnabled = req.BudgetEnabled
	if req.BudgetAmount != nil {
		amount, err := money.ParseNonNegative(req.BudgetAmount.String())
		if err != nil {
			respondWithError(c, apperrors.Validationf("Budget amount must be a non-negative number"))
			return
		}
		update.BudgetAmount = &amount
	}

	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), update)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSettingsResponse(settings))
}
