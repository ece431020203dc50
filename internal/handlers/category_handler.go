package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kukkaro/internal/models"
	"kukkaro/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents the request payload for creating a category
type CreateCategoryRequest struct {
	Name  string              `json:"name" binding:"required" example:"Food"`
	Type  models.CategoryType `json:"type" binding:"required,category_type" enums:"income,expense"`
	Color string              `json:"color" binding:"required,hex_color" example:"#ef4444"`
	Icon  string              `json:"icon" binding:"required" example:"🍔"`
}

// UpdateCategoryRequest represents the request payload for updating a category.
// The type of a category cannot be changed.
type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color" binding:"omitempty,hex_color"`
	Icon  *string `json:"icon"`
}

// ListCategories returns all categories sorted by name.
// @Summary     List categories
// @Tags        categories
// @Produce     json
// @Success     200 {array} CategoryResponse
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponses(categories))
}

// ListCategoriesByType returns the categories of one type.
// @Summary     List categories by type
// @Tags        categories
// @Produce     json
// @Param       type path string true "Category type" Enums(income, expense)
// @Success     200 {array} CategoryResponse
// @Failure     400 {object} ErrorResponse "Invalid type"
// @Router      /categories/{type} [get]
func (h *CategoryHandler) ListCategoriesByType(c *gin.Context) {
	categoryType := models.CategoryType(c.Param("type"))

	categories, err := h.categoryService.ListCategoriesByType(c.Request.Context(), categoryType)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newCategoryResponses(categories))
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CreateCategoryRequest true "Category details"
// @Success     201 {object} CategoryResponse "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), req.Name, req.Type, req.Icon, req.Color)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, newCategoryResponse(category))
}

// UpdateCategory changes name, color or icon.
// @Summary     Update a category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id path int true "Category ID"
// @Param       request body UpdateCategoryRequest true "Fields to change"
// @Success     200 {object} CategoryResponse
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := bindJSON(c, &req); err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), id, services.CategoryUpdate{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, newCategoryResponse(category))
}

// DeleteCategory removes a category no transaction references.
// @Summary     Delete a category
// @Description Fails with 400 and the number of blocking transactions while the category is in use
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} MessageResponse
// @Failure     400 {object} ErrorResponse "Category in use"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Category deleted successfully"})
}
