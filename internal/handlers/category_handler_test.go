package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "kukkaro/internal/errors"
	"kukkaro/internal/models"
	"kukkaro/internal/services"
)

// --- mock category service ---

type mockCategoryService struct {
	createCategoryFn       func(ctx context.Context, name string, categoryType models.CategoryType, icon, color string) (*models.Category, error)
	listCategoriesFn       func(ctx context.Context) ([]models.Category, error)
	listCategoriesByTypeFn func(ctx context.Context, categoryType models.CategoryType) ([]models.Category, error)
	getCategoryByIDFn      func(ctx context.Context, id uint) (*models.Category, error)
	updateCategoryFn       func(ctx context.Context, id uint, update services.CategoryUpdate) (*models.Category, error)
	deleteCategoryFn       func(ctx context.Context, id uint) error
}

func (m *mockCategoryService) CreateCategory(ctx context.Context, name string, categoryType models.CategoryType, icon, color string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(ctx, name, categoryType, icon, color)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	if m.listCategoriesFn != nil {
		return m.listCategoriesFn(ctx)
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) ListCategoriesByType(ctx context.Context, categoryType models.CategoryType) ([]models.Category, error) {
	if m.listCategoriesByTypeFn != nil {
		return m.listCategoriesByTypeFn(ctx, categoryType)
	}
	return []models.Category{}, nil
}

func (m *mockCategoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(ctx, id)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(ctx context.Context, id uint, update services.CategoryUpdate) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(ctx, id, update)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(ctx context.Context, id uint) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(ctx, id)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := newTestRouter()
	r.GET("/categories", handler.ListCategories)
	r.GET("/categories/:type", handler.ListCategoriesByType)
	r.POST("/categories", handler.CreateCategory)
	r.PUT("/categories/:id", handler.UpdateCategory)
	r.DELETE("/categories/:id", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		catSvc := &mockCategoryService{
			createCategoryFn: func(_ context.Context, name string, catType models.CategoryType, icon, color string) (*models.Category, error) {
				return &models.Category{
					Base:  models.Base{ID: 1},
					Name:  name,
					Type:  catType,
					Icon:  icon,
					Color: color,
				}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc))

		rec := doRequest(r, "POST", "/categories",
			`{"name":"Food","type":"expense","icon":"🍕","color":"#FF0000"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["name"] != "Food" {
			t.Errorf("expected Food, got %v", result["name"])
		}
		if result["color"] != "#FF0000" {
			t.Errorf("expected color, got %v", result["color"])
		}
	})

	t.Run("returns 400 listing missing fields", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "POST", "/categories", `{"type":"expense"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "VALIDATION_ERROR")
		if result["error"] != "Missing required fields: name, color, icon" {
			t.Errorf("unexpected message %v", result["error"])
		}
	})

	t.Run("returns 400 on invalid type", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "POST", "/categories",
			`{"name":"Food","type":"invalid","icon":"x","color":"#fff"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if msg := parseJSON(t, rec)["error"]; msg != "type must be income or expense" {
			t.Errorf("unexpected message %v", msg)
		}
	})

	t.Run("returns 400 on invalid color", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "POST", "/categories",
			`{"name":"Food","type":"expense","icon":"x","color":"red"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_ListCategories(t *testing.T) {
	t.Run("returns all", func(t *testing.T) {
		catSvc := &mockCategoryService{
			listCategoriesFn: func(context.Context) ([]models.Category, error) {
				return []models.Category{
					{Base: models.Base{ID: 2}, Name: "Food", Type: models.CategoryTypeExpense},
					{Base: models.Base{ID: 1}, Name: "Salary", Type: models.CategoryTypeIncome},
				}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc))

		rec := doRequest(r, "GET", "/categories", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if rows := parseJSONArray(t, rec); len(rows) != 2 {
			t.Errorf("expected 2 categories, got %d", len(rows))
		}
	})

	t.Run("by type", func(t *testing.T) {
		var gotType models.CategoryType
		catSvc := &mockCategoryService{
			listCategoriesByTypeFn: func(_ context.Context, categoryType models.CategoryType) ([]models.Category, error) {
				gotType = categoryType
				return []models.Category{}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc))

		rec := doRequest(r, "GET", "/categories/income", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if gotType != models.CategoryTypeIncome {
			t.Errorf("expected income, got %s", gotType)
		}
	})

	t.Run("by invalid type propagates validation error", func(t *testing.T) {
		catSvc := &mockCategoryService{
			listCategoriesByTypeFn: func(context.Context, models.CategoryType) ([]models.Category, error) {
				return nil, apperrors.Validationf("Invalid category type")
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc))

		rec := doRequest(r, "GET", "/categories/savings", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	t.Run("passes partial fields", func(t *testing.T) {
		var got services.CategoryUpdate
		catSvc := &mockCategoryService{
			updateCategoryFn: func(_ context.Context, id uint, update services.CategoryUpdate) (*models.Category, error) {
				got = update
				return &models.Category{Base: models.Base{ID: id}, Name: "Food", Color: *update.Color}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc))

		rec := doRequest(r, "PUT", "/categories/4", `{"color":"#00ff00"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Name != nil || got.Icon != nil {
			t.Errorf("expected only color, got %+v", got)
		}
	})

	t.Run("ignores type in body", func(t *testing.T) {
		catSvc := &mockCategoryService{
			updateCategoryFn: func(_ context.Context, _ uint, update services.CategoryUpdate) (*models.Category, error) {
				if update.Name == nil {
					t.Error("expected name to be passed")
				}
				return &models.Category{Type: models.CategoryTypeExpense}, nil
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc))

		rec := doRequest(r, "PUT", "/categories/4", `{"name":"x","type":"income"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if parseJSON(t, rec)["type"] != "expense" {
			t.Error("type must not change")
		}
	})

	t.Run("returns 400 on invalid color", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "PUT", "/categories/4", `{"color":"blue"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns message", func(t *testing.T) {
		r := setupCategoryRouter(NewCategoryHandler(&mockCategoryService{}))

		rec := doRequest(r, "DELETE", "/categories/4", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if msg := parseJSON(t, rec)["message"]; msg != "Category deleted successfully" {
			t.Errorf("unexpected message %v", msg)
		}
	})

	t.Run("returns 400 with blocking count", func(t *testing.T) {
		catSvc := &mockCategoryService{
			deleteCategoryFn: func(context.Context, uint) error {
				return apperrors.CategoryInUse(2)
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc))

		rec := doRequest(r, "DELETE", "/categories/4", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "CATEGORY_IN_USE")
		if result["error"] != "Cannot delete category with existing transactions (2 transactions found)" {
			t.Errorf("unexpected message %v", result["error"])
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		catSvc := &mockCategoryService{
			deleteCategoryFn: func(context.Context, uint) error {
				return apperrors.ErrCategoryNotFound
			},
		}
		r := setupCategoryRouter(NewCategoryHandler(catSvc))

		rec := doRequest(r, "DELETE", "/categories/4", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
