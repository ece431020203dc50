package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "kukkaro/internal/errors"
	"kukkaro/internal/events"
	"kukkaro/internal/models"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db     *gorm.DB
	events events.Publisher
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, publisher events.Publisher) CategoryServicer {
	return &categoryService{db: db, events: publisher}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(
	ctx context.Context,
	name string,
	categoryType models.CategoryType,
	icon string,
	color string,
) (*models.Category, error) {
	name = strings.TrimSpace(name)

	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if categoryType == "" {
		missing = append(missing, "type")
	}
	if color == "" {
		missing = append(missing, "color")
	}
	if icon == "" {
		missing = append(missing, "icon")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}
	if !categoryType.Valid() {
		return nil, apperrors.Validationf("Invalid category type %q: must be income or expense", categoryType)
	}

	category := &models.Category{
		Name:  name,
		Type:  categoryType,
		Icon:  icon,
		Color: color,
	}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		return nil, dbError(err)
	}

	publish(ctx, s.events, events.EntityCategory, events.ActionCreated, category.ID)
	return category, nil
}

// ListCategories returns all categories sorted by name.
func (s *categoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.db.WithContext(ctx).Order("name ASC").Order("id ASC").Find(&categories).Error; err != nil {
		return nil, dbError(err)
	}
	return categories, nil
}

// ListCategoriesByType returns the categories of one type sorted by name.
func (s *categoryService) ListCategoriesByType(ctx context.Context, categoryType models.CategoryType) ([]models.Category, error) {
	if !categoryType.Valid() {
		return nil, apperrors.Validationf("Invalid category type %q: must be income or expense", categoryType)
	}

	categories := []models.Category{}
	if err := s.db.WithContext(ctx).
		Where("type = ?", categoryType).
		Order("name ASC").Order("id ASC").
		Find(&categories).Error; err != nil {
		return nil, dbError(err)
	}
	return categories, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, dbError(err)
	}
	return &category, nil
}

// UpdateCategory changes name, icon and color. At least one must be given.
func (s *categoryService) UpdateCategory(ctx context.Context, id uint, update CategoryUpdate) (*models.Category, error) {
	if update.Name == nil && update.Icon == nil && update.Color == nil {
		return nil, apperrors.Validationf("At least one field (name, color, icon) is required")
	}

	category, err := s.GetCategoryByID(ctx, id)
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
	if update.Icon != nil {
		updates["icon"] = *update.Icon
	}
	if update.Color != nil {
		updates["color"] = *update.Color
	}

	if err := s.db.WithContext(ctx).Model(category).Updates(updates).Error; err != nil {
		return nil, dbError(err)
	}

	publish(ctx, s.events, events.EntityCategory, events.ActionUpdated, id)
	return s.GetCategoryByID(ctx, id)
}

// DeleteCategory removes a category that no expense or income references.
// The reference count and the delete run in one database transaction.
func (s *categoryService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return dbError(err)
		}

		var total int64
		for _, kind := range []models.Kind{models.KindExpense, models.KindIncome} {
			var n int64
			if err := tx.Table(kind.Table()).Where("category_id = ?", id).Count(&n).Error; err != nil {
				return dbError(err)
			}
			total += n
		}
		if total > 0 {
			return apperrors.CategoryInUse(total)
		}

		if err := tx.Delete(&category).Error; err != nil {
			return dbError(err)
		}
		return nil
	})
	if err != nil {
		return dbError(err)
	}

	publish(ctx, s.events, events.EntityCategory, events.ActionDeleted, id)
	return nil
}
