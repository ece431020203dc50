package services

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "kukkaro/internal/errors"
	"kukkaro/internal/events"
	"kukkaro/internal/models"
)

// settingsService manages the single settings row.
type settingsService struct {
	db     *gorm.DB
	events events.Publisher
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB, publisher events.Publisher) SettingsServicer {
	return &settingsService{db: db, events: publisher}
}

// GetSettings returns the settings row, inserting the defaults first when it
// does not exist yet.
func (s *settingsService) GetSettings(ctx context.Context) (*models.Settings, error) {
	db := s.db.WithContext(ctx)

	defaults := models.DefaultSettings()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&defaults).Error; err != nil {
		return nil, dbError(err)
	}

	var settings models.Settings
	if err := db.First(&settings, models.SettingsID).Error; err != nil {
		return nil, dbError(err)
	}
	return &settings, nil
}

// UpdateSettings applies the provided fields only.
func (s *settingsService) UpdateSettings(ctx context.Context, update SettingsUpdate) (*models.Settings, error) {
	current, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if update.BudgetEnabled != nil {
		updates["budget_enabled"] = *update.BudgetEnabled
	}
	if update.BudgetAmount != nil {
		if update.BudgetAmount.IsNegative() {
			return nil, apperrors.Validationf("Budget amount must be a non-negative number")
		}
		amount, err := storableAmount("Budget amount", *update.BudgetAmount)
		if err != nil {
			return nil, err
		}
		updates["budget_amount"] = amount
	}
	if len(updates) == 0 {
		return current, nil
	}

	if err := s.db.WithContext(ctx).Model(&models.Settings{}).
		Where("id = ?", models.SettingsID).
		Updates(updates).Error; err != nil {
		return nil, dbError(err)
	}

	publish(ctx, s.events, events.EntitySettings, events.ActionUpdated, models.SettingsID)
	return s.GetSettings(ctx)
}
