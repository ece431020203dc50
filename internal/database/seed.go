package database

import (
	"fmt"

	"kukkaro/internal/logger"
	"kukkaro/internal/models"
)

// DefaultCategories is the starter set inserted into an empty database.
var DefaultCategories = []models.Category{
	{Name: "Food", Type: models.CategoryTypeExpense, Icon: "🍔", Color: "#ef4444"},
	{Name: "Transport", Type: models.CategoryTypeExpense, Icon: "🚌", Color: "#3b82f6"},
	{Name: "Entertainment", Type: models.CategoryTypeExpense, Icon: "🎬", Color: "#a855f7"},
	{Name: "Housing", Type: models.CategoryTypeExpense, Icon: "🏠", Color: "#f59e0b"},
	{Name: "Other", Type: models.CategoryTypeExpense, Icon: "📦", Color: "#6b7280"},
	{Name: "Salary", Type: models.CategoryTypeIncome, Icon: "💼", Color: "#22c55e"},
	{Name: "Other", Type: models.CategoryTypeIncome, Icon: "💰", Color: "#14b8a6"},
}

// Seed inserts DefaultCategories when the categories table is empty and
// returns how many rows were created.
func (m *Manager) Seed() (int, error) {
	var count int64
	if err := m.db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		logger.Get().Infof("Skipping seed: %d categories already present", count)
		return 0, nil
	}

	rows := make([]models.Category, len(DefaultCategories))
	copy(rows, DefaultCategories)
	if err := m.db.Create(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to seed categories: %w", err)
	}

	logger.Get().Infof("Seeded %d default categories", len(rows))
	return len(rows), nil
}
