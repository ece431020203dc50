package models

import "github.com/shopspring/decimal"

// SettingsID is the primary key of the only settings row.
const SettingsID uint = 1

// Settings holds the budget configuration. Exactly one row exists.
type Settings struct {
	Base
	BudgetEnabled bool            `gorm:"not null;default:false" json:"budgetEnabled"`
	BudgetAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"budgetAmount"`
}

// DefaultSettings returns the row created on first read.
func DefaultSettings() Settings {
	return Settings{
		Base:          Base{ID: SettingsID},
		BudgetEnabled: false,
		BudgetAmount:  decimal.Zero,
	}
}

// TableName pins the table name for the singleton row.
func (Settings) TableName() string { return "settings" }
