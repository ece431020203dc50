package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind selects which of the two transaction tables an operation targets.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindExpense, KindIncome:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown transaction kind %q", s)
}

// Table returns the table holding rows of this kind.
func (k Kind) Table() string {
	if k == KindIncome {
		return "incomes"
	}
	return "expenses"
}

// Title returns the capitalised kind for messages.
func (k Kind) Title() string {
	if k == KindIncome {
		return "Income"
	}
	return "Expense"
}

// CategoryType returns the category type a transaction of this kind must reference.
func (k Kind) CategoryType() CategoryType {
	if k == KindIncome {
		return CategoryTypeIncome
	}
	return CategoryTypeExpense
}

// Transaction is the row shape shared by the expenses and incomes tables.
// The table is chosen per query from the Kind; Category is attached after
// loading rather than through a gorm association.
type Transaction struct {
	Base
	Name       string          `gorm:"not null" json:"name"`
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	CategoryID uint            `gorm:"not null" json:"categoryId"`
	Date       time.Time       `gorm:"not null" json:"date"`

	Kind     Kind      `gorm:"-" json:"-"`
	Category *Category `gorm:"-" json:"category,omitempty"`
}
