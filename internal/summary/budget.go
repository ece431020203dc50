package summary

import (
	"math"
	"sync"

	"kukkaro/internal/client"
)

// Budget describes spending against the monthly budget.
type Budget struct {
	// Active is false when budgeting is disabled or the amount is not positive;
	// the remaining fields are zero then.
	Active       bool
	Amount       float64
	Spent        float64
	Percentage   float64
	IsOverBudget bool
}

// Remaining is the amount left before the budget is reached; negative when over.
func (b Budget) Remaining() float64 {
	return b.Amount - b.Spent
}

func budgetActive(settings client.Settings) bool {
	return settings.BudgetEnabled && settings.BudgetAmount > 0
}

// BudgetStatus compares the month's expenses with the budget settings.
// Percentage is capped at 100.
func BudgetStatus(expenses []client.Transaction, settings client.Settings) Budget {
	if !budgetActive(settings) {
		return Budget{}
	}

	spent := sum(expenses)
	return Budget{
		Active:       true,
		Amount:       settings.BudgetAmount,
		Spent:        spent,
		Percentage:   math.Min(spent/settings.BudgetAmount*100, 100),
		IsOverBudget: spent > settings.BudgetAmount,
	}
}

// CrossedBudget reports whether moving from previousTotal to newTotal crossed
// the budget, i.e. previousTotal was within it and newTotal is above it.
func CrossedBudget(previousTotal, newTotal float64, settings client.Settings) bool {
	if !budgetActive(settings) {
		return false
	}
	return previousTotal <= settings.BudgetAmount && newTotal > settings.BudgetAmount
}

// BudgetWatch remembers the last known expense total so that a crossing is
// reported once. The total is client-side state: two concurrent submits can
// both observe the old total.
type BudgetWatch struct {
	mu    sync.Mutex
	total float64
}

// NewBudgetWatch starts watching from the given expense total.
func NewBudgetWatch(total float64) *BudgetWatch {
	return &BudgetWatch{total: total}
}

// Reset replaces the known total, e.g. after a reload.
func (w *BudgetWatch) Reset(total float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.total = total
}

// Total returns the last known expense total.
func (w *BudgetWatch) Total() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.total
}

// Add records a new expense and reports whether it pushed spending over the budget.
func (w *BudgetWatch) Add(amount float64, settings client.Settings) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	previous := w.total
	w.total += amount
	return CrossedBudget(previous, w.total, settings)
}
