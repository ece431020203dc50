package summary

import (
	"sort"

	"kukkaro/internal/client"
)

// PageSize is the initial display count of the merged list and the step LoadMore grows it by.
const PageSize = 10

// MonthTotals holds the summed amounts of one month.
type MonthTotals struct {
	Expenses float64
	Incomes  float64
}

// Balance is incomes minus expenses.
func (t MonthTotals) Balance() float64 {
	return t.Incomes - t.Expenses
}

// Totals sums each list independently.
func Totals(expenses, incomes []client.Transaction) MonthTotals {
	return MonthTotals{Expenses: sum(expenses), Incomes: sum(incomes)}
}

func sum(rows []client.Transaction) float64 {
	var total float64
	for _, r := range rows {
		total += r.Amount
	}
	return total
}

// Entry is one row of the merged list.
type Entry struct {
	Kind client.Kind
	client.Transaction
}

// Merge concatenates expenses and incomes, in that order, and sorts them by
// date descending. Rows with equal dates keep their relative order.
func Merge(expenses, incomes []client.Transaction) []Entry {
	out := make([]Entry, 0, len(expenses)+len(incomes))
	for _, e := range expenses {
		out = append(out, Entry{Kind: client.KindExpense, Transaction: e})
	}
	for _, i := range incomes {
		out = append(out, Entry{Kind: client.KindIncome, Transaction: i})
	}
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date.After(out[b].Date)
	})
	return out
}

// Window is a growing prefix of the merged list.
type Window struct {
	entries []Entry
	count   int
}

// NewWindow shows the first PageSize entries.
func NewWindow(entries []Entry) *Window {
	return &Window{entries: entries, count: PageSize}
}

// Visible returns the entries currently shown.
func (w *Window) Visible() []Entry {
	if w.count >= len(w.entries) {
		return w.entries
	}
	return w.entries[:w.count]
}

// HasMore reports whether LoadMore would reveal more entries.
func (w *Window) HasMore() bool {
	return w.count < len(w.entries)
}

// LoadMore grows the display count by PageSize. It is a no-op once every entry is shown.
func (w *Window) LoadMore() {
	if w.HasMore() {
		w.count += PageSize
	}
}
