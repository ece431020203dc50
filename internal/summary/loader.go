// Package summary turns the raw expense and income lists of a month into
// display-ready aggregates.
package summary

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"kukkaro/internal/client"
)

// ErrLoadFailed is the single user-facing error reported for any failed load.
var ErrLoadFailed = errors.New("could not load this month's data, please retry")

// MonthFormat is the layout of month keys sent to the API.
const MonthFormat = "2006-01"

// TransactionLister defines the API operation needed by the loader.
type TransactionLister interface {
	ListTransactions(ctx context.Context, kind client.Kind, month string) ([]client.Transaction, error)
}

// Snapshot is one consistent view of a month. Both lists always come from
// the same load.
type Snapshot struct {
	Month    string
	Expenses []client.Transaction
	Incomes  []client.Transaction
	LoadedAt time.Time
}

// Loader fetches a month and publishes it as the current snapshot.
type Loader struct {
	source  TransactionLister
	logger  *zap.SugaredLogger
	current atomic.Pointer[Snapshot]
}

// NewLoader creates a new Loader.
func NewLoader(source TransactionLister, logger *zap.SugaredLogger) *Loader {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Loader{source: source, logger: logger}
}

// MonthKey returns the YYYY-MM key of the month containing date.
func MonthKey(date time.Time) string {
	return date.Format(MonthFormat)
}

// LoadMonth fetches the expenses and incomes of the month containing date
// concurrently. If either request fails the previous snapshot stays current
// and the returned error wraps ErrLoadFailed. Nothing is retried.
func (l *Loader) LoadMonth(ctx context.Context, date time.Time) (*Snapshot, error) {
	month := MonthKey(date)
	start := time.Now()

	var expenses, incomes []client.Transaction
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := l.source.ListTransactions(gctx, client.KindExpense, month)
		expenses = rows
		return err
	})
	g.Go(func() error {
		rows, err := l.source.ListTransactions(gctx, client.KindIncome, month)
		incomes = rows
		return err
	})
	if err := g.Wait(); err != nil {
		l.logger.Warnw("month load failed", "month", month, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	snap := &Snapshot{
		Month:    month,
		Expenses: nonNil(expenses),
		Incomes:  nonNil(incomes),
		LoadedAt: time.Now(),
	}
	l.current.Store(snap)

	l.logger.Debugw("month loaded",
		"month", month,
		"expenses", len(snap.Expenses),
		"incomes", len(snap.Incomes),
		"duration", time.Since(start),
	)
	return snap, nil
}

// Current returns the last successfully loaded snapshot, or nil before the first load.
func (l *Loader) Current() *Snapshot {
	return l.current.Load()
}

func nonNil(rows []client.Transaction) []client.Transaction {
	if rows == nil {
		return []client.Transaction{}
	}
	return rows
}
