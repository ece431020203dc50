package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "kukkaro/internal/errors"
	"kukkaro/internal/events"
	"kukkaro/internal/logger"
)

// MonthRange returns the inclusive bounds of a "YYYY-MM" month in UTC:
// the first day at 00:00:00 through the last day at 23:59:59. The last day
// is day zero of the following month, so month lengths and leap years come
// from the calendar.
func MonthRange(month string) (time.Time, time.Time, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Validationf("Invalid month %q: expected YYYY-MM", month)
	}
	y, m, _ := first.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(y, m+1, 0, 23, 59, 59, 0, time.UTC)
	return start, end, nil
}

// Amounts are stored as NUMERIC(12,2).
var (
	minAmount = decimal.New(1, -2)
	maxAmount = decimal.RequireFromString("9999999999.99")
)

// storableAmount rounds amount to cents and checks it fits the amount
// columns. label prefixes the validation messages.
func storableAmount(label string, amount decimal.Decimal) (decimal.Decimal, error) {
	rounded := amount.Round(2)
	if rounded.GreaterThan(maxAmount) {
		return decimal.Zero, apperrors.Validationf("%s must not exceed %s", label, maxAmount.StringFixed(2))
	}
	return rounded, nil
}

// dbError converts a gorm error into an AppError. Constraint violations are
// recognised through gorm's TranslateError option.
func dbError(err error) error {
	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Wrap(apperrors.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.Wrap(apperrors.ErrInvalidReference, err)
	}
	return apperrors.Wrap(apperrors.ErrInternalServer, err)
}

// publish emits a change event. Failures are logged and otherwise ignored:
// the write has already been committed.
func publish(ctx context.Context, p events.Publisher, entity, action string, id uint) {
	if p == nil {
		return
	}
	e := events.New(entity, action, id)
	if err := p.Publish(ctx, e); err != nil {
		logger.Get().Warnw("failed to publish event",
			"type", e.Type,
			"id", id,
			"error", err,
		)
	}
}

func missingFields(fields []string) error {
	return apperrors.Validationf("Missing required fields: %s", strings.Join(fields, ", "))
}
