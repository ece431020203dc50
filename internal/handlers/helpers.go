package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "kukkaro/internal/errors"
)

// parsePathID parses a uint path parameter.
// Returns a validation error if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Validationf("Invalid %s", param)
	}
	return uint(id), nil
}

// respondWithError hands err to middleware.ErrorHandler, which renders it.
func respondWithError(c *gin.Context, err error) {
	_ = c.Error(err)
}

// bindJSON decodes the request body into req and runs binding validation,
// converting failures into validation AppErrors.
func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return bindingError(err)
	}
	return nil
}

func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var missing, problems []string
		for _, fe := range verrs {
			switch fe.Tag() {
			case "required":
				missing = append(missing, fe.Field())
			case "hex_color":
				problems = append(problems, fe.Field()+" must be a hex color such as #ff8800")
			case "category_type":
				problems = append(problems, fe.Field()+" must be income or expense")
			case "year_month":
				problems = append(problems, fe.Field()+" must have the form YYYY-MM")
			default:
				problems = append(problems, fe.Field()+" is invalid")
			}
		}
		if len(missing) > 0 {
			return apperrors.Validationf("Missing required fields: %s", strings.Join(missing, ", "))
		}
		return apperrors.Validationf("%s", strings.Join(problems, "; "))
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperrors.Validationf("Invalid value for %s", typeErr.Field)
	}

	var flexErr *flexibleValueError
	if errors.As(err, &flexErr) {
		return apperrors.Validationf("%s", flexErr.Error())
	}

	return apperrors.Wrap(apperrors.WithMessage(apperrors.ErrValidation, "Invalid request body"), err)
}

// NumberOrString is a JSON value sent either as a number or as a string,
// such as an amount typed with a decimal comma. It keeps the raw text.
type NumberOrString string

type flexibleValueError struct {
	raw string
}

func (e *flexibleValueError) Error() string {
	return fmt.Sprintf("expected a number or a string, got %s", e.raw)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NumberOrString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumberOrString(strings.TrimSpace(s))
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return &flexibleValueError{raw: string(b)}
	}
	*n = NumberOrString(num.String())
	return nil
}

// String returns the raw text.
func (n NumberOrString) String() string { return string(n) }

// present reports whether an optional value was sent and is not blank.
func present(n *NumberOrString) bool {
	return n != nil && *n != ""
}

func presentString(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}

// parseID parses a category reference sent as a number or numeric string.
func parseID(n NumberOrString, field string) (uint, error) {
	id, err := strconv.ParseUint(string(n), 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Validationf("Invalid %s", field)
	}
	return uint(id), nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// parseFlexibleTime accepts RFC 3339 timestamps with or without fractional
// seconds, a timestamp without zone (read as UTC) and plain YYYY-MM-DD dates.
func parseFlexibleTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.Validationf("Invalid date %q", s)
}
