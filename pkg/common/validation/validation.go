package validation

import (
	"net/url"
	"strings"
	"time"

	rferrors "github.com/vnykmshr/rxflow/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive[N ~int | ~int32 | ~int64](module, field string, value N) error {
	if value <= 0 {
		return rferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegative validates that an integer value is non-negative (>= 0).
func ValidateNonNegative(module, field string, value int) error {
	if value < 0 {
		return rferrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive value")
	}
	return nil
}

// ValidatePositiveDuration validates that a duration is greater than zero.
func ValidatePositiveDuration(module, field string, value time.Duration) error {
	if value <= 0 {
		return rferrors.NewValidationError(module, field, value, "must be positive").
			WithHint("use a duration such as 500ms or 1s")
	}
	return nil
}

// ValidateNotNil validates that an interface value is not nil.
// Returns a ValidationError if the value is nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if value == nil {
		return rferrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return rferrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// ValidateOneOf validates that value is one of the allowed choices.
func ValidateOneOf(module, field, value string, choices ...string) error {
	for _, c := range choices {
		if value == c {
			return nil
		}
	}
	return rferrors.NewValidationError(module, field, value, "unsupported value").
		WithHint("expected one of " + strings.Join(choices, ", "))
}

// ValidateURL validates that value parses as an absolute URL whose scheme is
// one of schemes.
func ValidateURL(module, field, value string, schemes ...string) error {
	if err := ValidateNotEmpty(module, field, value); err != nil {
		return err
	}
	u, err := url.Parse(value)
	if err != nil || u.Host == "" {
		return rferrors.NewValidationError(module, field, value, "not an absolute URL")
	}
	if len(schemes) == 0 {
		return nil
	}
	return ValidateOneOf(module, field+".scheme", u.Scheme, schemes...)
}
