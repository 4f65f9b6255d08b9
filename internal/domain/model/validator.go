package model

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/jsamuelsen11/guise/internal/domain"
)

// validationField is the field key used in ValidationErrors raised by
// validators; the value under validation has no other name.
const validationField = "value"

// Validator checks a candidate value. It returns an error matching
// domain.ErrValidation when the value is not acceptable.
type Validator[V any] interface {
	Validate(v V) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc[V any] func(V) error

// Validate calls f(v).
func (f ValidatorFunc[V]) Validate(v V) error { return f(v) }

// Required rejects the zero value.
func Required[V comparable]() Validator[V] {
	return ValidatorFunc[V](func(v V) error {
		var zero V
		if v == zero {
			return domain.NewValidationError(validationField, "required")
		}
		return nil
	})
}

// StringLength bounds the number of characters in a string. A negative max
// means no upper bound.
func StringLength(minLen, maxLen int) Validator[string] {
	return ValidatorFunc[string](func(s string) error {
		n := utf8.RuneCountInString(s)
		if n < minLen {
			return domain.NewValidationError(validationField, fmt.Sprintf("must be at least %d characters", minLen))
		}
		if maxLen >= 0 && n > maxLen {
			return domain.NewValidationError(validationField, fmt.Sprintf("must be at most %d characters", maxLen))
		}
		return nil
	})
}

// Pattern requires a non-empty string to match re. The empty string passes;
// combine with Required to demand a value.
func Pattern(re *regexp.Regexp) Validator[string] {
	return ValidatorFunc[string](func(s string) error {
		if s != "" && !re.MatchString(s) {
			return domain.NewValidationError(validationField, fmt.Sprintf("must match %s", re.String()))
		}
		return nil
	})
}

// IntRange requires minValue <= v <= maxValue.
func IntRange(minValue, maxValue int) Validator[int] {
	return ValidatorFunc[int](func(v int) error {
		if v < minValue || v > maxValue {
			return domain.NewValidationError(validationField, fmt.Sprintf("must be between %d and %d", minValue, maxValue))
		}
		return nil
	})
}

// All runs each validator in order and returns the first failure.
func All[V any](validators ...Validator[V]) Validator[V] {
	return ValidatorFunc[V](func(v V) error {
		for _, val := range validators {
			if err := val.Validate(v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Untyped adapts a typed validator to values of unknown type, as stored in
// table cells. A value of the wrong type fails validation.
func Untyped[V any](val Validator[V]) Validator[any] {
	return ValidatorFunc[any](func(v any) error {
		typed, ok := v.(V)
		if !ok {
			if v == nil {
				var zero V
				return val.Validate(zero)
			}
			return domain.NewValidationError(validationField, fmt.Sprintf("unexpected type %T", v))
		}
		return val.Validate(typed)
	})
}
