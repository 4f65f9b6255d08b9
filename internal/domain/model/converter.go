package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jsamuelsen11/guise/internal/domain"
)

// Converter translates between a value and the text shown to the user.
type Converter[V any] interface {
	Format(v V) string
	Parse(text string) (V, error)
}

// StringConverter is the identity converter.
type StringConverter struct{}

func (StringConverter) Format(v string) string            { return v }
func (StringConverter) Parse(text string) (string, error) { return text, nil }

// IntConverter converts base-10 integers. Empty text parses to zero.
type IntConverter struct{}

func (IntConverter) Format(v int) string { return strconv.Itoa(v) }

func (IntConverter) Parse(text string) (int, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, domain.NewValidationError(validationField, fmt.Sprintf("%q is not a whole number", text))
	}
	return v, nil
}

// FloatConverter converts decimal numbers. Empty text parses to zero.
type FloatConverter struct{}

func (FloatConverter) Format(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func (FloatConverter) Parse(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, domain.NewValidationError(validationField, fmt.Sprintf("%q is not a number", text))
	}
	return v, nil
}

// BoolConverter converts the forms accepted by strconv.ParseBool plus "on",
// which browsers submit for checked boxes.
type BoolConverter struct{}

func (BoolConverter) Format(v bool) string { return strconv.FormatBool(v) }

func (BoolConverter) Parse(text string) (bool, error) {
	text = strings.TrimSpace(text)
	switch strings.ToLower(text) {
	case "", "off":
		return false, nil
	case "on":
		return true, nil
	}
	v, err := strconv.ParseBool(text)
	if err != nil {
		return false, domain.NewValidationError(validationField, fmt.Sprintf("%q is not true or false", text))
	}
	return v, nil
}

// AnyConverter formats arbitrary values with fmt. It cannot parse.
type AnyConverter struct{}

func (AnyConverter) Format(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func (AnyConverter) Parse(text string) (any, error) {
	return nil, fmt.Errorf("parsing %q: %w", text, domain.ErrIllegalState)
}

// TimeConverter converts calendar dates in ISO 8601 form.
type TimeConverter struct{}

const dateLayout = "2006-01-02"

func (TimeConverter) Format(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.Format(dateLayout)
}

func (TimeConverter) Parse(text string) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, nil
	}
	v, err := time.Parse(dateLayout, text)
	if err != nil {
		return time.Time{}, domain.NewValidationError(validationField, fmt.Sprintf("%q is not a date (YYYY-MM-DD)", text))
	}
	return v, nil
}

// Erase adapts a typed converter to one over any. Formatting a value of the
// wrong type falls back to fmt.
func Erase[V any](c Converter[V]) Converter[any] {
	return erased[V]{c}
}

type erased[V any] struct{ c Converter[V] }

func (e erased[V]) Format(v any) string {
	typed, ok := v.(V)
	if !ok {
		return AnyConverter{}.Format(v)
	}
	return e.c.Format(typed)
}

func (e erased[V]) Parse(text string) (any, error) {
	v, err := e.c.Parse(text)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// ConverterFor returns the converter for values of class, matching the most
// specific known class in its ancestry.
func ConverterFor(class *domain.Class) Converter[any] {
	for _, c := range class.Ancestry() {
		switch c {
		case ClassBoolean:
			return Erase[bool](BoolConverter{})
		case ClassInteger:
			return Erase[int](IntConverter{})
		case ClassDecimal, ClassNumber:
			return Erase[float64](FloatConverter{})
		case ClassString:
			return Erase[string](StringConverter{})
		case ClassTime:
			return Erase[time.Time](TimeConverter{})
		}
	}
	return AnyConverter{}
}
