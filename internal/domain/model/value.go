package model

import (
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Property names reported by value models.
const (
	ValueProperty     = "value"
	ValidatorProperty = "validator"
)

// Value holds a single value with a default and an optional validator.
//
// SetValue validates before anything else, even when the new value equals
// the current one; a validation failure is reported as a vetoed result whose
// error matches domain.ErrValidation.
type Value[V comparable] struct {
	support      *property.Support
	value        *property.Bound[V]
	defaultValue V

	mu        sync.RWMutex
	validator Validator[V]
}

// NewValue creates a value model initialized to defaultValue. Changes are
// reported through support, which is usually the owning component's; a nil
// support gives the model its own.
func NewValue[V comparable](support *property.Support, defaultValue V) *Value[V] {
	m := &Value[V]{defaultValue: defaultValue}
	if support == nil {
		support = property.NewSupport(m)
	}
	m.support = support
	m.value = property.NewBound(support, ValueProperty, defaultValue)
	return m
}

// Support returns the change support the model reports through.
func (m *Value[V]) Support() *property.Support { return m.support }

// Value returns the current value.
func (m *Value[V]) Value() V { return m.value.Get() }

// DefaultValue returns the value ResetValue restores.
func (m *Value[V]) DefaultValue() V { return m.defaultValue }

// SetValue validates v and, if acceptable, assigns it.
func (m *Value[V]) SetValue(v V) property.Result[V] {
	if err := m.ValidateCandidate(v); err != nil {
		return vetoed(m.support, ValueProperty, m.Value(), v, err)
	}
	return m.value.Set(v)
}

// ClearValue sets the zero value.
func (m *Value[V]) ClearValue() property.Result[V] {
	var zero V
	return m.SetValue(zero)
}

// ResetValue restores the default value.
func (m *Value[V]) ResetValue() property.Result[V] {
	return m.SetValue(m.defaultValue)
}

// Validator returns the installed validator, or nil.
func (m *Value[V]) Validator() Validator[V] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.validator
}

// SetValidator installs v; nil removes validation.
func (m *Value[V]) SetValidator(v Validator[V]) {
	m.mu.Lock()
	old := m.validator
	m.validator = v
	m.mu.Unlock()
	m.support.Fire(ValidatorProperty, old, v)
}

// ValidateCandidate checks v against the validator without assigning it.
func (m *Value[V]) ValidateCandidate(v V) error {
	val := m.Validator()
	if val == nil {
		return nil
	}
	return val.Validate(v)
}

// ValidateValue checks the current value.
func (m *Value[V]) ValidateValue() error {
	return m.ValidateCandidate(m.Value())
}

// IsValidValue reports whether the current value passes validation.
func (m *Value[V]) IsValidValue() bool {
	return m.ValidateValue() == nil
}

// OnChange registers a listener for value changes.
func (m *Value[V]) OnChange(l property.Listener[V]) *property.Subscription {
	return m.value.OnChange(l)
}

// OnVeto registers a vetoer consulted after validation and before each
// value change.
func (m *Value[V]) OnVeto(v property.Vetoer[V]) *property.Subscription {
	return m.value.OnVeto(v)
}

func vetoed[V any](support *property.Support, name string, old, v V, cause error) property.Result[V] {
	return property.Result[V]{
		Change:  property.Change[V]{Source: support.Source(), Name: name, Old: old, New: v},
		Outcome: property.Vetoed,
		Err:     property.Veto(name, cause),
	}
}
