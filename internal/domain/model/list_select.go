package model

import (
	"fmt"
	"slices"
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Property names reported by ListSelect in addition to ValueProperty.
const (
	ItemsProperty   = "items"
	EnabledProperty = "enabled"
)

// ListSelect is an ordered list of values with a single selection. The
// selection is a Value model whose value is either the zero value (nothing
// selected) or a member of the list. Each value can be enabled or disabled
// independently.
//
// The list and the per-value enabled flags are guarded by an RWMutex; the
// selection has its own lock inside the Value model. Listeners are always
// called without either lock held.
type ListSelect[V comparable] struct {
	selection *Value[V]

	mu       sync.RWMutex
	items    []V
	disabled map[V]bool
}

// NewListSelect creates an empty list reporting through support.
func NewListSelect[V comparable](support *property.Support) *ListSelect[V] {
	var zero V
	return &ListSelect[V]{
		selection: NewValue(support, zero),
		disabled: make(map[V]bool),
	}
}

// Add appends values to the list.
func (s *ListSelect[V]) Add(values ...V) {
	s.mu.Lock()
	s.items = append(s.items, values...)
	n := len(s.items)
	s.mu.Unlock()
	s.selection.support.Fire(ItemsProperty, n-len(values), n)
}

// Insert places v at index i.
func (s *ListSelect[V]) Insert(i int, v V) error {
	s.mu.Lock()
	if i < 0 || i > len(s.items) {
		n := len(s.items)
		s.mu.Unlock()
		return fmt.Errorf("index %d out of range [0,%d]: %w", i, n, domain.ErrInvalidArgument)
	}
	s.items = slices.Insert(s.items, i, v)
	n := len(s.items)
	s.mu.Unlock()
	s.selection.support.Fire(ItemsProperty, n-1, n)
	return nil
}

// Remove deletes v from the list, clearing the selection if v was selected.
// It reports whether v was present.
func (s *ListSelect[V]) Remove(v V) bool {
	s.mu.Lock()
	i := slices.Index(s.items, v)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	delete(s.disabled, v)
	n := len(s.items)
	s.mu.Unlock()

	if s.selection.Value() == v {
		var zero V
		s.selection.value.Set(zero)
	}
	s.selection.support.Fire(ItemsProperty, n+1, n)
	return true
}

// Clear removes every value and the selection.
func (s *ListSelect[V]) Clear() {
	s.mu.Lock()
	n := len(s.items)
	s.items = nil
	s.disabled = make(map[V]bool)
	s.mu.Unlock()

	var zero V
	s.selection.value.Set(zero)
	s.selection.support.Fire(ItemsProperty, n, 0)
}

// Len returns the number of values.
func (s *ListSelect[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Items returns a copy of the values.
func (s *ListSelect[V]) Items() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Get returns the value at index i.
func (s *ListSelect[V]) Get(i int) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.items) {
		var zero V
		return zero, false
	}
	return s.items[i], true
}

// IndexOf returns the index of v or -1.
func (s *ListSelect[V]) IndexOf(v V) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Index(s.items, v)
}

// SetValue selects v. Selecting a value that is not in the list is vetoed;
// the zero value clears the selection.
func (s *ListSelect[V]) SetValue(v V) property.Result[V] {
	var zero V
	if v != zero && s.IndexOf(v) < 0 {
		return vetoed(s.selection.support, ValueProperty, s.selection.Value(), v,
			fmt.Errorf("value %v is not in the list: %w", v, domain.ErrInvalidArgument))
	}
	return s.selection.SetValue(v)
}

// SelectedIndex returns the index of the selected value or -1.
func (s *ListSelect[V]) SelectedIndex() int {
	var zero V
	v := s.selection.Value()
	if v == zero {
		return -1
	}
	return s.IndexOf(v)
}

// SetSelectedIndex selects the value at i; -1 clears the selection.
func (s *ListSelect[V]) SetSelectedIndex(i int) property.Result[V] {
	if i == -1 {
		var zero V
		return s.SetValue(zero)
	}
	v, ok := s.Get(i)
	if !ok {
		return vetoed(s.selection.support, ValueProperty, s.selection.Value(), v,
			fmt.Errorf("index %d out of range: %w", i, domain.ErrInvalidArgument))
	}
	return s.SetValue(v)
}

// IsEnabled reports whether v may be selected by the user. Values are
// enabled by default.
func (s *ListSelect[V]) IsEnabled(v V) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.disabled[v]
}

// SetEnabled enables or disables v.
func (s *ListSelect[V]) SetEnabled(v V, enabled bool) {
	s.mu.Lock()
	old := !s.disabled[v]
	if enabled {
		delete(s.disabled, v)
	} else {
		s.disabled[v] = true
	}
	s.mu.Unlock()
	if old != enabled {
		s.selection.support.Fire(EnabledProperty, old, enabled)
	}
}

// Support returns the change support the list reports through.
func (s *ListSelect[V]) Support() *property.Support { return s.selection.support }

// Value returns the selected value or the zero value.
func (s *ListSelect[V]) Value() V { return s.selection.Value() }

// ClearValue clears the selection.
func (s *ListSelect[V]) ClearValue() property.Result[V] { return s.selection.ClearValue() }

// SetValidator installs a validator consulted before each selection.
func (s *ListSelect[V]) SetValidator(v Validator[V]) { s.selection.SetValidator(v) }

// ValidateValue checks the current selection.
func (s *ListSelect[V]) ValidateValue() error { return s.selection.ValidateValue() }

// OnChange registers a listener for selection changes.
func (s *ListSelect[V]) OnChange(l property.Listener[V]) *property.Subscription {
	return s.selection.OnChange(l)
}

// OnVeto registers a vetoer consulted before each selection change.
func (s *ListSelect[V]) OnVeto(v property.Vetoer[V]) *property.Subscription {
	return s.selection.OnVeto(v)
}
