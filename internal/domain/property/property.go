// Package property implements bound properties: values whose mutation is
// observable and can be rejected before it takes effect.
//
// A mutation runs in four steps. Set compares the old and new values and
// returns an Unchanged result when they are equal. Otherwise every vetoer is
// consulted in registration order, and the first error aborts the change
// with a Vetoed result. Then the value is assigned, and change listeners run
// synchronously in registration order, followed by the any-property
// listeners of the owning Support.
//
//	support := property.NewSupport(owner)
//	label := property.NewBound(support, "label", "")
//	sub := label.OnChange(func(c property.Change[string]) { ... })
//	defer sub.Unsubscribe()
//
//	if r := label.Set("Next"); r.Vetoed() {
//		return r.Err
//	}
package property

import (
	"errors"
	"slices"
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain"
)

// Change describes a single property mutation.
type Change[V any] struct {
	Source any
	Name   string
	Old    V
	New    V
}

// Outcome classifies the result of a Set call.
type Outcome int

const (
	Unchanged Outcome = iota
	Changed
	Vetoed
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case Vetoed:
		return "vetoed"
	default:
		return "unknown"
	}
}

// Result is the typed outcome of a mutation. Err is non-nil only when the
// change was vetoed and always matches domain.ErrVetoed.
type Result[V any] struct {
	Change  Change[V]
	Outcome Outcome
	Err     error
}

// Changed reports whether the value was assigned.
func (r Result[V]) Changed() bool { return r.Outcome == Changed }

// Vetoed reports whether a vetoer or validator rejected the change.
func (r Result[V]) Vetoed() bool { return r.Outcome == Vetoed }

// Listener observes committed changes.
type Listener[V any] func(Change[V])

// Vetoer may reject a pending change by returning an error.
type Vetoer[V any] func(Change[V]) error

// Bound is a single observable value. It is safe for concurrent use; the
// lock is never held while listeners run, so listeners may read or mutate
// other properties.
type Bound[V comparable] struct {
	name    string
	support *Support

	mu    sync.RWMutex
	value V

	vetoers   Listeners[Vetoer[V]]
	listeners Listeners[Listener[V]]
}

// NewBound creates a bound property named name. Committed changes are also
// reported to support when it is non-nil.
func NewBound[V comparable](support *Support, name string, initial V) *Bound[V] {
	return &Bound[V]{name: name, support: support, value: initial}
}

// Name returns the property name.
func (b *Bound[V]) Name() string { return b.name }

// Get returns the current value.
func (b *Bound[V]) Get() V {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Set changes the value, consulting vetoers first.
func (b *Bound[V]) Set(v V) Result[V] {
	b.mu.RLock()
	old := b.value
	b.mu.RUnlock()

	ch := Change[V]{Source: b.source(), Name: b.name, Old: old, New: v}
	if old == v {
		return Result[V]{Change: ch, Outcome: Unchanged}
	}

	for _, veto := range b.vetoers.Snapshot() {
		if err := veto(ch); err != nil {
			return Result[V]{Change: ch, Outcome: Vetoed, Err: asVeto(b.name, err)}
		}
	}

	b.mu.Lock()
	b.value = v
	b.mu.Unlock()

	for _, l := range b.listeners.Snapshot() {
		l(ch)
	}
	if b.support != nil {
		b.support.Fire(b.name, old, v)
	}

	return Result[V]{Change: ch, Outcome: Changed}
}

// OnChange registers a listener for committed changes.
func (b *Bound[V]) OnChange(l Listener[V]) *Subscription {
	return b.listeners.Add(l)
}

// ListenerCount returns the number of registered change listeners.
func (b *Bound[V]) ListenerCount() int { return b.listeners.Len() }

// OnVeto registers a vetoer consulted before each change.
func (b *Bound[V]) OnVeto(v Vetoer[V]) *Subscription {
	return b.vetoers.Add(v)
}

func (b *Bound[V]) source() any {
	if b.support == nil {
		return nil
	}
	return b.support.Source()
}

// Veto builds the error a vetoer returns to reject a change of property.
func Veto(property string, cause error) error {
	return &domain.VetoError{Property: property, Cause: cause}
}

func asVeto(name string, err error) error {
	var verr *domain.VetoError
	if errors.As(err, &verr) {
		return err
	}
	return &domain.VetoError{Property: name, Cause: err}
}

// Event is the untyped form of a Change delivered to any-property listeners.
type Event struct {
	Source any
	Name   string
	Old    any
	New    any
}

// Support fans out changes of every property owned by a source object.
type Support struct {
	source    any
	listeners Listeners[func(Event)]
}

// NewSupport creates change support for source.
func NewSupport(source any) *Support {
	return &Support{source: source}
}

// Source returns the object whose properties are reported.
func (s *Support) Source() any { return s.source }

// OnAny registers a listener for changes of any property of the source.
func (s *Support) OnAny(fn func(Event)) *Subscription {
	return s.listeners.Add(fn)
}

// Fire reports a change that happened outside a Bound property, such as a
// structural change of a container or table.
func (s *Support) Fire(name string, oldValue, newValue any) {
	ev := Event{Source: s.source, Name: name, Old: oldValue, New: newValue}
	for _, fn := range s.listeners.Snapshot() {
		fn(ev)
	}
}

// Subscription cancels a listener registration.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Unsubscribe removes the listener. Calling it more than once, or on a nil
// Subscription, is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.cancel == nil {
		return
	}
	s.once.Do(s.cancel)
}

// Listeners is an ordered, concurrency-safe list of callbacks. The zero value
// is ready to use.
type Listeners[F any] struct {
	mu      sync.Mutex
	nextID  uint64
	entries []entry[F]
}

type entry[F any] struct {
	id uint64
	fn F
}

// Add appends fn and returns the subscription that removes it.
func (r *Listeners[F]) Add(fn F) *Subscription {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.entries = append(r.entries, entry[F]{id: id, fn: fn})
	r.mu.Unlock()

	return &Subscription{cancel: func() { r.remove(id) }}
}

func (r *Listeners[F]) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = slices.DeleteFunc(r.entries, func(e entry[F]) bool { return e.id == id })
}

// Len returns the number of registered functions.
func (r *Listeners[F]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Snapshot copies the registered functions so dispatch can run without the
// lock held.
func (r *Listeners[F]) Snapshot() []F {
	r.mu.Lock()
	defer r.mu.Unlock()
	fns := make([]F, len(r.entries))
	for i, e := range r.entries {
		fns[i] = e.fn
	}
	return fns
}
