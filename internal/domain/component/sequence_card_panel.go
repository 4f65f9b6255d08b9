package component

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/model"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Sequence property names.
const (
	SequenceStateProperty     = "sequenceState"
	TransitionEnabledProperty = "transitionEnabled"
)

// Transition identifies the sequence move in progress.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionNext
	TransitionPrevious
)

func (t Transition) String() string {
	switch t {
	case TransitionNext:
		return "next"
	case TransitionPrevious:
		return "previous"
	default:
		return "none"
	}
}

// Errors reported when a sequence refuses to move.
var (
	ErrCardDisabled      = errors.New("card is disabled")
	ErrTransitionRefused = errors.New("card refused the transition")
	ErrCardInvalid       = errors.New("card is not valid")
)

// SequenceCardPanel is a card panel whose cards are the steps of a task,
// such as a wizard. Moving forward validates and commits the current card;
// cards the user has not reached stay disabled until a forward transition
// enables them. Each card's TaskCardConstraints track its progress.
type SequenceCardPanel struct {
	CardPanel

	state             *property.Bound[domain.TaskState]
	transitionEnabled *property.Bound[bool]

	tmu        sync.Mutex
	transition Transition
	ctx        context.Context

	previous *model.ActionPrototype
	next     *model.ActionPrototype
	finish   *model.ActionPrototype
	confirm  *model.ActionPrototype
	cancel   *model.ActionPrototype

	hmu      sync.RWMutex
	onFinish func(ctx context.Context)
	onCancel func(ctx context.Context)
}

// NewSequenceCardPanel returns an empty sequence with transitions enabled.
func NewSequenceCardPanel() *SequenceCardPanel {
	p := &SequenceCardPanel{}
	p.initCardPanel(p, ClassSequenceCardPanel)
	p.state = property.NewBound(p.support, SequenceStateProperty, domain.TaskStateNone)
	p.transitionEnabled = property.NewBound(p.support, TransitionEnabledProperty, true)

	p.previous = model.NewActionPrototype("previous", "Previous")
	p.next = model.NewActionPrototype("next", "Next")
	p.finish = model.NewActionPrototype("finish", "Finish")
	p.confirm = model.NewActionPrototype("continue", "Continue")
	p.cancel = model.NewActionPrototype("cancel", "Cancel")
	p.previous.OnAction(func(ctx context.Context) { p.GoPrevious(ctx) })
	p.next.OnAction(func(ctx context.Context) { p.GoNext(ctx) })
	p.finish.OnAction(func(ctx context.Context) { p.GoFinish(ctx) })
	p.confirm.OnAction(func(ctx context.Context) {
		if p.HasNext() {
			p.GoNext(ctx)
		} else {
			p.GoFinish(ctx)
		}
	})
	p.cancel.OnAction(func(ctx context.Context) { p.GoCancel(ctx) })

	p.permitDisabled = func() bool {
		if !p.TransitionEnabled() {
			return true
		}
		t := p.Transition()
		return t == TransitionNext || t == TransitionPrevious
	}
	p.cards.OnVeto(p.vetoTransition)
	p.cards.OnChange(p.cardSelected)
	p.childValid = p.cardValidChanged
	p.added = p.sequenceCardAdded
	p.updatePrototypes()
	return p
}

// Add appends card. Cards without constraints get TaskCardConstraints.
func (p *SequenceCardPanel) Add(card Component, constraints Constraints) error {
	if constraints == nil && card != nil {
		constraints = NewTaskCardConstraints(card.Label())
	}
	return p.CardPanel.Add(card, constraints)
}

func (p *SequenceCardPanel) sequenceCardAdded(card Component) {
	p.cardAdded(card)
	if cc := cardConstraintsOf(card); cc != nil {
		cc.displayed.OnChange(func(ch property.Change[bool]) {
			if ch.New {
				p.cardShown(card)
			}
		})
	}
	p.updatePrototypes()
}

// cardShown disables the cards from the end of the sequence down to a card
// that became displayed after the current one, so the user must step
// through it.
func (p *SequenceCardPanel) cardShown(card Component) {
	if !p.TransitionEnabled() {
		return
	}
	idx := p.IndexOf(card)
	if idx <= p.SelectedIndex() {
		return
	}
	cards := p.Children()
	for i := len(cards) - 1; i >= idx; i-- {
		if cc := cardConstraintsOf(cards[i]); cc != nil {
			cc.SetEnabled(false)
		}
	}
}

func (p *SequenceCardPanel) cardSelected(ch property.Change[Component]) {
	if p.TransitionEnabled() {
		if tc := taskConstraintsOf(ch.Old); tc != nil {
			if tc.TaskState() == domain.TaskStateError && ch.Old.Valid() {
				tc.SetTaskState(domain.TaskStateIncomplete)
			}
			if ch.New != nil && p.IndexOf(ch.New) > p.IndexOf(ch.Old) {
				tc.SetTaskState(domain.TaskStateComplete)
			}
		}
		if tc := taskConstraintsOf(ch.New); tc != nil && tc.TaskState() == domain.TaskStateNone {
			tc.SetTaskState(domain.TaskStateIncomplete)
		}
	}
	p.updatePrototypes()
}

func (p *SequenceCardPanel) cardValidChanged(card Component, valid bool) {
	tc := taskConstraintsOf(card)
	if tc == nil || tc.TaskState() == domain.TaskStateNone {
		return
	}
	if valid {
		tc.SetTaskState(domain.TaskStateIncomplete)
	} else {
		tc.SetTaskState(domain.TaskStateError)
	}
}

func (p *SequenceCardPanel) updatePrototypes() {
	hasNext := p.HasNext()
	p.previous.SetEnabled(p.HasPrevious())
	p.next.SetEnabled(hasNext)
	p.finish.SetEnabled(!hasNext)
	if hasNext {
		p.confirm.SetEnabled(p.next.Enabled())
	} else {
		p.confirm.SetEnabled(p.finish.Enabled())
	}
}

// State returns the state of the sequence as a whole.
func (p *SequenceCardPanel) State() domain.TaskState { return p.state.Get() }

func (p *SequenceCardPanel) setState(s domain.TaskState) { p.state.Set(s) }

// TransitionEnabled reports whether moves are validated and committed.
func (p *SequenceCardPanel) TransitionEnabled() bool { return p.transitionEnabled.Get() }

func (p *SequenceCardPanel) SetTransitionEnabled(enabled bool) property.Result[bool] {
	return p.transitionEnabled.Set(enabled)
}

// Transition returns the move in progress.
func (p *SequenceCardPanel) Transition() Transition {
	p.tmu.Lock()
	defer p.tmu.Unlock()
	return p.transition
}

// beginTransition records t and ctx for the duration of a move and returns
// the function restoring the previous ones.
func (p *SequenceCardPanel) beginTransition(ctx context.Context, t Transition) func() {
	p.tmu.Lock()
	oldT, oldCtx := p.transition, p.ctx
	p.transition, p.ctx = t, ctx
	p.tmu.Unlock()
	return func() {
		p.tmu.Lock()
		p.transition, p.ctx = oldT, oldCtx
		p.tmu.Unlock()
	}
}

func (p *SequenceCardPanel) context() context.Context {
	p.tmu.Lock()
	defer p.tmu.Unlock()
	if p.ctx == nil {
		return context.Background()
	}
	return p.ctx
}

// Action prototypes driving the sequence, for buttons.
func (p *SequenceCardPanel) PreviousPrototype() *model.ActionPrototype { return p.previous }
func (p *SequenceCardPanel) NextPrototype() *model.ActionPrototype     { return p.next }
func (p *SequenceCardPanel) FinishPrototype() *model.ActionPrototype   { return p.finish }
func (p *SequenceCardPanel) ContinuePrototype() *model.ActionPrototype { return p.confirm }
func (p *SequenceCardPanel) CancelPrototype() *model.ActionPrototype   { return p.cancel }

// SetFinishHandler installs fn to run when the sequence finishes.
func (p *SequenceCardPanel) SetFinishHandler(fn func(ctx context.Context)) {
	p.hmu.Lock()
	p.onFinish = fn
	p.hmu.Unlock()
}

// SetCancelHandler installs fn to run when the sequence is canceled.
func (p *SequenceCardPanel) SetCancelHandler(fn func(ctx context.Context)) {
	p.hmu.Lock()
	p.onCancel = fn
	p.hmu.Unlock()
}

// Next returns the first displayed card after the selected one, or nil.
func (p *SequenceCardPanel) Next() Component {
	cards := p.Children()
	for i := p.SelectedIndex() + 1; i < len(cards); i++ {
		if p.CardDisplayed(cards[i]) {
			return cards[i]
		}
	}
	return nil
}

// Previous returns the last displayed, enabled card before the selected one,
// or nil.
func (p *SequenceCardPanel) Previous() Component {
	cards := p.Children()
	for i := p.SelectedIndex() - 1; i >= 0 && i < len(cards); i-- {
		if p.CardDisplayed(cards[i]) && p.CardEnabled(cards[i]) {
			return cards[i]
		}
	}
	return nil
}

func (p *SequenceCardPanel) HasNext() bool     { return p.Next() != nil }
func (p *SequenceCardPanel) HasPrevious() bool { return p.Previous() != nil }

// GoNext validates the selected card and moves to the next one. If the
// selected card carries notifications they are shown first and the move
// happens once the user acknowledges them. It reports whether a move was
// made or scheduled.
func (p *SequenceCardPanel) GoNext(ctx context.Context) bool {
	next := p.Next()
	if next == nil {
		return false
	}
	restore := p.beginTransition(ctx, TransitionNext)
	defer restore()

	if !p.TransitionEnabled() {
		return p.SetSelected(next).Changed()
	}
	if !p.Validate() {
		return false
	}
	notes := Notifications(p.Selected())
	if len(notes) == 0 {
		return p.SetSelected(next).Changed()
	}
	Notify(p, func() {
		done := p.beginTransition(ctx, TransitionNext)
		defer done()
		p.SetSelected(next)
	}, notes...)
	return true
}

// GoPrevious moves to the previous card. A vetoed move is ignored.
func (p *SequenceCardPanel) GoPrevious(ctx context.Context) bool {
	prev := p.Previous()
	if prev == nil {
		return false
	}
	restore := p.beginTransition(ctx, TransitionPrevious)
	defer restore()
	return p.SetSelected(prev).Changed()
}

// GoFinish validates and commits the selected card, runs the finish handler,
// and marks the sequence complete. A commit failure is reported to the user
// and leaves the sequence unfinished.
func (p *SequenceCardPanel) GoFinish(ctx context.Context) bool {
	if p.Selected() == nil {
		return false
	}
	restore := p.beginTransition(ctx, TransitionNext)
	defer restore()

	if !p.Validate() {
		return false
	}
	finished := false
	finisher := func() {
		if err := p.Commit(ctx); err != nil {
			Notify(p, nil, domain.NewErrorNotification(err))
			return
		}
		p.hmu.RLock()
		fn := p.onFinish
		p.hmu.RUnlock()
		if fn != nil {
			fn(ctx)
		}
		p.setState(domain.TaskStateComplete)
		finished = true
	}
	notes := Notifications(p.Selected())
	if len(notes) == 0 {
		finisher()
		return finished
	}
	Notify(p, finisher, notes...)
	return true
}

// GoCancel runs the cancel handler and marks the sequence canceled.
func (p *SequenceCardPanel) GoCancel(ctx context.Context) {
	p.hmu.RLock()
	fn := p.onCancel
	p.hmu.RUnlock()
	if fn != nil {
		fn(ctx)
	}
	p.setState(domain.TaskStateCanceled)
}

// ResetSequence selects the first card, disables every other card, and
// marks the sequence incomplete. No validation or commit takes place.
func (p *SequenceCardPanel) ResetSequence() {
	p.cards.ClearValue()
	cards := p.Children()
	for i, card := range cards {
		if cc := cardConstraintsOf(card); cc != nil {
			cc.SetEnabled(i == 0)
		}
		if tc := taskConstraintsOf(card); tc != nil {
			tc.SetTaskState(domain.TaskStateNone)
		}
	}
	if len(cards) > 0 {
		p.SetSelectedIndex(0)
	}
	p.setState(domain.TaskStateIncomplete)
}

// Validate validates the selected card. On failure the card is marked as in
// error and the user is told why.
func (p *SequenceCardPanel) Validate() bool {
	if p.CardPanel.Validate() {
		return true
	}
	note := p.Notification()
	sel := p.Selected()
	if tc := taskConstraintsOf(sel); tc != nil {
		tc.SetTaskState(domain.TaskStateError)
	}
	if note == nil && sel != nil {
		if notes := Notifications(sel); len(notes) > 0 {
			note = &notes[0]
		}
	}
	if note == nil {
		n := domain.NewErrorNotification(ErrCardInvalid)
		note = &n
	}
	Notify(p, nil, *note)
	return p.Valid()
}

// Commit commits the selected card if it is Commitable.
func (p *SequenceCardPanel) Commit(ctx context.Context) error {
	if c, ok := p.Selected().(Commitable); ok {
		if err := c.Commit(ctx); err != nil {
			return fmt.Errorf("committing card: %w", err)
		}
	}
	return nil
}

// vetoTransition guards card changes while transitions are enabled. Moving
// forward, or backward when later cards have been reached, requires the
// current card to validate and commit; the current card may also refuse any
// move through SequenceTransitionable.
func (p *SequenceCardPanel) vetoTransition(ch property.Change[Component]) error {
	if !p.TransitionEnabled() || ch.Old == nil || ch.New == nil {
		return nil
	}
	current, target := ch.Old, ch.New
	from, to := p.IndexOf(current), p.IndexOf(target)
	delta := to - from
	transition := p.Transition()

	if transition == TransitionNone && !p.CardEnabled(target) {
		return property.Veto(model.ValueProperty, ErrCardDisabled)
	}

	if to > from || p.laterCardReached(from) {
		if transition != TransitionNext && !p.Validate() {
			return property.Veto(model.ValueProperty, ErrCardInvalid)
		}
		if !canTransition(current, delta) {
			return property.Veto(model.ValueProperty, ErrTransitionRefused)
		}
		if err := p.Commit(p.context()); err != nil {
			Notify(p, nil, domain.NewErrorNotification(err))
			return property.Veto(model.ValueProperty, err)
		}
		if cc := cardConstraintsOf(target); cc != nil {
			cc.SetEnabled(true)
		}
		return nil
	}

	if !canTransition(current, delta) {
		return property.Veto(model.ValueProperty, ErrTransitionRefused)
	}
	return nil
}

// laterCardReached reports whether a card after index is displayed and
// enabled, meaning the user has been there and its state depends on the
// current card.
func (p *SequenceCardPanel) laterCardReached(index int) bool {
	cards := p.Children()
	for i := index + 1; i < len(cards); i++ {
		if p.CardDisplayed(cards[i]) && p.CardEnabled(cards[i]) {
			return true
		}
	}
	return false
}

func canTransition(card Component, delta int) bool {
	if t, ok := card.(SequenceTransitionable); ok {
		return t.CanTransition(delta)
	}
	return true
}

func (p *SequenceCardPanel) PropertyValue(name string) (any, bool) {
	switch name {
	case SequenceStateProperty:
		return p.State().String(), true
	case TransitionEnabledProperty:
		return p.TransitionEnabled(), true
	}
	return p.CardPanel.PropertyValue(name)
}

func (p *SequenceCardPanel) SetPropertyValue(name string, value any) error {
	if name == TransitionEnabledProperty {
		return setBool(p.transitionEnabled, value)
	}
	return p.CardPanel.SetPropertyValue(name, value)
}
