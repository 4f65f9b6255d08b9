package component

import (
	"fmt"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/model"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// CardPanel shows one child, the selected card, at a time. The first card
// added is selected automatically. Selecting a card whose constraints are
// disabled is vetoed unless the panel permits it for an in-flight transition.
type CardPanel struct {
	Container
	cards *model.ListSelect[Component]

	// permitDisabled reports whether a disabled card may be selected now.
	permitDisabled func() bool
}

// NewCardPanel returns an empty card panel.
func NewCardPanel() *CardPanel {
	p := &CardPanel{}
	p.initCardPanel(p, ClassCardPanel)
	return p
}

func (p *CardPanel) initCardPanel(self Composite, class *domain.Class) {
	p.initContainer(self, class, CardLayout{})
	p.cards = model.NewListSelect[Component](p.support)
	p.validity = p.selectedValid
	p.added = p.cardAdded
	p.removed = p.cardRemoved
	p.cards.OnVeto(p.vetoDisabledCard)
	p.cards.OnChange(func(property.Change[Component]) { p.updateValid() })
}

func (p *CardPanel) cardAdded(card Component) {
	p.cards.Add(card)
	if cc := cardConstraintsOf(card); cc != nil {
		cc.Support().OnAny(func(ev property.Event) {
			// Card constraint changes are reported as changes of the panel.
			p.support.Fire(ev.Name, ev.Old, ev.New)
		})
	}
	if p.cards.Value() == nil {
		p.cards.SetValue(card)
	}
}

func (p *CardPanel) cardRemoved(card Component, _ int) {
	p.cards.Remove(card)
	if p.cards.Value() == nil && p.cards.Len() > 0 {
		p.cards.SetSelectedIndex(0)
	}
}

func (p *CardPanel) vetoDisabledCard(ch property.Change[Component]) error {
	if ch.New == nil || p.CardEnabled(ch.New) {
		return nil
	}
	if p.permitDisabled != nil && p.permitDisabled() {
		return nil
	}
	return property.Veto(model.ValueProperty, fmt.Errorf("card %d is disabled: %w", ch.New.ID(), domain.ErrIllegalState))
}

// Selected returns the selected card, or nil.
func (p *CardPanel) Selected() Component { return p.cards.Value() }

// SetSelected selects card. The result is vetoed when card is not a child,
// is disabled, or a listener refuses the change.
func (p *CardPanel) SetSelected(card Component) property.Result[Component] {
	return p.cards.SetValue(card)
}

// SelectedIndex returns the index of the selected card, or -1.
func (p *CardPanel) SelectedIndex() int { return p.cards.SelectedIndex() }

// SetSelectedIndex selects the card at i.
func (p *CardPanel) SetSelectedIndex(i int) property.Result[Component] {
	return p.cards.SetSelectedIndex(i)
}

// OnSelect registers a listener for selection changes.
func (p *CardPanel) OnSelect(l property.Listener[Component]) *property.Subscription {
	return p.cards.OnChange(l)
}

// OnSelectVeto registers a vetoer consulted before the selection changes.
func (p *CardPanel) OnSelectVeto(v property.Vetoer[Component]) *property.Subscription {
	return p.cards.OnVeto(v)
}

// CardEnabled reports whether card's constraints allow it to be selected.
func (p *CardPanel) CardEnabled(card Component) bool {
	cc := cardConstraintsOf(card)
	return cc == nil || cc.Enabled()
}

// CardDisplayed reports whether card's constraints show it.
func (p *CardPanel) CardDisplayed(card Component) bool {
	cc := cardConstraintsOf(card)
	return cc == nil || cc.Displayed()
}

// CardLabel returns the label of card's constraints, falling back to the
// card's own label.
func (p *CardPanel) CardLabel(card Component) string {
	if cc := cardConstraintsOf(card); cc != nil && cc.Label() != "" {
		return cc.Label()
	}
	return card.Label()
}

// Validate validates only the selected card. Hidden cards are validated when
// they are shown.
func (p *CardPanel) Validate() bool {
	valid := true
	if sel := p.Selected(); sel != nil {
		valid = sel.Validate()
	}
	p.setValid(valid)
	return valid
}

func (p *CardPanel) selectedValid() bool {
	sel := p.Selected()
	return sel == nil || sel.Valid()
}

func (p *CardPanel) PropertyValue(name string) (any, bool) {
	if name == model.ValueProperty {
		return p.SelectedIndex(), true
	}
	return p.Base.PropertyValue(name)
}

// SetPropertyValue accepts the selected index as "value".
func (p *CardPanel) SetPropertyValue(name string, value any) error {
	if name == model.ValueProperty {
		i, err := asInt(value)
		if err != nil {
			return err
		}
		return p.SetSelectedIndex(i).Err
	}
	return p.Base.SetPropertyValue(name, value)
}
