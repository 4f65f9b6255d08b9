package component

import (
	"fmt"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/model"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// SelectControl offers a list of options of which one can be selected.
type SelectControl interface {
	Component
	OptionCount() int
	OptionLabel(i int) string
	OptionSelected(i int) bool
	OptionEnabled(i int) bool
	OptionDisplayed(i int) bool
	SelectOption(i int) error
}

// TaskOptions is implemented by select controls whose options carry the
// progress of a task sequence.
type TaskOptions interface {
	OptionState(i int) (domain.TaskState, bool)
}

var (
	_ SelectControl = (*TabControl[string])(nil)
	_ SelectControl = (*CardTabControl)(nil)
	_ TaskOptions   = (*CardTabControl)(nil)
)

// TabControl selects a value from a list presented as tabs.
type TabControl[V comparable] struct {
	Base
	options *model.ListSelect[V]
	labeler func(V) string
}

// NewTabControl returns an empty tab control. Labeler renders an option;
// nil uses fmt.
func NewTabControl[V comparable](labeler func(V) string) *TabControl[V] {
	if labeler == nil {
		labeler = func(v V) string { return fmt.Sprint(v) }
	}
	c := &TabControl[V]{labeler: labeler}
	c.init(c, ClassTabControl)
	c.options = model.NewListSelect[V](c.support)
	return c
}

// Options returns the underlying list selection model.
func (c *TabControl[V]) Options() *model.ListSelect[V] { return c.options }

func (c *TabControl[V]) OptionCount() int { return c.options.Len() }

func (c *TabControl[V]) OptionLabel(i int) string {
	v, ok := c.options.Get(i)
	if !ok {
		return ""
	}
	return c.labeler(v)
}

func (c *TabControl[V]) OptionSelected(i int) bool { return c.options.SelectedIndex() == i }

func (c *TabControl[V]) OptionEnabled(i int) bool {
	v, ok := c.options.Get(i)
	return ok && c.options.IsEnabled(v)
}

func (c *TabControl[V]) OptionDisplayed(i int) bool { return i >= 0 && i < c.options.Len() }

// SelectOption selects the option at i, refusing disabled options.
func (c *TabControl[V]) SelectOption(i int) error {
	if !c.OptionEnabled(i) {
		return fmt.Errorf("option %d is not selectable: %w", i, domain.ErrInvalidArgument)
	}
	return c.options.SetSelectedIndex(i).Err
}

func (c *TabControl[V]) PropertyValue(name string) (any, bool) {
	if name == model.ValueProperty {
		return c.options.SelectedIndex(), true
	}
	return c.Base.PropertyValue(name)
}

func (c *TabControl[V]) SetPropertyValue(name string, value any) error {
	if name == model.ValueProperty {
		i, err := asInt(value)
		if err != nil {
			return err
		}
		return c.options.SetSelectedIndex(i).Err
	}
	return c.Base.SetPropertyValue(name, value)
}

// CardTabControl presents the cards of a card panel as tabs and selects
// cards through the panel, so panel vetoes apply to tab clicks.
type CardTabControl struct {
	Base
	panel *CardPanel
}

// NewCardTabControl returns tabs for panel.
func NewCardTabControl(panel *CardPanel) *CardTabControl {
	c := &CardTabControl{panel: panel}
	c.init(c, ClassTabControl)
	panel.Support().OnAny(func(ev property.Event) {
		c.support.Fire(ev.Name, ev.Old, ev.New)
	})
	return c
}

// Panel returns the controlled card panel.
func (c *CardTabControl) Panel() *CardPanel { return c.panel }

func (c *CardTabControl) OptionCount() int { return c.panel.Len() }

func (c *CardTabControl) OptionLabel(i int) string {
	card, ok := c.panel.Get(i)
	if !ok {
		return ""
	}
	return c.panel.CardLabel(card)
}

func (c *CardTabControl) OptionSelected(i int) bool { return c.panel.SelectedIndex() == i }

func (c *CardTabControl) OptionEnabled(i int) bool {
	card, ok := c.panel.Get(i)
	return ok && c.panel.CardEnabled(card)
}

func (c *CardTabControl) OptionDisplayed(i int) bool {
	card, ok := c.panel.Get(i)
	return ok && c.panel.CardDisplayed(card)
}

func (c *CardTabControl) OptionState(i int) (domain.TaskState, bool) {
	card, ok := c.panel.Get(i)
	if !ok {
		return domain.TaskStateNone, false
	}
	return TaskStateOf(card)
}

// SelectOption selects the card at i through the panel.
func (c *CardTabControl) SelectOption(i int) error {
	return c.panel.SetSelectedIndex(i).Err
}
