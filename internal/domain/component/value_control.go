package component

import (
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/model"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Value control property names.
const (
	TextProperty     = "text"
	EditableProperty = "editable"
	MaskedProperty   = "masked"
)

// TextEditor is a control edited through text, as submitted by a form field.
type TextEditor interface {
	Component
	Text() string
	SetText(text string) error
	Editable() bool
}

// valueEditor holds what text and check controls share: the model, the
// converter, and the last parse failure.
type valueEditor[V comparable] struct {
	owner     *Base
	model     model.ValueModel[V]
	converter model.Converter[V]
	text      *property.Bound[string]
	editable  *property.Bound[bool]

	mu       sync.Mutex
	parseErr error
	sub      *property.Subscription
}

func (e *valueEditor[V]) initEditor(owner *Base, m model.ValueModel[V], conv model.Converter[V]) {
	e.owner = owner
	e.model = m
	e.converter = conv
	e.text = property.NewBound(owner.support, TextProperty, conv.Format(m.Value()))
	e.editable = property.NewBound(owner.support, EditableProperty, true)
	e.sub = m.OnChange(func(ch property.Change[V]) {
		e.setParseErr(nil)
		e.text.Set(e.converter.Format(ch.New))
		e.updateValid()
	})
	e.updateValid()
}

// release stops following the model, for controls over models that outlive
// them such as table cells.
func (e *valueEditor[V]) release() { e.sub.Unsubscribe() }

// Model returns the edited value model.
func (e *valueEditor[V]) Model() model.ValueModel[V] { return e.model }

func (e *valueEditor[V]) Value() V { return e.model.Value() }

func (e *valueEditor[V]) SetValue(v V) property.Result[V] { return e.model.SetValue(v) }

func (e *valueEditor[V]) Text() string { return e.text.Get() }

// SetText parses text and assigns the result to the model. A parse failure
// or a vetoed value leaves the model untouched, marks the control invalid,
// and sets its notification.
func (e *valueEditor[V]) SetText(text string) error {
	e.text.Set(text)
	v, err := e.converter.Parse(text)
	if err == nil {
		err = e.model.SetValue(v).Err
	}
	e.setParseErr(err)
	if err != nil {
		n := domain.NewErrorNotification(err)
		e.owner.SetNotification(&n)
	} else {
		e.owner.SetNotification(nil)
		e.text.Set(e.converter.Format(e.model.Value()))
	}
	e.updateValid()
	return err
}

func (e *valueEditor[V]) Editable() bool { return e.editable.Get() }

func (e *valueEditor[V]) SetEditable(editable bool) property.Result[bool] {
	return e.editable.Set(editable)
}

// Validate checks both the last entered text and the model value, setting
// the notification on failure.
func (e *valueEditor[V]) Validate() bool {
	err := e.currentErr()
	if err != nil {
		n := domain.NewErrorNotification(err)
		e.owner.SetNotification(&n)
	} else {
		e.owner.SetNotification(nil)
	}
	e.owner.setValid(err == nil)
	return err == nil
}

func (e *valueEditor[V]) currentErr() error {
	e.mu.Lock()
	err := e.parseErr
	e.mu.Unlock()
	if err != nil {
		return err
	}
	return e.model.ValidateValue()
}

func (e *valueEditor[V]) setParseErr(err error) {
	e.mu.Lock()
	e.parseErr = err
	e.mu.Unlock()
}

func (e *valueEditor[V]) updateValid() {
	e.owner.setValid(e.currentErr() == nil)
}

func (e *valueEditor[V]) propertyValue(name string) (any, bool) {
	switch name {
	case TextProperty:
		return e.Text(), true
	case EditableProperty:
		return e.Editable(), true
	}
	return e.owner.PropertyValue(name)
}

func (e *valueEditor[V]) setPropertyValue(name string, value any) error {
	switch name {
	case TextProperty:
		s, ok := value.(string)
		if !ok {
			s = model.AnyConverter{}.Format(value)
		}
		return e.SetText(s)
	case EditableProperty:
		return setBool(e.editable, value)
	}
	return e.owner.SetPropertyValue(name, value)
}

// TextControl edits a value of type V as text.
type TextControl[V comparable] struct {
	Base
	valueEditor[V]
	masked *property.Bound[bool]
}

// NewTextControl returns a control editing m through conv.
func NewTextControl[V comparable](m model.ValueModel[V], conv model.Converter[V]) *TextControl[V] {
	c := &TextControl[V]{}
	c.init(c, ClassTextControl)
	c.masked = property.NewBound(c.support, MaskedProperty, false)
	c.initEditor(&c.Base, m, conv)
	return c
}

// NewStringControl returns a text control over a new string value.
func NewStringControl(label string) *TextControl[string] {
	c := NewTextControl[string](model.NewValue(nil, ""), model.StringConverter{})
	c.label.Set(label)
	return c
}

// Masked reports whether the text is hidden, as for passwords.
func (c *TextControl[V]) Masked() bool { return c.masked.Get() }

func (c *TextControl[V]) SetMasked(masked bool) property.Result[bool] {
	return c.masked.Set(masked)
}

func (c *TextControl[V]) Validate() bool { return c.valueEditor.Validate() }

func (c *TextControl[V]) PropertyValue(name string) (any, bool) {
	if name == MaskedProperty {
		return c.Masked(), true
	}
	return c.propertyValue(name)
}

func (c *TextControl[V]) SetPropertyValue(name string, value any) error {
	if name == MaskedProperty {
		return setBool(c.masked, value)
	}
	return c.setPropertyValue(name, value)
}

// CheckControl edits a boolean as a check box. Its text is "true" or
// "false"; form submissions of "on" and "" are accepted.
type CheckControl struct {
	Base
	valueEditor[bool]
}

// NewCheckControl returns a check control over m, or over a new value when m
// is nil.
func NewCheckControl(label string, m model.ValueModel[bool]) *CheckControl {
	if m == nil {
		m = model.NewValue(nil, false)
	}
	c := &CheckControl{}
	c.init(c, ClassCheckControl)
	c.label.Set(label)
	c.initEditor(&c.Base, m, model.BoolConverter{})
	return c
}

func (c *CheckControl) Checked() bool { return c.Value() }

func (c *CheckControl) SetChecked(checked bool) property.Result[bool] {
	return c.SetValue(checked)
}

func (c *CheckControl) Validate() bool { return c.valueEditor.Validate() }

func (c *CheckControl) PropertyValue(name string) (any, bool) { return c.propertyValue(name) }

func (c *CheckControl) SetPropertyValue(name string, value any) error {
	return c.setPropertyValue(name, value)
}
