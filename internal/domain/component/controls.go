package component

import (
	"context"

	"github.com/jsamuelsen11/guise/internal/domain/model"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Label shows its label text and nothing else.
type Label struct {
	Base
}

func NewLabel(text string) *Label {
	l := &Label{}
	l.init(l, ClassLabel)
	l.label.Set(text)
	return l
}

// Message property names.
const (
	MessageProperty     = "message"
	ContentTypeProperty = "contentType"
)

// Content types a Message can carry.
const (
	ContentTypePlain = "text/plain"
	ContentTypeXHTML = "application/xhtml+xml"
)

// Message shows a block of text, optionally preformatted XHTML.
type Message struct {
	Base
	message     *property.Bound[string]
	contentType *property.Bound[string]
}

func NewMessage(text string) *Message {
	m := &Message{}
	m.init(m, ClassMessage)
	m.message = property.NewBound(m.support, MessageProperty, text)
	m.contentType = property.NewBound(m.support, ContentTypeProperty, ContentTypePlain)
	return m
}

func (m *Message) Message() string { return m.message.Get() }

func (m *Message) SetMessage(text string) property.Result[string] { return m.message.Set(text) }

func (m *Message) ContentType() string { return m.contentType.Get() }

func (m *Message) SetContentType(ct string) property.Result[string] {
	return m.contentType.Set(ct)
}

func (m *Message) PropertyValue(name string) (any, bool) {
	switch name {
	case MessageProperty:
		return m.Message(), true
	case ContentTypeProperty:
		return m.ContentType(), true
	}
	return m.Base.PropertyValue(name)
}

func (m *Message) SetPropertyValue(name string, value any) error {
	switch name {
	case MessageProperty:
		return setString(m.message, value)
	case ContentTypeProperty:
		return setString(m.contentType, value)
	}
	return m.Base.SetPropertyValue(name, value)
}

// Button performs an action when activated. A button bound to an action
// prototype takes its label and enabled state from the prototype.
type Button struct {
	Base
	prototype *model.ActionPrototype
	actions   property.Listeners[func(context.Context)]
}

func NewButton(label string) *Button {
	b := &Button{}
	b.init(b, ClassButton)
	b.label.Set(label)
	return b
}

// NewPrototypeButton returns a button that mirrors and performs p.
func NewPrototypeButton(p *model.ActionPrototype) *Button {
	b := NewButton(p.Label())
	b.prototype = p
	b.enabled.Set(p.Enabled())
	p.Support().OnAny(func(ev property.Event) {
		if ev.Name == model.EnabledProperty {
			b.enabled.Set(p.Enabled())
		}
	})
	return b
}

// Prototype returns the bound prototype, or nil.
func (b *Button) Prototype() *model.ActionPrototype { return b.prototype }

// OnAction registers fn to run when the button is performed.
func (b *Button) OnAction(fn func(context.Context)) *property.Subscription {
	return b.actions.Add(fn)
}

// Perform runs the action if the button is enabled and reports whether it
// did.
func (b *Button) Perform(ctx context.Context) bool {
	if !b.Enabled() {
		return false
	}
	if b.prototype != nil && !b.prototype.Perform(ctx) {
		return false
	}
	for _, fn := range b.actions.Snapshot() {
		fn(ctx)
	}
	return true
}
