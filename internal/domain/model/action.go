package model

import (
	"context"

	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// ActionPrototype is a reusable description of a user action, such as
// "next" in a wizard or "first page" in a table. Controls bound to a
// prototype render its label and enabled state and invoke Perform when
// activated.
type ActionPrototype struct {
	id      string
	label   string
	support *property.Support
	enabled *property.Bound[bool]
	actions property.Listeners[func(context.Context)]
}

// NewActionPrototype creates an enabled prototype.
func NewActionPrototype(id, label string) *ActionPrototype {
	p := &ActionPrototype{id: id, label: label}
	p.support = property.NewSupport(p)
	p.enabled = property.NewBound(p.support, EnabledProperty, true)
	return p
}

// ID identifies the prototype within its owner, e.g. "next".
func (p *ActionPrototype) ID() string    { return p.id }
func (p *ActionPrototype) Label() string { return p.label }

// Support returns the prototype's change support.
func (p *ActionPrototype) Support() *property.Support { return p.support }

func (p *ActionPrototype) Enabled() bool { return p.enabled.Get() }

func (p *ActionPrototype) SetEnabled(enabled bool) property.Result[bool] {
	return p.enabled.Set(enabled)
}

// OnAction registers fn to run when the prototype is performed.
func (p *ActionPrototype) OnAction(fn func(context.Context)) *property.Subscription {
	return p.actions.Add(fn)
}

// Perform runs the action listeners if the prototype is enabled and reports
// whether it did.
func (p *ActionPrototype) Perform(ctx context.Context) bool {
	if !p.Enabled() {
		return false
	}
	for _, fn := range p.actions.Snapshot() {
		fn(ctx)
	}
	return true
}
