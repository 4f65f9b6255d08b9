package component

import (
	"fmt"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// TaskStateProperty is reported by TaskCardConstraints.
const TaskStateProperty = "taskState"

// Constraints are per-child layout parameters owned by the parent's layout.
type Constraints interface {
	Support() *property.Support
}

// Layout arranges the children of a container.
type Layout interface {
	// Accept returns the constraints child will carry in this layout. Nil
	// given constraints yield the layout's defaults; constraints of a type
	// the layout cannot use are rejected with domain.ErrInvalidArgument.
	Accept(child Component, given Constraints) (Constraints, error)
}

// Axis is the direction a flow layout places children in.
type Axis int

const (
	LineAxis Axis = iota
	PageAxis
)

func (a Axis) String() string {
	if a == LineAxis {
		return "line"
	}
	return "page"
}

// FlowLayout places children one after another along an axis.
type FlowLayout struct {
	Axis Axis
}

// FlowConstraints carry no parameters.
type FlowConstraints struct {
	support *property.Support
}

// NewFlowConstraints returns empty flow constraints.
func NewFlowConstraints() *FlowConstraints {
	fc := &FlowConstraints{}
	fc.support = property.NewSupport(fc)
	return fc
}

func (fc *FlowConstraints) Support() *property.Support { return fc.support }

func (l FlowLayout) Accept(_ Component, given Constraints) (Constraints, error) {
	switch c := given.(type) {
	case nil:
		return NewFlowConstraints(), nil
	case *FlowConstraints:
		return c, nil
	default:
		return nil, fmt.Errorf("flow layout cannot use %T: %w", given, domain.ErrInvalidArgument)
	}
}

// CardLayout shows one child at a time.
type CardLayout struct{}

func (CardLayout) Accept(child Component, given Constraints) (Constraints, error) {
	switch c := given.(type) {
	case nil:
		return NewCardConstraints(child.Label()), nil
	case cardConstrained:
		return c, nil
	default:
		return nil, fmt.Errorf("card layout cannot use %T: %w", given, domain.ErrInvalidArgument)
	}
}

type cardConstrained interface {
	Constraints
	card() *CardConstraints
}

// CardConstraints describe a card: its tab label and whether it may be
// selected and shown.
type CardConstraints struct {
	support   *property.Support
	label     *property.Bound[string]
	enabled   *property.Bound[bool]
	displayed *property.Bound[bool]
}

// NewCardConstraints returns enabled, displayed card constraints.
func NewCardConstraints(label string) *CardConstraints {
	cc := &CardConstraints{}
	cc.initCard(cc, label)
	return cc
}

func (cc *CardConstraints) initCard(source any, label string) {
	cc.support = property.NewSupport(source)
	cc.label = property.NewBound(cc.support, LabelProperty, label)
	cc.enabled = property.NewBound(cc.support, EnabledProperty, true)
	cc.displayed = property.NewBound(cc.support, DisplayedProperty, true)
}

func (cc *CardConstraints) card() *CardConstraints    { return cc }
func (cc *CardConstraints) Support() *property.Support { return cc.support }

func (cc *CardConstraints) Label() string { return cc.label.Get() }

func (cc *CardConstraints) SetLabel(label string) property.Result[string] {
	return cc.label.Set(label)
}

func (cc *CardConstraints) Enabled() bool { return cc.enabled.Get() }

func (cc *CardConstraints) SetEnabled(enabled bool) property.Result[bool] {
	return cc.enabled.Set(enabled)
}

func (cc *CardConstraints) Displayed() bool { return cc.displayed.Get() }

func (cc *CardConstraints) SetDisplayed(displayed bool) property.Result[bool] {
	return cc.displayed.Set(displayed)
}

// TaskCardConstraints add the progress of a card within a sequence.
type TaskCardConstraints struct {
	CardConstraints
	taskState *property.Bound[domain.TaskState]
}

// NewTaskCardConstraints returns card constraints with no task state.
func NewTaskCardConstraints(label string) *TaskCardConstraints {
	tc := &TaskCardConstraints{}
	tc.initCard(tc, label)
	tc.taskState = property.NewBound(tc.support, TaskStateProperty, domain.TaskStateNone)
	return tc
}

func (tc *TaskCardConstraints) TaskState() domain.TaskState { return tc.taskState.Get() }

func (tc *TaskCardConstraints) SetTaskState(s domain.TaskState) property.Result[domain.TaskState] {
	return tc.taskState.Set(s)
}

// cardConstraintsOf returns the card constraints of c, or nil if c is not a
// card.
func cardConstraintsOf(c Component) *CardConstraints {
	if c == nil {
		return nil
	}
	if cc, ok := c.Constraints().(cardConstrained); ok {
		return cc.card()
	}
	return nil
}

func taskConstraintsOf(c Component) *TaskCardConstraints {
	if c == nil {
		return nil
	}
	tc, _ := c.Constraints().(*TaskCardConstraints)
	return tc
}

// CardConstraintsOf exposes the card constraints of a card panel child.
func CardConstraintsOf(c Component) (*CardConstraints, bool) {
	cc := cardConstraintsOf(c)
	return cc, cc != nil
}

// TaskStateOf returns the task state of a card in a sequence.
func TaskStateOf(c Component) (domain.TaskState, bool) {
	tc := taskConstraintsOf(c)
	if tc == nil {
		return domain.TaskStateNone, false
	}
	return tc.TaskState(), true
}
