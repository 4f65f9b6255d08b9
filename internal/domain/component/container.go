package component

import (
	"fmt"
	"slices"
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// ChildrenProperty is fired when a child is added (New holds the child) or
// removed (Old holds the child).
const ChildrenProperty = "children"

// Container is a composite whose children are arranged by a Layout. Its
// validity is the conjunction of its children's.
type Container struct {
	Base
	layout Layout

	cmu      sync.RWMutex
	children []Component
	subs     map[int64]*property.Subscription

	// Hooks for specialized containers.
	added      func(child Component)
	removed    func(child Component, index int)
	validity   func() bool
	childValid func(child Component, valid bool)
}

func (c *Container) initContainer(self Composite, class *domain.Class, layout Layout) {
	c.init(self, class)
	c.layout = layout
	c.subs = make(map[int64]*property.Subscription)
	c.validity = c.allChildrenValid
}

// Layout returns the layout arranging the children.
func (c *Container) Layout() Layout { return c.layout }

// Add appends child with the given constraints; nil constraints take the
// layout's defaults. A child that already has a parent is rejected with
// domain.ErrIllegalState.
func (c *Container) Add(child Component, constraints Constraints) error {
	if child == nil || child == c.self {
		return fmt.Errorf("cannot add %v to itself: %w", child, domain.ErrInvalidArgument)
	}
	cons, err := c.layout.Accept(child, constraints)
	if err != nil {
		return err
	}
	parent, _ := c.self.(Composite)
	if err := child.base().attach(parent); err != nil {
		return err
	}
	child.base().setConstraints(cons)

	sub := child.base().valid.OnChange(func(ch property.Change[bool]) {
		c.childValidChanged(child, ch.New)
	})

	c.cmu.Lock()
	c.children = append(c.children, child)
	c.subs[child.ID()] = sub
	c.cmu.Unlock()

	c.support.Fire(ChildrenProperty, nil, child)
	if c.added != nil {
		c.added(child)
	}
	c.updateValid()
	return nil
}

// Remove detaches child. It reports whether child was present.
func (c *Container) Remove(child Component) bool {
	c.cmu.Lock()
	i := slices.Index(c.children, child)
	if i < 0 {
		c.cmu.Unlock()
		return false
	}
	c.children = slices.Delete(c.children, i, i+1)
	sub := c.subs[child.ID()]
	delete(c.subs, child.ID())
	c.cmu.Unlock()

	sub.Unsubscribe()
	child.base().detach()
	if c.removed != nil {
		c.removed(child, i)
	}
	c.support.Fire(ChildrenProperty, child, nil)
	c.updateValid()
	return true
}

// Clear removes every child.
func (c *Container) Clear() {
	for _, child := range c.Children() {
		c.Remove(child)
	}
}

// Children returns a snapshot of the children in order.
func (c *Container) Children() []Component {
	c.cmu.RLock()
	defer c.cmu.RUnlock()
	return slices.Clone(c.children)
}

// Len returns the number of children.
func (c *Container) Len() int {
	c.cmu.RLock()
	defer c.cmu.RUnlock()
	return len(c.children)
}

// IndexOf returns the position of child, or -1.
func (c *Container) IndexOf(child Component) int {
	c.cmu.RLock()
	defer c.cmu.RUnlock()
	return slices.Index(c.children, child)
}

// Get returns the child at i.
func (c *Container) Get(i int) (Component, bool) {
	c.cmu.RLock()
	defer c.cmu.RUnlock()
	if i < 0 || i >= len(c.children) {
		return nil, false
	}
	return c.children[i], true
}

// Validate validates every child, without stopping at the first failure, so
// that each invalid child gets its notification.
func (c *Container) Validate() bool {
	valid := true
	for _, child := range c.Children() {
		if !child.Validate() {
			valid = false
		}
	}
	c.setValid(valid && c.validity())
	return c.Valid()
}

func (c *Container) childValidChanged(child Component, valid bool) {
	c.updateValid()
	if c.childValid != nil {
		c.childValid(child, valid)
	}
}

func (c *Container) updateValid() {
	c.setValid(c.validity())
}

func (c *Container) allChildrenValid() bool {
	for _, child := range c.Children() {
		if !child.Valid() {
			return false
		}
	}
	return true
}

// Panel is a general-purpose container with a flow layout.
type Panel struct {
	Container
}

// NewPanel returns an empty panel laid out along axis.
func NewPanel(axis Axis) *Panel {
	p := &Panel{}
	p.initContainer(p, ClassPanel, FlowLayout{Axis: axis})
	return p
}

// NotificationSink receives notifications for the user. Then, if non-nil,
// must run once the user has acknowledged them.
type NotificationSink interface {
	Notify(then func(), notes ...domain.Notification)
}

// TitleProperty is reported by Frame.
const TitleProperty = "title"

// Frame is the root of a component tree shown as one page. Notifications
// raised anywhere in the tree are delivered to the frame's sink.
type Frame struct {
	Container
	title *property.Bound[string]

	smu  sync.RWMutex
	sink NotificationSink
}

// NewFrame returns a frame with a page-axis flow layout.
func NewFrame(title string) *Frame {
	f := &Frame{}
	f.initContainer(f, ClassFrame, FlowLayout{Axis: PageAxis})
	f.title = property.NewBound(f.support, TitleProperty, title)
	return f
}

func (f *Frame) Title() string { return f.title.Get() }

func (f *Frame) SetTitle(title string) property.Result[string] { return f.title.Set(title) }

// NotificationSink returns the sink, or nil while the frame is not shown in
// a session.
func (f *Frame) NotificationSink() NotificationSink {
	f.smu.RLock()
	defer f.smu.RUnlock()
	return f.sink
}

func (f *Frame) SetNotificationSink(s NotificationSink) {
	f.smu.Lock()
	f.sink = s
	f.smu.Unlock()
}

func (f *Frame) PropertyValue(name string) (any, bool) {
	if name == TitleProperty {
		return f.Title(), true
	}
	return f.Base.PropertyValue(name)
}

func (f *Frame) SetPropertyValue(name string, value any) error {
	if name == TitleProperty {
		return setString(f.title, value)
	}
	return f.Base.SetPropertyValue(name, value)
}
