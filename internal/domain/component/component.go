package component

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Names of the properties every component carries.
const (
	NameProperty         = "name"
	LabelProperty        = "label"
	StyleIDProperty      = "styleID"
	DisplayedProperty    = "displayed"
	VisibleProperty      = "visible"
	EnabledProperty      = "enabled"
	ValidProperty        = "valid"
	NotificationProperty = "notification"
	OrientationProperty  = "orientation"
	ColorProperty        = "color"
	OpacityProperty      = "opacity"
	ConstraintsProperty  = "constraints"
	ThemeAppliedProperty = "themeApplied"
)

// Orientation is the flow direction of a component's content.
type Orientation int

const (
	LeftToRight Orientation = iota
	RightToLeft
)

func (o Orientation) String() string {
	if o == RightToLeft {
		return "rtl"
	}
	return "ltr"
}

// ParseOrientation accepts "ltr" and "rtl".
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "ltr":
		return LeftToRight, nil
	case "rtl":
		return RightToLeft, nil
	default:
		return LeftToRight, fmt.Errorf("orientation %q: %w", s, domain.ErrInvalidArgument)
	}
}

// Component is a node of the component tree. All implementations embed Base.
type Component interface {
	// ID is unique among all components of the process.
	ID() int64
	Class() *domain.Class

	Name() string
	SetName(name string) property.Result[string]
	Label() string
	SetLabel(label string) property.Result[string]
	StyleID() string
	SetStyleID(id string) property.Result[string]

	Displayed() bool
	SetDisplayed(displayed bool) property.Result[bool]
	Visible() bool
	SetVisible(visible bool) property.Result[bool]
	Enabled() bool
	SetEnabled(enabled bool) property.Result[bool]

	// Valid reports the cached validity; Validate recomputes it.
	Valid() bool
	Validate() bool

	Notification() *domain.Notification
	SetNotification(n *domain.Notification) property.Result[*domain.Notification]

	Orientation() Orientation
	SetOrientation(o Orientation) property.Result[Orientation]
	Color() string
	SetColor(color string) property.Result[string]
	Opacity() float64
	SetOpacity(opacity float64) property.Result[float64]

	// Constraints are assigned by the parent's layout.
	Constraints() Constraints
	Parent() Composite
	Support() *property.Support

	ThemeApplied() bool
	SetThemeApplied(applied bool) property.Result[bool]

	// PreferenceProperties names the properties persisted per user.
	PreferenceProperties() []string
	AddPreferenceProperty(name string)
	RemovePreferenceProperty(name string)

	// PropertyValue and SetPropertyValue address properties by name for
	// themes and stored preferences.
	PropertyValue(name string) (any, bool)
	SetPropertyValue(name string, value any) error

	base() *Base
}

// Composite is a component with children.
type Composite interface {
	Component
	Children() []Component
}

// Commitable components persist their edited state when a sequence moves
// past them or finishes.
type Commitable interface {
	Commit(ctx context.Context) error
}

// SequenceTransitionable components may refuse to be left. Delta is the
// signed distance to the requested card.
type SequenceTransitionable interface {
	CanTransition(delta int) bool
}

var lastID atomic.Int64

// Base carries the state common to all components.
type Base struct {
	id      int64
	class   *domain.Class
	self    Component
	support *property.Support

	name         *property.Bound[string]
	label        *property.Bound[string]
	styleID      *property.Bound[string]
	displayed    *property.Bound[bool]
	visible      *property.Bound[bool]
	enabled      *property.Bound[bool]
	valid        *property.Bound[bool]
	notification *property.Bound[*domain.Notification]
	orientation  *property.Bound[Orientation]
	color        *property.Bound[string]
	opacity      *property.Bound[float64]
	constraints  *property.Bound[Constraints]
	themeApplied *property.Bound[bool]

	mu          sync.RWMutex
	parent      Composite
	preferences []string
}

// init must be called by every constructor before the component is used.
func (b *Base) init(self Component, class *domain.Class) {
	b.id = lastID.Add(1)
	b.self = self
	b.class = class
	b.support = property.NewSupport(self)

	b.name = property.NewBound(b.support, NameProperty, "")
	b.label = property.NewBound(b.support, LabelProperty, "")
	b.styleID = property.NewBound(b.support, StyleIDProperty, "")
	b.displayed = property.NewBound(b.support, DisplayedProperty, true)
	b.visible = property.NewBound(b.support, VisibleProperty, true)
	b.enabled = property.NewBound(b.support, EnabledProperty, true)
	b.valid = property.NewBound(b.support, ValidProperty, true)
	b.notification = property.NewBound[*domain.Notification](b.support, NotificationProperty, nil)
	b.orientation = property.NewBound(b.support, OrientationProperty, LeftToRight)
	b.color = property.NewBound(b.support, ColorProperty, "")
	b.opacity = property.NewBound(b.support, OpacityProperty, 1.0)
	b.constraints = property.NewBound[Constraints](b.support, ConstraintsProperty, nil)
	b.themeApplied = property.NewBound(b.support, ThemeAppliedProperty, false)
}

func (b *Base) base() *Base { return b }

func (b *Base) ID() int64                  { return b.id }
func (b *Base) Class() *domain.Class       { return b.class }
func (b *Base) Support() *property.Support { return b.support }

func (b *Base) Name() string { return b.name.Get() }

func (b *Base) SetName(name string) property.Result[string] { return b.name.Set(name) }

func (b *Base) Label() string { return b.label.Get() }

func (b *Base) SetLabel(label string) property.Result[string] { return b.label.Set(label) }

func (b *Base) StyleID() string { return b.styleID.Get() }

func (b *Base) SetStyleID(id string) property.Result[string] { return b.styleID.Set(id) }

func (b *Base) Displayed() bool { return b.displayed.Get() }

func (b *Base) SetDisplayed(displayed bool) property.Result[bool] {
	return b.displayed.Set(displayed)
}

func (b *Base) Visible() bool { return b.visible.Get() }

func (b *Base) SetVisible(visible bool) property.Result[bool] { return b.visible.Set(visible) }

func (b *Base) Enabled() bool { return b.enabled.Get() }

func (b *Base) SetEnabled(enabled bool) property.Result[bool] { return b.enabled.Set(enabled) }

func (b *Base) Valid() bool { return b.valid.Get() }

// Validate returns the cached validity. Components with state to check
// override it.
func (b *Base) Validate() bool { return b.Valid() }

func (b *Base) setValid(valid bool) { b.valid.Set(valid) }

func (b *Base) Notification() *domain.Notification { return b.notification.Get() }

func (b *Base) SetNotification(n *domain.Notification) property.Result[*domain.Notification] {
	return b.notification.Set(n)
}

func (b *Base) Orientation() Orientation { return b.orientation.Get() }

func (b *Base) SetOrientation(o Orientation) property.Result[Orientation] {
	return b.orientation.Set(o)
}

func (b *Base) Color() string { return b.color.Get() }

func (b *Base) SetColor(color string) property.Result[string] { return b.color.Set(color) }

func (b *Base) Opacity() float64 { return b.opacity.Get() }

// SetOpacity vetoes values outside [0,1].
func (b *Base) SetOpacity(opacity float64) property.Result[float64] {
	if opacity < 0 || opacity > 1 {
		return property.Result[float64]{
			Change:  property.Change[float64]{Source: b.self, Name: OpacityProperty, Old: b.Opacity(), New: opacity},
			Outcome: property.Vetoed,
			Err:     property.Veto(OpacityProperty, fmt.Errorf("opacity %v: %w", opacity, domain.ErrInvalidArgument)),
		}
	}
	return b.opacity.Set(opacity)
}

func (b *Base) Constraints() Constraints { return b.constraints.Get() }

func (b *Base) setConstraints(c Constraints) { b.constraints.Set(c) }

func (b *Base) ThemeApplied() bool { return b.themeApplied.Get() }

func (b *Base) SetThemeApplied(applied bool) property.Result[bool] {
	return b.themeApplied.Set(applied)
}

func (b *Base) Parent() Composite {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.parent
}

// attach records parent. A component has at most one parent at a time.
func (b *Base) attach(parent Composite) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.parent != nil {
		return fmt.Errorf("component %d already has parent %d: %w", b.id, b.parent.ID(), domain.ErrIllegalState)
	}
	b.parent = parent
	return nil
}

func (b *Base) detach() {
	b.mu.Lock()
	b.parent = nil
	b.mu.Unlock()
}

func (b *Base) PreferenceProperties() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.preferences)
}

func (b *Base) AddPreferenceProperty(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !slices.Contains(b.preferences, name) {
		b.preferences = append(b.preferences, name)
	}
}

func (b *Base) RemovePreferenceProperty(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.preferences = slices.DeleteFunc(b.preferences, func(p string) bool { return p == name })
}

// PropertyValue returns the value of a common property by name.
func (b *Base) PropertyValue(name string) (any, bool) {
	switch name {
	case NameProperty:
		return b.Name(), true
	case LabelProperty:
		return b.Label(), true
	case StyleIDProperty:
		return b.StyleID(), true
	case DisplayedProperty:
		return b.Displayed(), true
	case VisibleProperty:
		return b.Visible(), true
	case EnabledProperty:
		return b.Enabled(), true
	case OrientationProperty:
		return b.Orientation().String(), true
	case ColorProperty:
		return b.Color(), true
	case OpacityProperty:
		return b.Opacity(), true
	default:
		return nil, false
	}
}

// SetPropertyValue assigns a common property by name, converting value from
// the loose forms produced by configuration files and stored preferences.
func (b *Base) SetPropertyValue(name string, value any) error {
	var err error
	switch name {
	case NameProperty:
		err = setString(b.name, value)
	case LabelProperty:
		err = setString(b.label, value)
	case StyleIDProperty:
		err = setString(b.styleID, value)
	case ColorProperty:
		err = setString(b.color, value)
	case DisplayedProperty:
		err = setBool(b.displayed, value)
	case VisibleProperty:
		err = setBool(b.visible, value)
	case EnabledProperty:
		err = setBool(b.enabled, value)
	case OpacityProperty:
		var f float64
		if f, err = asFloat(value); err == nil {
			err = b.SetOpacity(f).Err
		}
	case OrientationProperty:
		var o Orientation
		if o, err = ParseOrientation(fmt.Sprint(value)); err == nil {
			err = b.orientation.Set(o).Err
		}
	default:
		return fmt.Errorf("%s has no property %q: %w", b.class, name, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("setting %s.%s: %w", b.class, name, err)
	}
	return nil
}

func setString(p *property.Bound[string], value any) error {
	s, ok := value.(string)
	if !ok {
		s = fmt.Sprint(value)
	}
	return p.Set(s).Err
}

func setBool(p *property.Bound[bool], value any) error {
	v, err := asBool(value)
	if err != nil {
		return err
	}
	return p.Set(v).Err
}

func asBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("%q is not a boolean: %w", v, domain.ErrInvalidArgument)
		}
		return b, nil
	default:
		return false, fmt.Errorf("%T is not a boolean: %w", value, domain.ErrInvalidArgument)
	}
}

func asInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer: %w", v, domain.ErrInvalidArgument)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("%T is not an integer: %w", value, domain.ErrInvalidArgument)
	}
}

func asFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%q is not a number: %w", v, domain.ErrInvalidArgument)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%T is not a number: %w", value, domain.ErrInvalidArgument)
	}
}
