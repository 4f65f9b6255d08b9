// Package theme applies rule-based presentation properties to components.
//
// A theme is an ordered list of rules. Each rule selects components by class
// and optionally by style ID or name, and sets named properties on every
// component it selects. Rules for a more general class are applied before
// rules for a more specific one, so specific rules win. A theme may have a
// parent theme, which is applied first.
package theme

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Theme resource identification.
const (
	MediaType = "application/theme+turf"
	Extension = "guisetheme"
)

// Themeable is what a theme needs from a component. component.Component
// satisfies it.
type Themeable interface {
	Class() *domain.Class
	Name() string
	StyleID() string
	SetPropertyValue(name string, value any) error
	SetThemeApplied(applied bool) property.Result[bool]
}

var _ Themeable = component.Component(nil)

// Selector picks the components a rule applies to. A nil class selects every
// component; empty StyleID and Name match anything.
type Selector struct {
	Class   *domain.Class
	StyleID string
	Name    string
}

func (s Selector) matches(c Themeable) bool {
	if s.Class != nil && !c.Class().Is(s.Class) {
		return false
	}
	if s.StyleID != "" && s.StyleID != c.StyleID() {
		return false
	}
	return s.Name == "" || s.Name == c.Name()
}

// Rule sets Properties on the components its selector picks.
type Rule struct {
	Selector   Selector
	Properties map[string]any
}

// Theme is a set of rules with an optional parent.
type Theme struct {
	URI       string
	ParentURI string
	Parent    *Theme

	rules []Rule
	index map[*domain.Class][]int
}

// New returns a theme with rules in declaration order. Parent is resolved
// separately, since it may have to be loaded from ParentURI.
func New(uri, parentURI string, rules ...Rule) *Theme {
	t := &Theme{URI: uri, ParentURI: parentURI, index: make(map[*domain.Class][]int)}
	for i, r := range rules {
		class := r.Selector.Class
		if class == nil {
			class = domain.ClassObject
		}
		t.index[class] = append(t.index[class], i)
	}
	t.rules = slices.Clone(rules)
	return t
}

// Rules returns the theme's own rules in declaration order.
func (t *Theme) Rules() []Rule { return slices.Clone(t.rules) }

// RulesFor returns the theme's own rules that select c, most general class
// first and in declaration order within a class.
func (t *Theme) RulesFor(c Themeable) []Rule {
	ancestry := c.Class().Ancestry()
	var rules []Rule
	for i := len(ancestry) - 1; i >= 0; i-- {
		for _, idx := range t.index[ancestry[i]] {
			if r := t.rules[idx]; r.Selector.matches(c) {
				rules = append(rules, r)
			}
		}
	}
	return rules
}

// Apply applies the parent chain and then the theme's own rules to c. Every
// rule is applied even when some properties fail; the failures are returned
// joined.
func (t *Theme) Apply(c Themeable) error {
	var errs []error
	if t.Parent != nil {
		if err := t.Parent.Apply(c); err != nil {
			errs = append(errs, err)
		}
	}
	for _, r := range t.RulesFor(c) {
		for _, name := range slices.Sorted(maps.Keys(r.Properties)) {
			if err := c.SetPropertyValue(name, r.Properties[name]); err != nil {
				errs = append(errs, fmt.Errorf("theme %s: %w", t.URI, err))
			}
		}
	}
	c.SetThemeApplied(true)
	return errors.Join(errs...)
}

// ApplyTree applies the theme to root and all its descendants.
func (t *Theme) ApplyTree(root component.Component) error {
	var errs []error
	component.Walk(root, func(c component.Component) bool {
		if err := t.Apply(c); err != nil {
			errs = append(errs, err)
		}
		return true
	})
	return errors.Join(errs...)
}

// Chain returns the theme followed by its ancestors.
func (t *Theme) Chain() []*Theme {
	var chain []*Theme
	for cur := t; cur != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	return chain
}
