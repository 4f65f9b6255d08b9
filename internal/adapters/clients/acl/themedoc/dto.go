// Package themedoc implements the translator for theme documents. A theme
// document is YAML:
//
//	parentURI: base.guisetheme
//	rules:
//	  - select:
//	      class: text-control
//	      styleID: wide
//	    set:
//	      styleID: guise-field
package themedoc

// ThemeDTO is a parsed theme document.
type ThemeDTO struct {
	ParentURI string    `koanf:"parentURI"`
	Rules     []RuleDTO `koanf:"rules"`
}

// RuleDTO assigns the Set properties to components matching Select.
type RuleDTO struct {
	Select SelectorDTO    `koanf:"select"`
	Set    map[string]any `koanf:"set"`
}

// SelectorDTO names the class, style ID, and component name a rule applies
// to. Empty fields match anything.
type SelectorDTO struct {
	Class   string `koanf:"class"`
	StyleID string `koanf:"styleID"`
	Name    string `koanf:"name"`
}
