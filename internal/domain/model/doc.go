// Package model contains the state holders that components are bound to:
// value models with validation, list selection, tabular data, and action
// prototypes. Models report mutations through the property package, so a
// component and its depictor observe model changes the same way they observe
// component properties.
package model
