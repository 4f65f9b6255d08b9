package model

import (
	"reflect"

	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// ValueModel is the view of a value that controls edit. *Value, *ListSelect,
// and *CellValue implement it.
type ValueModel[V comparable] interface {
	Value() V
	SetValue(v V) property.Result[V]
	ValidateValue() error
	OnChange(l property.Listener[V]) *property.Subscription
}

var (
	_ ValueModel[string] = (*Value[string])(nil)
	_ ValueModel[string] = (*ListSelect[string])(nil)
	_ ValueModel[any]    = (*CellValue)(nil)
)

// CellValue exposes one table cell as a value model. Values are checked
// against the column validator before they reach the table.
type CellValue struct {
	table   *Table
	cell    Cell
	support *property.Support
}

// NewCellValue returns the value model for the cell at row in column c.
func NewCellValue(table *Table, row int, c *Column) *CellValue {
	cv := &CellValue{table: table, cell: Cell{Row: row, Column: c}}
	cv.support = property.NewSupport(cv)
	return cv
}

// Cell returns the cell this model edits.
func (cv *CellValue) Cell() Cell { return cv.cell }

// Value returns the cell value, or nil if the cell no longer exists.
func (cv *CellValue) Value() any {
	v, err := cv.table.CellValue(cv.cell.Row, cv.cell.Column)
	if err != nil {
		return nil
	}
	return v
}

// SetValue validates v with the column validator and stores it in the table.
func (cv *CellValue) SetValue(v any) property.Result[any] {
	old := cv.Value()
	if err := cv.validate(v); err != nil {
		return vetoed(cv.support, ValueProperty, old, v, err)
	}
	ch := property.Change[any]{Source: cv, Name: ValueProperty, Old: old, New: v}
	if sameValue(old, v) {
		return property.Result[any]{Change: ch, Outcome: property.Unchanged}
	}
	if err := cv.table.SetCellValue(cv.cell.Row, cv.cell.Column, v); err != nil {
		return vetoed(cv.support, ValueProperty, old, v, err)
	}
	return property.Result[any]{Change: ch, Outcome: property.Changed}
}

// ValidateValue checks the current cell value.
func (cv *CellValue) ValidateValue() error {
	return cv.validate(cv.Value())
}

// OnChange reports replacements of this cell's value.
func (cv *CellValue) OnChange(l property.Listener[any]) *property.Subscription {
	return cv.table.OnCellChanged(func(ch CellChange) {
		if ch.Cell == cv.cell {
			l(property.Change[any]{Source: cv, Name: ValueProperty, Old: ch.Old, New: ch.New})
		}
	})
}

func (cv *CellValue) validate(v any) error {
	val := cv.cell.Column.Validator()
	if val == nil {
		return nil
	}
	return val.Validate(v)
}

// Narrow views an untyped value model as one of type V. Values of another
// type read as the zero value.
func Narrow[V comparable](m ValueModel[any]) ValueModel[V] {
	return narrowed[V]{m}
}

type narrowed[V comparable] struct{ m ValueModel[any] }

func (n narrowed[V]) Value() V { return as[V](n.m.Value()) }

func (n narrowed[V]) SetValue(v V) property.Result[V] {
	r := n.m.SetValue(v)
	return property.Result[V]{
		Change: property.Change[V]{
			Source: r.Change.Source,
			Name:   r.Change.Name,
			Old:    as[V](r.Change.Old),
			New:    v,
		},
		Outcome: r.Outcome,
		Err:     r.Err,
	}
}

func (n narrowed[V]) ValidateValue() error { return n.m.ValidateValue() }

func (n narrowed[V]) OnChange(l property.Listener[V]) *property.Subscription {
	return n.m.OnChange(func(c property.Change[any]) {
		l(property.Change[V]{Source: c.Source, Name: c.Name, Old: as[V](c.Old), New: as[V](c.New)})
	})
}

func as[V any](v any) V {
	typed, _ := v.(V)
	return typed
}

// sameValue compares two untyped values without panicking on types that do
// not support ==.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
