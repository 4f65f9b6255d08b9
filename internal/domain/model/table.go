package model

import (
	"fmt"
	"slices"
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Property names reported by Table.
const (
	RowsProperty = "rows"
	CellProperty = "cell"
)

// Column describes one column of a Table: its identity, the class of the
// values it holds, and how those values may be edited.
type Column struct {
	name  string
	class *domain.Class

	mu        sync.RWMutex
	label     string
	editable  bool
	validator Validator[any]
}

// NewColumn creates a read-only column labeled with its name.
func NewColumn(name string, class *domain.Class) *Column {
	if class == nil {
		class = domain.ClassObject
	}
	return &Column{name: name, class: class, label: name}
}

// CreateDefaultColumns creates one column per name, all holding values of
// class.
func CreateDefaultColumns(class *domain.Class, names ...string) []*Column {
	cols := make([]*Column, len(names))
	for i, name := range names {
		cols[i] = NewColumn(name, class)
	}
	return cols
}

func (c *Column) Name() string         { return c.name }
func (c *Column) Class() *domain.Class { return c.class }

func (c *Column) Label() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.label
}

func (c *Column) SetLabel(label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.label = label
}

// Editable reports whether cells of this column accept edits. A table must
// also be editable for a cell to be edited.
func (c *Column) Editable() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.editable
}

func (c *Column) SetEditable(editable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editable = editable
}

// Validator returns the validator applied to edited cell values, or nil.
func (c *Column) Validator() Validator[any] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.validator
}

func (c *Column) SetValidator(v Validator[any]) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validator = v
}

func (c *Column) String() string { return c.name }

// Cell identifies a logical cell by row index and column. Two cells are equal
// when they have the same row index and the same column instance, so Cell is
// usable as a map key.
type Cell struct {
	Row    int
	Column *Column
}

// CellChange is the New value of a CellProperty event.
type CellChange struct {
	Cell Cell
	Old  any
	New  any
}

// Table holds rows of values under a fixed list of columns.
type Table struct {
	support *property.Support

	mu      sync.RWMutex
	columns []*Column
	rows    [][]any
}

// NewTable creates an empty table with the given columns.
func NewTable(columns ...*Column) *Table {
	t := &Table{columns: slices.Clone(columns)}
	t.support = property.NewSupport(t)
	return t
}

// Support returns the table's change support.
func (t *Table) Support() *property.Support { return t.support }

// Columns returns a copy of the column list.
func (t *Table) Columns() []*Column {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.columns)
}

func (t *Table) ColumnCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.columns)
}

// ColumnIndex returns the index of c or -1 if c is not in the table.
func (t *Table) ColumnIndex(c *Column) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Index(t.columns, c)
}

func (t *Table) RowCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}

// Row returns a copy of the values in row i.
func (t *Table) Row(i int) ([]any, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if i < 0 || i >= len(t.rows) {
		return nil, fmt.Errorf("row %d out of range [0,%d): %w", i, len(t.rows), domain.ErrInvalidArgument)
	}
	return slices.Clone(t.rows[i]), nil
}

// AddRow appends a row. The number of values must equal the column count.
func (t *Table) AddRow(values ...any) error {
	return t.InsertRow(-1, values...)
}

// InsertRow inserts a row before index i; -1 appends.
func (t *Table) InsertRow(i int, values ...any) error {
	t.mu.Lock()
	if len(values) != len(t.columns) {
		n := len(t.columns)
		t.mu.Unlock()
		return fmt.Errorf("row has %d values, table has %d columns: %w", len(values), n, domain.ErrInvalidArgument)
	}
	if i == -1 {
		i = len(t.rows)
	}
	if i < 0 || i > len(t.rows) {
		n := len(t.rows)
		t.mu.Unlock()
		return fmt.Errorf("row index %d out of range [0,%d]: %w", i, n, domain.ErrInvalidArgument)
	}
	t.rows = slices.Insert(t.rows, i, slices.Clone(values))
	n := len(t.rows)
	t.mu.Unlock()

	t.support.Fire(RowsProperty, n-1, n)
	return nil
}

// RemoveRow deletes row i.
func (t *Table) RemoveRow(i int) error {
	t.mu.Lock()
	if i < 0 || i >= len(t.rows) {
		n := len(t.rows)
		t.mu.Unlock()
		return fmt.Errorf("row %d out of range [0,%d): %w", i, n, domain.ErrInvalidArgument)
	}
	t.rows = slices.Delete(t.rows, i, i+1)
	n := len(t.rows)
	t.mu.Unlock()

	t.support.Fire(RowsProperty, n+1, n)
	return nil
}

// ClearRows removes every row.
func (t *Table) ClearRows() {
	t.mu.Lock()
	n := len(t.rows)
	t.rows = nil
	t.mu.Unlock()

	if n > 0 {
		t.support.Fire(RowsProperty, n, 0)
	}
}

// CellValue returns the value at row in column c.
func (t *Table) CellValue(row int, c *Column) (any, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	col, err := t.locate(row, c)
	if err != nil {
		return nil, err
	}
	return t.rows[row][col], nil
}

// SetCellValue replaces the value at row in column c. Validation is the
// concern of the cell value model; the table stores whatever it is given.
func (t *Table) SetCellValue(row int, c *Column, v any) error {
	t.mu.Lock()
	col, err := t.locate(row, c)
	if err != nil {
		t.mu.Unlock()
		return err
	}
	old := t.rows[row][col]
	t.rows[row][col] = v
	t.mu.Unlock()

	t.support.Fire(CellProperty, nil, CellChange{Cell: Cell{Row: row, Column: c}, Old: old, New: v})
	return nil
}

// OnRowsChanged registers fn for row insertions and removals.
func (t *Table) OnRowsChanged(fn func()) *property.Subscription {
	return t.support.OnAny(func(ev property.Event) {
		if ev.Name == RowsProperty {
			fn()
		}
	})
}

// OnCellChanged registers fn for cell value replacements.
func (t *Table) OnCellChanged(fn func(CellChange)) *property.Subscription {
	return t.support.OnAny(func(ev property.Event) {
		if change, ok := ev.New.(CellChange); ok && ev.Name == CellProperty {
			fn(change)
		}
	})
}

// locate must be called with t.mu held.
func (t *Table) locate(row int, c *Column) (int, error) {
	col := slices.Index(t.columns, c)
	if col < 0 {
		return 0, fmt.Errorf("column %v is not in the table: %w", c, domain.ErrInvalidArgument)
	}
	if row < 0 || row >= len(t.rows) {
		return 0, fmt.Errorf("row %d out of range [0,%d): %w", row, len(t.rows), domain.ErrInvalidArgument)
	}
	return col, nil
}
