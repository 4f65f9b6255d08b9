package component

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/model"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

// Table property names.
const (
	DisplayRowStartIndexProperty = "displayRowStartIndex"
	DisplayRowCountProperty      = "displayRowCount"
)

// CellStrategy creates the component that represents one table cell.
type CellStrategy interface {
	CellComponent(table *Table, cell model.Cell, value any, editable bool) (Component, error)
}

// CellStrategyFunc adapts a function to CellStrategy.
type CellStrategyFunc func(table *Table, cell model.Cell, value any, editable bool) (Component, error)

func (f CellStrategyFunc) CellComponent(table *Table, cell model.Cell, value any, editable bool) (Component, error) {
	return f(table, cell, value, editable)
}

// DefaultCellStrategy shows component values as themselves, edits booleans
// with a check control and other convertible values with a text control,
// and shows everything else as formatted text.
type DefaultCellStrategy struct{}

func (DefaultCellStrategy) CellComponent(table *Table, cell model.Cell, value any, editable bool) (Component, error) {
	if c, ok := value.(Component); ok {
		return c, nil
	}
	class := cell.Column.Class()
	conv := model.ConverterFor(class)
	if _, opaque := conv.(model.AnyConverter); opaque || !editable {
		return NewMessage(conv.Format(value)), nil
	}
	cv := model.NewCellValue(table.Model(), cell.Row, cell.Column)
	if class.Is(model.ClassBoolean) {
		return NewCheckControl("", model.Narrow[bool](cv)), nil
	}
	return NewTextControl[any](cv, conv), nil
}

// Table shows a table model a page of rows at a time. Each cell is
// represented by a component created by the cell strategy registered for its
// column, or else by the one registered for the most specific class in the
// column's value class ancestry.
type Table struct {
	Base
	model *model.Table

	editable   *property.Bound[bool]
	startIndex *property.Bound[int]
	rowCount   *property.Bound[int]

	first    *model.ActionPrototype
	previous *model.ActionPrototype
	next     *model.ActionPrototype
	last     *model.ActionPrototype

	smu              sync.RWMutex
	columnStrategies map[*model.Column]CellStrategy
	classStrategies  map[*domain.Class]CellStrategy

	cmu   sync.Mutex
	cells map[model.Cell]cachedCell
}

// cachedCell is a cell component with its validity subscription.
type cachedCell struct {
	comp  Component
	valid *property.Subscription
}

// NewTable returns a table over m showing every row.
func NewTable(m *model.Table) *Table {
	t := &Table{
		model:            m,
		columnStrategies: make(map[*model.Column]CellStrategy),
		classStrategies:  map[*domain.Class]CellStrategy{domain.ClassObject: DefaultCellStrategy{}},
		cells:            make(map[model.Cell]cachedCell),
	}
	t.init(t, ClassTable)
	t.editable = property.NewBound(t.support, EditableProperty, true)
	t.startIndex = property.NewBound(t.support, DisplayRowStartIndexProperty, 0)
	t.rowCount = property.NewBound(t.support, DisplayRowCountProperty, 0)

	t.first = model.NewActionPrototype("first", "First")
	t.previous = model.NewActionPrototype("previous", "Previous")
	t.next = model.NewActionPrototype("next", "Next")
	t.last = model.NewActionPrototype("last", "Last")
	t.first.OnAction(func(context.Context) { t.GoFirst() })
	t.previous.OnAction(func(context.Context) { t.GoPrevious() })
	t.next.OnAction(func(context.Context) { t.GoNext() })
	t.last.OnAction(func(context.Context) { t.GoLast() })

	m.OnRowsChanged(func() {
		t.evictAll()
		t.updatePrototypes()
		t.support.Fire(model.RowsProperty, nil, m.RowCount())
	})
	m.OnCellChanged(func(ch model.CellChange) {
		t.evictCell(ch.Cell)
		t.support.Fire(model.CellProperty, nil, ch)
	})
	t.editable.OnChange(func(property.Change[bool]) { t.evictAll() })
	t.startIndex.OnChange(func(property.Change[int]) { t.updatePrototypes() })
	t.rowCount.OnChange(func(property.Change[int]) { t.updatePrototypes() })
	t.updatePrototypes()
	return t
}

// Model returns the table model.
func (t *Table) Model() *model.Table { return t.model }

func (t *Table) Editable() bool { return t.editable.Get() }

func (t *Table) SetEditable(editable bool) property.Result[bool] {
	return t.editable.Set(editable)
}

// SetColumnCellStrategy registers s for cells of column; nil removes it.
func (t *Table) SetColumnCellStrategy(column *model.Column, s CellStrategy) {
	t.smu.Lock()
	if s == nil {
		delete(t.columnStrategies, column)
	} else {
		t.columnStrategies[column] = s
	}
	t.smu.Unlock()
	t.evictAll()
}

// SetClassCellStrategy registers s for columns whose value class is or
// descends from class; nil removes it.
func (t *Table) SetClassCellStrategy(class *domain.Class, s CellStrategy) {
	t.smu.Lock()
	if s == nil {
		delete(t.classStrategies, class)
	} else {
		t.classStrategies[class] = s
	}
	t.smu.Unlock()
	t.evictAll()
}

// CellStrategy returns the strategy for column. It fails with
// domain.ErrIllegalState when no strategy applies.
func (t *Table) CellStrategy(column *model.Column) (CellStrategy, error) {
	t.smu.RLock()
	defer t.smu.RUnlock()
	if s, ok := t.columnStrategies[column]; ok {
		return s, nil
	}
	for _, class := range column.Class().Ancestry() {
		if s, ok := t.classStrategies[class]; ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("no cell strategy for column %v of class %v: %w", column, column.Class(), domain.ErrIllegalState)
}

// CellComponent returns the component representing cell, creating it on
// first use. The component is cached until the cell's value or the rows
// change.
func (t *Table) CellComponent(cell model.Cell) (Component, error) {
	t.cmu.Lock()
	cached, ok := t.cells[cell]
	t.cmu.Unlock()
	if ok {
		return cached.comp, nil
	}

	s, err := t.CellStrategy(cell.Column)
	if err != nil {
		return nil, err
	}
	value, err := t.model.CellValue(cell.Row, cell.Column)
	if err != nil {
		return nil, err
	}
	c, err := s.CellComponent(t, cell, value, t.Editable() && cell.Column.Editable())
	if err != nil {
		return nil, fmt.Errorf("creating component for row %d column %v: %w", cell.Row, cell.Column, err)
	}
	if c.Parent() == nil {
		if err := c.base().attach(t); err != nil {
			return nil, err
		}
	}
	created := cachedCell{
		comp:  c,
		valid: c.base().valid.OnChange(func(property.Change[bool]) { t.updateValid() }),
	}

	t.cmu.Lock()
	if existing, ok := t.cells[cell]; ok {
		t.cmu.Unlock()
		release(t, created)
		return existing.comp, nil
	}
	t.cells[cell] = created
	t.cmu.Unlock()
	return c, nil
}

// Children returns the cell components of the displayed rows. Cells that
// cannot be represented are left out; DisplayedCells reports why.
func (t *Table) Children() []Component {
	children, _ := t.DisplayedCells()
	return children
}

// DisplayedCells returns the cell components of the displayed rows together
// with the joined errors of the cells that could not be created, such as a
// column without a cell strategy.
func (t *Table) DisplayedCells() ([]Component, error) {
	start, end := t.DisplayRange()
	columns := t.model.Columns()
	children := make([]Component, 0, (end-start)*len(columns))
	var errs []error
	for row := start; row < end; row++ {
		for _, col := range columns {
			c, err := t.CellComponent(model.Cell{Row: row, Column: col})
			if err != nil {
				errs = append(errs, err)
				continue
			}
			children = append(children, c)
		}
	}
	return children, errors.Join(errs...)
}

// Validate validates the cell components created so far.
func (t *Table) Validate() bool {
	valid := true
	for _, c := range t.cachedCells() {
		if !c.Validate() {
			valid = false
		}
	}
	t.setValid(valid)
	return valid
}

func (t *Table) updateValid() {
	valid := true
	for _, c := range t.cachedCells() {
		if !c.Valid() {
			valid = false
			break
		}
	}
	t.setValid(valid)
}

func (t *Table) cachedCells() []Component {
	t.cmu.Lock()
	defer t.cmu.Unlock()
	cells := make([]Component, 0, len(t.cells))
	for _, c := range t.cells {
		cells = append(cells, c.comp)
	}
	return cells
}

// evictCell drops the cached component of a cell whose value was replaced.
// Editors bound to the cell follow the value themselves and are kept.
func (t *Table) evictCell(cell model.Cell) {
	t.cmu.Lock()
	c, ok := t.cells[cell]
	if ok {
		if _, editor := c.comp.(TextEditor); editor {
			t.cmu.Unlock()
			return
		}
		delete(t.cells, cell)
	}
	t.cmu.Unlock()
	if ok {
		release(t, c)
		t.updateValid()
	}
}

func (t *Table) evictAll() {
	t.cmu.Lock()
	cells := t.cells
	t.cells = make(map[model.Cell]cachedCell)
	t.cmu.Unlock()
	for _, c := range cells {
		release(t, c)
	}
	t.updateValid()
}

type releaser interface{ release() }

func release(t *Table, c cachedCell) {
	c.valid.Unsubscribe()
	if r, ok := c.comp.(releaser); ok {
		r.release()
	}
	if c.comp.Parent() == Composite(t) {
		c.comp.base().detach()
	}
}

// DisplayRowStartIndex returns the first row shown.
func (t *Table) DisplayRowStartIndex() int { return t.startIndex.Get() }

// SetDisplayRowStartIndex pages to the given row. Negative indexes fail with
// domain.ErrInvalidArgument.
func (t *Table) SetDisplayRowStartIndex(i int) error {
	if i < 0 {
		return fmt.Errorf("display row start index %d: %w", i, domain.ErrInvalidArgument)
	}
	t.startIndex.Set(i)
	return nil
}

// DisplayRowCount returns the page size; zero shows every row.
func (t *Table) DisplayRowCount() int { return t.rowCount.Get() }

// SetDisplayRowCount sets the page size. Negative sizes fail with
// domain.ErrInvalidArgument.
func (t *Table) SetDisplayRowCount(n int) error {
	if n < 0 {
		return fmt.Errorf("display row count %d: %w", n, domain.ErrInvalidArgument)
	}
	t.rowCount.Set(n)
	return nil
}

// DisplayRange returns the half-open range of rows on the current page.
func (t *Table) DisplayRange() (start, end int) {
	rows := t.model.RowCount()
	start = min(t.DisplayRowStartIndex(), rows)
	end = rows
	if count := t.DisplayRowCount(); count > 0 {
		end = min(start+count, rows)
	}
	return start, end
}

// GoFirst shows the first page.
func (t *Table) GoFirst() { t.startIndex.Set(0) }

// GoPrevious shows the previous page.
func (t *Table) GoPrevious() {
	start, count := t.DisplayRowStartIndex(), t.DisplayRowCount()
	switch {
	case count > 0:
		t.startIndex.Set(max(start-count, 0))
	case start > 0:
		t.startIndex.Set(0)
	}
}

// GoNext shows the next page if there is one.
func (t *Table) GoNext() {
	rows, start, count := t.model.RowCount(), t.DisplayRowStartIndex(), t.DisplayRowCount()
	if rows > 0 && count > 0 && start+count < rows {
		t.startIndex.Set(start + count)
	}
}

// GoLast shows the last page, which may be partial.
func (t *Table) GoLast() {
	rows, count := t.model.RowCount(), t.DisplayRowCount()
	if count <= 0 {
		return
	}
	lastPage := rows % count
	if lastPage == 0 {
		lastPage = count
	}
	t.startIndex.Set(max(rows-lastPage, 0))
}

func (t *Table) updatePrototypes() {
	rows, start, count := t.model.RowCount(), t.DisplayRowStartIndex(), t.DisplayRowCount()
	if count <= 0 {
		for _, p := range []*model.ActionPrototype{t.first, t.previous, t.next, t.last} {
			p.SetEnabled(false)
		}
		return
	}
	t.first.SetEnabled(start != 0)
	t.previous.SetEnabled(start != 0)
	t.next.SetEnabled(start+count < rows)
	t.last.SetEnabled(start+count < rows)
}

// Paging prototypes, for buttons.
func (t *Table) FirstPrototype() *model.ActionPrototype    { return t.first }
func (t *Table) PreviousPrototype() *model.ActionPrototype { return t.previous }
func (t *Table) NextPrototype() *model.ActionPrototype     { return t.next }
func (t *Table) LastPrototype() *model.ActionPrototype     { return t.last }

func (t *Table) PropertyValue(name string) (any, bool) {
	switch name {
	case EditableProperty:
		return t.Editable(), true
	case DisplayRowStartIndexProperty:
		return t.DisplayRowStartIndex(), true
	case DisplayRowCountProperty:
		return t.DisplayRowCount(), true
	}
	return t.Base.PropertyValue(name)
}

func (t *Table) SetPropertyValue(name string, value any) error {
	switch name {
	case EditableProperty:
		return setBool(t.editable, value)
	case DisplayRowStartIndexProperty, DisplayRowCountProperty:
		n, err := asInt(value)
		if err != nil {
			return err
		}
		if name == DisplayRowCountProperty {
			return t.SetDisplayRowCount(n)
		}
		return t.SetDisplayRowStartIndex(n)
	}
	return t.Base.SetPropertyValue(name, value)
}
