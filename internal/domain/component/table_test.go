package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/model"
)

func labelStrategy(text string) CellStrategy {
	return CellStrategyFunc(func(*Table, model.Cell, any, bool) (Component, error) {
		return NewLabel(text), nil
	})
}

func tableWithRows(t *testing.T, n int) *Table {
	t.Helper()
	col := model.NewColumn("n", model.ClassInteger)
	m := model.NewTable(col)
	for i := range n {
		require.NoError(t, m.AddRow(i))
	}
	return NewTable(m)
}

func TestTable_CellStrategyDispatch(t *testing.T) {
	t.Parallel()

	byClass := model.NewColumn("byClass", model.ClassInteger)
	byColumn := model.NewColumn("byColumn", model.ClassInteger)
	text := model.NewColumn("text", model.ClassString)
	m := model.NewTable(byClass, byColumn, text)
	require.NoError(t, m.AddRow(1, 2, "three"))

	table := NewTable(m)
	table.SetClassCellStrategy(model.ClassNumber, labelStrategy("number"))
	table.SetClassCellStrategy(model.ClassInteger, labelStrategy("integer"))
	table.SetColumnCellStrategy(byColumn, labelStrategy("column"))

	tests := []struct {
		name   string
		column *model.Column
		want   string
	}{
		{name: "most specific class wins", column: byClass, want: "integer"},
		{name: "column wins over class", column: byColumn, want: "column"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := table.CellComponent(model.Cell{Row: 0, Column: tt.column})
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Label())
			assert.Equal(t, Composite(table), c.Parent())
		})
	}

	table.SetClassCellStrategy(domain.ClassObject, nil)
	_, err := table.CellComponent(model.Cell{Row: 0, Column: text})
	assert.ErrorIs(t, err, domain.ErrIllegalState)
}

func TestTable_DefaultCellStrategy(t *testing.T) {
	t.Parallel()

	done := model.NewColumn("done", model.ClassBoolean)
	done.SetEditable(true)
	qty := model.NewColumn("qty", model.ClassInteger)
	qty.SetEditable(true)
	note := model.NewColumn("note", model.ClassString)
	opaque := model.NewColumn("opaque", nil)
	m := model.NewTable(done, qty, note, opaque)
	require.NoError(t, m.AddRow(true, 3, "fragile", struct{}{}))
	table := NewTable(m)

	cell := func(c *model.Column) Component {
		comp, err := table.CellComponent(model.Cell{Row: 0, Column: c})
		require.NoError(t, err)
		return comp
	}

	check, ok := cell(done).(*CheckControl)
	require.True(t, ok)
	assert.True(t, check.Checked())

	text, ok := cell(qty).(*TextControl[any])
	require.True(t, ok)
	assert.Equal(t, "3", text.Text())

	msg, ok := cell(note).(*Message)
	require.True(t, ok)
	assert.Equal(t, "fragile", msg.Message())

	assert.IsType(t, &Message{}, cell(opaque))

	table.SetEditable(false)
	assert.IsType(t, &Message{}, cell(qty))
}

func TestTable_EditingThroughCells(t *testing.T) {
	t.Parallel()

	qty := model.NewColumn("qty", model.ClassInteger)
	qty.SetEditable(true)
	m := model.NewTable(qty)
	require.NoError(t, m.AddRow(1))
	table := NewTable(m)

	c, err := table.CellComponent(model.Cell{Row: 0, Column: qty})
	require.NoError(t, err)
	editor, ok := c.(TextEditor)
	require.True(t, ok)

	require.NoError(t, editor.SetText("7"))
	got, err := m.CellValue(0, qty)
	require.NoError(t, err)
	assert.Equal(t, 7, got)

	again, err := table.CellComponent(model.Cell{Row: 0, Column: qty})
	require.NoError(t, err)
	assert.Same(t, editor, again, "an editor survives its own edits")

	err = editor.SetText("seven")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, table.Valid())
	got, _ = m.CellValue(0, qty)
	assert.Equal(t, 7, got)
}

func TestTable_RowChangesEvictCells(t *testing.T) {
	t.Parallel()

	table := tableWithRows(t, 2)
	col := table.Model().Columns()[0]
	table.SetColumnCellStrategy(col, labelStrategy("n"))

	first, err := table.CellComponent(model.Cell{Row: 0, Column: col})
	require.NoError(t, err)

	require.NoError(t, table.Model().AddRow(2))
	again, err := table.CellComponent(model.Cell{Row: 0, Column: col})
	require.NoError(t, err)
	assert.NotSame(t, first, again)
	assert.Nil(t, first.Parent())
}

func TestTable_Paging(t *testing.T) {
	t.Parallel()

	table := tableWithRows(t, 25)
	require.NoError(t, table.SetDisplayRowCount(10))

	assert.False(t, table.FirstPrototype().Enabled())
	assert.True(t, table.NextPrototype().Enabled())

	table.GoNext()
	assert.Equal(t, 10, table.DisplayRowStartIndex())
	table.GoNext()
	assert.Equal(t, 20, table.DisplayRowStartIndex())
	assert.False(t, table.NextPrototype().Enabled())
	table.GoNext()
	assert.Equal(t, 20, table.DisplayRowStartIndex())

	start, end := table.DisplayRange()
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)
	assert.Len(t, table.Children(), 5)

	table.GoPrevious()
	assert.Equal(t, 10, table.DisplayRowStartIndex())
	table.GoFirst()
	assert.Equal(t, 0, table.DisplayRowStartIndex())
	table.GoLast()
	assert.Equal(t, 20, table.DisplayRowStartIndex())

	assert.ErrorIs(t, table.SetDisplayRowStartIndex(-1), domain.ErrInvalidArgument)
}

func TestTable_GoLastOnFullPage(t *testing.T) {
	t.Parallel()

	table := tableWithRows(t, 20)
	require.NoError(t, table.SetDisplayRowCount(10))
	table.GoLast()
	assert.Equal(t, 10, table.DisplayRowStartIndex())
}

func TestTable_UnpagedShowsEverything(t *testing.T) {
	t.Parallel()

	table := tableWithRows(t, 3)
	table.GoNext()
	table.GoLast()
	assert.Equal(t, 0, table.DisplayRowStartIndex())
	assert.Len(t, table.Children(), 3)
	for _, p := range []bool{
		table.FirstPrototype().Enabled(),
		table.PreviousPrototype().Enabled(),
		table.NextPrototype().Enabled(),
		table.LastPrototype().Enabled(),
	} {
		assert.False(t, p)
	}
}

func TestTable_EvictionReleasesCellSubscriptions(t *testing.T) {
	t.Parallel()

	shared := NewLabel("shared")
	col := model.NewColumn("n", model.ClassInteger)
	m := model.NewTable(col)
	require.NoError(t, m.AddRow(1))
	table := NewTable(m)
	table.SetColumnCellStrategy(col, CellStrategyFunc(func(*Table, model.Cell, any, bool) (Component, error) {
		return shared, nil
	}))
	before := shared.base().valid.ListenerCount()

	_, err := table.CellComponent(model.Cell{Row: 0, Column: col})
	require.NoError(t, err)
	assert.Equal(t, before+1, shared.base().valid.ListenerCount())

	shared.setValid(false)
	assert.False(t, table.Valid())

	require.NoError(t, m.SetCellValue(0, col, 2))
	assert.Equal(t, before, shared.base().valid.ListenerCount())
	assert.Nil(t, shared.Parent())
	assert.True(t, table.Valid(), "an evicted cell no longer counts")

	_, err = table.CellComponent(model.Cell{Row: 0, Column: col})
	require.NoError(t, err)
	table.SetEditable(false)
	assert.Equal(t, before, shared.base().valid.ListenerCount())
}

func TestTable_DisplayedCellsReportsFailures(t *testing.T) {
	t.Parallel()

	known := model.NewColumn("known", model.ClassInteger)
	unknown := model.NewColumn("unknown", model.ClassString)
	m := model.NewTable(known, unknown)
	require.NoError(t, m.AddRow(1, "one"))
	require.NoError(t, m.AddRow(2, "two"))
	table := NewTable(m)
	table.SetClassCellStrategy(domain.ClassObject, nil)
	table.SetClassCellStrategy(model.ClassInteger, labelStrategy("n"))

	cells, err := table.DisplayedCells()
	require.ErrorIs(t, err, domain.ErrIllegalState)
	assert.Len(t, cells, 2)
	assert.Len(t, table.Children(), 2)
}
