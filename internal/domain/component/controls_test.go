package component

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/model"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

func TestTextControl_SetText(t *testing.T) {
	t.Parallel()

	v := model.NewValue(nil, 0)
	v.SetValidator(model.IntRange(1, 10))
	c := NewTextControl[int](v, model.IntConverter{})

	assert.False(t, c.Valid(), "zero is out of range")

	require.NoError(t, c.SetText(" 4 "))
	assert.Equal(t, 4, c.Value())
	assert.Equal(t, "4", c.Text())
	assert.True(t, c.Valid())

	err := c.SetText("four")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 4, c.Value())
	assert.Equal(t, "four", c.Text())
	assert.False(t, c.Valid())
	require.NotNil(t, c.Notification())
	assert.Equal(t, domain.SeverityError, c.Notification().Severity)

	err = c.SetText("40")
	assert.ErrorIs(t, err, domain.ErrVetoed)
	assert.Equal(t, 4, c.Value())

	// Setting the model directly resynchronizes the text.
	require.True(t, c.SetValue(5).Changed())
	assert.Equal(t, "5", c.Text())
	assert.True(t, c.Validate())
}

func TestCheckControl(t *testing.T) {
	t.Parallel()

	c := NewCheckControl("Agree", nil)
	assert.False(t, c.Checked())

	require.NoError(t, c.SetText("on"))
	assert.True(t, c.Checked())
	require.NoError(t, c.SetText(""))
	assert.False(t, c.Checked())
	assert.Error(t, c.SetText("maybe"))
}

func TestButton_Perform(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		b := NewButton("Save")
		calls := 0
		b.OnAction(func(context.Context) { calls++ })

		assert.True(t, b.Perform(ctx))
		b.SetEnabled(false)
		assert.False(t, b.Perform(ctx))
		assert.Equal(t, 1, calls)
	})

	t.Run("prototype", func(t *testing.T) {
		t.Parallel()
		p := model.NewActionPrototype("next", "Next")
		calls := 0
		p.OnAction(func(context.Context) { calls++ })
		b := NewPrototypeButton(p)

		assert.Equal(t, "Next", b.Label())
		assert.True(t, b.Perform(ctx))

		p.SetEnabled(false)
		assert.False(t, b.Enabled())
		assert.False(t, b.Perform(ctx))
		assert.Equal(t, 1, calls)
	})
}

func TestCardPanel(t *testing.T) {
	t.Parallel()

	panel := NewCardPanel()
	first, second := NewLabel("First"), NewLabel("Second")
	require.NoError(t, panel.Add(first, nil))
	require.NoError(t, panel.Add(second, NewCardConstraints("Two")))

	assert.Equal(t, Component(first), panel.Selected())
	assert.Equal(t, "First", panel.CardLabel(first))
	assert.Equal(t, "Two", panel.CardLabel(second))

	cc, ok := CardConstraintsOf(second)
	require.True(t, ok)
	cc.SetEnabled(false)
	r := panel.SetSelected(second)
	assert.True(t, r.Vetoed())
	assert.ErrorIs(t, r.Err, domain.ErrIllegalState)

	cc.SetEnabled(true)
	assert.True(t, panel.SetSelected(second).Changed())

	assert.True(t, panel.Remove(second))
	assert.Equal(t, Component(first), panel.Selected())

	assert.ErrorIs(t, panel.Add(NewLabel("x"), NewFlowConstraints()), domain.ErrInvalidArgument)
}

func TestCardPanel_ValidatesOnlySelectedCard(t *testing.T) {
	t.Parallel()

	panel := NewCardPanel()
	require.NoError(t, panel.Add(NewPanel(PageAxis), nil))
	hidden := requiredText("Hidden")
	require.NoError(t, panel.Add(hidden, nil))

	assert.True(t, panel.Validate())
	assert.Nil(t, hidden.Notification())
}

func TestTabControl(t *testing.T) {
	t.Parallel()

	tabs := NewTabControl[string](nil)
	tabs.Options().Add("day", "week", "month")
	tabs.Options().SetEnabled("month", false)

	assert.Equal(t, 3, tabs.OptionCount())
	assert.Equal(t, "week", tabs.OptionLabel(1))

	require.NoError(t, tabs.SelectOption(1))
	assert.True(t, tabs.OptionSelected(1))
	assert.ErrorIs(t, tabs.SelectOption(2), domain.ErrInvalidArgument)

	got, ok := tabs.PropertyValue("value")
	require.True(t, ok)
	assert.Equal(t, 1, got)
	require.NoError(t, tabs.SetPropertyValue("value", "0"))
	assert.Equal(t, "day", tabs.Options().Value())
}

func TestResourceCollectControl(t *testing.T) {
	t.Parallel()

	c := NewResourceCollectControl()
	assert.ErrorIs(t, c.Receive("/uploads"), domain.ErrIllegalState)

	var received []any
	c.Support().OnAny(func(ev property.Event) {
		if ev.Name == ReceiveEvent {
			received = append(received, ev.New)
		}
	})

	assert.True(t, c.AddResourcePath("a.txt"))
	assert.False(t, c.AddResourcePath("a.txt"))
	require.NoError(t, c.Receive("/uploads"))
	assert.Equal(t, []any{"/uploads"}, received)
	assert.Equal(t, domain.TaskStateIncomplete, c.State())
	assert.False(t, c.AddResourcePath("b.txt"), "paths are frozen while receiving")

	var progress []Progress
	c.OnProgress(func(p Progress) { progress = append(progress, p) })
	c.ReportProgress(Progress{Task: "a.txt", State: domain.TaskStateIncomplete, Transferred: 5, Total: 10})
	c.ReportProgress(Progress{State: domain.TaskStateComplete})

	assert.Len(t, progress, 2)
	assert.Equal(t, domain.TaskStateComplete, c.State())
	assert.Empty(t, c.ResourcePaths())
}
