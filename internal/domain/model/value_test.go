package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/property"
)

func TestValue_SetValueValidatesEvenWhenUnchanged(t *testing.T) {
	t.Parallel()

	m := NewValue[string](nil, "")
	calls := 0
	m.SetValidator(ValidatorFunc[string](func(string) error {
		calls++
		return nil
	}))

	r := m.SetValue("")

	assert.Equal(t, property.Unchanged, r.Outcome)
	assert.Equal(t, 1, calls)
}

func TestValue_ValidationFailureIsVeto(t *testing.T) {
	t.Parallel()

	m := NewValue(nil, "start")
	m.SetValidator(StringLength(3, 5))
	fired := false
	m.OnChange(func(property.Change[string]) { fired = true })

	r := m.SetValue("ab")

	require.True(t, r.Vetoed())
	assert.ErrorIs(t, r.Err, domain.ErrVetoed)
	assert.ErrorIs(t, r.Err, domain.ErrValidation)
	assert.Equal(t, "start", m.Value())
	assert.False(t, fired, "change listener must not fire on veto")
}

func TestValue_VetoerRunsAfterValidation(t *testing.T) {
	t.Parallel()

	m := NewValue(nil, 0)
	m.SetValidator(IntRange(0, 10))
	vetoCalls := 0
	m.OnVeto(func(property.Change[int]) error {
		vetoCalls++
		return errors.New("no")
	})

	r := m.SetValue(50)
	assert.True(t, r.Vetoed())
	assert.Equal(t, 0, vetoCalls, "vetoer consulted for invalid value")

	r = m.SetValue(5)
	assert.True(t, r.Vetoed())
	assert.Equal(t, 1, vetoCalls)
	assert.Equal(t, 0, m.Value())
}

func TestValue_ResetAndClear(t *testing.T) {
	t.Parallel()

	m := NewValue(nil, 7)
	require.True(t, m.SetValue(9).Changed())

	require.True(t, m.ResetValue().Changed())
	assert.Equal(t, 7, m.Value())

	require.True(t, m.ClearValue().Changed())
	assert.Equal(t, 0, m.Value())
}

func TestValue_ClearValueHonorsValidator(t *testing.T) {
	t.Parallel()

	m := NewValue(nil, "x")
	m.SetValidator(Required[string]())

	r := m.ClearValue()

	assert.True(t, r.Vetoed())
	assert.Equal(t, "x", m.Value())
	assert.True(t, m.IsValidValue())
}

func TestValue_ReportsThroughSharedSupport(t *testing.T) {
	t.Parallel()

	support := property.NewSupport("component")
	m := NewValue(support, false)
	var names []string
	support.OnAny(func(ev property.Event) { names = append(names, ev.Name) })

	m.SetValidator(Required[bool]())
	m.SetValue(true)

	assert.Equal(t, []string{ValidatorProperty, ValueProperty}, names)
}
