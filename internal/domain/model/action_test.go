package model

import (
	"context"
	"testing"
)

func TestActionPrototype_PerformOnlyWhenEnabled(t *testing.T) {
	t.Parallel()

	p := NewActionPrototype("next", "Next")
	calls := 0
	p.OnAction(func(context.Context) { calls++ })

	if !p.Perform(context.Background()) {
		t.Error("Perform() = false on enabled prototype")
	}
	p.SetEnabled(false)
	if p.Perform(context.Background()) {
		t.Error("Perform() = true on disabled prototype")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
