package domain

import "testing"

func TestClass_Ancestry(t *testing.T) {
	t.Parallel()

	root := NewClass("object", nil)
	number := NewClass("number", root)
	integer := NewClass("integer", number)

	chain := integer.Ancestry()
	want := []string{"integer", "number", "object"}
	if len(chain) != len(want) {
		t.Fatalf("len(Ancestry()) = %d, want %d", len(chain), len(want))
	}
	for i, cls := range chain {
		if cls.Name() != want[i] {
			t.Errorf("Ancestry()[%d] = %q, want %q", i, cls.Name(), want[i])
		}
	}
}

func TestClass_Is(t *testing.T) {
	t.Parallel()

	root := NewClass("object", nil)
	number := NewClass("number", root)
	text := NewClass("string", root)

	if !number.Is(root) {
		t.Error("number.Is(root) = false, want true")
	}
	if !number.Is(number) {
		t.Error("number.Is(number) = false, want true")
	}
	if number.Is(text) {
		t.Error("number.Is(text) = true, want false")
	}
	if root.Is(number) {
		t.Error("root.Is(number) = true, want false")
	}
	// Same name, different identity.
	if NewClass("number", root).Is(number) {
		t.Error("distinct class with same name matched")
	}
}
