package state

import "testing"

func TestMemoryManagerStateLifecycle(t *testing.T) {
	m := NewMemoryManager()
	const userID int64 = 42

	if m.HasState(userID) {
		t.Fatal("fresh manager must report no active state")
	}
	if got := m.GetState(userID); got != StateIdle {
		t.Fatalf("expected idle state, got %q", got)
	}

	m.SetState(userID, State("water.volume"))
	if !m.InProgress(userID) {
		t.Fatal("expected conversation in progress after SetState")
	}
	if got := m.GetState(userID); got != State("water.volume") {
		t.Fatalf("unexpected state %q", got)
	}

	m.ClearState(userID)
	if m.HasState(userID) {
		t.Fatal("ClearState must reset state to idle")
	}
}

func TestMemoryManagerTempData(t *testing.T) {
	m := NewMemoryManager()
	const userID int64 = 7

	m.SetTemp(userID, "weight", 70)
	m.SetTemp(userID, "product", "oatmeal")

	if v, ok := m.GetTempInt(userID, "weight"); !ok || v != 70 {
		t.Fatalf("GetTempInt = %d, %v", v, ok)
	}
	if v, ok := m.GetTempString(userID, "product"); !ok || v != "oatmeal" {
		t.Fatalf("GetTempString = %q, %v", v, ok)
	}
	if _, ok := m.GetTempInt(userID, "product"); ok {
		t.Fatal("GetTempInt must not coerce strings")
	}

	m.ClearTemp(userID, "weight")
	if _, ok := m.GetTemp(userID, "weight"); ok {
		t.Fatal("ClearTemp must remove the key")
	}

	m.Clear(userID)
	if _, ok := m.GetTemp(userID, "product"); ok {
		t.Fatal("Clear must drop the whole session")
	}
}

func TestMemoryManagerTempIntCoercion(t *testing.T) {
	m := NewMemoryManager()
	const userID int64 = 9

	m.SetTemp(userID, "kcal_per_100g", int64(350))
	if v, ok := m.GetTempInt(userID, "kcal_per_100g"); !ok || v != 350 {
		t.Fatalf("int64 value must be readable as int, got %d, %v", v, ok)
	}
	if v, ok := m.GetTempInt64(userID, "kcal_per_100g"); !ok || v != 350 {
		t.Fatalf("GetTempInt64 = %d, %v", v, ok)
	}
}
