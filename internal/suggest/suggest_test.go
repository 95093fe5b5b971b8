package suggest

import "testing"

func TestListsNotEmpty(t *testing.T) {
	if DietFood() == "" {
		t.Fatal("DietFood returned empty suggestion")
	}
	if Training() == "" {
		t.Fatal("Training returned empty suggestion")
	}
}

func TestSplitLinesSkipsBlank(t *testing.T) {
	got := splitLines("a\n\n  \nb\n")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("splitLines = %v", got)
	}
}
