package chart

import (
	"bytes"
	"testing"

	"github.com/m3rciful/fitbot/internal/ledger"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderProducesPNG(t *testing.T) {
	logged := make([]int, ledger.HoursPerDay)
	burned := make([]int, ledger.HoursPerDay)
	logged[8] = 300
	logged[13] = 500
	burned[18] = 200

	img, err := Render("Water", "ml", logged, burned, 1300)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(img, pngMagic) {
		t.Fatal("output is not a PNG")
	}
}

func TestRenderDoesNotMutateInput(t *testing.T) {
	logged := make([]int, ledger.HoursPerDay)
	burned := make([]int, ledger.HoursPerDay)
	logged[9] = 640

	if _, err := Render("Calories", "kcal", logged, burned, 1944); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if logged[9] != 640 {
		t.Fatal("input buckets were modified")
	}
}

func TestRenderEmptyDay(t *testing.T) {
	logged := make([]int, ledger.HoursPerDay)
	burned := make([]int, ledger.HoursPerDay)
	if _, err := Render("Water", "ml", logged, burned, 1300); err != nil {
		t.Fatalf("Render on an empty day: %v", err)
	}
}
