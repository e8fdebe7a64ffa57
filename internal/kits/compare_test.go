package kits

import (
	"errors"
	"fmt"
	"testing"

	"github.com/RouterHaus/routerhaus/internal/testutil"
)

func TestTray_ToggleAddRemove(t *testing.T) {
	var tray Tray

	in, err := tray.Toggle("a")
	if err != nil || !in {
		t.Fatalf("Toggle add = %v, %v, want in with no error", in, err)
	}
	in, err = tray.Toggle("a")
	if err != nil || in {
		t.Fatalf("Toggle remove = %v, %v, want out with no error", in, err)
	}
	if len(tray.IDs) != 0 {
		t.Fatalf("tray after add+remove = %v, want empty", tray.IDs)
	}
}

func TestTray_FullRejectsAddButAllowsRemove(t *testing.T) {
	var tray Tray
	for i := 0; i < MaxCompareItems; i++ {
		if _, err := tray.Toggle(fmt.Sprintf("k%d", i)); err != nil {
			t.Fatalf("fill tray: %v", err)
		}
	}

	if _, err := tray.Toggle("overflow"); !errors.Is(err, ErrCompareFull) {
		t.Fatalf("Toggle on full tray err = %v, want ErrCompareFull", err)
	}
	if len(tray.IDs) != MaxCompareItems {
		t.Fatalf("failed add changed tray: %v", tray.IDs)
	}

	// Removal still works at capacity.
	if in, err := tray.Toggle("k0"); err != nil || in {
		t.Fatalf("remove from full tray = %v, %v", in, err)
	}
	if len(tray.IDs) != MaxCompareItems-1 {
		t.Fatalf("tray after removal = %v", tray.IDs)
	}
}

func TestTray_Clear(t *testing.T) {
	tray := Tray{IDs: []string{"a", "b"}}
	tray.Clear()
	if len(tray.IDs) != 0 {
		t.Fatalf("tray after Clear = %v, want empty", tray.IDs)
	}
}

func TestTray_ResolvePreservesOrderAndDropsMissing(t *testing.T) {
	catalog := testutil.Catalog(3)
	tray := Tray{IDs: []string{"k_2_testkit", "gone", "k_0_testkit"}}

	got := tray.Resolve(catalog)
	want := []string{"k_2_testkit", "k_0_testkit"}
	if len(got) != len(want) {
		t.Fatalf("resolved = %v, want %v", ids(got), want)
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("resolved = %v, want %v", ids(got), want)
		}
	}
}
