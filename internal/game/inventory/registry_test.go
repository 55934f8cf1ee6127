package inventory_test

import (
	"testing"

	"github.com/cory-johannsen/mechanics/internal/game/inventory"
)

// TestRegistry_RegisterItem_Lookup verifies that a registered Item can be
// retrieved by ID and that the returned copy is detached from the template.
func TestRegistry_RegisterItem_Lookup(t *testing.T) {
	r := inventory.NewRegistry()
	potion := &inventory.Item{ID: "potion", Name: "Potion", Type: inventory.TypeConsumable, Effects: map[string]int{"heal": 10}}
	if err := r.RegisterItem(potion); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := r.Item("potion")
	if !ok {
		t.Fatal("expected item to be found")
	}
	got.Effects["heal"] = 999
	if potion.Effects["heal"] != 10 {
		t.Fatal("mutating a looked-up copy changed the template")
	}
}

func TestRegistry_RegisterItem_CollisionError(t *testing.T) {
	r := inventory.NewRegistry()
	it := &inventory.Item{ID: "rope", Name: "Rope", Type: inventory.TypeMaterial}
	if err := r.RegisterItem(it); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if err := r.RegisterItem(it); err == nil {
		t.Fatal("expected collision error on second register, got nil")
	}
}

func TestRegistry_Item_NotFound(t *testing.T) {
	if _, ok := inventory.NewRegistry().Item("nope"); ok {
		t.Fatal("expected not found")
	}
}

func TestNewRegistryFrom_AllSorted(t *testing.T) {
	r, err := inventory.NewRegistryFrom([]*inventory.Item{
		{ID: "b", Name: "B", Type: inventory.TypeMaterial},
		{ID: "a", Name: "A", Type: inventory.TypeMaterial},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all := r.All()
	if len(all) != 2 || all[0].ID != "a" || all[1].ID != "b" {
		t.Fatalf("unexpected order: %+v", all)
	}
}
