package character_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/mechanics/internal/game/character"
	"github.com/cory-johannsen/mechanics/internal/game/condition"
	"github.com/cory-johannsen/mechanics/internal/game/currency"
	"github.com/cory-johannsen/mechanics/internal/game/inventory"
)

func testItems(t *testing.T) *inventory.Registry {
	t.Helper()
	reg, err := inventory.NewRegistryFrom([]*inventory.Item{
		{ID: "sword", Name: "Sword", Type: inventory.TypeWeapon, Weight: 5, DamageDice: "1d8"},
		{ID: "potion", Name: "Potion", Type: inventory.TypeConsumable, Weight: 0.5, Stackable: true, MaxStack: 10, Effects: map[string]int{"heal": 20}},
	})
	require.NoError(t, err)
	return reg
}

func TestSnapshot_RoundTripThroughJSON(t *testing.T) {
	items := testItems(t)
	c := character.New("c1", "Aria", averageAttrs())
	sword, _ := items.Item("sword")
	potion, _ := items.Item("potion")
	require.True(t, c.Inventory.AddItem(sword, 1))
	require.True(t, c.Inventory.AddItem(potion, 3))
	require.True(t, c.Inventory.EquipItem(sword))
	c.Purse = currency.FromCopper(1234)
	c.GainExperience(500)
	c.TakeDamage(12)
	c.ApplyEffect(condition.Regeneration(3, 4))

	raw, err := json.Marshal(c.Snapshot())
	require.NoError(t, err)
	var decoded character.Snapshot
	require.NoError(t, json.Unmarshal(raw, &decoded))

	restored, err := character.FromSnapshot(decoded, items)
	require.NoError(t, err)
	assert.Equal(t, c.ID, restored.ID)
	assert.Equal(t, c.Experience, restored.Experience)
	assert.Equal(t, c.Stats, restored.Stats)
	assert.Equal(t, c.Purse, restored.Purse)
	assert.Equal(t, 3, restored.Inventory.Count("potion"))
	eq, ok := restored.Inventory.Equipped(inventory.TypeWeapon)
	require.True(t, ok)
	assert.Equal(t, "sword", eq.ID)
	assert.Equal(t, c.Effects.All(), restored.Effects.All())
}

func TestFromSnapshot_UnknownItem(t *testing.T) {
	s := character.New("c1", "Aria", averageAttrs()).Snapshot()
	s.Inventory.Slots = append(s.Inventory.Slots, inventory.SlotState{Index: 0, ItemID: "ghost", Quantity: 1})
	_, err := character.FromSnapshot(s, testItems(t))
	assert.ErrorIs(t, err, inventory.ErrUnknownItem)
}
