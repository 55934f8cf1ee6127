package inventory

import "fmt"

const (
	// DefaultSize is the number of general storage slots.
	DefaultSize = 30
	// DefaultMaxWeight is the default carried-weight cap.
	DefaultMaxWeight = 100.0
	// HotbarSize is the number of hotbar entries.
	HotbarSize = 10
)

// Slot is one occupied storage position.
//
// Invariant: Quantity == 1 for non-stackable items; 1 <= Quantity <= Item.StackLimit() otherwise.
type Slot struct {
	Item     Item
	Quantity int
}

// Inventory is a fixed-length array of slots with a weight cap, one equipment
// slot per equippable item type, and a hotbar of item references.
//
// Every mutating method is all-or-nothing: a call that returns false leaves
// the inventory unchanged. It is not safe for concurrent use.
type Inventory struct {
	MaxWeight float64
	slots     []*Slot
	equipped  map[Type]Item
	hotbar    []*Item
}

// New creates an empty Inventory with size slots and the given weight cap.
//
// Precondition: size >= 0 and maxWeight >= 0.
func New(size int, maxWeight float64) *Inventory {
	return &Inventory{
		MaxWeight: maxWeight,
		slots:     make([]*Slot, size),
		equipped:  make(map[Type]Item),
		hotbar:    make([]*Item, HotbarSize),
	}
}

// NewDefault creates an Inventory with DefaultSize slots and DefaultMaxWeight.
func NewDefault() *Inventory {
	return New(DefaultSize, DefaultMaxWeight)
}

// Size returns the number of slots, occupied or not.
func (inv *Inventory) Size() int { return len(inv.slots) }

// UsedSlots returns the number of occupied slots.
func (inv *Inventory) UsedSlots() int {
	n := 0
	for _, s := range inv.slots {
		if s != nil {
			n++
		}
	}
	return n
}

// CurrentWeight returns the sum of weight*quantity over occupied slots.
// Equipped items do not count.
func (inv *Inventory) CurrentWeight() float64 {
	var total float64
	for _, s := range inv.slots {
		if s != nil {
			total += s.Item.Weight * float64(s.Quantity)
		}
	}
	return total
}

// Count returns the total quantity of itemID held across all slots.
func (inv *Inventory) Count(itemID string) int {
	n := 0
	for _, s := range inv.slots {
		if s != nil && s.Item.ID == itemID {
			n += s.Quantity
		}
	}
	return n
}

// Slots returns a copy of every slot in order; empty positions have Quantity 0.
func (inv *Inventory) Slots() []Slot {
	out := make([]Slot, len(inv.slots))
	for i, s := range inv.slots {
		if s != nil {
			out[i] = Slot{Item: s.Item.clone(), Quantity: s.Quantity}
		}
	}
	return out
}

// placement is one staged change to a slot: add qty units of an item at idx.
type placement struct {
	idx int
	qty int
}

// AddItem stores quantity units of item.
//
// Stackable items first top up existing stacks of the same ID, then open new
// stacks in empty slots. Non-stackable items take one empty slot per unit.
//
// Postcondition: returns false without mutation when quantity < 1, when the
// added weight would exceed MaxWeight, or when there are not enough slots.
func (inv *Inventory) AddItem(item Item, quantity int) bool {
	if quantity < 1 {
		return false
	}
	if inv.CurrentWeight()+item.Weight*float64(quantity) > inv.MaxWeight {
		return false
	}

	plan, ok := inv.plan(item, quantity)
	if !ok {
		return false
	}
	for _, p := range plan {
		if inv.slots[p.idx] == nil {
			inv.slots[p.idx] = &Slot{Item: item.clone()}
		}
		inv.slots[p.idx].Quantity += p.qty
	}
	return true
}

// plan computes the slot changes needed to add quantity units of item.
func (inv *Inventory) plan(item Item, quantity int) ([]placement, bool) {
	var plan []placement
	remaining := quantity
	perSlot := 1

	if item.Stackable {
		perSlot = item.StackLimit()
		for i, s := range inv.slots {
			if remaining == 0 {
				break
			}
			if s == nil || s.Item.ID != item.ID || s.Quantity >= perSlot {
				continue
			}
			take := min(perSlot-s.Quantity, remaining)
			plan = append(plan, placement{idx: i, qty: take})
			remaining -= take
		}
	}

	for i, s := range inv.slots {
		if remaining == 0 {
			break
		}
		if s != nil {
			continue
		}
		take := min(perSlot, remaining)
		plan = append(plan, placement{idx: i, qty: take})
		remaining -= take
	}
	return plan, remaining == 0
}

// RemoveItem removes quantity units of itemID, draining slots in order.
//
// Postcondition: returns true iff the full quantity was held and removed;
// on false the inventory is unchanged.
func (inv *Inventory) RemoveItem(itemID string, quantity int) bool {
	if quantity < 1 || inv.Count(itemID) < quantity {
		return false
	}
	remaining := quantity
	for i, s := range inv.slots {
		if remaining == 0 {
			break
		}
		if s == nil || s.Item.ID != itemID {
			continue
		}
		take := min(s.Quantity, remaining)
		s.Quantity -= take
		remaining -= take
		if s.Quantity == 0 {
			inv.slots[i] = nil
		}
	}
	return true
}

// snapshot deep-copies the slot array so a multi-step change can be rolled back.
func (inv *Inventory) snapshot() []*Slot {
	cp := make([]*Slot, len(inv.slots))
	for i, s := range inv.slots {
		if s != nil {
			c := *s
			cp[i] = &c
		}
	}
	return cp
}

// EquipItem places item in the equipment slot for its type and removes one
// unit of it from storage when storage holds one. An item that is not held
// is still equipped. Any different item already equipped there is returned
// to storage. Equipping the item that is already equipped is a no-op that
// succeeds.
//
// Postcondition: returns false without mutation when item is not a weapon,
// armor or accessory, or when the displaced item does not fit back into
// storage.
func (inv *Inventory) EquipItem(item Item) bool {
	if !item.Type.Equippable() {
		return false
	}
	current, occupied := inv.equipped[item.Type]
	if occupied && current.ID == item.ID {
		return true
	}

	saved := inv.snapshot()
	inv.RemoveItem(item.ID, 1)
	if occupied && !inv.AddItem(current, 1) {
		inv.slots = saved
		return false
	}
	inv.equipped[item.Type] = item.clone()
	return true
}

// Unequip returns the item in the t equipment slot to storage.
//
// Postcondition: returns false without mutation when the slot is empty or the
// item does not fit.
func (inv *Inventory) Unequip(t Type) bool {
	current, ok := inv.equipped[t]
	if !ok {
		return false
	}
	if !inv.AddItem(current, 1) {
		return false
	}
	delete(inv.equipped, t)
	return true
}

// Equipped returns the item equipped in the t slot.
func (inv *Inventory) Equipped(t Type) (Item, bool) {
	it, ok := inv.equipped[t]
	if !ok {
		return Item{}, false
	}
	return it.clone(), true
}

// EquippedItems returns a copy of the equipment map.
func (inv *Inventory) EquippedItems() map[Type]Item {
	out := make(map[Type]Item, len(inv.equipped))
	for t, it := range inv.equipped {
		out[t] = it.clone()
	}
	return out
}

// AddToHotbar assigns item to hotbar position idx. Ownership is not checked.
//
// Postcondition: returns false when idx is out of range.
func (inv *Inventory) AddToHotbar(item Item, idx int) bool {
	if idx < 0 || idx >= len(inv.hotbar) {
		return false
	}
	it := item.clone()
	inv.hotbar[idx] = &it
	return true
}

// ClearHotbar empties hotbar position idx.
func (inv *Inventory) ClearHotbar(idx int) bool {
	if idx < 0 || idx >= len(inv.hotbar) {
		return false
	}
	inv.hotbar[idx] = nil
	return true
}

// Hotbar returns a copy of the hotbar; empty positions are nil.
func (inv *Inventory) Hotbar() []*Item {
	out := make([]*Item, len(inv.hotbar))
	for i, it := range inv.hotbar {
		if it != nil {
			c := it.clone()
			out[i] = &c
		}
	}
	return out
}

// SlotState is the persisted form of one occupied slot.
type SlotState struct {
	Index    int    `json:"index"`
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// State is the plain-data form of an Inventory, referencing items by ID.
type State struct {
	Size      int             `json:"size"`
	MaxWeight float64         `json:"max_weight"`
	Slots     []SlotState     `json:"slots"`
	Equipped  map[Type]string `json:"equipped"`
	Hotbar    []string        `json:"hotbar"`
}

// State returns the plain-data form of inv.
func (inv *Inventory) State() State {
	st := State{
		Size:      len(inv.slots),
		MaxWeight: inv.MaxWeight,
		Slots:     []SlotState{},
		Equipped:  make(map[Type]string, len(inv.equipped)),
		Hotbar:    make([]string, len(inv.hotbar)),
	}
	for i, s := range inv.slots {
		if s != nil {
			st.Slots = append(st.Slots, SlotState{Index: i, ItemID: s.Item.ID, Quantity: s.Quantity})
		}
	}
	for t, it := range inv.equipped {
		st.Equipped[t] = it.ID
	}
	for i, it := range inv.hotbar {
		if it != nil {
			st.Hotbar[i] = it.ID
		}
	}
	return st
}

// Restore rebuilds an Inventory from st, resolving item IDs through reg.
// Weight is not re-checked: a restored inventory is taken as persisted.
//
// Postcondition: returns an error wrapping ErrUnknownItem for any unresolved
// ID, or an error for out-of-range slot indexes.
func Restore(st State, reg *Registry) (*Inventory, error) {
	inv := New(st.Size, st.MaxWeight)
	for _, ss := range st.Slots {
		if ss.Index < 0 || ss.Index >= st.Size {
			return nil, fmt.Errorf("restoring inventory: slot index %d out of range", ss.Index)
		}
		it, ok := reg.Item(ss.ItemID)
		if !ok {
			return nil, fmt.Errorf("restoring inventory slot %d: %w: %q", ss.Index, ErrUnknownItem, ss.ItemID)
		}
		inv.slots[ss.Index] = &Slot{Item: it, Quantity: ss.Quantity}
	}
	for t, id := range st.Equipped {
		it, ok := reg.Item(id)
		if !ok {
			return nil, fmt.Errorf("restoring equipped %s: %w: %q", t, ErrUnknownItem, id)
		}
		inv.equipped[t] = it
	}
	for i, id := range st.Hotbar {
		if id == "" || i >= len(inv.hotbar) {
			continue
		}
		it, ok := reg.Item(id)
		if !ok {
			return nil, fmt.Errorf("restoring hotbar %d: %w: %q", i, ErrUnknownItem, id)
		}
		inv.hotbar[i] = &it
	}
	return inv, nil
}
