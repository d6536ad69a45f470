// Package inventory owns a character's carried items and applies the rules
// for using consumables and swapping equipment.
package inventory

import (
	"log/slog"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

//go:generate mockgen -destination=mock/mock_lookup.go -package=inventorymock github.com/KirkDiggler/rpg-arena/internal/inventory ItemLookup

// ItemLookup resolves item ids against the catalog
type ItemLookup interface {
	Item(id string) (*entities.Item, error)
}

// Entry is a stack of identical items
type Entry struct {
	Item  *entities.Item
	Count int
}

// Inventory is the loose item collection of one character. Stacks keep the
// order in which their item first arrived; an empty stack is removed.
type Inventory struct {
	owner   *entities.Character
	items   ItemLookup
	entries []*Entry
}

// New creates an empty inventory for a character
func New(owner *entities.Character, items ItemLookup) *Inventory {
	return &Inventory{
		owner: owner,
		items: items,
	}
}

// Owner returns the character this inventory belongs to
func (inv *Inventory) Owner() *entities.Character {
	return inv.owner
}

// AddItem adds count copies of a catalog item
func (inv *Inventory) AddItem(id string, count int) error {
	if count < 1 {
		return errors.InvalidArgumentf("count must be at least 1, got %d", count)
	}

	item, err := inv.items.Item(id)
	if err != nil {
		return errors.Wrapf(err, "failed to add item %s", id)
	}

	inv.put(item, count)
	return nil
}

// UseItem consumes one copy of a consumable and applies its effect to the
// owner. It returns false, changing nothing, when the item is not held or
// is not a consumable.
func (inv *Inventory) UseItem(id string) bool {
	idx := inv.find(id)
	if idx < 0 {
		slog.Debug("Use of item not in inventory", "item_id", id)
		return false
	}

	item := inv.entries[idx].Item
	if !item.IsConsumable() {
		slog.Debug("Use of non-consumable item", "item_id", id, "kind", item.Kind)
		return false
	}

	switch item.Consumable.Effect {
	case entities.EffectHeal:
		inv.owner.Heal(item.Consumable.Magnitude)
	case entities.EffectRestoreMana:
		inv.owner.RestoreMana(item.Consumable.Magnitude)
	default:
		slog.Warn("Consumable has unknown effect", "item_id", id, "effect", item.Consumable.Effect)
		return false
	}

	inv.take(idx)
	return true
}

// EquipItem moves one copy of an equipment item into its slot. Whatever was
// in the slot goes back into the inventory. It returns false, changing
// nothing, when the item is not held or is not equipment.
func (inv *Inventory) EquipItem(id string) bool {
	idx := inv.find(id)
	if idx < 0 {
		slog.Debug("Equip of item not in inventory", "item_id", id)
		return false
	}

	item := inv.entries[idx].Item
	if !item.IsEquipment() {
		slog.Debug("Equip of non-equipment item", "item_id", id, "kind", item.Kind)
		return false
	}

	inv.take(idx)

	slot := item.Equipment.Slot
	if displaced := inv.owner.Equipment[slot]; displaced != nil {
		inv.put(displaced, 1)
	}
	inv.owner.Equipment[slot] = item

	return true
}

// UnequipItem returns the item in a slot to the inventory. It returns false
// when the slot is empty or unknown.
func (inv *Inventory) UnequipItem(slot equipment.EquipmentSlot) bool {
	if !slot.IsValid() {
		return false
	}

	item := inv.owner.Equipment[slot]
	if item == nil {
		return false
	}

	inv.owner.Equipment[slot] = nil
	inv.put(item, 1)
	return true
}

// Entries returns a copy of the stacks in order
func (inv *Inventory) Entries() []Entry {
	out := make([]Entry, len(inv.entries))
	for i, e := range inv.entries {
		out[i] = *e
	}
	return out
}

// Entry returns the stack at an index
func (inv *Inventory) Entry(index int) (Entry, bool) {
	if index < 0 || index >= len(inv.entries) {
		return Entry{}, false
	}
	return *inv.entries[index], true
}

// Count returns how many copies of an item are held
func (inv *Inventory) Count(id string) int {
	if idx := inv.find(id); idx >= 0 {
		return inv.entries[idx].Count
	}
	return 0
}

// Item returns the template of a held item
func (inv *Inventory) Item(id string) (*entities.Item, bool) {
	if idx := inv.find(id); idx >= 0 {
		return inv.entries[idx].Item, true
	}
	return nil, false
}

// Size returns the total number of item copies held
func (inv *Inventory) Size() int {
	total := 0
	for _, e := range inv.entries {
		total += e.Count
	}
	return total
}

func (inv *Inventory) find(id string) int {
	for i, e := range inv.entries {
		if e.Item.ID == id {
			return i
		}
	}
	return -1
}

func (inv *Inventory) put(item *entities.Item, count int) {
	if idx := inv.find(item.ID); idx >= 0 {
		inv.entries[idx].Count += count
		return
	}
	inv.entries = append(inv.entries, &Entry{Item: item, Count: count})
}

func (inv *Inventory) take(idx int) {
	inv.entries[idx].Count--
	if inv.entries[idx].Count == 0 {
		inv.entries = append(inv.entries[:idx], inv.entries[idx+1:]...)
	}
}
