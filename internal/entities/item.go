package entities

import "github.com/KirkDiggler/rpg-arena/internal/entities/equipment"

// ItemKind discriminates the item variants
type ItemKind string

// Item kinds
const (
	ItemKindConsumable ItemKind = "consumable"
	ItemKindEquipment  ItemKind = "equipment"
)

// EffectKind is what a consumable does when used
type EffectKind string

// Consumable effects
const (
	EffectHeal        EffectKind = "heal"
	EffectRestoreMana EffectKind = "restore_mana"
)

// ConsumableData is the payload of a consumable item
type ConsumableData struct {
	Effect    EffectKind `validate:"required,oneof=heal restore_mana"`
	Magnitude int        `validate:"gt=0"`
}

// StatBonuses are added on top of base stats while an item is equipped
type StatBonuses struct {
	Attack  int `validate:"gte=0"`
	Defense int `validate:"gte=0"`
}

// EquipmentData is the payload of an equipment item
type EquipmentData struct {
	Slot    equipment.EquipmentSlot `validate:"required,equipment_slot"`
	Bonuses StatBonuses
}

// Item is an immutable template from the catalog. Exactly one of Consumable
// or Equipment is set, matching Kind.
type Item struct {
	ID          string `validate:"required"`
	Name        string `validate:"required"`
	Description string
	Kind        ItemKind `validate:"required,oneof=consumable equipment"`

	Consumable *ConsumableData `validate:"required_if=Kind consumable"`
	Equipment  *EquipmentData  `validate:"required_if=Kind equipment"`
}

// IsConsumable reports whether the item can be used
func (i *Item) IsConsumable() bool {
	return i != nil && i.Kind == ItemKindConsumable && i.Consumable != nil
}

// IsEquipment reports whether the item can be equipped
func (i *Item) IsEquipment() bool {
	return i != nil && i.Kind == ItemKindEquipment && i.Equipment != nil
}
