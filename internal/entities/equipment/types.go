// Package equipment defines the named positions a character can hold gear in.
package equipment

// EquipmentSlot represents the type of equipment slot
type EquipmentSlot string

// Define all available equipment slots
const (
	SlotWeapon    EquipmentSlot = "weapon"
	SlotArmor     EquipmentSlot = "armor"
	SlotAccessory EquipmentSlot = "accessory"
)

// String returns the string representation of the equipment slot
func (s EquipmentSlot) String() string {
	return string(s)
}

// IsValid checks if the equipment slot is valid
func (s EquipmentSlot) IsValid() bool {
	switch s {
	case SlotWeapon, SlotArmor, SlotAccessory:
		return true
	default:
		return false
	}
}

// AllEquipmentSlots returns every slot in display order
func AllEquipmentSlots() []EquipmentSlot {
	return []EquipmentSlot{
		SlotWeapon,
		SlotArmor,
		SlotAccessory,
	}
}

// EquipmentSlotFromString converts a string to an EquipmentSlot
// Returns the slot and true if valid, empty slot and false if invalid
func EquipmentSlotFromString(s string) (EquipmentSlot, bool) {
	slot := EquipmentSlot(s)
	if slot.IsValid() {
		return slot, true
	}
	return "", false
}
