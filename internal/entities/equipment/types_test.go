package equipment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
)

func TestEquipmentSlotFromString(t *testing.T) {
	for _, slot := range equipment.AllEquipmentSlots() {
		got, ok := equipment.EquipmentSlotFromString(slot.String())
		assert.True(t, ok, slot)
		assert.Equal(t, slot, got)
	}

	got, ok := equipment.EquipmentSlotFromString("left_boot")
	assert.False(t, ok)
	assert.Empty(t, got)
}
