package catalog

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
)

// Item ids in the default table
const (
	ItemSmallHeal    = "small_heal"
	ItemLargeHeal    = "large_heal"
	ItemManaPotion   = "mana_potion"
	ItemIronSword    = "iron_sword"
	ItemSteelSword   = "steel_sword"
	ItemLeatherArmor = "leather_armor"
	ItemPowerRing    = "power_ring"
)

// Enemy keys in the default table
const (
	EnemyGoblin = "goblin"
	EnemyTroll  = "troll"
)

// DefaultItems is the fixed item table shipped with the game
func DefaultItems() []entities.Item {
	return []entities.Item{
		{
			ID:          ItemSmallHeal,
			Name:        "Small Healing Potion",
			Description: "Restores 20 health.",
			Kind:        entities.ItemKindConsumable,
			Consumable:  &entities.ConsumableData{Effect: entities.EffectHeal, Magnitude: 20},
		},
		{
			ID:          ItemLargeHeal,
			Name:        "Large Healing Potion",
			Description: "Restores 50 health.",
			Kind:        entities.ItemKindConsumable,
			Consumable:  &entities.ConsumableData{Effect: entities.EffectHeal, Magnitude: 50},
		},
		{
			ID:          ItemManaPotion,
			Name:        "Mana Potion",
			Description: "Restores 25 mana.",
			Kind:        entities.ItemKindConsumable,
			Consumable:  &entities.ConsumableData{Effect: entities.EffectRestoreMana, Magnitude: 25},
		},
		{
			ID:          ItemIronSword,
			Name:        "Iron Sword",
			Description: "A plain but reliable blade.",
			Kind:        entities.ItemKindEquipment,
			Equipment: &entities.EquipmentData{
				Slot:    equipment.SlotWeapon,
				Bonuses: entities.StatBonuses{Attack: 5},
			},
		},
		{
			ID:          ItemSteelSword,
			Name:        "Steel Sword",
			Description: "Troll-forged steel.",
			Kind:        entities.ItemKindEquipment,
			Equipment: &entities.EquipmentData{
				Slot:    equipment.SlotWeapon,
				Bonuses: entities.StatBonuses{Attack: 8},
			},
		},
		{
			ID:          ItemLeatherArmor,
			Name:        "Leather Armor",
			Description: "Turns aside the weakest blows.",
			Kind:        entities.ItemKindEquipment,
			Equipment: &entities.EquipmentData{
				Slot:    equipment.SlotArmor,
				Bonuses: entities.StatBonuses{Defense: 2},
			},
		},
		{
			ID:          ItemPowerRing,
			Name:        "Ring of Power",
			Description: "Hums faintly when gripped.",
			Kind:        entities.ItemKindEquipment,
			Equipment: &entities.EquipmentData{
				Slot:    equipment.SlotAccessory,
				Bonuses: entities.StatBonuses{Attack: 2},
			},
		},
	}
}

// DefaultEnemies is the fixed enemy table shipped with the game
func DefaultEnemies() []entities.EnemyTemplate {
	return []entities.EnemyTemplate{
		{
			Key:       EnemyGoblin,
			Name:      "Goblin",
			Health:    30,
			Attack:    5,
			Loot:      []string{ItemSmallHeal},
			ExpReward: 25,
			GoldMin:   5,
			GoldMax:   20,
		},
		{
			Key:       EnemyTroll,
			Name:      "Troll",
			Health:    80,
			Attack:    12,
			Loot:      []string{ItemLargeHeal, ItemSteelSword},
			ExpReward: 60,
			GoldMin:   5,
			GoldMax:   20,
		},
	}
}

// Default builds the catalog from the fixed tables. The tables are part of
// the binary, so a failure here is a programming error.
func Default() *Catalog {
	c, err := New(DefaultItems(), DefaultEnemies())
	if err != nil {
		panic("default catalog is invalid: " + err.Error())
	}
	return c
}
