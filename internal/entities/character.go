// Package entities holds the game's data model: the player character, item
// templates and enemy templates.
package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
)

// Base stats for a fresh character
const (
	BaseLevel     = 1
	BaseExpToNext = 100
	BaseHealth    = 100
	BaseMana      = 50
	BaseAttack    = 10
)

// Per-level growth
const (
	LevelHealthGain = 20
	LevelManaGain   = 10
	LevelAttackGain = 3
)

// EntityTypeCharacter is the rpg-toolkit entity type of the player
const EntityTypeCharacter = "character"

// Character is the player. Equipment bonuses are never folded into the base
// stats; read EffectiveAttack and EffectiveDefense instead.
type Character struct {
	ID        string
	Name      string
	Level     int
	Exp       int
	ExpToNext int
	Health    int
	MaxHealth int
	Mana      int
	MaxMana   int
	Attack    int
	Gold      int
	Equipment map[equipment.EquipmentSlot]*Item
}

// NewCharacter creates a level 1 character with base stats and empty slots
func NewCharacter(id, name string) *Character {
	slots := make(map[equipment.EquipmentSlot]*Item)
	for _, slot := range equipment.AllEquipmentSlots() {
		slots[slot] = nil
	}

	return &Character{
		ID:        id,
		Name:      name,
		Level:     BaseLevel,
		ExpToNext: BaseExpToNext,
		Health:    BaseHealth,
		MaxHealth: BaseHealth,
		Mana:      BaseMana,
		MaxMana:   BaseMana,
		Attack:    BaseAttack,
		Equipment: slots,
	}
}

var _ core.Entity = (*Character)(nil)

// GetID returns the character's ID
func (c *Character) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *Character) GetType() string {
	return EntityTypeCharacter
}

// IsAlive reports whether the character has health left
func (c *Character) IsAlive() bool {
	return c.Health > 0
}

// TakeDamage lowers health, never below zero
func (c *Character) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	c.Health = clamp(c.Health-amount, 0, c.MaxHealth)
}

// Heal raises health, never above max health
func (c *Character) Heal(amount int) {
	if amount <= 0 {
		return
	}
	c.Health = clamp(c.Health+amount, 0, c.MaxHealth)
}

// SpendMana lowers mana, never below zero
func (c *Character) SpendMana(amount int) {
	if amount <= 0 {
		return
	}
	c.Mana = clamp(c.Mana-amount, 0, c.MaxMana)
}

// RestoreMana raises mana, never above max mana
func (c *Character) RestoreMana(amount int) {
	if amount <= 0 {
		return
	}
	c.Mana = clamp(c.Mana+amount, 0, c.MaxMana)
}

// AddGold adds gold. Negative amounts spend it, stopping at zero.
func (c *Character) AddGold(amount int) {
	c.Gold += amount
	if c.Gold < 0 {
		c.Gold = 0
	}
}

// GainExp adds experience and applies every level-up it pays for. The
// remainder carries into the next level. Returns the number of levels gained.
func (c *Character) GainExp(amount int) int {
	if amount <= 0 {
		return 0
	}

	c.Exp += amount
	gained := 0
	for c.Exp >= c.ExpToNext {
		c.Exp -= c.ExpToNext
		c.levelUp()
		gained++
	}
	return gained
}

func (c *Character) levelUp() {
	c.Level++
	c.MaxHealth += LevelHealthGain
	c.MaxMana += LevelManaGain
	c.Attack += LevelAttackGain
	c.ExpToNext += c.ExpToNext / 2
	c.Health = c.MaxHealth
	c.Mana = c.MaxMana
}

// EffectiveAttack is base attack plus every equipped attack bonus
func (c *Character) EffectiveAttack() int {
	total := c.Attack
	for _, item := range c.Equipment {
		if item.IsEquipment() {
			total += item.Equipment.Bonuses.Attack
		}
	}
	return total
}

// EffectiveDefense is the sum of equipped defense bonuses. It is reported to
// the player only; enemy hits always land for the template attack.
func (c *Character) EffectiveDefense() int {
	total := 0
	for _, item := range c.Equipment {
		if item.IsEquipment() {
			total += item.Equipment.Bonuses.Defense
		}
	}
	return total
}

// Equipped returns the item in a slot, or nil when the slot is empty
func (c *Character) Equipped(slot equipment.EquipmentSlot) *Item {
	return c.Equipment[slot]
}

// CharacterSnapshot is a read-only copy of a character for presentation
type CharacterSnapshot struct {
	ID               string
	Name             string
	Level            int
	Exp              int
	ExpToNext        int
	Health           int
	MaxHealth        int
	Mana             int
	MaxMana          int
	Attack           int
	EffectiveAttack  int
	EffectiveDefense int
	Gold             int
	Equipment        map[equipment.EquipmentSlot]string
}

// Snapshot copies the character's current stats. Equipment maps each slot
// to the equipped item's name, or "" when empty.
func (c *Character) Snapshot() CharacterSnapshot {
	gear := make(map[equipment.EquipmentSlot]string, len(c.Equipment))
	for _, slot := range equipment.AllEquipmentSlots() {
		gear[slot] = ""
		if item := c.Equipment[slot]; item != nil {
			gear[slot] = item.Name
		}
	}

	return CharacterSnapshot{
		ID:               c.ID,
		Name:             c.Name,
		Level:            c.Level,
		Exp:              c.Exp,
		ExpToNext:        c.ExpToNext,
		Health:           c.Health,
		MaxHealth:        c.MaxHealth,
		Mana:             c.Mana,
		MaxMana:          c.MaxMana,
		Attack:           c.Attack,
		EffectiveAttack:  c.EffectiveAttack(),
		EffectiveDefense: c.EffectiveDefense(),
		Gold:             c.Gold,
		Equipment:        gear,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
