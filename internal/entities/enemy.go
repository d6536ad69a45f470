package entities

import "github.com/KirkDiggler/rpg-toolkit/core"

// EntityTypeEnemy is the rpg-toolkit entity type of a combat opponent
const EntityTypeEnemy = "enemy"

// EnemyTemplate is the static definition an Enemy is spawned from
type EnemyTemplate struct {
	Key       string   `validate:"required"`
	Name      string   `validate:"required"`
	Health    int      `validate:"gt=0"`
	Attack    int      `validate:"gte=0"`
	Loot      []string `validate:"dive,required"`
	ExpReward int      `validate:"gte=0"`
	GoldMin   int      `validate:"gte=0"`
	GoldMax   int      `validate:"gtefield=GoldMin"`
}

// Enemy is a live opponent. It exists only for the length of one battle.
type Enemy struct {
	ID       string
	Template *EnemyTemplate
	Health   int
}

// Spawn creates a fresh enemy at full health
func (t *EnemyTemplate) Spawn(id string) *Enemy {
	return &Enemy{
		ID:       id,
		Template: t,
		Health:   t.Health,
	}
}

var _ core.Entity = (*Enemy)(nil)

// GetID returns the enemy's ID
func (e *Enemy) GetID() string {
	return e.ID
}

// GetType returns the entity type for rpg-toolkit
func (e *Enemy) GetType() string {
	return EntityTypeEnemy
}

// Name returns the template name
func (e *Enemy) Name() string {
	return e.Template.Name
}

// IsAlive reports whether the enemy has health left
func (e *Enemy) IsAlive() bool {
	return e.Health > 0
}

// TakeDamage lowers health, never below zero
func (e *Enemy) TakeDamage(amount int) {
	if amount <= 0 {
		return
	}
	e.Health -= amount
	if e.Health < 0 {
		e.Health = 0
	}
}
