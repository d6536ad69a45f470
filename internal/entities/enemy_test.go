package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
)

func TestEnemySpawnAndDamage(t *testing.T) {
	goblin := &entities.EnemyTemplate{Key: "goblin", Name: "Goblin", Health: 30, Attack: 5}

	enemy := goblin.Spawn("enemy_1")

	assert.Equal(t, "enemy_1", enemy.GetID())
	assert.Equal(t, entities.EntityTypeEnemy, enemy.GetType())
	assert.Equal(t, "Goblin", enemy.Name())
	assert.Equal(t, 30, enemy.Health)

	enemy.TakeDamage(-3)
	assert.Equal(t, 30, enemy.Health)

	enemy.TakeDamage(45)
	assert.Equal(t, 0, enemy.Health)
	assert.False(t, enemy.IsAlive())
	assert.Equal(t, 30, goblin.Health, "template must not change")
}
