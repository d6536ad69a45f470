// Package combat resolves a fight between the player and one enemy. A battle
// runs to completion in a single call and only ever changes the player's
// health; rewards are somebody else's business.
package combat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// Config holds what a battle needs
type Config struct {
	Player *entities.Character
	Enemy  *entities.Enemy

	// MaxRounds ends the battle as a stalemate once reached; zero means
	// DefaultMaxRounds.
	MaxRounds int

	// EventBus is optional
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Player == nil {
		vb.RequiredField("Player")
	}
	if c.Enemy == nil || c.Enemy.Template == nil {
		vb.RequiredField("Enemy")
	}
	if c.MaxRounds < 0 {
		vb.Field("MaxRounds", "must not be negative")
	}

	return vb.Build()
}

// Battle is the state machine for one fight
type Battle struct {
	player    *entities.Character
	enemy     *entities.Enemy
	maxRounds int
	bus       events.EventBus

	state     State
	round     int
	stalemate bool
	log       []string
	dealt     int
	taken     int
}

// NewBattle sets up a battle on the player's turn
func NewBattle(cfg *Config) (*Battle, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	if !cfg.Player.IsAlive() {
		return nil, errors.FailedPreconditionf("%s cannot fight with no health", cfg.Player.Name)
	}

	maxRounds := cfg.MaxRounds
	if maxRounds == 0 {
		maxRounds = DefaultMaxRounds
	}

	return &Battle{
		player:    cfg.Player,
		enemy:     cfg.Enemy,
		maxRounds: maxRounds,
		bus:       cfg.EventBus,
		state:     StatePlayerTurn,
	}, nil
}

// State returns the current state
func (b *Battle) State() State {
	return b.state
}

// Start runs the battle until one side falls or the round cap is hit
func (b *Battle) Start(ctx context.Context) (*Result, error) {
	if b.state.IsResolved() {
		return nil, errors.FailedPrecondition("battle already resolved")
	}

	b.publish(ctx, EventCombatStarted, nil)

	playerDamage := b.player.EffectiveAttack()
	enemyDamage := b.enemy.Template.Attack

	if playerDamage <= 0 && enemyDamage <= 0 {
		b.log = append(b.log, fmt.Sprintf("%s and the %s cannot wound each other.", b.player.Name, b.enemy.Name()))
		b.resolveStalemate()
	}

	for !b.state.IsResolved() {
		if b.round >= b.maxRounds {
			b.resolveStalemate()
			break
		}
		b.playRound(ctx, playerDamage, enemyDamage)
	}

	result := b.result()

	slog.Info("Battle resolved",
		"player_id", b.player.ID,
		"enemy", b.enemy.Template.Key,
		"state", result.State,
		"rounds", result.Rounds,
		"stalemate", result.Stalemate,
		"player_health", result.PlayerHealth,
	)

	b.publish(ctx, EventCombatResolved, map[string]interface{}{
		ContextKeyState:     string(result.State),
		ContextKeyStalemate: result.Stalemate,
		ContextKeyRound:     result.Rounds,
	})

	return result, nil
}

func (b *Battle) playRound(ctx context.Context, playerDamage, enemyDamage int) {
	b.round++

	// Player turn
	b.enemy.TakeDamage(playerDamage)
	b.dealt += playerDamage
	b.log = append(b.log, fmt.Sprintf("Round %d: %s hits the %s for %d damage (%s HP: %d/%d)",
		b.round, b.player.Name, b.enemy.Name(), playerDamage,
		b.enemy.Name(), b.enemy.Health, b.enemy.Template.Health))

	if !b.enemy.IsAlive() {
		b.state = StateVictory
		b.publishRound(ctx, playerDamage, 0)
		return
	}
	b.state = StateEnemyTurn

	// Enemy turn
	b.player.TakeDamage(enemyDamage)
	b.taken += enemyDamage
	b.log = append(b.log, fmt.Sprintf("Round %d: the %s hits %s for %d damage (%s HP: %d/%d)",
		b.round, b.enemy.Name(), b.player.Name, enemyDamage,
		b.player.Name, b.player.Health, b.player.MaxHealth))

	if !b.player.IsAlive() {
		b.state = StateDefeat
	} else {
		b.state = StatePlayerTurn
	}
	b.publishRound(ctx, playerDamage, enemyDamage)
}

func (b *Battle) resolveStalemate() {
	b.stalemate = true
	b.state = StateDefeat
}

func (b *Battle) result() *Result {
	var summary string
	switch {
	case b.stalemate:
		summary = fmt.Sprintf("Stalemate! Neither %s nor the %s could win after %d rounds.",
			b.player.Name, b.enemy.Name(), b.round)
	case b.state == StateVictory:
		summary = fmt.Sprintf("Victory! %s defeated the %s in %d rounds.",
			b.player.Name, b.enemy.Name(), b.round)
	default:
		summary = fmt.Sprintf("Defeat! %s was slain by the %s.", b.player.Name, b.enemy.Name())
	}

	log := make([]string, len(b.log))
	copy(log, b.log)

	return &Result{
		Victory:      b.state == StateVictory,
		Stalemate:    b.stalemate,
		Summary:      summary,
		Log:          log,
		Rounds:       b.round,
		State:        b.state,
		DamageDealt:  b.dealt,
		DamageTaken:  b.taken,
		PlayerHealth: b.player.Health,
		EnemyHealth:  b.enemy.Health,
	}
}

func (b *Battle) publishRound(ctx context.Context, playerDamage, enemyDamage int) {
	b.publish(ctx, EventCombatRound, map[string]interface{}{
		ContextKeyRound:        b.round,
		ContextKeyPlayerDamage: playerDamage,
		ContextKeyEnemyDamage:  enemyDamage,
		ContextKeyPlayerHealth: b.player.Health,
		ContextKeyEnemyHealth:  b.enemy.Health,
		ContextKeyState:        string(b.state),
	})
}

// publish sends an event if a bus is configured. Handler failures are logged
// and never change the outcome of the battle.
func (b *Battle) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if b.bus == nil {
		return
	}

	event := events.NewGameEvent(eventType, b.player, b.enemy)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := b.bus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish combat event",
			"event_type", eventType,
			"round", b.round,
			"error", err,
		)
	}
}
