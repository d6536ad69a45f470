// Package rewards applies the spoils of a won battle: loot goes into the
// inventory, gold is rolled inside the enemy's range and experience may level
// the character up.
package rewards

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/inventory"
)

// EventLevelUp is published once per level gained
const EventLevelUp = "character.level_up"

// ContextKeyLevel carries the new level on a level-up event
const ContextKeyLevel = "level"

// Config holds the dependencies of a Policy
type Config struct {
	Roller   dice.Roller
	EventBus events.EventBus // optional
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Roller == nil {
		vb.RequiredField("Roller")
	}

	return vb.Build()
}

// Grant is what a victory paid out
type Grant struct {
	Loot         []string // item names, in loot table order
	Gold         int
	Exp          int
	LevelsGained int
	Level        int
	Messages     []string
}

// Policy hands out rewards
type Policy struct {
	roller dice.Roller
	bus    events.EventBus
}

// New creates a reward policy
func New(cfg *Config) (*Policy, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Policy{
		roller: cfg.Roller,
		bus:    cfg.EventBus,
	}, nil
}

// Apply grants the enemy's loot, gold and experience to the inventory's owner
func (p *Policy) Apply(
	ctx context.Context,
	inv *inventory.Inventory,
	enemy *entities.EnemyTemplate,
) (*Grant, error) {
	if inv == nil || inv.Owner() == nil {
		return nil, errors.InvalidArgument("inventory with an owner is required")
	}
	if enemy == nil {
		return nil, errors.InvalidArgument("enemy template is required")
	}

	player := inv.Owner()

	gold, err := p.rollGold(enemy.GoldMin, enemy.GoldMax)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll gold for %s", enemy.Key)
	}

	grant := &Grant{}

	for _, id := range enemy.Loot {
		if err := inv.AddItem(id, 1); err != nil {
			slog.Error("Failed to grant loot",
				"enemy", enemy.Key,
				"item_id", id,
				"error", err,
			)
			return nil, errors.Wrapf(err, "failed to grant loot from %s", enemy.Key)
		}
		name := id
		if item, ok := inv.Item(id); ok {
			name = item.Name
		}
		grant.Loot = append(grant.Loot, name)
		grant.Messages = append(grant.Messages, fmt.Sprintf("Found %s.", name))
	}

	player.AddGold(gold)
	grant.Gold = gold
	grant.Messages = append(grant.Messages, fmt.Sprintf("Gained %d gold.", gold))

	grant.Exp = enemy.ExpReward
	grant.LevelsGained = player.GainExp(enemy.ExpReward)
	grant.Level = player.Level
	grant.Messages = append(grant.Messages, fmt.Sprintf("Gained %d experience.", enemy.ExpReward))

	firstNew := player.Level - grant.LevelsGained + 1
	for level := firstNew; level <= player.Level; level++ {
		grant.Messages = append(grant.Messages, fmt.Sprintf("Level up! %s is now level %d.", player.Name, level))
		p.publishLevelUp(ctx, player, level)
	}

	slog.Info("Rewards granted",
		"player_id", player.ID,
		"enemy", enemy.Key,
		"gold", gold,
		"exp", enemy.ExpReward,
		"loot_count", len(grant.Loot),
		"levels_gained", grant.LevelsGained,
	)

	return grant, nil
}

// rollGold picks uniformly from [minGold, maxGold]
func (p *Policy) rollGold(minGold, maxGold int) (int, error) {
	if maxGold <= minGold {
		return minGold, nil
	}

	roll, err := p.roller.Roll(maxGold - minGold + 1)
	if err != nil {
		return 0, err
	}
	return minGold + roll - 1, nil
}

func (p *Policy) publishLevelUp(ctx context.Context, player *entities.Character, level int) {
	if p.bus == nil {
		return
	}

	event := events.NewGameEvent(EventLevelUp, player, nil)
	event.Context().Set(ContextKeyLevel, level)

	if err := p.bus.Publish(ctx, event); err != nil {
		slog.Warn("Failed to publish level up",
			"player_id", player.ID,
			"level", level,
			"error", err,
		)
	}
}
