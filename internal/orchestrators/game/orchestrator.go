// Package game is the boundary a front end talks to: it owns game sessions
// and turns player commands into calls on the rule engine.
package game

//go:generate mockgen -destination=mock/mock_service.go -package=gamemock github.com/KirkDiggler/rpg-arena/internal/orchestrators/game Service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-arena/internal/catalog"
	"github.com/KirkDiggler/rpg-arena/internal/combat"
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/entities/equipment"
	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/inventory"
	"github.com/KirkDiggler/rpg-arena/internal/metrics"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/battlelog"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/sessions"
	"github.com/KirkDiggler/rpg-arena/internal/rewards"
)

// Service defines the interface for game operations
type Service interface {
	// StartNewGame creates a fresh character with the starter kit
	StartNewGame(ctx context.Context, input *StartNewGameInput) (*StartNewGameOutput, error)

	// StartCombat fights one enemy to the end and pays out on victory
	StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error)

	// UseItem consumes the inventory entry at an index
	UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error)

	// EquipItem equips the inventory entry at an index
	EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error)

	// UnequipItem moves a slot's item back into the inventory
	UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error)

	// AddItem puts catalog items into the inventory
	AddItem(ctx context.Context, input *AddItemInput) (*AddItemOutput, error)

	// GetCharacter returns a snapshot of the player
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)

	// ListInventory returns the inventory and the equipped gear
	ListInventory(ctx context.Context, input *ListInventoryInput) (*ListInventoryOutput, error)

	// ListBattles returns the session's battle history, newest first
	ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error)

	// EndGame discards a session and its history
	EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error)
}

// DefaultStarterItems is the kit a new character begins with
func DefaultStarterItems() []StarterItem {
	return []StarterItem{
		{ItemID: catalog.ItemSmallHeal, Count: 3},
		{ItemID: catalog.ItemIronSword, Count: 1},
	}
}

// Config holds the dependencies for the game orchestrator
type Config struct {
	Catalog     *catalog.Catalog
	SessionRepo sessions.Repository
	BattleLog   battlelog.Repository
	Rewards     *rewards.Policy
	Metrics     *metrics.Recorder
	IDGenerator idgen.Generator
	Clock       clock.Clock

	// EventBus receives combat events; optional
	EventBus events.EventBus

	// EnemyIDGenerator names spawned enemies; defaults to a sequential one
	EnemyIDGenerator idgen.Generator

	// MaxRounds caps each battle; zero means combat.DefaultMaxRounds
	MaxRounds int

	// StarterItems defaults to DefaultStarterItems
	StarterItems []StarterItem
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.SessionRepo == nil {
		vb.RequiredField("SessionRepo")
	}
	if c.BattleLog == nil {
		vb.RequiredField("BattleLog")
	}
	if c.Rewards == nil {
		vb.RequiredField("Rewards")
	}
	if c.Metrics == nil {
		vb.RequiredField("Metrics")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	errors.ValidateMin("MaxRounds", c.MaxRounds, 0, vb)
	for i, starter := range c.StarterItems {
		if starter.Count < 1 {
			vb.Fieldf(fmt.Sprintf("StarterItems[%d]", i), "count must be at least 1, got %d", starter.Count)
		}
	}

	return vb.Build()
}

type orchestrator struct {
	catalog      *catalog.Catalog
	sessionRepo  sessions.Repository
	battleLog    battlelog.Repository
	rewards      *rewards.Policy
	metrics      *metrics.Recorder
	idGen        idgen.Generator
	enemyIDGen   idgen.Generator
	clock        clock.Clock
	eventBus     events.EventBus
	maxRounds    int
	starterItems []StarterItem

	// one mutex per session so a character is changed by one call at a time
	locks sync.Map
}

// NewOrchestrator creates a new game orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	enemyIDGen := cfg.EnemyIDGenerator
	if enemyIDGen == nil {
		enemyIDGen = idgen.NewSequential("enemy")
	}

	starterItems := cfg.StarterItems
	if starterItems == nil {
		starterItems = DefaultStarterItems()
	}

	return &orchestrator{
		catalog:      cfg.Catalog,
		sessionRepo:  cfg.SessionRepo,
		battleLog:    cfg.BattleLog,
		rewards:      cfg.Rewards,
		metrics:      cfg.Metrics,
		idGen:        cfg.IDGenerator,
		enemyIDGen:   enemyIDGen,
		clock:        cfg.Clock,
		eventBus:     cfg.EventBus,
		maxRounds:    cfg.MaxRounds,
		starterItems: starterItems,
	}, nil
}

// StartNewGame creates a character, seeds the starter kit and stores the session
func (o *orchestrator) StartNewGame(ctx context.Context, input *StartNewGameInput) (*StartNewGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("PlayerName", input.PlayerName, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	sessionID := o.idGen.Generate()
	character := entities.NewCharacter(sessionID, input.PlayerName)
	inv := inventory.New(character, o.catalog)

	for _, starter := range o.starterItems {
		if err := inv.AddItem(starter.ItemID, starter.Count); err != nil {
			slog.Error("Failed to seed starter item",
				"session_id", sessionID,
				"item_id", starter.ItemID,
				"error", err,
			)
			return nil, errors.Wrap(err, "failed to seed starter items")
		}
	}

	_, err := o.sessionRepo.Save(ctx, &sessions.SaveInput{
		Session: &sessions.Session{
			ID:        sessionID,
			Character: character,
			Inventory: inv,
			CreatedAt: o.clock.Now(),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	slog.Info("New game started",
		"session_id", sessionID,
		"player_name", input.PlayerName,
		"inventory_size", inv.Size(),
	)

	return &StartNewGameOutput{
		SessionID: sessionID,
		Character: character.Snapshot(),
	}, nil
}

// StartCombat runs one battle and applies its consequences
func (o *orchestrator) StartCombat(ctx context.Context, input *StartCombatInput) (*StartCombatOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("SessionID", input.SessionID, vb)
	errors.ValidateRequired("EnemyKey", input.EnemyKey, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.lock(input.SessionID)
	defer unlock()

	session, err := o.activeSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	template, err := o.catalog.Enemy(input.EnemyKey)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot fight %s", input.EnemyKey)
	}

	battle, err := combat.NewBattle(&combat.Config{
		Player:    session.Character,
		Enemy:     template.Spawn(o.enemyIDGen.Generate()),
		MaxRounds: o.maxRounds,
		EventBus:  o.eventBus,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to set up battle")
	}

	result, err := battle.Start(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "battle failed")
	}

	output := &StartCombatOutput{
		Victory:   result.Victory,
		Stalemate: result.Stalemate,
		Summary:   result.Summary,
		Log:       result.Log,
		Rounds:    result.Rounds,
	}

	if result.Victory {
		grant, err := o.rewards.Apply(ctx, session.Inventory, template)
		if err != nil {
			return nil, errors.Wrap(err, "failed to grant rewards")
		}
		output.Rewards = grant
		o.metrics.LevelsGained(grant.LevelsGained)
	} else {
		session.GameOver = true
		output.GameOver = true
	}

	o.metrics.BattleResolved(template.Key, metrics.Outcome(result.Victory, result.Stalemate))
	output.BattleID = o.recordBattle(ctx, session.ID, template, result, output.Rewards)
	output.Character = session.Character.Snapshot()

	slog.Info("Combat finished",
		"session_id", session.ID,
		"enemy", template.Key,
		"victory", result.Victory,
		"stalemate", result.Stalemate,
		"rounds", result.Rounds,
		"game_over", output.GameOver,
	)

	return output, nil
}

// UseItem consumes one copy of the entry at the given index
func (o *orchestrator) UseItem(ctx context.Context, input *UseItemInput) (*UseItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	unlock := o.lock(input.SessionID)
	defer unlock()

	session, err := o.activeSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	output := &UseItemOutput{}

	entry, ok := session.Inventory.Entry(input.Index)
	switch {
	case !ok:
		output.Reason = fmt.Sprintf("there is no item at position %d", input.Index+1)
	case !entry.Item.IsConsumable():
		output.Reason = fmt.Sprintf("%s cannot be used", entry.Item.Name)
	case !session.Inventory.UseItem(entry.Item.ID):
		output.Reason = fmt.Sprintf("%s could not be used", entry.Item.Name)
	default:
		output.Applied = true
		output.Message = fmt.Sprintf("Used %s.", entry.Item.Name)
		o.metrics.ItemUsed(entry.Item.ID)
	}

	if !output.Applied {
		slog.Debug("Item use refused",
			"session_id", session.ID,
			"index", input.Index,
			"reason", output.Reason,
		)
	}

	output.Character = session.Character.Snapshot()
	return output, nil
}

// EquipItem equips the entry at the given index, swapping out the slot's item
func (o *orchestrator) EquipItem(ctx context.Context, input *EquipItemInput) (*EquipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	unlock := o.lock(input.SessionID)
	defer unlock()

	session, err := o.activeSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	output := &EquipItemOutput{}

	entry, ok := session.Inventory.Entry(input.Index)
	switch {
	case !ok:
		output.Reason = fmt.Sprintf("there is no item at position %d", input.Index+1)
	case !entry.Item.IsEquipment():
		output.Reason = fmt.Sprintf("%s cannot be equipped", entry.Item.Name)
	default:
		displaced := session.Character.Equipped(entry.Item.Equipment.Slot)
		if !session.Inventory.EquipItem(entry.Item.ID) {
			output.Reason = fmt.Sprintf("%s could not be equipped", entry.Item.Name)
			break
		}
		output.Applied = true
		output.Message = fmt.Sprintf("Equipped %s.", entry.Item.Name)
		if displaced != nil {
			output.Message = fmt.Sprintf("Equipped %s and put %s back in the pack.", entry.Item.Name, displaced.Name)
		}
		o.metrics.ItemEquipped(entry.Item.ID)
	}

	output.Character = session.Character.Snapshot()
	return output, nil
}

// UnequipItem returns a slot's item to the inventory
func (o *orchestrator) UnequipItem(ctx context.Context, input *UnequipItemInput) (*UnequipItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	slot, ok := equipment.EquipmentSlotFromString(input.Slot)
	if !ok {
		return nil, errors.InvalidArgumentf("unknown equipment slot %q", input.Slot)
	}

	unlock := o.lock(input.SessionID)
	defer unlock()

	session, err := o.activeSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	output := &UnequipItemOutput{}

	item := session.Character.Equipped(slot)
	if item == nil || !session.Inventory.UnequipItem(slot) {
		output.Reason = fmt.Sprintf("nothing is equipped in the %s slot", slot)
	} else {
		output.Applied = true
		output.Message = fmt.Sprintf("Unequipped %s.", item.Name)
	}

	output.Character = session.Character.Snapshot()
	return output, nil
}

// AddItem adds copies of a catalog item to the inventory
func (o *orchestrator) AddItem(ctx context.Context, input *AddItemInput) (*AddItemOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("SessionID", input.SessionID, vb)
	errors.ValidateRequired("ItemID", input.ItemID, vb)
	errors.ValidateMin("Count", input.Count, 1, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	unlock := o.lock(input.SessionID)
	defer unlock()

	session, err := o.activeSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if err := session.Inventory.AddItem(input.ItemID, input.Count); err != nil {
		slog.Error("Failed to add item",
			"session_id", session.ID,
			"item_id", input.ItemID,
			"count", input.Count,
			"error", err,
		)
		return nil, err
	}

	item, _ := session.Inventory.Item(input.ItemID)
	return &AddItemOutput{
		Message: fmt.Sprintf("Added %d x %s.", input.Count, item.Name),
		Count:   session.Inventory.Count(input.ItemID),
	}, nil
}

// GetCharacter returns a snapshot of the session's character
func (o *orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	unlock := o.lock(input.SessionID)
	defer unlock()

	session, err := o.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return &GetCharacterOutput{
		Character: session.Character.Snapshot(),
		GameOver:  session.GameOver,
	}, nil
}

// ListInventory lists the inventory in insertion order plus every slot
func (o *orchestrator) ListInventory(ctx context.Context, input *ListInventoryInput) (*ListInventoryOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	unlock := o.lock(input.SessionID)
	defer unlock()

	session, err := o.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	entries := session.Inventory.Entries()
	output := &ListInventoryOutput{
		Items:    make([]InventoryItem, len(entries)),
		Equipped: make([]EquippedItem, 0, len(equipment.AllEquipmentSlots())),
		Size:     session.Inventory.Size(),
	}

	for i, entry := range entries {
		output.Items[i] = InventoryItem{
			Index:       i,
			ItemID:      entry.Item.ID,
			Name:        entry.Item.Name,
			Description: entry.Item.Description,
			Kind:        entry.Item.Kind,
			Count:       entry.Count,
		}
	}

	for _, slot := range equipment.AllEquipmentSlots() {
		equipped := EquippedItem{Slot: slot.String()}
		if item := session.Character.Equipped(slot); item != nil {
			equipped.ItemID = item.ID
			equipped.Name = item.Name
		}
		output.Equipped = append(output.Equipped, equipped)
	}

	return output, nil
}

// ListBattles returns recorded battles, newest first
func (o *orchestrator) ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	out, err := o.battleLog.List(ctx, &battlelog.ListInput{
		SessionID: input.SessionID,
		Limit:     input.Limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list battles")
	}

	return &ListBattlesOutput{Battles: out.Records}, nil
}

// EndGame deletes the session and its history
func (o *orchestrator) EndGame(ctx context.Context, input *EndGameInput) (*EndGameOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	unlock := o.lock(input.SessionID)
	defer unlock()

	_, err := o.sessionRepo.Delete(ctx, &sessions.DeleteInput{SessionID: input.SessionID})
	if err == nil || errors.IsNotFound(err) {
		o.locks.Delete(input.SessionID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to end game")
	}

	output := &EndGameOutput{}
	deleted, err := o.battleLog.Delete(ctx, &battlelog.DeleteInput{SessionID: input.SessionID})
	if err != nil {
		slog.Warn("Failed to delete battle history",
			"session_id", input.SessionID,
			"error", err,
		)
	} else {
		output.BattlesDeleted = deleted.Deleted
	}

	slog.Info("Game ended", "session_id", input.SessionID)
	return output, nil
}

// lock takes the session's mutex and returns its release
func (o *orchestrator) lock(sessionID string) func() {
	value, _ := o.locks.LoadOrStore(sessionID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (o *orchestrator) getSession(ctx context.Context, sessionID string) (*sessions.Session, error) {
	out, err := o.sessionRepo.Get(ctx, &sessions.GetInput{SessionID: sessionID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load session")
	}
	return out.Session, nil
}

// activeSession loads a session that can still be played
func (o *orchestrator) activeSession(ctx context.Context, sessionID string) (*sessions.Session, error) {
	session, err := o.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.GameOver {
		return nil, errors.FailedPreconditionf("game %s is over, start a new game", sessionID).
			WithMeta("session_id", sessionID)
	}
	return session, nil
}

// recordBattle appends to the history and returns the record ID, or "" when
// the store failed
func (o *orchestrator) recordBattle(
	ctx context.Context,
	sessionID string,
	template *entities.EnemyTemplate,
	result *combat.Result,
	grant *rewards.Grant,
) string {
	record := &battlelog.Record{
		SessionID: sessionID,
		EnemyKey:  template.Key,
		EnemyName: template.Name,
		Victory:   result.Victory,
		Stalemate: result.Stalemate,
		Rounds:    result.Rounds,
		Summary:   result.Summary,
	}
	if grant != nil {
		record.Gold = grant.Gold
		record.Exp = grant.Exp
		record.Loot = grant.Loot
		record.LevelsGained = grant.LevelsGained
	}

	out, err := o.battleLog.Append(ctx, &battlelog.AppendInput{Record: record})
	if err != nil {
		slog.Warn("Failed to record battle",
			"session_id", sessionID,
			"enemy", template.Key,
			"error", err,
		)
		return ""
	}
	return out.Record.ID
}
