package game

import (
	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/repositories/battlelog"
	"github.com/KirkDiggler/rpg-arena/internal/rewards"
)

// StarterItem is an item every new game begins with
type StarterItem struct {
	ItemID string
	Count  int
}

// StartNewGameInput defines the request for starting a game
type StartNewGameInput struct {
	PlayerName string
}

// StartNewGameOutput defines the response for starting a game
type StartNewGameOutput struct {
	SessionID string
	Character entities.CharacterSnapshot
}

// StartCombatInput defines the request for fighting an enemy
type StartCombatInput struct {
	SessionID string
	EnemyKey  string
}

// StartCombatOutput is the battle outcome as the player sees it
type StartCombatOutput struct {
	BattleID  string
	Victory   bool
	Stalemate bool
	Summary   string
	Log       []string
	Rounds    int

	// Rewards is nil unless the battle was won
	Rewards *rewards.Grant

	// GameOver is set when the player lost; only a new game can follow
	GameOver  bool
	Character entities.CharacterSnapshot
}

// UseItemInput defines the request for using an inventory entry
type UseItemInput struct {
	SessionID string
	Index     int // zero-based position in ListInventory
}

// UseItemOutput reports whether the item was used. Reason explains a refusal.
type UseItemOutput struct {
	Applied   bool
	Reason    string
	Message   string
	Character entities.CharacterSnapshot
}

// EquipItemInput defines the request for equipping an inventory entry
type EquipItemInput struct {
	SessionID string
	Index     int // zero-based position in ListInventory
}

// EquipItemOutput reports whether the item was equipped
type EquipItemOutput struct {
	Applied   bool
	Reason    string
	Message   string
	Character entities.CharacterSnapshot
}

// UnequipItemInput defines the request for emptying a slot
type UnequipItemInput struct {
	SessionID string
	Slot      string
}

// UnequipItemOutput reports whether the slot was emptied
type UnequipItemOutput struct {
	Applied   bool
	Reason    string
	Message   string
	Character entities.CharacterSnapshot
}

// AddItemInput defines the request for adding catalog items
type AddItemInput struct {
	SessionID string
	ItemID    string
	Count     int
}

// AddItemOutput defines the response for adding catalog items
type AddItemOutput struct {
	Message string
	Count   int // copies now held
}

// GetCharacterInput defines the request for a character snapshot
type GetCharacterInput struct {
	SessionID string
}

// GetCharacterOutput defines the response for a character snapshot
type GetCharacterOutput struct {
	Character entities.CharacterSnapshot
	GameOver  bool
}

// ListInventoryInput defines the request for the inventory listing
type ListInventoryInput struct {
	SessionID string
}

// InventoryItem is one row of the inventory listing
type InventoryItem struct {
	Index       int
	ItemID      string
	Name        string
	Description string
	Kind        entities.ItemKind
	Count       int
}

// EquippedItem is one slot of the character's gear
type EquippedItem struct {
	Slot   string
	ItemID string // empty when the slot is empty
	Name   string
}

// ListInventoryOutput defines the response for the inventory listing
type ListInventoryOutput struct {
	Items    []InventoryItem
	Equipped []EquippedItem
	Size     int
}

// ListBattlesInput defines the request for battle history
type ListBattlesInput struct {
	SessionID string
	Limit     int
}

// ListBattlesOutput holds battles newest first
type ListBattlesOutput struct {
	Battles []*battlelog.Record
}

// EndGameInput defines the request for discarding a game
type EndGameInput struct {
	SessionID string
}

// EndGameOutput defines the response for discarding a game
type EndGameOutput struct {
	BattlesDeleted int
}
