// Package sessions keeps live game sessions for the lifetime of the process
package sessions

//go:generate mockgen -destination=mock/mock_repository.go -package=sessionsmock github.com/KirkDiggler/rpg-arena/internal/repositories/sessions Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/entities"
	"github.com/KirkDiggler/rpg-arena/internal/inventory"
)

// Session is one running game: a character, the inventory it owns and
// whether the game has ended
type Session struct {
	ID        string
	Character *entities.Character
	Inventory *inventory.Inventory
	GameOver  bool
	CreatedAt time.Time
}

// Repository defines the storage interface for sessions
type Repository interface {
	// Save stores a session, replacing any with the same ID
	Save(ctx context.Context, input *SaveInput) (*SaveOutput, error)

	// Get retrieves a session by ID
	Get(ctx context.Context, input *GetInput) (*GetOutput, error)

	// Delete removes a session
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

// SaveInput defines the request for saving a session
type SaveInput struct {
	Session *Session
}

// SaveOutput defines the response for saving a session
type SaveOutput struct {
	Success bool
}

// GetInput defines the request for retrieving a session
type GetInput struct {
	SessionID string
}

// GetOutput defines the response for retrieving a session
type GetOutput struct {
	Session *Session
}

// DeleteInput defines the request for deleting a session
type DeleteInput struct {
	SessionID string
}

// DeleteOutput defines the response for deleting a session
type DeleteOutput struct {
	Success bool
}
