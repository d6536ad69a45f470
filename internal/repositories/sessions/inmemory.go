package sessions

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage.
// Sessions hold live game state, so Get hands back the stored pointer;
// callers serialize mutation per session.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*Session
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*Session),
	}
}

var _ Repository = (*InMemoryRepository)(nil)

// Save stores a session
func (r *InMemoryRepository) Save(_ context.Context, input *SaveInput) (*SaveOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.InvalidArgument("session is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("ID", input.Session.ID, vb)
	if input.Session.Character == nil {
		vb.RequiredField("Character")
	}
	if input.Session.Inventory == nil {
		vb.RequiredField("Inventory")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[input.Session.ID] = input.Session

	return &SaveOutput{Success: true}, nil
}

// Get retrieves a session by ID
func (r *InMemoryRepository) Get(_ context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.store[input.SessionID]
	if !exists {
		return nil, errors.NotFoundf("session %s not found", input.SessionID).
			WithMeta("session_id", input.SessionID)
	}

	return &GetOutput{Session: session}, nil
}

// Delete removes a session
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	if input.SessionID == "" {
		return nil, errors.InvalidArgument("session ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.SessionID]; !exists {
		return nil, errors.NotFoundf("session %s not found", input.SessionID)
	}

	delete(r.store, input.SessionID)

	return &DeleteOutput{Success: true}, nil
}
