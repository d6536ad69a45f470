package battlelog

import (
	"context"
	"sync"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
)

// InMemoryConfig holds the configuration for the in-memory repository
type InMemoryConfig struct {
	Clock       clock.Clock
	IDGenerator idgen.Generator
	MaxEntries  int // zero means DefaultMaxEntries
}

// Validate ensures all required dependencies are provided
func (c *InMemoryConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	errors.ValidateMin("MaxEntries", c.MaxEntries, 0, vb)

	return vb.Build()
}

// InMemoryRepository implements Repository using in-memory storage. Each
// session's records are kept newest first.
type InMemoryRepository struct {
	mu          sync.RWMutex
	store       map[string][]*Record
	clock       clock.Clock
	idGenerator idgen.Generator
	maxEntries  int
}

// NewInMemory creates a new in-memory repository
func NewInMemory(cfg *InMemoryConfig) (*InMemoryRepository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	maxEntries := cfg.MaxEntries
	if maxEntries == 0 {
		maxEntries = DefaultMaxEntries
	}

	return &InMemoryRepository{
		store:       make(map[string][]*Record),
		clock:       cfg.Clock,
		idGenerator: cfg.IDGenerator,
		maxEntries:  maxEntries,
	}, nil
}

var _ Repository = (*InMemoryRepository)(nil)

// Append stores a record at the head of the session's history
func (r *InMemoryRepository) Append(_ context.Context, input *AppendInput) (*AppendOutput, error) {
	if err := validateAppend(input); err != nil {
		return nil, err
	}

	record := copyRecord(input.Record)
	record.ID = r.idGenerator.Generate()
	record.RecordedAt = r.clock.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	history := append([]*Record{record}, r.store[record.SessionID]...)
	if len(history) > r.maxEntries {
		history = history[:r.maxEntries]
	}
	r.store[record.SessionID] = history

	return &AppendOutput{Record: copyRecord(record)}, nil
}

// List returns copies of the newest records
func (r *InMemoryRepository) List(_ context.Context, input *ListInput) (*ListOutput, error) {
	limit, err := validateList(input)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	history := r.store[input.SessionID]
	if len(history) > limit {
		history = history[:limit]
	}

	records := make([]*Record, len(history))
	for i, record := range history {
		records[i] = copyRecord(record)
	}

	return &ListOutput{Records: records}, nil
}

// Delete drops a session's history
func (r *InMemoryRepository) Delete(_ context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if err := validateDelete(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	deleted := len(r.store[input.SessionID])
	delete(r.store, input.SessionID)

	return &DeleteOutput{Deleted: deleted}, nil
}
