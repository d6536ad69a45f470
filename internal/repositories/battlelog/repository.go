// Package battlelog stores the history of fought battles per game session.
// The history is a log for display only; it is never used to restore a game.
package battlelog

import (
	"context"
	"time"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=battlelogmock github.com/KirkDiggler/rpg-arena/internal/repositories/battlelog Repository

const (
	// DefaultListLimit is used when List is called without a limit
	DefaultListLimit = 20

	// DefaultMaxEntries is how many records a session keeps before the
	// oldest are dropped
	DefaultMaxEntries = 100
)

// Record is one fought battle
type Record struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id"`
	EnemyKey     string    `json:"enemy_key"`
	EnemyName    string    `json:"enemy_name"`
	Victory      bool      `json:"victory"`
	Stalemate    bool      `json:"stalemate"`
	Rounds       int       `json:"rounds"`
	Summary      string    `json:"summary"`
	Gold         int       `json:"gold"`
	Exp          int       `json:"exp"`
	Loot         []string  `json:"loot,omitempty"`
	LevelsGained int       `json:"levels_gained"`
	RecordedAt   time.Time `json:"recorded_at"`
}

// AppendInput defines the request for recording a battle
type AppendInput struct {
	Record *Record
}

// AppendOutput returns the stored record with its ID and timestamp set
type AppendOutput struct {
	Record *Record
}

// ListInput defines the request for a session's history
type ListInput struct {
	SessionID string
	Limit     int // zero means DefaultListLimit
}

// ListOutput holds records newest first
type ListOutput struct {
	Records []*Record
}

// DeleteInput defines the request for dropping a session's history
type DeleteInput struct {
	SessionID string
}

// DeleteOutput defines the response for dropping a session's history
type DeleteOutput struct {
	Deleted int
}

// Repository defines the storage interface for battle history
type Repository interface {
	// Append records a battle. ID and RecordedAt are assigned by the store.
	Append(ctx context.Context, input *AppendInput) (*AppendOutput, error)

	// List returns a session's battles, newest first
	List(ctx context.Context, input *ListInput) (*ListOutput, error)

	// Delete drops a session's history
	Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error)
}

func validateAppend(input *AppendInput) error {
	if input == nil || input.Record == nil {
		return errors.InvalidArgument("record is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("SessionID", input.Record.SessionID, vb)
	errors.ValidateRequired("EnemyKey", input.Record.EnemyKey, vb)
	errors.ValidateMin("Rounds", input.Record.Rounds, 0, vb)
	return vb.Build()
}

func validateList(input *ListInput) (int, error) {
	if input == nil {
		return 0, errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return 0, errors.InvalidArgument("session ID is required")
	}
	if input.Limit < 0 {
		return 0, errors.InvalidArgumentf("limit must not be negative, got %d", input.Limit)
	}
	if input.Limit == 0 {
		return DefaultListLimit, nil
	}
	return input.Limit, nil
}

func validateDelete(input *DeleteInput) error {
	if input == nil {
		return errors.InvalidArgument("input is required")
	}
	if input.SessionID == "" {
		return errors.InvalidArgument("session ID is required")
	}
	return nil
}

func copyRecord(r *Record) *Record {
	out := *r
	if r.Loot != nil {
		out.Loot = append([]string(nil), r.Loot...)
	}
	return &out
}
