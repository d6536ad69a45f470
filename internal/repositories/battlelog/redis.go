package battlelog

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-arena/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-arena/internal/redis"
)

const (
	// Key pattern: battlelog:session:{session_id}
	sessionKeyPrefix = "battlelog:session:"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client      redisclient.Client
	Clock       clock.Clock
	IDGenerator idgen.Generator

	// MaxEntries trims a session's list on every append; zero means
	// DefaultMaxEntries
	MaxEntries int
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	errors.ValidateMin("MaxEntries", c.MaxEntries, 0, vb)

	return vb.Build()
}

type redisRepository struct {
	client      redisclient.Client
	clock       clock.Clock
	idGenerator idgen.Generator
	maxEntries  int
}

// NewRedis creates a battle history backed by one Redis list per session
func NewRedis(cfg *RedisConfig) (Repository, error) {
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

	return &redisRepository{
		client:      cfg.Client,
		clock:       cfg.Clock,
		idGenerator: cfg.IDGenerator,
		maxEntries:  maxEntries,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

// Append pushes a record onto the head of the session's list
func (r *redisRepository) Append(ctx context.Context, input *AppendInput) (*AppendOutput, error) {
	if err := validateAppend(input); err != nil {
		return nil, err
	}

	record := copyRecord(input.Record)
	record.ID = r.idGenerator.Generate()
	record.RecordedAt = r.clock.Now()

	data, err := json.Marshal(record)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal battle record")
	}

	key := sessionKey(record.SessionID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, int64(r.maxEntries-1))
		return nil
	})
	if err != nil {
		slog.Error("Failed to append battle record",
			"session_id", record.SessionID,
			"error", err,
		)
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store battle record in Redis")
	}

	return &AppendOutput{Record: record}, nil
}

// List reads the head of the session's list
func (r *redisRepository) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	limit, err := validateList(input)
	if err != nil {
		return nil, err
	}

	raw, err := r.client.LRange(ctx, sessionKey(input.SessionID), 0, int64(limit-1)).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read battle history from Redis")
	}

	records := make([]*Record, 0, len(raw))
	for _, item := range raw {
		var record Record
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal battle record")
		}
		records = append(records, &record)
	}

	return &ListOutput{Records: records}, nil
}

// Delete drops the session's list
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if err := validateDelete(input); err != nil {
		return nil, err
	}

	key := sessionKey(input.SessionID)

	var length *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		length = pipe.LLen(ctx, key)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete battle history from Redis")
	}

	return &DeleteOutput{Deleted: int(length.Val())}, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}
