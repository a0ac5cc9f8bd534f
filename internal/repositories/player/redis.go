package player

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/cultivation-sim/internal/errors"
	"github.com/KirkDiggler/cultivation-sim/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/cultivation-sim/internal/redis"
)

const playerKeyPrefix = "cultivation:player:"

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis player repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	return vb.Build()
}

// NewRedis creates a Redis-backed player repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Load(ctx context.Context, input LoadInput) (*LoadOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	raw, err := r.client.Get(ctx, playerKeyPrefix+input.Key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no snapshot for %s", input.Key)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load snapshot")
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "corrupt snapshot for %s", input.Key)
	}
	if rec.Player == nil {
		return nil, errors.DataLossf("snapshot for %s has no player", input.Key)
	}

	return &LoadOutput{Player: rec.Player, SavedAt: rec.SavedAt}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}
	if input.Player == nil {
		return nil, errors.InvalidArgument(errPlayerNil)
	}

	rec := record{SavedAt: r.clock.Now().UTC(), Player: input.Player}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	if err := r.client.Set(ctx, playerKeyPrefix+input.Key, data, 0).Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save snapshot")
	}

	slog.DebugContext(ctx, "snapshot saved",
		"store", "redis",
		"key", input.Key,
		"bytes", len(data),
	)

	return &SaveOutput{SavedAt: rec.SavedAt}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.Key == "" {
		return nil, errors.InvalidArgument(errKeyEmpty)
	}

	n, err := r.client.Del(ctx, playerKeyPrefix+input.Key).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to delete snapshot")
	}

	return &DeleteOutput{Deleted: n > 0}, nil
}
