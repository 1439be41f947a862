package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type dbState struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStateRepository - stores the game under "game:<instanceID>". A zero ttl keeps the key forever.
func NewRedisStateRepository(client *redis.Client, instanceID string, ttl time.Duration) StateRepository {
	return &dbState{
		client: client,
		key:    "game:" + instanceID,
		ttl:    ttl,
	}
}

func (that *dbState) Get(ctx context.Context) (tictactoe.State, error) {
	response, err := that.client.Get(ctx, that.key).Result()

	if errors.Is(err, redis.Nil) {
		return tictactoe.State{}, apperror.ErrStateNotFound
	}

	if err != nil {
		return tictactoe.State{}, fmt.Errorf("failed to get game state: %w", err)
	}

	var state tictactoe.State
	if err = json.Unmarshal([]byte(response), &state); err != nil {
		return tictactoe.State{}, fmt.Errorf("failed to unmarshal game state: %w", err)
	}

	if err = state.Validate(); err != nil {
		return tictactoe.State{}, fmt.Errorf("stored game state is corrupted: %w", err)
	}

	return state, nil
}

func (that *dbState) Save(ctx context.Context, state tictactoe.State) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("could not marshal game state: %w", err)
	}

	if err = that.client.Set(ctx, that.key, stateJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set game state: %w", err)
	}

	return nil
}

func (that *dbState) Delete(ctx context.Context) error {
	if err := that.client.Del(ctx, that.key).Err(); err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}

	return nil
}
