package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/testing/suite"
)

func TestRedisStateRepository_Save(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewRedisStateRepository(st.Storage, "123", time.Minute)

	// Given: a state with one move
	state := tictactoe.New().ApplyMove(4)

	// When: Save is called
	err := repo.Save(ctx, state)

	// Then: the state is stored under the instance key with a ttl
	require.NoError(t, err)
	ttl, err := st.Storage.TTL(ctx, "game:123").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}

func TestRedisStateRepository_Get(t *testing.T) {
	t.Run("Get_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		repo := NewRedisStateRepository(st.Storage, "123", 0)

		// Given: a state after a jump back and a toggled sort
		state, err := tictactoe.New().ApplyMove(0).ApplyMove(4).ApplyMove(8).JumpTo(1)
		require.NoError(t, err)
		state = state.ToggleSort()

		require.NoError(t, repo.Save(ctx, state))

		// When: Get is called
		stored, err := repo.Get(ctx)

		// Then: the stored state matches the saved one
		require.NoError(t, err)
		assert.Equal(t, state, stored)
	})

	t.Run("Get_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		repo := NewRedisStateRepository(st.Storage, "9999999", 0)

		// When: Get is called for an instance without a game
		_, err := repo.Get(ctx)

		// Then: an ErrStateNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrStateNotFound)
	})

	t.Run("Get_Corrupted", func(t *testing.T) {
		ctx, st := suite.New(t)

		repo := NewRedisStateRepository(st.Storage, "123", 0)

		// Given: a stored value without history
		require.NoError(t, st.Storage.Set(ctx, "game:123", `{"history":[],"step_number":0}`, 0).Err())

		// When: Get is called
		_, err := repo.Get(ctx)

		// Then: the state is rejected
		require.ErrorIs(t, err, apperror.ErrInvalidArgument)
	})
}

func TestRedisStateRepository_Delete(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewRedisStateRepository(st.Storage, "123", 0)
	require.NoError(t, repo.Save(ctx, tictactoe.New()))

	// When: Delete is called
	require.NoError(t, repo.Delete(ctx))

	// Then: the state is gone
	_, err := repo.Get(ctx)
	require.ErrorIs(t, err, apperror.ErrStateNotFound)
}
