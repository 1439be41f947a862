package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type memoryState struct {
	mu    sync.RWMutex
	state *tictactoe.State
}

func NewMemoryStateRepository() StateRepository {
	return &memoryState{}
}

func (that *memoryState) Get(_ context.Context) (tictactoe.State, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if that.state == nil {
		return tictactoe.State{}, apperror.ErrStateNotFound
	}

	return *that.state, nil
}

func (that *memoryState) Save(_ context.Context, state tictactoe.State) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.state = &state

	return nil
}

func (that *memoryState) Delete(_ context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.state = nil

	return nil
}
