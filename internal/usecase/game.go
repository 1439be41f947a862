package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type stateRepo interface {
	Get(ctx context.Context) (tictactoe.State, error)
	Save(ctx context.Context, state tictactoe.State) error
	Delete(ctx context.Context) error
}

// GameManager applies user intents to the game one at a time and tells subscribers about every new state.
type GameManager struct {
	logger    *slog.Logger
	stateRepo stateRepo

	mu sync.Mutex

	subscribersMu sync.Mutex
	subscribers   map[int]chan tictactoe.State
	nextID        int
}

func NewGameManager(logger *slog.Logger, stateRepo stateRepo) *GameManager {
	return &GameManager{
		logger:    logger.With("component", "game_manager"),
		stateRepo: stateRepo,

		subscribers: make(map[int]chan tictactoe.State),
	}
}

// State - returns the current game, starting a new one if none was stored yet.
func (that *GameManager) State(ctx context.Context) (tictactoe.State, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.load(ctx)
}

// MakeMove - plays the next mark on cell. Invalid moves are ignored and the state is returned unchanged.
func (that *GameManager) MakeMove(ctx context.Context, cell int) (tictactoe.State, error) {
	log := that.logger.With("method", "MakeMove")

	that.mu.Lock()
	defer that.mu.Unlock()

	state, err := that.load(ctx)
	if err != nil {
		return tictactoe.State{}, err
	}

	if reason := state.CheckMove(cell); reason != nil {
		log.Debug("move ignored", "cell", cell, "reason", reason)
		return state, nil
	}

	return that.commit(ctx, state.ApplyMove(cell))
}

// JumpTo - displays the snapshot at step.
func (that *GameManager) JumpTo(ctx context.Context, step int) (tictactoe.State, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	state, err := that.load(ctx)
	if err != nil {
		return tictactoe.State{}, err
	}

	next, err := state.JumpTo(step)
	if err != nil {
		return state, fmt.Errorf("failed to jump: %w", err)
	}

	return that.commit(ctx, next)
}

func (that *GameManager) ToggleSort(ctx context.Context) (tictactoe.State, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	state, err := that.load(ctx)
	if err != nil {
		return tictactoe.State{}, err
	}

	return that.commit(ctx, state.ToggleSort())
}

// Reset - forgets the game, used on shutdown so the next start begins from an empty board.
func (that *GameManager) Reset(ctx context.Context) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if err := that.stateRepo.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete game state: %w", err)
	}

	return nil
}

// Subscribe - returns a channel receiving every committed state and a function to stop receiving.
// A slow subscriber only ever sees the latest state.
func (that *GameManager) Subscribe() (<-chan tictactoe.State, func()) {
	that.subscribersMu.Lock()
	defer that.subscribersMu.Unlock()

	id := that.nextID
	that.nextID++

	ch := make(chan tictactoe.State, 1)
	that.subscribers[id] = ch

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			that.subscribersMu.Lock()
			defer that.subscribersMu.Unlock()

			delete(that.subscribers, id)
			close(ch)
		})
	}

	return ch, unsubscribe
}

func (that *GameManager) load(ctx context.Context) (tictactoe.State, error) {
	state, err := that.stateRepo.Get(ctx)
	if errors.Is(err, apperror.ErrStateNotFound) {
		return tictactoe.New(), nil
	}

	if err != nil {
		return tictactoe.State{}, fmt.Errorf("failed to load game state: %w", err)
	}

	return state, nil
}

func (that *GameManager) commit(ctx context.Context, state tictactoe.State) (tictactoe.State, error) {
	if err := that.stateRepo.Save(ctx, state); err != nil {
		return tictactoe.State{}, fmt.Errorf("failed to save game state: %w", err)
	}

	that.publish(state)

	return state, nil
}

func (that *GameManager) publish(state tictactoe.State) {
	that.subscribersMu.Lock()
	defer that.subscribersMu.Unlock()

	for _, ch := range that.subscribers {
		// drop the stale value, if any, so the send never blocks
		select {
		case <-ch:
		default:
		}

		ch <- state
	}
}
