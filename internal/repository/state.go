package repository

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

// StateRepository keeps the one game owned by the running process.
type StateRepository interface {
	Get(ctx context.Context) (tictactoe.State, error)
	Save(ctx context.Context, state tictactoe.State) error
	Delete(ctx context.Context) error
}
