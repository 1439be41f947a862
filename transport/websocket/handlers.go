package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
)

func (that *Server) handleBoardClick(ctx context.Context, msg *Message) error {
	payload, err := decodeIntent(msg)
	if err != nil {
		return err
	}

	if payload.Cell == nil {
		return fmt.Errorf("%w: cell is required", apperror.ErrInvalidArgument)
	}

	if _, err = that.game.MakeMove(ctx, *payload.Cell); err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	return nil
}

func (that *Server) handleHistoryJump(ctx context.Context, msg *Message) error {
	payload, err := decodeIntent(msg)
	if err != nil {
		return err
	}

	if payload.Step == nil {
		return fmt.Errorf("%w: step is required", apperror.ErrInvalidArgument)
	}

	if _, err = that.game.JumpTo(ctx, *payload.Step); err != nil {
		return fmt.Errorf("failed to jump: %w", err)
	}

	return nil
}

func (that *Server) handleHistorySort(ctx context.Context, _ *Message) error {
	if _, err := that.game.ToggleSort(ctx); err != nil {
		return fmt.Errorf("failed to toggle sort: %w", err)
	}

	return nil
}
