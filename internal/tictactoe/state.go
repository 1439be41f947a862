package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// NoSelection - no history entry has been picked by the user.
const NoSelection = -1

// State is the whole game: every snapshot played so far and the one on display.
// Transitions never mutate a State, they return a new one.
type State struct {
	History       []entity.Snapshot `json:"history"`
	StepNumber    int               `json:"step_number"`
	SortAscending bool              `json:"sort_ascending"`
	Selected      int               `json:"selected"`
}

// Status is derived from the snapshot on display.
type Status struct {
	Winner entity.Mark
	Line   [3]int
	Draw   bool
	Next   entity.Mark
}

func (that Status) HasWinner() bool {
	return that.Winner != entity.EmptyCell
}

func New() State {
	return State{
		History:       []entity.Snapshot{entity.InitialSnapshot()},
		StepNumber:    0,
		SortAscending: true,
		Selected:      NoSelection,
	}
}

// Current - the snapshot at StepNumber.
func (that State) Current() entity.Snapshot {
	return that.History[that.StepNumber]
}

func (that State) XIsNext() bool {
	return that.StepNumber%2 == 0
}

func (that State) NextPlayer() entity.Mark {
	if that.XIsNext() {
		return entity.PlayerX
	}
	return entity.PlayerO
}

func (that State) Winner() ([3]int, bool) {
	return entity.CalculateWinner(that.Current().Board)
}

func (that State) Status() Status {
	board := that.Current().Board

	if line, ok := entity.CalculateWinner(board); ok {
		return Status{Winner: board[line[0]], Line: line}
	}

	if board.IsFull() {
		return Status{Draw: true}
	}

	return Status{Next: that.NextPlayer()}
}

// CheckMove - returns the reason ApplyMove would ignore a move on cell, or nil.
func (that State) CheckMove(cell int) error {
	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if _, ok := that.Winner(); ok {
		return apperror.ErrGameFinished
	}

	if !that.Current().Board.IsEmpty(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}

// ApplyMove - plays the next mark on cell. Invalid moves return the state unchanged.
// Moving after a jump back discards the snapshots after StepNumber.
func (that State) ApplyMove(cell int) State {
	if that.CheckMove(cell) != nil {
		return that
	}

	history := make([]entity.Snapshot, that.StepNumber+1, that.StepNumber+2)
	copy(history, that.History[:that.StepNumber+1])

	history = append(history, entity.Snapshot{
		Board: that.Current().Board.Place(cell, that.NextPlayer()),
		Cell:  cell,
	})

	return State{
		History:       history,
		StepNumber:    len(history) - 1,
		SortAscending: that.SortAscending,
		Selected:      NoSelection,
	}
}

// JumpTo - displays the snapshot at step. History is kept so the user can jump forward again.
func (that State) JumpTo(step int) (State, error) {
	if step < 0 || step >= len(that.History) {
		return that, fmt.Errorf("%w: step %d of %d", apperror.ErrStepOutOfRange, step, len(that.History))
	}

	that.StepNumber = step
	that.Selected = step

	return that, nil
}

// ToggleSort - flips the order of the move list, the game itself is unaffected.
func (that State) ToggleSort() State {
	that.SortAscending = !that.SortAscending
	return that
}

// Validate - checks the history invariants of a state restored from outside the process.
func (that State) Validate() error {
	if len(that.History) == 0 {
		return fmt.Errorf("%w: empty history", apperror.ErrInvalidArgument)
	}

	if that.History[0].Board != (entity.Board{}) {
		return fmt.Errorf("%w: history does not start from an empty board", apperror.ErrInvalidArgument)
	}

	if that.StepNumber < 0 || that.StepNumber >= len(that.History) {
		return fmt.Errorf("%w: step %d of %d", apperror.ErrStepOutOfRange, that.StepNumber, len(that.History))
	}

	return nil
}
