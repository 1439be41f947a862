package view

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const (
	labelGameStart = "Go to game start"
	statusDraw     = "It's a draw!"
)

// Square is one rendered cell of the board.
type Square struct {
	Index   int         `json:"index"`
	Mark    entity.Mark `json:"mark"`
	Winning bool        `json:"winning"`
}

// MoveItem describes one history entry of the move list.
type MoveItem struct {
	Step     int    `json:"step"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
}

type StatusLine struct {
	Text string `json:"text"`
	Draw bool   `json:"draw"`
}

// Model is everything a renderer needs, derived from a single tictactoe.State.
type Model struct {
	Rows          [entity.BoardSide][entity.BoardSide]Square `json:"rows"`
	Moves         []MoveItem                                 `json:"moves"`
	Status        StatusLine                                 `json:"status"`
	SortAscending bool                                       `json:"sort_ascending"`
}

// Build - derives the view model from state.
func Build(state tictactoe.State) Model {
	status := state.Status()

	return Model{
		Rows:          buildRows(state.Current().Board, status),
		Moves:         buildMoves(state),
		Status:        buildStatus(status),
		SortAscending: state.SortAscending,
	}
}

func buildRows(board entity.Board, status tictactoe.Status) [entity.BoardSide][entity.BoardSide]Square {
	var rows [entity.BoardSide][entity.BoardSide]Square

	for cell, mark := range board {
		rows[entity.Row(cell)][entity.Column(cell)] = Square{
			Index:   cell,
			Mark:    mark,
			Winning: status.HasWinner() && slices.Contains(status.Line[:], cell),
		}
	}

	return rows
}

// buildMoves - orders the descriptors before anything is rendered, keyed by step.
func buildMoves(state tictactoe.State) []MoveItem {
	moves := make([]MoveItem, 0, len(state.History))

	for step, snapshot := range state.History {
		moves = append(moves, MoveItem{
			Step:     step,
			Label:    Describe(step, snapshot),
			Selected: step == state.Selected,
		})
	}

	if !state.SortAscending {
		slices.Reverse(moves)
	}

	return moves
}

// Describe - the label of the history entry at step.
func Describe(step int, snapshot entity.Snapshot) string {
	if step == 0 || snapshot.IsInitial() {
		return labelGameStart
	}

	return fmt.Sprintf("Go to move #%d w/ (Column, Row): (%d, %d)", step, snapshot.Column(), snapshot.Row())
}

func buildStatus(status tictactoe.Status) StatusLine {
	switch {
	case status.HasWinner():
		return StatusLine{Text: fmt.Sprintf("Winner: %s!", status.Winner)}
	case status.Draw:
		return StatusLine{Text: statusDraw, Draw: true}
	default:
		return StatusLine{Text: fmt.Sprintf("Next player: %s", status.Next)}
	}
}
