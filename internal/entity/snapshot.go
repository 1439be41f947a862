package entity

// Snapshot is one immutable board state stored in the game history.
type Snapshot struct {
	Board Board `json:"board"`
	Cell  int   `json:"cell"`
}

// InitialSnapshot - the empty board every history starts from.
func InitialSnapshot() Snapshot {
	return Snapshot{Cell: NoCell}
}

// IsInitial - reports whether the snapshot is the game start rather than a move.
func (that Snapshot) IsInitial() bool {
	return that.Cell == NoCell
}

func (that Snapshot) Column() int {
	return Column(that.Cell)
}

func (that Snapshot) Row() int {
	return Row(that.Cell)
}
