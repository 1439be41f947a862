package entity

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardSize = 9
	BoardSide = 3

	// NoCell marks the initial snapshot, which was not produced by a move.
	NoCell = -1
)

// WinCombos - every line that wins the game, in the order they are checked: rows, columns, diagonals.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Mark is the content of a single cell.
type Mark string

type Board [BoardSize]Mark

// IsValidCell - reports whether cell addresses a square of the board.
func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func Row(cell int) int {
	return cell / BoardSide
}

func Column(cell int) int {
	return cell % BoardSide
}

// Place - returns a copy of the board with mark written to cell.
func (that Board) Place(cell int, mark Mark) Board {
	that[cell] = mark
	return that
}

func (that Board) IsEmpty(cell int) bool {
	return that[cell] == EmptyCell
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// CalculateWinner - returns the first completed line in WinCombos order.
func CalculateWinner(board Board) ([3]int, bool) {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return combo, true
		}
	}

	return [3]int{}, false
}
