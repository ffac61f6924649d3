package domain

// Cell represents a board cell state.
type Cell uint8

const (
	Empty Cell = iota
	X
	O
)

// String returns the mark shown for the cell; Empty renders as "".
func (c Cell) String() string {
	switch c {
	case X:
		return "X"
	case O:
		return "O"
	default:
		return ""
	}
}

// Size is the number of cells on the board.
const Size = 9

// Board is a fixed 3x3 board stored row-major.
type Board [Size]Cell

// WinLine is a triple of board indices that wins when filled by one mark.
type WinLine [3]int

// Lines are checked in this order: rows, columns, diagonals.
var Lines = [8]WinLine{
	// rows
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	// cols
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	// diags
	{0, 4, 8}, {2, 4, 6},
}

// Contains reports whether idx is one of the line's cells.
func (l WinLine) Contains(idx int) bool {
	return l[0] == idx || l[1] == idx || l[2] == idx
}

// Winner returns the first line fully occupied by a single mark.
func Winner(b Board) (WinLine, bool) {
	for _, ln := range Lines {
		if b[ln[0]] != Empty && b[ln[0]] == b[ln[1]] && b[ln[0]] == b[ln[2]] {
			return ln, true
		}
	}
	return WinLine{}, false
}

// Full reports whether every cell is occupied.
func Full(b Board) bool {
	for _, c := range b {
		if c == Empty {
			return false
		}
	}
	return true
}

// Draw reports a full board without a winner.
func Draw(b Board) bool {
	_, won := Winner(b)
	return !won && Full(b)
}

// RowCol maps a board index to its row and column.
func RowCol(idx int) (int, int) {
	return idx / 3, idx % 3
}

// Move is a board snapshot and the cell placed to reach it.
// The first move of a history has Cell == -1.
type Move struct {
	Board Board
	Cell  int
}

// Game is an immutable time-travel game: the full history plus the step
// currently displayed. Every transition returns a new Game.
type Game struct {
	history   []Move
	step      int
	ascending bool
}

// New returns a game at the empty board with X to move.
func New() Game {
	return Game{history: []Move{{Cell: -1}}, ascending: true}
}

// Step is the index of the displayed move.
func (g Game) Step() int { return g.step }

// Len is the number of moves in the history, including the start.
func (g Game) Len() int { return len(g.history) }

// Ascending reports the display order of the history list.
func (g Game) Ascending() bool { return g.ascending }

// History returns a copy of all moves.
func (g Game) History() []Move {
	return append([]Move(nil), g.history...)
}

// Current returns the board at the displayed step.
func (g Game) Current() Board {
	return g.history[g.step].Board
}

// Next returns the mark to play at the displayed step. X moves on even steps.
func (g Game) Next() Cell {
	if g.step%2 == 0 {
		return X
	}
	return O
}

// PlaceMark plays the next mark at cell. Occupied cells, out of range cells
// and boards that already have a winner leave the game unchanged. Any moves
// after the displayed step are discarded.
func (g Game) PlaceMark(cell int) Game {
	if cell < 0 || cell >= Size {
		return g
	}
	board := g.Current()
	if _, won := Winner(board); won || board[cell] != Empty {
		return g
	}
	board[cell] = g.Next()

	history := make([]Move, g.step+1, g.step+2)
	copy(history, g.history[:g.step+1])
	history = append(history, Move{Board: board, Cell: cell})

	return Game{history: history, step: len(history) - 1, ascending: g.ascending}
}

// JumpTo displays the given step. Steps outside the history are ignored.
func (g Game) JumpTo(step int) Game {
	if step < 0 || step >= len(g.history) {
		return g
	}
	g.step = step
	return g
}

// ToggleSortOrder flips the history display order.
func (g Game) ToggleSortOrder() Game {
	g.ascending = !g.ascending
	return g
}
