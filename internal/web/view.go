package web

import (
	"fmt"

	"github.com/jaminalder/time-travel-tic-tac-toe/internal/domain"
)

type cellView struct {
	Index     int
	Mark      string
	Highlight bool
}

type moveView struct {
	Step int
	// Coord is the "(row,col)" of the mark placed by the following move.
	// It is empty on the last entry.
	Coord       string
	Description string
	Current     bool
}

type gameView struct {
	ID        string
	Rows      [3][3]cellView
	Moves     []moveView
	Status    string
	Draw      bool
	SortLabel string
}

// newGameView derives everything the templates show from one session.
func newGameView(id string, g domain.Game) gameView {
	board := g.Current()
	line, won := domain.Winner(board)

	v := gameView{ID: id, Draw: domain.Draw(board)}
	for i, c := range board {
		r, col := domain.RowCol(i)
		v.Rows[r][col] = cellView{Index: i, Mark: c.String(), Highlight: won && line.Contains(i)}
	}

	if won {
		v.Status = "Winner: " + board[line[0]].String()
	} else {
		v.Status = "Next player: " + g.Next().String()
	}

	if g.Ascending() {
		v.SortLabel = "Sorting Ascending"
	} else {
		v.SortLabel = "Sorting Descending"
	}

	history := g.History()
	v.Moves = make([]moveView, len(history))
	for step := range history {
		m := moveView{Step: step, Current: step == g.Step(), Description: "Go to game start"}
		if step > 0 {
			m.Description = fmt.Sprintf("Go to move #%d", step)
		}
		if step < len(history)-1 {
			r, c := domain.RowCol(history[step+1].Cell)
			m.Coord = fmt.Sprintf("(%d,%d)", r, c)
		}
		v.Moves[step] = m
	}
	if !g.Ascending() {
		for i, j := 0, len(v.Moves)-1; i < j; i, j = i+1, j-1 {
			v.Moves[i], v.Moves[j] = v.Moves[j], v.Moves[i]
		}
	}
	return v
}
