package tictactoe

import (
	"fmt"

	"github.com/Thechiragji/THECHIRAGGAME/internal/apperror"
	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
)

// ApplyMove - places mark into cell and settles the match state.
// A rejected move leaves the match untouched.
func ApplyMove(match *entity.Match, mark string, cell int) error {
	if match.IsFinished() {
		return apperror.ErrMatchFinished
	}

	if err := validateMove(match, mark, cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	match.Board[cell] = mark
	match.TurnsPlayed++

	settleState(match, mark)

	return nil
}

// validateMove - checks if the move is valid.
func validateMove(match *entity.Match, mark string, cell int) error {
	if cell < 0 || cell >= len(match.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if match.Turn != mark {
		return apperror.ErrNotYourTurn
	}

	if match.Board[cell] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// settleState - evaluates win and draw after a placement, or flips the mover.
func settleState(match *entity.Match, mark string) {
	if line, ok := WinningLine(match.Board, mark); ok {
		match.State = entity.StateWon
		match.Winner = mark
		match.WinLine = line[:]
		match.Turn = entity.EmptyCell
		return
	}

	if match.TurnsPlayed == len(match.Board) {
		match.State = entity.StateDrawn
		match.Winner = entity.MarkTie
		match.Turn = entity.EmptyCell
		return
	}

	match.Turn = entity.ToggleMark(mark)
}

// WinningLine - returns the first canonical line fully owned by mark.
// Simultaneous completions cannot happen under alternating single
// placements, but the scan order keeps the result deterministic anyway.
func WinningLine(board [9]string, mark string) ([3]int, bool) {
	if mark == entity.EmptyCell {
		return [3]int{}, false
	}

	for _, line := range entity.WinLines {
		if board[line[0]] == mark && board[line[1]] == mark && board[line[2]] == mark {
			return line, true
		}
	}

	return [3]int{}, false
}
