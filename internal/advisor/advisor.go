package advisor

import (
	"errors"

	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
	"github.com/Thechiragji/THECHIRAGGAME/internal/tictactoe"
)

var ErrNoMoveAvailable = errors.New("no available moves")

const centerCell = 4

var (
	cornerOrder = [4]int{0, 2, 6, 8}
	edgeOrder   = [4]int{1, 3, 5, 7}
)

// Recommend - proposes a cell for mover on the given board. Pure function:
// the same inputs always yield the same cell.
//
// Priority ladder, first matching rule wins:
//  1. complete an own line,
//  2. block the opponent's completing cell,
//  3. take the center,
//  4. take the first free corner (0, 2, 6, 8),
//  5. take the first free edge (1, 3, 5, 7).
//
// Deliberately greedy rather than minimax; the gameplay it produces is part
// of the contract.
func Recommend(board [9]string, mover, opponent string) (int, error) {
	if cell, ok := completingCell(board, mover); ok {
		return cell, nil
	}

	if cell, ok := completingCell(board, opponent); ok {
		return cell, nil
	}

	if board[centerCell] == entity.EmptyCell {
		return centerCell, nil
	}

	for _, cell := range cornerOrder {
		if board[cell] == entity.EmptyCell {
			return cell, nil
		}
	}

	for _, cell := range edgeOrder {
		if board[cell] == entity.EmptyCell {
			return cell, nil
		}
	}

	return -1, ErrNoMoveAvailable
}

// completingCell - finds the lowest empty cell that would finish a line for
// mark. The board is an array value, so the simulation never leaks out.
func completingCell(board [9]string, mark string) (int, bool) {
	for cell := range board {
		if board[cell] != entity.EmptyCell {
			continue
		}

		board[cell] = mark
		if _, ok := tictactoe.WinningLine(board, mark); ok {
			return cell, true
		}
		board[cell] = entity.EmptyCell
	}

	return -1, false
}
