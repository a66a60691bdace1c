package advisor

import (
	"math/rand"

	"github.com/Thechiragji/THECHIRAGGAME/internal/entity"
)

// Strategy - chooses a cell for the computer-controlled mark.
type Strategy interface {
	ChooseCell(board [9]string, mover, opponent string) (int, error)
}

// HeuristicStrategy plays the Recommend priority ladder. This is the
// strategy shipped for vs-computer matches.
type HeuristicStrategy struct{}

func NewHeuristicStrategy() *HeuristicStrategy {
	return &HeuristicStrategy{}
}

func (that *HeuristicStrategy) ChooseCell(board [9]string, mover, opponent string) (int, error) {
	return Recommend(board, mover, opponent)
}

// RandomStrategy picks a random empty cell. Kept as a weaker sparring
// opponent; not used for regular vs-computer matches.
type RandomStrategy struct{}

func NewRandomStrategy() *RandomStrategy {
	return &RandomStrategy{}
}

func (that *RandomStrategy) ChooseCell(board [9]string, _, _ string) (int, error) {
	availableCells := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			availableCells = append(availableCells, i)
		}
	}

	if len(availableCells) == 0 {
		return -1, ErrNoMoveAvailable
	}

	return availableCells[rand.Intn(len(availableCells))], nil //nolint: gosec // it's ok
}
