package apperror

import "errors"

var (
	ErrMatchFinished = errors.New("match is already finished")
	ErrInvalidCell   = errors.New("invalid cell index")
	ErrCellOccupied  = errors.New("cell is already occupied")
	ErrNotYourTurn   = errors.New("it's not your turn")
	ErrUnknownMode   = errors.New("unknown game mode")
	ErrNotVsComputer = errors.New("match is not played against the computer")
	ErrStaleMove     = errors.New("board changed since the move was scheduled")
)
