package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrInvalidCell     = errors.New("invalid cell index")
	ErrStepOutOfRange  = errors.New("step is out of history range")
	ErrStateNotFound   = errors.New("game state not found")
	ErrUnknownStore    = errors.New("unknown store driver")
	ErrUnknownAction   = errors.New("unknown action")
	ErrInvalidArgument = errors.New("invalid argument")
)
