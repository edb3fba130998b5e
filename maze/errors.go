package maze

import "errors"

var (
	// ErrInsufficientData indicates a path with fewer than two fixes.
	ErrInsufficientData = errors.New("maze: at least two path points are required")
	// ErrOutOfBounds indicates a coordinate or cell outside the grid.
	ErrOutOfBounds = errors.New("maze: position out of bounds")
	// ErrUnreachableTarget indicates the carve exhausted its stack before reaching the end cell.
	ErrUnreachableTarget = errors.New("maze: end cell is unreachable from start cell")

	ErrInvalidResolution = errors.New("maze: resolution must be a positive, finite number of meters")
	ErrInvalidCoordinate = errors.New("maze: invalid coordinate")
	ErrInvalidDimensions = errors.New("maze: grid must have at least one row and one column")
	ErrGridTooLarge      = errors.New("maze: grid exceeds the cell budget")
	ErrGridNotEmpty      = errors.New("maze: grid must be zero-filled before carving")
	ErrNilGrid           = errors.New("maze: nil grid")
	ErrNilRandom         = errors.New("maze: nil random source")
)
