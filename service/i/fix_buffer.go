package i

import (
	"context"
	"errors"

	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/google/uuid"
)

// ErrBufferClosed is returned once a route's buffer has been drained for archiving.
var ErrBufferClosed = errors.New("route buffer is closed")

// FixBuffer holds the fixes of routes that are still being recorded.
// Append, Drain and Restore on the same route are serialized.
type FixBuffer interface {
	// Append adds fixes to the end of a route's buffer and returns the buffered count.
	// It returns ErrBufferClosed after the route has been drained.
	Append(ctx context.Context, routeID uuid.UUID, fixes []maze.Coordinate) (int64, error)

	// Fixes returns the buffered fixes of a route in recording order.
	Fixes(ctx context.Context, routeID uuid.UUID) ([]maze.Coordinate, error)

	// Drain returns the buffered fixes, and when at least minFixes are buffered
	// it clears and closes the buffer; otherwise the buffer is left untouched.
	// It returns ErrBufferClosed if the route was already drained.
	Drain(ctx context.Context, routeID uuid.UUID, minFixes int) ([]maze.Coordinate, error)

	// Restore reopens a drained buffer with fixes as its content.
	Restore(ctx context.Context, routeID uuid.UUID, fixes []maze.Coordinate) error
}
