package i

import (
	"context"

	dmn "github.com/HeartlessDevil29/Labirint/domain"
	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/google/uuid"
)

// RouteRecorder ingests the fixes of walked routes.
type RouteRecorder interface {
	// Start opens a new route and returns its ID and a token authorizing writes to it.
	Start(ctx context.Context) (uuid.UUID, string, error)

	// Append adds fixes to a route that is still recording and returns the buffered count.
	Append(ctx context.Context, id uuid.UUID, fixes []maze.Coordinate) (int64, error)

	// Finish archives a route and returns it.
	Finish(ctx context.Context, id uuid.UUID) (*dmn.Route, error)

	// Route returns an archived route, or the live fixes of one still recording.
	Route(ctx context.Context, id uuid.UUID) (*dmn.Route, error)

	// GenerateMaze builds a maze session from a route's fixes.
	GenerateMaze(ctx context.Context, id uuid.UUID, entry, exit maze.Coordinate, seed *int64) (*maze.Session, error)
}
