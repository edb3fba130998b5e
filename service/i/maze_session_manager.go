package i

import (
	"context"

	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/google/uuid"
)

// GenerateRequest holds the inputs of a maze generation request.
type GenerateRequest struct {
	Path             []maze.Coordinate
	Entry            maze.Coordinate
	Exit             maze.Coordinate
	ResolutionMeters float64 // Zero selects the configured resolution
	Seed             *int64  // Nil selects a fresh seed
}

// MazeSessionManager generates mazes and keeps the current maze session.
type MazeSessionManager interface {
	// Generate builds a new session and makes it current.
	Generate(ctx context.Context, req GenerateRequest) (*maze.Session, error)

	// Current returns the current session.
	Current() (*maze.Session, error)

	// ByID returns the current session if it has the given ID.
	ByID(id uuid.UUID) (*maze.Session, error)
}
