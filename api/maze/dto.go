// Package mazeapi provides the request and response shapes of the maze endpoints.
package mazeapi

import (
	"time"

	"github.com/HeartlessDevil29/Labirint/maze"
)

// GenerateRequest represents a request to build a maze from a recorded path.
type GenerateRequest struct {
	Path             []maze.Coordinate `json:"path" binding:"required"`
	Entry            *maze.Coordinate  `json:"entry" binding:"required"`
	Exit             *maze.Coordinate  `json:"exit" binding:"required"`
	ResolutionMeters float64           `json:"resolution_meters"`
	Seed             *int64            `json:"seed"`
}

// SessionResponse represents a generated maze session.
type SessionResponse struct {
	ID               string              `json:"id"`
	Rows             int                 `json:"rows"`
	Cols             int                 `json:"cols"`
	ResolutionMeters float64             `json:"resolution_meters"`
	Bounds           maze.BoundingBox    `json:"bounds"`
	Entry            maze.Coordinate     `json:"entry"`
	Exit             maze.Coordinate     `json:"exit"`
	Start            maze.CellPosition   `json:"start"`
	End              maze.CellPosition   `json:"end"`
	Seed             int64               `json:"seed"`
	Route            []maze.CellPosition `json:"route"`
	Cells            [][]int             `json:"cells"`
	Render           string              `json:"render"`
	CreatedAt        time.Time           `json:"created_at"`
}

// NewSessionResponse converts a session to its response shape.
func NewSessionResponse(s *maze.Session) *SessionResponse {
	return &SessionResponse{
		ID:               s.ID.String(),
		Rows:             s.Spec.Rows,
		Cols:             s.Spec.Cols,
		ResolutionMeters: s.Spec.ResolutionMeters,
		Bounds:           s.Bounds,
		Entry:            s.Entry,
		Exit:             s.Exit,
		Start:            s.Start,
		End:              s.End,
		Seed:             s.Seed,
		Route:            s.Route(),
		Cells:            s.Cells(),
		Render:           s.String(),
		CreatedAt:        s.CreatedAt,
	}
}
