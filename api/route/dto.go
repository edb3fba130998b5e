// Package routeapi provides the request and response shapes of the route recording endpoints.
package routeapi

import (
	"time"

	dmn "github.com/HeartlessDevil29/Labirint/domain"
	"github.com/HeartlessDevil29/Labirint/maze"
)

// StartResponse carries a new route's ID and its write token.
type StartResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// AppendRequest represents a batch of fixes for a recording route.
type AppendRequest struct {
	Fixes []maze.Coordinate `json:"fixes" binding:"required"`
}

// AppendResponse reports how many fixes the route has buffered.
type AppendResponse struct {
	Count int64 `json:"count"`
}

// MazeRequest represents a request to build a maze from a route.
type MazeRequest struct {
	Entry *maze.Coordinate `json:"entry" binding:"required"`
	Exit  *maze.Coordinate `json:"exit" binding:"required"`
	Seed  *int64           `json:"seed"`
}

// RouteResponse represents a live or archived route.
type RouteResponse struct {
	ID         string            `json:"id"`
	Fixes      []maze.Coordinate `json:"fixes"`
	Finished   bool              `json:"finished"`
	FinishedAt *time.Time        `json:"finished_at,omitempty"`
}

// NewRouteResponse converts a route to its response shape.
func NewRouteResponse(r *dmn.Route) *RouteResponse {
	response := &RouteResponse{
		ID:       r.ID.String(),
		Fixes:    r.Fixes,
		Finished: r.Finished(),
	}
	if response.Finished {
		finishedAt := r.FinishedAt
		response.FinishedAt = &finishedAt
	}
	return response
}
