// Package domain holds the persisted entities of the service.
package domain

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/google/uuid"
)

const minRouteFixes = 2

var (
	// ErrRouteNotFound indicates no live or archived route has the given ID.
	ErrRouteNotFound = errors.New("route not found")
)

// Route is a walk that finished recording, as stored in the archive.
type Route struct {
	ID         uuid.UUID         `bson:"_id" json:"id"`
	Fixes      []maze.Coordinate `bson:"fixes" json:"fixes"`
	FinishedAt time.Time         `bson:"finishedAt" json:"finished_at"`
}

// RouteConfig holds the parameters for creating a Route.
type RouteConfig struct {
	ID    uuid.UUID
	Fixes []maze.Coordinate
}

// NewRoute creates a finished Route after validating its fixes.
func NewRoute(config RouteConfig) (*Route, error) {
	if config.ID == uuid.Nil {
		return nil, errors.New("route id is required")
	}
	if len(config.Fixes) < minRouteFixes {
		return nil, fmt.Errorf("%w: route has %d fixes", maze.ErrInsufficientData, len(config.Fixes))
	}
	for i, fix := range config.Fixes {
		if err := fix.Validate(); err != nil {
			return nil, fmt.Errorf("fix %d: %w", i, err)
		}
	}

	return &Route{
		ID:         config.ID,
		Fixes:      slices.Clone(config.Fixes),
		FinishedAt: time.Now().UTC(),
	}, nil
}

// Finished reports whether the route has been archived.
func (r *Route) Finished() bool {
	return !r.FinishedAt.IsZero()
}
