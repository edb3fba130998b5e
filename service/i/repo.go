package i

import (
	dmn "github.com/HeartlessDevil29/Labirint/domain"
	"github.com/google/uuid"
)

// RouteRepo defines the interface for the archive of finished routes.
type RouteRepo interface {
	// Save inserts or updates a route in the repository.
	Save(route *dmn.Route) error

	// ByID retrieves a route by its unique ID.
	// Returns dmn.ErrRouteNotFound if no route has that ID.
	ByID(id uuid.UUID) (*dmn.Route, error)
}
