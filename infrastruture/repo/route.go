package repo

import (
	"context"
	"errors"
	"time"

	dmn "github.com/HeartlessDevil29/Labirint/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RouteRepo handles the persistence of finished routes.
type RouteRepo struct {
	collection *mongo.Collection
}

// NewRouteRepo creates a new RouteRepo with the given MongoDB client, database name, and collection name.
func NewRouteRepo(client *mongo.Client, dbName, collectionName string) *RouteRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RouteRepo{
		collection: collection,
	}
}

// Save inserts or updates a route in the repository.
// Saving a route twice overwrites its fixes and finish time.
func (r *RouteRepo) Save(route *dmn.Route) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": route.ID}
	update := bson.M{
		"$set": bson.M{
			"fixes":      route.Fixes,
			"finishedAt": route.FinishedAt,
			"updatedAt":  time.Now(),
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return errors.New("unexpected error: " + err.Error())
	}

	return nil
}

// ByID retrieves a route by its ID.
// Returns dmn.ErrRouteNotFound if the route is not archived.
func (r *RouteRepo) ByID(id uuid.UUID) (*dmn.Route, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	filter := bson.M{"_id": id}
	var route dmn.Route
	if err := r.collection.FindOne(ctx, filter).Decode(&route); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrRouteNotFound
		}
		return nil, errors.New("unexpected error: " + err.Error())
	}
	return &route, nil
}
