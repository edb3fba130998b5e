package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	dmn "github.com/HeartlessDevil29/Labirint/domain"
	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/HeartlessDevil29/Labirint/service/i"
	"github.com/google/uuid"
)

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}

type generation struct {
	outcome string
	spec    maze.GridSpec
}

type fakeMetrics struct {
	sync.Mutex
	generations []generation
	fixes       int
}

func (f *fakeMetrics) ObserveGeneration(outcome string, spec maze.GridSpec, _ time.Duration) {
	f.Lock()
	defer f.Unlock()
	f.generations = append(f.generations, generation{outcome: outcome, spec: spec})
}

func (f *fakeMetrics) AddFixes(n int) {
	f.Lock()
	defer f.Unlock()
	f.fixes += n
}

type memoryBuffer struct {
	sync.Mutex
	fixes     map[uuid.UUID][]maze.Coordinate
	closed    map[uuid.UUID]bool
	appendErr error
}

func newMemoryBuffer() *memoryBuffer {
	return &memoryBuffer{
		fixes:  make(map[uuid.UUID][]maze.Coordinate),
		closed: make(map[uuid.UUID]bool),
	}
}

func (b *memoryBuffer) Append(_ context.Context, id uuid.UUID, fixes []maze.Coordinate) (int64, error) {
	b.Lock()
	defer b.Unlock()
	if b.appendErr != nil {
		return 0, b.appendErr
	}
	if b.closed[id] {
		return 0, i.ErrBufferClosed
	}
	b.fixes[id] = append(b.fixes[id], fixes...)
	return int64(len(b.fixes[id])), nil
}

func (b *memoryBuffer) Fixes(_ context.Context, id uuid.UUID) ([]maze.Coordinate, error) {
	b.Lock()
	defer b.Unlock()
	return slices.Clone(b.fixes[id]), nil
}

func (b *memoryBuffer) Drain(_ context.Context, id uuid.UUID, minFixes int) ([]maze.Coordinate, error) {
	b.Lock()
	defer b.Unlock()
	if b.closed[id] {
		return nil, i.ErrBufferClosed
	}
	fixes := b.fixes[id]
	if len(fixes) >= minFixes {
		delete(b.fixes, id)
		b.closed[id] = true
	}
	return slices.Clone(fixes), nil
}

func (b *memoryBuffer) Restore(_ context.Context, id uuid.UUID, fixes []maze.Coordinate) error {
	b.Lock()
	defer b.Unlock()
	delete(b.closed, id)
	b.fixes[id] = append(b.fixes[id], fixes...)
	return nil
}

type memoryRepo struct {
	sync.Mutex
	routes  map[uuid.UUID]*dmn.Route
	saveErr error
	byIDErr error
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{routes: make(map[uuid.UUID]*dmn.Route)}
}

func (r *memoryRepo) Save(route *dmn.Route) error {
	r.Lock()
	defer r.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.routes[route.ID] = route
	return nil
}

func (r *memoryRepo) ByID(id uuid.UUID) (*dmn.Route, error) {
	r.Lock()
	defer r.Unlock()
	if r.byIDErr != nil {
		return nil, r.byIDErr
	}
	route, ok := r.routes[id]
	if !ok {
		return nil, dmn.ErrRouteNotFound
	}
	return route, nil
}

type fakeTokenizer struct {
	err error
}

func (f *fakeTokenizer) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("token:%v:%s", claims["routeID"], expTime), nil
}

func (f *fakeTokenizer) Decode(token string) (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}
