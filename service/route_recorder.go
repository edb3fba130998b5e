package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/HeartlessDevil29/Labirint/domain"
	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/HeartlessDevil29/Labirint/service/i"
	"github.com/google/uuid"
)

const (
	defaultRouteTokenTTL     = 24 * time.Hour
	defaultMaxFixesPerAppend = 10000
	minFixesToFinish         = 2
)

var (
	ErrNoFixes       = errors.New("no fixes provided")
	ErrTooManyFixes  = errors.New("too many fixes in one request")
	ErrRouteFinished = errors.New("route has already finished recording")

	// ErrRouteArchiving is returned by Finish while another Finish is still archiving the route.
	ErrRouteArchiving = fmt.Errorf("%w: archive in progress", ErrRouteFinished)
)

// RecorderConfig holds the dependencies and options of a RouteRecorder.
type RecorderConfig struct {
	Buffer            i.FixBuffer
	Repo              i.RouteRepo
	Tokenizer         i.Tokenizer
	Mazes             i.MazeSessionManager
	Metrics           i.MazeMetrics
	Logger            i.Logger
	TokenTTL          time.Duration // Lifetime of route tokens; zero means 24h
	MaxFixesPerAppend int           // Zero means 10000
}

// RouteRecorder is the service side of the path recorder: it buffers live
// fixes, archives finished routes, and turns routes into mazes.
type RouteRecorder struct {
	buffer    i.FixBuffer
	repo      i.RouteRepo
	tokenizer i.Tokenizer
	mazes     i.MazeSessionManager
	metrics   i.MazeMetrics
	logger    i.Logger
	tokenTTL  time.Duration
	maxFixes  int
}

// NewRouteRecorder creates a RouteRecorder from c.
func NewRouteRecorder(c *RecorderConfig) (*RouteRecorder, error) {
	if c == nil {
		return nil, errors.New("route recorder config is required")
	}
	if c.Buffer == nil || c.Repo == nil || c.Tokenizer == nil || c.Mazes == nil || c.Logger == nil {
		return nil, errors.New("route recorder requires buffer, repo, tokenizer, maze manager and logger")
	}

	tokenTTL := c.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultRouteTokenTTL
	}
	maxFixes := c.MaxFixesPerAppend
	if maxFixes <= 0 {
		maxFixes = defaultMaxFixesPerAppend
	}

	return &RouteRecorder{
		buffer:    c.Buffer,
		repo:      c.Repo,
		tokenizer: c.Tokenizer,
		mazes:     c.Mazes,
		metrics:   c.Metrics,
		logger:    c.Logger,
		tokenTTL:  tokenTTL,
		maxFixes:  maxFixes,
	}, nil
}

// Start opens a new route and returns its ID and write token.
func (r *RouteRecorder) Start(ctx context.Context) (uuid.UUID, string, error) {
	id := uuid.New()
	token, err := r.tokenizer.Generate(map[string]interface{}{
		i.RouteIDClaim: id.String(),
	}, r.tokenTTL)
	if err != nil {
		r.logger.Error(fmt.Sprintf("signing token for route %s: %s", id, err))
		return uuid.Nil, "", err
	}

	r.logger.Info(fmt.Sprintf("started route %s", id))
	return id, token, nil
}

// Append validates fixes and adds them to the live buffer of route id.
func (r *RouteRecorder) Append(ctx context.Context, id uuid.UUID, fixes []maze.Coordinate) (int64, error) {
	if len(fixes) == 0 {
		return 0, ErrNoFixes
	}
	if len(fixes) > r.maxFixes {
		return 0, fmt.Errorf("%w: got %d, limit %d", ErrTooManyFixes, len(fixes), r.maxFixes)
	}
	for n, fix := range fixes {
		if err := fix.Validate(); err != nil {
			return 0, fmt.Errorf("fix %d: %w", n, err)
		}
	}

	if _, err := r.repo.ByID(id); err == nil {
		return 0, ErrRouteFinished
	} else if !errors.Is(err, dmn.ErrRouteNotFound) {
		r.logger.Error(fmt.Sprintf("looking up route %s: %s", id, err))
		return 0, err
	}

	count, err := r.buffer.Append(ctx, id, fixes)
	if errors.Is(err, i.ErrBufferClosed) {
		return 0, ErrRouteFinished
	}
	if err != nil {
		r.logger.Error(fmt.Sprintf("buffering %d fixes for route %s: %s", len(fixes), id, err))
		return 0, err
	}
	if r.metrics != nil {
		r.metrics.AddFixes(len(fixes))
	}

	return count, nil
}

// Finish drains the live buffer of route id into the archive. Finishing an
// archived route returns it unchanged.
func (r *RouteRecorder) Finish(ctx context.Context, id uuid.UUID) (*dmn.Route, error) {
	if route, err := r.repo.ByID(id); err == nil {
		return route, nil
	} else if !errors.Is(err, dmn.ErrRouteNotFound) {
		return nil, err
	}

	fixes, err := r.buffer.Drain(ctx, id, minFixesToFinish)
	if errors.Is(err, i.ErrBufferClosed) {
		// Another Finish drained the route first.
		return r.archived(id, ErrRouteArchiving)
	}
	if err != nil {
		r.logger.Error(fmt.Sprintf("draining route %s: %s", id, err))
		return nil, err
	}
	if len(fixes) == 0 {
		return r.archived(id, dmn.ErrRouteNotFound)
	}
	if len(fixes) < minFixesToFinish {
		return nil, fmt.Errorf("%w: route %s has %d fixes", maze.ErrInsufficientData, id, len(fixes))
	}

	route, err := dmn.NewRoute(dmn.RouteConfig{ID: id, Fixes: fixes})
	if err == nil {
		err = r.repo.Save(route)
	}
	if err != nil {
		r.logger.Error(fmt.Sprintf("archiving route %s: %s", id, err))
		if rerr := r.buffer.Restore(ctx, id, fixes); rerr != nil {
			r.logger.Error(fmt.Sprintf("restoring %d fixes of route %s: %s", len(fixes), id, rerr))
		}
		return nil, err
	}

	r.logger.Info(fmt.Sprintf("archived route %s with %d fixes", id, len(route.Fixes)))
	return route, nil
}

// archived returns route id from the repo, or missing if it is not there.
func (r *RouteRecorder) archived(id uuid.UUID, missing error) (*dmn.Route, error) {
	route, err := r.repo.ByID(id)
	if errors.Is(err, dmn.ErrRouteNotFound) {
		return nil, missing
	}
	return route, err
}

// Route returns the archived route id, or its live fixes if it is still recording.
func (r *RouteRecorder) Route(ctx context.Context, id uuid.UUID) (*dmn.Route, error) {
	route, err := r.repo.ByID(id)
	if err == nil {
		return route, nil
	}
	if !errors.Is(err, dmn.ErrRouteNotFound) {
		return nil, err
	}

	fixes, err := r.buffer.Fixes(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(fixes) == 0 {
		return nil, dmn.ErrRouteNotFound
	}
	return &dmn.Route{ID: id, Fixes: fixes}, nil
}

// GenerateMaze builds a maze from the fixes of route id.
func (r *RouteRecorder) GenerateMaze(ctx context.Context, id uuid.UUID, entry, exit maze.Coordinate, seed *int64) (*maze.Session, error) {
	route, err := r.Route(ctx, id)
	if err != nil {
		return nil, err
	}

	return r.mazes.Generate(ctx, i.GenerateRequest{
		Path:  route.Fixes,
		Entry: entry,
		Exit:  exit,
		Seed:  seed,
	})
}
