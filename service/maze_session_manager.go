package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/HeartlessDevil29/Labirint/maze"
	"github.com/HeartlessDevil29/Labirint/service/i"
	"github.com/google/uuid"
)

// Generation outcomes reported to metrics.
const (
	outcomeSuccess           = "success"
	outcomeInsufficientData  = "insufficient_data"
	outcomeOutOfBounds       = "out_of_bounds"
	outcomeUnreachableTarget = "unreachable_target"
	outcomeInvalidInput      = "invalid_input"
	outcomeCanceled          = "canceled"
)

var (
	ErrNoSession       = errors.New("no maze has been generated yet")
	ErrSessionNotFound = errors.New("maze session not found")
)

// MazeSessionManager generates maze sessions and holds the current one.
// A newer request replaces the current session wholesale; a request that
// started earlier never replaces one that started later.
type MazeSessionManager struct {
	current          *maze.Session
	issued           uint64 // Tickets handed to Generate calls
	installed        uint64 // Ticket of the current session
	resolutionMeters float64
	maxCells         int
	metrics          i.MazeMetrics
	logger           i.Logger
	sync.RWMutex
}

// MazeConfig holds the dependencies and defaults of a MazeSessionManager.
type MazeConfig struct {
	ResolutionMeters float64 // Default cell size; zero means maze.DefaultResolutionMeters
	MaxCells         int     // Cell budget per grid; zero means maze.DefaultMaxCells
	Metrics          i.MazeMetrics
	Logger           i.Logger
}

// NewMazeSessionManager creates a MazeSessionManager from c.
func NewMazeSessionManager(c *MazeConfig) (*MazeSessionManager, error) {
	if c == nil || c.Logger == nil {
		return nil, errors.New("maze session manager requires a logger")
	}
	if c.ResolutionMeters < 0 {
		return nil, fmt.Errorf("%w: got %v", maze.ErrInvalidResolution, c.ResolutionMeters)
	}

	resolution := c.ResolutionMeters
	if resolution == 0 {
		resolution = maze.DefaultResolutionMeters
	}
	maxCells := c.MaxCells
	if maxCells <= 0 {
		maxCells = maze.DefaultMaxCells
	}

	return &MazeSessionManager{
		resolutionMeters: resolution,
		maxCells:         maxCells,
		metrics:          c.Metrics,
		logger:           c.Logger,
	}, nil
}

// Generate builds a new maze session from req and makes it current.
// On failure the current session is left untouched.
func (m *MazeSessionManager) Generate(ctx context.Context, req i.GenerateRequest) (*maze.Session, error) {
	if err := ctx.Err(); err != nil {
		m.observe(outcomeCanceled, maze.GridSpec{}, 0)
		return nil, err
	}

	seed := maze.NewSeed()
	if req.Seed != nil {
		seed = *req.Seed
	}
	resolution := req.ResolutionMeters
	if resolution == 0 {
		resolution = m.resolutionMeters
	}

	m.Lock()
	m.issued++
	ticket := m.issued
	m.Unlock()

	begin := time.Now()
	session, err := maze.NewSession(maze.SessionRequest{
		Path:             req.Path,
		Entry:            req.Entry,
		Exit:             req.Exit,
		ResolutionMeters: resolution,
		MaxCells:         m.maxCells,
		Seed:             seed,
	})
	elapsed := time.Since(begin)
	if err != nil {
		m.observe(generationOutcome(err), maze.GridSpec{}, elapsed)
		m.logger.Warning(fmt.Sprintf("maze generation failed for %d fixes: %s", len(req.Path), err))
		return nil, err
	}
	m.observe(outcomeSuccess, session.Spec, elapsed)

	m.Lock()
	if ticket > m.installed {
		m.current = session
		m.installed = ticket
	} else {
		m.logger.Info(fmt.Sprintf("maze %s superseded by a newer request", session.ID))
	}
	m.Unlock()

	m.logger.Info(fmt.Sprintf("generated maze %s: %dx%d grid, %d path cells, seed %d, in %s",
		session.ID, session.Spec.Rows, session.Spec.Cols, len(session.Route()), session.Seed, elapsed))
	return session, nil
}

// Current returns the current session.
func (m *MazeSessionManager) Current() (*maze.Session, error) {
	m.RLock()
	defer m.RUnlock()
	if m.current == nil {
		return nil, ErrNoSession
	}
	return m.current, nil
}

// ByID returns the current session if its ID is id.
func (m *MazeSessionManager) ByID(id uuid.UUID) (*maze.Session, error) {
	m.RLock()
	defer m.RUnlock()
	if m.current == nil || m.current.ID != id {
		return nil, ErrSessionNotFound
	}
	return m.current, nil
}

func (m *MazeSessionManager) observe(outcome string, spec maze.GridSpec, elapsed time.Duration) {
	if m.metrics != nil {
		m.metrics.ObserveGeneration(outcome, spec, elapsed)
	}
}

func generationOutcome(err error) string {
	switch {
	case errors.Is(err, maze.ErrInsufficientData):
		return outcomeInsufficientData
	case errors.Is(err, maze.ErrOutOfBounds):
		return outcomeOutOfBounds
	case errors.Is(err, maze.ErrUnreachableTarget):
		return outcomeUnreachableTarget
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return outcomeCanceled
	default:
		return outcomeInvalidInput
	}
}
