package maze

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// SessionRequest holds the inputs of one maze-generation request.
type SessionRequest struct {
	Path             []Coordinate // Recorded fixes, in order
	Entry            Coordinate   // Fix the maze starts from
	Exit             Coordinate   // Fix the maze ends at
	ResolutionMeters float64      // Cell side in meters; zero means DefaultResolutionMeters
	MaxCells         int          // Upper bound on rows*cols; zero means DefaultMaxCells
	Seed             int64        // Seed of the carve's random source
}

// Session is the result of one maze-generation request. It is built once
// by NewSession and never modified afterwards; slice views are returned as copies.
type Session struct {
	ID        uuid.UUID
	Entry     Coordinate
	Exit      Coordinate
	Bounds    BoundingBox
	Spec      GridSpec
	Start     CellPosition   // Cell of Entry
	End       CellPosition // Cell of Exit
	Seed      int64
	CreatedAt time.Time

	path  []Coordinate
	route []CellPosition
	grid  *Grid
}

// NewSession rasterizes the request's path, projects entry and exit, and
// carves a maze on a fresh grid. Validation failures are reported before
// any grid is allocated.
func NewSession(req SessionRequest) (*Session, error) {
	resolution := req.ResolutionMeters
	if resolution == 0 {
		resolution = DefaultResolutionMeters
	}
	maxCells := req.MaxCells
	if maxCells <= 0 {
		maxCells = DefaultMaxCells
	}

	raster, err := Rasterize(req.Path, resolution)
	if err != nil {
		return nil, err
	}
	if raster.Spec.Rows > maxCells/raster.Spec.Cols {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrGridTooLarge, raster.Spec.Rows, raster.Spec.Cols, maxCells)
	}

	start, err := raster.Locate(req.Entry)
	if err != nil {
		return nil, fmt.Errorf("entry: %w", err)
	}
	end, err := raster.Locate(req.Exit)
	if err != nil {
		return nil, fmt.Errorf("exit: %w", err)
	}

	grid, err := NewGrid(raster.Spec.Rows, raster.Spec.Cols)
	if err != nil {
		return nil, err
	}
	route, err := Carve(grid, start, end, NewRandom(req.Seed))
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:        uuid.New(),
		Entry:     req.Entry,
		Exit:      req.Exit,
		Bounds:    raster.Bounds,
		Spec:      raster.Spec,
		Start:     start,
		End:       end,
		Seed:      req.Seed,
		CreatedAt: time.Now().UTC(),
		path:      slices.Clone(req.Path),
		route:     route,
		grid:      grid,
	}, nil
}

// Path returns a copy of the recorded fixes the maze was built from.
func (s *Session) Path() []Coordinate {
	return slices.Clone(s.path)
}

// Route returns a copy of the carved path from Start to End.
func (s *Session) Route() []CellPosition {
	return slices.Clone(s.route)
}

// Grid returns the carved grid. It is read-only.
func (s *Session) Grid() *Grid {
	return s.grid
}

// Cells returns a row-major copy of the carved grid as 0/1 values.
func (s *Session) Cells() [][]int {
	return s.grid.Cells()
}

// String renders the carved grid one glyph per cell.
func (s *Session) String() string {
	return s.grid.String()
}
