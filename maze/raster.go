package maze

import (
	"fmt"
	"math"
)

// Raster is a GridSpec anchored to the bounding box it was derived from.
type Raster struct {
	Bounds BoundingBox
	Spec   GridSpec
}

// Rasterize derives the bounding box of path and a grid of cells of
// resolutionMeters per side covering it.
//
// A zero-span axis is not an error: it floors to a single row or column.
func Rasterize(path []Coordinate, resolutionMeters float64) (*Raster, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientData, len(path))
	}
	if !(resolutionMeters > 0) || math.IsInf(resolutionMeters, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidResolution, resolutionMeters)
	}
	for i, p := range path {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("path point %d: %w", i, err)
		}
	}

	bounds, err := NewBoundingBox(path)
	if err != nil {
		return nil, err
	}

	return &Raster{
		Bounds: bounds,
		Spec: GridSpec{
			Rows:             cellsAlong(bounds.LatSpan(), resolutionMeters),
			Cols:             cellsAlong(bounds.LonSpan(), resolutionMeters),
			ResolutionMeters: resolutionMeters,
		},
	}, nil
}

// cellsAlong returns max(1, ceil(span in meters / resolution)).
func cellsAlong(spanDegrees, resolutionMeters float64) int {
	n := math.Ceil(spanDegrees * MetersPerDegree / resolutionMeters)
	if n < 1 {
		return 1
	}
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// Project maps c to the cell containing it, clamping to the grid edges.
func (r *Raster) Project(c Coordinate) CellPosition {
	return CellPosition{
		Row: r.offsetToIndex(c.Lat-r.Bounds.MinLat, r.Spec.Rows),
		Col: r.offsetToIndex(c.Lon-r.Bounds.MinLon, r.Spec.Cols),
	}
}

func (r *Raster) offsetToIndex(offsetDegrees float64, n int) int {
	i := math.Floor(offsetDegrees * MetersPerDegree / r.Spec.ResolutionMeters)
	switch {
	case math.IsNaN(i) || i < 0:
		return 0
	case i > float64(n-1):
		return n - 1
	default:
		return int(i)
	}
}

// Locate projects c like Project but rejects coordinates that fall outside
// the bounding box instead of clamping them.
func (r *Raster) Locate(c Coordinate) (CellPosition, error) {
	if err := c.Validate(); err != nil {
		return CellPosition{}, err
	}
	if !r.Bounds.Contains(c) {
		return CellPosition{}, fmt.Errorf("%w: (%v, %v) is outside %s", ErrOutOfBounds, c.Lat, c.Lon, r.Bounds)
	}
	return r.Project(c), nil
}
