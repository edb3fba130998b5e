package maze

import (
	"fmt"
	"math"
)

const (
	// MetersPerDegree converts one degree of latitude to meters. The same
	// factor is used for longitude, without a cos(latitude) correction.
	MetersPerDegree = 111000.0

	// boundsTolerance is the slack, in degrees, allowed when checking
	// whether a coordinate lies on the edge of a bounding box.
	boundsTolerance = 1e-9
)

// Coordinate is a geographic fix in degrees.
type Coordinate struct {
	Lat float64 `json:"latitude" bson:"lat"`
	Lon float64 `json:"longitude" bson:"lon"`
}

// Validate reports an error if the coordinate is not a finite position
// within [-90, 90] latitude and [-180, 180] longitude.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return fmt.Errorf("%w: (%v, %v) is not finite", ErrInvalidCoordinate, c.Lat, c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: (%v, %v) is out of range", ErrInvalidCoordinate, c.Lat, c.Lon)
	}
	return nil
}

// BoundingBox is the min/max latitude and longitude of a set of fixes.
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// NewBoundingBox returns the smallest box containing every point.
func NewBoundingBox(points []Coordinate) (BoundingBox, error) {
	if len(points) == 0 {
		return BoundingBox{}, ErrInsufficientData
	}

	box := BoundingBox{
		MinLat: points[0].Lat,
		MaxLat: points[0].Lat,
		MinLon: points[0].Lon,
		MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		box.MinLat = min(box.MinLat, p.Lat)
		box.MaxLat = max(box.MaxLat, p.Lat)
		box.MinLon = min(box.MinLon, p.Lon)
		box.MaxLon = max(box.MaxLon, p.Lon)
	}
	return box, nil
}

// LatSpan returns the latitude extent in degrees.
func (b BoundingBox) LatSpan() float64 {
	return b.MaxLat - b.MinLat
}

// LonSpan returns the longitude extent in degrees.
func (b BoundingBox) LonSpan() float64 {
	return b.MaxLon - b.MinLon
}

// Contains reports whether c lies inside the box, edges included.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.MinLat-boundsTolerance && c.Lat <= b.MaxLat+boundsTolerance &&
		c.Lon >= b.MinLon-boundsTolerance && c.Lon <= b.MaxLon+boundsTolerance
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("[%v..%v]x[%v..%v]", b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
}
