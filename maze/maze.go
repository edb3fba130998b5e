/*
Package maze turns a walked route into a grid maze.

A recorded path of geographic fixes is rasterized into a uniform grid of
square cells (see Rasterize), the user's entry and exit fixes are projected
onto that grid, and a single path between the two cells is carved with a
randomized, backtracking depth-first search (see Carve).

Distances use a flat-earth approximation: one degree is MetersPerDegree
meters for latitude and longitude alike. Grids are therefore only faithful
for short, low-latitude routes.

NewSession bundles the whole pipeline for one request and returns an
immutable Session; a new request always builds a new Session.
*/
package maze

const (
	// DefaultResolutionMeters is the physical size of one cell side.
	DefaultResolutionMeters = 1.0

	// DefaultMaxCells caps rows*cols for a single session.
	DefaultMaxCells = 4_000_000
)
