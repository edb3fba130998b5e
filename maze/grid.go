package maze

import (
	"fmt"
	"strings"
)

const (
	passableGlyph = '#'
	blockedGlyph  = '.'
)

// GridSpec describes the dimensions of a rasterized grid.
type GridSpec struct {
	Rows             int     `json:"rows"`
	Cols             int     `json:"cols"`
	ResolutionMeters float64 `json:"resolution_meters"` // Side of one cell in meters
}

// InBound reports whether p lies within [0,Rows)x[0,Cols).
func (s GridSpec) InBound(p CellPosition) bool {
	return p.Row >= 0 && p.Row < s.Rows && p.Col >= 0 && p.Col < s.Cols
}

// Grid is a rows x cols array of cell states stored row-major.
// Only the carver mutates a Grid; consumers treat it as read-only.
type Grid struct {
	rows  int
	cols  int
	cells []CellState
}

// NewGrid returns a zero-filled (all Blocked) grid.
func NewGrid(rows, cols int) (*Grid, error) {
	if min(rows, cols) <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, rows, cols)
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]CellState, rows*cols),
	}, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBound reports whether p is a cell of the grid.
func (g *Grid) InBound(p CellPosition) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// At returns the state of p. Positions outside the grid read as Blocked.
func (g *Grid) At(p CellPosition) CellState {
	if !g.InBound(p) {
		return Blocked
	}
	return g.cells[g.index(p)]
}

// PassableCount returns the number of Passable cells.
func (g *Grid) PassableCount() int {
	n := 0
	for _, c := range g.cells {
		if c == Passable {
			n++
		}
	}
	return n
}

// PassableNeighbors counts the Passable 4-neighbours of p.
func (g *Grid) PassableNeighbors(p CellPosition) int {
	n := 0
	for _, d := range directions {
		if g.At(p.add(d)) == Passable {
			n++
		}
	}
	return n
}

// Cells returns a row-major copy of the grid as 0 (blocked) / 1 (passable) values.
func (g *Grid) Cells() [][]int {
	out := make([][]int, g.rows)
	for r := range out {
		out[r] = make([]int, g.cols)
		for c := range out[r] {
			out[r][c] = int(g.cells[r*g.cols+c])
		}
	}
	return out
}

// String renders one glyph per cell, row 0 first.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if g.cells[r*g.cols+c] == Passable {
				sb.WriteByte(passableGlyph)
			} else {
				sb.WriteByte(blockedGlyph)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (g *Grid) index(p CellPosition) int {
	return p.Row*g.cols + p.Col
}

func (g *Grid) set(p CellPosition, s CellState) {
	g.cells[g.index(p)] = s
}

func (g *Grid) isZero() bool {
	for _, c := range g.cells {
		if c != Blocked {
			return false
		}
	}
	return true
}
