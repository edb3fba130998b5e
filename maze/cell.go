package maze

// CellState is the binary state of a grid cell.
type CellState uint8

const (
	Blocked  CellState = 0 // Blocked cells are not part of the path.
	Passable CellState = 1 // Passable cells belong to the carved path.
)

// CellPosition represents the position of a cell in the grid.
type CellPosition struct {
	Row int `json:"row"` // Row index, 0 at the minimum latitude
	Col int `json:"col"` // Column index, 0 at the minimum longitude
}

// directions are the 4-neighbour offsets in enumeration order: north, south, west, east.
var directions = [4]CellPosition{
	{Row: -1, Col: 0},
	{Row: 1, Col: 0},
	{Row: 0, Col: -1},
	{Row: 0, Col: 1},
}

func (p CellPosition) add(d CellPosition) CellPosition {
	return CellPosition{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

// Adjacent reports whether q is one of p's four axis-aligned neighbours.
func (p CellPosition) Adjacent(q CellPosition) bool {
	dr, dc := p.Row-q.Row, p.Col-q.Col
	return dr*dr+dc*dc == 1
}
