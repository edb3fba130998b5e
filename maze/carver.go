package maze

import "fmt"

// carveState is the state of the carve loop.
type carveState int

const (
	exploring carveState = iota
	backtracking
	done
)

// carver runs a randomized iterative depth-first search from start to end.
// The stack always holds the current path; cells popped while backtracking
// are returned to Blocked but stay visited.
type carver struct {
	grid       *Grid
	rnd        Random
	end        CellPosition
	stack      []CellPosition
	visited    []bool
	state      carveState
	candidates []CellPosition
}

// Carve marks exactly one simple path from start to end as Passable on a
// freshly zero-filled grid and returns the path cells in order.
//
// The path is chordless: two cells that are not consecutive on it are never
// 4-adjacent, so every interior cell has exactly two Passable neighbours.
// On ErrUnreachableTarget the grid is left as the carve reached it and must
// not be used as a maze.
func Carve(grid *Grid, start, end CellPosition, rnd Random) ([]CellPosition, error) {
	if grid == nil {
		return nil, ErrNilGrid
	}
	if rnd == nil {
		return nil, ErrNilRandom
	}
	if !grid.InBound(start) {
		return nil, fmt.Errorf("%w: start %v on %dx%d grid", ErrOutOfBounds, start, grid.rows, grid.cols)
	}
	if !grid.InBound(end) {
		return nil, fmt.Errorf("%w: end %v on %dx%d grid", ErrOutOfBounds, end, grid.rows, grid.cols)
	}
	if !grid.isZero() {
		return nil, ErrGridNotEmpty
	}

	if start == end {
		grid.set(start, Passable)
		return []CellPosition{start}, nil
	}

	c := newCarver(grid, start, end, rnd)
	if err := c.run(); err != nil {
		return nil, err
	}
	return c.straighten(), nil
}

func newCarver(grid *Grid, start, end CellPosition, rnd Random) *carver {
	return &carver{
		grid:       grid,
		rnd:        rnd,
		end:        end,
		stack:      []CellPosition{start},
		visited:    make([]bool, grid.rows*grid.cols),
		state:      exploring,
		candidates: make([]CellPosition, 0, len(directions)),
	}
}

// run drives the state machine until it reaches done. Each cell is pushed
// at most once, so the loop is bounded by 2*rows*cols transitions.
func (c *carver) run() error {
	for c.state != done {
		switch c.state {
		case exploring:
			current := c.top()
			c.grid.set(current, Passable)
			c.visited[c.grid.index(current)] = true

			if current == c.end {
				c.state = done
				return nil
			}

			if next, ok := c.pick(current); ok {
				c.stack = append(c.stack, next)
			} else {
				c.state = backtracking
			}

		case backtracking:
			c.grid.set(pop(&c.stack), Blocked)
			if len(c.stack) == 0 {
				c.state = done
				return ErrUnreachableTarget
			}
			if c.unvisitedNeighbors(c.top()) {
				c.state = exploring
			}
		}
	}
	return nil
}

func (c *carver) top() CellPosition {
	return c.stack[len(c.stack)-1]
}

// pick chooses uniformly among the in-bound, unvisited neighbours of pos.
func (c *carver) pick(pos CellPosition) (CellPosition, bool) {
	c.candidates = c.candidates[:0]
	for _, d := range directions {
		nbr := pos.add(d)
		if c.grid.InBound(nbr) && !c.visited[c.grid.index(nbr)] {
			c.candidates = append(c.candidates, nbr)
		}
	}
	if len(c.candidates) == 0 {
		return CellPosition{}, false
	}
	return c.candidates[c.rnd.Intn(len(c.candidates))], true
}

func (c *carver) unvisitedNeighbors(pos CellPosition) bool {
	for _, d := range directions {
		nbr := pos.add(d)
		if c.grid.InBound(nbr) && !c.visited[c.grid.index(nbr)] {
			return true
		}
	}
	return false
}

// straighten removes the loops formed where the search path touches itself.
// From each kept cell it jumps to the furthest later path cell adjacent to
// it and blocks the cells skipped in between.
func (c *carver) straighten() []CellPosition {
	path := c.stack
	order := make(map[CellPosition]int, len(path))
	for i, p := range path {
		order[p] = i
	}

	route := make([]CellPosition, 0, len(path))
	route = append(route, path[0])
	for i := 0; i < len(path)-1; {
		next := i + 1
		for _, d := range directions {
			if j, ok := order[path[i].add(d)]; ok && j > next {
				next = j
			}
		}
		for _, skipped := range path[i+1 : next] {
			c.grid.set(skipped, Blocked)
		}
		route = append(route, path[next])
		i = next
	}
	return route
}

// pop removes and returns the last element of a stack of CellPositions.
func pop(s *[]CellPosition) CellPosition {
	lastIndex := len(*s) - 1
	popped := (*s)[lastIndex]
	*s = (*s)[:lastIndex]
	return popped
}
