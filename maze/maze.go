/*
Package maze generates perfect rectangular mazes.

A maze of level L is a (2L+1)x(2L+1) grid. Positions with two odd indices are
unit cells, positions with exactly one odd index are walls between two units,
and the perimeter is border. Generation grows a connected region from (1,1):
the walls touching the region form a frontier, one frontier wall is picked
uniformly at random and either opened into a passage (absorbing the unit on
its far side) or settled as a permanent wall, until the frontier is empty.

The result is a spanning tree over all L*L unit cells.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

const (
	// MaxLevel is the default upper bound on the maze level.
	MaxLevel = 256

	startRow = 1
	startCol = 1
)

var (
	ErrInvalidLevel  = errors.New("maze level must be at least 1")
	ErrLevelTooLarge = errors.New("maze level exceeds the allowed maximum")
	ErrNotGenerated  = errors.New("maze has not been generated")
)

// resolutionOrder is the tie-break used when judging a frontier wall: the
// near side is checked for membership in the region and the far side, across
// the wall, for a unit still waiting to be reached. Up, left, down, right.
var resolutionOrder = [...]struct{ dRow, dCol int }{
	{-1, 0},
	{0, -1},
	{1, 0},
	{0, 1},
}

// neighbors are the four orthogonal offsets used for frontier expansion.
var neighbors = [...]struct{ dRow, dCol int }{
	{-1, 0},
	{1, 0},
	{0, -1},
	{0, 1},
}

// Maze is a single grid owned by the generator until generation completes.
type Maze struct {
	level     int
	grid      [][]CellType
	src       Source
	pending   int // number of PendingWall cells currently on the grid
	generated bool
}

type options struct {
	src      Source
	maxLevel int
}

// Option configures a Maze at construction.
type Option func(*options)

// WithSource sets the random source used to pick frontier walls.
func WithSource(src Source) Option {
	return func(o *options) {
		o.src = src
	}
}

// WithSeed seeds a math/rand source. A zero seed is replaced with the current time.
func WithSeed(seed int64) Option {
	return func(o *options) {
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		o.src = rand.New(rand.NewSource(seed))
	}
}

// WithMaxLevel overrides MaxLevel for this maze. A non-positive value
// disables the bound.
func WithMaxLevel(level int) Option {
	return func(o *options) {
		o.maxLevel = level
	}
}

// New builds the initial grid for the given level. No randomness is involved:
// every cell is derived from its coordinates.
func New(level int, opts ...Option) (*Maze, error) {
	o := &options{maxLevel: MaxLevel}
	for _, opt := range opts {
		opt(o)
	}

	if level < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLevel, level)
	}
	if o.maxLevel > 0 && level > o.maxLevel {
		return nil, fmt.Errorf("%w: got %d, max %d", ErrLevelTooLarge, level, o.maxLevel)
	}

	if o.src == nil {
		o.src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	size := 2*level + 1
	grid := make([][]CellType, size)
	for r := range grid {
		grid[r] = make([]CellType, size)
		for c := range grid[r] {
			grid[r][c] = initialCell(r, c, size)
		}
	}

	return &Maze{
		level: level,
		grid:  grid,
		src:   o.src,
	}, nil
}

// Level returns the configured level L.
func (m *Maze) Level() int {
	return m.level
}

// Size returns the side length of the grid, 2L+1.
func (m *Maze) Size() int {
	return len(m.grid)
}

// Generated reports whether Generate has completed.
func (m *Maze) Generated() bool {
	return m.generated
}

// Cell returns the state at (row, col). Both indices must be in [0, 2L].
func (m *Maze) Cell(row, col int) CellType {
	if !m.inBound(row, col) {
		panic(&InvariantError{Row: row, Col: col, Reason: "cell access out of bounds"})
	}
	return m.grid[row][col]
}

// Grid returns a copy of the grid in row-major order.
func (m *Maze) Grid() [][]CellType {
	out := make([][]CellType, len(m.grid))
	for r, line := range m.grid {
		out[r] = append([]CellType(nil), line...)
	}
	return out
}

// Equal reports whether both mazes hold identical grids.
func (m *Maze) Equal(other *Maze) bool {
	if other == nil || len(m.grid) != len(other.grid) {
		return false
	}
	for r := range m.grid {
		for c := range m.grid[r] {
			if m.grid[r][c] != other.grid[r][c] {
				return false
			}
		}
	}
	return true
}

// Generate turns the initial grid into a finished perfect maze in place.
// Calling it again on a finished maze does nothing.
func (m *Maze) Generate() {
	if m.generated {
		return
	}

	m.seed()
	for m.pending > 0 {
		m.resolveRandomWall()
	}
	m.generated = true
}

// MarkEndpoints designates (1,1) as StartPoint and the opposite corner unit
// as EndPoint. For level 1 both are the same cell and it stays StartPoint.
func (m *Maze) MarkEndpoints() error {
	if !m.generated {
		return ErrNotGenerated
	}
	last := m.Size() - 2
	m.set(last, last, EndPoint)
	m.set(startRow, startCol, StartPoint)
	return nil
}

// seed starts the region at (1,1) and opens its frontier.
func (m *Maze) seed() {
	m.set(startRow, startCol, DetermineUnit)
	m.expandFrontier(startRow, startCol)
}

// expandFrontier promotes every plain Wall around a newly absorbed cell to
// PendingWall. Any other neighbor is left untouched.
func (m *Maze) expandFrontier(row, col int) {
	for _, d := range neighbors {
		r, c := row+d.dRow, col+d.dCol
		if m.grid[r][c] == Wall {
			m.set(r, c, PendingWall)
		}
	}
}

// judgeWall settles a single frontier wall. The first direction whose near
// side is in the region and whose far side is unreached opens the wall and
// absorbs the far unit; when none matches the wall becomes permanent.
func (m *Maze) judgeWall(row, col int) {
	if m.grid[row][col] != PendingWall {
		panic(&InvariantError{Row: row, Col: col, Cell: m.grid[row][col], Reason: "judging a cell that is not a pending wall"})
	}

	for _, d := range resolutionOrder {
		near := m.grid[row+d.dRow][col+d.dCol]
		farRow, farCol := row-d.dRow, col-d.dCol
		if near.absorbed() && m.grid[farRow][farCol] == PendingUnit {
			m.set(row, col, ConnectedWall)
			m.set(farRow, farCol, DetermineUnit)
			m.expandFrontier(farRow, farCol)
			return
		}
	}

	m.set(row, col, Wall)
}

// resolveRandomWall draws k uniformly from [0, pending) and judges the k-th
// pending wall in row-major order.
func (m *Maze) resolveRandomWall() {
	if m.pending == 0 {
		panic(&InvariantError{Row: -1, Col: -1, Reason: "no pending wall to resolve"})
	}

	k := m.src.Intn(m.pending)
	if k < 0 || k >= m.pending {
		panic(&InvariantError{Row: -1, Col: -1, Reason: fmt.Sprintf("drawn index %d outside [0,%d)", k, m.pending)})
	}

	seen := 0
	for r, line := range m.grid {
		for c, cell := range line {
			if cell != PendingWall {
				continue
			}
			if seen == k {
				m.judgeWall(r, c)
				return
			}
			seen++
		}
	}

	panic(&InvariantError{Row: -1, Col: -1, Reason: "pending wall count out of sync with grid"})
}

// set mutates a single cell, enforcing the parity invariant and keeping the
// pending wall count current.
func (m *Maze) set(row, col int, t CellType) {
	if !m.inBound(row, col) {
		panic(&InvariantError{Row: row, Col: col, Cell: t, Reason: "write out of bounds"})
	}
	if !roleOf(row, col, m.Size()).legal(t) {
		panic(&InvariantError{Row: row, Col: col, Cell: t, Reason: "state not allowed at this position"})
	}

	if m.grid[row][col] == PendingWall {
		m.pending--
	}
	if t == PendingWall {
		m.pending++
	}
	m.grid[row][col] = t
}

func (m *Maze) inBound(row, col int) bool {
	return row >= 0 && row < len(m.grid) && col >= 0 && col < len(m.grid)
}
