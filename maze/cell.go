package maze

import "fmt"

// CellType is the state of a single grid position.
type CellType uint8

// Cell states. The zero value is Border.
const (
	Border        CellType = iota // Border marks the immutable perimeter.
	Wall                          // Wall is an unresolved or permanently blocking wall.
	PendingUnit                   // PendingUnit is a unit cell not yet reached by the region.
	PendingWall                   // PendingWall is a wall on the frontier awaiting a decision.
	DetermineUnit                 // DetermineUnit is a unit cell absorbed into the region.
	ConnectedWall                 // ConnectedWall is a wall opened into a passage.
	StartPoint                    // StartPoint marks the entrance.
	EndPoint                      // EndPoint marks the exit.
	Path                          // Path marks a solution step computed elsewhere.
)

var cellNames = [...]string{
	Border:        "Border",
	Wall:          "Wall",
	PendingUnit:   "PendingUnit",
	PendingWall:   "PendingWall",
	DetermineUnit: "DetermineUnit",
	ConnectedWall: "ConnectedWall",
	StartPoint:    "StartPoint",
	EndPoint:      "EndPoint",
	Path:          "Path",
}

// String returns the name of the cell state.
func (t CellType) String() string {
	if int(t) < len(cellNames) {
		return cellNames[t]
	}
	return fmt.Sprintf("CellType(%d)", uint8(t))
}

// Rune returns the character used for the cell in the text form of a maze.
func (t CellType) Rune() rune {
	switch t {
	case Border, Wall:
		return '#'
	case PendingUnit:
		return '?'
	case PendingWall:
		return '+'
	case DetermineUnit, ConnectedWall:
		return ' '
	case StartPoint:
		return 'S'
	case EndPoint:
		return 'E'
	case Path:
		return '.'
	default:
		return '!'
	}
}

// absorbed reports whether the cell belongs to the connected region.
func (t CellType) absorbed() bool {
	return t == DetermineUnit || t == StartPoint
}

// role is the structural role of a position, fixed by its coordinates.
type role uint8

const (
	borderRole role = iota
	unitRole        // odd row, odd col
	edgeRole        // exactly one odd index, between two units
	pillarRole      // even row, even col inside the border
)

// roleOf derives the role of (row, col) in a grid of the given side length.
func roleOf(row, col, size int) role {
	last := size - 1
	switch {
	case row == 0 || col == 0 || row == last || col == last:
		return borderRole
	case row%2 == 1 && col%2 == 1:
		return unitRole
	case row%2 == 1 || col%2 == 1:
		return edgeRole
	default:
		return pillarRole
	}
}

// initialCell is the state a position starts in before generation.
func initialCell(row, col, size int) CellType {
	switch roleOf(row, col, size) {
	case borderRole:
		return Border
	case unitRole:
		return PendingUnit
	default:
		return Wall
	}
}

// legal reports whether t may occupy a position with role r.
// Pillars never take part in resolution and stay Wall forever.
func (r role) legal(t CellType) bool {
	switch r {
	case borderRole:
		return t == Border
	case unitRole:
		switch t {
		case PendingUnit, DetermineUnit, StartPoint, EndPoint, Path:
			return true
		}
	case edgeRole:
		switch t {
		case Wall, PendingWall, ConnectedWall, Path:
			return true
		}
	case pillarRole:
		return t == Wall
	}
	return false
}

// InvariantError describes a violated grid invariant. Generation panics with
// it because it can only be caused by a defect in the generator itself.
type InvariantError struct {
	Row, Col int
	Cell     CellType
	Reason   string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("maze invariant violated at (%d,%d) [%s]: %s", e.Row, e.Col, e.Cell, e.Reason)
}
