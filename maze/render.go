package maze

import (
	"errors"
	"fmt"
	"strings"
)

var ErrMalformedRows = errors.New("malformed maze rows")

// Rows renders the grid as one string per row, one rune per cell.
func (m *Maze) Rows() []string {
	rows := make([]string, len(m.grid))
	var b strings.Builder
	for r, line := range m.grid {
		b.Reset()
		for _, cell := range line {
			b.WriteRune(cell.Rune())
		}
		rows[r] = b.String()
	}
	return rows
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	return strings.Join(m.Rows(), "\n") + "\n"
}

// Parse rebuilds a maze from rows produced by Rows. Open units are read back
// as DetermineUnit. The returned maze counts as generated when no pending
// cells remain.
func Parse(rows []string, opts ...Option) (*Maze, error) {
	size := len(rows)
	if size < 3 || size%2 == 0 {
		return nil, fmt.Errorf("%w: %d rows", ErrMalformedRows, size)
	}

	m, err := New(size/2, opts...)
	if err != nil {
		return nil, err
	}

	unreached := 0
	for r, row := range rows {
		runes := []rune(row)
		if len(runes) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedRows, r, len(runes), size)
		}
		for c, ch := range runes {
			t, ok := parseRune(ch, roleOf(r, c, size))
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrMalformedRows, ch, r, c)
			}
			if t == PendingUnit {
				unreached++
			}
			m.set(r, c, t)
		}
	}

	m.generated = m.pending == 0 && unreached == 0
	return m, nil
}

func parseRune(ch rune, rl role) (CellType, bool) {
	var t CellType
	switch ch {
	case '#':
		t = Wall
		if rl == borderRole {
			t = Border
		}
	case ' ':
		t = ConnectedWall
		if rl == unitRole {
			t = DetermineUnit
		}
	case '?':
		t = PendingUnit
	case '+':
		t = PendingWall
	case 'S':
		t = StartPoint
	case 'E':
		t = EndPoint
	case '.':
		t = Path
	default:
		return 0, false
	}
	return t, rl.legal(t)
}
