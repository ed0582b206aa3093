// Package mazeapi provides the request and response shapes of the maze routes.
package mazeapi

import (
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
)

// CreateRequest asks for a new maze. A missing or zero seed picks one at random.
type CreateRequest struct {
	Level int   `json:"level" binding:"required"`
	Seed  int64 `json:"seed"`
}

// MazeResponse describes a stored maze.
type MazeResponse struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	Level     int        `json:"level"`
	Seed      int64      `json:"seed"`
	Rows      []string   `json:"rows"`
	Cells     [][]string `json:"cells,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ListResponse wraps a page of mazes.
type ListResponse struct {
	Mazes []*MazeResponse `json:"mazes"`
}

func newMazeResponse(m *dmn.Maze) *MazeResponse {
	return &MazeResponse{
		ID:        m.ID.String(),
		OwnerID:   m.OwnerID.String(),
		Level:     m.Level,
		Seed:      m.Seed,
		Rows:      m.Rows,
		CreatedAt: m.CreatedAt,
	}
}
