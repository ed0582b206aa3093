// Package domain holds the records persisted and served by the maze service.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// ErrZeroSeed is returned when a maze is requested without a seed.
var ErrZeroSeed = errors.New("maze seed must be non-zero")

// Maze is a finished maze together with what is needed to reproduce it.
type Maze struct {
	ID        uuid.UUID `bson:"_id"`
	OwnerID   uuid.UUID `bson:"ownerId"`
	Level     int       `bson:"level"`
	Seed      int64     `bson:"seed"`
	Rows      []string  `bson:"rows"`
	CreatedAt time.Time `bson:"createdAt"`
}

// MazeConfig holds the parameters for generating a Maze record.
type MazeConfig struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Level    int
	Seed     int64 // must be non-zero so the maze can be regenerated
	MaxLevel int   // zero falls back to maze.MaxLevel
}

// NewMaze generates a maze, marks its entrance and exit and renders it.
// The same level and seed always produce the same rows.
func NewMaze(config MazeConfig) (*Maze, error) {
	if config.Seed == 0 {
		return nil, ErrZeroSeed
	}

	opts := []maze.Option{maze.WithSeed(config.Seed)}
	if config.MaxLevel > 0 {
		opts = append(opts, maze.WithMaxLevel(config.MaxLevel))
	}

	m, err := maze.New(config.Level, opts...)
	if err != nil {
		return nil, err
	}
	m.Generate()
	if err := m.MarkEndpoints(); err != nil {
		return nil, err
	}

	return &Maze{
		ID:        config.ID,
		OwnerID:   config.OwnerID,
		Level:     config.Level,
		Seed:      config.Seed,
		Rows:      m.Rows(),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Grid parses the stored rows back into a grid of cell states.
func (m *Maze) Grid() (*maze.Maze, error) {
	return maze.Parse(m.Rows, maze.WithMaxLevel(0))
}
