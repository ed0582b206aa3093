package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// MazeCache keeps recently served mazes close to the API.
type MazeCache interface {
	Set(ctx context.Context, m *dmn.Maze) error
	// Get returns ErrNotFound on a miss.
	Get(ctx context.Context, id uuid.UUID) (*dmn.Maze, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SortedIndex is a scored set of members kept under a key.
type SortedIndex interface {
	Add(ctx context.Context, key string, score float64, member string) error
	// Tops returns up to n members with the highest scores, highest first.
	Tops(ctx context.Context, key string, n int64) ([]string, error)
	Remove(ctx context.Context, key string, member string) error
	// Trim drops the lowest scored members until at most max remain.
	Trim(ctx context.Context, key string, max int64) error
	Count(ctx context.Context, key string) (int64, error)
}
