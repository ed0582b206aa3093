package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// MazeService generates, stores and serves mazes.
type MazeService interface {
	// Create generates a maze of the given level. A zero seed picks one at random.
	Create(ctx context.Context, owner uuid.UUID, level int, seed int64) (*dmn.Maze, error)
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error)
	// Recent returns up to limit of the newest mazes, newest first.
	Recent(ctx context.Context, limit int64) ([]*dmn.Maze, error)
	// Delete removes a maze; only its owner may do so.
	Delete(ctx context.Context, owner, id uuid.UUID) error
}
