package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.MazeRepo = &MazeRepo{}

// MazeRepo persists finished mazes in MongoDB.
type MazeRepo struct {
	collection *mongo.Collection
	timeout    time.Duration
}

// NewMazeRepo creates a MazeRepo backed by dbName.collectionName.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	return &MazeRepo{
		collection: client.Database(dbName).Collection(collectionName),
		timeout:    2 * time.Second,
	}
}

// Save inserts the maze or replaces the stored copy with the same ID.
func (r *MazeRepo) Save(ctx context.Context, m *dmn.Maze) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": m.ID}, m, opts); err != nil {
		return fmt.Errorf("saving maze %s: %w", m.ID, err)
	}
	return nil
}

// ByID retrieves a maze, or i.ErrNotFound.
func (r *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var m dmn.Maze
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrNotFound
		}
		return nil, fmt.Errorf("finding maze %s: %w", id, err)
	}
	return &m, nil
}

// Delete removes a maze, or returns i.ErrNotFound when nothing matched.
func (r *MazeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("deleting maze %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return i.ErrNotFound
	}
	return nil
}
