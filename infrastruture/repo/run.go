package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RunsCollection is the default collection name for solved runs.
const RunsCollection = "runs"

const (
	saveTimeout  = time.Second
	queryTimeout = 2 * time.Second
)

// RunRepo handles the persistence of solved runs.
type RunRepo struct {
	collection *mongo.Collection
}

// NewRunRepo creates a new RunRepo with the given MongoDB client, database name, and collection name.
func NewRunRepo(client *mongo.Client, dbName, collectionName string) *RunRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &RunRepo{
		collection: collection,
	}
}

// Save inserts or updates a run in the repository.
// If the run already exists, it updates the existing record.
func (r *RunRepo) Save(ctx context.Context, run *dmn.Run) error {
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	filter := bson.M{"_id": run.ID}
	update := bson.M{"$set": runFields(run)}

	opts := options.Update().SetUpsert(true)
	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("repo: saving run %s: %w", run.ID, err)
	}
	return nil
}

// ByID retrieves a run by its ID.
// Returns i.ErrRunNotFound if there is no such run.
func (r *RunRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Run, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	var run dmn.Run
	if err := r.collection.FindOne(ctx, filter).Decode(&run); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrRunNotFound
		}
		return nil, fmt.Errorf("repo: loading run %s: %w", id, err)
	}
	return &run, nil
}

// runFields lists the stored fields of a run, everything but the ID.
func runFields(run *dmn.Run) bson.M {
	return bson.M{
		"rows":         run.Rows,
		"columns":      run.Columns,
		"start":        run.Start,
		"end":          run.End,
		"seed":         run.Seed,
		"loopPercent":  run.LoopPercent,
		"exploration":  run.Exploration,
		"targetStatus": run.TargetStatus,
		"path":         run.Path,
		"segments":     run.Segments,
		"maze":         run.Maze,
		"createdAt":    run.CreatedAt,
	}
}
