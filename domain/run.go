package domain

import (
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/google/uuid"
)

// Run represents one solved maze, in the form it is cached and stored.
type Run struct {
	ID           uuid.UUID         `json:"id" bson:"_id"`
	Rows         int               `json:"rows" bson:"rows"`
	Columns      int               `json:"columns" bson:"columns"`
	Start        grid.Coordinate   `json:"start" bson:"start"`
	End          grid.Coordinate   `json:"end" bson:"end"`
	Seed         int64             `json:"seed" bson:"seed"`
	LoopPercent  int               `json:"loopPercent" bson:"loopPercent"`
	Exploration  []grid.Coordinate `json:"exploration" bson:"exploration"`
	TargetStatus string            `json:"targetStatus" bson:"targetStatus"`
	Path         []grid.Coordinate `json:"path" bson:"path"` // start..end, empty when there is no path
	Segments     int               `json:"segments" bson:"segments"`
	Maze         string            `json:"maze" bson:"maze"` // ASCII rendering
	CreatedAt    time.Time         `json:"createdAt" bson:"createdAt"`
}

// HasPath reports whether a shortest path was found.
func (r *Run) HasPath() bool {
	return len(r.Path) > 0
}
