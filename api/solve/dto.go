package solve

import (
	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/grid"
)

// CoordinateDTO is a 1-indexed cell position.
type CoordinateDTO struct {
	Row int `json:"row" binding:"required"`
	Col int `json:"col" binding:"required"`
}

func (c CoordinateDTO) toCoordinate() grid.Coordinate {
	return grid.At(c.Row, c.Col)
}

// SolveRequest is the body of POST /solve.
type SolveRequest struct {
	Rows        int            `json:"rows" binding:"required"`
	Columns     int            `json:"columns" binding:"required"`
	Start       *CoordinateDTO `json:"start" binding:"required"`
	End         *CoordinateDTO `json:"end" binding:"required"`
	Seed        int64          `json:"seed"`
	LoopPercent int            `json:"loopPercent"`
}

// RunResponse is the public view of a solved run.
type RunResponse struct {
	ID           string            `json:"id"`
	Rows         int               `json:"rows"`
	Columns      int               `json:"columns"`
	Start        grid.Coordinate   `json:"start"`
	End          grid.Coordinate   `json:"end"`
	Seed         int64             `json:"seed"`
	LoopPercent  int               `json:"loopPercent"`
	Exploration  []grid.Coordinate `json:"exploration"`
	TargetStatus string            `json:"targetStatus"`
	Path         []grid.Coordinate `json:"path"`
	Segments     int               `json:"segments"`
	Maze         string            `json:"maze"`
}

func newRunResponse(run *dmn.Run) *RunResponse {
	path := run.Path
	if path == nil {
		path = []grid.Coordinate{}
	}
	return &RunResponse{
		ID:           run.ID.String(),
		Rows:         run.Rows,
		Columns:      run.Columns,
		Start:        run.Start,
		End:          run.End,
		Seed:         run.Seed,
		LoopPercent:  run.LoopPercent,
		Exploration:  run.Exploration,
		TargetStatus: run.TargetStatus,
		Path:         path,
		Segments:     run.Segments,
		Maze:         run.Maze,
	}
}
