package solve

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/beka-birhanu/vinom-pathfinder/config"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller handles HTTP requests for solving mazes and reading stored runs.
type Controller struct {
	runService i.RunService
	logger     i.Logger
}

// NewController creates a new solve Controller.
func NewController(s i.RunService, logger i.Logger) *Controller {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Controller{
		runService: s,
		logger:     logger,
	}
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/runs/:id", c.runByID)
}

// RegisterProtected registers privileged routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	route.POST("/solve", c.solve)
}

// solve handles maze solve requests.
func (c *Controller) solve(ctx *gin.Context) {
	var request SolveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := config.MazeConfig{
		Rows:        request.Rows,
		Columns:     request.Columns,
		Start:       request.Start.toCoordinate(),
		End:         request.End.toCoordinate(),
		Seed:        request.Seed,
		LoopPercent: request.LoopPercent,
	}
	if cfg.Rows > maze.MaxDimension || cfg.Columns > maze.MaxDimension {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("mazes are limited to %dx%d", maze.MaxDimension, maze.MaxDimension)})
		return
	}

	run, err := c.runService.SolveCached(ctx.Request.Context(), cfg)
	if err != nil {
		var fieldErr *config.FieldError
		if errors.As(err, &fieldErr) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.logger.Error(fmt.Sprintf("solving %dx%d maze: %s", cfg.Rows, cfg.Columns, err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not solve maze"})
		return
	}

	ctx.JSON(http.StatusOK, newRunResponse(run))
}

// runByID serves a stored run.
func (c *Controller) runByID(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	run, err := c.runService.RunByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, i.ErrRunNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.logger.Error(fmt.Sprintf("loading run %s: %s", id, err))
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "could not load run"})
		return
	}

	ctx.JSON(http.StatusOK, newRunResponse(run))
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}
