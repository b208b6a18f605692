package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/api"
	"github.com/beka-birhanu/vinom-pathfinder/api/auth"
	api_i "github.com/beka-birhanu/vinom-pathfinder/api/i"
	"github.com/beka-birhanu/vinom-pathfinder/api/solve"
	"github.com/beka-birhanu/vinom-pathfinder/config"
	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/cache"
	logger "github.com/beka-birhanu/vinom-pathfinder/infrastruture/log"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/repo"
	"github.com/beka-birhanu/vinom-pathfinder/infrastruture/token"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/beka-birhanu/vinom-pathfinder/visual"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// app wires the dependencies for one command-line mode.
type app struct {
	envs   config.Envs
	logger *logger.Logger
}

// newMaze is the i.MazeFactory backed by the Wilson generator.
func newMaze(rows, cols int, end grid.Coordinate, opts i.BuildOptions) (i.Maze, error) {
	m, err := maze.New(rows, cols, end, maze.Options{Seed: opts.Seed, LoopPercent: opts.LoopPercent})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (a *app) newLogger(name, color string, w io.Writer) (*logger.Logger, error) {
	l, err := logger.New(name, color, w)
	if err != nil {
		return nil, fmt.Errorf("creating %s logger: %w", name, err)
	}
	return l, nil
}

// solveOnce loads the configuration file, solves it and animates the result.
// Configuration errors are returned before any maze is built.
func (a *app) solveOnce(ctx context.Context, configPath, outPath string, noWait bool) error {
	cfg, err := config.LoadMazeConfig(configPath)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("Loaded %dx%d maze configuration from %s", cfg.Rows, cfg.Columns, configPath))

	solverLogger, err := a.newLogger("SOLVER", config.ColorCyan, os.Stderr)
	if err != nil {
		return err
	}
	visualLogger, err := a.newLogger("VISUAL", config.ColorBlue, os.Stderr)
	if err != nil {
		return err
	}

	visualizer, err := a.initVisualizer(outPath, noWait, visualLogger)
	if err != nil {
		return err
	}

	solver, err := service.NewSolver(&service.Config{
		MazeFactory:  newMaze,
		Visualizer:   visualizer,
		Logger:       solverLogger,
		ExploreDelay: a.envs.ExploreDelay,
		PathDelay:    a.envs.PathDelay,
	})
	if err != nil {
		return fmt.Errorf("creating solver: %w", err)
	}
	return solver.Run(ctx, cfg)
}

func (a *app) initVisualizer(outPath string, noWait bool, l i.Logger) (i.Visualizer, error) {
	if outPath != "" {
		v, err := visual.NewImage(outPath, l)
		if err != nil {
			return nil, err
		}
		a.logger.Info(fmt.Sprintf("Animation will be written to %s", outPath))
		return v, nil
	}

	var in io.Reader = os.Stdin
	if noWait {
		in = nil
	}
	return visual.NewTerminal(os.Stdout, in, l), nil
}

// printToken writes a signed API token to stdout.
func (a *app) printToken(ttl time.Duration) error {
	if err := a.envs.RequireTokens(); err != nil {
		return err
	}
	tokenizer := token.NewJwtService(a.envs.JWTSecret, a.envs.JWTIssuer)
	signed, err := tokenizer.Generate(map[string]interface{}{"sub": "pathfinder-cli", "scope": "solve"}, ttl)
	if err != nil {
		return fmt.Errorf("signing token: %w", err)
	}
	fmt.Println(signed)
	return nil
}

// serve runs the HTTP API until ctx is done.
func (a *app) serve(ctx context.Context) error {
	if err := a.envs.RequireServer(); err != nil {
		return err
	}
	gin.SetMode(a.envs.GinMode)

	mongoClient, err := a.initMongo(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	redisClient, err := a.initRedis(ctx)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	cacheLogger, err := a.newLogger("CACHE", config.ColorPurple, os.Stdout)
	if err != nil {
		return err
	}
	runCache, err := cache.NewRedisRunCache(redisClient, a.envs.CacheTTL, cacheLogger)
	if err != nil {
		return fmt.Errorf("creating run cache: %w", err)
	}
	a.logger.Info("Run cache initialized")

	runRepo := repo.NewRunRepo(mongoClient, a.envs.DBName, repo.RunsCollection)
	a.logger.Info("Run repository initialized")

	solverLogger, err := a.newLogger("SOLVER", config.ColorCyan, os.Stdout)
	if err != nil {
		return err
	}
	solver, err := service.NewSolver(&service.Config{
		MazeFactory: newMaze,
		Repo:        runRepo,
		Cache:       runCache,
		Logger:      solverLogger,
	})
	if err != nil {
		return fmt.Errorf("creating solver: %w", err)
	}

	apiLogger, err := a.newLogger("API", config.ColorBlue, os.Stdout)
	if err != nil {
		return err
	}
	tokenizer := token.NewJwtService(a.envs.JWTSecret, a.envs.JWTIssuer)
	a.logger.Info("JWT Tokenizer initialized")

	addr := fmt.Sprintf("%s:%v", a.envs.HostIP, a.envs.RESTPort)
	router := api.NewRouter(api.Config{
		Addr:                    addr,
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{solve.NewController(solver, apiLogger)},
		AuthorizationMiddleware: auth.Authorize(tokenizer),
	})
	a.logger.Info(fmt.Sprintf("Serving on %s", addr))

	if err := router.Run(ctx); err != nil {
		return fmt.Errorf("running server: %w", err)
	}
	a.logger.Info("Server stopped")
	return nil
}

func (a *app) initMongo(ctx context.Context) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(a.envs.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("connecting to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDB ping failed: %w", err)
	}
	a.logger.Info("Connected to MongoDB")
	return client, nil
}

func (a *app) initRedis(ctx context.Context) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: a.envs.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	a.logger.Info("Connected to Redis")
	return client, nil
}
