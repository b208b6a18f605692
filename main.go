package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/config"
	logger "github.com/beka-birhanu/vinom-pathfinder/infrastruture/log"
)

func run() int {
	var configPath, outPath string
	var serve, issueToken, noWait bool
	var tokenTTL time.Duration
	flag.StringVar(&configPath, "config", "",
		"Path of the maze configuration file. Defaults to $MAZE_CONFIG_FILE or maze_config.txt.")
	flag.StringVar(&outPath, "out", "",
		"Write the animation to a .gif (every step) or .png (final state) instead of the terminal.")
	flag.BoolVar(&serve, "serve", false,
		"Serve the solve API over HTTP instead of solving one maze.")
	flag.BoolVar(&issueToken, "issue-token", false,
		"Print a signed API token and exit.")
	flag.DurationVar(&tokenTTL, "token-ttl", 24*time.Hour,
		"Lifetime of the token printed by -issue-token.")
	flag.BoolVar(&noWait, "no-wait", false,
		"Close the terminal animation without waiting for Enter.")
	flag.Parse()

	appLogger, err := logger.New("APP", config.ColorGreen, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating app logger: %s\n", err)
		return 1
	}

	envs, loaded, err := config.LoadEnvs()
	if err != nil {
		appLogger.Error(fmt.Sprintf("Loading environment: %s", err))
		return 1
	}
	if loaded {
		appLogger.Info("Loaded .env file")
	} else {
		appLogger.Info("No .env file found, using the process environment")
	}
	if configPath == "" {
		configPath = envs.MazeConfigFile
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{envs: envs, logger: appLogger}
	switch {
	case issueToken:
		err = a.printToken(tokenTTL)
	case serve:
		err = a.serve(ctx)
	default:
		err = a.solveOnce(ctx, configPath, outPath, noWait)
	}

	if err != nil {
		if errors.Is(err, context.Canceled) {
			appLogger.Info("Interrupted")
			return 130
		}
		appLogger.Error(err.Error())
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
