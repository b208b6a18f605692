package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingEnv is wrapped by every error about a required, unset variable.
var ErrMissingEnv = errors.New("environment variable is not set")

// Envs holds the application's configuration loaded from environment variables.
type Envs struct {
	MazeConfigFile string        // Path of the maze configuration file
	ExploreDelay   time.Duration // Animation step for the exploring agent
	PathDelay      time.Duration // Animation step for the shortest-path agent
	HostIP         string        // Host IP for the server
	RESTPort       int           // Port for the REST API
	GinMode        string        // Mode for the Gin framework (e.g., release, debug, test)
	MongoURI       string        // Connection string for MongoDB
	DBName         string        // Name of the database
	RedisAddr      string        // host:port of the Redis result cache
	CacheTTL       time.Duration // Lifetime of cached runs
	JWTSecret      string        // Secret key for JWT signing
	JWTIssuer      string        // Issuer claim for JWTs
}

// LoadEnvs loads a .env file if present and reads the environment.
// It returns whether the .env file was loaded so the caller can log it.
func LoadEnvs() (Envs, bool, error) {
	loaded := godotenv.Load() == nil

	var errs []error
	intEnv := func(key string, def int) int {
		v, err := getEnvAsIntWithDefault(key, def)
		if err != nil {
			errs = append(errs, err)
		}
		return v
	}

	envs := Envs{
		MazeConfigFile: getEnvWithDefault("MAZE_CONFIG_FILE", DefaultMazeConfigFile),
		ExploreDelay:   time.Duration(intEnv("EXPLORE_DELAY_MS", 30)) * time.Millisecond,
		PathDelay:      time.Duration(intEnv("PATH_DELAY_MS", 75)) * time.Millisecond,
		HostIP:         getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:       intEnv("REST_PORT", 8080),
		GinMode:        getEnvWithDefault("GIN_MODE", "release"),
		MongoURI:       getEnvWithDefault("MONGO_URI", ""),
		DBName:         getEnvWithDefault("DB_NAME", "pathfinder"),
		RedisAddr:      getEnvWithDefault("REDIS_ADDR", ""),
		CacheTTL:       time.Duration(intEnv("CACHE_TTL_SECONDS", 3600)) * time.Second,
		JWTSecret:      getEnvWithDefault("JWT_SECRET", ""),
		JWTIssuer:      getEnvWithDefault("JWT_ISSUER", "vinom-pathfinder"),
	}

	if err := errors.Join(errs...); err != nil {
		return Envs{}, loaded, err
	}
	return envs, loaded, nil
}

// RequireServer checks the variables the HTTP API cannot run without.
func (e Envs) RequireServer() error {
	var missing []string
	if e.MongoURI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if e.RedisAddr == "" {
		missing = append(missing, "REDIS_ADDR")
	}
	if e.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return nil
}

// RequireTokens checks the variables needed to sign API tokens.
func (e Envs) RequireTokens() error {
	if e.JWTSecret == "" {
		return fmt.Errorf("%w: JWT_SECRET", ErrMissingEnv)
	}
	return nil
}

// getEnvAsIntWithDefault parses an integer variable, falling back to defaultValue when unset.
func getEnvAsIntWithDefault(key string, defaultValue int) (int, error) {
	valueStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valueStr) == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		return 0, fmt.Errorf("environment variable %s must be an integer: %w", key, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("environment variable %s must not be negative, got %d", key, value)
	}
	return value, nil
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
