package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strconv"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
)

// DefaultMazeConfigFile is read when neither a flag nor MAZE_CONFIG_FILE names one.
const DefaultMazeConfigFile = "maze_config.txt"

// Field names as they appear in the configuration file.
const (
	FieldRows        = "number of rows"
	FieldColumns     = "number of columns"
	FieldStart       = "start_location"
	FieldEnd         = "end_location"
	FieldSeed        = "seed"
	FieldLoopPercent = "loop_percent"
)

var (
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrMissingField   = errors.New("missing field")
	ErrMalformedField = errors.New("malformed field")
	ErrNonPositive    = errors.New("must be a positive integer")
	ErrOutOfBounds    = errors.New("outside the maze boundaries")
)

var (
	rowsPattern        = regexp.MustCompile(`(?m)^\s*number of rows\s*=\s*(\S+)\s*$`)
	columnsPattern     = regexp.MustCompile(`(?m)^\s*number of columns\s*=\s*(\S+)\s*$`)
	startPattern       = regexp.MustCompile(`(?m)^\s*start_location\s*=\s*(.*?)\s*$`)
	endPattern         = regexp.MustCompile(`(?m)^\s*end_location\s*=\s*(.*?)\s*$`)
	seedPattern        = regexp.MustCompile(`(?m)^\s*seed\s*=\s*(\S+)\s*$`)
	loopPercentPattern = regexp.MustCompile(`(?m)^\s*loop_percent\s*=\s*(\S+)\s*$`)
	coordinatePattern  = regexp.MustCompile(`^\(\s*(\d+)\s*,\s*(\d+)\s*\)$`)
)

// FieldError reports which configuration field failed and why.
type FieldError struct {
	Field  string
	Detail string
	Err    error
}

func (e *FieldError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s '%s'", e.Err, e.Field)
	}
	return fmt.Sprintf("%s '%s': %s", e.Err, e.Field, e.Detail)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// MazeConfig is the maze layout loaded at startup. It is not modified afterwards.
type MazeConfig struct {
	Rows        int
	Columns     int
	Start       grid.Coordinate
	End         grid.Coordinate
	Seed        int64 // 0 lets the solver pick one
	LoopPercent int   // 0..100
}

// Validate checks dimensions, coordinate bounds and the loop percentage.
func (c MazeConfig) Validate() error {
	if c.Rows < 1 {
		return &FieldError{Field: FieldRows, Detail: strconv.Itoa(c.Rows), Err: ErrNonPositive}
	}
	if c.Columns < 1 {
		return &FieldError{Field: FieldColumns, Detail: strconv.Itoa(c.Columns), Err: ErrNonPositive}
	}
	if !c.Start.Within(c.Rows, c.Columns) {
		return &FieldError{Field: FieldStart, Detail: c.outside(c.Start), Err: ErrOutOfBounds}
	}
	if !c.End.Within(c.Rows, c.Columns) {
		return &FieldError{Field: FieldEnd, Detail: c.outside(c.End), Err: ErrOutOfBounds}
	}
	if c.LoopPercent < 0 || c.LoopPercent > 100 {
		return &FieldError{Field: FieldLoopPercent, Detail: "expected 0..100", Err: ErrMalformedField}
	}
	return nil
}

func (c MazeConfig) outside(p grid.Coordinate) string {
	return fmt.Sprintf("%s not in (1...%d, 1...%d)", p, c.Rows, c.Columns)
}

// LoadMazeConfig reads and parses the configuration file at path.
func LoadMazeConfig(path string) (MazeConfig, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return MazeConfig{}, fmt.Errorf("%w: '%s'", ErrConfigNotFound, path)
		}
		return MazeConfig{}, fmt.Errorf("reading configuration file '%s': %w", path, err)
	}

	cfg, err := ParseMazeConfig(string(contents))
	if err != nil {
		return MazeConfig{}, fmt.Errorf("configuration file '%s': %w", path, err)
	}
	return cfg, nil
}

// ParseMazeConfig extracts the maze configuration from key = value text.
// rows, columns, start_location and end_location are required; seed and
// loop_percent are optional.
func ParseMazeConfig(contents string) (MazeConfig, error) {
	var cfg MazeConfig
	var err error

	if cfg.Rows, err = requiredInt(contents, rowsPattern, FieldRows); err != nil {
		return MazeConfig{}, err
	}
	if cfg.Columns, err = requiredInt(contents, columnsPattern, FieldColumns); err != nil {
		return MazeConfig{}, err
	}
	if cfg.Start, err = requiredCoordinate(contents, startPattern, FieldStart); err != nil {
		return MazeConfig{}, err
	}
	if cfg.End, err = requiredCoordinate(contents, endPattern, FieldEnd); err != nil {
		return MazeConfig{}, err
	}

	if raw, ok := find(contents, seedPattern); ok {
		if cfg.Seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return MazeConfig{}, &FieldError{Field: FieldSeed, Detail: raw, Err: ErrMalformedField}
		}
	}
	if raw, ok := find(contents, loopPercentPattern); ok {
		if cfg.LoopPercent, err = strconv.Atoi(raw); err != nil {
			return MazeConfig{}, &FieldError{Field: FieldLoopPercent, Detail: raw, Err: ErrMalformedField}
		}
	}

	if err := cfg.Validate(); err != nil {
		return MazeConfig{}, err
	}
	return cfg, nil
}

// find returns the first capture of pattern in contents.
func find(contents string, pattern *regexp.Regexp) (string, bool) {
	match := pattern.FindStringSubmatch(contents)
	if match == nil {
		return "", false
	}
	return match[1], true
}

func requiredInt(contents string, pattern *regexp.Regexp, field string) (int, error) {
	raw, ok := find(contents, pattern)
	if !ok {
		return 0, &FieldError{Field: field, Err: ErrMissingField}
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{Field: field, Detail: fmt.Sprintf("expected an integer, got %q", raw), Err: ErrMalformedField}
	}
	if v < 1 {
		return 0, &FieldError{Field: field, Detail: raw, Err: ErrNonPositive}
	}
	return v, nil
}

func requiredCoordinate(contents string, pattern *regexp.Regexp, field string) (grid.Coordinate, error) {
	raw, ok := find(contents, pattern)
	if !ok {
		return grid.Coordinate{}, &FieldError{Field: field, Err: ErrMissingField}
	}
	match := coordinatePattern.FindStringSubmatch(raw)
	if match == nil {
		return grid.Coordinate{}, &FieldError{Field: field, Detail: fmt.Sprintf("expected %s = (row, col), got %q", field, raw), Err: ErrMalformedField}
	}
	row, err := strconv.Atoi(match[1])
	if err != nil {
		return grid.Coordinate{}, &FieldError{Field: field, Detail: raw, Err: ErrMalformedField}
	}
	col, err := strconv.Atoi(match[2])
	if err != nil {
		return grid.Coordinate{}, &FieldError{Field: field, Detail: raw, Err: ErrMalformedField}
	}
	return grid.At(row, col), nil
}
