package grid

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal directions.
type Direction uint8

const (
	East Direction = iota
	South
	West
	North
)

// Directions is the canonical iteration order used by every traversal.
var Directions = [...]Direction{East, South, West, North}

var (
	deltas = [...][2]int{
		East:  {0, 1},
		South: {1, 0},
		West:  {0, -1},
		North: {-1, 0},
	}
	symbols = [...]string{East: "E", South: "S", West: "W", North: "N"}
	names   = [...]string{East: "East", South: "South", West: "West", North: "North"}
)

// Delta returns the fixed row/column offset of d.
func Delta(d Direction) (int, int) {
	if int(d) >= len(deltas) {
		return 0, 0
	}
	return deltas[d][0], deltas[d][1]
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// String returns the single-letter symbol of d.
func (d Direction) String() string {
	if int(d) >= len(symbols) {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return symbols[d]
}

// Name returns the full name of d, e.g. "North".
func (d Direction) Name() string {
	if int(d) >= len(names) {
		return d.String()
	}
	return names[d]
}

// ParseDirection accepts either the symbol ("N") or the name ("north"), case-insensitively.
func ParseDirection(s string) (Direction, error) {
	s = strings.TrimSpace(s)
	for _, d := range Directions {
		if strings.EqualFold(s, symbols[d]) || strings.EqualFold(s, names[d]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("grid: unknown direction %q", s)
}
