package visual

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/beka-birhanu/vinom-pathfinder/config"
	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
)

const clearScreen = "\033[H\033[2J"

// agentColors maps each agent to the color of its footprints.
var agentColors = map[i.Agent]string{
	i.ExplorerAgent: config.ColorBlue,
	i.ShortestAgent: config.ColorRed,
}

// Terminal replays tracks as ANSI frames on a text terminal.
type Terminal struct {
	out    io.Writer
	in     io.Reader // nil closes right after the last frame
	logger i.Logger
}

// NewTerminal creates a terminal visualizer writing frames to out.
// When in is not nil the visualizer keeps the last frame until a line is read from it.
func NewTerminal(out io.Writer, in io.Reader, logger i.Logger) *Terminal {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Terminal{out: out, in: in, logger: logger}
}

// Animate implements i.Visualizer.
func (t *Terminal) Animate(ctx context.Context, m i.Maze, tracks []i.AgentTrack) error {
	b := newBoard(tracks)
	if err := t.draw(m, b, "ready"); err != nil {
		return err
	}

	for _, track := range tracks {
		cells := track.Cells()
		t.logger.Info(fmt.Sprintf("animating %s agent over %d cells", track.Agent, len(cells)))
		for n, cell := range cells {
			b.step(track.Agent, cell)
			if err := t.draw(m, b, fmt.Sprintf("%s %d/%d at %s", track.Agent, n+1, len(cells), cell)); err != nil {
				return err
			}
			if err := pause(ctx, track.Delay); err != nil {
				return err
			}
		}
		b.park()
	}

	if err := t.draw(m, b, summary(tracks)); err != nil {
		return err
	}
	return t.waitForClose(ctx)
}

func (t *Terminal) draw(m i.Maze, b *board, status string) error {
	var frame strings.Builder
	frame.WriteString(clearScreen)
	frame.WriteString(maze.Render(m, m.Rows(), m.Cols(), func(c grid.Coordinate) string {
		return label(b, c)
	}))
	frame.WriteString(legend())
	frame.WriteString(status)
	frame.WriteString("\n")

	if _, err := io.WriteString(t.out, frame.String()); err != nil {
		return fmt.Errorf("visual: writing frame: %w", err)
	}
	return nil
}

// waitForClose blocks until a line is read or ctx is done.
func (t *Terminal) waitForClose(ctx context.Context) error {
	if t.in == nil {
		return nil
	}
	if _, err := io.WriteString(t.out, "press Enter to close\n"); err != nil {
		return fmt.Errorf("visual: writing prompt: %w", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(t.in).ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		done <- err
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// label returns the three-character body of a cell.
func label(b *board, c grid.Coordinate) string {
	switch {
	case b.isHead(c):
		return paint(agentColors[b.marks[c]], " @ ")
	case b.isStart(c):
		return paint(config.ColorGreen, " S ")
	case b.isTarget(c):
		return paint(config.ColorMagenta, " E ")
	}

	switch b.marks[c] {
	case i.ExplorerAgent:
		return paint(agentColors[i.ExplorerAgent], " . ")
	case i.ShortestAgent:
		return paint(agentColors[i.ShortestAgent], " * ")
	}
	return "   "
}

func paint(color, s string) string {
	return color + s + config.ColorReset
}

func legend() string {
	return paint(config.ColorGreen, "S") + " start  " +
		paint(config.ColorMagenta, "E") + " end  " +
		paint(agentColors[i.ExplorerAgent], ".") + " explored  " +
		paint(agentColors[i.ShortestAgent], "*") + " shortest path\n"
}

func summary(tracks []i.AgentTrack) string {
	parts := make([]string, 0, len(tracks))
	for _, track := range tracks {
		switch track.Agent {
		case i.ShortestAgent:
			parts = append(parts, fmt.Sprintf("shortest path: %d segments", len(track.Cells())-1))
		default:
			parts = append(parts, fmt.Sprintf("%s: %d cells", track.Agent, len(track.Cells())))
		}
	}
	if len(parts) == 0 {
		return "nothing to animate"
	}
	return strings.Join(parts, ", ")
}

type nopLogger struct{}

func (nopLogger) Info(string)    {}
func (nopLogger) Warning(string) {}
func (nopLogger) Error(string)   {}
