package visual

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/yalue/image_utils"
)

const (
	cellPixels  = 16
	arrowLength = cellPixels - 6

	// maxFramesPerTrack bounds the GIF size for large mazes; steps are grouped beyond it.
	maxFramesPerTrack = 300
)

// ErrUnsupportedFormat is returned for output files that are neither .gif nor .png.
var ErrUnsupportedFormat = errors.New("visual: unsupported image format")

var (
	startColor = color.RGBA{40, 180, 70, 255}
	endColor   = color.RGBA{200, 40, 200, 255}

	footprintColors = map[i.Agent]color.Color{
		i.ExplorerAgent: color.RGBA{100, 120, 255, 255},
		i.ShortestAgent: color.RGBA{230, 20, 20, 255},
	}
)

// Image writes the animation to an image file: an animated GIF with one frame
// per step, or a PNG of the final state.
type Image struct {
	path   string
	gif    bool
	logger i.Logger
}

// NewImage creates an image visualizer writing to path. The format follows the extension.
func NewImage(path string, logger i.Logger) (*Image, error) {
	if logger == nil {
		logger = nopLogger{}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return &Image{path: path, gif: true, logger: logger}, nil
	case ".png":
		return &Image{path: path, logger: logger}, nil
	}
	return nil, fmt.Errorf("%w: '%s' (use .gif or .png)", ErrUnsupportedFormat, path)
}

// Animate implements i.Visualizer.
func (v *Image) Animate(ctx context.Context, m i.Maze, tracks []i.AgentTrack) (err error) {
	f, err := os.Create(v.path)
	if err != nil {
		return fmt.Errorf("visual: creating %s: %w", v.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("visual: closing %s: %w", v.path, cerr)
		}
	}()

	if v.gif {
		err = v.encodeGIF(ctx, f, m, tracks)
	} else {
		err = v.encodePNG(f, m, tracks)
	}
	if err != nil {
		return err
	}
	v.logger.Info(fmt.Sprintf("image %s written", v.path))
	return nil
}

// encodePNG draws the state after every track has run.
func (v *Image) encodePNG(w io.Writer, m i.Maze, tracks []i.AgentTrack) error {
	b := newBoard(tracks)
	for _, track := range tracks {
		for _, cell := range track.Cells() {
			b.step(track.Agent, cell)
		}
	}
	b.park()

	pic, err := decorate(m, b, tracks)
	if err != nil {
		return err
	}
	if err := png.Encode(w, pic); err != nil {
		return fmt.Errorf("visual: encoding png: %w", err)
	}
	return nil
}

// encodeGIF emits a frame per step, or per group of steps on large tracks.
func (v *Image) encodeGIF(ctx context.Context, w io.Writer, m i.Maze, tracks []i.AgentTrack) error {
	anim := &gif.GIF{}
	b := newBoard(tracks)

	addFrame := func(delay int) error {
		pic, err := decorate(m, b, tracks)
		if err != nil {
			return err
		}
		anim.Image = append(anim.Image, toPaletted(pic))
		anim.Delay = append(anim.Delay, max(delay, 1))
		return nil
	}

	if err := addFrame(50); err != nil {
		return err
	}
	for _, track := range tracks {
		cells := track.Cells()
		group := (len(cells) + maxFramesPerTrack - 1) / maxFramesPerTrack
		delay := int(track.Delay.Milliseconds()) * max(group, 1) / 10

		for n, cell := range cells {
			b.step(track.Agent, cell)
			if (n+1)%max(group, 1) != 0 && n != len(cells)-1 {
				continue
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := addFrame(delay); err != nil {
				return err
			}
		}
		b.park()
	}
	if err := addFrame(300); err != nil {
		return err
	}

	v.logger.Info(fmt.Sprintf("encoding %d gif frames", len(anim.Image)))
	if err := gif.EncodeAll(w, anim); err != nil {
		return fmt.Errorf("visual: encoding gif: %w", err)
	}
	return nil
}

// decorate rasterizes the maze and adds the start and end arrows.
func decorate(m i.Maze, b *board, tracks []i.AgentTrack) (*image.RGBA, error) {
	decorated := image_utils.NewCompositeImage()
	if err := decorated.AddImage(image_utils.ToRGBA(&mazePicture{m: m, b: b}), image.Pt(0, 0)); err != nil {
		return nil, fmt.Errorf("visual: setting base maze image: %w", err)
	}
	if !b.marked {
		return image_utils.ToRGBA(decorated), nil
	}

	startDir, endDir := arrowDirections(tracks)
	if err := decorated.AddImage(arrow(startDir, startColor), arrowTopLeft(b.start)); err != nil {
		return nil, fmt.Errorf("visual: adding start arrow: %w", err)
	}
	if err := decorated.AddImage(arrow(endDir, endColor), arrowTopLeft(b.target)); err != nil {
		return nil, fmt.Errorf("visual: adding end arrow: %w", err)
	}
	return image_utils.ToRGBA(decorated), nil
}

// arrowDirections points the start arrow along the first step of the shortest
// path and the end arrow along its last step. Without a path both point east.
func arrowDirections(tracks []i.AgentTrack) (grid.Direction, grid.Direction) {
	for _, track := range tracks {
		if track.Agent != i.ShortestAgent {
			continue
		}
		cells := track.Cells()
		if len(cells) < 2 {
			break
		}
		return stepDirection(cells[0], cells[1]), stepDirection(cells[len(cells)-2], cells[len(cells)-1])
	}
	return grid.East, grid.East
}

func stepDirection(from, to grid.Coordinate) grid.Direction {
	for _, d := range grid.Directions {
		if grid.Neighbor(from, d) == to {
			return d
		}
	}
	return grid.East
}

func arrow(d grid.Direction, c color.Color) image.Image {
	var pic image.Image
	switch d {
	case grid.North:
		pic = image_utils.UpArrow(c)
	case grid.South:
		pic = image_utils.DownArrow(c)
	case grid.West:
		pic = image_utils.LeftArrow(c)
	default:
		pic = image_utils.RightArrow(c)
	}
	return image_utils.ResizeImage(pic, arrowLength, arrowLength)
}

// arrowTopLeft centers an arrow inside the cell.
func arrowTopLeft(c grid.Coordinate) image.Point {
	offset := (cellPixels - arrowLength) / 2
	return image.Pt((c.Col-1)*cellPixels+offset, (c.Row-1)*cellPixels+offset)
}

func toPaletted(pic *image.RGBA) *image.Paletted {
	bounds := pic.Bounds()
	out := image.NewPaletted(bounds, palette.Plan9)
	draw.Draw(out, bounds, pic, bounds.Min, draw.Src)
	return out
}

// mazePicture satisfies image.Image; every cell is a cellPixels square with
// its own wall pixels on each closed side.
type mazePicture struct {
	m i.Maze
	b *board
}

func (p *mazePicture) ColorModel() color.Model {
	return color.RGBAModel
}

func (p *mazePicture) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.m.Cols()*cellPixels, p.m.Rows()*cellPixels)
}

func (p *mazePicture) At(x, y int) color.Color {
	if !image.Pt(x, y).In(p.Bounds()) {
		return color.Transparent
	}
	cell := grid.At(y/cellPixels+1, x/cellPixels+1)
	cx, cy := x%cellPixels, y%cellPixels
	last := cellPixels - 1

	// Corners are always drawn.
	if (cx == 0 || cx == last) && (cy == 0 || cy == last) {
		return color.Black
	}
	switch {
	case cx == 0:
		return p.wall(cell, grid.West)
	case cx == last:
		return p.wall(cell, grid.East)
	case cy == 0:
		return p.wall(cell, grid.North)
	case cy == last:
		return p.wall(cell, grid.South)
	}

	agent, ok := p.b.marks[cell]
	if !ok || cx < 2 || cy < 2 || cx > last-2 || cy > last-2 {
		return color.White
	}
	return footprintColors[agent]
}

func (p *mazePicture) wall(cell grid.Coordinate, d grid.Direction) color.Color {
	if open, _ := p.m.HasPassage(cell, d); open {
		return color.White
	}
	return color.Black
}
