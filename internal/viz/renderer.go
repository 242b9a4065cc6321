package viz

import (
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/spatial/r2"
)

// Renderer draws a planar trajectory around a primary of the given radius,
// centered on the origin.
type Renderer interface {
	Render(w io.Writer, points []r2.Vec, radius float64) error
}

// Terminal renders with braille characters at Width x Height cells.
type Terminal struct {
	Width, Height int
	Theme         Theme
	Plain         bool // no ANSI styling
}

func NewTerminal(width, height int) *Terminal {
	return &Terminal{Width: width, Height: height, Theme: CurrentTheme}
}

func (t *Terminal) Render(w io.Writer, points []r2.Vec, radius float64) error {
	body, path := NewCanvas(t.Width, t.Height), NewCanvas(t.Width, t.Height)
	vp := Fit(points, radius, body.PixelWidth(), body.PixelHeight(), 0.05)

	drawBody(body, vp, radius)
	drawPath(path, vp, points)
	for _, p := range points {
		if finite(p) {
			x, y := vp.Project(p)
			path.FillCircle(x, y, 1)
			break
		}
	}

	_, err := io.WriteString(w, t.compose(body, path))
	return err
}

func drawBody(c *Canvas, vp Viewport, radius float64) {
	cx, cy := vp.Project(r2.Vec{})
	r := int(math.Round(radius * vp.Scale()))
	c.FillCircle(cx, cy, r)
}

// drawPath joins consecutive samples with lines, breaking at non-finite ones.
func drawPath(c *Canvas, vp Viewport, points []r2.Vec) {
	havePrev := false
	var px, py int
	for _, p := range points {
		if !finite(p) {
			havePrev = false
			continue
		}
		x, y := vp.Project(p)
		if havePrev {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, havePrev = x, y, true
	}
}

// compose overlays path on body cell by cell. Cells holding any path dot take
// the path color.
func (t *Terminal) compose(body, path *Canvas) string {
	bodyStyle := lipgloss.NewStyle().Foreground(t.Theme.Secondary)
	pathStyle := lipgloss.NewStyle().Foreground(t.Theme.Primary)

	var b strings.Builder
	for row := range body.Grid {
		var run strings.Builder
		runIsPath := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			switch {
			case t.Plain:
				b.WriteString(run.String())
			case runIsPath:
				b.WriteString(pathStyle.Render(run.String()))
			default:
				b.WriteString(bodyStyle.Render(run.String()))
			}
			run.Reset()
		}

		for col := range body.Grid[row] {
			p := path.Grid[row][col]
			isPath := p != blank
			if isPath != runIsPath {
				flush()
				runIsPath = isPath
			}
			run.WriteRune(body.Grid[row][col] | p)
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}
