package viz

import (
	"bufio"
	"fmt"
	"io"

	"gonum.org/v1/gonum/spatial/r2"
)

// SVG renders a vector image of Width x Height pixels.
type SVG struct {
	Width, Height int
	Theme         Theme
}

func NewSVG(width, height int) *SVG {
	return &SVG{Width: width, Height: height, Theme: CurrentTheme}
}

func (s *SVG) Render(w io.Writer, points []r2.Vec, radius float64) error {
	vp := Fit(points, radius, s.Width, s.Height, 0.05)
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Theme.Background)

	cx, cy := vp.ProjectF(r2.Vec{})
	fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, cx, cy, radius*vp.Scale(), s.Theme.Secondary)

	started := false
	var x0, y0 float64
	for _, p := range points {
		if !finite(p) {
			continue
		}
		x, y := vp.ProjectF(p)
		if !started {
			fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1.5" d="M%.1f,%.1f`, s.Theme.Primary, x, y)
			started = true
			x0, y0 = x, y
			continue
		}
		fmt.Fprintf(bw, " L%.1f,%.1f", x, y)
	}
	if started {
		bw.WriteString("\"/>\n")
		fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
`, x0, y0, s.Theme.Accent)
	}

	bw.WriteString("</svg>\n")
	return bw.Flush()
}
