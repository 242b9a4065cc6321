package viz

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport maps world coordinates in metres onto a pixel grid with the same
// scale on both axes, so circles stay circles. Pixel y grows downward.
type Viewport struct {
	center r2.Vec
	scale  float64 // pixels per metre
	w, h   int
}

// Fit returns the viewport that shows the primary disk and every finite
// point, with margin (a fraction of the span) on each side.
func Fit(points []r2.Vec, radius float64, w, h int, margin float64) Viewport {
	minX, maxX, minY, maxY := -radius, radius, -radius, radius
	for _, p := range points {
		if !finite(p) {
			continue
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	spanX := (maxX - minX) * (1 + 2*margin)
	spanY := (maxY - minY) * (1 + 2*margin)
	if spanX <= 0 {
		spanX = 1
	}
	if spanY <= 0 {
		spanY = 1
	}

	scale := math.Min(float64(w-1)/spanX, float64(h-1)/spanY)
	return Viewport{
		center: r2.Vec{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
		scale:  scale,
		w:      w,
		h:      h,
	}
}

func (v Viewport) Scale() float64 { return v.scale }

// ProjectF maps p to fractional pixel coordinates.
func (v Viewport) ProjectF(p r2.Vec) (float64, float64) {
	d := r2.Sub(p, v.center)
	x := float64(v.w-1)/2 + d.X*v.scale
	y := float64(v.h-1)/2 - d.Y*v.scale
	return x, y
}

// Project maps p to the nearest pixel.
func (v Viewport) Project(p r2.Vec) (int, int) {
	x, y := v.ProjectF(p)
	return int(math.Round(x)), int(math.Round(y))
}

func finite(p r2.Vec) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
