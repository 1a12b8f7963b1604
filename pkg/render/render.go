// Package render rasterizes polygonal chains to a grayscale PNG for visual
// inspection of simplification results.
package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"

	"github.com/Catniped/CuraEngine/pkg/geometry"
)

// Options controls the output raster.
type Options struct {
	// Width is the image width in pixels; height follows from the aspect
	// ratio of the chains' bounding box.
	Width int
	// StrokeWidth is the stroke width in pixels.
	StrokeWidth float64
	// Margin is the border around the drawing in pixels.
	Margin int
}

// DefaultOptions renders a 1024 pixel wide image with a 1.5 pixel stroke.
func DefaultOptions() Options {
	return Options{Width: 1024, StrokeWidth: 1.5, Margin: 16}
}

// PNG draws every chain as a stroked path and writes the result as a PNG.
// Closed chains get their closing segment drawn; open chains do not.
func PNG(w io.Writer, chains [][]geometry.Point, closed []bool, opts Options) error {
	var all []geometry.Point
	for _, chain := range chains {
		all = append(all, chain...)
	}
	min, max, ok := geometry.Bounds(all)
	if !ok {
		min, max = geometry.Point{}, geometry.Point{X: 1, Y: 1}
	}
	spanX := float64(max.X - min.X)
	spanY := float64(max.Y - min.Y)
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	inner := opts.Width - 2*opts.Margin
	if inner < 1 {
		inner = 1
	}
	scale := float64(inner) / spanX
	height := int(spanY*scale) + 2*opts.Margin
	if height < 2*opts.Margin+1 {
		height = 2*opts.Margin + 1
	}

	toPixel := func(p geometry.Point) (float32, float32) {
		x := float64(p.X-min.X)*scale + float64(opts.Margin)
		// SVG and engine coordinates grow downward already, no flip.
		y := float64(p.Y-min.Y)*scale + float64(opts.Margin)
		return float32(x), float32(y)
	}

	r := vector.NewRasterizer(opts.Width, height)
	for i, chain := range chains {
		if len(chain) < 2 {
			continue
		}
		n := len(chain)
		last := n - 1
		if closed != nil && closed[i] {
			last = n
		}
		for j := 0; j < last; j++ {
			ax, ay := toPixel(chain[j])
			bx, by := toPixel(chain[(j+1)%n])
			strokeSegment(r, ax, ay, bx, by, float32(opts.StrokeWidth))
		}
	}

	dst := image.NewAlpha(image.Rect(0, 0, opts.Width, height))
	src := image.NewUniform(color.Alpha{255})
	r.Draw(dst, dst.Bounds(), src, image.Point{})

	out := image.NewGray(dst.Bounds())
	for i, a := range dst.Pix {
		out.Pix[i] = 255 - a
	}
	return png.Encode(w, out)
}

// strokeSegment adds the segment a-b as a filled quad of the given width.
// The rasterizer only fills paths, so stroking is done by offsetting the
// segment by half the width along its normal.
func strokeSegment(r *vector.Rasterizer, ax, ay, bx, by, width float32) {
	dx := bx - ax
	dy := by - ay
	length := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if length == 0 {
		return
	}
	// Unit normal scaled to half the stroke width.
	nx := -dy / length * width / 2
	ny := dx / length * width / 2
	r.MoveTo(ax+nx, ay+ny)
	r.LineTo(bx+nx, by+ny)
	r.LineTo(bx-nx, by-ny)
	r.LineTo(ax-nx, ay-ny)
	r.ClosePath()
}
