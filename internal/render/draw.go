package render

import (
	"image"
	"image/color"
)

// Raster helpers. Everything the renderer draws is axis-aligned, so plain
// pixel loops beat pulling in a path-rasterizing dependency.

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	b := r.Intersect(img.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func hline(img *image.RGBA, x0, x1, y int, c color.RGBA) {
	fill(img, image.Rect(x0, y, x1, y+1), c)
}

func vline(img *image.RGBA, x, y0, y1 int, c color.RGBA, width int) {
	half := width / 2
	fill(img, image.Rect(x-half, y0, x-half+width, y1+1), c)
}

func disc(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				x, y := cx+dx, cy+dy
				if image.Pt(x, y).In(img.Bounds()) {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}
}

// arrowHead draws a triangular head at (x, y); dir is -1 for up, 1 for down.
func arrowHead(img *image.RGBA, x, y, dir int, c color.RGBA) {
	size := 8
	for i := 0; i < size; i++ {
		row := y + dir*i
		fill(img, image.Rect(x-(size-i), row, x+(size-i)+1, row+1), c)
	}
}
