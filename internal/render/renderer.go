// Package render draws trajectory states as portrait PNG frames: ball,
// ground line, height markers, and optional velocity/gravity indicators.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/san-kum/gravgen/internal/frames"
	"github.com/san-kum/gravgen/internal/motion"
)

type Options struct {
	Width          int
	Height         int
	PixelsPerMeter float64
	GroundHeight   float64 // meters, world ground level
	GroundMargin   int     // pixels between canvas bottom and ground line
	BallRadius     int     // pixels
	BallColor      color.RGBA
	Gravity        float64 // for the gravity indicator only

	ShowVelocityArrow bool
	ShowGravityArrow  bool
	ShowHeightMarkers bool
	ShowGround        bool

	MarkerStep float64 // meters between height markers
}

func DefaultOptions() Options {
	return Options{
		Width:             600,
		Height:            800,
		PixelsPerMeter:    25,
		GroundMargin:      60,
		BallRadius:        25,
		BallColor:         color.RGBA{220, 60, 60, 255},
		Gravity:           motion.DefaultGravity,
		ShowVelocityArrow: true,
		ShowGravityArrow:  true,
		ShowHeightMarkers: true,
		ShowGround:        true,
		MarkerStep:        5,
	}
}

var (
	background = color.RGBA{245, 246, 250, 255}
	groundFill = color.RGBA{96, 78, 60, 255}
	markerLine = color.RGBA{205, 208, 214, 255}
	velocityCl = color.RGBA{46, 158, 70, 255}
	gravityCl  = color.RGBA{70, 96, 214, 255}
)

type Renderer struct {
	opts Options
}

func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// ballY maps a world height to the ball center's pixel row.
func (r *Renderer) ballY(h float64) int {
	o := r.opts
	groundY := o.Height - o.GroundMargin
	return groundY - o.BallRadius - int(math.Round((h-o.GroundHeight)*o.PixelsPerMeter))
}

// Visible reports whether the ball disc intersects the canvas for a state.
func (r *Renderer) Visible(s motion.State) bool {
	y := r.ballY(s.Height)
	return y+r.opts.BallRadius >= 0 && y-r.opts.BallRadius <= r.opts.Height
}

func (r *Renderer) Render(s motion.State, role frames.Role) (image.Image, error) {
	o := r.opts
	img := image.NewRGBA(image.Rect(0, 0, o.Width, o.Height))
	fill(img, img.Bounds(), background)

	groundY := o.Height - o.GroundMargin

	if o.ShowHeightMarkers && o.MarkerStep > 0 {
		maxMeters := float64(groundY) / o.PixelsPerMeter
		for h := o.MarkerStep; h <= maxMeters; h += o.MarkerStep {
			y := groundY - int(math.Round(h*o.PixelsPerMeter))
			if y < 0 {
				break
			}
			hline(img, 0, o.Width, y, markerLine)
			// Longer tick at the left edge.
			fill(img, image.Rect(0, y-1, 14, y+2), gravityCl)
		}
	}

	if o.ShowGround {
		fill(img, image.Rect(0, groundY, o.Width, o.Height), groundFill)
	}

	cx := o.Width / 2
	cy := r.ballY(s.Height)
	disc(img, cx, cy, o.BallRadius, o.BallColor)

	// Velocity arrow on the initial frame only: the still must communicate
	// the launch condition, mid-flight frames stay clean.
	if o.ShowVelocityArrow && role == frames.RoleFirst && s.Velocity != 0 {
		r.velocityArrow(img, cx, cy, s.Velocity)
	}

	if o.ShowGravityArrow {
		r.gravityArrow(img)
	}

	return img, nil
}

func (r *Renderer) velocityArrow(img *image.RGBA, cx, cy int, v float64) {
	length := int(math.Abs(v) * r.opts.PixelsPerMeter / 2)
	if length < 12 {
		length = 12
	}
	if length > 120 {
		length = 120
	}
	x := cx + r.opts.BallRadius + 14
	if v > 0 {
		vline(img, x, cy-length, cy, velocityCl, 3)
		arrowHead(img, x, cy-length, -1, velocityCl)
	} else {
		vline(img, x, cy, cy+length, velocityCl, 3)
		arrowHead(img, x, cy+length, 1, velocityCl)
	}
}

func (r *Renderer) gravityArrow(img *image.RGBA) {
	x := r.opts.Width - 50
	top := 30
	length := 70
	vline(img, x, top, top+length, gravityCl, 3)
	arrowHead(img, x, top+length, 1, gravityCl)
}

// EncodePNG serializes an image to PNG bytes.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePNG streams an image as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
