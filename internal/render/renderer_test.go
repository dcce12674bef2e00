package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/san-kum/gravgen/internal/frames"
	"github.com/san-kum/gravgen/internal/motion"
)

func TestBallPlacement(t *testing.T) {
	opts := DefaultOptions()
	r := New(opts)

	groundY := opts.Height - opts.GroundMargin

	tests := []struct {
		height float64
		wantY  int
	}{
		{0, groundY - opts.BallRadius},
		{4, groundY - opts.BallRadius - 100}, // 4m * 25 px/m
		{10, groundY - opts.BallRadius - 250},
	}

	for _, tt := range tests {
		if got := r.ballY(tt.height); got != tt.wantY {
			t.Errorf("ballY(%v): got %d, want %d", tt.height, got, tt.wantY)
		}
	}
}

func TestBallPixelsDrawn(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowVelocityArrow = false
	opts.ShowGravityArrow = false
	opts.ShowHeightMarkers = false
	r := New(opts)

	img, err := r.Render(motion.State{Height: 5}, frames.RoleFrame)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	cx := opts.Width / 2
	cy := r.ballY(5)
	if got := img.At(cx, cy); got != opts.BallColor {
		t.Errorf("ball center pixel: got %v, want %v", got, opts.BallColor)
	}
	// Just outside the disc radius the background shows through.
	if got := img.At(cx+opts.BallRadius+2, cy); got == color.Color(opts.BallColor) {
		t.Error("ball color found outside the disc")
	}
}

func TestGroundDrawn(t *testing.T) {
	opts := DefaultOptions()
	r := New(opts)

	img, err := r.Render(motion.State{Height: 10}, frames.RoleFrame)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	groundY := opts.Height - opts.GroundMargin
	if got := img.At(10, groundY+5); got != groundFill {
		t.Errorf("expected ground fill below ground line, got %v", got)
	}
}

func TestVelocityArrowOnlyOnFirstFrame(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowHeightMarkers = false
	opts.ShowGravityArrow = false
	r := New(opts)

	state := motion.State{Height: 5, Velocity: 6}

	first, err := r.Render(state, frames.RoleFirst)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	mid, err := r.Render(state, frames.RoleFrame)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !hasColor(first, velocityCl) {
		t.Error("first frame missing the velocity arrow")
	}
	if hasColor(mid, velocityCl) {
		t.Error("mid-flight frame should not carry a velocity arrow")
	}
}

func TestVisible(t *testing.T) {
	opts := DefaultOptions()
	r := New(opts)

	// Canvas above ground fits (Height - GroundMargin) / PixelsPerMeter
	// meters; 800px, 60px margin, 25 px/m -> 29.6m before the ball leaves
	// the top, plus the radius slack.
	tests := []struct {
		height float64
		want   bool
	}{
		{0, true},
		{15, true},
		{29, true},
		{60, false},
		{100, false},
	}

	for _, tt := range tests {
		if got := r.Visible(motion.State{Height: tt.height}); got != tt.want {
			t.Errorf("Visible(height=%v): got %v, want %v", tt.height, got, tt.want)
		}
	}
}

func TestEncodePNGRoundtrip(t *testing.T) {
	r := New(DefaultOptions())
	img, err := r.Render(motion.State{Height: 3}, frames.RoleFinal)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds changed: %v vs %v", decoded.Bounds(), img.Bounds())
	}
}

func hasColor(img image.Image, want color.RGBA) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			wr, wg, wb, wa := want.RGBA()
			if r == wr && g == wg && bl == wb && a == wa {
				return true
			}
		}
	}
	return false
}
