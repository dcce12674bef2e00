// Package video encodes rendered frame sequences into ground-truth videos.
// Two backends exist: a built-in GIF encoder and an external ffmpeg pipe
// for mp4. Both preserve frame order.
package video

import (
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"io"
)

// ErrEncodingUnavailable indicates the selected video backend is missing.
// Recoverable: callers fall back to another backend or skip video output.
var ErrEncodingUnavailable = errors.New("video: encoding backend unavailable")

// GIF encodes frames with the standard library, always available.
type GIF struct{}

func NewGIF() *GIF { return &GIF{} }

func (g *GIF) Encode(w io.Writer, seq []image.Image, fps int) error {
	if len(seq) == 0 {
		return fmt.Errorf("video: no frames to encode")
	}
	if fps <= 0 {
		return fmt.Errorf("video: fps must be positive, got %d", fps)
	}

	delay := 100 / fps // centiseconds
	if delay < 2 {
		delay = 2 // GIF renderers clamp faster delays anyway
	}

	out := &gif.GIF{
		Image: make([]*image.Paletted, 0, len(seq)),
		Delay: make([]int, 0, len(seq)),
	}
	for _, frame := range seq {
		p := image.NewPaletted(frame.Bounds(), palette.Plan9)
		draw.Draw(p, p.Bounds(), frame, frame.Bounds().Min, draw.Src)
		out.Image = append(out.Image, p)
		out.Delay = append(out.Delay, delay)
	}
	return gif.EncodeAll(w, out)
}

// Ext returns the file extension for artifacts produced by this encoder.
func (g *GIF) Ext() string { return "gif" }
