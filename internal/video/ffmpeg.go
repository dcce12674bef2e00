package video

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
)

// FFmpeg encodes mp4 by piping PNG frames to an external ffmpeg binary.
type FFmpeg struct {
	// Path overrides the binary name, mainly for tests.
	Path string
}

func NewFFmpeg() *FFmpeg { return &FFmpeg{} }

func (f *FFmpeg) binary() string {
	if f.Path != "" {
		return f.Path
	}
	return "ffmpeg"
}

// Available reports whether the backend can encode on this host.
func (f *FFmpeg) Available() bool {
	_, err := exec.LookPath(f.binary())
	return err == nil
}

func (f *FFmpeg) Encode(w io.Writer, seq []image.Image, fps int) error {
	if len(seq) == 0 {
		return fmt.Errorf("video: no frames to encode")
	}
	if fps <= 0 {
		return fmt.Errorf("video: fps must be positive, got %d", fps)
	}

	bin, err := exec.LookPath(f.binary())
	if err != nil {
		return fmt.Errorf("%w: %s not found", ErrEncodingUnavailable, f.binary())
	}

	// Fragmented mp4: the output writer is not seekable.
	cmd := exec.Command(bin,
		"-hide_banner", "-loglevel", "error",
		"-f", "image2pipe",
		"-framerate", fmt.Sprintf("%d", fps),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-movflags", "frag_keyframe+empty_moov",
		"-f", "mp4",
		"-",
	)
	cmd.Stdout = w

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncodingUnavailable, err)
	}

	var writeErr error
	for _, frame := range seq {
		if writeErr = png.Encode(stdin, frame); writeErr != nil {
			break
		}
	}
	closeErr := stdin.Close()

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("video: ffmpeg failed: %w", err)
	}
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}

func (f *FFmpeg) Ext() string { return "mp4" }
