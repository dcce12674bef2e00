// Package frames maps a completed trajectory onto the visual artifacts of a
// task: the first-state image, the final-state image, and the frame sequence
// fed to a video encoder. It performs no rendering or encoding itself; both
// are supplied as collaborators.
package frames

import (
	"errors"
	"image"
	"io"
	"math"

	"github.com/san-kum/gravgen/internal/motion"
)

type Role string

const (
	RoleFirst Role = "first"
	RoleFinal Role = "final"
	RoleFrame Role = "frame"
)

// Renderer draws one state onto a canvas. Visible reports whether the ball
// falls within renderable bounds for a state; Select uses it to avoid
// producing a final image with the ball off-canvas.
type Renderer interface {
	Render(s motion.State, role Role) (image.Image, error)
	Visible(s motion.State) bool
}

// Encoder turns an ordered frame sequence into a video stream. It must
// preserve frame order and return video.ErrEncodingUnavailable (wrapped or
// direct) when no backend is present.
type Encoder interface {
	Encode(w io.Writer, seq []image.Image, fps int) error
}

// Selection holds the states chosen for the still images. FinalIndex indexes
// into the originating trajectory; no states are copied out of it beyond the
// two value snapshots.
type Selection struct {
	First      motion.State
	Final      motion.State
	FinalIndex int
}

// Select picks the first state and the last visible state of the trajectory.
// The reverse scan exists because raw physics can place the ball off-canvas
// at the exact end time; the final image must still be usable.
func Select(traj motion.Trajectory, r Renderer) (Selection, error) {
	if len(traj) == 0 {
		return Selection{}, errors.New("frames: empty trajectory")
	}
	for i := len(traj) - 1; i >= 0; i-- {
		if r.Visible(traj[i]) {
			return Selection{
				First:      traj[0],
				Final:      traj[i],
				FinalIndex: i,
			}, nil
		}
	}
	return Selection{}, motion.ErrNoVisibleState
}

// Resample projects the trajectory onto a video frame clock, nearest sample
// per frame tick. Frames may repeat when fps exceeds the sample rate; order
// is always preserved.
func Resample(traj motion.Trajectory, fps int) []motion.State {
	if len(traj) == 0 || fps <= 0 {
		return nil
	}
	duration := traj.Duration()
	if duration <= 0 {
		return []motion.State{traj[0]}
	}

	n := int(math.Round(duration*float64(fps))) + 1
	sampleRate := float64(len(traj)-1) / duration

	seq := make([]motion.State, 0, n)
	for f := 0; f < n; f++ {
		t := float64(f) / float64(fps)
		i := int(math.Round(t * sampleRate))
		if i > len(traj)-1 {
			i = len(traj) - 1
		}
		seq = append(seq, traj[i])
	}
	return seq
}

// RenderStills renders the selection's first and final images.
func RenderStills(sel Selection, r Renderer) (first, final image.Image, err error) {
	if first, err = r.Render(sel.First, RoleFirst); err != nil {
		return nil, nil, err
	}
	if final, err = r.Render(sel.Final, RoleFinal); err != nil {
		return nil, nil, err
	}
	return first, final, nil
}

// Project renders the resampled frame sequence and hands it to the encoder.
// Encoder failures pass through unchanged so callers can detect a missing
// backend and skip video output.
func Project(traj motion.Trajectory, r Renderer, enc Encoder, w io.Writer, fps int) error {
	seq := Resample(traj, fps)
	imgs := make([]image.Image, 0, len(seq))
	for _, s := range seq {
		img, err := r.Render(s, RoleFrame)
		if err != nil {
			return err
		}
		imgs = append(imgs, img)
	}
	return enc.Encode(w, imgs, fps)
}
