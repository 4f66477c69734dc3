package display

import (
	"errors"
	"io"

	"github.com/san-kum/starfield/internal/starfield"
)

// Plain writes frames back to back without clearing, for pipes and logs.
type Plain struct {
	w io.Writer
}

func NewPlain(w io.Writer) *Plain { return &Plain{w: w} }

func (p *Plain) Render(frame string) error {
	_, err := io.WriteString(p.w, frame+"\n")
	return err
}

// Recorder keeps every rendered frame in memory. Only the latest frame is
// considered on screen, matching clear-then-write. The run log takes its
// final frame from Last.
type Recorder struct {
	frames []string
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Render(frame string) error {
	r.frames = append(r.frames, frame)
	return nil
}

func (r *Recorder) Frames() []string {
	out := make([]string, len(r.frames))
	copy(out, r.frames)
	return out
}

// Last returns the frame currently on screen, or "" before the first render.
func (r *Recorder) Last() string {
	if len(r.frames) == 0 {
		return ""
	}
	return r.frames[len(r.frames)-1]
}

// Tee renders each frame on every display in order. All displays see the
// frame even when one fails; the errors are joined.
func Tee(ds ...starfield.Display) starfield.Display {
	return tee(ds)
}

type tee []starfield.Display

func (t tee) Render(frame string) error {
	var errs []error
	for _, d := range t {
		if err := d.Render(frame); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
