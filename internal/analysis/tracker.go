package analysis

import "github.com/san-kum/starfield/internal/starfield"

// Tracker is a starfield.Observer recording the number of visible stars
// after every frame. Collisions after movement show up as dips.
type Tracker struct {
	Frames  []int
	Visible []float64
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) OnFrame(frame int, s *starfield.Screen) {
	occ := Measure(s)
	t.Frames = append(t.Frames, frame)
	t.Visible = append(t.Visible, float64(occ.Marked))
}

func (t *Tracker) Reset() {
	t.Frames = t.Frames[:0]
	t.Visible = t.Visible[:0]
}
