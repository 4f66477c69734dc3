package starfield

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	DefaultWidth   = 80
	DefaultHeight  = 40
	DefaultDensity = 0.01
	DefaultFrames  = 50
	DefaultDelay   = 100 * time.Millisecond

	StarGlyph  = '*'
	BlankGlyph = ' '
)

type Screen struct {
	width, height int
	density       float64
	frames        int
	delay         time.Duration

	buffer    [][]rune
	stars     []Point
	direction Point

	rng       Rand
	display   Display
	sleeper   Sleeper
	observers []Observer
}

type Option func(*Screen)

func WithSize(width, height int) Option {
	return func(s *Screen) { s.width, s.height = width, height }
}

func WithDensity(d float64) Option {
	return func(s *Screen) { s.density = d }
}

func WithFrames(n int) Option {
	return func(s *Screen) { s.frames = n }
}

func WithDelay(d time.Duration) Option {
	return func(s *Screen) { s.delay = d }
}

// WithDirection sets the initial direction; nil is ignored like SetDirection.
func WithDirection(v Vector) Option {
	return func(s *Screen) { s.SetDirection(v) }
}

func WithRand(r Rand) Option {
	return func(s *Screen) {
		if r != nil {
			s.rng = r
		}
	}
}

func WithDisplay(d Display) Option {
	return func(s *Screen) {
		if d != nil {
			s.display = d
		}
	}
}

func WithSleeper(sl Sleeper) Option {
	return func(s *Screen) {
		if sl != nil {
			s.sleeper = sl
		}
	}
}

// New builds a Screen from the defaults and opts, then places stars.
// Without WithDisplay rendered frames are discarded.
func New(opts ...Option) (*Screen, error) {
	s := &Screen{
		width:     DefaultWidth,
		height:    DefaultHeight,
		density:   DefaultDensity,
		frames:    DefaultFrames,
		delay:     DefaultDelay,
		direction: NewPoint(1, 1),
		rng:       NewRand(0),
		display:   discardDisplay{},
		sleeper:   RealSleeper{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := validateSize(s.width, s.height); err != nil {
		return nil, err
	}
	if err := validateDensity(s.density); err != nil {
		return nil, err
	}
	if s.delay < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeDelay, s.delay)
	}

	s.reset()
	return s, nil
}

func validateSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, w, h)
	}
	return nil
}

func validateDensity(d float64) error {
	if d < 0 || d > 1 || math.IsNaN(d) {
		return fmt.Errorf("%w: got %g", ErrInvalidDensity, d)
	}
	return nil
}

// reset blanks the buffer, drops all stars and places a fresh set.
func (s *Screen) reset() {
	s.buffer = make([][]rune, s.height)
	for y := range s.buffer {
		row := make([]rune, s.width)
		for x := range row {
			row[x] = BlankGlyph
		}
		s.buffer[y] = row
	}
	s.stars = nil
	s.AddStars()
}

func (s *Screen) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// SetScreenSize resizes the grid and re-places stars at the current density.
func (s *Screen) SetScreenSize(width, height int) error {
	if err := validateSize(width, height); err != nil {
		return err
	}
	s.width, s.height = width, height
	s.reset()
	return nil
}

func (s *Screen) SetFrames(n int) { s.frames = n }
func (s *Screen) Frames() int     { return s.frames }

// SetDensity re-places all stars at density d.
func (s *Screen) SetDensity(d float64) error {
	if err := validateDensity(d); err != nil {
		return err
	}
	s.density = d
	s.reset()
	return nil
}

func (s *Screen) Density() float64 { return s.density }
func (s *Screen) Width() int       { return s.width }
func (s *Screen) Height() int      { return s.height }

func (s *Screen) SetDelay(d time.Duration) error {
	if d < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeDelay, d)
	}
	s.delay = d
	return nil
}

func (s *Screen) Delay() time.Duration { return s.delay }

// SetDirection copies v into the direction vector. A nil v, or a nil
// *Point, leaves the direction untouched.
func (s *Screen) SetDirection(v Vector) {
	if v == nil {
		return
	}
	if p, ok := v.(*Point); ok && p == nil {
		return
	}
	s.direction = NewPoint(v.X(), v.Y())
}

// Direction returns a copy of the direction vector.
func (s *Screen) Direction() Point { return s.direction }

// Stars returns a copy of the star positions in placement order.
func (s *Screen) Stars() []Point {
	out := make([]Point, len(s.stars))
	copy(out, s.stars)
	return out
}

// Cell returns the glyph at (x, y), or BlankGlyph outside the grid.
func (s *Screen) Cell(x, y int) rune {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return BlankGlyph
	}
	return s.buffer[y][x]
}

// StarCount is the number of stars placed for the current size and density.
func (s *Screen) StarCount() int {
	return int(float64(s.width*s.height) * s.density)
}

// AddStars draws StarCount independent uniform positions. Draws may
// collide; both points are kept while the cell shows a single glyph.
func (s *Screen) AddStars() {
	n := s.StarCount()
	for i := 0; i < n; i++ {
		x := s.rng.Intn(s.width)
		y := s.rng.Intn(s.height)
		s.stars = append(s.stars, NewPoint(x, y))
		s.buffer[y][x] = StarGlyph
	}
}

func (s *Screen) String() string {
	var b strings.Builder
	b.Grow((s.width + 1) * s.height)
	for _, row := range s.buffer {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// DisplayScreen hands the current frame to the display.
func (s *Screen) DisplayScreen() error {
	return s.display.Render(s.String())
}

// UpdateBoardLinearly moves every star by the direction vector. The y
// component points up, so it is subtracted from the row index.
func (s *Screen) UpdateBoardLinearly() {
	dx, dy := s.direction.X(), s.direction.Y()
	for i := range s.stars {
		star := &s.stars[i]
		s.buffer[star.Y()][star.X()] = BlankGlyph

		nx := wrap(star.X()+dx, s.width)
		ny := wrap(star.Y()-dy, s.height)

		s.buffer[ny][nx] = StarGlyph
		star.SetCoordinate(nx, ny)
	}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Run renders and advances frames-1 times, pausing delay after each frame.
// It stops early on a display error or when ctx is cancelled.
func (s *Screen) Run(ctx context.Context) error {
	for frame := 1; frame < s.frames; frame++ {
		if err := s.DisplayScreen(); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		s.UpdateBoardLinearly()
		for _, o := range s.observers {
			o.OnFrame(frame, s)
		}
		if err := s.sleeper.Sleep(ctx, s.delay); err != nil {
			return err
		}
	}
	return nil
}
