package starfield

import (
	"context"
	"math/rand"
	"time"
)

// Display clears the previously rendered frame and writes a new one.
type Display interface {
	Render(frame string) error
}

// Sleeper pauses between frames.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Rand draws a uniform integer in [0, n).
type Rand interface {
	Intn(n int) int
}

// Observer is notified after every frame advance.
type Observer interface {
	OnFrame(frame int, s *Screen)
}

// RealSleeper blocks on a timer and returns early when ctx is done.
type RealSleeper struct{}

func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// NewRand returns a math/rand source seeded with seed, or with the
// current time when seed is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

type discardDisplay struct{}

func (discardDisplay) Render(string) error { return nil }
