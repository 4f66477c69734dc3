package display

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// Cell draws frames onto a tcell screen, one rune per cell.
type Cell struct {
	screen tcell.Screen
	style  tcell.Style
	star   tcell.Style
}

// NewCell initialises s. Call Close to restore the terminal.
func NewCell(s tcell.Screen) (*Cell, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	s.HideCursor()
	return &Cell{
		screen: s,
		style:  tcell.StyleDefault,
		star:   tcell.StyleDefault.Bold(true),
	}, nil
}

// OpenCell opens the controlling terminal through tcell.
func OpenCell() (*Cell, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewCell(s)
}

// SetStarColor sets the foreground used for star glyphs.
func (c *Cell) SetStarColor(hex string) {
	c.star = c.star.Foreground(tcell.GetColor(hex))
}

func (c *Cell) Render(frame string) error {
	c.screen.Clear()
	x, y := 0, 0
	for _, r := range frame {
		if r == '\n' {
			x = 0
			y++
			continue
		}
		st := c.style
		if r != ' ' {
			st = c.star
		}
		c.screen.SetContent(x, y, r, nil, st)
		x++
	}
	c.screen.Show()
	return nil
}

// Watch polls terminal events in the background and calls cancel on
// Ctrl-C, Esc or q. The tcell screen owns the terminal in raw mode, so
// interrupts arrive here instead of as signals. Polling stops after Close.
func (c *Cell) Watch(cancel context.CancelFunc) {
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return
			}
			if k, ok := ev.(*tcell.EventKey); ok && isQuitKey(k) {
				cancel()
			}
		}
	}()
}

func isQuitKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

func (c *Cell) Close() {
	c.screen.Fini()
}
